// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplaySequence], [DisplayProgress], [DisplayMemoryStats].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietSequence], [FormatSequenceDetails].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteSequenceToFile].

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/fibseq/internal/fibonacci"
	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/ui"
)

// OutputConfig holds configuration for sequence output.
type OutputConfig struct {
	// OutputFile is the path to also save the sequence to (empty for none).
	OutputFile string
	// Format is the rendering style name (list, lines, indexed, json).
	Format string
	// Quiet prints only the rendered sequence.
	Quiet bool
	// Verbose adds the generator name to the report.
	Verbose bool
	// Details adds term count, largest term size and timing.
	Details bool
}

// FormatQuietSequence renders seq as a bare list for scripting.
func FormatQuietSequence(seq fibonacci.Sequence) string {
	return format.FormatList(seq)
}

// DisplaySequence prints seq in the configured style. The list style is
// prefixed with "Fibonacci sequence: " unless quiet; json is always the bare
// document.
func DisplaySequence(out io.Writer, seq fibonacci.Sequence, n int, duration time.Duration, cfg OutputConfig) error {
	style, err := format.ParseStyle(cfg.Format)
	if cfg.Format == "" {
		style, err = format.StyleList, nil
	}
	if err != nil {
		return err
	}
	rendered, err := format.FormatSequence(seq, n, style)
	if err != nil {
		return err
	}

	switch {
	case cfg.Quiet || style == format.StyleJSON:
		fmt.Fprintln(out, rendered)
	case style == format.StyleList:
		fmt.Fprintf(out, "Fibonacci sequence: %s\n", rendered)
	default:
		fmt.Fprintf(out, "Fibonacci sequence (%d terms):\n", seq.Len())
		if rendered != "" {
			fmt.Fprintln(out, rendered)
		}
	}

	if cfg.Details && !cfg.Quiet && style != format.StyleJSON {
		fmt.Fprint(out, FormatSequenceDetails(seq, duration))
	}
	return nil
}

// FormatSequenceDetails describes the size and cost of a generated sequence.
func FormatSequenceDetails(seq fibonacci.Sequence, duration time.Duration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%sDetailed sequence analysis:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(&b, "  Terms:            %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(seq.Len())), ui.ColorReset())
	digits, bits := 0, 0
	if last := seq.Last(); last != nil {
		digits = len(last.String())
		bits = last.BitLen()
	}
	fmt.Fprintf(&b, "  Largest term:     %s%s%s digits (%s bits)\n",
		ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(digits)), ui.ColorReset(),
		format.FormatNumberString(fmt.Sprint(bits)))
	width := "arbitrary precision"
	if _, ok := seq.Uint64s(); ok {
		width = "fits in uint64"
	}
	fmt.Fprintf(&b, "  Term width:       %s\n", width)
	fmt.Fprintf(&b, "  Estimated memory: %s%s%s\n", ui.ColorCyan(), format.FormatBytes(fibonacci.EstimateSequenceBytes(seq.Len())), ui.ColorReset())
	fmt.Fprintf(&b, "  Calculation time: %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(duration), ui.ColorReset())
	return b.String()
}

// WriteSequenceToFile writes seq to cfg.OutputFile: a "#" commented header
// followed by one term per line. Parent directories are created. It is a
// no-op when no output file is configured.
func WriteSequenceToFile(seq fibonacci.Sequence, n int, duration time.Duration, generator string, cfg OutputConfig) (err error) {
	if cfg.OutputFile == "" {
		return nil
	}

	if dir := filepath.Dir(cfg.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "# Fibonacci Sequence\n")
	fmt.Fprintf(w, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "# Generator: %s\n", generator)
	fmt.Fprintf(w, "# Duration: %s\n", duration)
	fmt.Fprintf(w, "# N: %d\n", n)
	fmt.Fprintf(w, "# Terms: %d\n", seq.Len())
	for _, term := range seq {
		fmt.Fprintln(w, term.String())
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// DisplayResultWithConfig prints seq and, when configured, saves it to a file.
func DisplayResultWithConfig(out io.Writer, seq fibonacci.Sequence, n int, duration time.Duration, generator string, cfg OutputConfig) error {
	if cfg.Verbose && !cfg.Quiet {
		fmt.Fprintf(out, "Generator: %s%s%s\n", ui.ColorGreen(), generator, ui.ColorReset())
	}
	if err := DisplaySequence(out, seq, n, duration, cfg); err != nil {
		return err
	}

	if cfg.OutputFile != "" {
		if err := WriteSequenceToFile(seq, n, duration, generator, cfg); err != nil {
			return err
		}
		if !cfg.Quiet {
			fmt.Fprintf(out, "\n%s✓ Sequence saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), cfg.OutputFile, ui.ColorReset())
		}
	}
	return nil
}
