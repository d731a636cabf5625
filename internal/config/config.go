// Package config defines the fibseq command-line configuration: flag parsing,
// FIBSEQ_* environment overrides and validation.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/format"
)

const (
	// EnvPrefix is prepended to every environment override key.
	EnvPrefix = "FIBSEQ_"

	// DefaultN is the number of terms generated when -n is not given.
	DefaultN = 10
	// DefaultAlgo is the generator used when -algo is not given.
	DefaultAlgo = "big"
	// DefaultTimeout bounds a single generation.
	DefaultTimeout = time.Minute
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// N is the requested term count. Non-positive values yield an empty sequence.
	N int
	// Algo names the generator to use.
	Algo string
	// Format is the output style: list, lines, indexed or json.
	Format string
	// OutputFile, when set, also writes the sequence to this path.
	OutputFile string
	// MetricsFile, when set, receives a prometheus textfile after the run.
	MetricsFile string
	// Timeout caps the duration of the generation.
	Timeout time.Duration

	Quiet   bool
	Verbose bool
	Details bool
	TUI     bool
	NoColor bool
}

// ParseConfig parses the command-line arguments, applies environment
// overrides for flags not given explicitly, and validates the result.
// Parsing errors are written to errWriter by the flag package. A -h/--help
// request returns flag.ErrHelp.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{}
	fs.IntVar(&cfg.N, "n", DefaultN, "Number of Fibonacci terms to generate.")
	fs.StringVar(&cfg.Algo, "algo", DefaultAlgo, fmt.Sprintf("Generator to use (%s).", strings.Join(availableAlgos, ", ")))
	fs.StringVar(&cfg.Format, "format", string(format.StyleList), fmt.Sprintf("Output format (%s).", styleNames()))
	fs.StringVar(&cfg.OutputFile, "output", "", "Also write the sequence to this file.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for -output.")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write prometheus metrics in textfile format after the run.")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum generation time (e.g. 30s, 5m).")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the sequence.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for -quiet.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging on stderr.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for -verbose.")
	fs.BoolVar(&cfg.Details, "details", false, "Show execution details and memory statistics.")
	fs.BoolVar(&cfg.Details, "d", false, "Shorthand for -details.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Browse the sequence in an interactive viewer.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output (also honors NO_COLOR).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		err := apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
		fmt.Fprintln(errWriter, "Error:", err)
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)
	cfg.Algo = strings.ToLower(strings.TrimSpace(cfg.Algo))
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))

	if err := cfg.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errWriter, "Error:", err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks option values that flag parsing cannot. It returns a
// ConfigError describing the first problem found.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if len(availableAlgos) > 0 && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unknown generator %q (available: %s)", c.Algo, strings.Join(availableAlgos, ", "))
	}
	if _, err := format.ParseStyle(c.Format); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.Quiet && c.TUI {
		return apperrors.NewConfigError("-quiet and -tui cannot be combined")
	}
	return nil
}

func styleNames() string {
	styles := format.Styles()
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
