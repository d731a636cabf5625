package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/agbru/fibseq/internal/cli"
	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/fibonacci"
	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/logging"
	"github.com/agbru/fibseq/internal/metrics"
	"github.com/agbru/fibseq/internal/orchestration"
)

// runGenerate generates the sequence with every selected generator, prints
// the result and records metrics. Progress, comparison tables in scripted
// modes and errors go to ErrWriter so that out carries only the sequence.
func (a *Application) runGenerate(ctx context.Context, generators []fibonacci.Generator, out io.Writer) int {
	cfg := a.Config
	scripted := cfg.Quiet || cfg.Format == string(format.StyleJSON)

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	if scripted {
		reporter = orchestration.NullProgressReporter{}
	}

	mem := metrics.NewMemoryCollector()
	before := mem.Snapshot()

	a.Logger.Debug("starting generation",
		logging.Int("n", cfg.N),
		logging.String("algo", cfg.Algo),
		logging.Int("generators", len(generators)),
	)
	results := orchestration.ExecuteAll(ctx, generators, cfg.N, reporter, a.ErrWriter)

	m := metrics.NewMetrics()
	for i, res := range results {
		m.ObserveGeneration(res.Name, statusFor(res.Err), res.Sequence.Len(), res.Duration)
		a.Logger.Debug("generator finished",
			logging.String("generator", res.Name),
			logging.Duration("duration", res.Duration),
			logging.Int("terms", res.Sequence.Len()),
			logging.Err(res.Err),
		)
		results[i].Err = a.withTimeoutLimit(res)
	}

	tableOut := out
	if scripted {
		tableOut = a.ErrWriter
	}
	code := a.presentResults(results, tableOut, out)

	if cfg.Details && !scripted && code == apperrors.ExitSuccess {
		after := mem.Snapshot()
		cli.DisplayMemoryStats(after, out)
		a.Logger.Debug("memory", logging.Uint64("allocated", after.AllocatedSince(before)))
	}

	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			a.Logger.Error("writing metrics textfile", err, logging.String("path", cfg.MetricsFile))
			if code == apperrors.ExitSuccess {
				code = apperrors.ExitErrorGeneric
			}
		} else {
			a.Logger.Debug("metrics textfile written", logging.String("path", cfg.MetricsFile))
		}
	}
	return code
}

// presentResults prints the best result to out. Comparison runs first print
// a table to tableOut and fail on disagreement.
func (a *Application) presentResults(results []orchestration.Result, tableOut, out io.Writer) int {
	var best *orchestration.Result
	if len(results) == 1 {
		if err := results[0].Err; err != nil {
			return apperrors.HandleGenerationError(err, results[0].Duration, a.ErrWriter)
		}
		best = &results[0]
	} else {
		var code int
		best, code = orchestration.AnalyzeComparisonResults(results, cli.CLIResultPresenter{}, tableOut)
		if best == nil {
			return code
		}
		if !a.Config.Quiet && a.Config.Format != string(format.StyleJSON) {
			fmt.Fprintln(out)
		}
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Format:     a.Config.Format,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Details:    a.Config.Details,
	}
	if err := cli.DisplayResultWithConfig(out, best.Sequence, a.Config.N, best.Duration, best.Name, outputCfg); err != nil {
		a.Logger.Error("writing result", err, logging.String("output", a.Config.OutputFile))
		return apperrors.HandleGenerationError(err, best.Duration, a.ErrWriter)
	}
	return apperrors.ExitSuccess
}

// withTimeoutLimit reports a deadline failure as a TimeoutError carrying the
// configured limit. Other errors are returned unchanged.
func (a *Application) withTimeoutLimit(res orchestration.Result) error {
	if !errors.Is(res.Err, context.DeadlineExceeded) {
		return res.Err
	}
	return apperrors.GenerationError{
		Generator: res.Name,
		Cause:     apperrors.TimeoutError{Operation: "generate", Limit: a.Config.Timeout},
	}
}

// statusFor maps a generation error to a metrics status label.
func statusFor(err error) string {
	switch {
	case err == nil:
		return metrics.StatusSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return metrics.StatusTimeout
	case errors.Is(err, context.Canceled):
		return metrics.StatusCanceled
	default:
		return metrics.StatusFailure
	}
}
