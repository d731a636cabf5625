// Package app wires configuration, generators, presentation and metrics into
// the fibseq command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"

	"github.com/rs/zerolog"

	"github.com/agbru/fibseq/internal/config"
	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/fibonacci"
	"github.com/agbru/fibseq/internal/logging"
	"github.com/agbru/fibseq/internal/orchestration"
	"github.com/agbru/fibseq/internal/tui"
	"github.com/agbru/fibseq/internal/ui"
)

// Application represents the fibseq application instance.
type Application struct {
	Config    config.AppConfig
	Factory   fibonacci.GeneratorFactory
	ErrWriter io.Writer
	Logger    logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom GeneratorFactory for the application.
func WithFactory(f fibonacci.GeneratorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithLogger replaces the stderr console logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = fibonacci.NewDefaultFactory()
	}

	availableAlgos := append(app.Factory.List(), orchestration.AllGenerators)

	programName := "fibseq"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableAlgos)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	level := zerolog.InfoLevel
	if a.Config.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(a.Config.NoColor)
	if a.Logger == nil {
		a.Logger = logging.NewConsoleLogger(a.ErrWriter, "app", a.Config.NoColor)
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, shutdownSignals...)
	defer stopSignals()

	generators := orchestration.GetGeneratorsToRun(a.Config.Algo, a.Factory)
	if len(generators) == 0 {
		fmt.Fprintf(a.ErrWriter, "Error: no generator registered for %q\n", a.Config.Algo)
		return apperrors.ExitErrorConfig
	}

	if a.Config.TUI {
		return a.runTUI(ctx, generators)
	}
	return a.runGenerate(ctx, generators, out)
}

// runTUI launches the interactive sequence viewer.
func (a *Application) runTUI(ctx context.Context, generators []fibonacci.Generator) int {
	a.Logger.Debug("starting viewer", logging.Int("n", a.Config.N), logging.String("algo", a.Config.Algo))
	return tui.Run(ctx, generators, a.Config.N, Version)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
