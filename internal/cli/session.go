package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/supraja777/multiagent/internal/config"
	"github.com/supraja777/multiagent/internal/logging"
	"github.com/supraja777/multiagent/internal/presentation/tui"
	"github.com/supraja777/multiagent/pkg/observability"
	"github.com/supraja777/multiagent/pkg/runner"
)

// RunOptions configures a CLI session.
type RunOptions struct {
	ConfigPath string
	// Request runs once and exits. Empty starts an interactive loop.
	Request   string
	JSON      bool
	Debug     bool
	MaxCycles int

	Stdin  io.Reader
	Stdout io.Writer
}

// RunSession loads the configuration and serves requests from the terminal
// (or NDJSON on stdio) until the input ends.
func RunSession(ctx context.Context, opts RunOptions) error {
	cfg, err := loadConfig(opts.ConfigPath, opts.Debug)
	if err != nil {
		return err
	}
	if opts.MaxCycles > 0 {
		cfg.Orchestrator.MaxCycles = opts.MaxCycles
	}
	if !opts.JSON {
		if err := promptMissingKeys(cfg, TerminalSecretReader(os.Stdin, os.Stderr)); err != nil {
			return err
		}
	}
	return runSession(ctx, cfg, opts, FactoryOptions{})
}

func runSession(ctx context.Context, cfg *config.Config, opts RunOptions, fopts FactoryOptions) error {
	in, out := opts.Stdin, opts.Stdout
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	logger := fopts.Logger
	if logger == nil {
		logger = logging.FromConfig(cfg.Log.Level, cfg.Log.Format)
	}
	fopts.Logger = logger

	var handler runner.IOHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(in, out)
	} else {
		handler = runner.NewTextHandler(in, out,
			runner.WithTextHandlerRenderer(tui.NewRenderer()),
			runner.WithVerbose(opts.Debug),
		)
		if cfg.Tools.Code.Confirm {
			fopts.Interceptor = runner.ConfirmationMiddleware(handler)
		}
	}

	r := runner.New(handler, runner.WithLogger(logger), runner.WithSignals(true))
	fopts.Hooks = append(fopts.Hooks, r.Hooks())
	if logger.Enabled(ctx, slog.LevelDebug) {
		fopts.Hooks = append(fopts.Hooks, observability.LoggingHooks(logger))
	}

	comps, err := createEngine(ctx, cfg, fopts)
	if err != nil {
		return err
	}
	defer func() {
		if err := comps.Close(); err != nil {
			logger.Warn("failed to close archive", "err", err)
		}
	}()

	if !opts.JSON && opts.Request == "" {
		tui.PrintBanner(out)
		_ = handler.SystemOutput(ctx, "Type a request, or 'exit' to quit.")
	}
	return r.Run(ctx, comps.Engine, opts.Request)
}

// loadConfig reads the configuration; debug forces the debug log level.
func loadConfig(path string, debug bool) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}
