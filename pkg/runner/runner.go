package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/supraja777/multiagent/pkg/domain"
)

// Engine is the part of multiagent.Engine the runner needs.
type Engine interface {
	Run(ctx context.Context, request string) (*domain.Transcript, error)
}

// Runner reads requests from an IOHandler, runs them and streams each turn back.
type Runner struct {
	Handler IOHandler
	Logger  *slog.Logger

	// catchSignals cancels the in-flight run on SIGINT/SIGTERM instead of
	// killing the process.
	catchSignals bool
}

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithSignals makes an interrupt cancel the current run only.
func WithSignals(enabled bool) Option {
	return func(r *Runner) {
		r.catchSignals = enabled
	}
}

// New creates a Runner around handler.
func New(handler IOHandler, opts ...Option) *Runner {
	r := &Runner{
		Handler: handler,
		Logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Hooks returns lifecycle hooks that stream every node turn to the handler.
// They must be registered on the engine passed to Run.
func (r *Runner) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeLeave: func(ctx context.Context, e *domain.NodeEvent) {
			if err := r.Handler.Turn(ctx, e); err != nil {
				r.Logger.Warn("failed to present turn", "node_id", e.NodeID, "err", err)
			}
		},
	}
}

// Run executes request once. With an empty request it loops, reading
// requests from the handler until EOF, "exit" or "quit".
// Run failures are presented, not returned, in interactive mode.
func (r *Runner) Run(ctx context.Context, engine Engine, request string) error {
	if request = strings.TrimSpace(request); request != "" {
		clean, err := SanitizeInput(request)
		if err != nil {
			return err
		}
		return r.runOnce(ctx, engine, clean)
	}

	for {
		input, err := r.Handler.Input(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}
		if input == "exit" || input == "quit" {
			return nil
		}
		if err := r.runOnce(ctx, engine, input); err != nil {
			r.Logger.Debug("run ended with error", "err", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (r *Runner) runOnce(ctx context.Context, engine Engine, request string) error {
	runCtx := ctx
	if r.catchSignals {
		var stop context.CancelFunc
		runCtx, stop = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
	}

	transcript, runErr := engine.Run(runCtx, request)
	if err := r.Handler.Result(ctx, transcript, runErr); err != nil {
		return fmt.Errorf("output error: %w", err)
	}
	return runErr
}
