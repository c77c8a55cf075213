package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/supraja777/multiagent"
	"github.com/supraja777/multiagent/internal/logging"
	httpAdapter "github.com/supraja777/multiagent/pkg/adapters/http"
	"github.com/supraja777/multiagent/pkg/adapters/mcp"
	"github.com/supraja777/multiagent/pkg/domain"
	"github.com/supraja777/multiagent/pkg/observability"
	"github.com/supraja777/multiagent/pkg/runner"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions configures the HTTP and MCP servers.
type ServeOptions struct {
	ConfigPath string
	Debug      bool
	// Addr overrides server.addr.
	Addr string
	// Transport is stdio or sse, for MCP only.
	Transport string
	// Port overrides server.mcp_port.
	Port int
}

// Serve runs the HTTP API until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, opts ServeOptions) error {
	cfg, err := loadConfig(opts.ConfigPath, opts.Debug)
	if err != nil {
		return err
	}
	if opts.Addr != "" {
		cfg.Server.Addr = opts.Addr
	}
	logger := logging.FromConfig(cfg.Log.Level, cfg.Log.Format)

	metrics := observability.NewMetrics()
	hooks := []domain.LifecycleHooks{metrics.Hooks()}
	if logger.Enabled(ctx, slog.LevelDebug) {
		hooks = append(hooks, observability.LoggingHooks(logger))
	}

	comps, err := createEngine(ctx, cfg, FactoryOptions{
		Logger:      logger,
		Hooks:       hooks,
		Interceptor: runner.AutoApproveMiddleware(),
	})
	if err != nil {
		return err
	}
	defer comps.Close()

	handler := httpAdapter.NewHandler(comps.Engine,
		httpAdapter.WithStore(comps.Archive),
		httpAdapter.WithMetrics(metrics.Handler()),
		httpAdapter.WithVersion(multiagent.Version),
		httpAdapter.WithLogger(logger),
	)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "address", srv.Addr, "provider", cfg.Gateway.Provider)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			return srv.Close()
		}
		logger.Info("server stopped gracefully")
		return nil
	}
}

// ServeMCP exposes the engine as an MCP server over stdio or SSE.
func ServeMCP(ctx context.Context, opts ServeOptions) error {
	cfg, err := loadConfig(opts.ConfigPath, opts.Debug)
	if err != nil {
		return err
	}
	if opts.Port > 0 {
		cfg.Server.MCPPort = opts.Port
	}
	// Stdout carries JSON-RPC; logs stay on stderr.
	logger := logging.FromConfig(cfg.Log.Level, cfg.Log.Format)

	var hooks []domain.LifecycleHooks
	if logger.Enabled(ctx, slog.LevelDebug) {
		hooks = append(hooks, observability.LoggingHooks(logger))
	}
	comps, err := createEngine(ctx, cfg, FactoryOptions{
		Logger:      logger,
		Hooks:       hooks,
		Interceptor: runner.AutoApproveMiddleware(),
	})
	if err != nil {
		return err
	}
	defer comps.Close()

	srv := mcp.NewServer(comps.Engine, multiagent.Version, logger)

	switch opts.Transport {
	case "", "stdio":
		logger.Info("starting MCP server (stdio)")
		return srv.ServeStdio()
	case "sse":
		logger.Info("starting MCP server (SSE)", "port", cfg.Server.MCPPort)
		return srv.ServeSSE(ctx, cfg.Server.MCPPort)
	default:
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", opts.Transport)
	}
}
