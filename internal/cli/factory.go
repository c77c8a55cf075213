package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/supraja777/multiagent"
	"github.com/supraja777/multiagent/internal/config"
	"github.com/supraja777/multiagent/pkg/adapters/file"
	"github.com/supraja777/multiagent/pkg/adapters/gemini"
	"github.com/supraja777/multiagent/pkg/adapters/langchain"
	"github.com/supraja777/multiagent/pkg/adapters/memory"
	"github.com/supraja777/multiagent/pkg/adapters/process"
	"github.com/supraja777/multiagent/pkg/adapters/redis"
	"github.com/supraja777/multiagent/pkg/adapters/tavily"
	"github.com/supraja777/multiagent/pkg/domain"
	"github.com/supraja777/multiagent/pkg/observability"
	"github.com/supraja777/multiagent/pkg/persistence/middleware"
	"github.com/supraja777/multiagent/pkg/ports"
	"github.com/supraja777/multiagent/pkg/runner"
)

// FactoryOptions tunes createEngine beyond what the configuration holds.
type FactoryOptions struct {
	Logger *slog.Logger
	Hooks  []domain.LifecycleHooks
	// Interceptor, when set, guards the code execution tool.
	Interceptor runner.ToolInterceptor
	// Gateway replaces the configured provider. Used by tests.
	Gateway ports.Gateway
}

// Components is a wired engine plus the resources that outlive a run.
type Components struct {
	Engine  *multiagent.Engine
	Archive ports.TranscriptStore
	closers []func() error
}

// Close releases archive connections.
func (c *Components) Close() error {
	var errs []error
	for _, closeFn := range c.closers {
		errs = append(errs, closeFn())
	}
	return errors.Join(errs...)
}

// createEngine initializes an engine from cfg with standard CLI conventions.
func createEngine(ctx context.Context, cfg *config.Config, opts FactoryOptions) (*Components, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	gateway := opts.Gateway
	if gateway == nil {
		var err error
		if gateway, err = newGateway(ctx, cfg, logger); err != nil {
			return nil, err
		}
	}

	codeTool, err := newCodeTool(cfg)
	if err != nil {
		return nil, err
	}
	codeTool = runner.Guard(codeTool, opts.Interceptor)

	archive, closeArchive, err := newArchive(cfg)
	if err != nil {
		return nil, err
	}
	comps := &Components{Archive: archive}
	if closeArchive != nil {
		comps.closers = append(comps.closers, closeArchive)
	}

	engineOpts := []multiagent.Option{
		multiagent.WithLogger(logger),
		multiagent.WithMaxCycles(cfg.Orchestrator.MaxCycles),
		multiagent.WithMaxToolRounds(cfg.Agents.MaxToolRounds),
		multiagent.WithLifecycleHooks(observability.Chain(opts.Hooks...)),
	}
	if search := newSearchTool(cfg); search != nil {
		engineOpts = append(engineOpts, multiagent.WithSearchTool(search))
	}
	if codeTool != nil {
		engineOpts = append(engineOpts, multiagent.WithCodeTool(codeTool))
	}
	if archive != nil {
		engineOpts = append(engineOpts, multiagent.WithArchive(archive))
	}

	engine, err := multiagent.New(gateway, engineOpts...)
	if err != nil {
		_ = comps.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	comps.Engine = engine
	return comps, nil
}

func newGateway(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.Gateway, error) {
	g := cfg.Gateway
	if g.APIKey == "" {
		return nil, fmt.Errorf("no API key for provider %q: set %s or gateway.api_key", g.Provider, cfg.GatewayKeyEnv())
	}

	switch g.Provider {
	case config.ProviderGemini:
		return gemini.New(ctx, gemini.Config{
			Model:       g.Model,
			APIKey:      g.APIKey,
			Temperature: g.Temperature,
			RateLimit:   g.RateLimit,
		}, logger)
	case config.ProviderGroq, config.ProviderOpenAI:
		return langchain.New(langchain.Config{
			Provider:    g.Provider,
			Model:       g.Model,
			BaseURL:     g.BaseURL,
			APIKey:      g.APIKey,
			Temperature: g.Temperature,
			RateLimit:   g.RateLimit,
		}, langchain.WithLogger(logger))
	default:
		return nil, fmt.Errorf("unsupported provider %q", g.Provider)
	}
}

// newSearchTool returns nil when no Tavily key is configured.
func newSearchTool(cfg *config.Config) ports.ToolRunner {
	s := cfg.Tools.Search
	if s.APIKey == "" {
		return nil
	}
	return tavily.New(tavily.Config{
		APIKey:     s.APIKey,
		MaxResults: s.MaxResults,
		Timeout:    s.Timeout,
	})
}

// newCodeTool returns nil when code execution is disabled.
func newCodeTool(cfg *config.Config) (ports.ToolRunner, error) {
	c := cfg.Tools.Code
	if !c.Enabled {
		return nil, nil
	}
	interpreters, err := process.LoadInterpreters(c.InterpretersFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load interpreters: %w", err)
	}
	return process.NewRunner(interpreters, process.WithTimeout(c.Timeout)), nil
}

// newArchive builds the transcript store, wrapped in the redaction
// middleware when enabled. The returned closer may be nil.
func newArchive(cfg *config.Config) (ports.TranscriptStore, func() error, error) {
	a := cfg.Archive

	var (
		store   ports.TranscriptStore
		closeFn func() error
	)
	switch a.Backend {
	case config.ArchiveNone, "":
		return nil, nil, nil
	case config.ArchiveMemory:
		store = memory.NewStore()
	case config.ArchiveFile:
		store = file.New(a.Dir)
	case config.ArchiveRedis:
		rs := redis.New(a.RedisAddr, "", 0, redis.WithTTL(a.TTL))
		store, closeFn = rs, rs.Close
	default:
		return nil, nil, fmt.Errorf("unsupported archive backend %q", a.Backend)
	}

	if a.Redact {
		mw, err := middleware.NewRedactMiddleware(middleware.DefaultSecretPatterns)
		if err != nil {
			return nil, nil, err
		}
		store = middleware.Chain(store, mw)
	}
	return store, closeFn, nil
}
