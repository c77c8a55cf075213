package multiagent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/supraja777/multiagent/internal/runtime"
	"github.com/supraja777/multiagent/pkg/agents"
	"github.com/supraja777/multiagent/pkg/domain"
	"github.com/supraja777/multiagent/pkg/dsl"
	"github.com/supraja777/multiagent/pkg/ports"
)

// Engine is the high-level entry point of the library.
// It wires the five agents onto the routing graph and runs tasks through them.
type Engine struct {
	runtime       *runtime.Engine
	gateway       ports.Gateway
	search        ports.ToolRunner
	exec          ports.ToolRunner
	prompts       agents.Prompts
	maxCycles     int
	maxToolRounds int
	hooks         domain.LifecycleHooks
	archive       ports.TranscriptStore
	logger        *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxCycles bounds the Supervisor visits of a run (default 10).
func WithMaxCycles(n int) Option {
	return func(e *Engine) {
		e.maxCycles = n
	}
}

// WithMaxToolRounds bounds the tool rounds of one worker turn (default 6).
func WithMaxToolRounds(n int) Option {
	return func(e *Engine) {
		e.maxToolRounds = n
	}
}

// WithSearchTool gives the Researcher its web search tool.
func WithSearchTool(tool ports.ToolRunner) Option {
	return func(e *Engine) {
		e.search = tool
	}
}

// WithCodeTool gives the Coder its code execution tool.
func WithCodeTool(tool ports.ToolRunner) Option {
	return func(e *Engine) {
		e.exec = tool
	}
}

// WithPrompts overrides node instructions. Empty fields keep the defaults.
func WithPrompts(p agents.Prompts) Option {
	return func(e *Engine) {
		e.prompts = p
	}
}

// WithArchive saves every terminated run's transcript to store.
func WithArchive(store ports.TranscriptStore) Option {
	return func(e *Engine) {
		e.archive = store
	}
}

// New builds an engine around the given inference gateway.
func New(gateway ports.Gateway, opts ...Option) (*Engine, error) {
	if gateway == nil {
		return nil, errors.New("an inference gateway is required")
	}

	eng := &Engine{gateway: gateway}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.DiscardHandler)
	}
	if eng.search == nil {
		eng.logger.Warn("no search tool configured; the researcher will answer without web access")
	}
	if eng.exec == nil {
		eng.logger.Warn("no code tool configured; the coder will answer without executing code")
	}

	prompts := eng.prompts.Merge(agents.DefaultPrompts())
	common := []agents.Option{
		agents.WithLogger(eng.logger),
		agents.WithMaxToolRounds(eng.maxToolRounds),
	}
	with := func(prompt string, extra ...agents.Option) []agents.Option {
		out := append([]agents.Option{}, common...)
		out = append(out, agents.WithPrompt(prompt))
		return append(out, extra...)
	}

	nodes := []ports.Node{
		agents.NewSupervisor(gateway, with(prompts.Supervisor)...),
		agents.NewEnhancer(gateway, with(prompts.Enhancer)...),
		agents.NewResearcher(gateway, eng.search, with(prompts.Researcher)...),
		agents.NewCoder(gateway, eng.exec, with(prompts.Coder)...),
		agents.NewValidator(gateway, with(prompts.Validator)...),
	}

	rt, err := runtime.NewEngine(dsl.Topology(), nodes,
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithMaxCycles(eng.maxCycles),
		runtime.WithArchive(eng.archive),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}
	eng.runtime = rt

	return eng, nil
}

// Run executes one task. On failure the partial transcript is returned
// together with the error.
func (e *Engine) Run(ctx context.Context, request string) (*domain.Transcript, error) {
	return e.runtime.Run(ctx, request)
}

// Graph returns the routing topology for visualization.
func (e *Engine) Graph() *domain.Graph {
	return e.runtime.Graph()
}

// MaxCycles returns the effective Supervisor visit budget.
func (e *Engine) MaxCycles() int {
	return e.runtime.MaxCycles()
}

// Archive returns the transcript store, or nil when runs are not archived.
func (e *Engine) Archive() ports.TranscriptStore {
	return e.archive
}
