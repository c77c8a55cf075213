package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/supraja777/multiagent/internal/validator"
	"github.com/supraja777/multiagent/pkg/domain"
	"github.com/supraja777/multiagent/pkg/ports"
)

// DefaultMaxCycles is the default number of Supervisor visits per run.
const DefaultMaxCycles = 10

// Engine drives a run through the routing graph: it executes the current
// node, checks the hop it returns against the declared edges and stops at
// the terminal signal or the cycle cap.
//
// An Engine holds no per-run state and may serve concurrent runs.
type Engine struct {
	graph     *domain.Graph
	nodes     map[domain.NodeID]ports.Node
	maxCycles int
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	archive   ports.TranscriptStore
	newRunID  func() string
	now       func() time.Time
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMaxCycles bounds the Supervisor visits of a run. Values below 1 are ignored.
func WithMaxCycles(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.maxCycles = n
		}
	}
}

// WithArchive saves the transcript of every terminated run.
func WithArchive(store ports.TranscriptStore) EngineOption {
	return func(e *Engine) {
		e.archive = store
	}
}

// WithRunIDGenerator replaces the UUID run ID generator.
func WithRunIDGenerator(fn func() string) EngineOption {
	return func(e *Engine) {
		if fn != nil {
			e.newRunID = fn
		}
	}
}

// NewEngine binds nodes to the graph. Every declared node must have exactly
// one implementation and every implementation must be declared.
func NewEngine(graph *domain.Graph, nodes []ports.Node, opts ...EngineOption) (*Engine, error) {
	if err := validator.ValidateGraph(graph); err != nil {
		return nil, fmt.Errorf("invalid graph: %w", err)
	}

	e := &Engine{
		graph:     graph,
		nodes:     make(map[domain.NodeID]ports.Node, len(nodes)),
		maxCycles: DefaultMaxCycles,
		logger:    slog.New(slog.DiscardHandler),
		newRunID:  uuid.NewString,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	for _, n := range nodes {
		if n == nil {
			continue
		}
		id := n.ID()
		if _, ok := graph.Node(id); !ok {
			return nil, fmt.Errorf("node %q is not declared in the graph: %w", id, domain.ErrUnknownNode)
		}
		if _, dup := e.nodes[id]; dup {
			return nil, fmt.Errorf("node %q registered twice", id)
		}
		e.nodes[id] = n
	}
	for _, decl := range graph.Nodes {
		if _, ok := e.nodes[decl.ID]; !ok {
			return nil, fmt.Errorf("node %q has no implementation: %w", decl.ID, domain.ErrUnknownNode)
		}
	}

	return e, nil
}

// Graph returns the topology the engine runs.
func (e *Engine) Graph() *domain.Graph {
	return e.graph
}

// MaxCycles returns the configured Supervisor visit budget.
func (e *Engine) MaxCycles() int {
	return e.maxCycles
}

// Run executes one task from the user's request to the terminal signal.
// On failure it returns the partial transcript together with the error.
func (e *Engine) Run(ctx context.Context, request string) (*domain.Transcript, error) {
	runID := e.newRunID()
	logger := e.logger.With("run_id", runID)
	started := e.now()

	conv := domain.NewConversation(request)
	tr := &domain.Transcript{
		RunID:     runID,
		Request:   request,
		Status:    domain.StatusRunning,
		StartedAt: started,
	}

	logger.InfoContext(ctx, "run started")
	runErr := e.loop(ctx, runID, conv, tr, logger)

	finished := e.now()
	tr.Messages = conv.Messages()
	tr.FinishedAt = &finished
	if runErr != nil {
		tr.Status = domain.StatusFailed
		tr.Error = runErr.Error()
		logger.ErrorContext(ctx, "run failed", "err", runErr, "cycles", tr.Cycles, "messages", len(tr.Messages))
	} else {
		tr.Status = domain.StatusFinished
		logger.InfoContext(ctx, "run finished", "cycles", tr.Cycles, "messages", len(tr.Messages), "duration", finished.Sub(started))
	}

	if e.hooks.OnRunFinish != nil {
		e.hooks.OnRunFinish(ctx, &domain.RunEvent{
			EventBase: domain.EventBase{Timestamp: finished, Type: domain.EventRunFinish, RunID: runID},
			Status:    tr.Status,
			Cycles:    tr.Cycles,
			Messages:  len(tr.Messages),
			Duration:  finished.Sub(started),
			Err:       runErr,
		})
	}

	if e.archive != nil {
		// The archive is an audit sink: a failed save never changes the run outcome.
		if err := e.archive.Save(context.WithoutCancel(ctx), tr.Clone()); err != nil {
			logger.WarnContext(ctx, "failed to archive transcript", "err", err)
		}
	}

	return tr, runErr
}

func (e *Engine) loop(ctx context.Context, runID string, conv *domain.Conversation, tr *domain.Transcript, logger *slog.Logger) error {
	current := e.graph.Entry
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		decl, _ := e.graph.Node(current)
		if decl.Kind == domain.NodeKindDecider {
			if tr.Cycles >= e.maxCycles {
				return &domain.CycleLimitError{Limit: e.maxCycles}
			}
			tr.Cycles++
		}

		node, ok := e.nodes[current]
		if !ok {
			return fmt.Errorf("node %q: %w", current, domain.ErrUnknownNode)
		}
		tr.Path = append(tr.Path, current)

		if e.hooks.OnNodeEnter != nil {
			e.hooks.OnNodeEnter(ctx, &domain.NodeEvent{
				EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventNodeEnter, RunID: runID},
				NodeID:    current,
				Cycle:     tr.Cycles,
			})
		}

		turn, err := node.Run(domain.ContextWithHooks(ctx, e.hooks, runID, current), conv)
		if err != nil {
			return &domain.NodeError{Node: current, Cause: err}
		}
		if !e.graph.Allows(current, turn.Next) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrIllegalTransition, current, turn.Next)
		}

		if e.hooks.OnNodeLeave != nil {
			msg := turn.Message
			e.hooks.OnNodeLeave(ctx, &domain.NodeEvent{
				EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventNodeLeave, RunID: runID},
				NodeID:    current,
				Cycle:     tr.Cycles,
				Message:   &msg,
				Next:      turn.Next,
			})
		}

		logger.DebugContext(ctx, fmt.Sprintf("Current node: %s -> goto: %s", current, turn.Next), "cycle", tr.Cycles)

		if turn.Next == domain.NodeEnd {
			return nil
		}
		current = turn.Next
	}
}
