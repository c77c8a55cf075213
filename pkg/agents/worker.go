package agents

import (
	"context"
	"fmt"

	"github.com/supraja777/multiagent/pkg/domain"
	"github.com/supraja777/multiagent/pkg/ports"
)

// Worker is the shell shared by the Enhancer, Researcher and Coder: it
// submits the conversation under its own instruction, runs a bounded tool
// loop when it has tools, appends exactly one message and hands control to
// a fixed successor.
type Worker struct {
	id      domain.NodeID
	author  domain.Author
	next    domain.NodeID
	gateway ports.Gateway
	opts    options
}

// NewWorker creates a worker. Most callers want NewEnhancer, NewResearcher or NewCoder.
func NewWorker(id domain.NodeID, author domain.Author, next domain.NodeID, gateway ports.Gateway, opts ...Option) *Worker {
	return &Worker{
		id:      id,
		author:  author,
		next:    next,
		gateway: gateway,
		opts:    newOptions("", opts),
	}
}

// NewEnhancer creates the worker that rewrites vague requests. It never uses tools.
func NewEnhancer(gateway ports.Gateway, opts ...Option) *Worker {
	w := NewWorker(domain.NodeEnhancer, domain.AuthorEnhancer, domain.NodeSupervisor, gateway,
		append([]Option{WithPrompt(enhancerPrompt)}, opts...)...)
	w.opts.tools = nil
	return w
}

// NewResearcher creates the worker that answers with the search tool.
func NewResearcher(gateway ports.Gateway, search ports.ToolRunner, opts ...Option) *Worker {
	return NewWorker(domain.NodeResearcher, domain.AuthorResearcher, domain.NodeValidator, gateway,
		append([]Option{WithPrompt(researcherPrompt), WithTools(search)}, opts...)...)
}

// NewCoder creates the worker that answers by executing code.
func NewCoder(gateway ports.Gateway, exec ports.ToolRunner, opts ...Option) *Worker {
	return NewWorker(domain.NodeCoder, domain.AuthorCoder, domain.NodeValidator, gateway,
		append([]Option{WithPrompt(coderPrompt), WithTools(exec)}, opts...)...)
}

// ID implements ports.Node.
func (w *Worker) ID() domain.NodeID { return w.id }

// Tools returns the definitions offered to the model.
func (w *Worker) Tools() []domain.Tool {
	defs := make([]domain.Tool, 0, len(w.opts.tools))
	for _, t := range w.opts.tools {
		defs = append(defs, t.Definition())
	}
	return defs
}

// Run implements ports.Node.
func (w *Worker) Run(ctx context.Context, conv *domain.Conversation) (ports.Turn, error) {
	loop := &toolLoop{
		gateway:   w.gateway,
		tools:     w.opts.tools,
		maxRounds: w.opts.maxToolRounds,
		logger:    w.opts.logger.With("node", w.id),
	}

	answer, err := loop.run(ctx, conv.Prompt(w.opts.prompt))
	if err != nil {
		return ports.Turn{}, fmt.Errorf("%s: %w", w.id, err)
	}

	msg, err := conv.Append(w.author, domain.RoleUser, answer)
	if err != nil {
		return ports.Turn{}, err
	}
	return ports.Turn{Message: msg, Next: w.next}, nil
}
