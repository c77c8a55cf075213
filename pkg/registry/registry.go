package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/supraja777/multiagent/pkg/domain"
	"github.com/supraja777/multiagent/pkg/ports"
	"github.com/supraja777/multiagent/pkg/schema"
)

// ErrToolNotFound is returned for calls naming a tool that was never registered.
var ErrToolNotFound = errors.New("tool not found")

// ErrInvalidArguments wraps argument validation failures.
var ErrInvalidArguments = errors.New("invalid arguments")

type entry struct {
	runner ports.ToolRunner
	schema schema.Schema
}

// Registry manages the tools offered to a worker. Definitions are listed
// in registration order.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]entry
	order []string
}

// New creates a registry holding tools. Nil tools are skipped.
func New(tools ...ports.ToolRunner) (*Registry, error) {
	r := &Registry{tools: make(map[string]entry)}
	for _, t := range tools {
		if t == nil {
			continue
		}
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a tool to the registry.
// If a tool with the same name exists, it is overwritten.
func (r *Registry) Register(tool ports.ToolRunner) error {
	def := tool.Definition()
	if def.Name == "" {
		return errors.New("tool definition has no name")
	}
	s, err := schema.FromParameters(def.Parameters)
	if err != nil {
		return fmt.Errorf("tool %s: %w", def.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[def.Name]; !exists {
		r.order = append(r.order, def.Name)
	}
	r.tools[def.Name] = entry{runner: tool, schema: s}
	return nil
}

// Has reports whether a tool named name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Definitions returns the definitions offered to the model.
func (r *Registry) Definitions() []domain.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]domain.Tool, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].runner.Definition())
	}
	return defs
}

// Execute validates the call arguments and runs the tool.
func (r *Registry) Execute(ctx context.Context, call domain.ToolCall) (domain.ToolResult, error) {
	r.mu.RLock()
	e, ok := r.tools[call.Name]
	r.mu.RUnlock()

	if !ok {
		return domain.ToolResult{}, fmt.Errorf("%w: %s", ErrToolNotFound, call.Name)
	}
	if err := schema.Validate(e.schema, call.Args); err != nil {
		return domain.ToolResult{}, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return e.runner.Execute(ctx, call)
}
