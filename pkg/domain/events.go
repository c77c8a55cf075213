package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeEnter  EventType = "node_enter"
	EventNodeLeave  EventType = "node_leave"
	EventToolCall   EventType = "tool_call"
	EventToolReturn EventType = "tool_return"
	EventRunFinish  EventType = "run_finish"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
}

// NodeEvent represents entry or exit from a node.
// On leave, Message holds the message the node appended and Next its successor.
type NodeEvent struct {
	EventBase
	NodeID  NodeID   `json:"node_id"`
	Cycle   int      `json:"cycle"`
	Message *Message `json:"message,omitempty"`
	Next    NodeID   `json:"next,omitempty"`
}

// ToolEvent represents a tool execution inside a worker loop.
type ToolEvent struct {
	EventBase
	NodeID   NodeID        `json:"node_id"`
	ToolName string        `json:"tool_name"`
	Input    any           `json:"input,omitempty"`
	Output   any           `json:"output,omitempty"`
	IsError  bool          `json:"is_error,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// RunEvent is emitted once when a run terminates, normally or not.
type RunEvent struct {
	EventBase
	Status   RunStatus     `json:"status"`
	Cycles   int           `json:"cycles"`
	Messages int           `json:"messages"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnNodeEnter  func(context.Context, *NodeEvent)
	OnNodeLeave  func(context.Context, *NodeEvent)
	OnToolCall   func(context.Context, *ToolEvent)
	OnToolReturn func(context.Context, *ToolEvent)
	OnRunFinish  func(context.Context, *RunEvent)
}

type hooksKey struct{}

// ContextWithHooks attaches hooks to ctx so nodes can report tool activity.
func ContextWithHooks(ctx context.Context, hooks LifecycleHooks, runID string, node NodeID) context.Context {
	return context.WithValue(ctx, hooksKey{}, &hookScope{hooks: hooks, runID: runID, node: node})
}

type hookScope struct {
	hooks LifecycleHooks
	runID string
	node  NodeID
}

// EmitToolCall reports a tool invocation to the hooks bound to ctx, if any.
func EmitToolCall(ctx context.Context, name string, input any) {
	scope, ok := ctx.Value(hooksKey{}).(*hookScope)
	if !ok || scope.hooks.OnToolCall == nil {
		return
	}
	scope.hooks.OnToolCall(ctx, &ToolEvent{
		EventBase: EventBase{Timestamp: time.Now(), Type: EventToolCall, RunID: scope.runID},
		NodeID:    scope.node,
		ToolName:  name,
		Input:     input,
	})
}

// EmitToolReturn reports a tool result to the hooks bound to ctx, if any.
func EmitToolReturn(ctx context.Context, name string, output any, isError bool, d time.Duration) {
	scope, ok := ctx.Value(hooksKey{}).(*hookScope)
	if !ok || scope.hooks.OnToolReturn == nil {
		return
	}
	scope.hooks.OnToolReturn(ctx, &ToolEvent{
		EventBase: EventBase{Timestamp: time.Now(), Type: EventToolReturn, RunID: scope.runID},
		NodeID:    scope.node,
		ToolName:  name,
		Output:    output,
		IsError:   isError,
		Duration:  d,
	})
}
