package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyState is returned when an operation needs a non-empty log.
var ErrEmptyState = errors.New("conversation state is empty")

// ErrInvalidMessage is returned when a message cannot be appended.
var ErrInvalidMessage = errors.New("invalid message")

// ErrSchemaViolation matches any *SchemaViolationError.
var ErrSchemaViolation = errors.New("schema violation")

// ErrToolLoopExhausted is returned when a worker keeps requesting tools
// beyond its configured number of rounds.
var ErrToolLoopExhausted = errors.New("tool loop exhausted without a final answer")

// ErrCycleLimit matches any *CycleLimitError.
var ErrCycleLimit = errors.New("cycle limit exceeded")

// ErrIllegalTransition is returned when a node hands control to a node
// that is not a declared successor.
var ErrIllegalTransition = errors.New("illegal transition")

// ErrUnknownNode is returned when the graph references an unregistered node.
var ErrUnknownNode = errors.New("unknown node")

// ErrRunNotFound is returned when a run ID cannot be found in an archive.
var ErrRunNotFound = errors.New("run not found")

// SchemaViolationError reports model output that does not conform to the
// requested structured schema. It is fatal for the run.
type SchemaViolationError struct {
	Schema  string
	Field   string
	Value   string
	Allowed []string
	Cause   error
}

func (e *SchemaViolationError) Error() string {
	var sb strings.Builder
	sb.WriteString("schema violation")
	if e.Schema != "" {
		fmt.Fprintf(&sb, " in %s", e.Schema)
	}
	if e.Field != "" {
		fmt.Fprintf(&sb, ": field %q", e.Field)
		if len(e.Allowed) > 0 {
			fmt.Fprintf(&sb, " = %q not in %v", e.Value, e.Allowed)
		} else {
			sb.WriteString(" is empty or malformed")
		}
	}
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %v", e.Cause)
	}
	return sb.String()
}

func (e *SchemaViolationError) Is(target error) bool {
	return target == ErrSchemaViolation
}

func (e *SchemaViolationError) Unwrap() error {
	return e.Cause
}

// ToolExecutionError reports a failed tool invocation inside a worker loop.
type ToolExecutionError struct {
	Tool  string
	Cause error
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("tool %s failed: %v", e.Tool, e.Cause)
}

func (e *ToolExecutionError) Unwrap() error {
	return e.Cause
}

// CycleLimitError is returned when a run exceeds its Supervisor visit budget.
type CycleLimitError struct {
	Limit int
}

func (e *CycleLimitError) Error() string {
	return fmt.Sprintf("run halted after %d supervisor cycles without validation", e.Limit)
}

func (e *CycleLimitError) Is(target error) bool {
	return target == ErrCycleLimit
}

// NodeError wraps a failure with the node it happened in.
type NodeError struct {
	Node  NodeID
	Cause error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node %s: %v", e.Node, e.Cause)
}

func (e *NodeError) Unwrap() error {
	return e.Cause
}
