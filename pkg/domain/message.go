package domain

import "time"

// Author identifies who wrote a message. It is used for audit and logging.
type Author string

const (
	AuthorUser       Author = "user"
	AuthorEnhancer   Author = "enhancer"
	AuthorResearcher Author = "researcher"
	AuthorCoder      Author = "coder"
	AuthorSupervisor Author = "supervisor"
	AuthorValidator  Author = "validator"
)

// Valid reports whether the author tag belongs to the known set.
func (a Author) Valid() bool {
	switch a {
	case AuthorUser, AuthorEnhancer, AuthorResearcher, AuthorCoder, AuthorSupervisor, AuthorValidator:
		return true
	}
	return false
}

// IsWorker reports whether the author is one of the three worker agents.
func (a Author) IsWorker() bool {
	return a == AuthorEnhancer || a == AuthorResearcher || a == AuthorCoder
}

// Role tells a model how to read a message when history is re-submitted.
// It is deliberately separate from Author.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is a single entry of the conversation log.
// Messages are immutable once appended; the log only hands out copies.
type Message struct {
	Index     int       `json:"index"`
	Author    Author    `json:"author"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// PromptMessage is a message as submitted to the inference gateway.
// It carries the prompting role, an optional speaker name and, inside a
// worker's reasoning loop, tool call traces that never reach the log.
type PromptMessage struct {
	Role       Role       `json:"role"`
	Name       string     `json:"name,omitempty"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// SystemPrompt builds the leading system instruction of a prompt.
func SystemPrompt(content string) PromptMessage {
	return PromptMessage{Role: RoleSystem, Content: content}
}

// Prompt converts a logged message into its prompt form.
func (m Message) Prompt() PromptMessage {
	return PromptMessage{
		Role:    m.Role,
		Name:    string(m.Author),
		Content: m.Content,
	}
}
