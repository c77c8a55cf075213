package domain

// ToolCall represents a model's request to invoke a tool inside a worker loop.
// Compatible with OpenAI/MCP tool call schemas.
type ToolCall struct {
	ID   string         `json:"id" yaml:"id" mapstructure:"id"`                         // Unique ID for this specific call (from the model or generated)
	Name string         `json:"name" yaml:"name" mapstructure:"name"`                   // Function name to call
	Args map[string]any `json:"args,omitempty" yaml:"args,omitempty" mapstructure:"args"` // Arguments for the function
}

// ToolResult represents the output of a tool invocation.
type ToolResult struct {
	ID      string `json:"id"` // Must match the ToolCall.ID
	Name    string `json:"name,omitempty"`
	Result  any    `json:"result,omitempty"`
	IsError bool   `json:"is_error,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Tool defines metadata about a tool offered to the model.
type Tool struct {
	Name        string         `json:"name" yaml:"name" mapstructure:"name"`
	Description string         `json:"description" yaml:"description" mapstructure:"description"`
	Parameters  map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty" mapstructure:"parameters"`
}

// Request is a single inference call.
type Request struct {
	Messages []PromptMessage
	// Schema, when set, forces a structured Decision.
	Schema *DecisionSchema
	// Tools, when set, lets the model answer with tool calls.
	Tools []Tool
}

// Response is the outcome of an inference call.
type Response struct {
	Text      string
	Decision  *Decision
	ToolCalls []ToolCall
}
