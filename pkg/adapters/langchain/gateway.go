// Package langchain implements the inference gateway on top of langchaingo's
// OpenAI-compatible client. It serves OpenAI and Groq (through its
// OpenAI-compatible endpoint) with one code path.
package langchain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/time/rate"

	"github.com/supraja777/multiagent/pkg/domain"
)

// Provider defaults.
const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"

	GroqBaseURL      = "https://api.groq.com/openai/v1"
	DefaultGroqModel = "llama-3.3-70b-versatile"
	DefaultModel     = "gpt-4o-mini"
)

// Config holds gateway settings.
type Config struct {
	Provider    string
	Model       string
	BaseURL     string
	APIKey      string
	Temperature float64
	// RateLimit caps requests per second. Zero disables pacing.
	RateLimit float64
}

func (c *Config) applyDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderGroq
	}
	if c.Provider == ProviderGroq {
		if c.BaseURL == "" {
			c.BaseURL = GroqBaseURL
		}
		if c.Model == "" {
			c.Model = DefaultGroqModel
		}
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch c.Provider {
	case "", ProviderGroq, ProviderOpenAI:
	default:
		return fmt.Errorf("unsupported provider %q", c.Provider)
	}
	if c.APIKey == "" {
		return errors.New("api key is required")
	}
	if c.RateLimit < 0 {
		return errors.New("rate limit must not be negative")
	}
	return nil
}

// Gateway implements ports.Gateway over an llms.Model.
type Gateway struct {
	model   llms.Model
	config  Config
	limiter *rate.Limiter
	logger  *slog.Logger
}

// Option configures the gateway.
type Option func(*Gateway)

// WithLogger sets the gateway logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a gateway backed by langchaingo's OpenAI client.
func New(config Config, opts ...Option) (*Gateway, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	config.applyDefaults()

	clientOpts := []openai.Option{
		openai.WithModel(config.Model),
		openai.WithToken(config.APIKey),
	}
	if config.BaseURL != "" {
		clientOpts = append(clientOpts, openai.WithBaseURL(config.BaseURL))
	}

	llm, err := openai.New(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating OpenAI client: %w", err)
	}
	return NewWithModel(llm, config, opts...), nil
}

// NewWithModel wraps an existing model. Useful for tests and custom providers.
func NewWithModel(model llms.Model, config Config, opts ...Option) *Gateway {
	config.applyDefaults()
	g := &Gateway{
		model:  model,
		config: config,
		logger: slog.New(slog.DiscardHandler),
	}
	if config.RateLimit > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Complete implements ports.Gateway.
func (g *Gateway) Complete(ctx context.Context, req domain.Request) (*domain.Response, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	callOpts := []llms.CallOption{llms.WithTemperature(g.config.Temperature)}
	switch {
	case req.Schema != nil:
		callOpts = append(callOpts,
			llms.WithTools([]llms.Tool{decisionTool(*req.Schema)}),
			llms.WithToolChoice(llms.ToolChoice{
				Type:     "function",
				Function: &llms.FunctionReference{Name: req.Schema.Name},
			}),
		)
	case len(req.Tools) > 0:
		callOpts = append(callOpts, llms.WithTools(toolDefinitions(req.Tools)))
	}

	resp, err := g.model.GenerateContent(ctx, toMessages(req.Messages), callOpts...)
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("model returned no choices")
	}
	choice := resp.Choices[0]
	g.logger.DebugContext(ctx, "model responded",
		"model", g.config.Model, "stop_reason", choice.StopReason, "tool_calls", len(choice.ToolCalls))

	if req.Schema != nil {
		d, err := parseDecision(choice, *req.Schema)
		if err != nil {
			return nil, err
		}
		return &domain.Response{Decision: d}, nil
	}

	out := &domain.Response{Text: choice.Content}
	for _, tc := range choice.ToolCalls {
		if tc.FunctionCall == nil {
			continue
		}
		args := map[string]any{}
		if raw := strings.TrimSpace(tc.FunctionCall.Arguments); raw != "" {
			if err := json.Unmarshal([]byte(raw), &args); err != nil {
				return nil, fmt.Errorf("decoding arguments of tool %s: %w", tc.FunctionCall.Name, err)
			}
		}
		out.ToolCalls = append(out.ToolCalls, domain.ToolCall{ID: tc.ID, Name: tc.FunctionCall.Name, Args: args})
	}
	return out, nil
}

// decisionTool exposes a decision schema as a function whose "next"
// parameter is an enum of the allowed choices.
func decisionTool(s domain.DecisionSchema) llms.Tool {
	return llms.Tool{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        s.Name,
			Description: s.Description,
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"next": map[string]any{
						"type":        "string",
						"enum":        s.Choices,
						"description": s.NextDescription,
					},
					"reason": map[string]any{
						"type":        "string",
						"description": s.ReasonDescription,
					},
				},
				"required": []string{"next", "reason"},
			},
		},
	}
}

func toolDefinitions(tools []domain.Tool) []llms.Tool {
	out := make([]llms.Tool, 0, len(tools))
	for _, t := range tools {
		params := t.Parameters
		if params == nil {
			params = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		out = append(out, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  params,
			},
		})
	}
	return out
}

// parseDecision reads the forced function call. Some OpenAI-compatible
// servers answer with the JSON object as plain content instead, which is
// accepted too.
func parseDecision(choice *llms.ContentChoice, schema domain.DecisionSchema) (*domain.Decision, error) {
	raw := ""
	for _, tc := range choice.ToolCalls {
		if tc.FunctionCall != nil && tc.FunctionCall.Name == schema.Name {
			raw = tc.FunctionCall.Arguments
			break
		}
	}
	if raw == "" && choice.FuncCall != nil {
		raw = choice.FuncCall.Arguments
	}
	if raw == "" {
		raw = strings.TrimSpace(choice.Content)
	}
	if raw == "" {
		return nil, &domain.SchemaViolationError{Schema: schema.Name, Cause: errors.New("model returned no decision")}
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, &domain.SchemaViolationError{Schema: schema.Name, Cause: fmt.Errorf("decoding decision: %w", err)}
	}
	var d domain.Decision
	if err := mapstructure.Decode(fields, &d); err != nil {
		return nil, &domain.SchemaViolationError{Schema: schema.Name, Cause: err}
	}
	if err := d.Validate(schema); err != nil {
		return nil, err
	}
	return &d, nil
}
