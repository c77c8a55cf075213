// Package gemini implements the inference gateway on Google's GenAI SDK.
// Routing decisions use Gemini's native response schema with an enum.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mitchellh/mapstructure"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/supraja777/multiagent/pkg/domain"
)

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "gemini-2.5-flash"

// Config holds gateway settings.
type Config struct {
	Model       string
	APIKey      string
	Temperature float64
	// RateLimit caps requests per second. Zero disables pacing.
	RateLimit float64
}

type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gateway implements ports.Gateway over the Gemini API.
type Gateway struct {
	models  generator
	config  Config
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New creates a Gemini gateway.
func New(ctx context.Context, config Config, logger *slog.Logger) (*Gateway, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newGateway(client.Models, config, logger), nil
}

func newGateway(models generator, config Config, logger *slog.Logger) *Gateway {
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	g := &Gateway{models: models, config: config, logger: logger}
	if config.RateLimit > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
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

	system, contents := toContents(req.Messages)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: system,
		Temperature:       genai.Ptr(float32(g.config.Temperature)),
	}
	switch {
	case req.Schema != nil:
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = decisionSchema(*req.Schema)
	case len(req.Tools) > 0:
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: declarations(req.Tools)}}
	}

	resp, err := g.models.GenerateContent(ctx, g.config.Model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, errors.New("model returned no candidates")
	}

	if req.Schema != nil {
		d, err := parseDecision(resp.Text(), *req.Schema)
		if err != nil {
			return nil, err
		}
		return &domain.Response{Decision: d}, nil
	}

	out := &domain.Response{Text: resp.Text()}
	for _, fc := range resp.FunctionCalls() {
		out.ToolCalls = append(out.ToolCalls, domain.ToolCall{ID: fc.ID, Name: fc.Name, Args: fc.Args})
	}
	g.logger.DebugContext(ctx, "model responded", "model", g.config.Model, "tool_calls", len(out.ToolCalls))
	return out, nil
}

func decisionSchema(s domain.DecisionSchema) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeObject,
		Description: s.Description,
		Properties: map[string]*genai.Schema{
			"next": {
				Type:        genai.TypeString,
				Format:      "enum",
				Enum:        s.Choices,
				Description: s.NextDescription,
			},
			"reason": {
				Type:        genai.TypeString,
				Description: s.ReasonDescription,
			},
		},
		Required:         []string{"next", "reason"},
		PropertyOrdering: []string{"next", "reason"},
	}
}

func declarations(tools []domain.Tool) []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		decl := &genai.FunctionDeclaration{Name: t.Name, Description: t.Description}
		if t.Parameters != nil {
			decl.ParametersJsonSchema = t.Parameters
		}
		out = append(out, decl)
	}
	return out
}

// toContents splits off the system instruction and maps the rest of the
// prompt to Gemini's user/model turns.
func toContents(msgs []domain.PromptMessage) (*genai.Content, []*genai.Content) {
	var system []string
	contents := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case domain.RoleSystem:
			system = append(system, m.Content)
		case domain.RoleAssistant:
			parts := []*genai.Part{}
			if m.Content != "" {
				parts = append(parts, genai.NewPartFromText(m.Content))
			}
			for _, tc := range m.ToolCalls {
				p := genai.NewPartFromFunctionCall(tc.Name, tc.Args)
				p.FunctionCall.ID = tc.ID
				parts = append(parts, p)
			}
			contents = append(contents, &genai.Content{Role: genai.RoleModel, Parts: parts})
		case domain.RoleTool:
			p := genai.NewPartFromFunctionResponse(m.Name, map[string]any{"output": m.Content})
			p.FunctionResponse.ID = m.ToolCallID
			contents = append(contents, &genai.Content{Role: genai.RoleUser, Parts: []*genai.Part{p}})
		default:
			text := m.Content
			if m.Name != "" && m.Name != string(domain.AuthorUser) {
				text = "[" + m.Name + "] " + text
			}
			contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
		}
	}
	if len(system) == 0 {
		return nil, contents
	}
	return genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser), contents
}

func parseDecision(raw string, schema domain.DecisionSchema) (*domain.Decision, error) {
	raw = strings.TrimSpace(raw)
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
