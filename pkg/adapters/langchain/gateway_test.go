package langchain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/supraja777/multiagent/pkg/domain"
)

type fakeModel struct {
	resp     *llms.ContentResponse
	err      error
	messages []llms.MessageContent
	opts     llms.CallOptions
}

func (f *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	for _, o := range options {
		o(&f.opts)
	}
	return f.resp, f.err
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func decisionResponse(name, args string) *llms.ContentResponse {
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{
		ToolCalls: []llms.ToolCall{{
			ID:           "call_1",
			Type:         "function",
			FunctionCall: &llms.FunctionCall{Name: name, Arguments: args},
		}},
	}}}
}

func schema() *domain.DecisionSchema {
	return &domain.DecisionSchema{Name: "route", Choices: domain.SupervisorChoices()}
}

func TestComplete_ForcedDecision(t *testing.T) {
	model := &fakeModel{resp: decisionResponse("route", `{"next":"coder","reason":"arithmetic"}`)}
	gw := NewWithModel(model, Config{APIKey: "k"})

	resp, err := gw.Complete(context.Background(), domain.Request{
		Messages: []domain.PromptMessage{domain.SystemPrompt("sys"), {Role: domain.RoleUser, Name: "user", Content: "2+2=?"}},
		Schema:   schema(),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Decision)
	assert.Equal(t, "coder", resp.Decision.Next)
	assert.Equal(t, "arithmetic", resp.Decision.Reason)

	require.Len(t, model.opts.Tools, 1)
	assert.Equal(t, "route", model.opts.Tools[0].Function.Name)
	choice, ok := model.opts.ToolChoice.(llms.ToolChoice)
	require.True(t, ok)
	assert.Equal(t, "route", choice.Function.Name)

	params := model.opts.Tools[0].Function.Parameters.(map[string]any)
	next := params["properties"].(map[string]any)["next"].(map[string]any)
	assert.Equal(t, domain.SupervisorChoices(), next["enum"])
}

func TestComplete_DecisionViolations(t *testing.T) {
	tests := []struct {
		name string
		resp *llms.ContentResponse
	}{
		{"out of domain", decisionResponse("route", `{"next":"validator","reason":"x"}`)},
		{"missing reason", decisionResponse("route", `{"next":"coder"}`)},
		{"not json", decisionResponse("route", `coder`)},
		{"no call", &llms.ContentResponse{Choices: []*llms.ContentChoice{{}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := NewWithModel(&fakeModel{resp: tt.resp}, Config{APIKey: "k"})
			_, err := gw.Complete(context.Background(), domain.Request{Schema: schema()})
			assert.ErrorIs(t, err, domain.ErrSchemaViolation)
		})
	}
}

func TestComplete_DecisionInContent(t *testing.T) {
	model := &fakeModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{
		Content: `{"next": "researcher", "reason": "needs facts"}`,
	}}}}
	resp, err := NewWithModel(model, Config{APIKey: "k"}).
		Complete(context.Background(), domain.Request{Schema: schema()})
	require.NoError(t, err)
	assert.Equal(t, "researcher", resp.Decision.Next)
}

func TestComplete_ToolCalls(t *testing.T) {
	model := &fakeModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{
		ToolCalls: []llms.ToolCall{{
			ID:           "call_9",
			Type:         "function",
			FunctionCall: &llms.FunctionCall{Name: "execute_code", Arguments: `{"code":"print(1)"}`},
		}},
	}}}}
	gw := NewWithModel(model, Config{APIKey: "k"})

	resp, err := gw.Complete(context.Background(), domain.Request{
		Messages: []domain.PromptMessage{
			{Role: domain.RoleUser, Name: "enhancer", Content: "count the A's"},
			{Role: domain.RoleAssistant, ToolCalls: []domain.ToolCall{{ID: "c0", Name: "execute_code", Args: map[string]any{"code": "1"}}}},
			{Role: domain.RoleTool, Name: "execute_code", ToolCallID: "c0", Content: "1"},
		},
		Tools: []domain.Tool{{Name: "execute_code", Description: "run code"}},
	})
	require.NoError(t, err)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "call_9", resp.ToolCalls[0].ID)
	assert.Equal(t, "print(1)", resp.ToolCalls[0].Args["code"])

	assert.Nil(t, model.opts.ToolChoice)
	require.Len(t, model.messages, 3)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[0].Role)
	assert.Equal(t, llms.TextContent{Text: "[enhancer] count the A's"}, model.messages[0].Parts[0])
	assert.Equal(t, llms.ChatMessageTypeAI, model.messages[1].Role)
	assert.Equal(t, llms.ChatMessageTypeTool, model.messages[2].Role)
	tr, ok := model.messages[2].Parts[0].(llms.ToolCallResponse)
	require.True(t, ok)
	assert.Equal(t, "c0", tr.ToolCallID)
}

func TestComplete_Errors(t *testing.T) {
	boom := errors.New("503")
	_, err := NewWithModel(&fakeModel{err: boom}, Config{APIKey: "k"}).
		Complete(context.Background(), domain.Request{})
	assert.ErrorIs(t, err, boom)

	_, err = NewWithModel(&fakeModel{resp: &llms.ContentResponse{}}, Config{APIKey: "k"}).
		Complete(context.Background(), domain.Request{})
	assert.Error(t, err)
}

func TestConfig(t *testing.T) {
	assert.Error(t, Config{}.Validate(), "api key required")
	assert.Error(t, Config{Provider: "anthropic", APIKey: "k"}.Validate())
	assert.NoError(t, Config{Provider: ProviderOpenAI, APIKey: "k"}.Validate())

	c := Config{APIKey: "k"}
	c.applyDefaults()
	assert.Equal(t, ProviderGroq, c.Provider)
	assert.Equal(t, GroqBaseURL, c.BaseURL)
	assert.Equal(t, DefaultGroqModel, c.Model)
}

func TestComplete_RateLimitHonoursContext(t *testing.T) {
	model := &fakeModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "hi"}}}}
	gw := NewWithModel(model, Config{APIKey: "k", RateLimit: 0.001})

	_, err := gw.Complete(context.Background(), domain.Request{})
	require.NoError(t, err, "the first call uses the burst")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = gw.Complete(ctx, domain.Request{})
	assert.Error(t, err)
}
