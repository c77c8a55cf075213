package langchain

import (
	"encoding/json"

	"github.com/tmc/langchaingo/llms"

	"github.com/supraja777/multiagent/pkg/domain"
)

// toMessages converts prompt messages to langchaingo's format. The chat
// message format has no speaker name, so messages written by an agent carry
// their author as a "[name]" prefix.
func toMessages(msgs []domain.PromptMessage) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case domain.RoleSystem:
			out = append(out, llms.TextParts(llms.ChatMessageTypeSystem, m.Content))

		case domain.RoleTool:
			out = append(out, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{llms.ToolCallResponse{
					ToolCallID: m.ToolCallID,
					Name:       m.Name,
					Content:    m.Content,
				}},
			})

		case domain.RoleAssistant:
			msg := llms.MessageContent{Role: llms.ChatMessageTypeAI}
			if m.Content != "" {
				msg.Parts = append(msg.Parts, llms.TextContent{Text: m.Content})
			}
			for _, tc := range m.ToolCalls {
				args, _ := json.Marshal(tc.Args)
				msg.Parts = append(msg.Parts, llms.ToolCall{
					ID:   tc.ID,
					Type: "function",
					FunctionCall: &llms.FunctionCall{
						Name:      tc.Name,
						Arguments: string(args),
					},
				})
			}
			if len(msg.Parts) == 0 {
				msg.Parts = []llms.ContentPart{llms.TextContent{}}
			}
			out = append(out, msg)

		default:
			out = append(out, llms.TextParts(llms.ChatMessageTypeHuman, attributed(m)))
		}
	}
	return out
}

func attributed(m domain.PromptMessage) string {
	if m.Name == "" || m.Name == string(domain.AuthorUser) {
		return m.Content
	}
	return "[" + m.Name + "] " + m.Content
}
