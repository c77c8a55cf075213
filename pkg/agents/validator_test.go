package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supraja777/multiagent/internal/testutils"
	"github.com/supraja777/multiagent/pkg/domain"
	"github.com/supraja777/multiagent/pkg/ports"
)

func TestValidator_Verdicts(t *testing.T) {
	tests := []struct {
		next string
		want domain.NodeID
	}{
		{"FINISH", domain.NodeEnd},
		{"END", domain.NodeEnd},
		{"supervisor", domain.NodeSupervisor},
	}
	for _, tt := range tests {
		t.Run(tt.next, func(t *testing.T) {
			conv := domain.NewConversation("2+2=?")
			_, _ = conv.Append(domain.AuthorCoder, domain.RoleUser, "4")

			turn, err := NewValidator(testutils.NewScriptedGateway(testutils.Decide(tt.next, "checked"))).
				Run(context.Background(), conv)
			require.NoError(t, err)
			assert.Equal(t, tt.want, turn.Next)
			assert.Equal(t, domain.AuthorValidator, turn.Message.Author)
			assert.Equal(t, "checked", turn.Message.Content)
		})
	}
}

func TestValidator_SeesOnlyQuestionAndAnswer(t *testing.T) {
	conv := domain.NewConversation("2+2=?")
	_, _ = conv.Append(domain.AuthorSupervisor, domain.RoleUser, "arithmetic")
	_, _ = conv.Append(domain.AuthorCoder, domain.RoleUser, "4")

	gw := testutils.NewScriptedGateway(testutils.Decide("FINISH", "correct"))
	_, err := NewValidator(gw).Run(context.Background(), conv)
	require.NoError(t, err)

	req := gw.Calls()[0]
	require.Len(t, req.Messages, 3)
	assert.Equal(t, domain.RoleSystem, req.Messages[0].Role)
	assert.Equal(t, domain.RoleUser, req.Messages[1].Role)
	assert.Equal(t, "2+2=?", req.Messages[1].Content)
	assert.Equal(t, domain.RoleAssistant, req.Messages[2].Role)
	assert.Equal(t, "4", req.Messages[2].Content)
	assert.Equal(t, domain.ValidatorChoices(), req.Schema.Choices)
}

// Identical (question, answer) pairs must produce identical verdicts when
// the gateway is deterministic, whatever the rest of the history holds.
func TestValidator_Deterministic(t *testing.T) {
	gw := ports.GatewayFunc(func(_ context.Context, req domain.Request) (*domain.Response, error) {
		next := "supervisor"
		if req.Messages[1].Content == "2+2=?" && req.Messages[2].Content == "4" {
			next = "FINISH"
		}
		return &domain.Response{Decision: &domain.Decision{Next: next, Reason: "r"}}, nil
	})
	v := NewValidator(gw)

	short := domain.NewConversation("2+2=?")
	_, _ = short.Append(domain.AuthorCoder, domain.RoleUser, "4")

	long := domain.NewConversation("2+2=?")
	_, _ = long.Append(domain.AuthorSupervisor, domain.RoleUser, "try research")
	_, _ = long.Append(domain.AuthorResearcher, domain.RoleUser, "five")
	_, _ = long.Append(domain.AuthorValidator, domain.RoleUser, "wrong")
	_, _ = long.Append(domain.AuthorCoder, domain.RoleUser, "4")

	a, err := v.Run(context.Background(), short)
	require.NoError(t, err)
	b, err := v.Run(context.Background(), long)
	require.NoError(t, err)
	assert.Equal(t, a.Next, b.Next)
	assert.Equal(t, domain.NodeEnd, a.Next)
}

func TestValidator_RejectsOutOfDomain(t *testing.T) {
	conv := domain.NewConversation("q")
	_, err := NewValidator(testutils.NewScriptedGateway(testutils.Decide("coder", "x"))).
		Run(context.Background(), conv)

	var sv *domain.SchemaViolationError
	require.ErrorAs(t, err, &sv)
	assert.Equal(t, "validate", sv.Schema)
	assert.Equal(t, 1, conv.Len())
}
