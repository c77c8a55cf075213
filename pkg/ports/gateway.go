package ports

import (
	"context"

	"github.com/supraja777/multiagent/pkg/domain"
)

// Gateway wraps a language-model call.
//
// When req.Schema is set, implementations must force the model to return a
// Decision whose Next belongs to req.Schema.Choices and whose Reason is not
// empty, and fail with *domain.SchemaViolationError otherwise.
// Gateways are stateless between calls: all context travels in req.Messages.
type Gateway interface {
	Complete(ctx context.Context, req domain.Request) (*domain.Response, error)
}

// GatewayFunc adapts a function to the Gateway interface.
type GatewayFunc func(ctx context.Context, req domain.Request) (*domain.Response, error)

// Complete calls f(ctx, req).
func (f GatewayFunc) Complete(ctx context.Context, req domain.Request) (*domain.Response, error) {
	return f(ctx, req)
}
