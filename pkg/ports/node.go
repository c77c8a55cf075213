package ports

import (
	"context"

	"github.com/supraja777/multiagent/pkg/domain"
)

// Turn is what a node returns: the message it appended and where control goes next.
type Turn struct {
	Message domain.Message
	Next    domain.NodeID
}

// Node is a runnable graph node. Run reads the shared conversation, appends
// at most one message to it and names its successor.
type Node interface {
	ID() domain.NodeID
	Run(ctx context.Context, conv *domain.Conversation) (Turn, error)
}
