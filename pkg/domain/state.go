package domain

import (
	"fmt"
	"time"
)

// Conversation is the append-only message log shared by every node of a run.
// It is not safe for concurrent mutation: exactly one node is active at a time.
type Conversation struct {
	messages []Message
	now      func() time.Time
}

// NewConversation creates a log seeded with the user's request at index 0.
func NewConversation(request string) *Conversation {
	c := &Conversation{now: time.Now}
	c.messages = append(c.messages, Message{
		Index:     0,
		Author:    AuthorUser,
		Role:      RoleUser,
		Content:   request,
		CreatedAt: c.now(),
	})
	return c
}

// Append adds a message at the end of the log and returns it.
// The index is assigned by the log.
func (c *Conversation) Append(author Author, role Role, content string) (Message, error) {
	if author == "" || !author.Valid() {
		return Message{}, fmt.Errorf("%w: author %q", ErrInvalidMessage, author)
	}
	if role == "" {
		role = RoleUser
	}
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	msg := Message{
		Index:     len(c.messages),
		Author:    author,
		Role:      role,
		Content:   content,
		CreatedAt: now(),
	}
	c.messages = append(c.messages, msg)
	return msg, nil
}

// First returns the original user request.
func (c *Conversation) First() (Message, error) {
	if c == nil || len(c.messages) == 0 {
		return Message{}, ErrEmptyState
	}
	return c.messages[0], nil
}

// Last returns the most recent message.
func (c *Conversation) Last() (Message, error) {
	if c == nil || len(c.messages) == 0 {
		return Message{}, ErrEmptyState
	}
	return c.messages[len(c.messages)-1], nil
}

// Len returns the number of messages in the log.
func (c *Conversation) Len() int {
	if c == nil {
		return 0
	}
	return len(c.messages)
}

// Messages returns a copy of the log.
func (c *Conversation) Messages() []Message {
	if c == nil {
		return nil
	}
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Prompt renders the whole log as prompt messages, preceded by the given
// system instruction when it is not empty.
func (c *Conversation) Prompt(system string) []PromptMessage {
	out := make([]PromptMessage, 0, c.Len()+1)
	if system != "" {
		out = append(out, SystemPrompt(system))
	}
	for _, m := range c.Messages() {
		out = append(out, m.Prompt())
	}
	return out
}
