package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/supraja777/multiagent/pkg/domain"
	"github.com/supraja777/multiagent/pkg/ports"
)

// Mask replaces every redacted span.
const Mask = "***"

// DefaultSecretPatterns match common provider credentials and e-mail addresses.
var DefaultSecretPatterns = []string{
	`sk-[A-Za-z0-9_\-]{16,}`,   // OpenAI
	`gsk_[A-Za-z0-9]{20,}`,     // Groq
	`tvly-[A-Za-z0-9_\-]{16,}`, // Tavily
	`AIza[0-9A-Za-z_\-]{35}`,   // Google
	`(?i)bearer\s+[A-Za-z0-9._\-]{16,}`,
	`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`,
}

type redactMiddleware struct {
	next     ports.TranscriptStore
	patterns []*regexp.Regexp
}

// NewRedactMiddleware creates a middleware that masks every match of the
// patterns in the request and message contents before saving.
func NewRedactMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redaction pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.TranscriptStore) ports.TranscriptStore {
		return &redactMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *redactMiddleware) Save(ctx context.Context, transcript *domain.Transcript) error {
	// Work on a copy: the caller still owns the original.
	cloned := transcript.Clone()
	cloned.Request = m.redact(cloned.Request)
	cloned.Error = m.redact(cloned.Error)
	for i := range cloned.Messages {
		cloned.Messages[i].Content = m.redact(cloned.Messages[i].Content)
	}
	return m.next.Save(ctx, cloned)
}

func (m *redactMiddleware) redact(s string) string {
	for _, p := range m.patterns {
		s = p.ReplaceAllString(s, Mask)
	}
	return s
}

func (m *redactMiddleware) Load(ctx context.Context, runID string) (*domain.Transcript, error) {
	return m.next.Load(ctx, runID)
}

func (m *redactMiddleware) Delete(ctx context.Context, runID string) error {
	return m.next.Delete(ctx, runID)
}

func (m *redactMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
