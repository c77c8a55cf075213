package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/supraja777/multiagent/pkg/domain"
)

// Event types written by JSONHandler.
const (
	EventTurn   = "turn"
	EventResult = "result"
	EventSystem = "system"
)

// Event is one line of the JSON-Lines stream.
type Event struct {
	Type       string             `json:"type"`
	RunID      string             `json:"run_id,omitempty"`
	Node       domain.NodeID      `json:"node,omitempty"`
	Next       domain.NodeID      `json:"next,omitempty"`
	Message    *domain.Message    `json:"message,omitempty"`
	Transcript *domain.Transcript `json:"transcript,omitempty"`
	Error      string             `json:"error,omitempty"`
	Text       string             `json:"text,omitempty"`
}

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
type JSONHandler struct {
	Reader *bufio.Reader
	Writer io.Writer

	mu      sync.Mutex
	encoder *json.Encoder
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		encoder: json.NewEncoder(w),
	}
}

// Input accepts either a JSON string or a raw line.
func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := h.Reader.ReadString('\n')
		text = strings.TrimSpace(text)
		if text == "" {
			if err != nil {
				return "", err
			}
			continue
		}

		var val string
		if jsonErr := json.Unmarshal([]byte(text), &val); jsonErr == nil {
			text = val
		}
		return SanitizeInput(text)
	}
}

func (h *JSONHandler) Turn(ctx context.Context, event *domain.NodeEvent) error {
	return h.emit(Event{
		Type:    EventTurn,
		RunID:   event.RunID,
		Node:    event.NodeID,
		Next:    event.Next,
		Message: event.Message,
	})
}

func (h *JSONHandler) Result(ctx context.Context, transcript *domain.Transcript, runErr error) error {
	ev := Event{Type: EventResult, Transcript: transcript}
	if transcript != nil {
		ev.RunID = transcript.RunID
	}
	if runErr != nil {
		ev.Error = runErr.Error()
	}
	return h.emit(ev)
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.emit(Event{Type: EventSystem, Text: msg})
}

func (h *JSONHandler) emit(ev Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.encoder.Encode(ev)
}
