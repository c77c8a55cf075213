package domain

import "time"

// RunStatus defines where a run stands.
type RunStatus string

const (
	StatusRunning  RunStatus = "running"
	StatusFinished RunStatus = "finished" // Validator accepted the answer
	StatusFailed   RunStatus = "failed"   // Halted by an error or the cycle cap
)

// Transcript is the observable output of a run: the full ordered log,
// including routing rationales, plus the path the orchestrator followed.
type Transcript struct {
	RunID      string     `json:"run_id"`
	Request    string     `json:"request"`
	Messages   []Message  `json:"messages"`
	Path       []NodeID   `json:"path"`
	Cycles     int        `json:"cycles"`
	Status     RunStatus  `json:"status"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// Answer returns the latest researcher or coder message, which is the answer
// the Validator judged last. It returns false when none was produced.
func (t *Transcript) Answer() (Message, bool) {
	for i := len(t.Messages) - 1; i >= 0; i-- {
		m := t.Messages[i]
		if m.Author == AuthorResearcher || m.Author == AuthorCoder {
			return m, true
		}
	}
	return Message{}, false
}

// Clone returns a deep copy safe to hand to another owner.
func (t *Transcript) Clone() *Transcript {
	if t == nil {
		return nil
	}
	out := *t
	out.Messages = append([]Message(nil), t.Messages...)
	out.Path = append([]NodeID(nil), t.Path...)
	if t.FinishedAt != nil {
		ft := *t.FinishedAt
		out.FinishedAt = &ft
	}
	return &out
}
