package agents

import (
	"log/slog"

	"github.com/supraja777/multiagent/pkg/ports"
)

// DefaultMaxToolRounds bounds the tool rounds of one worker turn.
const DefaultMaxToolRounds = 6

// Option configures a node.
type Option func(*options)

type options struct {
	logger        *slog.Logger
	prompt        string
	tools         []ports.ToolRunner
	maxToolRounds int
}

func newOptions(prompt string, opts []Option) options {
	o := options{
		logger:        slog.New(slog.DiscardHandler),
		prompt:        prompt,
		maxToolRounds: DefaultMaxToolRounds,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the node logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPrompt replaces the node's system instruction. An empty prompt keeps the default.
func WithPrompt(prompt string) Option {
	return func(o *options) {
		if prompt != "" {
			o.prompt = prompt
		}
	}
}

// WithTools adds tools to a worker's reasoning loop.
func WithTools(tools ...ports.ToolRunner) Option {
	return func(o *options) {
		for _, t := range tools {
			if t != nil {
				o.tools = append(o.tools, t)
			}
		}
	}
}

// WithMaxToolRounds sets the tool round budget of a worker turn.
// Values below 1 are ignored.
func WithMaxToolRounds(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxToolRounds = n
		}
	}
}
