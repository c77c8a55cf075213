package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/supraja777/multiagent/pkg/domain"
)

// ToolName is the name the model uses to call the code tool.
const ToolName = "execute_code"

// DefaultTimeout bounds a single execution.
const DefaultTimeout = 30 * time.Second

// maxOutput caps captured stdout/stderr so a chatty program cannot flood the prompt.
const maxOutput = 16 << 10

// Runner implements ports.ToolRunner by executing code with local interpreters.
// Only languages in its registry can run (allow-listing).
type Runner struct {
	registry map[string]InterpreterConfig
	timeout  time.Duration
	baseDir  string
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithTimeout bounds each execution.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// NewRunner creates a runner for the given interpreters.
func NewRunner(interpreters map[string]InterpreterConfig, opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: make(map[string]InterpreterConfig),
		timeout:  DefaultTimeout,
	}
	for lang, in := range interpreters {
		r.registry[strings.ToLower(lang)] = in
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Languages returns the registered languages, sorted.
func (r *Runner) Languages() []string {
	langs := make([]string, 0, len(r.registry))
	for l := range r.registry {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// Definition implements ports.ToolRunner.
func (r *Runner) Definition() domain.Tool {
	langs := r.Languages()
	return domain.Tool{
		Name:        ToolName,
		Description: "Execute a program and return its standard output. Print every result you need.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"language": map[string]any{
					"type":        "string",
					"enum":        langs,
					"description": "Language of the program.",
				},
				"code": map[string]any{
					"type":        "string",
					"description": "Complete source code to run.",
				},
			},
			"required": []string{"code"},
		},
	}
}

type codeArgs struct {
	Language string `mapstructure:"language"`
	Code     string `mapstructure:"code"`
}

// Execute implements ports.ToolRunner. Compilation errors, non-zero exits
// and timeouts are returned as error results carrying stderr.
func (r *Runner) Execute(ctx context.Context, call domain.ToolCall) (domain.ToolResult, error) {
	result := domain.ToolResult{ID: call.ID}

	var args codeArgs
	if err := mapstructure.Decode(call.Args, &args); err != nil {
		result.IsError = true
		result.Error = fmt.Sprintf("invalid arguments: %v", err)
		return result, nil
	}
	if strings.TrimSpace(args.Code) == "" {
		result.IsError = true
		result.Error = "code is required"
		return result, nil
	}

	lang := strings.ToLower(strings.TrimSpace(args.Language))
	if lang == "" && len(r.registry) == 1 {
		lang = r.Languages()[0]
	}
	in, ok := r.registry[lang]
	if !ok {
		result.IsError = true
		result.Error = fmt.Sprintf("language %q is not available (have %s)", args.Language, strings.Join(r.Languages(), ", "))
		return result, nil
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, in.Command, in.Args...)
	cmd.Dir = r.baseDir
	cmd.WaitDelay = time.Second
	cmd.Stdin = strings.NewReader(args.Code)
	env := cmd.Environ()
	for k, v := range in.Environment {
		env = append(env, k+"="+v)
	}
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &limitedWriter{buf: &stdout, max: maxOutput}
	cmd.Stderr = &limitedWriter{buf: &stderr, max: maxOutput}

	err := cmd.Run()
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			result.IsError = true
			result.Error = fmt.Sprintf("execution timed out after %s", r.timeout)
			return result, nil
		}
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		result.IsError = true
		result.Error = fmt.Sprintf("execution failed: %v. Stderr: %s", err, strings.TrimSpace(stderr.String()))
		return result, nil
	}

	result.Result = stdout.String()
	return result, nil
}

type limitedWriter struct {
	buf *bytes.Buffer
	max int
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if room := w.max - w.buf.Len(); room > 0 {
		if len(p) > room {
			w.buf.Write(p[:room])
		} else {
			w.buf.Write(p)
		}
	}
	return len(p), nil
}
