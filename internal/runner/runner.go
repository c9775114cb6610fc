// Package runner executes submitted code by language.
//
// Interpreted languages run directly; compiled languages build into a
// temporary location first, and compile errors are reported without running.
// Every run is bounded by a timeout and works in throwaway temp files named
// by a unique run ID, so concurrent runs never collide.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds a single run (including compilation) when no other
// timeout is configured.
const DefaultTimeout = 10 * time.Second

// previewNotice answers execute requests for browser-side languages.
const previewNotice = "Live preview for HTML/CSS/JS is not supported on the backend. " +
	"Please open your HTML file in a browser to see the result."

// Result carries a run's captured output and error text.
// Both fields are rendered verbatim by the caller; either may be empty.
type Result struct {
	Output string
	Error  string
}

// Logger is the logging surface the runner needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}

// Runner executes code with per-run isolation and timeouts.
type Runner struct {
	timeout time.Duration
	log     Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout sets the per-run timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the runner's logger.
func WithLogger(log Logger) Option {
	return func(r *Runner) {
		r.log = log
	}
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		timeout: DefaultTimeout,
		log:     nopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes code under the named language and returns its output and
// error text. Unknown languages produce an error result, not a Go error;
// the returned error is reserved for internal failures such as temp file
// creation.
func (r *Runner) Run(ctx context.Context, code, language string) (Result, error) {
	runID := uuid.New().String()
	language = strings.ToLower(language)

	r.log.Debug("run %s: language=%s bytes=%d", runID, language, len(code))

	switch language {
	case "python":
		return r.runInterpreted(ctx, runID, code, ".py", "python3")
	case "php":
		return r.runInterpreted(ctx, runID, code, ".php", "php")
	case "c":
		return r.runCompiled(ctx, runID, code, ".c", "gcc")
	case "cpp":
		return r.runCompiled(ctx, runID, code, ".cpp", "g++")
	case "swift":
		return r.runCompiled(ctx, runID, code, ".swift", "swiftc")
	case "go":
		return r.runGo(ctx, runID, code)
	case "java":
		return r.runJava(ctx, runID, code)
	case "lua":
		return r.runLua(ctx, code)
	case "html", "css", "javascript":
		return Result{Output: previewNotice}, nil
	default:
		return Result{Error: fmt.Sprintf("Unsupported language: %s", language)}, nil
	}
}

// writeTemp writes code to a run-scoped temp file and returns its path.
func (r *Runner) writeTemp(runID, code, suffix string) (string, error) {
	path := fmt.Sprintf("%s%crun-%s%s", os.TempDir(), os.PathSeparator, runID, suffix)
	if err := os.WriteFile(path, []byte(code), 0o600); err != nil {
		return "", fmt.Errorf("writing temp source: %w", err)
	}
	return path, nil
}

// execute runs a command with the configured timeout and captures its
// output. Missing commands and timeouts become error text, never Go errors:
// they are results the user sees.
func (r *Runner) execute(ctx context.Context, name string, args ...string) Result {
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if runCtx.Err() == context.DeadlineExceeded {
		return Result{Error: fmt.Sprintf("Execution timed out after %d seconds", int(r.timeout.Seconds()))}
	}
	if errors.Is(err, exec.ErrNotFound) {
		return Result{Error: fmt.Sprintf("Command not found: %s. Please ensure it is installed and in your PATH.", name)}
	}

	// A non-zero exit reports whatever the process wrote to stderr; the
	// run itself is considered delivered.
	return Result{Output: stdout.String(), Error: stderr.String()}
}
