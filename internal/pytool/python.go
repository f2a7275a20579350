// Package pytool wraps the Python interpreter invocations used by the
// checklist: byte-compilation, inline probe scripts, and full template runs.
// Checkers depend on the Tool interface so tests can substitute a
// deterministic mock instead of spawning real processes.
package pytool

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// DefaultPython is the interpreter used when no binary is configured.
const DefaultPython = "python3"

// Result captures the observable outcome of one interpreter invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	// TimedOut is set when the invocation was killed by its deadline.
	TimedOut bool
}

// Ok reports whether the invocation completed with exit status zero.
func (r *Result) Ok() bool {
	return !r.TimedOut && r.ExitCode == 0
}

// Tool is the subprocess boundary for all interpreter-backed checks.
type Tool interface {
	// CompileCheck byte-compiles the file (python -m py_compile).
	CompileCheck(ctx context.Context, path string, timeout time.Duration) (*Result, error)

	// RunScript executes an inline script (python -c).
	RunScript(ctx context.Context, script string, timeout time.Duration) (*Result, error)

	// RunFile runs the file as a standalone program.
	RunFile(ctx context.Context, path string, timeout time.Duration) (*Result, error)

	// Version reports the interpreter version string.
	Version(ctx context.Context) (string, error)
}

// Interpreter is the real Tool backed by a Python binary on PATH.
type Interpreter struct {
	python string
}

var _ Tool = (*Interpreter)(nil)

// NewInterpreter creates an Interpreter for the given binary. An empty
// binary falls back to DefaultPython.
func NewInterpreter(python string) *Interpreter {
	if python == "" {
		python = DefaultPython
	}
	return &Interpreter{python: python}
}

func (i *Interpreter) CompileCheck(ctx context.Context, path string, timeout time.Duration) (*Result, error) {
	return i.run(ctx, timeout, "-m", "py_compile", path)
}

func (i *Interpreter) RunScript(ctx context.Context, script string, timeout time.Duration) (*Result, error) {
	return i.run(ctx, timeout, "-c", script)
}

func (i *Interpreter) RunFile(ctx context.Context, path string, timeout time.Duration) (*Result, error) {
	return i.run(ctx, timeout, path)
}

func (i *Interpreter) Version(ctx context.Context) (string, error) {
	res, err := i.run(ctx, 10*time.Second, "--version")
	if err != nil {
		return "", err
	}
	// Older interpreters print the version to stderr.
	v := strings.TrimSpace(res.Stdout)
	if v == "" {
		v = strings.TrimSpace(res.Stderr)
	}
	return v, nil
}

// run spawns the interpreter and waits for it, bounded by timeout. Exit
// errors become a Result with a non-zero ExitCode; only invocation failures
// (e.g. binary not found) are returned as errors.
func (i *Interpreter) run(ctx context.Context, timeout time.Duration, args ...string) (*Result, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(timeoutCtx, i.python, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	res := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if errors.Is(timeoutCtx.Err(), context.DeadlineExceeded) {
		res.TimedOut = true
		res.ExitCode = -1
		slog.DebugContext(ctx, "interpreter timed out",
			"python", i.python, "args", args, "timeout", timeout)
		return res, nil
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			slog.DebugContext(ctx, "interpreter exited nonzero",
				"python", i.python, "args", args,
				"exit_code", res.ExitCode, "duration", time.Since(start))
			return res, nil
		}
		slog.DebugContext(ctx, "interpreter invocation failed",
			"python", i.python, "args", args, "error", err)
		return nil, err
	}

	slog.DebugContext(ctx, "interpreter finished",
		"python", i.python, "args", args, "duration", time.Since(start))
	return res, nil
}
