// Package shell runs external PDF tools through os/exec.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/sigil/internal/core/domain"
	"go.trai.ch/sigil/internal/core/ports"
	"go.trai.ch/zerr"
)

// stderrTailLimit bounds how much trailing stderr is attached to a failed
// command's error.
const stderrTailLimit = 2048

// allowListedEnvVars are the system environment variables tools inherit.
// Everything else is stripped so a tool behaves the same across machines.
var allowListedEnvVars = map[string]struct{}{
	"HOME":   {},
	"PATH":   {},
	"TERM":   {},
	"TMPDIR": {},
	"USER":   {},
}

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Run executes the command and waits for it. Standard output is captured
// for the caller to parse; standard error is streamed line by line to the
// logger and, when ctx carries a span, into the active step.
func (e *Executor) Run(ctx context.Context, c ports.Command) (ports.Result, error) {
	cmdEnv := resolveEnvironment(os.Environ(), c.Env)

	// Resolve the executable against the constructed environment's PATH,
	// not the process's.
	executable := c.Name
	if !filepath.IsAbs(c.Name) {
		if lp, err := lookPath(c.Name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, c.Args...) //nolint:gosec // tool chosen by toolchain probe
	// Restore the original command name in Args[0]; CommandContext sets it
	// to the resolved path.
	if len(cmd.Args) > 0 {
		cmd.Args[0] = c.Name
	}
	cmd.Dir = c.Dir
	cmd.Env = cmdEnv

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	stderrLog := &logWriter{logger: e.logger}
	tail := &tailWriter{limit: stderrTailLimit}
	sinks := []io.Writer{stderrLog, tail}
	if span := ports.SpanFromContext(ctx); span != nil {
		sinks = append(sinks, span)
	}
	cmd.Stderr = io.MultiWriter(sinks...)

	err := cmd.Run()
	_ = stderrLog.Close()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return ports.Result{}, zerr.With(errors.Join(domain.ErrToolNotFound, err), "tool", c.Name)
		}

		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		err = zerr.With(errors.Join(domain.ErrToolFailed, err), "tool", c.Name)
		err = zerr.With(err, "exit_code", exitCode)
		if t := tail.Tail(); t != "" {
			err = zerr.With(err, "stderr", t)
		}
		return ports.Result{Stdout: stdout.Bytes(), ExitCode: exitCode}, err
	}

	return ports.Result{Stdout: stdout.Bytes(), ExitCode: 0}, nil
}

// logWriter buffers writes and emits complete lines to the logger. Tool
// diagnostics land at warn level since tools only talk when something is
// off.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

// Close flushes any trailing partial line.
func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if msg == "" {
		return
	}
	w.logger.Warn(msg)
}

// tailWriter keeps the last limit bytes written to it.
type tailWriter struct {
	limit int
	buf   []byte
}

func (w *tailWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	if len(w.buf) > w.limit {
		w.buf = w.buf[len(w.buf)-w.limit:]
	}
	return len(p), nil
}

func (w *tailWriter) Tail() string {
	return strings.TrimSpace(string(w.buf))
}

// resolveEnvironment builds the tool environment: the allow-listed system
// variables with the command's extra variables merged over them.
func resolveEnvironment(sysEnv, extra []string) []string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, allowed := allowListedEnvVars[k]; allowed {
			envMap[k] = v
		}
	}

	for _, entry := range extra {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			envMap[k] = v
		}
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
