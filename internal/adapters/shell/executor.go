// Package shell spawns composed invocations as child processes.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/creack/pty"
	"github.com/google/shlex"
	"go.trai.ch/cmk/internal/core/domain"
	"go.trai.ch/cmk/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// waitDelay bounds how long output is drained after the process is killed.
const waitDelay = 2 * time.Second

// defaultPTYSize is used when stdout is not a terminal.
var defaultPTYSize = pty.Winsize{Rows: 24, Cols: 120}

// Executor implements ports.Executor using os/exec and pty.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor. Output without a destination is
// logged line by line.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Execute spawns the invocation and waits for it to exit.
func (e *Executor) Execute(ctx context.Context, inv *domain.Invocation, opts ports.ExecOptions) error {
	argv, err := buildArgv(inv)
	if err != nil {
		return err
	}

	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	if err := os.MkdirAll(inv.WorkingDir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create working directory"), "dir", inv.WorkingDir)
	}

	env := resolveEnvironment(os.Environ(), inv.Environment)

	executable := argv[0]
	if !filepath.IsAbs(executable) {
		if lp, lookErr := lookPath(executable, env); lookErr == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, argv[1:]...) //nolint:gosec // user configured program
	cmd.Args[0] = argv[0]
	cmd.Dir = inv.WorkingDir
	cmd.Env = env
	cmd.WaitDelay = waitDelay

	stdoutLog := &logWriter{logger: e.logger, level: "info"}
	stderrLog := &logWriter{logger: e.logger, level: "error"}
	defer func() {
		_ = stdoutLog.Close()
		_ = stderrLog.Close()
	}()

	stdout := sink(opts.Stdout, stdoutLog)
	stderr := sink(opts.Stderr, stderrLog)

	if opts.TTY {
		err = runPTY(cmd, stdout)
	} else {
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		err = cmd.Run()
	}

	if err != nil {
		return exitError(ctx, err, inv)
	}
	return nil
}

// buildArgv renders every token; raw line tokens are split with shell-like
// word rules but never expanded.
func buildArgv(inv *domain.Invocation) ([]string, error) {
	argv := []string{inv.Program}

	for _, tok := range inv.Arguments.Tokens() {
		if tok.Kind != domain.TokenLine {
			argv = append(argv, tok.Render())
			continue
		}

		words, err := shlex.Split(tok.Render())
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to split argument line"), "line", tok.Value)
		}
		argv = append(argv, words...)
	}

	return argv, nil
}

func sink(w io.Writer, fallback *logWriter) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}

// runPTY runs cmd under a pseudo-terminal. Both streams arrive on out.
func runPTY(cmd *exec.Cmd, out io.Writer) error {
	ptmx, err := pty.StartWithSize(cmd, ptySize())
	if err != nil {
		return zerr.Wrap(err, "failed to start pty")
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		// Reading the master returns EIO once the child side closes.
		_, _ = io.Copy(out, ptmx)
	}()

	err = cmd.Wait()
	<-ioDone
	return err
}

// ptySize mirrors the parent terminal, falling back to defaultPTYSize.
func ptySize() *pty.Winsize {
	size := defaultPTYSize

	fd := int(os.Stdout.Fd()) //nolint:gosec // fd fits in int
	if term.IsTerminal(fd) {
		if cols, rows, err := term.GetSize(fd); err == nil && cols > 0 && rows > 0 {
			size = pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)} //nolint:gosec // terminal sizes fit
		}
	}
	return &size
}

func exitError(ctx context.Context, err error, inv *domain.Invocation) error {
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	wrapped := zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && inv.Timeout > 0 {
		wrapped = zerr.With(wrapped, "timeout", inv.Timeout.String())
	}
	return wrapped
}

type logWriter struct {
	logger ports.Logger
	level  string
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

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	// PTYs may introduce \r.
	msg := strings.TrimSuffix(string(line), "\r")

	if w.level == "info" {
		w.logger.Info(msg)
	} else {
		w.logger.Error(zerr.New(msg))
	}
}

// resolveEnvironment applies the overrides on top of the inherited
// environment. The result is sorted by name.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the PATH of env rather than the
// PATH of the current process.
func lookPath(file string, env []string) (string, error) {
	if strings.ContainsRune(file, filepath.Separator) {
		if err := findExecutable(file); err != nil {
			return "", err
		}
		return file, nil
	}

	var path string
	for _, e := range env {
		if p, ok := strings.CutPrefix(e, "PATH="); ok {
			path = p
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
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
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
