package bundler

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/apiroutes/internal/core/domain"
	"go.trai.ch/apiroutes/internal/core/ports"
	"go.trai.ch/zerr"
)

// Environment variables describing the build request to a command bundler.
const (
	EnvDev          = "APIROUTES_DEV"
	EnvMinify       = "APIROUTES_MINIFY"
	EnvEnvironment  = "APIROUTES_ENVIRONMENT"
	EnvDevServerURL = "APIROUTES_DEV_SERVER_URL"
	EnvProjectRoot  = "APIROUTES_PROJECT_ROOT"
)

// Command compiles a route by running an external program.
// The route file path is appended to the configured arguments, the compiled
// code is read from stdout and stderr lines are forwarded to the logger.
type Command struct {
	argv   []string
	env    map[string]string
	logger ports.Logger
}

// NewCommand creates a Command bundler running argv with extra environment env.
func NewCommand(argv []string, env map[string]string, logger ports.Logger) *Command {
	return &Command{
		argv:   argv,
		env:    env,
		logger: logger,
	}
}

// Bundle runs the command for req.FilePath in req.ProjectRoot.
func (c *Command) Bundle(ctx context.Context, req domain.BundleRequest) (string, error) {
	if len(c.argv) == 0 {
		return "", domain.ErrMissingBundlerCommand
	}

	name := c.argv[0]
	args := append(append([]string{}, c.argv[1:]...), req.FilePath)

	cmdEnv := resolveEnvironment(os.Environ(), c.env, requestEnv(req))

	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, filepath.Separator) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command
	cmd.Args[0] = name
	cmd.Dir = req.ProjectRoot
	cmd.Env = cmdEnv

	var stdout bytes.Buffer
	stderr := &logWriter{logger: c.logger}
	cmd.Stdout = &stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	_ = stderr.Close()
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		cause := err
		if tail := stderr.Tail(); tail != "" {
			cause = errors.New(tail)
		}
		return "", zerr.With(zerr.Wrap(cause, domain.ErrBundlerCommandFailed.Error()), "exit_code", exitCode)
	}

	return stdout.String(), nil
}

// requestEnv describes req as environment variables.
func requestEnv(req domain.BundleRequest) map[string]string {
	return map[string]string{
		EnvDev:          strconv.FormatBool(req.Dev),
		EnvMinify:       strconv.FormatBool(req.Minify),
		EnvEnvironment:  req.Environment,
		EnvDevServerURL: req.DevServerURL,
		EnvProjectRoot:  req.ProjectRoot,
	}
}

// maxTailLines bounds how many stderr lines are kept for the error message.
const maxTailLines = 20

// logWriter forwards complete lines to the logger as warnings and keeps the
// last few for error reporting.
type logWriter struct {
	logger ports.Logger
	buf    []byte
	tail   []string
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

// Tail returns the last stderr lines joined by newlines.
func (w *logWriter) Tail() string {
	return strings.Join(w.tail, "\n")
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if strings.TrimSpace(msg) == "" {
		return
	}

	w.logger.Warn(msg)

	w.tail = append(w.tail, msg)
	if len(w.tail) > maxTailLines {
		w.tail = w.tail[len(w.tail)-maxTailLines:]
	}
}

// allowListedEnvVars are the system environment variables inherited by the
// bundler command.
var allowListedEnvVars = map[string]struct{}{
	"HOME": {},
	"TERM": {},
	"USER": {},
	"PATH": {},
}

// resolveEnvironment merges the allow-listed system environment, the
// configured environment and the request variables, in increasing priority.
func resolveEnvironment(sysEnv []string, configEnv, reqEnv map[string]string) []string {
	envMap := filterSystemEnv(sysEnv)

	for k, v := range configEnv {
		envMap[k] = v
	}
	for k, v := range reqEnv {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

func filterSystemEnv(sysEnv []string) map[string]string {
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
	return envMap
}

// lookPath searches for an executable in the PATH found in env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if p, ok := strings.CutPrefix(e, "PATH="); ok {
			path = p
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
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
