package pio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/pio-tools/pioglue/internal/log"
)

// Runner executes an external command in a directory and returns its standard
// output. Implementations report a failed or unstartable command as a process
// error carrying whatever the command wrote to stderr.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Raw, when set, receives each command line and the verbatim bytes of
	// both output streams.
	Raw log.RawLogger
}

func (r ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if r.Raw != nil {
		r.Raw.Command(append([]string{name}, args...))
	}

	err := cmd.Run()

	if r.Raw != nil {
		r.Raw.Output("stdout", stdout.Bytes())
		r.Raw.Output("stderr", stderr.Bytes())
	}

	if err != nil {
		errOut := strings.TrimSpace(stderr.String())
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ErrProcess(fmt.Sprintf("%s interrupted: %v", name, ctxErr), errOut)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, ErrProcess(fmt.Sprintf("%s exited with status %d", name, exitErr.ExitCode()), errOut)
		}
		return nil, ErrProcess(fmt.Sprintf("running %s: %v", name, err), errOut)
	}
	return stdout.Bytes(), nil
}
