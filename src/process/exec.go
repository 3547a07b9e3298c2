package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Exec launches real operating-system processes.
type Exec struct{}

// NewExec returns the os/exec backed launcher.
func NewExec() *Exec { return &Exec{} }

func (e *Exec) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out, &ExitError{Name: name, Code: exitErr.ExitCode(), Stderr: strings.TrimSpace(stderr.String())}
		}
		return out, fmt.Errorf("failed to run %s: %w", name, err)
	}
	return out, nil
}

func (e *Exec) Spawn(ctx context.Context, spec Spec) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Not CommandContext: the child must outlive this invocation.
	cmd := exec.Command(spec.Name, spec.Args...)
	cmd.Stdin = nil
	cmd.Stdout = spec.Stdout
	cmd.Stderr = spec.Stderr
	if spec.Detach {
		cmd.SysProcAttr = detachedAttr()
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", spec.Name, err)
	}

	h := &execHandle{cmd: cmd, done: make(chan struct{})}
	go h.wait()
	return h, nil
}

type execHandle struct {
	cmd  *exec.Cmd
	done chan struct{}
}

func (h *execHandle) wait() {
	_ = h.cmd.Wait()
	close(h.done)
}

func (h *execHandle) PID() int { return h.cmd.Process.Pid }

func (h *execHandle) Exited() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}
