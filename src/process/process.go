package process

import (
	"context"
	"fmt"
	"io"
	"syscall"
)

// Launcher is the only place external programs are started or probed.
type Launcher interface {
	// Output runs the command to completion and returns its standard output.
	// A non-zero exit is reported as *ExitError.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// Spawn starts a long-running command and returns without waiting for it.
	Spawn(ctx context.Context, spec Spec) (Handle, error)

	// Alive reports whether the operating system still hosts pid.
	Alive(pid int) bool

	// Signal delivers sig to pid.
	Signal(pid int, sig syscall.Signal) error
}

// Spec describes a command started by Spawn. Standard input is always closed;
// nil writers discard the stream.
type Spec struct {
	Name   string
	Args   []string
	Stdout io.Writer
	Stderr io.Writer
	// Detach moves the child into its own process group so it survives the
	// invoking shell.
	Detach bool
}

// Handle tracks a spawned child.
type Handle interface {
	PID() int
	// Exited reports whether the child has already terminated.
	Exited() bool
}

// State is the lifecycle state of a spawned child.
type State int

const (
	StateRunning State = iota
	StateExited
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	default:
		return "unknown"
	}
}

// StateOf derives the lifecycle state from a handle.
func StateOf(h Handle) State {
	if h.Exited() {
		return StateExited
	}
	return StateRunning
}

// ExitError reports a command that ran but exited with a non-zero status.
type ExitError struct {
	Name   string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s exited with status %d: %s", e.Name, e.Code, e.Stderr)
	}
	return fmt.Sprintf("%s exited with status %d", e.Name, e.Code)
}
