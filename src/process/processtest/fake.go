// Package processtest provides a scripted process.Launcher for tests.
package processtest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"syscall"

	"record-region/src/process"
)

// Result is the scripted outcome of one Output call.
type Result struct {
	Stdout string
	Err    error
}

// Call records one Output invocation.
type Call struct {
	Name string
	Args []string
}

// SentSignal records one Signal invocation.
type SentSignal struct {
	PID    int
	Signal syscall.Signal
}

// Fake scripts command output by program name and simulates spawned children.
// A child stays alive until it is signalled or marked dead with SetAlive.
type Fake struct {
	mu sync.Mutex

	Outputs map[string]Result
	Calls   []Call

	// SpawnErr fails every Spawn when set.
	SpawnErr error
	// ExitOnSpawn makes spawned children die immediately.
	ExitOnSpawn bool
	Spawned     []process.Spec
	NextPID     int

	Signals []SentSignal
	alive   map[int]bool
}

// New returns an empty fake launcher.
func New() *Fake {
	return &Fake{Outputs: map[string]Result{}, NextPID: 4000, alive: map[int]bool{}}
}

// Script sets the output returned for name.
func (f *Fake) Script(name, stdout string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Outputs[name] = Result{Stdout: stdout, Err: err}
}

func (f *Fake) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, Call{Name: name, Args: append([]string(nil), args...)})
	res, ok := f.Outputs[name]
	if !ok {
		return nil, errors.New("processtest: no output scripted for " + name)
	}
	return []byte(res.Stdout), res.Err
}

func (f *Fake) Spawn(ctx context.Context, spec process.Spec) (process.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Spawned = append(f.Spawned, spec)
	if f.SpawnErr != nil {
		return nil, f.SpawnErr
	}
	f.NextPID++
	pid := f.NextPID
	f.alive[pid] = !f.ExitOnSpawn
	return &handle{pid: pid, f: f}, nil
}

func (f *Fake) Alive(pid int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.alive[pid]
}

// Signal records the signal; the target process terminates.
func (f *Fake) Signal(pid int, sig syscall.Signal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Signals = append(f.Signals, SentSignal{PID: pid, Signal: sig})
	if !f.alive[pid] {
		return syscall.ESRCH
	}
	f.alive[pid] = false
	return nil
}

// SetAlive marks pid as running or gone.
func (f *Fake) SetAlive(pid int, alive bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alive[pid] = alive
}

// CalledWith reports whether name was run with all of the given args.
func (f *Fake) CalledWith(name string, args ...string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.Calls {
		if c.Name != name {
			continue
		}
		joined := " " + strings.Join(c.Args, " ") + " "
		match := true
		for _, a := range args {
			if !strings.Contains(joined, " "+a+" ") {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

type handle struct {
	pid int
	f   *Fake
}

func (h *handle) PID() int { return h.pid }

func (h *handle) Exited() bool { return !h.f.Alive(h.pid) }
