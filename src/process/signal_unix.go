//go:build unix

package process

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// Alive probes pid with signal 0. EPERM means the process exists but belongs
// to someone else.
func (e *Exec) Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	return err == nil || err == unix.EPERM
}

func (e *Exec) Signal(pid int, sig syscall.Signal) error {
	if pid <= 0 {
		return unix.ESRCH
	}
	return unix.Kill(pid, sig)
}

func detachedAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}
