//go:build !unix

package process

import (
	"errors"
	"syscall"
)

var errUnsupported = errors.New("process signalling is not supported on this platform")

func (e *Exec) Alive(pid int) bool { return false }

func (e *Exec) Signal(pid int, sig syscall.Signal) error { return errUnsupported }

func detachedAttr() *syscall.SysProcAttr { return nil }
