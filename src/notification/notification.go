// Package notification shows desktop notifications for recording events.
package notification

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"record-region/src/process"
)

const (
	AppName = "record-region"

	sendTool = "notify-send"
)

// Notifier delivers a short user-visible message.
type Notifier interface {
	Notify(ctx context.Context, title, message string, timeout time.Duration) error
}

// Desktop sends notifications over the session D-Bus and falls back to
// notify-send when the bus is unavailable.
type Desktop struct {
	proc   process.Launcher
	bus    func(ctx context.Context, title, message string, timeout time.Duration) error
	logger *zap.SugaredLogger
}

func NewDesktop(proc process.Launcher, logger *zap.SugaredLogger) *Desktop {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Desktop{proc: proc, bus: sendDBus, logger: logger}
}

func (d *Desktop) Notify(ctx context.Context, title, message string, timeout time.Duration) error {
	if d.bus != nil {
		err := d.bus(ctx, title, message, timeout)
		if err == nil {
			return nil
		}
		d.logger.Debugw("dbus notification failed, falling back", "error", err)
	}
	_, err := d.proc.Output(ctx, sendTool,
		"-a", AppName,
		"-u", "normal",
		"-t", strconv.FormatInt(timeout.Milliseconds(), 10),
		title, message,
	)
	if err != nil {
		d.logger.Warnw("notification failed", "title", title, "error", err)
	}
	return err
}

// Nop drops every notification.
type Nop struct{}

func (Nop) Notify(context.Context, string, string, time.Duration) error { return nil }
