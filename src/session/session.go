package session

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"time"

	"go.uber.org/zap"

	"record-region/src/capture"
	"record-region/src/config"
	"record-region/src/notification"
	"record-region/src/region"
)

// StopGrace is how long the encoder gets to finalize the file after SIGINT
// before the marker is cleared.
const StopGrace = 250 * time.Millisecond

const (
	startedTimeout = 1200 * time.Millisecond
	stoppedTimeout = 2000 * time.Millisecond
	invalidTimeout = 1200 * time.Millisecond
	failureTimeout = 1600 * time.Millisecond
)

var ErrSelectionCancelled = errors.New("selection cancelled")

type RegionSelectorFunc func(ctx context.Context) (region.Rect, bool, error)

// MarkerStore persists the pid of the running encoder.
type MarkerStore interface {
	Read() (int, bool)
	Write(pid int) error
	Clear() error
	IsAlive(pid int) bool
}

type BoundsLocator interface {
	BoundsFor(ctx context.Context, r region.Rect) (region.Monitor, error)
}

type CaptureStarter interface {
	Start(ctx context.Context, r region.Rect, cfg config.CaptureConfig) (capture.Session, error)
}

type Signaler interface {
	Signal(pid int, sig syscall.Signal) error
}

type Options struct {
	Store        MarkerStore
	SelectRegion RegionSelectorFunc
	Locator      BoundsLocator
	Capture      CaptureStarter
	Signaler     Signaler
	Notifier     notification.Notifier
	Config       config.CaptureConfig
	SnapMargin   int
	StopGrace    time.Duration
	Sleep        func(time.Duration)
	Logger       *zap.SugaredLogger
}

// State is the recording state observed at the start of an invocation.
type State int

const (
	StateIdle State = iota
	StateRecording
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	default:
		return "unknown"
	}
}

// Outcome is what one toggle did.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeStarted
	OutcomeStopped
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStarted:
		return "started"
	case OutcomeStopped:
		return "stopped"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "none"
	}
}

// Controller starts or stops the single recording session.
type Controller struct {
	opts Options
}

func New(opts Options) (*Controller, error) {
	if opts.Store == nil {
		return nil, errors.New("Store is required")
	}
	if opts.SelectRegion == nil {
		return nil, errors.New("SelectRegion is required")
	}
	if opts.Locator == nil {
		return nil, errors.New("Locator is required")
	}
	if opts.Capture == nil {
		return nil, errors.New("Capture is required")
	}
	if opts.Signaler == nil {
		return nil, errors.New("Signaler is required")
	}
	if opts.Notifier == nil {
		opts.Notifier = notification.Nop{}
	}
	if opts.SnapMargin <= 0 {
		opts.SnapMargin = region.DefaultSnapMargin
	}
	if opts.StopGrace <= 0 {
		opts.StopGrace = StopGrace
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	return &Controller{opts: opts}, nil
}

// CurrentState derives the state from the marker and a liveness probe.
func (c *Controller) CurrentState() State {
	pid, ok := c.opts.Store.Read()
	if ok && c.opts.Store.IsAlive(pid) {
		return StateRecording
	}
	return StateIdle
}

// Toggle stops a live recording, or selects a region and starts one.
// A cancelled selection returns OutcomeCancelled with a nil error.
func (c *Controller) Toggle(ctx context.Context) (Outcome, error) {
	log := c.opts.Logger
	if pid, ok := c.opts.Store.Read(); ok {
		if c.opts.Store.IsAlive(pid) {
			log.Infow("live session found, stopping", "pid", pid)
			if err := c.stop(ctx, pid); err != nil {
				return OutcomeNone, c.fail(ctx, err)
			}
			return OutcomeStopped, nil
		}
		log.Infow("discarding stale marker", "pid", pid)
		if err := c.opts.Store.Clear(); err != nil {
			return OutcomeNone, c.fail(ctx, err)
		}
	}

	err := c.start(ctx)
	switch {
	case errors.Is(err, ErrSelectionCancelled):
		log.Infow("selection cancelled")
		return OutcomeCancelled, nil
	case err != nil:
		return OutcomeNone, c.fail(ctx, err)
	}
	return OutcomeStarted, nil
}

func (c *Controller) stop(ctx context.Context, pid int) error {
	if err := c.opts.Signaler.Signal(pid, syscall.SIGINT); err != nil {
		if !errors.Is(err, syscall.ESRCH) {
			return fmt.Errorf("failed to send SIGINT to ffmpeg: %w", err)
		}
		c.opts.Logger.Infow("encoder already gone", "pid", pid)
	}
	c.opts.Sleep(c.opts.StopGrace)
	if err := c.opts.Store.Clear(); err != nil {
		return err
	}
	_ = c.opts.Notifier.Notify(ctx, "Recording stopped", "Saved to ~/Videos", stoppedTimeout)
	return nil
}

func (c *Controller) start(ctx context.Context) error {
	log := c.opts.Logger

	selected, cancelled, err := c.opts.SelectRegion(ctx)
	if err != nil {
		return err
	}
	if cancelled {
		return ErrSelectionCancelled
	}
	log.Debugw("region selected", "selection", selected.String())

	bounds, err := c.opts.Locator.BoundsFor(ctx, selected)
	if err != nil {
		return err
	}

	r, err := region.Resolve(selected, bounds, c.opts.SnapMargin)
	if err != nil {
		return err
	}
	log.Infow("region resolved", "selection", selected.String(), "bounds", bounds.String(), "region", r.String())

	sess, err := c.opts.Capture.Start(ctx, r, c.opts.Config)
	if err != nil {
		return err
	}

	if err := c.opts.Store.Write(sess.PID); err != nil {
		// an untracked encoder could never be stopped by the next toggle
		_ = c.opts.Signaler.Signal(sess.PID, syscall.SIGINT)
		return err
	}
	log.Infow("recording started", "pid", sess.PID, "output", sess.Output)

	_ = c.opts.Notifier.Notify(ctx, "Recording started", "Press your hotkey to stop", startedTimeout)
	return nil
}

// fail reports err to the user and returns it unchanged.
func (c *Controller) fail(ctx context.Context, err error) error {
	title := "Recording failed"
	message := err.Error()
	timeout := failureTimeout

	var invalid *region.InvalidRegionError
	var launch *capture.LaunchError
	switch {
	case errors.As(err, &invalid):
		message = fmt.Sprintf("Invalid area: %dx%d", invalid.W, invalid.H)
		timeout = invalidTimeout
	case errors.As(err, &launch):
		message = "Check " + launch.LogPath
	}

	c.opts.Logger.Errorw("recording failed", "error", err)
	_ = c.opts.Notifier.Notify(ctx, title, message, timeout)
	return err
}
