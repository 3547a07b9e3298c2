// Package capture starts the ffmpeg process that records a screen region.
package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"record-region/src/config"
	"record-region/src/process"
	"record-region/src/region"
)

const (
	Encoder = "ffmpeg"

	// StartupGrace is how long a freshly spawned encoder must survive before
	// the recording counts as started.
	StartupGrace = 500 * time.Millisecond

	timestampLayout = "2006-01-02_15-04-05"
)

var ErrLaunch = errors.New("ffmpeg exited immediately")

// LaunchError reports an encoder that died during the startup grace window.
type LaunchError struct {
	PID     int
	LogPath string
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("ffmpeg exited immediately (pid %d), check %s", e.PID, e.LogPath)
}

func (e *LaunchError) Is(target error) bool { return target == ErrLaunch }

// Session describes a started recording.
type Session struct {
	PID     int
	Output  string
	LogPath string
}

type Options struct {
	LogPath   string
	VideosDir string
	Grace     time.Duration
	Sleep     func(time.Duration)
	Now       func() time.Time
	Logger    *zap.SugaredLogger
}

// Launcher spawns and verifies the encoder.
type Launcher struct {
	proc      process.Launcher
	logPath   string
	videosDir string
	grace     time.Duration
	sleep     func(time.Duration)
	now       func() time.Time
	logger    *zap.SugaredLogger
}

func New(proc process.Launcher, opts Options) *Launcher {
	l := &Launcher{
		proc:      proc,
		logPath:   opts.LogPath,
		videosDir: opts.VideosDir,
		grace:     opts.Grace,
		sleep:     opts.Sleep,
		now:       opts.Now,
		logger:    opts.Logger,
	}
	if l.logPath == "" {
		l.logPath = config.DefaultLogFile
	}
	if l.grace <= 0 {
		l.grace = StartupGrace
	}
	if l.sleep == nil {
		l.sleep = time.Sleep
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.logger == nil {
		l.logger = zap.NewNop().Sugar()
	}
	return l
}

// LogPath returns the file receiving the encoder's output.
func (l *Launcher) LogPath() string { return l.logPath }

// Start records r with cfg. It returns only after the encoder survived the
// startup grace window.
func (l *Launcher) Start(ctx context.Context, r region.Rect, cfg config.CaptureConfig) (Session, error) {
	if r.W <= 0 || r.H <= 0 || r.W%2 != 0 || r.H%2 != 0 {
		return Session{}, &region.InvalidRegionError{W: r.W, H: r.H}
	}

	output, err := OutputPath(l.videosDir, cfg.Video.Format, l.now())
	if err != nil {
		return Session{}, err
	}
	args := BuildArgs(r, cfg, output)

	logFile, err := os.Create(l.logPath)
	if err != nil {
		return Session{}, fmt.Errorf("failed to create recording log file: %w", err)
	}
	defer logFile.Close()

	l.logger.Infow("starting encoder", "region", r.String(), "output", output, "args", args)
	h, err := l.proc.Spawn(ctx, process.Spec{
		Name:   Encoder,
		Args:   args,
		Stdout: logFile,
		Stderr: logFile,
		Detach: true,
	})
	if err != nil {
		return Session{}, fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	l.sleep(l.grace)
	if st := process.StateOf(h); st != process.StateRunning {
		l.logger.Warnw("encoder died during startup", "pid", h.PID(), "state", st.String(), "log", l.logPath)
		return Session{}, &LaunchError{PID: h.PID(), LogPath: l.logPath}
	}

	return Session{PID: h.PID(), Output: output, LogPath: l.logPath}, nil
}

// OutputPath returns <dir>/recording-<timestamp>.<format>, creating dir.
// An empty dir means ~/Videos.
func OutputPath(dir, format string, now time.Time) (string, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("HOME is not set: %w", err)
		}
		dir = filepath.Join(home, "Videos")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	name := fmt.Sprintf("recording-%s.%s", now.Format(timestampLayout), format)
	return filepath.Join(dir, name), nil
}
