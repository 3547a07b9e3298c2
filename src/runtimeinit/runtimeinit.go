package runtimeinit

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"record-region/src/capture"
	"record-region/src/config"
	"record-region/src/display"
	"record-region/src/logutil"
	"record-region/src/marker"
	"record-region/src/notification"
	"record-region/src/process"
	"record-region/src/selector"
	"record-region/src/session"
)

type Options struct {
	LoadOptions config.LoadOptions
	Verbose     bool
	Stderr      io.Writer

	// Launcher and Source replace the real process runner and display
	// source when set.
	Launcher process.Launcher
	Source   display.Source
	Notifier notification.Notifier
}

// Runtime holds everything one invocation needs.
type Runtime struct {
	Config     *config.Config
	Logger     *zap.SugaredLogger
	Controller *session.Controller
	Invocation string
}

func Bootstrap(opts Options) (*Runtime, error) {
	cfg, err := config.LoadWithOptions(opts.LoadOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logutil.Setup(logutil.Options{
		Verbose:     opts.Verbose,
		Stderr:      opts.Stderr,
		FileLogging: cfg.EnableFileLogging,
		FilePath:    cfg.DebugLogPath,
	})
	if err != nil {
		return nil, err
	}
	invocation := uuid.New().String()
	logger = logger.With("invocation", invocation)
	logger.Debugw("configuration loaded",
		"config", cfg.ConfigPath,
		"pidfile", cfg.PIDFile,
		"audio", cfg.Capture.Audio.Enabled,
		"inputs", cfg.Capture.Audio.Inputs,
	)

	launcher := opts.Launcher
	if launcher == nil {
		launcher = process.NewExec()
	}
	source := opts.Source
	if source == nil {
		source = display.ScreenshotSource()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notification.NewDesktop(launcher, logger)
	}

	ctrl, err := session.New(session.Options{
		Store:        marker.NewStore(cfg.PIDFile, launcher),
		SelectRegion: selector.New(launcher).Select,
		Locator:      display.NewLocator(launcher, source, logger),
		Capture: capture.New(launcher, capture.Options{
			LogPath:   cfg.LogFile,
			VideosDir: cfg.VideosDir,
			Logger:    logger,
		}),
		Signaler:   launcher,
		Notifier:   notifier,
		Config:     cfg.Capture,
		SnapMargin: cfg.SnapMargin,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}

	return &Runtime{Config: cfg, Logger: logger, Controller: ctrl, Invocation: invocation}, nil
}
