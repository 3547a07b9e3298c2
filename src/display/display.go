// Package display discovers monitor layouts on an X11 desktop.
package display

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
	"go.uber.org/zap"

	"record-region/src/process"
	"record-region/src/region"
)

var ErrMonitorQuery = errors.New("monitor query failed")

// Source enumerates displays in-process. It backs up the xrandr and
// xdpyinfo queries when those tools are missing or fail.
type Source interface {
	NumActiveDisplays() int
	GetDisplayBounds(i int) image.Rectangle
}

type screenshotSource struct{}

func (screenshotSource) NumActiveDisplays() int { return screenshot.NumActiveDisplays() }

func (screenshotSource) GetDisplayBounds(i int) image.Rectangle {
	return screenshot.GetDisplayBounds(i)
}

// ScreenshotSource queries the X server directly through kbinani/screenshot.
func ScreenshotSource() Source { return screenshotSource{} }

// Locator finds the monitor a selection belongs to.
type Locator struct {
	launcher process.Launcher
	source   Source
	logger   *zap.SugaredLogger
}

// NewLocator returns a locator. source may be nil to disable the in-process
// fallback.
func NewLocator(launcher process.Launcher, source Source, logger *zap.SugaredLogger) *Locator {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Locator{launcher: launcher, source: source, logger: logger}
}

// ListMonitors returns every connected monitor reported by xrandr.
func (l *Locator) ListMonitors(ctx context.Context) ([]region.Monitor, error) {
	out, err := l.launcher.Output(ctx, "xrandr", "--query")
	if err != nil {
		l.logger.Debugw("xrandr failed", "error", err)
		if monitors := l.sourceMonitors(); len(monitors) > 0 {
			return monitors, nil
		}
		return nil, fmt.Errorf("%w: xrandr: %v", ErrMonitorQuery, err)
	}
	monitors := ParseXrandr(string(out))
	if len(monitors) == 0 {
		return nil, fmt.Errorf("%w: no monitors found from xrandr", ErrMonitorQuery)
	}
	return monitors, nil
}

// FullVirtualBounds returns the whole X screen anchored at the origin.
func (l *Locator) FullVirtualBounds(ctx context.Context) (region.Monitor, error) {
	out, err := l.launcher.Output(ctx, "xdpyinfo")
	if err == nil {
		if w, h, ok := ParseXdpyinfo(string(out)); ok {
			return region.Monitor{Name: "screen", X: 0, Y: 0, W: w, H: h}, nil
		}
		err = errors.New("could not read dimensions from xdpyinfo")
	}
	l.logger.Debugw("xdpyinfo failed", "error", err)

	if union, ok := l.sourceUnion(); ok {
		return region.Monitor{Name: "screen", X: 0, Y: 0, W: union.Max.X, H: union.Max.Y}, nil
	}
	return region.Monitor{}, fmt.Errorf("%w: %v", ErrMonitorQuery, err)
}

// BoundsFor returns the monitor owning the center of r. When discovery fails
// or no monitor matches, the full virtual screen is used instead.
func (l *Locator) BoundsFor(ctx context.Context, r region.Rect) (region.Monitor, error) {
	monitors, err := l.ListMonitors(ctx)
	if err != nil {
		l.logger.Infow("monitor discovery failed, using full screen", "error", err)
	} else if m, ok := region.FindOwner(r, monitors); ok {
		l.logger.Debugw("selection owned by monitor", "monitor", m.String(), "selection", r.String())
		return m, nil
	} else {
		l.logger.Infow("no monitor owns selection, using full screen", "selection", r.String(), "monitors", len(monitors))
	}
	return l.FullVirtualBounds(ctx)
}

func (l *Locator) sourceMonitors() []region.Monitor {
	if l.source == nil {
		return nil
	}
	n := l.source.NumActiveDisplays()
	monitors := make([]region.Monitor, 0, n)
	for i := 0; i < n; i++ {
		b := l.source.GetDisplayBounds(i)
		if b.Empty() {
			continue
		}
		monitors = append(monitors, region.Monitor{
			Name: fmt.Sprintf("display-%d", i),
			X:    b.Min.X,
			Y:    b.Min.Y,
			W:    b.Dx(),
			H:    b.Dy(),
		})
	}
	return monitors
}

func (l *Locator) sourceUnion() (image.Rectangle, bool) {
	if l.source == nil {
		return image.Rectangle{}, false
	}
	n := l.source.NumActiveDisplays()
	if n == 0 {
		return image.Rectangle{}, false
	}
	union := l.source.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		union = union.Union(l.source.GetDisplayBounds(i))
	}
	if union.Max.X <= 0 || union.Max.Y <= 0 {
		return image.Rectangle{}, false
	}
	return union, true
}
