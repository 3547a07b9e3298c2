// Package selector runs the interactive rectangle selection tool.
package selector

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"record-region/src/process"
	"record-region/src/region"
)

const Tool = "slop"

// Args are passed to slop: red translucent highlight, no border, x,y,w,h.
var Args = []string{"--highlight", "--color=1,0,0,0.65", "-b", "0", "-f", "%x,%y,%w,%h"}

// Selector asks the user for a screen rectangle.
type Selector struct {
	proc process.Launcher
}

func New(proc process.Launcher) *Selector {
	return &Selector{proc: proc}
}

// Select returns the chosen rectangle. cancelled is true when the user
// aborted (slop exited non-zero or printed nothing).
func (s *Selector) Select(ctx context.Context) (r region.Rect, cancelled bool, err error) {
	out, err := s.proc.Output(ctx, Tool, Args...)
	if err != nil {
		var exitErr *process.ExitError
		if errors.As(err, &exitErr) {
			return region.Rect{}, true, nil
		}
		return region.Rect{}, false, fmt.Errorf("failed to run %s: %w", Tool, err)
	}

	raw := strings.TrimSpace(string(out))
	if raw == "" {
		return region.Rect{}, true, nil
	}

	r, err = region.Parse(raw)
	if err != nil {
		return region.Rect{}, false, err
	}
	return r, false, nil
}
