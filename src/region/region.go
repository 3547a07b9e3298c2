package region

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultSnapMargin is the largest gap to a monitor's bottom edge that gets closed.
const DefaultSnapMargin = 50

var (
	ErrParse         = errors.New("invalid selection geometry")
	ErrInvalidRegion = errors.New("invalid recording area")
)

// Rect is a pixel rectangle in global display coordinates.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Monitor describes the pixel bounds of one display output.
type Monitor struct {
	Name string
	X    int
	Y    int
	W    int
	H    int
}

// InvalidRegionError reports the dimensions left after resolving a selection.
type InvalidRegionError struct {
	W int
	H int
}

func (e *InvalidRegionError) Error() string {
	return fmt.Sprintf("invalid recording area %dx%d", e.W, e.H)
}

func (e *InvalidRegionError) Is(target error) bool { return target == ErrInvalidRegion }

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.W, r.H, r.X, r.Y)
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (cx, cy int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Contains reports whether the point lies inside the monitor.
// Left and top edges are inclusive, right and bottom edges exclusive.
func (m Monitor) Contains(x, y int) bool {
	return x >= m.X && x < m.X+m.W && y >= m.Y && y < m.Y+m.H
}

// Owns reports whether the rectangle's center lies on the monitor.
func (m Monitor) Owns(r Rect) bool {
	return m.Contains(r.Center())
}

func (m Monitor) String() string {
	if m.Name != "" {
		return fmt.Sprintf("%s %dx%d+%d+%d", m.Name, m.W, m.H, m.X, m.Y)
	}
	return fmt.Sprintf("%dx%d+%d+%d", m.W, m.H, m.X, m.Y)
}

// Parse reads "x,y,w,h" as produced by the selection tool.
func Parse(raw string) (Rect, error) {
	parts := strings.Split(raw, ",")
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Rect{}, fmt.Errorf("%w: %q: %v", ErrParse, raw, err)
		}
		values = append(values, n)
	}
	if len(values) != 4 {
		return Rect{}, fmt.Errorf("%w: expected 4 values in geometry, got %d", ErrParse, len(values))
	}
	return Rect{X: values[0], Y: values[1], W: values[2], H: values[3]}, nil
}

// FindOwner returns the first monitor owning the rectangle's center.
func FindOwner(r Rect, monitors []Monitor) (Monitor, bool) {
	for _, m := range monitors {
		if m.Owns(r) {
			return m, true
		}
	}
	return Monitor{}, false
}
