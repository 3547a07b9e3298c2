package display

import (
	"strconv"
	"strings"

	"record-region/src/region"
)

// ParseXrandr extracts the geometry of every connected output from
// `xrandr --query` output. Lines without usable geometry are skipped.
func ParseXrandr(output string) []region.Monitor {
	var monitors []region.Monitor
	for _, line := range strings.Split(output, "\n") {
		if m, ok := parseXrandrLine(line); ok {
			monitors = append(monitors, m)
		}
	}
	return monitors
}

func parseXrandrLine(line string) (region.Monitor, bool) {
	if !strings.Contains(line, " connected") {
		return region.Monitor{}, false
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return region.Monitor{}, false
	}
	for _, token := range fields {
		if !strings.Contains(token, "x") || !strings.Contains(token, "+") {
			continue
		}
		m, ok := ParseGeometry(token)
		if !ok {
			return region.Monitor{}, false
		}
		m.Name = fields[0]
		return m, true
	}
	return region.Monitor{}, false
}

// ParseGeometry parses an X geometry token "WxH+X+Y". Offsets may be negative.
// The second offset's sign is searched from one character past the first
// sign, so a height containing '+' or '-' is not supported.
func ParseGeometry(token string) (region.Monitor, bool) {
	xSplit := strings.IndexByte(token, 'x')
	if xSplit < 0 {
		return region.Monitor{}, false
	}
	w, err := strconv.Atoi(token[:xSplit])
	if err != nil {
		return region.Monitor{}, false
	}
	afterX := token[xSplit+1:]
	firstSign := strings.IndexAny(afterX, "+-")
	if firstSign < 0 {
		return region.Monitor{}, false
	}
	h, err := strconv.Atoi(afterX[:firstSign])
	if err != nil {
		return region.Monitor{}, false
	}
	offsets := afterX[firstSign:]
	if len(offsets) < 2 {
		return region.Monitor{}, false
	}
	secondSign := strings.IndexAny(offsets[1:], "+-")
	if secondSign < 0 {
		return region.Monitor{}, false
	}
	secondSign++
	x, err := strconv.Atoi(offsets[:secondSign])
	if err != nil {
		return region.Monitor{}, false
	}
	y, err := strconv.Atoi(offsets[secondSign:])
	if err != nil {
		return region.Monitor{}, false
	}
	return region.Monitor{X: x, Y: y, W: w, H: h}, true
}

// ParseXdpyinfo returns the screen size from the "dimensions:" line of
// xdpyinfo output.
func ParseXdpyinfo(output string) (w, h int, ok bool) {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "dimensions:") {
			continue
		}
		for _, token := range strings.Fields(line) {
			if !isDimensionToken(token) {
				continue
			}
			split := strings.IndexByte(token, 'x')
			w, errW := strconv.Atoi(token[:split])
			h, errH := strconv.Atoi(token[split+1:])
			if errW != nil || errH != nil {
				return 0, 0, false
			}
			return w, h, true
		}
		return 0, 0, false
	}
	return 0, 0, false
}

func isDimensionToken(token string) bool {
	if !strings.Contains(token, "x") {
		return false
	}
	for _, c := range token {
		if (c < '0' || c > '9') && c != 'x' {
			return false
		}
	}
	return true
}
