package capture

import (
	"fmt"
	"os"
	"strconv"

	"record-region/src/config"
	"record-region/src/region"
)

const (
	videoCodec   = "libx264"
	pixelFormat  = "yuv420p"
	audioCodec   = "aac"
	audioBitrate = "192k"
	defaultX11   = ":0.0"
)

// BuildArgs returns the ffmpeg argument list for recording r into output.
// The result depends only on its inputs and $DISPLAY.
func BuildArgs(r region.Rect, cfg config.CaptureConfig, output string) []string {
	args := []string{
		"-f", "x11grab",
		"-video_size", fmt.Sprintf("%dx%d", r.W, r.H),
		"-framerate", strconv.Itoa(cfg.Video.Framerate),
		"-i", fmt.Sprintf("%s+%d,%d", x11Display(), r.X, r.Y),
	}

	args = append(args, audioArgs(cfg.Audio)...)

	args = append(args,
		"-c:v", videoCodec,
		"-crf", strconv.Itoa(cfg.Video.CRF),
		"-preset", cfg.Video.Preset,
		"-pix_fmt", pixelFormat,
		output,
	)
	return args
}

func audioArgs(a config.AudioConfig) []string {
	if !a.Enabled {
		return nil
	}
	mic := a.HasInput(config.InputMic)
	system := a.HasInput(config.InputSystem)
	monitor := a.SystemDevice + ".monitor"

	switch {
	case mic && system:
		return []string{
			"-f", "pulse", "-i", a.MicDevice,
			"-f", "pulse", "-i", monitor,
			"-filter_complex", "[1:a][2:a]amerge=inputs=2[aout]",
			"-map", "0:v",
			"-map", "[aout]",
			"-c:a", audioCodec,
			"-b:a", audioBitrate,
		}
	case mic:
		return []string{
			"-f", "pulse", "-i", a.MicDevice,
			"-c:a", audioCodec,
			"-b:a", audioBitrate,
		}
	case system:
		return []string{
			"-f", "pulse", "-i", monitor,
			"-c:a", audioCodec,
			"-b:a", audioBitrate,
		}
	default:
		return nil
	}
}

func x11Display() string {
	d := os.Getenv("DISPLAY")
	if d == "" {
		return defaultX11
	}
	return d
}
