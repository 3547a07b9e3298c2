package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultPIDFile     = "/tmp/record-region.pid"
	DefaultLogFile     = "/tmp/record-region.log"
	DefaultSnapMargin  = 50
	DefaultSettingsURL = "http://127.0.0.1:42700/plugins/plugin-screen-recorder/"
	DefaultDebugLog    = "record-region-debug.log"
	ConfigFileName     = "config.json"

	EnvPathEnvVar = "RECORD_REGION_ENV"

	InputMic    = "mic"
	InputSystem = "system"
)

type LoadOptions struct {
	ConfigPathOverride string
}

// AudioConfig selects which PulseAudio sources are recorded.
type AudioConfig struct {
	Enabled      bool     `json:"enabled"`
	Inputs       []string `json:"inputs"`
	MicDevice    string   `json:"micDevice"`
	SystemDevice string   `json:"systemDevice"`
}

// VideoConfig holds encoder settings.
type VideoConfig struct {
	CRF       int    `json:"crf"`
	Preset    string `json:"preset"`
	Framerate int    `json:"framerate"`
	Format    string `json:"format"`
}

// CaptureConfig is the user-editable config.json.
type CaptureConfig struct {
	Audio AudioConfig `json:"audio"`
	Video VideoConfig `json:"video"`
}

// HasInput reports whether name is listed in audio.inputs.
func (a AudioConfig) HasInput(name string) bool {
	for _, in := range a.Inputs {
		if in == name {
			return true
		}
	}
	return false
}

type Config struct {
	Capture    CaptureConfig
	ConfigPath string

	PIDFile     string
	LogFile     string
	SnapMargin  int
	SettingsURL string
	// VideosDir overrides ~/Videos when set.
	VideosDir string

	EnableFileLogging bool
	DebugLogPath      string
}

func DefaultCaptureConfig() CaptureConfig {
	return CaptureConfig{
		Audio: AudioConfig{
			Enabled:      true,
			Inputs:       []string{InputMic},
			MicDevice:    "default",
			SystemDevice: "default",
		},
		Video: VideoConfig{
			CRF:       18,
			Preset:    "veryfast",
			Framerate: 60,
			Format:    "mkv",
		},
	}
}

func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

func LoadWithOptions(opts LoadOptions) (*Config, error) {
	// Runtime settings come from the environment, optionally seeded by:
	// 1) .env in the application (executable) directory
	// 2) If not found, the file named by RECORD_REGION_ENV
	if envPath := resolveEnvPath(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	configPath := resolveConfigPath(opts)

	cfg := &Config{
		Capture:           LoadCaptureConfig(configPath),
		ConfigPath:        configPath,
		PIDFile:           getEnvWithDefault("RECORD_REGION_PIDFILE", DefaultPIDFile),
		LogFile:           getEnvWithDefault("RECORD_REGION_LOGFILE", DefaultLogFile),
		SnapMargin:        getEnvInt("RECORD_REGION_SNAP_MARGIN", DefaultSnapMargin),
		SettingsURL:       getEnvWithDefault("RECORD_REGION_SETTINGS_URL", DefaultSettingsURL),
		VideosDir:         strings.TrimSpace(os.Getenv("RECORD_REGION_VIDEOS_DIR")),
		EnableFileLogging: strings.ToLower(os.Getenv("ENABLE_FILE_LOGGING")) == "true",
		DebugLogPath:      getEnvWithDefault("RECORD_REGION_DEBUG_LOG", DefaultDebugLog),
	}
	if cfg.SnapMargin < 0 {
		cfg.SnapMargin = DefaultSnapMargin
	}

	return cfg, nil
}

// LoadCaptureConfig reads config.json. Fields present in the file override
// the defaults one by one; a missing or malformed file yields the defaults.
func LoadCaptureConfig(path string) CaptureConfig {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultCaptureConfig()
	}
	return ParseCaptureConfig(data)
}

func ParseCaptureConfig(data []byte) CaptureConfig {
	cfg := DefaultCaptureConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultCaptureConfig()
	}
	normalize(&cfg)
	return cfg
}

func normalize(cfg *CaptureConfig) {
	defaults := DefaultCaptureConfig()
	if cfg.Audio.Inputs == nil {
		cfg.Audio.Inputs = defaults.Audio.Inputs
	}
	if strings.TrimSpace(cfg.Audio.MicDevice) == "" {
		cfg.Audio.MicDevice = defaults.Audio.MicDevice
	}
	if strings.TrimSpace(cfg.Audio.SystemDevice) == "" {
		cfg.Audio.SystemDevice = defaults.Audio.SystemDevice
	}
	if cfg.Video.Framerate < 1 {
		cfg.Video.Framerate = defaults.Video.Framerate
	}
	if strings.TrimSpace(cfg.Video.Preset) == "" {
		cfg.Video.Preset = defaults.Video.Preset
	}
	cfg.Video.Format = strings.TrimPrefix(strings.TrimSpace(cfg.Video.Format), ".")
	if cfg.Video.Format == "" {
		cfg.Video.Format = defaults.Video.Format
	}
}

func resolveConfigPath(opts LoadOptions) string {
	if override := strings.TrimSpace(opts.ConfigPathOverride); override != "" {
		return override
	}
	return filepath.Join(appDir(), ConfigFileName)
}

func appDir() string {
	if execPath, err := os.Executable(); err == nil {
		return filepath.Dir(execPath)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func resolveEnvPath() string {
	exeEnv := filepath.Join(appDir(), ".env")
	if _, err := os.Stat(exeEnv); err == nil {
		return exeEnv
	}

	if alt := os.Getenv(EnvPathEnvVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return defaultValue
	}
	return n
}
