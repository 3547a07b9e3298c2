package runtimeinit

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"record-region/src/config"
	"record-region/src/notification"
	"record-region/src/process/processtest"
	"record-region/src/session"
)

func TestBootstrapWiresController(t *testing.T) {
	dir := t.TempDir()
	pidfile := filepath.Join(dir, "record.pid")
	t.Setenv("RECORD_REGION_PIDFILE", pidfile)
	t.Setenv("RECORD_REGION_LOGFILE", filepath.Join(dir, "record.log"))
	t.Setenv("RECORD_REGION_VIDEOS_DIR", filepath.Join(dir, "Videos"))
	t.Setenv("ENABLE_FILE_LOGGING", "false")
	t.Setenv(config.EnvPathEnvVar, filepath.Join(dir, "missing.env"))

	cfgPath := filepath.Join(dir, "config.json")
	if err := os.WriteFile(cfgPath, []byte(`{"audio":{"enabled":false}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	proc := processtest.New()
	proc.Script("xrandr", "DP-1 connected 1920x1080+0+0 (normal) 527mm x 296mm\n", nil)
	proc.Script("slop", "10,10,200,200", nil)

	var stderr bytes.Buffer
	rt, err := Bootstrap(Options{
		LoadOptions: config.LoadOptions{ConfigPathOverride: cfgPath},
		Verbose:     true,
		Stderr:      &stderr,
		Launcher:    proc,
		Notifier:    notification.Nop{},
	})
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	if rt.Config.PIDFile != pidfile {
		t.Fatalf("Expected pidfile %s, got %s", pidfile, rt.Config.PIDFile)
	}
	if rt.Config.Capture.Audio.Enabled {
		t.Fatal("Expected audio disabled from config file")
	}
	if rt.Invocation == "" {
		t.Fatal("Expected invocation id")
	}

	outcome, err := rt.Controller.Toggle(context.Background())
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if outcome != session.OutcomeStarted {
		t.Fatalf("Expected started, got %s", outcome)
	}
	data, err := os.ReadFile(pidfile)
	if err != nil {
		t.Fatalf("Expected pid file: %v", err)
	}
	if strings.TrimSpace(string(data)) != "4001" {
		t.Fatalf("Expected pid 4001, got %q", data)
	}
	if !strings.Contains(stderr.String(), rt.Invocation) {
		t.Fatal("Expected verbose log lines tagged with the invocation id")
	}
}
