package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"record-region/src/process/processtest"
)

func TestNotifyPrefersBus(t *testing.T) {
	fake := processtest.New()
	d := NewDesktop(fake, nil)
	var gotTitle, gotMessage string
	var gotTimeout time.Duration
	d.bus = func(ctx context.Context, title, message string, timeout time.Duration) error {
		gotTitle, gotMessage, gotTimeout = title, message, timeout
		return nil
	}

	if err := d.Notify(context.Background(), "Recording started", "Press your hotkey to stop", 1200*time.Millisecond); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if gotTitle != "Recording started" || gotMessage != "Press your hotkey to stop" || gotTimeout != 1200*time.Millisecond {
		t.Fatalf("Unexpected bus call %q %q %v", gotTitle, gotMessage, gotTimeout)
	}
	if len(fake.Calls) != 0 {
		t.Fatal("Did not expect notify-send when the bus works")
	}
}

func TestNotifyFallsBackToNotifySend(t *testing.T) {
	fake := processtest.New()
	fake.Script("notify-send", "", nil)
	d := NewDesktop(fake, nil)
	d.bus = func(context.Context, string, string, time.Duration) error {
		return errors.New("no session bus")
	}

	if err := d.Notify(context.Background(), "Recording stopped", "Saved to ~/Videos", 2*time.Second); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if !fake.CalledWith("notify-send", "-u", "normal", "-t", "2000", "Recording stopped") {
		t.Fatalf("Expected notify-send fallback, calls=%+v", fake.Calls)
	}
}

func TestNotifyReportsFallbackFailure(t *testing.T) {
	fake := processtest.New()
	fake.Script("notify-send", "", errors.New("not installed"))
	d := NewDesktop(fake, nil)
	d.bus = nil

	if err := d.Notify(context.Background(), "t", "m", time.Second); err == nil {
		t.Fatal("Expected error when no notification path works")
	}
}
