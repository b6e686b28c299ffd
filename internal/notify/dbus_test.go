//go:build linux

package notify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNotifySendsGameFinished(t *testing.T) {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}

	notifier, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	n := GameFinished([]string{"Fruits"}, 6)
	n.Timeout = 1000
	n.Urgency = UrgencyLow
	id, err := notifier.Notify(n)
	if err != nil {
		t.Fatalf("Notify() error: %v", err)
	}
	if id == 0 {
		t.Error("Notify() returned id=0, expected non-zero")
	}
	if err := notifier.Close(id); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestNew_WithoutSessionBus(t *testing.T) {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") != "" {
		t.Skip("a D-Bus session is configured")
	}
	t.Setenv("DBUS_SESSION_BUS_ADDRESS", "unix:path="+filepath.Join(t.TempDir(), "no-bus"))

	notifier, err := New()
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("New() error = %v, want ErrUnavailable", err)
	}
	if id, err := notifier.Notify(GameFinished(nil, 1)); id != 0 || err != nil {
		t.Errorf("fallback Notify() = %d, %v; want 0, nil", id, err)
	}
}
