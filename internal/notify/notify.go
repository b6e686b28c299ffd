// Package notify provides desktop notifications via D-Bus.
package notify

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable is returned by New when no notification server can be
// reached. The game then ends without a desktop notification.
var ErrUnavailable = errors.New("desktop notifications unavailable")

// Urgency represents notification priority levels per freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// GameFinished builds the notification shown at the end of a game.
func GameFinished(families []string, items int) Notification {
	body := fmt.Sprintf("%d %s", items, plural(items, "phrase écoutée", "phrases écoutées"))
	if len(families) > 0 {
		body += "\n" + strings.Join(families, ", ")
	}
	return Notification{
		Title:   "Jeu terminé !",
		Body:    body,
		Icon:    "audio-x-generic",
		Timeout: 5000,
		Urgency: UrgencyNormal,
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Disabled returns a notifier that drops everything, used when
// notifications are turned off or New failed.
func Disabled() Notifier {
	return silenced{}
}

type silenced struct{}

func (silenced) Notify(Notification) (uint32, error) { return 0, nil }
func (silenced) Close(uint32) error                  { return nil }
