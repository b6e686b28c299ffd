// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Startup
	OpConfigLoad  Op = "load configuration"
	OpCatalogLoad Op = "load catalog"
	OpLogOpen     Op = "open log file"

	// Audio
	OpAudioInit Op = "open audio output"
	OpClipLoad  Op = "load clip"

	// Desktop integration
	OpMPRISStart Op = "register media keys"
	OpNotify     Op = "send notification"

	// Game
	OpGameStart Op = "start game"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
