//go:build !linux

package notify

// New has no notification server to talk to outside Linux.
func New() (Notifier, error) {
	return Disabled(), ErrUnavailable
}
