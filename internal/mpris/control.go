// Package mpris exposes the live game to desktop media keys over D-Bus.
package mpris

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"sync"

	"github.com/poliorcetics/seven-families/internal/catalog"
	"github.com/poliorcetics/seven-families/internal/session"
)

// Target is the game driven by media keys.
type Target interface {
	Snapshot() session.Snapshot
	Post(ev session.Event) bool
}

// control maps media key requests to session events. It is shared by the
// D-Bus adapter and the no-op build.
type control struct {
	mu        sync.Mutex
	target    Target
	assetsDir string
}

func (c *control) attach(t Target) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = t
}

func (c *control) current() Target {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *control) snapshot() (session.Snapshot, bool) {
	t := c.current()
	if t == nil {
		return session.Snapshot{}, false
	}
	snap := t.Snapshot()
	return snap, !snap.Closed
}

func (c *control) post(ev session.Event) {
	if t := c.current(); t != nil {
		t.Post(ev)
	}
}

// play starts the game or resumes it.
func (c *control) play() {
	snap, ok := c.snapshot()
	if !ok {
		return
	}
	switch {
	case snap.Kind == session.KindAwaitingPermission:
		c.post(session.PermissionGranted{})
	case snap.Kind.CanResume():
		c.post(session.ResumeRequested{})
	}
}

func (c *control) pause() {
	if snap, ok := c.snapshot(); ok && snap.Kind.CanPause() {
		c.post(session.PauseRequested{})
	}
}

func (c *control) playPause() {
	snap, ok := c.snapshot()
	if !ok {
		return
	}
	if snap.Kind.CanPause() {
		c.post(session.PauseRequested{})
		return
	}
	c.play()
}

func (c *control) next() {
	if snap, ok := c.snapshot(); ok && snap.Kind == session.KindWaiting {
		c.post(session.NextRequested{})
	}
}

// status returns the MPRIS PlaybackStatus string for a session state.
func status(k session.Kind, live bool) string {
	if !live {
		return "Stopped"
	}
	switch k {
	case session.KindPlaying, session.KindWaiting:
		return "Playing"
	case session.KindPlayingPaused, session.KindWaitingPaused:
		return "Paused"
	default:
		return "Stopped"
	}
}

func formatTrackID(key string) string {
	h := fnv.New64a()
	h.Write([]byte(key))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}

// artNames lists family artwork filenames in priority order.
var artNames = []string{
	"cover.png", "cover.jpg", "cover.jpeg",
	"famille.png", "famille.jpg",
}

// FindFamilyArt looks for artwork next to a family's clips.
// Returns the path to the art file, or empty string if not found.
func FindFamilyArt(assetsDir string, clip catalog.Clip) string {
	dir := filepath.Join(assetsDir, filepath.Dir(string(clip)))
	for _, name := range artNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
