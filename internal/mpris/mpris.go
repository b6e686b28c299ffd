//go:build linux

package mpris

import (
	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/poliorcetics/seven-families/internal/session"
)

// Adapter serves the MPRIS interfaces on the session bus.
type Adapter struct {
	ctl    *control
	server *server.Server
}

// New creates and starts an MPRIS adapter. Clip paths are resolved
// against assetsDir to find artwork.
func New(assetsDir string) (*Adapter, error) {
	ctl := &control{assetsDir: assetsDir}
	a := &Adapter{
		ctl:    ctl,
		server: server.NewServer("familles", &rootAdapter{}, &playerAdapter{ctl: ctl}),
	}

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Attach routes media keys to t, replacing the previous game. A nil
// target detaches.
func (a *Adapter) Attach(t Target) {
	a.ctl.attach(t)
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error            { return nil }
func (r *rootAdapter) Quit() error             { return nil }
func (r *rootAdapter) CanQuit() (bool, error)  { return false, nil }
func (r *rootAdapter) CanRaise() (bool, error) { return false, nil }

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Familles", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	ctl *control
}

func (p *playerAdapter) Next() error {
	p.ctl.next()
	return nil
}

func (p *playerAdapter) Previous() error {
	return nil // no going back in a game
}

func (p *playerAdapter) Pause() error {
	p.ctl.pause()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.ctl.playPause()
	return nil
}

// Stop pauses; abandoning a game is left to the UI.
func (p *playerAdapter) Stop() error {
	p.ctl.pause()
	return nil
}

func (p *playerAdapter) Play() error {
	p.ctl.play()
	return nil
}

func (p *playerAdapter) Seek(_ types.Microseconds) error {
	return nil
}

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error {
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	snap, live := p.ctl.snapshot()
	return types.PlaybackStatus(status(snap.Kind, live)), nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	snap, live := p.ctl.snapshot()
	if !live || !snap.HasItem {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(snap.Item.Key())),
		Title:   snap.Item.Name,
		Album:   string(snap.Item.Category),
		Artist:  []string{"Familles"},
	}
	if art := FindFamilyArt(p.ctl.assetsDir, snap.Item.CategoryClip); art != "" {
		meta.ArtUrl = "file://" + art
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return 0, nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	snap, live := p.ctl.snapshot()
	return live && snap.Kind == session.KindWaiting, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	snap, live := p.ctl.snapshot()
	return live && !snap.Kind.IsTerminal(), nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	_, live := p.ctl.snapshot()
	return live, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}
