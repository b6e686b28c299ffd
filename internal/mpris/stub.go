//go:build !linux

package mpris

// Adapter only tracks the attached game on non-Linux platforms.
type Adapter struct {
	ctl *control
}

// New returns an adapter without D-Bus on non-Linux platforms.
func New(assetsDir string) (*Adapter, error) {
	return &Adapter{ctl: &control{assetsDir: assetsDir}}, nil
}

// Attach records t; there are no media keys to route.
func (a *Adapter) Attach(t Target) {
	a.ctl.attach(t)
}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
