// Package app is the terminal interface: a family selection screen and a
// game screen driving one session at a time.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/poliorcetics/seven-families/internal/catalog"
	"github.com/poliorcetics/seven-families/internal/keymap"
	"github.com/poliorcetics/seven-families/internal/mpris"
	"github.com/poliorcetics/seven-families/internal/notify"
	"github.com/poliorcetics/seven-families/internal/player"
	"github.com/poliorcetics/seven-families/internal/pool"
	"github.com/poliorcetics/seven-families/internal/session"
	"github.com/poliorcetics/seven-families/internal/ui/styles"
)

// Screen is the page currently shown.
type Screen int

const (
	ScreenSelection Screen = iota
	ScreenGame
)

// MediaKeys receives the live session, or nil when there is none.
type MediaKeys interface {
	Attach(t mpris.Target)
}

// Options configures the interface. Catalog and Player are required.
type Options struct {
	Catalog   *catalog.Catalog
	Player    player.Interface
	Selected  []catalog.CategoryID // initially checked families
	Duration  time.Duration
	Bounds    session.Bounds
	MediaKeys MediaKeys
	Notifier  notify.Notifier
	Logger    *zerolog.Logger // nil discards
	Shuffler  pool.Shuffler   // nil draws from crypto/rand
	Notice    string          // shown once on the selection screen
}

// Model is the root application model.
type Model struct {
	Width  int
	Height int

	screen   Screen
	catalog  *catalog.Catalog
	families []catalog.Category
	selected map[catalog.CategoryID]bool
	cursor   int

	player   player.Interface
	relay    *session.Relay
	shuffler pool.Shuffler
	duration time.Duration
	bounds   session.Bounds

	session *session.Session
	sub     *session.Subscription
	cancel  context.CancelFunc
	snap    session.Snapshot
	last    catalog.Item // last announced item
	total   int
	playing []string // names of the families in the running game

	status   string
	showHelp bool
	bar      progress.Model

	keys *keymap.Resolver

	mediaKeys MediaKeys
	notifier  notify.Notifier
	logger    zerolog.Logger
}

// New builds the model on the selection screen.
func New(opts Options) Model {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.Disabled()
	}
	bounds := opts.Bounds
	if bounds.Min <= 0 || bounds.Max < bounds.Min {
		bounds = session.DefaultBounds()
	}
	d := opts.Duration
	if d == 0 {
		d = session.DefaultDuration
	}

	m := Model{
		catalog:   opts.Catalog,
		families:  opts.Catalog.Categories(),
		selected:  make(map[catalog.CategoryID]bool),
		player:    opts.Player,
		relay:     session.NewRelay(opts.Player),
		shuffler:  opts.Shuffler,
		duration:  bounds.Clamp(d),
		bounds:    bounds,
		status:    opts.Notice,
		bar:       newBar(),
		keys:      keymap.Default(),
		mediaKeys: opts.MediaKeys,
		notifier:  notifier,
		logger:    logger,
	}
	for _, id := range opts.Selected {
		if _, ok := opts.Catalog.Category(id); ok {
			m.selected[id] = true
		}
	}
	return m
}

func newBar() progress.Model {
	t := styles.T()
	return progress.New(
		progress.WithGradient(string(t.Primary), string(t.Secondary)),
		progress.WithoutPercentage(),
		progress.WithWidth(barWidth),
	)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Screen returns the page currently shown.
func (m Model) Screen() Screen {
	return m.screen
}

// Selected returns the checked families in catalog order.
func (m Model) Selected() []catalog.CategoryID {
	var ids []catalog.CategoryID
	for _, cat := range m.families {
		if m.selected[cat.ID] {
			ids = append(ids, cat.ID)
		}
	}
	return ids
}

// Session returns the running game, if any.
func (m Model) Session() *session.Session {
	return m.session
}

// Close ends the running game. It is safe to call on a model without one.
func (m *Model) Close() {
	m.endGame()
}
