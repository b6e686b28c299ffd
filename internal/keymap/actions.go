// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Selection screen
	ActionMoveUp     Action = "move_up"
	ActionMoveDown   Action = "move_down"
	ActionToggle     Action = "toggle_family"
	ActionSelectAll  Action = "select_all"
	ActionSelectNone Action = "select_none"
	ActionStartGame  Action = "start_game"

	// Game screen
	ActionGrantPermission Action = "grant_permission"
	ActionPlayPause       Action = "play_pause"
	ActionNext            Action = "next_item"
	ActionDurationDown    Action = "duration_down"
	ActionDurationUp      Action = "duration_up"
	ActionBackToSelection Action = "back_to_selection"
	ActionMute            Action = "mute"
)

// Contexts a binding applies to.
const (
	ContextGlobal    = "global"
	ContextSelection = "selection"
	ContextGame      = "game"
)

// Binding maps keys to an action in a context.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// All contains every key binding, also used for help generation.
var All = []Binding{
	{ActionQuit, []string{"q", "ctrl+c"}, "Quitter", ContextGlobal},
	{ActionHelp, []string{"?"}, "Aide", ContextGlobal},

	{ActionMoveUp, []string{"k", "up"}, "Famille précédente", ContextSelection},
	{ActionMoveDown, []string{"j", "down"}, "Famille suivante", ContextSelection},
	{ActionToggle, []string{" ", "x"}, "Cocher/décocher", ContextSelection},
	{ActionSelectAll, []string{"a"}, "Tout cocher", ContextSelection},
	{ActionSelectNone, []string{"c"}, "Tout décocher", ContextSelection},
	{ActionStartGame, []string{"enter"}, "Commencer", ContextSelection},

	{ActionGrantPermission, []string{"enter"}, "Lancer la partie", ContextGame},
	{ActionPlayPause, []string{" ", "p"}, "Pause/reprendre", ContextGame},
	{ActionNext, []string{"n", "right"}, "Phrase suivante", ContextGame},
	{ActionDurationDown, []string{"-", "h"}, "Temps entre deux phrases -1s", ContextGame},
	{ActionDurationUp, []string{"+", "=", "l"}, "Temps entre deux phrases +1s", ContextGame},
	{ActionMute, []string{"m"}, "Couper/remettre le son", ContextGame},
	{ActionBackToSelection, []string{"esc", "backspace"}, "Retourner à la sélection de familles", ContextGame},
}

// ByContext returns the bindings of one context.
func ByContext(context string) []Binding {
	var out []Binding
	for _, b := range All {
		if b.Context == context {
			out = append(out, b)
		}
	}
	return out
}

// ForScreen returns the global bindings followed by those of context.
// Screen bindings win on conflicts.
func ForScreen(context string) []Binding {
	return append(ByContext(ContextGlobal), ByContext(context)...)
}
