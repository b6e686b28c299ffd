// Package icons provides the glyphs of the game screen in three styles.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Playing   string
	Paused    string
	Timer     string
	Finished  string
	Checked   string
	Unchecked string
}

var (
	nerdIcons = Icons{
		Playing:   "\uf04b ",     // nf-fa-play
		Paused:    "\uf04c ",     // nf-fa-pause
		Timer:     "\U000f051f ", // nf-md-timer_sand
		Finished:  "\uf091 ",     // nf-fa-trophy
		Checked:   "\uf14a",      // nf-fa-check_square
		Unchecked: "\uf096",      // nf-fa-square_o
	}

	unicodeIcons = Icons{
		Playing:   "▶ ",
		Paused:    "⏸ ",
		Timer:     "⏳ ",
		Finished:  "🏆 ",
		Checked:   "☑",
		Unchecked: "☐",
	}

	noneIcons = Icons{
		Playing:   "",
		Paused:    "",
		Timer:     "",
		Finished:  "",
		Checked:   "[x]",
		Unchecked: "[ ]",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init selects the icon set. Unknown styles select StyleNone.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// Playing prefixes the family or item being announced.
func Playing() string {
	return current.Playing
}

// Paused prefixes the pause label.
func Paused() string {
	return current.Paused
}

// Timer prefixes the countdown.
func Timer() string {
	return current.Timer
}

// Finished prefixes the end of game message.
func Finished() string {
	return current.Finished
}

// Checkbox returns the selection box of a family.
func Checkbox(checked bool) string {
	if checked {
		return current.Checked
	}
	return current.Unchecked
}
