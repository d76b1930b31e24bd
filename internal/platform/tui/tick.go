// Package tui provides the Bubble Tea front end of Emoji Fusion, for local
// play and for per-connection sessions over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// flashDuration is how long spawn-event feedback stays highlighted.
const flashDuration = 600 * time.Millisecond

// flashDoneMsg ends the highlight started by the move with the same id.
type flashDoneMsg struct {
	id int
}

// flashCmd returns a command that ends highlight id after flashDuration.
func flashCmd(id int) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashDoneMsg{id: id}
	})
}
