package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/emoji-fusion/internal/game"
	"github.com/vovakirdan/emoji-fusion/internal/storage"
)

// SessionModel is the top-level model for one player: the game, with the
// scoreboard reachable from it. Used both locally and over SSH.
type SessionModel struct {
	game       GameModel
	scoreboard ScoreboardModel
	store      *storage.Store
	profile    string
	inScores   bool
	quitting   bool
	width      int
	height     int
}

// NewSessionModel creates a new session model. store may be nil, in which
// case the scoreboard stays empty.
func NewSessionModel(s *game.Session, store *storage.Store, profile string, width, height int) SessionModel {
	return SessionModel{
		game:    NewGameModel(s, width, height),
		store:   store,
		profile: profile,
		width:   width,
		height:  height,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.game.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	if m.inScores {
		return m.updateScores(msg)
	}
	return m.updateGame(msg)
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gm, ok := newModel.(GameModel); ok {
		m.game = gm
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.WantsScores() {
		m.game.wantScores = false
		m.scoreboard = NewScoreboardModel(m.store, m.profile, m.width, m.height)
		m.inScores = true
		return m, m.scoreboard.Init()
	}

	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sm, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sm
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.inScores = false
		// the game may have missed resizes while the scoreboard was up
		newModel, _ := m.game.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		if gm, ok := newModel.(GameModel); ok {
			m.game = gm
		}
		return m, nil
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inScores {
		return m.scoreboard.View()
	}
	return m.game.View()
}

// Run plays a session in the local terminal until the player quits.
func Run(s *game.Session, store *storage.Store, profile string, width, height int) error {
	model := NewSessionModel(s, store, profile, width, height)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
