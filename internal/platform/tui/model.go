package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/emoji-fusion/internal/engine"
	"github.com/vovakirdan/emoji-fusion/internal/game"
)

// screen is the sub-view the game model shows.
type screen int

const (
	screenBoard screen = iota
	screenCells
	screenThemes
	screenTutorial
)

// GameModel is the Bubble Tea model of one player's game.
type GameModel struct {
	session *game.Session
	snap    game.Snapshot
	keys    KeyMap
	help    help.Model
	style   Style
	width   int
	height  int

	screen  screen
	cursor  engine.Pos
	themes  ThemesModel
	status  string
	flashed map[engine.Pos]bool
	flashID int

	quitting   bool
	wantScores bool
}

// NewGameModel creates the model for a loaded session.
func NewGameModel(s *game.Session, width, height int) GameModel {
	snap := s.Snapshot()
	m := GameModel{
		session: s,
		snap:    snap,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		style:   StyleFor(snap.Theme),
		width:   width,
		height:  height,
	}
	m.help.Width = width
	if !snap.TutorialSeen {
		m.screen = screenTutorial
	}
	return m
}

// Init initializes the model.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.screen == screenThemes {
			m.themes = m.themes.Resize(msg.Width, msg.Height)
		}
		return m, nil

	case flashDoneMsg:
		if msg.id == m.flashID {
			m.flashed = nil
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && m.screen != screenThemes {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.screen {
		case screenTutorial:
			m.session.DismissTutorial()
			m.refresh()
			m.screen = screenBoard
			return m, nil
		case screenCells:
			return m.handleCellKey(msg)
		case screenThemes:
			return m.handleThemesKey(msg)
		default:
			return m.handleBoardKey(msg)
		}
	}
	return m, nil
}

func (m *GameModel) refresh() {
	m.snap = m.session.Snapshot()
	m.style = StyleFor(m.snap.Theme)
}

func (m GameModel) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if dir, ok := m.direction(msg); ok {
		return m.move(dir)
	}

	switch {
	case key.Matches(msg, m.keys.Switcher):
		before := m.snap.Switchers
		if _, ok := m.session.UseSwitcher(); ok {
			m.status = "switcher used"
		} else if before == 0 {
			m.status = "no switchers left"
		} else {
			m.status = "nothing to switch"
		}

	case key.Matches(msg, m.keys.NewGame):
		if m.snap.Phase == game.PhaseGameOver {
			m.session.RestartGame()
		} else {
			m.session.NewGame()
		}
		m.status = "new game"

	case key.Matches(msg, m.keys.NextLevel):
		if _, err := m.session.NextLevel(); err == nil {
			m.status = fmt.Sprintf("level %d", m.session.Snapshot().Level)
		}

	case key.Matches(msg, m.keys.Edit):
		if m.snap.Phase != game.PhaseLevelComplete {
			m.screen = screenCells
			m.status = "cell mode: x detonates, 1-9 writes 2..512, esc leaves"
		}

	case key.Matches(msg, m.keys.Themes):
		m.themes = NewThemesModel(m.session, m.width, m.height)
		m.screen = screenThemes

	case key.Matches(msg, m.keys.Scores):
		m.wantScores = true

	case key.Matches(msg, m.keys.Sound):
		m.status = onOff("sound", m.session.ToggleSound())

	case key.Matches(msg, m.keys.Music):
		m.status = onOff("music", m.session.ToggleMusic())

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	m.refresh()
	return m, nil
}

func (m GameModel) move(dir engine.Direction) (tea.Model, tea.Cmd) {
	snap, ok := m.session.Move(dir)
	if !ok {
		return m, nil
	}
	m.snap = snap
	m.status = ""
	if len(snap.SpawnEvents) == 0 {
		return m, nil
	}

	m.flashID++
	m.flashed = make(map[engine.Pos]bool, len(snap.SpawnEvents))
	parts := make([]string, 0, len(snap.SpawnEvents))
	for _, ev := range snap.SpawnEvents {
		m.flashed[ev.Pos] = true
		parts = append(parts, describeEvent(ev))
	}
	m.status = strings.Join(parts, ", ")
	return m, flashCmd(m.flashID)
}

func (m GameModel) direction(msg tea.KeyMsg) (engine.Direction, bool) {
	switch {
	case key.Matches(msg, m.keys.Up):
		return engine.DirUp, true
	case key.Matches(msg, m.keys.Down):
		return engine.DirDown, true
	case key.Matches(msg, m.keys.Left):
		return engine.DirLeft, true
	case key.Matches(msg, m.keys.Right):
		return engine.DirRight, true
	}
	return 0, false
}

func (m GameModel) handleCellKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if dir, ok := m.direction(msg); ok {
		switch dir {
		case engine.DirUp:
			m.cursor.Row = max(0, m.cursor.Row-1)
		case engine.DirDown:
			m.cursor.Row = min(engine.Size-1, m.cursor.Row+1)
		case engine.DirLeft:
			m.cursor.Col = max(0, m.cursor.Col-1)
		case engine.DirRight:
			m.cursor.Col = min(engine.Size-1, m.cursor.Col+1)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = screenBoard
		m.status = ""

	case key.Matches(msg, m.keys.Detonate):
		_, err := m.session.DetonateBomb(m.cursor.Row, m.cursor.Col)
		m.status = resultText("boom", err)

	default:
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			value := 1 << int(s[0]-'0')
			_, err := m.session.SwitchTile(m.cursor.Row, m.cursor.Col, value)
			m.status = resultText(fmt.Sprintf("cell set to %d", value), err)
		}
	}

	m.refresh()
	return m, nil
}

func (m GameModel) handleThemesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.themes, cmd = m.themes.Update(msg)
	if m.themes.Done() {
		m.screen = screenBoard
		m.status = m.themes.Status()
	}
	if m.themes.Quitting() {
		m.quitting = true
		return m, tea.Quit
	}
	m.refresh()
	return m, cmd
}

func onOff(what string, on bool) string {
	if on {
		return what + " on"
	}
	return what + " off"
}

func resultText(ok string, err error) string {
	switch {
	case err == nil:
		return ok
	case errors.Is(err, game.ErrNotBomb):
		return "that cell is not a bomb"
	case errors.Is(err, game.ErrNoSwitchers):
		return "no switchers left"
	default:
		return err.Error()
	}
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenTutorial:
		return m.style.OverlayBorder.Render(m.style.OverlayText.Render(tutorialText))
	case screenThemes:
		return m.themes.View()
	}

	var cursor *engine.Pos
	if m.screen == screenCells {
		c := m.cursor
		cursor = &c
	}

	parts := []string{
		renderHUD(m.style, m.snap),
		"",
		renderBoard(m.style, m.snap.Board, cursor, m.flashed),
	}
	if overlay := renderOverlay(m.style, m.snap); overlay != "" {
		parts = append(parts, overlay)
	}
	parts = append(parts,
		m.style.Status.Render(m.status),
		m.help.View(m.keys),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Snapshot returns the last state the model rendered.
func (m GameModel) Snapshot() game.Snapshot {
	return m.snap
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// WantsScores returns true if user asked for the scoreboard.
func (m GameModel) WantsScores() bool {
	return m.wantScores
}
