package tui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/emoji-fusion/internal/catalog"
	"github.com/vovakirdan/emoji-fusion/internal/game"
)

// ThemesKeyMap defines the key bindings of the theme shop.
type ThemesKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ThemesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ThemesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select}, {k.Back, k.Quit}}
}

// DefaultThemesKeyMap returns default key bindings.
func DefaultThemesKeyMap() ThemesKeyMap {
	return ThemesKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "use/unlock/buy"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ThemesModel lists the catalog and lets the player select, unlock or buy.
type ThemesModel struct {
	session  *game.Session
	themes   []catalog.Theme
	table    table.Model
	help     help.Model
	keys     ThemesKeyMap
	width    int
	height   int
	status   string
	done     bool
	quitting bool
}

// NewThemesModel creates the theme shop for a session.
func NewThemesModel(s *game.Session, width, height int) ThemesModel {
	m := ThemesModel{
		session: s,
		themes:  s.Themes().List(),
		help:    help.New(),
		keys:    DefaultThemesKeyMap(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.updateRows()
	return m
}

func (m *ThemesModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Theme", Width: 16},
		{Title: "Category", Width: 12},
		{Title: "Score", Width: 8},
		{Title: "Price", Width: 7},
		{Title: "Status", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(5, min(len(m.themes)+1, m.height-8))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// themeStatus describes a theme relative to the player.
func themeStatus(snap game.Snapshot, unlocked bool, t catalog.Theme) string {
	switch {
	case snap.Theme == t.ID:
		return "in use"
	case unlocked:
		return "owned"
	case snap.BestScore >= t.RequiredScore:
		return "free"
	case snap.Coins >= t.RequiredCoins:
		return "buy"
	default:
		return "locked"
	}
}

func (m *ThemesModel) updateRows() {
	snap := m.session.Snapshot()
	rows := make([]table.Row, len(m.themes))
	for i, t := range m.themes {
		rows[i] = table.Row{
			t.Name,
			t.Category,
			strconv.Itoa(t.RequiredScore),
			strconv.Itoa(t.RequiredCoins),
			themeStatus(snap, m.session.ThemeUnlocked(t.ID), t),
		}
	}
	m.table.SetRows(rows)
}

// Update handles messages. It returns the concrete type so the game model
// can keep embedding it.
func (m ThemesModel) Update(msg tea.Msg) (ThemesModel, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil
		case key.Matches(msg, m.keys.Back):
			m.done = true
			return m, nil
		case key.Matches(msg, m.keys.Select):
			m.status = m.activate()
			m.updateRows()
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// activate selects the highlighted theme, unlocking or buying it first.
func (m *ThemesModel) activate() string {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.themes) {
		return ""
	}
	t := m.themes[i]

	if !m.session.ThemeUnlocked(t.ID) {
		err := m.session.UnlockTheme(t.ID)
		if errors.Is(err, game.ErrThemeLocked) {
			err = m.session.BuyTheme(t.ID)
		}
		switch {
		case errors.Is(err, game.ErrInsufficientFunds):
			return fmt.Sprintf("%s costs %d coins", t.Name, t.RequiredCoins)
		case err != nil:
			return err.Error()
		}
	}

	if err := m.session.SetTheme(t.ID); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("theme: %s", t.Name)
}

// Resize adapts the table to a new window size.
func (m ThemesModel) Resize(width, height int) ThemesModel {
	m.width = width
	m.height = height
	cursor := m.table.Cursor()
	m.table = m.createTable()
	m.updateRows()
	m.table.SetCursor(cursor)
	m.help.Width = width
	return m
}

// View renders the shop.
func (m ThemesModel) View() string {
	snap := m.session.Snapshot()
	st := StyleFor(snap.Theme)

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinVertical(lipgloss.Left,
		st.HUDTitle.Render("THEMES"),
		st.HUDLabel.Render(fmt.Sprintf("coins %d   best score %d", snap.Coins, snap.BestScore)),
		tableStyle.Render(m.table.View()),
		st.Status.Render(m.status),
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)),
	)
}

// Done reports whether the player left the shop.
func (m ThemesModel) Done() bool {
	return m.done
}

// Quitting reports whether the player asked to quit.
func (m ThemesModel) Quitting() bool {
	return m.quitting
}

// Status returns the last message of the shop.
func (m ThemesModel) Status() string {
	return m.status
}
