package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/emoji-fusion/internal/engine"
	"github.com/vovakirdan/emoji-fusion/internal/game"
)

const (
	cellWidth   = 6 // inner width of a tile
	progressBar = 24
)

// tileLabel returns the text shown on a tile.
func tileLabel(v int) string {
	switch engine.Kind(v) {
	case engine.KindBomb:
		return "BOMB"
	case engine.KindCoin:
		return "COIN"
	case engine.KindReward:
		return "KEY"
	}
	if v == 0 {
		return "·"
	}
	return strconv.Itoa(v)
}

// renderBoard draws the grid. cursor is nil outside cell mode; flashed cells
// get the theme accent border.
func renderBoard(st Style, b engine.Board, cursor *engine.Pos, flashed map[engine.Pos]bool) string {
	rows := make([]string, engine.Size)
	for y := range engine.Size {
		cells := make([]string, engine.Size)
		for x := range engine.Size {
			v := b[y][x]
			border := lipgloss.Color("240")
			switch p := (engine.Pos{Row: y, Col: x}); {
			case cursor != nil && *cursor == p:
				border = st.Cursor
			case flashed[p]:
				border = st.Flash
			}
			cells[x] = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(border).
				Render(st.tileStyle(v).Width(cellWidth).Align(lipgloss.Center).Render(tileLabel(v)))
		}
		rows[y] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderHUD draws score, level progress and inventory.
func renderHUD(st Style, snap game.Snapshot) string {
	field := func(label string, v int) string {
		return st.HUDLabel.Render(label+" ") + st.HUDValue.Render(strconv.Itoa(v))
	}

	line1 := strings.Join([]string{
		field("Score", snap.Score),
		field("Best", snap.BestScore),
		field("Tile", snap.BestTile),
	}, "   ")
	line2 := strings.Join([]string{
		field("Coins", snap.Coins),
		field("Switchers", snap.Switchers),
		st.HUDLabel.Render("Theme ") + st.HUDValue.Render(snap.Theme),
	}, "   ")

	return lipgloss.JoinVertical(lipgloss.Left,
		st.HUDTitle.Render("EMOJI FUSION"),
		line1,
		line2,
		renderProgress(st, snap),
	)
}

// renderProgress draws the level progress bar.
func renderProgress(st Style, snap game.Snapshot) string {
	filled := 0
	if snap.NextLevelThreshold > 0 {
		filled = min(progressBar, snap.Progress*progressBar/snap.NextLevelThreshold)
	}
	bar := st.HUDProgress.Render(strings.Repeat("█", filled)) +
		st.Empty.Render(strings.Repeat("░", progressBar-filled))
	return fmt.Sprintf("%s %s %s",
		st.HUDLabel.Render(fmt.Sprintf("Level %d", snap.Level)),
		bar,
		st.HUDLabel.Render(fmt.Sprintf("%d/%d", snap.Progress, snap.NextLevelThreshold)),
	)
}

// renderOverlay draws the phase banner, or "" while playing.
func renderOverlay(st Style, snap game.Snapshot) string {
	var title, text string
	switch snap.Phase {
	case game.PhaseLevelComplete:
		title = fmt.Sprintf("LEVEL %d COMPLETE", snap.Level)
		text = "enter: next level"
	case game.PhaseGameOver:
		title = "GAME OVER"
		text = fmt.Sprintf("score %d\nr: new game", snap.Score)
		if snap.Switchers > 0 {
			text += "   z: resume with a switcher"
		}
	default:
		return ""
	}
	return st.OverlayBorder.Render(
		lipgloss.JoinVertical(lipgloss.Center, st.OverlayTitle.Render(title), st.OverlayText.Render(text)),
	)
}

// describeEvent turns spawn feedback into a status line fragment.
func describeEvent(ev engine.SpawnEvent) string {
	switch ev.Kind {
	case engine.SpawnKey:
		return fmt.Sprintf("+%d switcher", ev.Amount)
	case engine.SpawnCoin:
		return fmt.Sprintf("+%d coins", ev.Amount)
	default:
		return fmt.Sprintf("fusion %d", ev.Amount)
	}
}

// tutorialText is shown on the first run of a profile.
const tutorialText = `Slide tiles with the arrow keys. Equal numbers merge.

Special tiles merge with each other:
  COIN+COIN    third highest tile, +100 coins
  KEY+KEY      highest tile, +1 switcher
  COIN+KEY     fourth highest tile, +1 switcher
  BOMB+BOMB    highest tile
  BOMB+COIN    32, 64 or 128, +50 coins
  BOMB+KEY     128, 256 or 512, +1 switcher

z uses a switcher: half the tiles vanish, the rest become 2.
e enters cell mode: x detonates a bomb, 1-9 rewrites a cell.

press any key`

// centerText centers text horizontally within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}
