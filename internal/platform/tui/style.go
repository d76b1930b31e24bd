package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/emoji-fusion/internal/engine"
)

// Style contains the visual styles of the game screen.
type Style struct {
	Accent lipgloss.Color

	// Tiles
	Empty   lipgloss.Style
	Tile    lipgloss.Style
	Special lipgloss.Style
	Cursor  lipgloss.Color
	Flash   lipgloss.Color

	// HUD
	HUDTitle    lipgloss.Style
	HUDLabel    lipgloss.Style
	HUDValue    lipgloss.Style
	HUDProgress lipgloss.Style
	Status      lipgloss.Style

	// Overlays
	OverlayBorder lipgloss.Style
	OverlayTitle  lipgloss.Style
	OverlayText   lipgloss.Style
}

// tileColors holds a 256-color background per power of two, starting at 2.
var tileColors = []string{
	"230", "223", "215", "209", "203", "197", // 2 .. 64
	"227", "221", "220", "214", "208", // 128 .. 2048
	"141", "135", "129", "93", // 4096 ..
}

// specialColors maps special tiles to a background.
var specialColors = map[engine.TileKind]string{
	engine.KindBomb:   "88",
	engine.KindCoin:   "178",
	engine.KindReward: "33",
}

// themeAccents gives each catalog theme its own accent color.
var themeAccents = map[string]string{
	"fruits":       "205",
	"animals":      "172",
	"wild_animals": "130",
	"ocean":        "39",
	"faces":        "220",
	"professions":  "111",
	"sports":       "46",
	"space":        "99",
	"vehicles":     "196",
	"human":        "217",
}

// StyleFor returns the screen style for a theme id.
func StyleFor(themeID string) Style {
	accent, ok := themeAccents[themeID]
	if !ok {
		accent = "51"
	}
	a := lipgloss.Color(accent)

	return Style{
		Accent:  a,
		Empty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Tile:    lipgloss.NewStyle().Foreground(lipgloss.Color("232")).Bold(true),
		Special: lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		Cursor:  lipgloss.Color("226"),
		Flash:   a,

		HUDTitle:    lipgloss.NewStyle().Foreground(a).Bold(true),
		HUDLabel:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		HUDValue:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		HUDProgress: lipgloss.NewStyle().Foreground(a),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Italic(true),

		OverlayBorder: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(a).
			Padding(1, 3),
		OverlayTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		OverlayText:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	}
}

// tileStyle returns the style of one tile value.
func (s Style) tileStyle(v int) lipgloss.Style {
	switch {
	case v == 0:
		return s.Empty
	case v < 0:
		return s.Special.Background(lipgloss.Color(specialColors[engine.Kind(v)]))
	}
	i := 0
	for n := v; n > 2; n >>= 1 {
		i++
	}
	if i >= len(tileColors) {
		i = len(tileColors) - 1
	}
	return s.Tile.Background(lipgloss.Color(tileColors[i]))
}
