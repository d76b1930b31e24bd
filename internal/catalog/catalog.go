// Package catalog holds the read-only table of unlockable emoji themes.
package catalog

import (
	"sort"

	"github.com/vovakirdan/emoji-fusion/internal/config"
)

// Theme is one entry of the catalog.
type Theme struct {
	ID            string
	Name          string
	Category      string
	RequiredScore int // best score that unlocks the theme for free
	RequiredCoins int // purchase price
}

// Free reports whether the theme needs neither score nor coins.
func (t Theme) Free() bool {
	return t.RequiredScore == 0 && t.RequiredCoins == 0
}

// Catalog maps theme ids to their definitions, keeping the configured order.
type Catalog struct {
	order  []string
	themes map[string]Theme
}

// New builds a catalog from configuration entries. Later duplicates are ignored.
func New(entries []config.ThemeEntry) *Catalog {
	c := &Catalog{themes: make(map[string]Theme, len(entries))}
	for _, e := range entries {
		if _, ok := c.themes[e.ID]; ok || e.ID == "" {
			continue
		}
		name := e.Name
		if name == "" {
			name = e.ID
		}
		c.order = append(c.order, e.ID)
		c.themes[e.ID] = Theme{
			ID:            e.ID,
			Name:          name,
			Category:      e.Category,
			RequiredScore: e.RequiredScore,
			RequiredCoins: e.RequiredCoins,
		}
	}
	return c
}

// Get looks up a theme by id.
func (c *Catalog) Get(id string) (Theme, bool) {
	t, ok := c.themes[id]
	return t, ok
}

// Len returns the number of themes.
func (c *Catalog) Len() int {
	return len(c.order)
}

// List returns all themes in catalog order.
func (c *Catalog) List() []Theme {
	out := make([]Theme, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.themes[id])
	}
	return out
}

// Eligible returns the ids of themes a best score unlocks for free, sorted.
func (c *Catalog) Eligible(bestScore int) []string {
	var ids []string
	for _, id := range c.order {
		if c.themes[id].RequiredScore <= bestScore {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, id := range c.order {
		cat := c.themes[id].Category
		if !seen[cat] {
			seen[cat] = true
			out = append(out, cat)
		}
	}
	return out
}
