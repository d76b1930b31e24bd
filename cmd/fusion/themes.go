package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/emoji-fusion/internal/game"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List themes and what they cost",
	Long: `Show the theme catalog for a profile. A theme unlocks for free once
the profile's best score reaches its score requirement, or can be bought
with coins at any time.`,
	Args: cobra.NoArgs,
	Run:  runThemes,
}

func init() {
	themesCmd.Flags().StringVar(&flagCategory, "category", "", "Only list themes of this category")
}

var (
	flagSelect   bool
	flagCategory string
)

var buyCmd = &cobra.Command{
	Use:   "buy <theme>",
	Short: "Unlock a theme",
	Long: `Unlock a theme for the selected profile. Themes the best score already
qualifies for are unlocked for free; others cost their coin price.

Examples:
  fusion buy ocean
  fusion buy space --select --profile alice`,
	Args: cobra.ExactArgs(1),
	Run:  runBuy,
}

func init() {
	buyCmd.Flags().BoolVar(&flagSelect, "select", false, "Also make it the active theme")
}

func runThemes(_ *cobra.Command, _ []string) {
	session, store, err := openSession(newLogger("fusion"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	defer session.Close()

	themes := session.Themes()
	categories := themes.Categories()
	if flagCategory != "" && !slices.Contains(categories, flagCategory) {
		fmt.Fprintf(os.Stderr, "Error: unknown category %q (have %s)\n", flagCategory, strings.Join(categories, ", "))
		os.Exit(1)
	}

	snap := session.Snapshot()
	free := themes.Eligible(snap.BestScore)

	fmt.Printf("Themes - %d coins, best score %d\n", snap.Coins, snap.BestScore)
	fmt.Printf("Categories: %s\n", strings.Join(categories, ", "))
	fmt.Println()

	fmt.Printf("  %-12s  %-16s  %-10s  %-7s  %-6s  %s\n", "ID", "Name", "Category", "Score", "Price", "Status")
	fmt.Printf("  %-12s  %-16s  %-10s  %-7s  %-6s  %s\n", "--", "----", "--------", "-----", "-----", "------")

	for _, t := range themes.List() {
		if flagCategory != "" && t.Category != flagCategory {
			continue
		}
		status := "locked"
		switch {
		case t.ID == snap.Theme:
			status = "active"
		case session.ThemeUnlocked(t.ID):
			status = "owned"
		case slices.Contains(free, t.ID):
			status = "free"
		}
		fmt.Printf("  %-12s  %-16s  %-10s  %-7d  %-6d  %s\n", t.ID, t.Name, t.Category, t.RequiredScore, t.RequiredCoins, status)
	}

	fmt.Println()
	fmt.Println("Run 'fusion buy <id>' to unlock a theme.")
}

func runBuy(_ *cobra.Command, args []string) {
	id := args[0]

	session, store, err := openSession(newLogger("fusion"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err = unlock(session, id)
	if err == nil && flagSelect {
		err = session.SetTheme(id)
	}
	coins := session.Snapshot().Coins

	// Flush before exiting either way
	session.Close()
	store.Close()

	switch {
	case errors.Is(err, game.ErrUnknownTheme):
		fmt.Fprintf(os.Stderr, "Error: unknown theme %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'fusion themes' to see available themes.")
		os.Exit(1)
	case errors.Is(err, game.ErrInsufficientFunds):
		fmt.Fprintf(os.Stderr, "Not enough coins for %q (you have %d)\n", id, coins)
		os.Exit(1)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Unlocked %s, %d coins left\n", id, coins)
}

// unlock grants a theme by score when the best score qualifies and buys it
// otherwise.
func unlock(session *game.Session, id string) error {
	if session.ThemeUnlocked(id) {
		return nil
	}
	free := session.Themes().Eligible(session.Snapshot().BestScore)
	if slices.Contains(free, id) {
		return session.UnlockTheme(id)
	}
	return session.BuyTheme(id)
}
