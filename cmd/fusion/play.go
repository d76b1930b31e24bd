package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/emoji-fusion/internal/game"
	"github.com/vovakirdan/emoji-fusion/internal/platform/tui"
	"github.com/vovakirdan/emoji-fusion/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Resume the saved game of the selected profile, or start a new one.

Controls:
  Arrows/WASD/HJKL - Slide tiles
  Z                - Use a switcher (reshuffle the board)
  E                - Cell mode: write a tile or detonate a bomb
  N/R              - New game
  Enter/Space      - Next level (when the level is complete)
  T                - Themes
  Tab              - Scores
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Bombs, coins and keys spawn twice as often, level threshold x0.75
  normal - Default spawn table
  hard   - Bombs, coins and keys spawn half as often, more 4s, threshold x1.5

Examples:
  fusion play
  fusion play --profile alice
  fusion play --difficulty hard --seed 42
  fusion play --config ./my-fusion.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	logger := newLogger("fusion")

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	session, store, err := openSession(logger)
	if err != nil {
		logger.Warn("playing without saved progress", "error", err)

		cfg, cfgErr := loadConfig()
		if cfgErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", cfgErr)
			os.Exit(1)
		}
		session, err = game.Load(context.Background(), game.Options{
			Config: cfg,
			Logger: logger,
			Seed:   flagSeed,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		store = nil
	}

	runErr := tui.Run(session, store, storageProfile(store), width, height)

	// Flush the session before the store goes away
	session.Close()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// storageProfile is the profile whose scores the scoreboard opens on.
func storageProfile(store *storage.Store) string {
	if store == nil {
		return ""
	}
	return store.Profile(flagProfile).ID()
}
