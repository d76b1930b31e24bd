package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show saved progress for a profile",
	Long: `Print the saved level, score, coins, switchers and theme of a profile.

Examples:
  fusion status
  fusion status --profile alice`,
	Args: cobra.NoArgs,
	Run:  runStatus,
}

func runStatus(_ *cobra.Command, _ []string) {
	session, store, err := openSession(newLogger("fusion"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	snap := session.Snapshot()
	session.Close()
	store.Close()

	fmt.Printf("Profile:    %s\n", flagProfile)
	fmt.Printf("Level:      %d (%d/%d)\n", snap.Level, snap.Progress, snap.NextLevelThreshold)
	fmt.Printf("State:      %s\n", snap.Phase)
	fmt.Printf("Score:      %d (best %d, best tile %d)\n", snap.Score, snap.BestScore, snap.BestTile)
	fmt.Printf("Coins:      %d\n", snap.Coins)
	fmt.Printf("Switchers:  %d\n", snap.Switchers)
	fmt.Printf("Theme:      %s\n", snap.Theme)
	fmt.Printf("Unlocked:   %s\n", strings.Join(snap.UnlockedThemes, ", "))
}
