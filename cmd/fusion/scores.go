package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/emoji-fusion/internal/storage"
)

var (
	flagAllProfiles bool
	flagLimit       int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show finished runs",
	Long: `Display the best finished runs of a profile, or of every profile.

Examples:
  fusion scores
  fusion scores --profile alice
  fusion scores --all --limit 20
  fusion scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagAllProfiles, "all", false, "Show runs of every profile")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the profile's score history")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening game database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	profileID := store.Profile(flagProfile).ID()

	if flagClear {
		if err := store.ClearScores(profileID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared score history of %s\n", profileID)
		return
	}

	title := profileID
	if flagAllProfiles {
		profileID = ""
		title = "all players"
	}

	scores, err := store.TopScores(profileID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'fusion play' and finish a game to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-14s  %-12s  %s\n", "Rank", "Score", "Level", "Tile", "Outcome", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-14s  %-12s  %s\n", "----", "-----", "-----", "----", "-------", "------", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-5d  %-6d  %-14s  %-12s  %s\n",
			i+1, entry.Score, entry.Level, entry.BestTile, entry.Outcome, entry.ProfileID, dateStr)
	}

	if profileID == "" {
		return
	}
	fmt.Println()
	if stats, err := store.Stats(profileID); err == nil && stats.GamesCount > 0 {
		fmt.Printf("Best: %d  Runs: %d  Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
}
