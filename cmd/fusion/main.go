// fusion is Emoji Fusion, a 2048-style merge puzzle with special tiles,
// played in the terminal or over SSH.
//
// Usage:
//
//	fusion play              - Play in this terminal
//	fusion serve             - Start SSH server for remote play
//	fusion status            - Show saved progress for a profile
//	fusion themes            - List themes and what they cost
//	fusion buy <theme>       - Unlock a theme with coins
//	fusion scores            - Show finished runs
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.fusion/fusion.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard
//	--profile <name>      - Profile to play as (default: local)
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/emoji-fusion/internal/config"
	"github.com/vovakirdan/emoji-fusion/internal/game"
	"github.com/vovakirdan/emoji-fusion/internal/storage"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagProfile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fusion",
	Short: "Emoji Fusion - merge tiles, collect coins, clear levels",
	Long: `Emoji Fusion is a 2048-style merge puzzle for the terminal.

Slide tiles to merge equal numbers. Coins, keys and bombs fall in now and
then: pair them up for bonuses. Fill the level bar to advance.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  status   - Show saved progress
  themes   - List themes
  buy      - Unlock a theme with coins
  scores   - View finished runs

Examples:
  fusion play
  fusion play --difficulty easy
  fusion serve --ssh :2222
  fusion buy ocean --profile alice
  fusion scores --all`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.fusion/fusion.db", "Path to game database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", storage.LocalProfile, "Profile name")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(buyCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the CLI logger at the level named by --log-level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using warn", "level", flagLogLevel)
		level = log.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadConfig reads the game config and applies --difficulty.
func loadConfig() (*config.FusionConfig, error) {
	cfg, err := config.LoadFusion(flagConfig)
	if err != nil {
		return nil, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return nil, err
	}
	config.ApplyFusionPreset(&cfg, preset)
	return &cfg, nil
}

// openSession opens the database and loads the --profile session from it.
// The caller closes the session before the store.
func openSession(logger *log.Logger) (*game.Session, *storage.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open game database: %w", err)
	}

	profile := store.Profile(flagProfile)
	session, err := game.Load(context.Background(), game.Options{
		Config:    cfg,
		Persister: profile,
		Logger:    logger.With("profile", profile.ID()),
		Seed:      flagSeed,
	})
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return session, store, nil
}
