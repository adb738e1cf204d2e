package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	noColor := os.Getenv("NO_COLOR") != ""

	rootCmd := &cobra.Command{
		Use:   "cluegame",
		Short: "CLI tool for the murder mystery board game API",
		Long: `cluegame is a CLI tool for interacting with the murder mystery game JSON API.

Join the lobby once; the issued player ID is saved and sent with every later
command. Game commands act for that player.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Output != "text" && cfg.Output != "json" {
				return fmt.Errorf("unknown output format %q, want text or json", cfg.Output)
			}
			if noColor {
				color.NoColor = true
			}

			// Flag and env take precedence over the saved file
			if err := cfg.LoadPlayerID(); err != nil {
				return err
			}
			if cfg.PlayerID != "" {
				if id, err := strconv.Atoi(cfg.PlayerID); err != nil || id <= 0 {
					return fmt.Errorf("player ID %q is not a positive number", cfg.PlayerID)
				}
			}

			client = NewClient(cfg.ServerURL, cfg.PlayerID)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: CLUEGAME_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.PlayerID, "player", cfg.PlayerID, "Player ID (env: CLUEGAME_PLAYER)")
	rootCmd.PersistentFlags().StringVar(&cfg.PlayerFile, "player-file", cfg.PlayerFile, "Player ID file path (env: CLUEGAME_PLAYER_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", noColor, "Disable coloured text output (env: NO_COLOR)")

	// Add subcommands
	rootCmd.AddCommand(newLobbyCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
