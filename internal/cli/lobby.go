package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newLobbyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lobby",
		Short: "Lobby management commands",
	}

	cmd.AddCommand(newLobbyGetCmd())
	cmd.AddCommand(newLobbyJoinCmd())
	cmd.AddCommand(newLobbyStartCmd())
	cmd.AddCommand(newLobbyLeaveCmd())
	cmd.AddCommand(newLobbyResetCmd())

	return cmd
}

func newLobbyGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show who is in the lobby",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LobbyStatus

			if err := client.Get("/api/v1/lobby", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newLobbyJoinCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join the lobby and save the issued player ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": name}
			var result JoinResult

			if err := client.Post("/api/v1/lobby/join", req, &result); err != nil {
				return err
			}

			playerID := strconv.Itoa(result.PlayerID)
			if err := cfg.SavePlayerID(playerID); err != nil {
				return fmt.Errorf("failed to save player ID: %w", err)
			}
			client.SetPlayerID(playerID)

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newLobbyStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the game with the players in the lobby",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/lobby/start", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage("Game started")
			return nil
		},
	}
}

func newLobbyLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave",
		Short: "Leave the lobby and forget the saved player ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/lobby/leave", nil, nil); err != nil {
				return err
			}
			if err := cfg.ClearPlayerID(); err != nil {
				return fmt.Errorf("failed to clear player ID: %w", err)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage("Left the lobby")
			return nil
		},
	}
}

func newLobbyResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear a finished game so a new one can be set up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/lobby/reset", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage("Lobby reset")
			return nil
		},
	}
}
