package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands (act as the saved player)",
	}

	cmd.AddCommand(newGameGetCmd[CardsInfo]("cards", "List every card in the deck", "/api/v1/game/cards-info"))
	cmd.AddCommand(newGameGetCmd[InitialState]("hand", "Show your hand and the table", "/api/v1/game/initial-state"))
	cmd.AddCommand(newGameGetCmd[GameState]("state", "Show whose turn it is and the current phase", "/api/v1/game/state"))
	cmd.AddCommand(newGameGetCmd[PlayersInfo]("players", "Show every player and the allowed actions", "/api/v1/game/players-info"))
	cmd.AddCommand(newGameGetCmd[PossiblePositions]("positions", "List the tiles reachable with the last roll", "/api/v1/game/possible-positions"))
	cmd.AddCommand(newGameGetCmd[LastAccusation]("accusation-result", "Show the last accusation", "/api/v1/game/accusation-result"))
	cmd.AddCommand(newGameGetCmd[Suspicion]("suspicion", "Show the open suspicion", "/api/v1/game/suspicion"))
	cmd.AddCommand(newGameGetCmd[Disproof]("rule-out", "Show who must disprove the open suspicion", "/api/v1/game/rule-out-suspicion"))
	cmd.AddCommand(newGameGetCmd[CharacterPositions]("character-positions", "Show where every character stands", "/api/v1/game/character-positions"))
	cmd.AddCommand(newGameGetCmd[LastRoom]("last-room", "Show the room you last entered", "/api/v1/game/last-suspicion-position"))
	cmd.AddCommand(newGameGetCmd[GameOver]("game-over", "Reveal the secret once the game is over", "/api/v1/game/game-over"))

	cmd.AddCommand(newGameRollCmd())
	cmd.AddCommand(newGameMoveCmd())
	cmd.AddCommand(newGameEndTurnCmd())
	cmd.AddCommand(newGameStartAccusationCmd())
	cmd.AddCommand(newGameAccuseCmd())
	cmd.AddCommand(newGameStartSuspicionCmd())
	cmd.AddCommand(newGameSuspectCmd())
	cmd.AddCommand(newGameInvalidateCmd())

	return cmd
}

// newGameGetCmd builds a read-only command that prints the decoded T
func newGameGetCmd[T any](use, short, path string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result T

			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newGameRollCmd() *cobra.Command {
	var dice string

	cmd := &cobra.Command{
		Use:   "roll",
		Short: "Roll the dice (or report a physical roll with --dice)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req any
			if dice != "" {
				parsed, err := parseDice(dice)
				if err != nil {
					return err
				}
				req = map[string][2]int{"dice": parsed}
			}

			var result DiceRoll

			if err := client.Post("/api/v1/game/roll-dice", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&dice, "dice", "", "Dice values as a,b (each 1-6)")

	return cmd
}

func parseDice(raw string) ([2]int, error) {
	var dice [2]int
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return dice, fmt.Errorf("dice must be two values like 3,4")
	}
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v < 1 || v > 6 {
			return dice, fmt.Errorf("die value %q must be between 1 and 6", part)
		}
		dice[i] = v
	}
	return dice, nil
}

func newGameMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <x> <y>",
		Short: "Move your pawn to a reachable tile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("x must be an integer")
			}
			y, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("y must be an integer")
			}

			req := Position{X: x, Y: y}
			var result MoveResult

			if err := client.Post("/api/v1/game/move-pawn", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newGameEndTurnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end-turn",
		Short: "Pass the turn to the next player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Post("/api/v1/game/end-turn", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newGameStartAccusationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start-accusation",
		Short: "Announce that you are about to accuse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/game/start-accusation", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage("Accusation started")
			return nil
		},
	}
}

func newGameAccuseCmd() *cobra.Command {
	var combo Combination

	cmd := &cobra.Command{
		Use:   "accuse",
		Short: "Name the killing combination",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result AccusationResult

			if err := client.Post("/api/v1/game/accuse", combo, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	addCombinationFlags(cmd, &combo)

	return cmd
}

func newGameStartSuspicionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start-suspicion",
		Short: "Announce that you are about to raise a suspicion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/game/start-suspicion", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage("Suspicion started")
			return nil
		},
	}
}

func newGameSuspectCmd() *cobra.Command {
	var combo Combination

	cmd := &cobra.Command{
		Use:   "suspect",
		Short: "Raise a suspicion in the room you just entered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Suspicion

			if err := client.Post("/api/v1/game/suspect", combo, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	addCombinationFlags(cmd, &combo)

	return cmd
}

func addCombinationFlags(cmd *cobra.Command, combo *Combination) {
	cmd.Flags().StringVar(&combo.Weapon, "weapon", "", "Weapon card (required)")
	cmd.Flags().StringVar(&combo.Room, "room", "", "Room card (required)")
	cmd.Flags().StringVar(&combo.Suspect, "suspect", "", "Suspect card (required)")
	_ = cmd.MarkFlagRequired("weapon")
	_ = cmd.MarkFlagRequired("room")
	_ = cmd.MarkFlagRequired("suspect")
}

func newGameInvalidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate <card>",
		Short: "Show one of your matching cards to the suspector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"card": args[0]}

			if err := client.Post("/api/v1/game/invalidate", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("Showed %s", args[0]))
			return nil
		},
	}
}
