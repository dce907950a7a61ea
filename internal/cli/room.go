package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Manage auction rooms",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomGetCmd())
	cmd.AddCommand(newRoomAuctioneerCmd())
	cmd.AddCommand(newRoomJoinCmd())
	cmd.AddCommand(newRoomStartCmd())
	cmd.AddCommand(newRoomBidCmd())
	cmd.AddCommand(newRoomRevealCmd())
	cmd.AddCommand(newRoomResetBudgetsCmd())
	cmd.AddCommand(newRoomCloseCmd())

	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var (
		pool        string
		teams       int
		budget      int
		maxPerRound int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new auction room",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			body := map[string]any{
				"pool":       pool,
				"team_count": teams,
			}
			if budget > 0 {
				body["initial_budget"] = budget
			}
			if maxPerRound > 0 {
				body["max_players_per_round"] = maxPerRound
			}

			var result struct {
				Code string `json:"code"`
			}
			if err := client.Post("/api/v1/rooms", body, &result); err != nil {
				out.PrintError(err)
				return err
			}

			out.PrintMessage(fmt.Sprintf("Room created: %s", result.Code))
			return nil
		},
	}

	cmd.Flags().StringVar(&pool, "pool", "", "Player pool name (required)")
	cmd.Flags().IntVar(&teams, "teams", 4, "Number of teams drafting")
	cmd.Flags().IntVar(&budget, "budget", 0, "Initial captain budget (default 1000)")
	cmd.Flags().IntVar(&maxPerRound, "max-per-round", 0, "Max players per round (default 4)")
	_ = cmd.MarkFlagRequired("pool")

	return cmd
}

func newRoomGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Show the current room state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var result RoomResult
			if err := client.Get("/api/v1/rooms/"+args[0], &result); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newRoomAuctioneerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auctioneer <code>",
		Short: "Join (or take over) a room as the auctioneer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var result RoomResult
			if err := client.Post("/api/v1/rooms/"+args[0]+"/auctioneer", nil, &result); err != nil {
				out.PrintError(err)
				return err
			}

			// Save the handle so subsequent commands act as this connection
			if err := cfg.SaveConnection(result.ConnectionID); err != nil {
				out.PrintError(err)
				return err
			}
			client.SetConnection(result.ConnectionID)

			out.Print(result)
			return nil
		},
	}
}

func newRoomJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <code> <name>",
		Short: "Join a room as a captain (reconnects if the name is known)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			body := map[string]string{"display_name": args[1]}
			var result CaptainJoinResult
			if err := client.Post("/api/v1/rooms/"+args[0]+"/captains", body, &result); err != nil {
				out.PrintError(err)
				return err
			}

			if err := cfg.SaveConnection(result.ConnectionID); err != nil {
				out.PrintError(err)
				return err
			}
			client.SetConnection(result.ConnectionID)

			out.Print(result)
			return nil
		},
	}
}

func newRoomStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <code> <player-index>",
		Short: "Open a bidding round for a player (auctioneer only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			index, err := strconv.Atoi(args[1])
			if err != nil {
				out.PrintError(fmt.Errorf("invalid player index: %s", args[1]))
				return err
			}

			body := map[string]int{"player_index": index}
			if err := client.Post("/api/v1/rooms/"+args[0]+"/rounds", body, nil); err != nil {
				out.PrintError(err)
				return err
			}

			out.PrintMessage("Round opened")
			return nil
		},
	}
}

func newRoomBidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bid <code> <amount>",
		Short: "Place a sealed bid in the open round (captain only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			amount, err := strconv.Atoi(args[1])
			if err != nil {
				out.PrintError(fmt.Errorf("invalid bid amount: %s", args[1]))
				return err
			}

			body := map[string]int{"amount": amount}
			var result BidResult
			if err := client.Post("/api/v1/rooms/"+args[0]+"/bids", body, &result); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newRoomRevealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reveal <code>",
		Short: "Reveal bids and settle the round (auctioneer only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if err := client.Post("/api/v1/rooms/"+args[0]+"/reveal", nil, nil); err != nil {
				out.PrintError(err)
				return err
			}

			out.PrintMessage("Round settled")
			return nil
		},
	}
}

func newRoomResetBudgetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-budgets <code>",
		Short: "Reset every captain's remaining budget (auctioneer only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if err := client.Post("/api/v1/rooms/"+args[0]+"/reset-budgets", nil, nil); err != nil {
				out.PrintError(err)
				return err
			}

			out.PrintMessage("Budgets reset")
			return nil
		},
	}
}

func newRoomCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close <code>",
		Short: "Close the room (auctioneer only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if err := client.Delete("/api/v1/rooms/" + args[0]); err != nil {
				out.PrintError(err)
				return err
			}

			out.PrintMessage("Room closed")
			return nil
		},
	}
}
