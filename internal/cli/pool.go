package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newPoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Manage player pools",
	}

	cmd.AddCommand(newPoolListCmd())
	cmd.AddCommand(newPoolUploadCmd())
	cmd.AddCommand(newPoolDeleteCmd())

	return cmd
}

func newPoolListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored player pools",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var result PoolListResult
			if err := client.Get("/api/v1/pools", &result); err != nil {
				out.PrintError(err)
				return err
			}

			out.Print(result)
			return nil
		},
	}
}

func newPoolUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <name> <players.json>",
		Short: "Upload a players.json document as a named pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			data, err := os.ReadFile(args[1])
			if err != nil {
				out.PrintError(err)
				return err
			}

			var result struct {
				Players int `json:"players"`
			}
			if err := client.PutRaw("/api/v1/pools/"+args[0], data, &result); err != nil {
				out.PrintError(err)
				return err
			}

			out.PrintMessage(fmt.Sprintf("Pool %s stored (%d players)", args[0], result.Players))
			return nil
		},
	}
}

func newPoolDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if err := client.Delete("/api/v1/pools/" + args[0]); err != nil {
				out.PrintError(err)
				return err
			}

			out.PrintMessage("Pool deleted")
			return nil
		},
	}
}
