package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "auctionctl",
		Short: "CLI tool for the auction room API",
		Long: `auctionctl is a CLI tool for interacting with the auction room JSON API.

It supports all API operations including room management, joining as
auctioneer or captain, bidding, pool uploads, and real-time SSE event
streaming.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load connection handle from file if not provided via flag/env
			if err := cfg.LoadConnection(); err != nil {
				return err
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL, cfg.Connection)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: AUCTION_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Connection, "connection", cfg.Connection, "Connection handle (env: AUCTION_CONNECTION)")
	rootCmd.PersistentFlags().StringVar(&cfg.ConnectionFile, "connection-file", cfg.ConnectionFile, "Connection file path (env: AUCTION_CONNECTION_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newRoomCmd())
	rootCmd.AddCommand(newPoolCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
