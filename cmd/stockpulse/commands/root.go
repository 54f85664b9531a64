package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "stockpulse",
	Short: "StockPulse - deterministic equity scoring engine",
	Long: `StockPulse Unified CLI

Scores equities on a 0-5 scale from technical indicators, fundamentals,
analyst consensus and news sentiment, and serves the results over HTTP
and WebSocket.

Usage:
  go run ./cmd/stockpulse [command]

Examples:
  go run ./cmd/stockpulse serve
  go run ./cmd/stockpulse score TTE.PA
  go run ./cmd/stockpulse presets`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}
