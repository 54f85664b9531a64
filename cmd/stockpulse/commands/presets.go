package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avernet/stockpulse/internal/scoring"
)

// presetsCmd represents the presets command
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in scoring presets",
	RunE:  runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	for _, id := range scoring.PresetIDs() {
		cfg, err := scoring.Preset(id)
		if err != nil {
			return err
		}

		hash, err := scoring.Hash(&cfg)
		if err != nil {
			return err
		}

		marker := " "
		if id == scoring.DefaultPresetID {
			marker = "*"
		}

		fmt.Printf("%s %s (version %s, hash %s)\n", marker, id, cfg.Meta.Version, hash[:12])
		fmt.Printf("    RSI %g/%g, max points %g, bands %.1f/%.1f/%.1f/%.1f\n",
			cfg.Technical.RSIOversold, cfg.Technical.RSIOverbought, cfg.Technical.MaxPoints,
			cfg.Bands.StrongBuy, cfg.Bands.Buy, cfg.Bands.Hold, cfg.Bands.Sell)
		fmt.Printf("    indicators: bollinger=%t sma_medium=%t golden_cross=%t macd=%t\n",
			cfg.Technical.UseBollinger, cfg.Technical.UseSMAMedium,
			cfg.Technical.UseGoldenCross, cfg.Technical.UseMACD)
	}

	fmt.Println("\n* default preset")
	return nil
}
