package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score [symbol]",
	Short: "Score a single symbol",
	Long: `Evaluates one symbol and prints the score breakdown.

Example:
  go run ./cmd/stockpulse score TTE.PA`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	symbol := args[0]

	app, err := buildApp()
	if err != nil {
		return err
	}
	defer app.close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := app.service.Evaluate(ctx, symbol)
	if err != nil {
		return fmt.Errorf("evaluate %s: %w", symbol, err)
	}

	fmt.Printf("=== %s ===\n", result.Symbol)
	fmt.Printf("Final score:    %.2f / 5  (%s)\n", result.FinalScore, result.Recommendation.Label())
	fmt.Printf("Preset:         %s\n\n", app.service.Config().Meta.PresetID)

	fmt.Println("Sub-scores:")
	fmt.Printf("  Technical:    %.2f\n", result.SubScores.Technical)
	fmt.Printf("  Fundamental:  %.2f\n", result.SubScores.Fundamental)
	fmt.Printf("  Consensus:    %.2f\n", result.SubScores.Consensus)
	fmt.Printf("  Sentiment:    %.2f\n\n", result.SubScores.Sentiment)

	fmt.Println("Justifications:")
	for _, j := range result.Justifications {
		fmt.Printf("  [%s] %s\n", j.Category, j.Text)
	}

	if len(result.News) > 0 {
		fmt.Println("\nRecent headlines:")
		for _, item := range result.News {
			fmt.Printf("  [%s] %s (%s)\n", item.Polarity, item.Headline, item.PublishedAt.Format("2006-01-02"))
		}
	}

	return nil
}
