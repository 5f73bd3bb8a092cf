package cmd

import (
	"fmt"
	"os"

	"pantry-tracker/core/config"
	"pantry-tracker/core/logger"
	"pantry-tracker/core/vision"
	"pantry-tracker/feature/inventory/estimate"

	"github.com/spf13/cobra"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <image-file>",
	Short: "Classify a local photo without touching the inventory",
	Long: `Sends a local image to the vision model and prints the detected
products with their estimated shelf life. Nothing is stored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		image, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}

		classifier := vision.NewClient(cfg.AI)
		detections, err := classifier.Classify(cmd.Context(), image)
		if err != nil {
			return fmt.Errorf("classification failed: %w", err)
		}

		estimator := estimate.New(logg)

		fmt.Printf("Detected %d product(s):\n", len(detections))
		for _, det := range detections {
			if det.Product == "" {
				continue
			}
			days := estimator.Days(det.Product)
			if det.Expiration != nil {
				days = int(*det.Expiration)
			}
			fmt.Printf("  %-30s x%-4.0f expires in ~%d days\n", det.Product, det.Quantity, days)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(analyzeCmd)
}
