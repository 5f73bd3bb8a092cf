package cmd

import (
	"fmt"

	"pantry-tracker/core/config"
	"pantry-tracker/core/database"
	"pantry-tracker/core/logger"
	"pantry-tracker/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// itemColumns are the columns the service expects on the items table.
var itemColumns = []string{
	"id", "name", "category", "quantity", "unit",
	"expiration_date", "added_on", "source", "image_file",
}

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify storage and database are ready",
	Long:  `Checks that the photo bucket exists and that the items table carries the expected columns.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		var problems int

		exists, err := store.BucketExists(ctx, cfg.Storage.Bucket)
		if err != nil {
			return fmt.Errorf("bucket check failed: %w", err)
		}
		if exists {
			logg.Info("Bucket is present", zap.String("bucket", cfg.Storage.Bucket))
		} else {
			logg.Warn("Bucket is missing", zap.String("bucket", cfg.Storage.Bucket))
			problems++
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}

		missing, err := database.MissingColumns(db, "items", itemColumns)
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		if len(missing) == 0 {
			logg.Info("Items table matches expected schema")
		} else {
			logg.Warn("Items table is missing columns", zap.Strings("columns", missing))
			problems++
		}

		if problems > 0 {
			return fmt.Errorf("verification found %d problem(s)", problems)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(verifyCmd)
}
