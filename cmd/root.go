package cmd

import (
	"fmt"
	"os"

	"pantry-tracker/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "pantry-tracker",
	Short: "Food Inventory Tracker Service",
	Long: `Pantry Tracker keeps a household food inventory up to date.
It ingests shelf photos through a vision model and exposes a CRUD API for items.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with debug level so CLI users get readable
		// ISO8601 timestamps instead of epoch
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
