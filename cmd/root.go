package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scanpang/data-pipeline/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "scanpang-pipeline",
	Short: "Building and tenant ETL for ScanPang",
	Long:  "Collects registry buildings and Naver/Google places for one area, reconciles them into buildings with tenants, and loads the result into Postgres.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
