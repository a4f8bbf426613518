package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scanpang/data-pipeline/internal/db"
	"github.com/scanpang/data-pipeline/internal/loader"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show row counts for the target tables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("status"); err != nil {
			return err
		}
		connString, err := cfg.Store.ConnString()
		if err != nil {
			return err
		}

		pool, err := db.Connect(ctx, connString)
		if err != nil {
			return err
		}
		defer pool.Close()

		counts, err := loader.Counts(ctx, pool)
		if err != nil {
			return err
		}
		printCounts(os.Stdout, counts)
		return nil
	},
}

func printCounts(w io.Writer, counts map[string]int64) {
	fmt.Fprintln(w, "=== Table Status ===")
	for _, t := range loader.Tables {
		fmt.Fprintf(w, "%-16s %d\n", t+":", counts[t])
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
