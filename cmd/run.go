package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scanpang/data-pipeline/internal/config"
	"github.com/scanpang/data-pipeline/internal/db"
	"github.com/scanpang/data-pipeline/internal/geocode"
	"github.com/scanpang/data-pipeline/internal/loader"
	"github.com/scanpang/data-pipeline/internal/pipeline"
	"github.com/scanpang/data-pipeline/pkg/google"
	"github.com/scanpang/data-pipeline/pkg/ledger"
	"github.com/scanpang/data-pipeline/pkg/naver"
)

var runStage string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Collect, reconcile and load one area",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		stage, err := pipeline.ParseStage(runStage)
		if err != nil {
			return err
		}
		if err := stage.Validate(); err != nil {
			return err
		}

		mode := "all"
		if stage == pipeline.StageCollect {
			mode = "collect"
		}
		if err := cfg.Validate(mode); err != nil {
			return err
		}

		p, err := buildPipeline(cfg, stage)
		if err != nil {
			return err
		}

		report, err := p.Run(ctx, stage)
		if report != nil {
			printReport(os.Stdout, report)
		}
		if err != nil {
			return eris.Wrap(err, "run")
		}
		return nil
	},
}

// buildPipeline wires the provider clients that have credentials. A missing
// key disables that collector; a missing database disables the load.
func buildPipeline(cfg *config.Config, stage pipeline.Stage) (*pipeline.Pipeline, error) {
	log := zap.L()

	var registry ledger.Client
	if cfg.Registry.ServiceKey != "" {
		opts := []ledger.Option{
			ledger.WithArea(cfg.Registry.SigunguCd, cfg.Registry.BjdongCd),
			ledger.WithRowsPerPage(cfg.Registry.RowsPerPage),
		}
		if cfg.Registry.BaseURL != "" {
			opts = append(opts, ledger.WithBaseURL(cfg.Registry.BaseURL))
		}
		registry = ledger.NewClient(cfg.Registry.ServiceKey, opts...)
	} else {
		log.Warn("registry service key not set, skipping registry collection")
	}

	var (
		naverClient naver.Client
		geocoder    pipeline.Geocoder
	)
	if cfg.Naver.ClientID != "" && cfg.Naver.ClientSecret != "" {
		var opts []naver.Option
		if cfg.Naver.BaseURL != "" {
			opts = append(opts, naver.WithBaseURL(cfg.Naver.BaseURL))
		}
		naverClient = naver.NewClient(cfg.Naver.ClientID, cfg.Naver.ClientSecret, opts...)
		geocoder = geocode.NewResolver(geocode.NewNaverProvider(naverClient), cfg.Geocode.Delay())
	} else {
		log.Warn("naver credentials not set, skipping naver collection and geocoding")
	}

	var googleClient google.Client
	if cfg.Google.APIKey != "" {
		var opts []google.Option
		if cfg.Google.BaseURL != "" {
			opts = append(opts, google.WithBaseURL(cfg.Google.BaseURL))
		}
		googleClient = google.NewClient(cfg.Google.APIKey, opts...)
	} else {
		log.Warn("google api key not set, skipping google collection")
	}

	var ld pipeline.Loader
	if stage != pipeline.StageCollect {
		connString, err := cfg.Store.ConnString()
		if err != nil {
			return nil, err
		}
		ld = loader.NewWriter(func(ctx context.Context) (db.Pool, error) {
			return db.Connect(ctx, connString)
		})
	}

	return pipeline.New(cfg, registry, naverClient, googleClient, geocoder, ld), nil
}

func printReport(w io.Writer, r *pipeline.Report) {
	fmt.Fprintf(w, "=== Pipeline Report (stage %s) ===\n", r.Stage)
	for _, ph := range r.Phases {
		line := fmt.Sprintf("  %-10s %-9s %6dms", ph.Name, ph.Status, ph.Duration)
		if ph.Error != "" {
			line += "  " + ph.Error
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Registry records:   %d\n", len(r.RawBuildings))
	fmt.Fprintf(w, "Naver places:       %d\n", len(r.NaverPlaces))
	fmt.Fprintf(w, "Google places:      %d\n", len(r.GooglePlaces))

	if r.Reconciled != nil {
		fmt.Fprintf(w, "Buildings:          %d\n", len(r.Reconciled.Buildings))
		fmt.Fprintf(w, "Tenants:            %d (matched %d, unmatched %d)\n",
			len(r.Reconciled.Tenants), r.Reconciled.Stats.Matched, r.Reconciled.Stats.Unmatched)
	}

	if r.Load != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Rows inserted:")
		tables := make([]string, 0, len(r.Load.Tables))
		for t := range r.Load.Tables {
			tables = append(tables, t)
		}
		sort.Strings(tables)
		for _, t := range tables {
			tr := r.Load.Tables[t]
			fmt.Fprintf(w, "  %-16s %d (failed %d, skipped %d)\n", t, tr.Inserted, tr.Failed, tr.Skipped)
		}
	}
	fmt.Fprintf(w, "\nElapsed: %s\n", r.Duration)
}

func init() {
	runCmd.Flags().StringVar(&runStage, "stage", string(pipeline.StageAll), "how far to run: all, collect, process or load")
	rootCmd.AddCommand(runCmd)
}
