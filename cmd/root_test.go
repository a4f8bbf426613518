package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanpang/data-pipeline/internal/config"
	"github.com/scanpang/data-pipeline/internal/loader"
	"github.com/scanpang/data-pipeline/internal/model"
	"github.com/scanpang/data-pipeline/internal/pipeline"
	"github.com/scanpang/data-pipeline/internal/reconcile"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"run", "status"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "scanpang-pipeline", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRunCommand_StageFlag(t *testing.T) {
	flag := runCmd.Flags().Lookup("stage")
	require.NotNil(t, flag, "run command should have --stage flag")
	assert.Equal(t, "all", flag.DefValue)
}

func TestBuildPipeline_NoCredentials(t *testing.T) {
	c := &config.Config{}
	c.Store.Host = "localhost"
	c.Store.Port = "5432"
	c.Store.Name = "scanpang"
	c.Store.User = "postgres"

	p, err := buildPipeline(c, pipeline.StageAll)
	require.NoError(t, err)
	require.NotNil(t, p)
}

func TestBuildPipeline_NoStoreForCollect(t *testing.T) {
	c := &config.Config{}
	c.Naver.ClientID, c.Naver.ClientSecret = "id", "secret"
	c.Google.APIKey = "key"
	c.Registry.ServiceKey = "key"

	_, err := buildPipeline(c, pipeline.StageCollect)
	require.NoError(t, err)

	_, err = buildPipeline(c, pipeline.StageAll)
	assert.Error(t, err)
}

func TestPrintReport(t *testing.T) {
	r := &pipeline.Report{
		Stage: pipeline.StageAll,
		Phases: []model.PhaseResult{
			{Name: "registry", Status: model.PhaseStatusComplete, Duration: 12},
			{Name: "google", Status: model.PhaseStatusSkipped},
			{Name: "load", Status: model.PhaseStatusFailed, Error: "connection refused"},
		},
		RawBuildings: make([]model.RawBuilding, 3),
		Reconciled: &reconcile.Result{
			Buildings: make([]model.Building, 2),
			Tenants:   make([]model.Tenant, 5),
			Stats:     reconcile.MatchStats{Matched: 4, Unmatched: 1},
		},
		Load: &loader.Result{Tables: map[string]loader.TableResult{
			loader.TableBuildings: {Inserted: 2},
			loader.TableFloors:    {Inserted: 3, Failed: 1},
		}},
		Duration: 1500 * time.Millisecond,
	}

	var buf bytes.Buffer
	printReport(&buf, r)
	out := buf.String()

	assert.Contains(t, out, "stage all")
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, "Registry records:   3")
	assert.Contains(t, out, "Tenants:            5 (matched 4, unmatched 1)")
	assert.Regexp(t, `floors\s+3 \(failed 1, skipped 0\)`, out)
	assert.Regexp(t, `(?s)buildings\s+2 .*floors`, out)
	assert.Contains(t, out, "Elapsed: 1.5s")
}

func TestPrintCounts(t *testing.T) {
	var buf bytes.Buffer
	printCounts(&buf, map[string]int64{loader.TableBuildings: 7, loader.TableLiveFeeds: 21})
	out := buf.String()
	assert.Regexp(t, `buildings:\s+7\n`, out)
	assert.Regexp(t, `live_feeds:\s+21\n`, out)
	assert.Regexp(t, `floors:\s+0\n`, out)
}
