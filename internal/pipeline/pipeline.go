// Package pipeline sequences collection, reconciliation, geocoding and load
// for one run.
package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/scanpang/data-pipeline/internal/collect"
	"github.com/scanpang/data-pipeline/internal/config"
	"github.com/scanpang/data-pipeline/internal/geocode"
	"github.com/scanpang/data-pipeline/internal/loader"
	"github.com/scanpang/data-pipeline/internal/model"
	"github.com/scanpang/data-pipeline/internal/reconcile"
	"github.com/scanpang/data-pipeline/pkg/google"
	"github.com/scanpang/data-pipeline/pkg/ledger"
	"github.com/scanpang/data-pipeline/pkg/naver"
)

// Geocoder fills in missing coordinates in place.
type Geocoder interface {
	Buildings(ctx context.Context, buildings []model.Building) (geocode.Stats, error)
	Tenants(ctx context.Context, tenants []model.Tenant) (geocode.Stats, error)
}

// Loader persists the reconciled model.
type Loader interface {
	Load(ctx context.Context, buildings []model.Building, tenants []model.Tenant) (*loader.Result, error)
}

// Pipeline runs collect, process and load for one area. Any provider client
// may be nil, in which case its collection phase is skipped.
type Pipeline struct {
	cfg      *config.Config
	registry ledger.Client
	naver    naver.Client
	google   google.Client
	geocoder Geocoder
	loader   Loader
}

// New creates a new Pipeline with all dependencies.
func New(
	cfg *config.Config,
	registry ledger.Client,
	naverClient naver.Client,
	googleClient google.Client,
	geocoder Geocoder,
	ld Loader,
) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		registry: registry,
		naver:    naverClient,
		google:   googleClient,
		geocoder: geocoder,
		loader:   ld,
	}
}

// Report summarizes a run.
type Report struct {
	Stage        Stage               `json:"stage"`
	Phases       []model.PhaseResult `json:"phases"`
	RawBuildings []model.RawBuilding `json:"-"`
	NaverPlaces  []model.RawPlace    `json:"-"`
	GooglePlaces []model.RawPlace    `json:"-"`
	Reconciled   *reconcile.Result   `json:"-"`
	Load         *loader.Result      `json:"load,omitempty"`
	Duration     time.Duration       `json:"duration"`
}

// Phase returns the named phase result.
func (r *Report) Phase(name string) (model.PhaseResult, bool) {
	for _, p := range r.Phases {
		if p.Name == name {
			return p, true
		}
	}
	return model.PhaseResult{}, false
}

// Phase names.
const (
	PhaseRegistry  = "registry"
	PhaseNaver     = "naver"
	PhaseGoogle    = "google"
	PhaseReconcile = "reconcile"
	PhaseGeocode   = "geocode"
	PhaseLoad      = "load"
)

// Run executes the pipeline up to and including stage. Phase failures inside
// collection and processing are recorded and the run continues with what it
// has; context cancellation and a failed load are returned as errors.
func (p *Pipeline) Run(ctx context.Context, stage Stage) (*Report, error) {
	if err := stage.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	log := zap.L().With(zap.String("stage", string(stage)))
	log.Info("pipeline: starting")

	report := &Report{Stage: stage}
	defer func() {
		report.Duration = time.Since(start)
		log.Info("pipeline: finished", zap.Duration("elapsed", report.Duration))
	}()

	track := func(name string, fn func() (map[string]any, error)) error {
		began := time.Now()
		meta, err := fn()
		pr := model.PhaseResult{
			Name:     name,
			Status:   model.PhaseStatusComplete,
			Duration: time.Since(began).Milliseconds(),
			Metadata: meta,
		}
		if err != nil {
			pr.Status = model.PhaseStatusFailed
			pr.Error = err.Error()
			log.Error("pipeline: phase failed", zap.String("phase", name), zap.Int64("duration_ms", pr.Duration), zap.Error(err))
		} else {
			log.Info("pipeline: phase complete", zap.String("phase", name), zap.Int64("duration_ms", pr.Duration))
		}
		report.Phases = append(report.Phases, pr)
		return err
	}
	skip := func(name, reason string) {
		log.Warn("pipeline: phase skipped", zap.String("phase", name), zap.String("reason", reason))
		report.Phases = append(report.Phases, model.PhaseResult{
			Name:     name,
			Status:   model.PhaseStatusSkipped,
			Metadata: map[string]any{"reason": reason},
		})
	}

	// ===== Collect =====
	if err := p.collect(ctx, report, track, skip); err != nil {
		return report, err
	}
	if stage == StageCollect {
		return report, nil
	}

	// ===== Process =====
	_ = track(PhaseReconcile, func() (map[string]any, error) {
		report.Reconciled = reconcile.Reconcile(report.RawBuildings, report.NaverPlaces, report.GooglePlaces)
		return map[string]any{
			"buildings": len(report.Reconciled.Buildings),
			"tenants":   len(report.Reconciled.Tenants),
			"matched":   report.Reconciled.Stats.Matched,
			"unmatched": report.Reconciled.Stats.Unmatched,
		}, nil
	})

	if p.geocoder == nil || !p.cfg.Geocode.Enabled {
		skip(PhaseGeocode, "disabled or no naver credentials")
	} else {
		_ = track(PhaseGeocode, func() (map[string]any, error) {
			bs, err := p.geocoder.Buildings(ctx, report.Reconciled.Buildings)
			if err != nil {
				return nil, err
			}
			ts, err := p.geocoder.Tenants(ctx, report.Reconciled.Tenants)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"buildings_resolved": bs.Resolved,
				"buildings_failed":   bs.Failed,
				"tenants_resolved":   ts.Resolved,
				"tenants_failed":     ts.Failed,
			}, nil
		})
		if ctx.Err() != nil {
			return report, eris.Wrap(ctx.Err(), "pipeline: geocode")
		}
	}

	// ===== Load =====
	if p.loader == nil {
		skip(PhaseLoad, "no database configured")
		return report, nil
	}
	err := track(PhaseLoad, func() (map[string]any, error) {
		res, err := p.loader.Load(ctx, report.Reconciled.Buildings, report.Reconciled.Tenants)
		if err != nil {
			return nil, err
		}
		report.Load = res
		meta := make(map[string]any, len(res.Tables))
		for table, tr := range res.Tables {
			meta[table] = tr.Inserted
		}
		return meta, nil
	})
	if err != nil {
		return report, eris.Wrap(err, "pipeline: load")
	}
	return report, nil
}

type trackFunc func(name string, fn func() (map[string]any, error)) error

func (p *Pipeline) collect(ctx context.Context, report *Report, track trackFunc, skip func(name, reason string)) error {
	if p.registry == nil {
		skip(PhaseRegistry, "no registry service key")
	} else {
		_ = track(PhaseRegistry, func() (map[string]any, error) {
			raw, err := collect.Buildings(ctx, p.registry, collect.BuildingsOptions{
				MaxPages:  p.cfg.Registry.MaxPages,
				PageDelay: p.cfg.Registry.PageDelay(),
			})
			report.RawBuildings = raw
			return map[string]any{"records": len(raw)}, err
		})
		if ctx.Err() != nil {
			return eris.Wrap(ctx.Err(), "pipeline: registry")
		}
	}

	if p.naver == nil {
		skip(PhaseNaver, "no naver credentials")
	} else {
		names := collect.BuildingNames(report.RawBuildings, p.cfg.Naver.MaxBuildings)
		_ = track(PhaseNaver, func() (map[string]any, error) {
			places, err := collect.Naver(ctx, p.naver, names, collect.NaverOptions{
				Categories:  p.cfg.Naver.Categories,
				BaseQueries: p.cfg.Area.BaseQueries,
				Display:     p.cfg.Naver.Display,
				QueryDelay:  p.cfg.Naver.QueryDelay(),
			})
			report.NaverPlaces = places
			return map[string]any{"places": len(places), "buildings_searched": len(names)}, err
		})
		if ctx.Err() != nil {
			return eris.Wrap(ctx.Err(), "pipeline: naver")
		}
	}

	if p.google == nil {
		skip(PhaseGoogle, "no google api key")
	} else {
		_ = track(PhaseGoogle, func() (map[string]any, error) {
			places, err := collect.Google(ctx, p.google, collect.GoogleOptions{
				Center:     model.Coordinates{Lat: p.cfg.Area.CenterLat, Lng: p.cfg.Area.CenterLng},
				RadiusM:    p.cfg.Google.RadiusM,
				Types:      p.cfg.Google.Types,
				MaxPages:   p.cfg.Google.MaxPages,
				TokenDelay: p.cfg.Google.TokenDelay(),
				TypeDelay:  p.cfg.Google.TypeDelay(),
			})
			report.GooglePlaces = places
			return map[string]any{"places": len(places)}, err
		})
		if ctx.Err() != nil {
			return eris.Wrap(ctx.Err(), "pipeline: google")
		}
	}

	zap.L().Info("pipeline: collection summary",
		zap.Int("registry_records", len(report.RawBuildings)),
		zap.Int("naver_places", len(report.NaverPlaces)),
		zap.Int("google_places", len(report.GooglePlaces)),
	)
	return nil
}
