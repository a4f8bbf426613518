package reconcile

import (
	"go.uber.org/zap"

	"github.com/scanpang/data-pipeline/internal/model"
)

// Result is the reconciled building/tenant model for one run.
type Result struct {
	Buildings []model.Building
	Tenants   []model.Tenant
	Stats     MatchStats
}

// Building returns the building with the given ID.
func (r *Result) Building(id model.BuildingID) (*model.Building, bool) {
	for i := range r.Buildings {
		if r.Buildings[i].ID == id {
			return &r.Buildings[i], true
		}
	}
	return nil, false
}

// Reconcile normalizes the registry buildings, merges the Naver and Google
// places (Naver first), and matches tenants to buildings.
func Reconcile(raw []model.RawBuilding, naver, google []model.RawPlace) *Result {
	log := zap.L().With(zap.String("component", "reconcile"))

	buildings := NormalizeBuildings(raw)
	log.Info("buildings normalized",
		zap.Int("raw", len(raw)),
		zap.Int("buildings", len(buildings)),
	)

	tenants := MergePlaces(naver, google)
	log.Info("places merged",
		zap.Int("naver", len(naver)),
		zap.Int("google", len(google)),
		zap.Int("tenants", len(tenants)),
	)

	st := Match(buildings, tenants)
	log.Info("tenants matched to buildings",
		zap.Int("matched", st.Matched),
		zap.Int("total", len(tenants)),
	)

	return &Result{Buildings: buildings, Tenants: tenants, Stats: st}
}
