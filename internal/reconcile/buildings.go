// Package reconcile merges registry buildings and provider places into the
// building/tenant model and links tenants to the buildings they occupy.
package reconcile

import (
	"sort"

	"github.com/google/uuid"

	"github.com/scanpang/data-pipeline/internal/model"
	"github.com/scanpang/data-pipeline/internal/textclean"
)

// buildingNamespace seeds building IDs so the same (name, address) always
// yields the same ID across runs.
var buildingNamespace = uuid.MustParse("3d5c0f1e-8a3b-5f7e-9c2d-4b6a1e0f7c93")

// NewBuildingID returns the stable ID for a building identity.
func NewBuildingID(name, address string) model.BuildingID {
	return model.BuildingID(uuid.NewSHA1(buildingNamespace, []byte(name+"\x00"+address)))
}

// NormalizeBuildings cleans registry records and collapses duplicates.
//
// Names and addresses are cleaned, a blank name falls back to the address,
// and records are ordered by ground floors descending (stable) before
// dropping repeated (name, address) pairs, so the tallest record of each pair
// survives. Records with fewer than one ground floor are dropped.
func NormalizeBuildings(raw []model.RawBuilding) []model.Building {
	if len(raw) == 0 {
		return nil
	}

	candidates := make([]model.Building, 0, len(raw))
	for _, r := range raw {
		addr := textclean.Clean(r.Address())
		name := textclean.Clean(r.Name)
		if name == "" {
			name = addr
		}
		candidates = append(candidates, model.Building{
			Name:           name,
			Address:        addr,
			GroundFloors:   r.GroundFloors,
			BasementFloors: r.BasementFloors,
			TotalFloors:    r.TotalFloors(),
			Use:            textclean.Clean(r.Use),
			CompletionYear: r.CompletionYear(),
			RegistryKey:    r.RegistryKey,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].GroundFloors > candidates[j].GroundFloors
	})

	type identity struct{ name, address string }
	seen := make(map[identity]struct{}, len(candidates))
	out := make([]model.Building, 0, len(candidates))
	for _, b := range candidates {
		key := identity{b.Name, b.Address}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if b.GroundFloors < 1 {
			continue
		}
		b.ID = NewBuildingID(b.Name, b.Address)
		out = append(out, b)
	}
	return out
}
