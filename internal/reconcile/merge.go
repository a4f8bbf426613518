package reconcile

import (
	"github.com/scanpang/data-pipeline/internal/category"
	"github.com/scanpang/data-pipeline/internal/geo"
	"github.com/scanpang/data-pipeline/internal/model"
	"github.com/scanpang/data-pipeline/internal/textclean"
)

// ToTenant converts a provider place into the common tenant shape. The
// tenant address is the road or vicinity address only; a place without one
// keeps an empty address.
func ToTenant(p model.RawPlace) model.Tenant {
	canonical := category.Normalize(p.Category)

	t := model.Tenant{
		Title:    textclean.Clean(p.Title),
		Category: canonical,
		Icon:     category.Icon(canonical),
		Address:  textclean.Clean(p.Address),
		Source:   p.Source,
		PlaceID:  p.PlaceID,
		Rating:   p.Rating,
	}
	switch {
	case p.Coords != nil:
		c := *p.Coords
		t.Coords = &c
	case p.MapX != "" || p.MapY != "":
		if lat, lng, ok := geo.ParsePlanar(p.MapX, p.MapY); ok {
			t.Coords = &model.Coordinates{Lat: lat, Lng: lng}
		}
	}
	return t
}

type tenantKey struct{ title, address string }

// MergePlaces concatenates the place sets in argument order and removes
// entries whose folded title and address repeat an earlier entry. The first
// occurrence wins, so earlier sets take precedence on metadata; a retained
// entry without coordinates picks them up from a later duplicate.
func MergePlaces(sets ...[]model.RawPlace) []model.Tenant {
	total := 0
	for _, s := range sets {
		total += len(s)
	}
	if total == 0 {
		return nil
	}

	index := make(map[tenantKey]int, total)
	out := make([]model.Tenant, 0, total)
	for _, set := range sets {
		for _, p := range set {
			t := ToTenant(p)
			key := tenantKey{textclean.FoldKey(t.Title), t.Address}
			if i, dup := index[key]; dup {
				if out[i].Coords == nil && t.Coords != nil {
					out[i].Coords = t.Coords
				}
				continue
			}
			index[key] = len(out)
			out = append(out, t)
		}
	}
	return out
}
