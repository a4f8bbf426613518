package collect

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/scanpang/data-pipeline/internal/model"
	"github.com/scanpang/data-pipeline/pkg/google"
)

// GoogleOptions configures nearby search collection.
type GoogleOptions struct {
	Center     model.Coordinates
	RadiusM    int
	Types      []string
	MaxPages   int
	TokenDelay time.Duration // a next_page_token is rejected until it has aged
	TypeDelay  time.Duration
}

// Korean labels for place types, used as the raw category.
var typeLabels = map[string]string{
	"restaurant":        "음식점",
	"cafe":              "카페",
	"convenience_store": "편의점",
	"pharmacy":          "약국",
	"bank":              "은행",
	"hospital":          "병원",
	"gym":               "헬스장",
	"hair_care":         "미용실",
	"parking":           "주차장",
	"store":             "상점",
}

// Google runs a nearby search per place type, following next_page_token up
// to MaxPages. A denied request ends the whole collection. Results are
// deduplicated on place_id.
func Google(ctx context.Context, client google.Client, opts GoogleOptions) ([]model.RawPlace, error) {
	log := zap.L().With(zap.String("collector", "google"))
	pace := newPacer(opts.TypeDelay)

	seen := make(map[string]struct{})
	var out []model.RawPlace

types:
	for _, typ := range opts.Types {
		if err := pace.Wait(ctx); err != nil {
			return out, err
		}

		req := google.NearbySearchRequest{
			Lat:      opts.Center.Lat,
			Lng:      opts.Center.Lng,
			RadiusM:  opts.RadiusM,
			Type:     typ,
			Language: "ko",
		}
		for page := 1; page <= opts.MaxPages; page++ {
			if req.PageToken != "" {
				if err := sleep(ctx, opts.TokenDelay); err != nil {
					return out, err
				}
			}

			resp, err := client.NearbySearch(ctx, req)
			switch {
			case err == nil:
			case ctx.Err() != nil:
				return out, ctx.Err()
			case errors.Is(err, google.ErrRequestDenied):
				log.Error("google request denied, stopping collection", zap.Error(err))
				break types
			default:
				log.Warn("google page failed", zap.String("type", typ), zap.Int("page", page), zap.Error(err))
				continue types
			}

			for _, p := range resp.Results {
				if p.PlaceID != "" {
					if _, dup := seen[p.PlaceID]; dup {
						continue
					}
					seen[p.PlaceID] = struct{}{}
				}
				out = append(out, toGooglePlace(p, typ))
			}
			log.Debug("google page collected", zap.String("type", typ), zap.Int("page", page), zap.Int("results", len(resp.Results)))

			if resp.NextPageToken == "" {
				break
			}
			req.PageToken = resp.NextPageToken
		}
	}

	log.Info("google collection finished", zap.Int("places", len(out)))
	return out, nil
}

func toGooglePlace(p google.Place, typ string) model.RawPlace {
	label, ok := typeLabels[typ]
	if !ok {
		label = typ
	}
	rp := model.RawPlace{
		Title:        p.Name,
		Category:     label,
		ProviderType: typ,
		Address:      p.Vicinity,
		PlaceID:      p.PlaceID,
		Status:       p.BusinessStatus,
		Source:       model.SourceGoogle,
	}
	if loc := p.Geometry.Location; loc.Lat != 0 || loc.Lng != 0 {
		rp.Coords = &model.Coordinates{Lat: loc.Lat, Lng: loc.Lng}
	}
	if p.Rating != nil {
		rp.Rating = *p.Rating
	}
	if p.UserRatingsTotal != nil {
		rp.RatingsTotal = *p.UserRatingsTotal
	}
	if p.PriceLevel != nil {
		rp.PriceLevel = *p.PriceLevel
	}
	return rp
}
