package collect

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/scanpang/data-pipeline/internal/model"
	"github.com/scanpang/data-pipeline/internal/textclean"
	"github.com/scanpang/data-pipeline/pkg/ledger"
)

// BuildingsOptions bounds the registry paging loop.
type BuildingsOptions struct {
	MaxPages  int
	PageDelay time.Duration
}

// Buildings pages through the register from page 1. It stops at MaxPages,
// once the accumulated count reaches the reported total, on an empty page,
// or on the first failed page.
func Buildings(ctx context.Context, client ledger.Client, opts BuildingsOptions) ([]model.RawBuilding, error) {
	log := zap.L().With(zap.String("collector", "registry"))
	pace := newPacer(opts.PageDelay)

	var out []model.RawBuilding
	for pageNo := 1; pageNo <= opts.MaxPages; pageNo++ {
		if err := pace.Wait(ctx); err != nil {
			return out, err
		}

		page, err := client.FetchPage(ctx, pageNo)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			log.Error("registry page failed", zap.Int("page", pageNo), zap.Error(err))
			break
		}
		if len(page.Items) == 0 {
			log.Info("registry page empty, stopping", zap.Int("page", pageNo))
			break
		}

		for _, item := range page.Items {
			out = append(out, toRawBuilding(item))
		}
		log.Info("registry page collected",
			zap.Int("page", pageNo),
			zap.Int("items", len(page.Items)),
			zap.Int("accumulated", len(out)),
			zap.Int("total", page.TotalCount),
		)

		if len(out) >= page.TotalCount {
			break
		}
	}

	if len(out) == 0 {
		log.Warn("no registry records collected")
	}
	return out, nil
}

func toRawBuilding(item ledger.Item) model.RawBuilding {
	return model.RawBuilding{
		Name:           item.Get("bldNm"),
		JibunAddress:   item.Get("platPlc"),
		RoadAddress:    item.Get("newPlatPlc"),
		GroundFloors:   item.Int("grndFlrCnt"),
		BasementFloors: item.Int("ugrndFlrCnt"),
		Use:            item.Get("mainPurpsCdNm"),
		ApprovalDate:   item.Get("useAprDay"),
		RegistryKey:    item.Get("mgmBldrgstPk"),
	}
}

// BuildingNames returns up to limit distinct names of buildings with at
// least one ground floor, in input order. A missing name falls back to the
// building address.
func BuildingNames(raw []model.RawBuilding, limit int) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, b := range raw {
		if len(names) >= limit {
			break
		}
		if b.GroundFloors < 1 {
			continue
		}
		name := textclean.Clean(b.Name)
		if name == "" {
			name = textclean.Clean(b.Address())
		}
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
