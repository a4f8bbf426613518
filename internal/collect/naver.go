package collect

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/scanpang/data-pipeline/internal/model"
	"github.com/scanpang/data-pipeline/pkg/naver"
)

// NaverOptions configures local search collection.
type NaverOptions struct {
	Categories  []string
	BaseQueries []string
	Display     int
	QueryDelay  time.Duration
}

type naverQuery struct {
	text     string
	category string
	context  string
}

var highlight = strings.NewReplacer("<b>", "", "</b>", "")

// Naver searches "<building> <category>" for every building name, then
// "<area> <category>" for every base query. Rejected credentials end the
// collection. Any other failed query is logged and
// skipped. Results are deduplicated on (title, road address).
func Naver(ctx context.Context, client naver.Client, buildingNames []string, opts NaverOptions) ([]model.RawPlace, error) {
	log := zap.L().With(zap.String("collector", "naver"))
	pace := newPacer(opts.QueryDelay)

	queries := make([]naverQuery, 0, (len(buildingNames)+len(opts.BaseQueries))*len(opts.Categories))
	for _, prefixes := range [][]string{buildingNames, opts.BaseQueries} {
		for _, p := range prefixes {
			for _, c := range opts.Categories {
				queries = append(queries, naverQuery{text: p + " " + c, category: c, context: p})
			}
		}
	}

	type key struct{ title, road string }
	seen := make(map[key]struct{})
	var (
		out    []model.RawPlace
		failed int
	)
queries:
	for _, q := range queries {
		if err := pace.Wait(ctx); err != nil {
			return out, err
		}

		resp, err := client.SearchLocal(ctx, q.text, opts.Display, 1)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			failed++
			if errors.Is(err, naver.ErrUnauthorized) {
				log.Error("naver credentials rejected, stopping collection", zap.Error(err))
				break queries
			}
			log.Warn("naver query failed", zap.String("query", q.text), zap.Error(err))
			continue
		}

		for _, it := range resp.Items {
			p := toNaverPlace(it, q)
			k := key{p.Title, p.Address}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, p)
		}
	}

	log.Info("naver collection finished",
		zap.Int("queries", len(queries)),
		zap.Int("failed_queries", failed),
		zap.Int("places", len(out)),
	)
	return out, nil
}

func toNaverPlace(it naver.Item, q naverQuery) model.RawPlace {
	return model.RawPlace{
		Title:         highlight.Replace(it.Title),
		Category:      q.category,
		ProviderType:  it.Category,
		Address:       it.RoadAddress,
		JibunAddress:  it.Address,
		MapX:          it.MapX,
		MapY:          it.MapY,
		Link:          it.Link,
		Telephone:     it.Telephone,
		SearchContext: q.context,
		Source:        model.SourceNaver,
	}
}
