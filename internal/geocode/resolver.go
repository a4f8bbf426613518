// Package geocode fills in coordinates for buildings and tenants that arrived
// without them, by keyword search against Naver local listings.
package geocode

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/scanpang/data-pipeline/internal/geo"
	"github.com/scanpang/data-pipeline/internal/model"
	"github.com/scanpang/data-pipeline/pkg/naver"
)

// ErrRejected is returned by a Provider whose credentials were refused.
// The Resolver makes no further lookups once it sees it.
var ErrRejected = errors.New("geocode: provider rejected credentials")

// Provider resolves a free-text query to a point. A nil result with a nil
// error means no match.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, query string) (*model.Coordinates, error)
}

// NaverProvider takes the first local search hit and converts its planar
// mapx/mapy with the KATEC approximation.
type NaverProvider struct {
	client naver.Client
}

// NewNaverProvider creates a NaverProvider.
func NewNaverProvider(client naver.Client) *NaverProvider {
	return &NaverProvider{client: client}
}

// Name implements Provider.
func (p *NaverProvider) Name() string { return "naver" }

// Lookup implements Provider.
func (p *NaverProvider) Lookup(ctx context.Context, query string) (*model.Coordinates, error) {
	resp, err := p.client.SearchLocal(ctx, query, 1, 1)
	if errors.Is(err, naver.ErrUnauthorized) {
		return nil, eris.Wrap(ErrRejected, err.Error())
	}
	if err != nil {
		return nil, eris.Wrap(err, "geocode: naver lookup")
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}
	lat, lng, ok := geo.ParsePlanar(resp.Items[0].MapX, resp.Items[0].MapY)
	if !ok {
		return nil, nil
	}
	return &model.Coordinates{Lat: lat, Lng: lng}, nil
}

// Stats counts one resolution pass. Records that already had coordinates
// are not counted.
type Stats struct {
	Resolved int
	Failed   int
}

// Resolver looks up missing coordinates with a fixed delay between lookups.
// Repeated queries are answered from memory, misses included.
type Resolver struct {
	provider Provider
	limiter  *rate.Limiter
	memo     map[string]*model.Coordinates
	rejected bool
}

// NewResolver creates a Resolver.
func NewResolver(provider Provider, delay time.Duration) *Resolver {
	lim := rate.NewLimiter(rate.Inf, 1)
	if delay > 0 {
		lim = rate.NewLimiter(rate.Every(delay), 1)
	}
	return &Resolver{
		provider: provider,
		limiter:  lim,
		memo:     make(map[string]*model.Coordinates),
	}
}

// Buildings searches "<name> <address>", then the address alone.
func (r *Resolver) Buildings(ctx context.Context, buildings []model.Building) (Stats, error) {
	var st Stats
	for i := range buildings {
		b := &buildings[i]
		if b.Coords != nil {
			continue
		}

		queries := []string{joinQuery(b.Name, b.Address)}
		if b.Address != "" && queries[0] != b.Address {
			queries = append(queries, b.Address)
		}

		c, err := r.first(ctx, queries)
		if errors.Is(err, ErrRejected) {
			break
		}
		if err != nil {
			return st, err
		}
		if c == nil {
			st.Failed++
			continue
		}
		b.Coords = c
		st.Resolved++
	}

	zap.L().Info("geocode: buildings resolved",
		zap.String("provider", r.provider.Name()),
		zap.Int("resolved", st.Resolved),
		zap.Int("failed", st.Failed),
	)
	return st, nil
}

// Tenants searches "<title> <address>" once per tenant.
func (r *Resolver) Tenants(ctx context.Context, tenants []model.Tenant) (Stats, error) {
	var st Stats
	for i := range tenants {
		t := &tenants[i]
		if t.Coords != nil {
			continue
		}

		c, err := r.first(ctx, []string{joinQuery(t.Title, t.Address)})
		if errors.Is(err, ErrRejected) {
			break
		}
		if err != nil {
			return st, err
		}
		if c == nil {
			st.Failed++
			continue
		}
		t.Coords = c
		st.Resolved++
	}

	zap.L().Info("geocode: tenants resolved",
		zap.String("provider", r.provider.Name()),
		zap.Int("resolved", st.Resolved),
		zap.Int("failed", st.Failed),
	)
	return st, nil
}

// first returns the first query that resolves. Context errors and ErrRejected
// are returned; other provider failures count as misses.
func (r *Resolver) first(ctx context.Context, queries []string) (*model.Coordinates, error) {
	if r.rejected {
		return nil, ErrRejected
	}
	for _, q := range queries {
		if q == "" {
			continue
		}
		if c, ok := r.memo[q]; ok {
			if c != nil {
				return copyCoords(c), nil
			}
			continue
		}

		if err := r.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		c, err := r.provider.Lookup(ctx, q)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if errors.Is(err, ErrRejected) {
				r.rejected = true
				zap.L().Error("geocode: provider rejected credentials, stopping lookups",
					zap.String("provider", r.provider.Name()), zap.Error(err))
				return nil, ErrRejected
			}
			zap.L().Debug("geocode: lookup failed", zap.String("query", q), zap.Error(err))
			continue
		}
		r.memo[q] = c
		if c != nil {
			return copyCoords(c), nil
		}
	}
	return nil, nil
}

// joinQuery builds "<label> <address>", collapsing to one part when the
// other is empty or the two are identical.
func joinQuery(label, address string) string {
	label, address = strings.TrimSpace(label), strings.TrimSpace(address)
	if label == address {
		return address
	}
	return strings.TrimSpace(label + " " + address)
}

func copyCoords(c *model.Coordinates) *model.Coordinates {
	cc := *c
	return &cc
}
