package resolver

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MrSnakeDoc/wander/internal/cache"
	"github.com/MrSnakeDoc/wander/internal/domain"
)

// PopularTransferLimit is how many airports are offered before the user types.
const PopularTransferLimit = 15

// ResolveTransfers searches pickup and drop-off locations: airports,
// landmarks and cities, each scored with its own table.
func (r *Resolver) ResolveTransfers(ctx context.Context, query string) Result {
	q := strings.TrimSpace(query)
	ds := r.gazetteer.Dataset()

	if utf8.RuneCountInString(q) < domain.MinQueryLength {
		airports := ds.Airports
		if len(airports) > PopularTransferLimit {
			airports = airports[:PopularTransferLimit]
		}
		data := append([]domain.Suggestion{}, airports...)
		return Result{Response: Response{
			Success: true,
			Data:    data,
			Meta:    Meta{Count: len(data), Source: SourcePopular},
		}}
	}

	key := cache.MakeKey(NamespaceTransfers, map[string]string{"query": strings.ToLower(q)})
	if resp, ok := r.readCache(ctx, NamespaceTransfers, key); ok {
		return Result{Response: resp, CacheHit: true}
	}

	start := time.Now()
	data := domain.Suggestions(domain.RankSources(q, domain.TransferLimit,
		domain.Source{Entries: ds.Airports, Table: domain.AirportTable},
		domain.Source{Entries: ds.Landmarks, Table: domain.LandmarkTable},
		domain.Source{Entries: ds.Cities, Table: domain.TransferCityTable},
	))

	resp := Response{
		Success: true,
		Data:    data,
		Meta:    Meta{Count: len(data), Query: q, Source: SourceLocal},
	}
	r.writeCache(ctx, key, resp, r.opts.TransferTTL)
	r.metrics.ObserveResolve("transfers", time.Since(start))

	return Result{Response: resp}
}
