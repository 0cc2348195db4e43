// Package resolver turns a free-text query into ranked destination
// suggestions by combining the local gazetteer with the places provider.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/MrSnakeDoc/wander/internal/cache"
	"github.com/MrSnakeDoc/wander/internal/domain"
	"github.com/MrSnakeDoc/wander/internal/gazetteer"
	"github.com/MrSnakeDoc/wander/internal/logger"
	"github.com/MrSnakeDoc/wander/internal/metrics"
	"github.com/MrSnakeDoc/wander/internal/provider"
)

// Cache namespaces. Bump the version when the payload shape changes.
const (
	NamespaceSuggestions = "suggestions:v2"
	NamespacePopular     = "suggestions:popular:v1"
	NamespaceTransfers   = "transfers:locations:v3"
)

// Values of Meta.Source.
const (
	SourcePopular = "popular"
	SourceMerged  = "merged"
	SourceLocal   = "local"
)

// ErrQueryTooShort is returned when not even a local search can run.
var ErrQueryTooShort = errors.New("query too short")

// Searcher is the external places provider.
type Searcher interface {
	SearchExternal(ctx context.Context, query string) provider.Outcome
}

// Gazetteer exposes the current local snapshot.
type Gazetteer interface {
	Dataset() *gazetteer.Dataset
}

type Options struct {
	SuggestionTTL time.Duration
	PopularTTL    time.Duration
	TransferTTL   time.Duration
}

// Request is a suggestion query. Popular forces the curated list.
type Request struct {
	Query   string
	Popular bool
}

// Sources counts results per origin before the merge.
type Sources struct {
	External int `json:"external"`
	Local    int `json:"local"`
}

type Meta struct {
	Count   int            `json:"count"`
	Query   string         `json:"query,omitempty"`
	Intent  *domain.Intent `json:"intent,omitempty"`
	Sources *Sources       `json:"sources,omitempty"`
	Source  string         `json:"source,omitempty"`
}

// Response is the payload served to clients and stored in the cache.
type Response struct {
	Success bool                `json:"success"`
	Data    []domain.Suggestion `json:"data"`
	Meta    Meta                `json:"meta"`
	Error   string              `json:"error,omitempty"`
}

// Result wraps a response with how it was produced.
type Result struct {
	Response Response
	CacheHit bool
}

type Resolver struct {
	gazetteer Gazetteer
	provider  Searcher
	cache     cache.Cache
	metrics   *metrics.Metrics
	logger    logger.Logger
	opts      Options
	group     singleflight.Group
}

// New builds a resolver. c may be nil (no caching) and m may be nil.
func New(gaz Gazetteer, p Searcher, c cache.Cache, m *metrics.Metrics, log logger.Logger, opts Options) *Resolver {
	if c == nil {
		c = cache.Noop{}
	}
	return &Resolver{
		gazetteer: gaz,
		provider:  p,
		cache:     c,
		metrics:   m,
		logger:    log,
		opts:      opts,
	}
}

// Resolve answers a suggestion request. Short or absent queries get the
// popular list. Provider failures degrade to local results; an error is
// returned only when no fallback could produce a response.
func (r *Resolver) Resolve(ctx context.Context, req Request) (Result, error) {
	q := strings.TrimSpace(req.Query)
	if req.Popular || utf8.RuneCountInString(q) < domain.MinQueryLength {
		return r.popular(ctx), nil
	}

	key := cache.MakeKey(NamespaceSuggestions, map[string]string{"query": strings.ToLower(q)})
	if resp, ok := r.readCache(ctx, NamespaceSuggestions, key); ok {
		return Result{Response: resp, CacheHit: true}, nil
	}

	// identical concurrent queries share one resolution; it must outlive the
	// first caller's request
	v, err, _ := r.group.Do(key, func() (any, error) {
		return r.resolveFull(context.WithoutCancel(ctx), q, key)
	})
	if err == nil {
		return Result{Response: v.(Response)}, nil
	}

	r.logger.Error("suggestion resolution failed, falling back to local search",
		logger.String("query", q), logger.Error(err))

	resp, ferr := r.localOnly(q)
	if ferr != nil {
		return Result{}, fmt.Errorf("resolve %q: %w", q, errors.Join(err, ferr))
	}
	return Result{Response: resp}, nil
}

func (r *Resolver) resolveFull(ctx context.Context, q, key string) (resp Response, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("resolver panic: %v", rec)
		}
	}()
	start := time.Now()

	intent := domain.DetectIntent(q)

	var (
		local   []domain.Suggestion
		outcome provider.Outcome
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer recoverInto(&err, "local search")
		local = r.searchLocal(intent.CleanQuery)
		return nil
	})
	g.Go(func() (err error) {
		defer recoverInto(&err, "provider search")
		outcome = r.provider.SearchExternal(gctx, q)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Response{}, err
	}

	providerFailed := r.recordProvider(q, outcome)
	if outcome.Err == nil {
		intent = outcome.Intent
	}

	merged := domain.Merge(outcome.Results, local, intent)
	resp = Response{
		Success: true,
		Data:    merged,
		Meta: Meta{
			Count:   len(merged),
			Query:   q,
			Intent:  &intent,
			Sources: &Sources{External: len(outcome.Results), Local: len(local)},
			Source:  SourceMerged,
		},
	}

	// a provider outage should not pin local-only results for a whole TTL
	if !providerFailed {
		r.writeCache(ctx, key, resp, r.opts.SuggestionTTL)
	}

	r.metrics.ObserveResolve(SourceMerged, time.Since(start))
	return resp, nil
}

// recordProvider logs and counts the provider outcome; it reports whether the
// provider failed (a disabled provider is not a failure).
func (r *Resolver) recordProvider(q string, out provider.Outcome) bool {
	switch {
	case out.Err == nil:
		r.metrics.ProviderRequest("ok")
		return false
	case errors.Is(out.Err, provider.ErrDisabled):
		r.metrics.ProviderRequest("disabled")
		return false
	default:
		r.metrics.ProviderRequest("error")
		r.logger.Warn("places provider failed, using local results only",
			logger.String("query", q), logger.Error(out.Err))
		return true
	}
}

// localOnly is the last-resort answer when the full pipeline failed.
func (r *Resolver) localOnly(q string) (resp Response, err error) {
	defer recoverInto(&err, "local fallback")
	start := time.Now()

	intent := domain.DetectIntent(q)
	if utf8.RuneCountInString(domain.Normalize(intent.CleanQuery)) < domain.MinQueryLength {
		return Response{}, ErrQueryTooShort
	}

	local := r.searchLocal(intent.CleanQuery)
	data := domain.Merge(nil, local, intent)

	r.metrics.ObserveResolve(SourceLocal, time.Since(start))
	return Response{
		Success: true,
		Data:    data,
		Meta: Meta{
			Count:   len(data),
			Query:   q,
			Intent:  &intent,
			Sources: &Sources{Local: len(local)},
			Source:  SourceLocal,
		},
	}, nil
}

func (r *Resolver) popular(ctx context.Context) Result {
	key := cache.MakeKey(NamespacePopular, nil)
	if resp, ok := r.readCache(ctx, NamespacePopular, key); ok {
		return Result{Response: resp, CacheHit: true}
	}

	data := append([]domain.Suggestion{}, r.gazetteer.Dataset().Popular...)
	resp := Response{
		Success: true,
		Data:    data,
		Meta:    Meta{Count: len(data), Source: SourcePopular},
	}
	r.writeCache(ctx, key, resp, r.opts.PopularTTL)
	return Result{Response: resp}
}

// searchLocal runs the city and district matchers over the current snapshot.
func (r *Resolver) searchLocal(query string) []domain.Suggestion {
	ds := r.gazetteer.Dataset()
	cities := domain.Suggestions(domain.Rank(query, ds.Cities, domain.CityTable))
	districts := domain.Suggestions(domain.Rank(query, ds.Districts, domain.DistrictTable))
	return append(cities, districts...)
}

// SearchCities ranks the city dataset only.
func (r *Resolver) SearchCities(query string) []domain.Suggestion {
	return domain.Suggestions(domain.Rank(query, r.gazetteer.Dataset().Cities, domain.CityTable))
}

// SearchDistricts ranks the district dataset only.
func (r *Resolver) SearchDistricts(query string) []domain.Suggestion {
	return domain.Suggestions(domain.Rank(query, r.gazetteer.Dataset().Districts, domain.DistrictTable))
}

func (r *Resolver) readCache(ctx context.Context, ns, key string) (Response, bool) {
	var resp Response
	l := r.cache.Get(ctx, key, &resp)
	r.metrics.CacheLookup(ns, l.Result())
	if l.Err != nil {
		r.logger.Warn("cache read failed, treating as miss",
			logger.String("key", key), logger.Error(l.Err))
		return Response{}, false
	}
	if !l.Hit {
		return Response{}, false
	}
	if resp.Data == nil {
		resp.Data = []domain.Suggestion{}
	}
	return resp, true
}

func (r *Resolver) writeCache(ctx context.Context, key string, resp Response, ttl time.Duration) {
	if err := r.cache.Set(ctx, key, resp, ttl); err != nil {
		r.logger.Warn("cache write failed",
			logger.String("key", key), logger.Error(err))
	}
}

func recoverInto(err *error, where string) {
	if rec := recover(); rec != nil {
		*err = fmt.Errorf("%s panic: %v", where, rec)
	}
}
