package handlers

import (
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/wander/internal/domain"
	"github.com/MrSnakeDoc/wander/internal/httpserver/deps"
	"github.com/MrSnakeDoc/wander/internal/logger"
	"github.com/MrSnakeDoc/wander/internal/resolver"
)

type listMeta struct {
	Count int    `json:"count"`
	Query string `json:"query"`
}

type listResponse struct {
	Success bool                `json:"success"`
	Data    []domain.Suggestion `json:"data"`
	Meta    listMeta            `json:"meta"`
}

// Suggestions serves GET /api/suggestions?q=&popular=
func Suggestions(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		popular, _ := strconv.ParseBool(r.URL.Query().Get("popular"))

		res, err := d.Resolver.Resolve(r.Context(), resolver.Request{Query: q, Popular: popular})
		if err != nil {
			d.Logger.Error("suggestion request failed",
				logger.String("query", q), logger.Error(err))
			writeJSON(w, d, http.StatusInternalServerError, resolver.Response{
				Success: false,
				Data:    []domain.Suggestion{},
				Error:   "failed to resolve suggestions",
			})
			return
		}

		cacheHeader(w, res.CacheHit)
		writeJSON(w, d, http.StatusOK, res.Response)
	}
}

// Cities serves GET /api/cities?q= from the local gazetteer only.
func Cities(d deps.Deps) http.HandlerFunc {
	return localList(d, d.Resolver.SearchCities)
}

// Districts serves GET /api/districts?q= from the local gazetteer only.
func Districts(d deps.Deps) http.HandlerFunc {
	return localList(d, d.Resolver.SearchDistricts)
}

func localList(d deps.Deps, search func(string) []domain.Suggestion) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		data := search(q)
		writeJSON(w, d, http.StatusOK, listResponse{
			Success: true,
			Data:    data,
			Meta:    listMeta{Count: len(data), Query: q},
		})
	}
}

// TransferLocations serves GET /api/transfers/locations?q= (query= is
// accepted too).
func TransferLocations(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if q == "" {
			q = r.URL.Query().Get("query")
		}
		res := d.Resolver.ResolveTransfers(r.Context(), q)
		cacheHeader(w, res.CacheHit)
		writeJSON(w, d, http.StatusOK, res.Response)
	}
}
