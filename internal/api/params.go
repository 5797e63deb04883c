package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 500
)

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// pageParams parses limit and offset query parameters with the usual bounds.
func pageParams(r *http.Request) (limit, offset int) {
	limit = defaultPageLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 {
			limit = v
		}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}
