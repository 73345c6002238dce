package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/collection"
)

// serveListing runs the shared listing flow: refresh, apply the query
// and page from the request, return the current page slice. A query
// change always lands on page 1; the page param is honored only when
// the query is unchanged, so a stale page cannot ride along with a new
// search and point past the narrowed result.
func serveListing[T any](w http.ResponseWriter, r *http.Request, col *collection.Collection[T], refresh func() error, logger *zap.Logger) {
	if err := refresh(); err != nil {
		handleServiceError(w, err, logger)
		return
	}
	query := r.URL.Query().Get("query")
	queryChanged := query != col.Query()
	col.SetQuery(query)
	if v := r.URL.Query().Get("page"); v != "" && !queryChanged {
		col.SetPage(parsePage(r))
	}
	writeJSON(w, http.StatusOK, listResponse[T]{
		Items:      col.Page(),
		Page:       col.CurrentPage(),
		TotalPages: col.TotalPages(),
		Total:      col.TotalFiltered(),
		Query:      col.Query(),
	})
}
