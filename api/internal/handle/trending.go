package handle

import (
	"net/http"

	"aideas/api/internal/types"
)

// Trending serves GET /api/trending?category=... and never fails.
func (h *Handle) Trending(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	products := h.trending.List(ctx, r.URL.Query().Get("category"))
	if products == nil {
		products = []types.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handle) Categories(w http.ResponseWriter, _ *http.Request) {
	out := make([]string, 0, len(types.Categories)+1)
	out = append(out, types.CategoryAll)
	out = append(out, types.Categories...)
	writeJSON(w, http.StatusOK, out)
}
