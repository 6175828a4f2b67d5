package handle

import (
	"net/http"

	"go.uber.org/zap"

	"aideas/api/internal/apperr"
)

// Evaluate serves GET /api/evaluate?idea=...
func (h *Handle) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	out, err := h.ideas.Analyze(ctx, r.URL.Query().Get("idea"))
	if err != nil {
		code := apperr.HTTPStatus(err)
		if code >= http.StatusInternalServerError {
			h.log.Warn("evaluate failed",
				zap.String("kind", string(apperr.KindOf(err))),
				zap.Error(err))
		}
		writeJSON(w, code, map[string]string{"error": apperr.PublicMessage(err)})
		return
	}

	writeJSON(w, http.StatusOK, out)
}
