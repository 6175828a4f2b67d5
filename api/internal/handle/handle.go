package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"aideas/api/internal/types"
)

type IdeaAnalyzer interface {
	Analyze(ctx context.Context, idea string) (types.IdeaAnalysis, error)
}

type TrendingLister interface {
	List(ctx context.Context, category string) []types.Product
}

type Handle struct {
	ideas    IdeaAnalyzer
	trending TrendingLister
	log      *zap.Logger
}

func New(ideas IdeaAnalyzer, trending TrendingLister, log *zap.Logger) *Handle {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handle{
		ideas:    ideas,
		trending: trending,
		log:      log.Named("http"),
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// requestContext derives the upstream context. There is no deadline unless the
// caller asks for one in seconds via X-Request-Timeout or ?timeoutSec.
func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	var deadline time.Duration
	if ts := r.Header.Get("X-Request-Timeout"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			deadline = time.Duration(v) * time.Second
		}
	} else if ts := r.URL.Query().Get("timeoutSec"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			deadline = time.Duration(v) * time.Second
		}
	}
	if deadline == 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), deadline)
}
