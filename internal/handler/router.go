package handler

import (
	"net/http"

	"github.com/portfolio/backend/internal/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RouterConfig carries the handlers mounted by NewRouter.
type RouterConfig struct {
	Base    *Handler
	Contact *ContactHandler
	Legal   *LegalHandler
	Metrics *metrics.Metrics
}

// NewRouter mounts every route and wraps the mux in the middleware chain:
// tracing, security headers, CORS, request logging, then metrics closest to the mux.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", cfg.Base.Health)
	mux.HandleFunc("POST /api/contact", cfg.Contact.Submit)
	mux.HandleFunc("GET /api/legal/{type}", cfg.Legal.Legal)
	mux.Handle("GET /metrics", cfg.Metrics.Handler())

	var h http.Handler = cfg.Metrics.Middleware(mux)
	h = RequestLogger(h)
	h = cfg.Base.CORS(h)
	h = SecurityHeaders(h)
	return otelhttp.NewHandler(h, "http.server")
}
