package adapter

import (
	"net/http"
	"product-browser/api"
	"product-browser/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the generated API plus /healthz and, when reg is set, /metrics.
func NewRouter(h *Handler, reg *metrics.Registry) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// metrics sits outside Recoverer so recovered panics are counted as 500s
	if reg != nil {
		r.Use(reg.Middleware)
	}
	r.Use(middleware.Recoverer)
	if reg != nil {
		r.Method(http.MethodGet, "/metrics", reg.Handler())
	}
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	api.HandlerWithOptions(h, api.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: ParamErrorHandler,
	})
	return r
}
