package metrics

import (
	"context"
	"net/http"
	"product-browser/internal/core/model"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg             *prometheus.Registry
	CatalogLoads    *prometheus.CounterVec
	CatalogLoadSec  prometheus.Histogram
	CatalogProducts prometheus.Gauge
	HTTPRequests    *prometheus.CounterVec
	Sessions        prometheus.GaugeFunc
}

// NewRegistry builds a private registry. sessions, when non-nil, is sampled
// on every scrape for the browse_sessions gauge.
func NewRegistry(sessions func() int) *Registry {
	r := prometheus.NewRegistry()
	loads := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "catalog_load_total"}, []string{"result"})
	loadSec := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_load_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})
	products := prometheus.NewGauge(prometheus.GaugeOpts{Name: "catalog_products"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "http_requests_total"}, []string{"route", "code"})
	if sessions == nil {
		sessions = func() int { return 0 }
	}
	sess := prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: "browse_sessions"}, func() float64 { return float64(sessions()) })

	r.MustRegister(loads, loadSec, products, requests, sess)
	return &Registry{
		reg:             r,
		CatalogLoads:    loads,
		CatalogLoadSec:  loadSec,
		CatalogProducts: products,
		HTTPRequests:    requests,
		Sessions:        sess,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

// Middleware counts requests by chi route pattern and status code.
func (r *Registry) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		route := "unmatched"
		if rc := chi.RouteContext(req.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		r.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	})
}

type Loader interface {
	FetchProducts(ctx context.Context) ([]model.Product, error)
}

type instrumentedLoader struct {
	next Loader
	reg  *Registry
}

// InstrumentLoader records the outcome and latency of every fetch made through l.
func InstrumentLoader(reg *Registry, l Loader) Loader {
	return &instrumentedLoader{next: l, reg: reg}
}

func (l *instrumentedLoader) FetchProducts(ctx context.Context) ([]model.Product, error) {
	start := time.Now()
	products, err := l.next.FetchProducts(ctx)
	l.reg.CatalogLoadSec.Observe(time.Since(start).Seconds())
	if err != nil {
		l.reg.CatalogLoads.WithLabelValues("failure").Inc()
		return nil, err
	}
	l.reg.CatalogLoads.WithLabelValues("success").Inc()
	l.reg.CatalogProducts.Set(float64(len(products)))
	return products, nil
}
