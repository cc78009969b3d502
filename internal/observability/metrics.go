package observability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/odyssey-erp/hrportal/internal/shared"
)

// Metrics mengumpulkan metrik Prometheus untuk aplikasi.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	listLoads       *prometheus.CounterVec
	listLoadLatency *prometheus.HistogramVec
	listToggles     *prometheus.CounterVec
}

// NewMetrics menginisialisasi registry dan metrik dasar.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hrportal_http_requests_total",
		Help: "Jumlah permintaan HTTP berdasarkan route dan status.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hrportal_http_request_duration_seconds",
		Help:    "Durasi permintaan HTTP per route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	loads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hrportal_list_loads_total",
		Help: "Jumlah pemuatan daftar master data berdasarkan hasil.",
	}, []string{"list", "result"})
	loadLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hrportal_list_load_duration_seconds",
		Help:    "Durasi pemuatan daftar dari API.",
		Buckets: prometheus.DefBuckets,
	}, []string{"list"})
	toggles := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hrportal_list_toggles_total",
		Help: "Jumlah perubahan status atau flag berdasarkan hasil.",
	}, []string{"list", "column", "outcome"})
	registry.MustRegister(requests, duration, loads, loadLatency, toggles)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		listLoads:       loads,
		listLoadLatency: loadLatency,
		listToggles:     toggles,
	}
}

// Handler mengembalikan http.Handler untuk endpoint /metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware mencatat metrik untuk setiap permintaan HTTP.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveLoad mencatat hasil pemuatan daftar.
func (m *Metrics) ObserveLoad(list string, took time.Duration, err error) {
	if m == nil {
		return
	}
	m.listLoads.WithLabelValues(list, loadResult(err)).Inc()
	m.listLoadLatency.WithLabelValues(list).Observe(took.Seconds())
}

// ObserveToggle mencatat hasil protokol toggle.
func (m *Metrics) ObserveToggle(list, column, outcome string) {
	if m == nil {
		return
	}
	m.listToggles.WithLabelValues(list, column, outcome).Inc()
}

// Registerer mengekspos registry untuk pendaftaran metrik khusus.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

func loadResult(err error) string {
	var serverErr *shared.ServerError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, shared.ErrNetwork):
		return "network"
	case errors.Is(err, shared.ErrEmptyResult):
		return "empty"
	case errors.As(err, &serverErr):
		return "server"
	default:
		return "error"
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
