package main

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//**********************************************************
// metrics
//**********************************************************

var (
	// registry is the dedicated prometheus registry of the service
	registry = prometheus.NewRegistry()

	http_requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	http_duration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)
	plan_candidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "plan_candidate_nodes", Help: "Candidate escape nodes per plan.", Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100, 200}},
	)
	plan_coverage = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "plan_coverage_ratio", Help: "Achieved over maximum possible plan score.", Buckets: []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1}},
	)
)

var register_once sync.Once

func register_metrics() {
	register_once.Do(func() {
		registry.MustRegister(http_requests)
		registry.MustRegister(http_duration)
		registry.MustRegister(plan_candidates)
		registry.MustRegister(plan_coverage)
		registry.MustRegister(collectors.NewGoCollector())
		registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

func metrics_handler() http.Handler {
	register_metrics()
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func observe_request(method string, path string, status int, start time.Time) {
	code := strconv.Itoa(status)
	http_requests.WithLabelValues(method, path, code).Inc()
	http_duration.WithLabelValues(method, path, code).Observe(time.Since(start).Seconds())
}
