// Package metrics owns the server's Prometheus registry and collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login outcomes.
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
	LoginError   = "error"
	LoginLimited = "rate_limited"
)

// Metrics is a private registry plus the shop's collectors. A private
// registry keeps tests independent of the global default one.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	AuthLogins      *prometheus.CounterVec
	AuthResolutions *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gophershop_http_requests_total",
				Help: "HTTP requests by method, route pattern and status code.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gophershop_http_request_duration_seconds",
				Help:    "HTTP request latency by method and route pattern.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		AuthLogins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gophershop_auth_logins_total",
				Help: "Login attempts by outcome.",
			},
			[]string{"outcome"},
		),
		AuthResolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gophershop_auth_resolutions_total",
				Help: "Bearer token resolutions by outcome.",
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.AuthLogins, m.AuthResolutions)
	return m
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveLogin(outcome string) {
	m.AuthLogins.WithLabelValues(outcome).Inc()
}

// ObserveResolution records a resolution outcome: "resolved" or the
// rejection reason.
func (m *Metrics) ObserveResolution(outcome string) {
	m.AuthResolutions.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
