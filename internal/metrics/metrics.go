package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "judo", Name: "http_requests_total", Help: "Handled HTTP requests",
	}, []string{"method", "route", "status"})
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "judo", Name: "http_request_duration_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	MessagesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "judo", Name: "messages_sent_total", Help: "Direct messages stored",
	})
	PasswordResets = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "judo", Name: "password_reset_requests_total", Help: "Password reset notifications by outcome",
	}, []string{"outcome"})
	RateLimited = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "judo", Name: "rate_limited_total", Help: "Requests rejected by the rate limiter",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "judo", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, MessagesSent, PasswordResets, RateLimited, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }

func ObserveRequest(method, route string, status int, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, statusClass(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
