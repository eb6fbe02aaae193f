package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal считает HTTP запросы по методу, маршруту и статусу
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payteams_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration измеряет время обработки запросов
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payteams_http_request_duration_seconds",
			Help:    "Histogram of HTTP response times",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// PayinsCreated считает созданные поступления по статусу
	PayinsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payteams_payins_created_total",
			Help: "Total number of payins recorded",
		},
		[]string{"status"},
	)

	// PayoutsCreated считает созданные выплаты по статусу
	PayoutsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payteams_payouts_created_total",
			Help: "Total number of payouts recorded",
		},
		[]string{"status"},
	)
)

// Middleware записывает метрики по шаблону маршрута chi, а не по сырому пути
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
