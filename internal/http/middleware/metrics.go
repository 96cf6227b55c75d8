package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/arsalan507/simplequran/internal/metrics"
)

const unmatchedRoute = "unmatched"

// Metrics пишет длительность запросов в гистограмму с шаблоном маршрута chi.
// m == nil делает мидлвар no-op.
func Metrics(m *metrics.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)

			m.ObserveHTTP(r.Method, routePattern(r), sw.Status(), time.Since(start))
		})
	}
}

// routePattern — шаблон маршрута после роутинга; сырой путь не берём,
// чтобы не раздувать кардинальность меток.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return unmatchedRoute
}
