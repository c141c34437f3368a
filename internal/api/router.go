package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/chethan059/compliment-generator/internal/metrics"
)

// NewRouter assembles the HTTP surface: the JSON API, health check and
// Prometheus metrics.
func NewRouter(h *Handler, log *zap.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/compliments", func(r chi.Router) {
			r.Get("/", h.listCompliments)
			r.Post("/", h.createCompliment)
			r.Get("/random", h.randomCompliment)
			r.Delete("/{id}", h.deleteCompliment)
		})
		r.Route("/schedules", func(r chi.Router) {
			r.Get("/", h.listSchedules)
			r.Post("/", h.createSchedule)
			r.Put("/{id}", h.updateSchedule)
			r.Delete("/{id}", h.deleteSchedule)
		})
		r.Get("/settings", h.getSettings)
		r.Put("/settings", h.updateSettings)
		r.Get("/random", h.getRandomState)
		r.Put("/random", h.updateRandomState)
		r.Get("/export", h.exportData)
		r.Post("/import", h.importData)
	})

	return r
}

// requestLogger logs each request with zap at debug level.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("took", time.Since(start)),
			)
		})
	}
}
