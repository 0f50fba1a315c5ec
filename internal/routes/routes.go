package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/amal-thomson/pixelphraser/internal/webhook"
	"github.com/amal-thomson/pixelphraser/pkg/metrics"
)

// NewRouter wires the push endpoint plus lightweight health/metrics
// endpoints so the service can be monitored.
func NewRouter(handler *webhook.EventHandler, metrics *metrics.Metrics, started time.Time) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/event", handler.HandleEvent)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"message": "description service healthy",
			"meta": map[string]interface{}{
				"uptime_seconds": int(time.Since(started).Seconds()),
				"timestamp":      time.Now().UTC(),
			},
		})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	return r
}
