package controllers

import (
	"net/http"

	"github.com/rfqhub/rfqhub-backend/api/responses"
	"github.com/rfqhub/rfqhub-backend/pkg/config"
	"github.com/rfqhub/rfqhub-backend/pkg/db"
	"github.com/rfqhub/rfqhub-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RFQHub-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports whether the backing stores answer. A failing dependency
// flips the status without failing the request itself.
func HealthReady(cfg *config.Config, database *db.Client, cache *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RFQHub-Env", cfg.App.Env)

		checks := map[string]string{}
		ready := true

		if database != nil {
			checks["db"] = "ok"
			if err := database.Ping(r.Context()); err != nil {
				checks["db"] = "unavailable"
				ready = false
			}
		}
		if cache != nil {
			checks["redis"] = "ok"
			if err := cache.Ping(r.Context()); err != nil {
				checks["redis"] = "unavailable"
				ready = false
			}
		}

		status := "ready"
		httpStatus := http.StatusOK
		if !ready {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}

		responses.WriteSuccessStatus(w, httpStatus, map[string]any{
			"status": status,
			"checks": checks,
		})
	}
}
