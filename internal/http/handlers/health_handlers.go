package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/product-catalog/internal/http/middleware"
	"github.com/rogerio-castellano/product-catalog/internal/obs"
)

// HealthHandler godoc
// @Summary Store health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /healthz [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := productRepo.Ping(r.Context()); err != nil {
		obs.Logger.Error("health_check_failed",
			"error", err,
			"request_id", middleware.RequestIDFromContext(r.Context()),
		)
		respond(w, r, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}
	respond(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}
