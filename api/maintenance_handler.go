package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type sweeper interface {
	Sweep(ctx context.Context) (services.SweepResult, error)
}

type maintenanceHandler struct {
	responder   Responder
	logger      zerolog.Logger
	db          pinger
	sweeper     sweeper
	startupTime time.Time
}

func newMaintenanceHandler(db pinger, sweeper sweeper, startupTime time.Time) maintenanceHandler {
	logger := log.With().Str("handlerName", "maintenanceHandler").Logger()

	return maintenanceHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		db:          db,
		sweeper:     sweeper,
		startupTime: startupTime,
	}
}

type healthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// health reports liveness and database reachability
// @Summary Health check
// @Tags Maintenance
// @Success 200 {object} healthResponse "Healthy"
// @Failure 503 {object} healthResponse "Database unreachable"
// @Router /healthz [get]
func (h maintenanceHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := time.Since(h.startupTime).Round(time.Second).String()

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Error().Err(err).Msg("database ping failed")
			h.responder.WriteJSONStatus(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Uptime: uptime})
			return
		}

		h.responder.WriteJSON(w, healthResponse{Status: "ok", Uptime: uptime})
	}
}

type sweepResponse struct {
	Success bool `json:"success"`
	services.SweepResult
}

// sweep retries media cleanup for projects whose deletion did not finish
// @Summary Sweep deleted projects
// @Tags Maintenance
// @Success 200 {object} sweepResponse "Sweep result"
// @Router /api/maintenance/sweep [post]
func (h maintenanceHandler) sweep() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := h.sweeper.Sweep(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, sweepResponse{Success: true, SweepResult: result})
	}
}
