package api

import (
	"context"
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type dashboardLoader interface {
	Load(ctx context.Context) (services.Dashboard, error)
}

type dashboardHandler struct {
	responder Responder
	logger    zerolog.Logger
	dashboard dashboardLoader
}

func newDashboardHandler(dashboard dashboardLoader) dashboardHandler {
	logger := log.With().Str("handlerName", "dashboardHandler").Logger()

	return dashboardHandler{
		responder: NewResponder(logger),
		logger:    logger,
		dashboard: dashboard,
	}
}

// getDashboard returns counters and the recent activity feed
// @Summary Get dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} services.Dashboard "Dashboard"
// @Failure 401 {object} ErrorResponse "Unauthorized - Admin session required"
// @Router /api/dashboard [get]
func (h dashboardHandler) getDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dashboard, err := h.dashboard.Load(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("load", "dashboard", err))
			return
		}

		h.responder.WriteJSON(w, dashboard)
	}
}
