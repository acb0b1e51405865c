package controllers

import (
	"log/slog"
	"net/http"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
	"eventplanner/internal/services"
)

// DashboardSuccessResponse is the success response envelope for GET /dashboard (200).
type DashboardSuccessResponse struct {
	Data  domain.Analytics  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type DashboardController struct {
	Logger *slog.Logger
	Store  domain.EventStore
	Clock  services.Clock
}

func NewDashboardController(logger *slog.Logger, store domain.EventStore, clock services.Clock) *DashboardController {
	return &DashboardController{
		Logger: logger,
		Store:  store,
		Clock:  clock,
	}
}

// GetDashboard godoc
// @Summary Analytics for the acting user
// @Description Counts of events hosted, attended (confirmed) and upcoming, plus the first five hosted and attending events in stored order.
// @Tags dashboard
// @Produce json
// @Success 200 {object} controllers.DashboardSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /dashboard [get]
func (c *DashboardController) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, services.ComputeAnalytics(c.Store.List(), userID, c.Clock.Now()))
}
