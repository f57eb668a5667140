package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"terradash/internal/application/analytics"
)

// DashboardHandler serves the derived KPI payload.
type DashboardHandler struct {
	analytics analytics.Service
	log       *logrus.Logger
}

func NewDashboardHandler(analyticsSvc analytics.Service, log *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{analytics: analyticsSvc, log: log}
}

// Dashboard handles GET /api/dashboard
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		SendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	d, err := h.analytics.Dashboard()
	if err != nil {
		h.log.WithError(err).Error("failed to compute dashboard")
		SendError(w, "Failed to compute dashboard", http.StatusInternalServerError)
		return
	}
	SendJSON(w, http.StatusOK, d)
}
