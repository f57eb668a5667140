package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"terradash/internal/domain/dataset"
)

// DatasetHandler serves the stored collections back as JSON arrays with
// field names matching the CSV headers verbatim.
type DatasetHandler struct {
	repo dataset.Repository
	log  *logrus.Logger
}

func NewDatasetHandler(repo dataset.Repository, log *logrus.Logger) *DatasetHandler {
	return &DatasetHandler{repo: repo, log: log}
}

// Orders handles GET /api/orders
func (h *DatasetHandler) Orders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		SendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	records, err := h.repo.Orders()
	if err != nil {
		h.log.WithError(err).Error("failed to load orders")
		SendError(w, "Failed to load orders", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []dataset.OrderRecord{}
	}
	SendJSON(w, http.StatusOK, records)
}

// Campaigns handles GET /api/campaigns
func (h *DatasetHandler) Campaigns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		SendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	records, err := h.repo.Campaigns()
	if err != nil {
		h.log.WithError(err).Error("failed to load campaigns")
		SendError(w, "Failed to load campaigns", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []dataset.CampaignRecord{}
	}
	SendJSON(w, http.StatusOK, records)
}
