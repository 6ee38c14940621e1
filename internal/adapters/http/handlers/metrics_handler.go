package handlers

import (
	"log"
	"net/http"

	"github.com/JeanGrijp/alerting-system/internal/adapters/http/respond"
	"github.com/JeanGrijp/alerting-system/internal/core/ports"
)

const metricsErrorMessage = "Error fetching metrics"

// MetricsHandler devolve o histórico completo de violações.
type MetricsHandler struct {
	reader ports.MetricsReader
}

func NewMetricsHandler(reader ports.MetricsReader) *MetricsHandler {
	return &MetricsHandler{reader: reader}
}

func (h *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	violations, err := h.reader.GetAll(r.Context())
	if err != nil {
		log.Printf("failed to fetch metrics: %v", err)
		respond.Error(w, http.StatusInternalServerError, metricsErrorMessage)
		return
	}
	respond.JSON(w, http.StatusOK, violations)
}
