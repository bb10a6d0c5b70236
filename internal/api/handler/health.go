package handler

import "net/http"

type HealthResponse struct {
	Status     string `json:"status" example:"ok"`
	APIVersion string `json:"api_version" example:"1.0.0"`
}

// Health godoc
// @Summary Service health
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", APIVersion: h.apiVersion})
}
