package handler

import (
	"net/http"
	"time"
)

type GetRatesResponse struct {
	Base      string            `json:"base" example:"EUR"`
	Rates     map[string]string `json:"rates"`
	Timestamp time.Time         `json:"timestamp"`
}

// GetRates godoc
// @Summary Current exchange rates
// @Description Rates of every supported currency against the configured base. The base query parameter is accepted but the configured base is always used.
// @Tags Rates
// @Produce json
// @Param base query string false "Base currency (ignored, the configured base is used)"
// @Success 200 {object} GetRatesResponse
// @Failure 503 {object} errorResponse
// @Router /api/v1/rates [get]
func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.rates.Snapshot(r.Context())
	if err != nil {
		writeDomainError(w, r, "GetRates", err)
		return
	}

	rates := make(map[string]string, len(snapshot.Rates))
	for code, rate := range snapshot.Rates {
		rates[code] = rate.String()
	}

	writeJSON(w, http.StatusOK, GetRatesResponse{
		Base:      snapshot.Base,
		Rates:     rates,
		Timestamp: snapshot.FetchedAt,
	})
}
