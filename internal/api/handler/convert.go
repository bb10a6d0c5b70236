package handler

import (
	"encoding/json"
	"fmt"
	"fxconverter/internal/conversion"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ConvertRequest struct {
	UserID       string          `json:"user_id" example:"user-42"`
	FromCurrency string          `json:"from_currency" example:"USD"`
	ToCurrency   string          `json:"to_currency" example:"EUR"`
	Amount       json.RawMessage `json:"amount" swaggertype:"string" example:"100.00"`
}

type ConvertResponse struct {
	TransactionID int64         `json:"transaction_id" example:"1"`
	UserID        string        `json:"user_id" example:"user-42"`
	From          MoneyResponse `json:"from"`
	To            MoneyResponse `json:"to"`
	Rate          string        `json:"rate" example:"0.8474576271186441"`
	Timestamp     time.Time     `json:"timestamp"`
}

// Convert godoc
// @Summary Convert an amount between currencies
// @Description Converts the amount at the current rate and records the transaction
// @Tags Conversion
// @Accept json
// @Produce json
// @Param request body ConvertRequest true "Conversion request"
// @Success 200 {object} ConvertResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Router /api/v1/convert [post]
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1024)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req ConvertRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, titleBadRequest, "invalid request body")
		return
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		writeError(w, http.StatusBadRequest, titleBadRequest, "user_id is required")
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, titleInvalidAmount, err.Error())
		return
	}

	result, err := h.converter.Convert(r.Context(), conversion.ConvertCommand{
		UserID: userID,
		From:   strings.ToUpper(strings.TrimSpace(req.FromCurrency)),
		To:     strings.ToUpper(strings.TrimSpace(req.ToCurrency)),
		Amount: amount,
	})
	if err != nil {
		writeDomainError(w, r, "Convert", err)
		return
	}

	writeJSON(w, http.StatusOK, ConvertResponse{
		TransactionID: result.TransactionID,
		UserID:        result.UserID,
		From:          newMoneyResponse(result.From),
		To:            newMoneyResponse(result.To),
		Rate:          result.Rate.String(),
		Timestamp:     result.Timestamp,
	})
}

// parseAmount accepts a JSON number or a numeric string; a missing amount is zero.
func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	var amount decimal.Decimal
	if len(raw) == 0 {
		return amount, nil
	}
	if err := json.Unmarshal(raw, &amount); err != nil {
		return decimal.Decimal{}, fmt.Errorf("amount must be a number, got %s", raw)
	}
	return amount, nil
}
