package handler

import (
	"fmt"
	"fxconverter/internal/transaction"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

type ListTransactionsResponse struct {
	UserID       string                `json:"user_id" example:"user-42"`
	Transactions []TransactionResponse `json:"transactions"`
	Count        int                   `json:"count" example:"1"`
	Total        int                   `json:"total" example:"12"`
}

// offset-less forms are read as UTC
var naiveDateLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ListTransactions godoc
// @Summary User transaction history
// @Description Newest first. total counts every transaction in the date window before paging.
// @Tags Transactions
// @Produce json
// @Param user_id path string true "User ID"
// @Param limit query int false "Maximum number of transactions to return"
// @Param offset query int false "Number of transactions to skip"
// @Param from_date query string false "Inclusive lower bound (ISO 8601)"
// @Param to_date query string false "Inclusive upper bound (ISO 8601)"
// @Success 200 {object} ListTransactionsResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/v1/transactions/{user_id} [get]
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(chi.URLParam(r, "user_id"))
	if userID == "" {
		writeError(w, http.StatusBadRequest, titleBadRequest, "user_id is required")
		return
	}

	q, err := parseListQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, titleBadRequest, err.Error())
		return
	}
	q.UserID = userID

	page, err := h.transactions.List(r.Context(), q)
	if err != nil {
		writeDomainError(w, r, "ListTransactions", err)
		return
	}

	items := make([]TransactionResponse, 0, len(page.Transactions))
	for _, tx := range page.Transactions {
		items = append(items, newTransactionResponse(tx))
	}

	writeJSON(w, http.StatusOK, ListTransactionsResponse{
		UserID:       page.UserID,
		Transactions: items,
		Count:        page.Count,
		Total:        page.Total,
	})
}

func parseListQuery(r *http.Request) (transaction.ListQuery, error) {
	var q transaction.ListQuery
	values := r.URL.Query()

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return q, fmt.Errorf("limit must be a positive integer, got %q", raw)
		}
		q.Limit = &limit
	}
	if raw := values.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return q, fmt.Errorf("offset must be a non-negative integer, got %q", raw)
		}
		q.Offset = &offset
	}

	var err error
	if q.FromDate, err = parseDateParam(values.Get("from_date"), "from_date"); err != nil {
		return q, err
	}
	if q.ToDate, err = parseDateParam(values.Get("to_date"), "to_date"); err != nil {
		return q, err
	}
	return q, nil
}

func parseDateParam(raw, name string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	// an unescaped "+" offset arrives as a space
	raw = strings.ReplaceAll(raw, " ", "+")
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	for _, layout := range naiveDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%s must be an ISO 8601 date or date-time, got %q", name, raw)
}
