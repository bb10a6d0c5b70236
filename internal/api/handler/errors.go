package handler

import (
	"errors"
	"fxconverter/internal/api/middleware"
	"fxconverter/internal/domain"
	"net/http"
)

const (
	titleInvalidCurrency    = "Invalid currency"
	titleInvalidAmount      = "Invalid amount"
	titleBadRequest         = "Bad request"
	titleUserNotFound       = "User not found"
	titleServiceUnavailable = "External service unavailable"
	titleInternal           = "Internal server error"
)

type errorResponse struct {
	Error      string `json:"error" example:"Invalid currency"`
	StatusCode int    `json:"status_code" example:"400"`
	Detail     string `json:"detail" example:"invalid currency code: XYZ is not supported"`
}

func writeError(w http.ResponseWriter, statusCode int, title, detail string) {
	writeJSON(w, statusCode, errorResponse{
		Error:      title,
		StatusCode: statusCode,
		Detail:     detail,
	})
}

// writeDomainError maps service errors onto the public error body.
// Anything unexpected is logged in full and answered with a generic 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, handlerName string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCurrency):
		writeError(w, http.StatusBadRequest, titleInvalidCurrency, err.Error())
	case errors.Is(err, domain.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, titleInvalidAmount, err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, titleUserNotFound, err.Error())
	case errors.Is(err, domain.ErrExternalServiceUnavailable):
		middleware.Logger(r.Context()).WithError(err).WithField("handler", handlerName).Warn("Exchange rates unavailable")
		writeError(w, http.StatusServiceUnavailable, titleServiceUnavailable, "exchange rates are temporarily unavailable, try again later")
	default:
		middleware.Logger(r.Context()).WithError(err).WithField("handler", handlerName).Error("Request failed")
		writeError(w, http.StatusInternalServerError, titleInternal, "an unexpected error occurred")
	}
}
