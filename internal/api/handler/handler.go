package handler

import (
	"context"
	"encoding/json"
	"fxconverter/internal/conversion"
	"fxconverter/internal/domain"
	"fxconverter/internal/transaction"
	"net/http"
)

type Converter interface {
	Convert(ctx context.Context, cmd conversion.ConvertCommand) (domain.Conversion, error)
}

type TransactionLister interface {
	List(ctx context.Context, q transaction.ListQuery) (domain.TransactionPage, error)
}

type RateReader interface {
	Snapshot(ctx context.Context) (domain.RateSnapshot, error)
}

type CodeLister interface {
	SupportedCodes() []string
}

type Handler struct {
	converter    Converter
	transactions TransactionLister
	rates        RateReader
	codes        CodeLister
	apiVersion   string
}

func NewHandler(converter Converter, transactions TransactionLister, rates RateReader, codes CodeLister, apiVersion string) *Handler {
	return &Handler{
		converter:    converter,
		transactions: transactions,
		rates:        rates,
		codes:        codes,
		apiVersion:   apiVersion,
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
