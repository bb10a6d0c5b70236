package handler

import (
	"fxconverter/internal/domain"
	"time"

	"github.com/shopspring/decimal"
)

type MoneyResponse struct {
	Currency string `json:"currency" example:"EUR"`
	Amount   string `json:"amount" example:"84.75"`
}

type TransactionResponse struct {
	TransactionID int64         `json:"transaction_id" example:"1"`
	From          MoneyResponse `json:"from"`
	To            MoneyResponse `json:"to"`
	Rate          string        `json:"rate" example:"0.8474576271186441"`
	Timestamp     time.Time     `json:"timestamp"`
}

// amounts leave the service with two decimals, rounded half to even
func formatAmount(d decimal.Decimal) string {
	return d.RoundBank(2).StringFixed(2)
}

func newMoneyResponse(m domain.Money) MoneyResponse {
	return MoneyResponse{Currency: m.Currency, Amount: formatAmount(m.Amount)}
}

func newTransactionResponse(tx domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: tx.ID,
		From:          newMoneyResponse(domain.Money{Currency: tx.SourceCurrency, Amount: tx.SourceAmount}),
		To:            newMoneyResponse(domain.Money{Currency: tx.TargetCurrency, Amount: tx.TargetAmount}),
		Rate:          tx.ExchangeRate.String(),
		Timestamp:     tx.Timestamp.UTC(),
	}
}
