package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persisted record of one successful conversion.
type Transaction struct {
	ID             int64
	UserID         string
	SourceCurrency string
	TargetCurrency string
	SourceAmount   decimal.Decimal
	TargetAmount   decimal.Decimal
	ExchangeRate   decimal.Decimal
	Timestamp      time.Time
}

type Money struct {
	Currency string
	Amount   decimal.Decimal
}

// Conversion is the outcome returned to the caller of a conversion.
type Conversion struct {
	TransactionID int64
	UserID        string
	From          Money
	To            Money
	Rate          decimal.Decimal
	Timestamp     time.Time
}

// TransactionFilter selects a user's transactions; nil bounds are open, set bounds are inclusive.
type TransactionFilter struct {
	UserID   string
	FromDate *time.Time
	ToDate   *time.Time
}

// Page is applied after ordering: Offset rows are skipped, then at most Limit rows returned.
type Page struct {
	Limit  *int
	Offset int
}

type TransactionPage struct {
	UserID       string
	Transactions []Transaction
	Count        int
	Total        int
}
