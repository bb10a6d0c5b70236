package conversion

import (
	"context"
	"fmt"
	"fxconverter/internal/adapters"
	"fxconverter/internal/domain"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const amountPlaces int32 = 2

type RateSource interface {
	PairwiseRate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

type ConvertCommand struct {
	UserID string
	From   string
	To     string
	Amount decimal.Decimal
}

type Service struct {
	txs   adapters.TransactionRepository
	src   RateSource
	clock clockwork.Clock
}

// Convert prices the amount at the current rate and records exactly one transaction.
func (s *Service) Convert(ctx context.Context, cmd ConvertCommand) (domain.Conversion, error) {
	amount := cmd.Amount.RoundBank(amountPlaces)
	if !amount.IsPositive() {
		return domain.Conversion{}, fmt.Errorf("%w: amount must be greater than zero, got %s", domain.ErrInvalidAmount, cmd.Amount)
	}

	rate, err := s.src.PairwiseRate(ctx, cmd.From, cmd.To)
	if err != nil {
		return domain.Conversion{}, err
	}

	tx := domain.Transaction{
		UserID:         cmd.UserID,
		SourceCurrency: cmd.From,
		TargetCurrency: cmd.To,
		SourceAmount:   amount,
		TargetAmount:   amount.Mul(rate),
		ExchangeRate:   rate,
		Timestamp:      s.clock.Now().UTC().Truncate(time.Microsecond),
	}

	saved, err := s.txs.Create(ctx, tx)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id": cmd.UserID,
			"from":    cmd.From,
			"to":      cmd.To,
		}).Error("Failed to save conversion")
		return domain.Conversion{}, fmt.Errorf("%w: failed to save transaction: %v", domain.ErrStorageFailure, err)
	}

	return domain.Conversion{
		TransactionID: saved.ID,
		UserID:        saved.UserID,
		From:          domain.Money{Currency: saved.SourceCurrency, Amount: saved.SourceAmount},
		To:            domain.Money{Currency: saved.TargetCurrency, Amount: saved.TargetAmount.RoundBank(amountPlaces)},
		Rate:          saved.ExchangeRate,
		Timestamp:     saved.Timestamp,
	}, nil
}

func NewService(txs adapters.TransactionRepository, src RateSource, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{txs: txs, src: src, clock: clock}
}
