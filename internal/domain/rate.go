package domain

import (
	"maps"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// RateSnapshot is one atomic fetch of all rates relative to Base.
// It is never mutated after construction; a newer fetch supersedes it.
type RateSnapshot struct {
	Base      string
	Rates     map[string]decimal.Decimal
	FetchedAt time.Time
}

// NewRateSnapshot copies rates and pins the base currency rate to exactly 1.
func NewRateSnapshot(base string, rates map[string]decimal.Decimal, fetchedAt time.Time) RateSnapshot {
	cloned := make(map[string]decimal.Decimal, len(rates)+1)
	maps.Copy(cloned, rates)
	cloned[base] = decimal.NewFromInt(1)
	return RateSnapshot{Base: base, Rates: cloned, FetchedAt: fetchedAt.UTC()}
}

func (s RateSnapshot) Rate(code string) (decimal.Decimal, bool) {
	r, ok := s.Rates[code]
	return r, ok
}

// Restrict returns a copy holding only the given codes.
func (s RateSnapshot) Restrict(codes []string) RateSnapshot {
	rates := make(map[string]decimal.Decimal, len(codes))
	for code, r := range s.Rates {
		if slices.Contains(codes, code) {
			rates[code] = r
		}
	}
	return NewRateSnapshot(s.Base, rates, s.FetchedAt)
}

// CachedSnapshot is a snapshot together with the instant it stops being fresh.
type CachedSnapshot struct {
	Snapshot  RateSnapshot
	ExpiresAt time.Time
}

func (c CachedSnapshot) FreshAt(now time.Time) bool {
	return now.Before(c.ExpiresAt)
}

// StoredRateBackup is one row of the append-only backup log.
type StoredRateBackup struct {
	ID           int64
	BaseCurrency string
	Rates        map[string]decimal.Decimal
	LastUpdated  time.Time
}

func (b StoredRateBackup) Snapshot() RateSnapshot {
	return NewRateSnapshot(b.BaseCurrency, b.Rates, b.LastUpdated)
}
