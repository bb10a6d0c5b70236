package adapters

import (
	"context"
	"fxconverter/internal/domain"
)

type RateProvider interface {
	FetchSnapshot(ctx context.Context, base string) (domain.RateSnapshot, error)
}

// SnapshotCache keeps the last fetched snapshot per base currency.
// Fresh only returns entries that have not expired; Latest ignores expiry.
type SnapshotCache interface {
	Fresh(base string) (domain.RateSnapshot, bool)
	Latest(base string) (domain.RateSnapshot, bool)
	Replace(snapshot domain.RateSnapshot) domain.CachedSnapshot
}

type RateBackupRepository interface {
	Append(ctx context.Context, snapshot domain.RateSnapshot) error
	Latest(ctx context.Context, base string) (domain.StoredRateBackup, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, tx domain.Transaction) (domain.Transaction, error)
	Count(ctx context.Context, filter domain.TransactionFilter) (int, error)
	List(ctx context.Context, filter domain.TransactionFilter, page domain.Page) ([]domain.Transaction, error)
}
