package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"fxconverter/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// RateBackupRepository is the append-only snapshot log used when the provider and the cache both fail.
type RateBackupRepository struct {
	pool *pgxpool.Pool
}

// Append stores the snapshot; rates are kept as a json object of decimal strings.
func (r *RateBackupRepository) Append(ctx context.Context, snapshot domain.RateSnapshot) error {
	ratesJSON, err := json.Marshal(snapshot.Rates)
	if err != nil {
		return fmt.Errorf("failed to marshal rates for base %q: %w", snapshot.Base, err)
	}

	const q = `
		insert into exchange_rate_backups (base_currency, rates, last_updated)
		values ($1, $2, $3);
	`

	if _, err = r.pool.Exec(ctx, q, snapshot.Base, json.RawMessage(ratesJSON), snapshot.FetchedAt); err != nil {
		return fmt.Errorf("failed to insert rate backup for base %q: %w", snapshot.Base, err)
	}
	return nil
}

func (r *RateBackupRepository) Latest(ctx context.Context, base string) (domain.StoredRateBackup, error) {
	const q = `
		select id, base_currency, rates, last_updated
		from exchange_rate_backups
		where base_currency = $1
		order by last_updated desc, id desc
		limit 1;
	`

	var (
		backup    domain.StoredRateBackup
		ratesJSON []byte
	)
	if err := r.pool.QueryRow(ctx, q, base).Scan(
		&backup.ID,
		&backup.BaseCurrency,
		&ratesJSON,
		&backup.LastUpdated,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.StoredRateBackup{}, domain.ErrRateNotFound
		}
		return domain.StoredRateBackup{}, fmt.Errorf("failed to select rate backup for base %q: %w", base, err)
	}

	rates := make(map[string]decimal.Decimal)
	if err := json.Unmarshal(ratesJSON, &rates); err != nil {
		return domain.StoredRateBackup{}, fmt.Errorf("failed to decode rate backup %d: %w", backup.ID, err)
	}
	backup.Rates = rates
	backup.LastUpdated = backup.LastUpdated.UTC()
	return backup, nil
}

func NewRateBackupRepository(pool *pgxpool.Pool) *RateBackupRepository {
	return &RateBackupRepository{pool: pool}
}
