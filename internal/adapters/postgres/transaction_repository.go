package postgres

import (
	"context"
	"fmt"
	"fxconverter/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository struct {
	pool *pgxpool.Pool
}

// Create inserts the transaction and returns it with the id and timestamp assigned by the database.
func (r *TransactionRepository) Create(ctx context.Context, tx domain.Transaction) (domain.Transaction, error) {
	const q = `
		insert into transactions (user_id, source_currency, target_currency, source_amount, target_amount, exchange_rate, created_at)
		values ($1, $2, $3, $4, $5, $6, $7)
		returning id, created_at;
	`

	saved := tx
	if err := r.pool.QueryRow(ctx, q,
		tx.UserID,
		tx.SourceCurrency,
		tx.TargetCurrency,
		tx.SourceAmount,
		tx.TargetAmount,
		tx.ExchangeRate,
		tx.Timestamp,
	).Scan(&saved.ID, &saved.Timestamp); err != nil {
		return domain.Transaction{}, fmt.Errorf("failed to insert transaction for user %q: %w", tx.UserID, err)
	}
	saved.Timestamp = saved.Timestamp.UTC()
	return saved, nil
}

// nil date bounds are passed as NULL and disable the corresponding condition
const filterClause = `
	where user_id = $1
	  and ($2::timestamptz is null or created_at >= $2)
	  and ($3::timestamptz is null or created_at <= $3)
`

func (r *TransactionRepository) Count(ctx context.Context, filter domain.TransactionFilter) (int, error) {
	q := `select count(*) from transactions` + filterClause

	var total int
	if err := r.pool.QueryRow(ctx, q, filter.UserID, filter.FromDate, filter.ToDate).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count transactions for user %q: %w", filter.UserID, err)
	}
	return total, nil
}

// List returns the newest transactions first; equal timestamps keep insertion order.
// A nil limit becomes LIMIT NULL, i.e. no limit.
func (r *TransactionRepository) List(ctx context.Context, filter domain.TransactionFilter, page domain.Page) ([]domain.Transaction, error) {
	q := `
		select id, user_id, source_currency, target_currency, source_amount, target_amount, exchange_rate, created_at
		from transactions` + filterClause + `
		order by created_at desc, id asc
		limit $4::bigint offset $5::bigint;
	`

	rows, err := r.pool.Query(ctx, q, filter.UserID, filter.FromDate, filter.ToDate, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for user %q: %w", filter.UserID, err)
	}
	defer rows.Close()

	txs := make([]domain.Transaction, 0, 16)
	for rows.Next() {
		var tx domain.Transaction
		if err = rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.SourceCurrency,
			&tx.TargetCurrency,
			&tx.SourceAmount,
			&tx.TargetAmount,
			&tx.ExchangeRate,
			&tx.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Timestamp = tx.Timestamp.UTC()
		txs = append(txs, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return txs, nil
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}
