package transaction

import (
	"context"
	"fmt"
	"fxconverter/internal/adapters"
	"fxconverter/internal/domain"
	"time"
)

type ListQuery struct {
	UserID   string
	Limit    *int
	Offset   *int
	FromDate *time.Time
	ToDate   *time.Time
}

type Service struct {
	repo adapters.TransactionRepository
}

// List returns one page of a user's history, newest first. Total counts the
// whole date window; an empty window is reported as ErrUserNotFound.
func (s *Service) List(ctx context.Context, q ListQuery) (domain.TransactionPage, error) {
	filter := domain.TransactionFilter{
		UserID:   q.UserID,
		FromDate: inUTC(q.FromDate),
		ToDate:   inUTC(q.ToDate),
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return domain.TransactionPage{}, fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}
	if total == 0 {
		return domain.TransactionPage{}, fmt.Errorf("%w: no transactions for user %s", domain.ErrUserNotFound, q.UserID)
	}

	page := domain.Page{Limit: q.Limit}
	if q.Offset != nil {
		page.Offset = *q.Offset
	}

	txs, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return domain.TransactionPage{}, fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}

	return domain.TransactionPage{
		UserID:       q.UserID,
		Transactions: txs,
		Count:        len(txs),
		Total:        total,
	}, nil
}

func inUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func NewService(repo adapters.TransactionRepository) *Service {
	return &Service{repo: repo}
}
