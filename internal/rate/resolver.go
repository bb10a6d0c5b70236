package rate

import (
	"context"
	"errors"
	"fmt"
	"fxconverter/internal/adapters"
	"fxconverter/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const divisionPlaces int32 = 16

// snapshotSource is one step of the acquisition chain. A source that has
// nothing to offer returns errNoSnapshot so the next one is tried.
type snapshotSource struct {
	name     string
	degraded bool
	load     func(ctx context.Context, base string) (domain.RateSnapshot, error)
}

var errNoSnapshot = errors.New("no snapshot")

// Resolver answers rate questions from the newest snapshot it can get:
// fresh cache, provider, expired cache, then the backup store.
type Resolver struct {
	provider  adapters.RateProvider
	cache     adapters.SnapshotCache
	backups   adapters.RateBackupRepository
	validator *CurrencyValidator
	base      string
	sources   []snapshotSource
	group     singleflight.Group
}

func (r *Resolver) Base() string {
	return r.base
}

// SourceNames lists the acquisition chain in the order it is tried.
func (r *Resolver) SourceNames() []string {
	names := make([]string, 0, len(r.sources))
	for _, s := range r.sources {
		names = append(names, s.name)
	}
	return names
}

// PairwiseRate returns how many units of to one unit of from buys.
func (r *Resolver) PairwiseRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if err := r.validator.ValidatePair(from, to); err != nil {
		return decimal.Decimal{}, err
	}
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	snapshot, err := r.Snapshot(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return DeriveRate(snapshot, from, to)
}

// Snapshot walks the acquisition chain for the configured base currency.
func (r *Resolver) Snapshot(ctx context.Context) (domain.RateSnapshot, error) {
	var fetchErr error
	for _, src := range r.sources {
		snapshot, err := src.load(ctx, r.base)
		if err == nil {
			if src.degraded {
				logrus.WithFields(logrus.Fields{
					"base":       r.base,
					"source":     src.name,
					"fetched_at": snapshot.FetchedAt,
				}).Warn("Serving exchange rates from fallback source")
			}
			return snapshot, nil
		}
		if errors.Is(err, errNoSnapshot) {
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.RateSnapshot{}, fmt.Errorf("%w: %v", domain.ErrExternalServiceUnavailable, ctxErr)
		}
		if fetchErr == nil {
			fetchErr = err
		}
		logrus.WithError(err).WithFields(logrus.Fields{"base": r.base, "source": src.name}).Warn("Exchange rate source failed")
	}

	if fetchErr == nil {
		fetchErr = errNoSnapshot
	}
	if errors.Is(fetchErr, domain.ErrExternalServiceUnavailable) {
		return domain.RateSnapshot{}, fmt.Errorf("no exchange rates available for base %s: %w", r.base, fetchErr)
	}
	return domain.RateSnapshot{}, fmt.Errorf("%w: no exchange rates available for base %s: %v", domain.ErrExternalServiceUnavailable, r.base, fetchErr)
}

// Refresh forces a provider fetch and stores the result.
func (r *Resolver) Refresh(ctx context.Context) (domain.RateSnapshot, error) {
	return r.fetch(ctx, r.base)
}

func (r *Resolver) fresh(_ context.Context, base string) (domain.RateSnapshot, error) {
	snapshot, ok := r.cache.Fresh(base)
	if !ok {
		return domain.RateSnapshot{}, errNoSnapshot
	}
	logrus.WithField("base", base).Debug("Exchange rate cache hit")
	return snapshot, nil
}

// fetch collapses concurrent provider calls for the same base into one.
func (r *Resolver) fetch(ctx context.Context, base string) (domain.RateSnapshot, error) {
	v, err, shared := r.group.Do(base, func() (any, error) {
		return r.fetchAndStore(ctx, base)
	})
	if err != nil {
		return domain.RateSnapshot{}, err
	}
	if shared {
		logrus.WithField("base", base).Debug("Joined in-flight exchange rate fetch")
	}
	return v.(domain.RateSnapshot), nil
}

func (r *Resolver) fetchAndStore(ctx context.Context, base string) (domain.RateSnapshot, error) {
	fetched, err := r.provider.FetchSnapshot(ctx, base)
	if err != nil {
		return domain.RateSnapshot{}, err
	}
	snapshot := fetched.Restrict(r.validator.SupportedCodes())

	entry := r.cache.Replace(snapshot)
	logrus.WithFields(logrus.Fields{
		"base":       base,
		"rates":      len(snapshot.Rates),
		"expires_at": entry.ExpiresAt,
	}).Info("Exchange rates refreshed")

	if err = r.backups.Append(ctx, snapshot); err != nil {
		logrus.WithError(err).WithField("base", base).Error("Failed to save exchange rate backup")
	}
	return snapshot, nil
}

func (r *Resolver) expired(_ context.Context, base string) (domain.RateSnapshot, error) {
	snapshot, ok := r.cache.Latest(base)
	if !ok {
		return domain.RateSnapshot{}, errNoSnapshot
	}
	return snapshot, nil
}

func (r *Resolver) backup(ctx context.Context, base string) (domain.RateSnapshot, error) {
	stored, err := r.backups.Latest(ctx, base)
	if errors.Is(err, domain.ErrRateNotFound) {
		return domain.RateSnapshot{}, errNoSnapshot
	}
	if err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("failed to read exchange rate backup: %w", err)
	}
	return stored.Snapshot().Restrict(r.validator.SupportedCodes()), nil
}

// DeriveRate computes the from->to rate from a snapshot quoted against its base.
func DeriveRate(snapshot domain.RateSnapshot, from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	lookup := func(code string) (decimal.Decimal, error) {
		r, ok := snapshot.Rate(code)
		if !ok {
			return decimal.Decimal{}, fmt.Errorf("%w: rate for %s missing in snapshot", domain.ErrExternalServiceUnavailable, code)
		}
		if !r.IsPositive() {
			return decimal.Decimal{}, fmt.Errorf("%w: rate for %s is not positive: %s", domain.ErrExternalServiceUnavailable, code, r)
		}
		return r, nil
	}

	toRate, err := lookup(to)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if from == snapshot.Base {
		return toRate, nil
	}

	fromRate, err := lookup(from)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return toRate.DivRound(fromRate, divisionPlaces), nil
}

func NewResolver(
	provider adapters.RateProvider,
	cache adapters.SnapshotCache,
	backups adapters.RateBackupRepository,
	validator *CurrencyValidator,
	base string,
) *Resolver {
	r := &Resolver{
		provider:  provider,
		cache:     cache,
		backups:   backups,
		validator: validator,
		base:      base,
	}
	r.sources = []snapshotSource{
		{name: "cache", load: r.fresh},
		{name: "provider", load: r.fetch},
		{name: "expired-cache", degraded: true, load: r.expired},
		{name: "backup-store", degraded: true, load: r.backup},
	}
	return r
}
