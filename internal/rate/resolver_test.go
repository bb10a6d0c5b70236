package rate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"fxconverter/internal/adapters/cache"
	"fxconverter/internal/domain"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Testify mocks ---

type MockRateProvider struct{ mock.Mock }

func (m *MockRateProvider) FetchSnapshot(ctx context.Context, base string) (domain.RateSnapshot, error) {
	args := m.Called(ctx, base)
	s, _ := args.Get(0).(domain.RateSnapshot)
	return s, args.Error(1)
}

type MockSnapshotCache struct{ mock.Mock }

func (m *MockSnapshotCache) Fresh(base string) (domain.RateSnapshot, bool) {
	args := m.Called(base)
	s, _ := args.Get(0).(domain.RateSnapshot)
	return s, args.Bool(1)
}

func (m *MockSnapshotCache) Latest(base string) (domain.RateSnapshot, bool) {
	args := m.Called(base)
	s, _ := args.Get(0).(domain.RateSnapshot)
	return s, args.Bool(1)
}

func (m *MockSnapshotCache) Replace(snapshot domain.RateSnapshot) domain.CachedSnapshot {
	args := m.Called(snapshot)
	c, _ := args.Get(0).(domain.CachedSnapshot)
	return c
}

type MockRateBackupRepository struct{ mock.Mock }

func (m *MockRateBackupRepository) Append(ctx context.Context, snapshot domain.RateSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockRateBackupRepository) Latest(ctx context.Context, base string) (domain.StoredRateBackup, error) {
	args := m.Called(ctx, base)
	b, _ := args.Get(0).(domain.StoredRateBackup)
	return b, args.Error(1)
}

// --- helpers ---

var supported = []string{"USD", "EUR", "JPY", "BRL"}

var fetchedAt = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func eurSnapshot() domain.RateSnapshot {
	return domain.NewRateSnapshot("EUR", map[string]decimal.Decimal{
		"USD": dec("1.18"),
		"JPY": dec("129.5"),
		"BRL": dec("6.2"),
	}, fetchedAt)
}

func newTestResolver() (*Resolver, *MockRateProvider, *MockSnapshotCache, *MockRateBackupRepository) {
	provider := new(MockRateProvider)
	snapshots := new(MockSnapshotCache)
	backups := new(MockRateBackupRepository)
	return NewResolver(provider, snapshots, backups, NewValidator(supported), "EUR"), provider, snapshots, backups
}

// --- PairwiseRate ---

func TestResolver_SourceNames_Order(t *testing.T) {
	r, _, _, _ := newTestResolver()
	require.Equal(t, []string{"cache", "provider", "expired-cache", "backup-store"}, r.SourceNames())
}

func TestResolver_PairwiseRate_InvalidCurrency_NoLookups(t *testing.T) {
	r, provider, snapshots, backups := newTestResolver()

	_, err := r.PairwiseRate(context.Background(), "XYZ", "EUR")
	require.ErrorIs(t, err, domain.ErrInvalidCurrency)

	_, err = r.PairwiseRate(context.Background(), "USD", "")
	require.ErrorIs(t, err, domain.ErrInvalidCurrency)

	provider.AssertNotCalled(t, "FetchSnapshot", mock.Anything, mock.Anything)
	snapshots.AssertNotCalled(t, "Fresh", mock.Anything)
	backups.AssertNotCalled(t, "Latest", mock.Anything, mock.Anything)
}

func TestResolver_PairwiseRate_SameCurrency_IsOneWithoutSnapshot(t *testing.T) {
	r, provider, snapshots, _ := newTestResolver()

	for _, code := range supported {
		got, err := r.PairwiseRate(context.Background(), code, code)
		require.NoError(t, err)
		require.True(t, got.Equal(decimal.NewFromInt(1)), "rate for %s->%s", code, code)
	}

	provider.AssertNotCalled(t, "FetchSnapshot", mock.Anything, mock.Anything)
	snapshots.AssertNotCalled(t, "Fresh", mock.Anything)
}

func TestResolver_PairwiseRate_CacheHit_NoProviderCall(t *testing.T) {
	r, provider, snapshots, _ := newTestResolver()
	snapshots.On("Fresh", "EUR").Return(eurSnapshot(), true).Times(3)

	for i := 0; i < 3; i++ {
		got, err := r.PairwiseRate(context.Background(), "EUR", "USD")
		require.NoError(t, err)
		require.True(t, got.Equal(dec("1.18")))
	}

	provider.AssertNotCalled(t, "FetchSnapshot", mock.Anything, mock.Anything)
	snapshots.AssertExpectations(t)
}

func TestResolver_PairwiseRate_CacheMiss_FetchesStoresAndBacksUp(t *testing.T) {
	r, provider, snapshots, backups := newTestResolver()
	ctx := context.Background()

	fetched := domain.NewRateSnapshot("EUR", map[string]decimal.Decimal{
		"USD": dec("1.18"),
		"JPY": dec("129.5"),
		"BRL": dec("6.2"),
		"GBP": dec("0.85"), // not supported, must be dropped
	}, fetchedAt)
	want := eurSnapshot()

	snapshots.On("Fresh", "EUR").Return(domain.RateSnapshot{}, false).Once()
	provider.On("FetchSnapshot", mock.Anything, "EUR").Return(fetched, nil).Once()
	snapshots.On("Replace", want).Return(domain.CachedSnapshot{Snapshot: want, ExpiresAt: fetchedAt.Add(time.Hour)}).Once()
	backups.On("Append", mock.Anything, want).Return(nil).Once()

	got, err := r.PairwiseRate(ctx, "USD", "EUR")
	require.NoError(t, err)
	require.Equal(t, "0.8475", got.Round(4).String())

	provider.AssertExpectations(t)
	snapshots.AssertExpectations(t)
	backups.AssertExpectations(t)
	snapshots.AssertNotCalled(t, "Latest", mock.Anything)
}

func TestResolver_PairwiseRate_BackupAppendFailure_IsNotFatal(t *testing.T) {
	r, provider, snapshots, backups := newTestResolver()

	snapshots.On("Fresh", "EUR").Return(domain.RateSnapshot{}, false).Once()
	provider.On("FetchSnapshot", mock.Anything, "EUR").Return(eurSnapshot(), nil).Once()
	snapshots.On("Replace", mock.Anything).Return(domain.CachedSnapshot{}).Once()
	backups.On("Append", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	got, err := r.PairwiseRate(context.Background(), "EUR", "JPY")
	require.NoError(t, err)
	require.True(t, got.Equal(dec("129.5")))
}

func TestResolver_PairwiseRate_ProviderFails_UsesExpiredCacheFirst(t *testing.T) {
	r, provider, snapshots, backups := newTestResolver()

	snapshots.On("Fresh", "EUR").Return(domain.RateSnapshot{}, false).Once()
	provider.On("FetchSnapshot", mock.Anything, "EUR").
		Return(domain.RateSnapshot{}, fmt.Errorf("%w: timeout", domain.ErrExternalServiceUnavailable)).Once()
	snapshots.On("Latest", "EUR").Return(eurSnapshot(), true).Once()

	got, err := r.PairwiseRate(context.Background(), "EUR", "BRL")
	require.NoError(t, err)
	require.True(t, got.Equal(dec("6.2")))

	backups.AssertNotCalled(t, "Latest", mock.Anything, mock.Anything)
	snapshots.AssertNotCalled(t, "Replace", mock.Anything)
}

func TestResolver_PairwiseRate_ProviderFails_NoCache_UsesBackup(t *testing.T) {
	r, provider, snapshots, backups := newTestResolver()

	stored := domain.StoredRateBackup{
		ID:           7,
		BaseCurrency: "EUR",
		Rates:        map[string]decimal.Decimal{"USD": dec("1.10"), "EUR": dec("1")},
		LastUpdated:  fetchedAt.Add(-24 * time.Hour),
	}

	snapshots.On("Fresh", "EUR").Return(domain.RateSnapshot{}, false).Once()
	provider.On("FetchSnapshot", mock.Anything, "EUR").
		Return(domain.RateSnapshot{}, fmt.Errorf("%w: 500", domain.ErrExternalServiceUnavailable)).Once()
	snapshots.On("Latest", "EUR").Return(domain.RateSnapshot{}, false).Once()
	backups.On("Latest", mock.Anything, "EUR").Return(stored, nil).Once()

	got, err := r.PairwiseRate(context.Background(), "EUR", "USD")
	require.NoError(t, err)
	require.True(t, got.Equal(dec("1.10")))

	backups.AssertExpectations(t)
}

func TestResolver_PairwiseRate_NothingAvailable_ExternalServiceUnavailable(t *testing.T) {
	tests := []struct {
		name      string
		backupErr error
	}{
		{name: "no backup row", backupErr: domain.ErrRateNotFound},
		{name: "backup store error", backupErr: errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, provider, snapshots, backups := newTestResolver()

			snapshots.On("Fresh", "EUR").Return(domain.RateSnapshot{}, false).Once()
			provider.On("FetchSnapshot", mock.Anything, "EUR").
				Return(domain.RateSnapshot{}, fmt.Errorf("%w: unexpected status code 503", domain.ErrExternalServiceUnavailable)).Once()
			snapshots.On("Latest", "EUR").Return(domain.RateSnapshot{}, false).Once()
			backups.On("Latest", mock.Anything, "EUR").Return(domain.StoredRateBackup{}, tt.backupErr).Once()

			_, err := r.PairwiseRate(context.Background(), "USD", "JPY")
			require.ErrorIs(t, err, domain.ErrExternalServiceUnavailable)
			require.Contains(t, err.Error(), "unexpected status code 503")
		})
	}
}

func TestResolver_PairwiseRate_MissingCodeInSnapshot(t *testing.T) {
	r, _, snapshots, _ := newTestResolver()
	partial := domain.NewRateSnapshot("EUR", map[string]decimal.Decimal{"USD": dec("1.18")}, fetchedAt)
	snapshots.On("Fresh", "EUR").Return(partial, true).Once()

	_, err := r.PairwiseRate(context.Background(), "USD", "JPY")
	require.ErrorIs(t, err, domain.ErrExternalServiceUnavailable)
	require.Contains(t, err.Error(), "JPY")
}

func TestResolver_PairwiseRate_InverseConsistency(t *testing.T) {
	r, _, snapshots, _ := newTestResolver()
	snapshots.On("Fresh", "EUR").Return(eurSnapshot(), true)

	tolerance := dec("0.000000000001")
	for _, a := range supported {
		for _, b := range supported {
			ab, err := r.PairwiseRate(context.Background(), a, b)
			require.NoError(t, err)
			ba, err := r.PairwiseRate(context.Background(), b, a)
			require.NoError(t, err)

			diff := ab.Mul(ba).Sub(decimal.NewFromInt(1)).Abs()
			require.True(t, diff.LessThan(tolerance), "%s/%s: %s * %s", a, b, ab, ba)
		}
	}
}

func TestResolver_PairwiseRate_CrossRate(t *testing.T) {
	r, _, snapshots, _ := newTestResolver()
	snapshots.On("Fresh", "EUR").Return(eurSnapshot(), true).Once()

	got, err := r.PairwiseRate(context.Background(), "USD", "JPY")
	require.NoError(t, err)
	// 129.5 / 1.18
	require.Equal(t, "109.7457627118644068", got.String())
}

// --- Refresh ---

func TestResolver_Refresh_ConcurrentCallsShareOneFetch(t *testing.T) {
	r, provider, snapshots, backups := newTestResolver()

	release := make(chan struct{})
	provider.On("FetchSnapshot", mock.Anything, "EUR").
		Run(func(mock.Arguments) { <-release }).
		Return(eurSnapshot(), nil).Once()
	snapshots.On("Replace", mock.Anything).Return(domain.CachedSnapshot{}).Once()
	backups.On("Append", mock.Anything, mock.Anything).Return(nil).Once()

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Refresh(context.Background())
			errs <- err
		}()
	}

	// give every goroutine time to join the in-flight call
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	provider.AssertNumberOfCalls(t, "FetchSnapshot", 1)
}

func TestResolver_Refresh_ProviderError(t *testing.T) {
	r, provider, snapshots, backups := newTestResolver()
	provider.On("FetchSnapshot", mock.Anything, "EUR").
		Return(domain.RateSnapshot{}, fmt.Errorf("%w: boom", domain.ErrExternalServiceUnavailable)).Once()

	_, err := r.Refresh(context.Background())
	require.ErrorIs(t, err, domain.ErrExternalServiceUnavailable)
	snapshots.AssertNotCalled(t, "Replace", mock.Anything)
	backups.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

// --- with the ristretto cache and a fake clock ---

func TestResolver_WithSnapshotCache_RefetchesAfterTTL(t *testing.T) {
	clock := clockwork.NewFakeClockAt(fetchedAt)
	snapshots, err := cache.NewSnapshotCache(8, time.Hour, clock)
	require.NoError(t, err)
	defer snapshots.Close()

	provider := new(MockRateProvider)
	backups := new(MockRateBackupRepository)
	r := NewResolver(provider, snapshots, backups, NewValidator(supported), "EUR")

	provider.On("FetchSnapshot", mock.Anything, "EUR").Return(eurSnapshot(), nil).Twice()
	backups.On("Append", mock.Anything, mock.Anything).Return(nil).Twice()

	ctx := context.Background()
	_, err = r.PairwiseRate(ctx, "EUR", "USD")
	require.NoError(t, err)

	clock.Advance(59 * time.Minute)
	_, err = r.PairwiseRate(ctx, "EUR", "USD")
	require.NoError(t, err)
	provider.AssertNumberOfCalls(t, "FetchSnapshot", 1)

	clock.Advance(time.Minute)
	_, err = r.PairwiseRate(ctx, "EUR", "USD")
	require.NoError(t, err)
	provider.AssertNumberOfCalls(t, "FetchSnapshot", 2)
}

// --- DeriveRate ---

func TestDeriveRate(t *testing.T) {
	snapshot := eurSnapshot()

	tests := []struct {
		name     string
		from, to string
		want     string
	}{
		{name: "from base", from: "EUR", to: "USD", want: "1.18"},
		{name: "to base", from: "USD", to: "EUR", want: "0.8474576271186441"},
		{name: "cross", from: "BRL", to: "USD", want: "0.1903225806451613"},
		{name: "identity", from: "JPY", to: "JPY", want: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeriveRate(snapshot, tt.from, tt.to)
			require.NoError(t, err)
			require.Equal(t, tt.want, got.String())
		})
	}
}

func TestDeriveRate_NonPositiveRate(t *testing.T) {
	snapshot := domain.NewRateSnapshot("EUR", map[string]decimal.Decimal{"USD": decimal.Zero}, fetchedAt)

	_, err := DeriveRate(snapshot, "USD", "EUR")
	require.ErrorIs(t, err, domain.ErrExternalServiceUnavailable)
}
