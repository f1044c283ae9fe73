package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/splitease/splitease/internal/models"
)

// mapStore is a minimal in-process Store for repository tests. The real
// in-memory backend lives in storage/memory; a local copy here avoids an
// import cycle.
type mapStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapStore() *mapStore { return &mapStore{data: make(map[string][]byte)} }

func (s *mapStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (s *mapStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *mapStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *mapStore) Wipe(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string][]byte)
	return nil
}

func (s *mapStore) Close() error { return nil }

func TestRepository_RoundTrips(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(newMapStore())

	t.Run("user is nil until saved", func(t *testing.T) {
		user, err := repo.User(ctx)
		require.NoError(t, err)
		require.Nil(t, user)

		saved := &models.User{ID: "u1", Name: "Alice", Email: "alice@example.com"}
		require.NoError(t, repo.SaveUser(ctx, saved))

		got, err := repo.User(ctx)
		require.NoError(t, err)
		require.Equal(t, saved, got)
	})

	t.Run("transaction dates survive the JSON round-trip", func(t *testing.T) {
		date := time.Date(2026, time.August, 15, 9, 30, 0, 0, time.UTC)
		amount := 85.60
		in := []models.Transaction{{
			ID:           "t1",
			Type:         models.TypeExpense,
			Description:  "Dinner",
			Amount:       &amount,
			PaidBy:       "Alice",
			SplitBetween: []string{"Alice", "Bob"},
			Date:         date,
			Status:       models.StatusPending,
			GroupName:    "Trip",
		}}
		require.NoError(t, repo.SaveTransactions(ctx, in))

		got, err := repo.Transactions(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.True(t, got[0].Date.Equal(date), "date = %v, want %v", got[0].Date, date)
		require.Equal(t, in[0].SplitBetween, got[0].SplitBetween)
	})

	t.Run("absent lists load as empty, not as errors", func(t *testing.T) {
		groups, err := repo.Groups(ctx)
		require.NoError(t, err)
		require.Empty(t, groups)
	})

	t.Run("first-time flag defaults to true", func(t *testing.T) {
		firstTime, err := repo.FirstTime(ctx)
		require.NoError(t, err)
		require.True(t, firstTime)

		require.NoError(t, repo.SetFirstTime(ctx, false))
		firstTime, err = repo.FirstTime(ctx)
		require.NoError(t, err)
		require.False(t, firstTime)
	})

	t.Run("cashback last-earned pointer round-trips", func(t *testing.T) {
		now := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, repo.SaveCashback(ctx, models.CashbackData{TotalEarned: 10, ReferralCount: 1, LastEarned: &now}))

		got, err := repo.Cashback(ctx)
		require.NoError(t, err)
		require.NotNil(t, got.LastEarned)
		require.True(t, got.LastEarned.Equal(now))
	})
}

func TestRepository_MalformedDataFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	repo := NewRepository(store)

	require.NoError(t, store.Set(ctx, KeyTransactions, []byte(`{"not":"a list"`)))
	require.NoError(t, store.Set(ctx, KeyUser, []byte(`[1,2,3]`)))

	transactions, err := repo.Transactions(ctx)
	require.NoError(t, err, "malformed data must be recovered, not raised")
	require.Empty(t, transactions)

	user, err := repo.User(ctx)
	require.NoError(t, err)
	require.Nil(t, user)
}
