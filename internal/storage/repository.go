package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/splitease/splitease/internal/models"
)

// Repository reads and writes typed snapshots through a Store. Values are
// JSON on the wire; time.Time fields serialize as RFC 3339 strings and come
// back as real times on load.
//
// Malformed persisted data is recovered locally: the bad value is logged
// and the zero default returned, never an error. Worst case is an empty
// list, not a crash.
type Repository struct {
	store Store
}

// NewRepository wraps store with the typed snapshot accessors.
func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// Wipe erases the entire persisted snapshot.
func (r *Repository) Wipe(ctx context.Context) error {
	return r.store.Wipe(ctx)
}

// load decodes the value under key into T. Absent and malformed values both
// yield the zero value, with found=false only for absent ones.
func load[T any](ctx context.Context, s Store, key string) (value T, found bool, err error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		var zero T
		return zero, false, fmt.Errorf("load %s: %w", key, err)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		slog.Warn("discarding malformed snapshot", "key", key, "error", err)
		var zero T
		return zero, false, nil
	}
	return v, true, nil
}

func save[T any](ctx context.Context, s Store, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// User returns the stored user, or nil when none has been created yet.
func (r *Repository) User(ctx context.Context) (*models.User, error) {
	u, found, err := load[models.User](ctx, r.store, KeyUser)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) SaveUser(ctx context.Context, u *models.User) error {
	return save(ctx, r.store, KeyUser, u)
}

func (r *Repository) Summary(ctx context.Context) (models.FinancialSummary, error) {
	s, _, err := load[models.FinancialSummary](ctx, r.store, KeySummary)
	return s, err
}

func (r *Repository) SaveSummary(ctx context.Context, s models.FinancialSummary) error {
	return save(ctx, r.store, KeySummary, s)
}

func (r *Repository) Transactions(ctx context.Context) ([]models.Transaction, error) {
	t, _, err := load[[]models.Transaction](ctx, r.store, KeyTransactions)
	return t, err
}

func (r *Repository) SaveTransactions(ctx context.Context, t []models.Transaction) error {
	return save(ctx, r.store, KeyTransactions, t)
}

func (r *Repository) Groups(ctx context.Context) ([]models.Group, error) {
	g, _, err := load[[]models.Group](ctx, r.store, KeyGroups)
	return g, err
}

func (r *Repository) SaveGroups(ctx context.Context, g []models.Group) error {
	return save(ctx, r.store, KeyGroups, g)
}

func (r *Repository) Friends(ctx context.Context) ([]models.Friend, error) {
	f, _, err := load[[]models.Friend](ctx, r.store, KeyFriends)
	return f, err
}

func (r *Repository) SaveFriends(ctx context.Context, f []models.Friend) error {
	return save(ctx, r.store, KeyFriends, f)
}

func (r *Repository) Notifications(ctx context.Context) ([]models.Notification, error) {
	n, _, err := load[[]models.Notification](ctx, r.store, KeyNotifications)
	return n, err
}

func (r *Repository) SaveNotifications(ctx context.Context, n []models.Notification) error {
	return save(ctx, r.store, KeyNotifications, n)
}

func (r *Repository) Cashback(ctx context.Context) (models.CashbackData, error) {
	c, _, err := load[models.CashbackData](ctx, r.store, KeyCashback)
	return c, err
}

func (r *Repository) SaveCashback(ctx context.Context, c models.CashbackData) error {
	return save(ctx, r.store, KeyCashback, c)
}

// FirstTime reports whether this is a first-time user. Defaults to true
// when nothing is stored.
func (r *Repository) FirstTime(ctx context.Context) (bool, error) {
	v, found, err := load[bool](ctx, r.store, KeyFirstTime)
	if err != nil {
		return false, err
	}
	if !found {
		return true, nil
	}
	return v, nil
}

func (r *Repository) SetFirstTime(ctx context.Context, firstTime bool) error {
	return save(ctx, r.store, KeyFirstTime, firstTime)
}

func (r *Repository) RecurringBills(ctx context.Context) ([]models.RecurringBill, error) {
	b, _, err := load[[]models.RecurringBill](ctx, r.store, KeyRecurringBills)
	return b, err
}

func (r *Repository) SaveRecurringBills(ctx context.Context, b []models.RecurringBill) error {
	return save(ctx, r.store, KeyRecurringBills, b)
}

func (r *Repository) SavedCards(ctx context.Context) ([]models.SavedCard, error) {
	c, _, err := load[[]models.SavedCard](ctx, r.store, KeySavedCards)
	return c, err
}

func (r *Repository) SaveSavedCards(ctx context.Context, c []models.SavedCard) error {
	return save(ctx, r.store, KeySavedCards, c)
}
