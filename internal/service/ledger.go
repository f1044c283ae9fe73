// Package service implements the mutation layer: orchestration of entity
// snapshots, the balance calculator, and the persistence adapter.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/splitease/splitease/internal/calculator"
	"github.com/splitease/splitease/internal/models"
	"github.com/splitease/splitease/internal/storage"
)

// Snapshot is the full application state handed to the presentation layer.
// Consumers treat it as read-only; all changes go through Ledger operations.
type Snapshot struct {
	User         *models.User
	Summary      models.FinancialSummary
	Transactions []models.Transaction
	Groups       []models.Group
	Friends      []models.Friend
	FirstTime    bool
}

// Ledger is the mutation layer over the persisted (user, summary,
// transactions, groups, friends) tuple. Every operation reads the latest
// snapshot, applies its structural change, recomputes the derived numbers
// through the calculator, and persists the result.
//
// There is exactly one logical writer, but simulated-delay callbacks fire
// on timer goroutines, so operations are serialized with a mutex.
type Ledger struct {
	mu   sync.Mutex
	repo *storage.Repository
	now  func() time.Time
}

// NewLedger creates a Ledger over repo.
func NewLedger(repo *storage.Repository) *Ledger {
	return &Ledger{repo: repo, now: time.Now}
}

// Load returns the current snapshot, creating a first-time user with empty
// state when none exists yet.
func (l *Ledger) Load(ctx context.Context) (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}

func (l *Ledger) load(ctx context.Context) (*Snapshot, error) {
	user, err := l.repo.User(ctx)
	if err != nil {
		return nil, err
	}
	firstTime, err := l.repo.FirstTime(ctx)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return l.bootstrap(ctx)
	}

	snap := &Snapshot{User: user, FirstTime: firstTime}
	if snap.Summary, err = l.repo.Summary(ctx); err != nil {
		return nil, err
	}
	if snap.Transactions, err = l.repo.Transactions(ctx); err != nil {
		return nil, err
	}
	if snap.Groups, err = l.repo.Groups(ctx); err != nil {
		return nil, err
	}
	if snap.Friends, err = l.repo.Friends(ctx); err != nil {
		return nil, err
	}
	return snap, nil
}

// bootstrap initializes the dataset for a first-time user and persists it.
func (l *Ledger) bootstrap(ctx context.Context) (*Snapshot, error) {
	user := NewUser()
	snap := &Snapshot{User: user, FirstTime: true}

	if err := l.repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	if err := l.repo.SaveSummary(ctx, snap.Summary); err != nil {
		return nil, err
	}
	if err := l.repo.SaveTransactions(ctx, []models.Transaction{}); err != nil {
		return nil, err
	}
	if err := l.repo.SaveGroups(ctx, []models.Group{}); err != nil {
		return nil, err
	}
	if err := l.repo.SaveFriends(ctx, []models.Friend{}); err != nil {
		return nil, err
	}
	if err := l.repo.SetFirstTime(ctx, true); err != nil {
		return nil, err
	}

	slog.Info("first-time user created", "user_id", user.ID, "name", user.Name)
	return snap, nil
}

// commit recomputes the derived state and persists the snapshot. Summary
// and every group balance are recomputed wholesale; incremental updates are
// not worth the bookkeeping at this scale.
func (l *Ledger) commit(ctx context.Context, snap *Snapshot) (*Snapshot, error) {
	snap.Summary = calculator.Summary(snap.Transactions, snap.User.Name, l.now())
	snap.Groups = calculator.GroupBalances(snap.Transactions, snap.Groups, snap.User.Name)

	if err := l.repo.SaveTransactions(ctx, snap.Transactions); err != nil {
		return nil, fmt.Errorf("persist transactions: %w", err)
	}
	if err := l.repo.SaveSummary(ctx, snap.Summary); err != nil {
		return nil, fmt.Errorf("persist summary: %w", err)
	}
	if err := l.repo.SaveGroups(ctx, snap.Groups); err != nil {
		return nil, fmt.Errorf("persist groups: %w", err)
	}
	return snap, nil
}

// AddTransaction prepends t to the transaction list (newest first) and
// recomputes the summary and all group balances.
func (l *Ledger) AddTransaction(ctx context.Context, t models.Transaction) (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Date.IsZero() {
		t.Date = l.now()
	}

	snap.Transactions = append([]models.Transaction{t}, snap.Transactions...)
	snap, err = l.commit(ctx, snap)
	if err != nil {
		return nil, err
	}
	slog.Info("transaction added", "transaction_id", t.ID, "type", t.Type, "group", t.GroupName)
	return snap, nil
}

// TransactionPatch carries the fields UpdateTransaction may replace. Nil
// fields are left unchanged.
type TransactionPatch struct {
	Description *string
	Amount      *float64
	PaidBy      *string
	// SplitBetween replaces the member list when non-nil.
	SplitBetween []string
	Status       *models.TransactionStatus
	GroupName    *string
}

// UpdateTransaction replaces fields on the matching transaction and
// recomputes derived state. A missing id is a no-op: state and storage are
// left untouched.
func (l *Ledger) UpdateTransaction(ctx context.Context, id string, patch TransactionPatch) (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range snap.Transactions {
		if snap.Transactions[i].ID != id {
			continue
		}
		found = true
		t := &snap.Transactions[i]
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.Amount != nil {
			t.Amount = patch.Amount
		}
		if patch.PaidBy != nil {
			t.PaidBy = *patch.PaidBy
		}
		if patch.SplitBetween != nil {
			t.SplitBetween = patch.SplitBetween
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.GroupName != nil {
			t.GroupName = *patch.GroupName
		}
		break
	}
	if !found {
		slog.Warn("update skipped, transaction not found", "transaction_id", id)
		return snap, nil
	}

	snap, err = l.commit(ctx, snap)
	if err != nil {
		return nil, err
	}
	slog.Info("transaction updated", "transaction_id", id)
	return snap, nil
}

// DeleteTransaction removes the transaction by id (hard removal, no
// tombstone) and recomputes derived state.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	kept := snap.Transactions[:0]
	for _, t := range snap.Transactions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	snap.Transactions = kept

	snap, err = l.commit(ctx, snap)
	if err != nil {
		return nil, err
	}
	slog.Info("transaction deleted", "transaction_id", id)
	return snap, nil
}

// ClearAllData erases the entire persisted snapshot and reinitializes the
// dataset as a first-time user.
func (l *Ledger) ClearAllData(ctx context.Context) (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.repo.Wipe(ctx); err != nil {
		return nil, fmt.Errorf("wipe storage: %w", err)
	}
	slog.Info("all data cleared")
	return l.bootstrap(ctx)
}

// CompleteOnboarding clears the first-time flag.
func (l *Ledger) CompleteOnboarding(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.repo.SetFirstTime(ctx, false)
}

// AddFriend appends f to the friends list. Friend balances are a
// standalone view and are not reconciled with transaction-derived numbers.
func (l *Ledger) AddFriend(ctx context.Context, f models.Friend) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	friends, err := l.repo.Friends(ctx)
	if err != nil {
		return err
	}
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	if err := l.repo.SaveFriends(ctx, append(friends, f)); err != nil {
		return err
	}
	slog.Info("friend added", "friend_id", f.ID, "name", f.Name)
	return nil
}
