package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/splitease/splitease/internal/calculator"
	"github.com/splitease/splitease/internal/models"
)

func TestPayments_SettleNow(t *testing.T) {
	ledger, _ := newTestLedger(t)
	seedUser(t, ledger, "Alice")
	group := addTripGroup(t, ledger, "Alice", "Bob")
	addTripExpense(t, ledger, 85.60, "Alice", []string{"Alice", "Bob"})

	payments := NewPayments(ledger, time.Hour)
	require.NoError(t, payments.SettleNow(context.Background(), group.ID, "Bob", 42.80))

	snap, err := ledger.Load(context.Background())
	require.NoError(t, err)

	// A settled settlement transaction is recorded on top of the history.
	require.Len(t, snap.Transactions, 2)
	settlement := snap.Transactions[0]
	require.Equal(t, models.TypeSettlement, settlement.Type)
	require.Equal(t, models.StatusSettled, settlement.Status)
	require.Equal(t, "Bob", settlement.PaidBy)
	require.InDelta(t, 42.80, *settlement.Amount, calculator.Epsilon)

	// The original expense is settled and the numbers zero out.
	require.Equal(t, models.StatusSettled, snap.Transactions[1].Status)
	require.InDelta(t, 0, snap.Summary.TotalBalance, calculator.Epsilon)
	require.InDelta(t, 0, snap.Groups[0].TotalBalance, calculator.Epsilon)
}

func TestPayments_ConfirmSettlesAfterDelay(t *testing.T) {
	ledger, _ := newTestLedger(t)
	seedUser(t, ledger, "Alice")
	group := addTripGroup(t, ledger, "Alice", "Bob")
	addTripExpense(t, ledger, 85.60, "Alice", []string{"Alice", "Bob"})

	payments := NewPayments(ledger, 10*time.Millisecond)
	payments.Confirm(group.ID, "Bob", 42.80)

	require.Eventually(t, func() bool {
		snap, err := ledger.Load(context.Background())
		return err == nil && len(snap.Transactions) == 2 && snap.Transactions[1].Settled()
	}, time.Second, 5*time.Millisecond)
}
