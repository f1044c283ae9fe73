package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/splitease/splitease/internal/models"
)

// Payments simulates the pay-and-settle flow: confirming a payment fires a
// settlement after a fixed processing delay.
type Payments struct {
	ledger *Ledger
	delay  time.Duration
}

// NewPayments creates a Payments service driving ledger.
func NewPayments(ledger *Ledger, delay time.Duration) *Payments {
	return &Payments{ledger: ledger, delay: delay}
}

// Confirm schedules settlement of member's share in the group. Once
// confirmed the simulated payment cannot be cancelled; after the delay a
// settled settlement transaction is recorded and the member is marked as
// settled in the group.
func (p *Payments) Confirm(groupID, member string, amount float64) {
	slog.Info("payment confirmed", "group_id", groupID, "member", member, "amount", amount, "delay", p.delay)
	time.AfterFunc(p.delay, func() {
		if err := p.settle(context.Background(), groupID, member, amount); err != nil {
			slog.Error("payment settlement failed", "group_id", groupID, "member", member, "error", err)
		}
	})
}

// SettleNow performs the settlement immediately, bypassing the simulated
// processing delay.
func (p *Payments) SettleNow(ctx context.Context, groupID, member string, amount float64) error {
	return p.settle(ctx, groupID, member, amount)
}

func (p *Payments) settle(ctx context.Context, groupID, member string, amount float64) error {
	amt := amount
	_, err := p.ledger.AddTransaction(ctx, models.Transaction{
		Type:        models.TypeSettlement,
		Description: fmt.Sprintf("Settled up with %s", member),
		Amount:      &amt,
		PaidBy:      member,
		Status:      models.StatusSettled,
	})
	if err != nil {
		return fmt.Errorf("record settlement: %w", err)
	}
	if _, err := p.ledger.MarkMemberAsSettled(ctx, groupID, member); err != nil {
		return fmt.Errorf("mark member settled: %w", err)
	}
	slog.Info("payment settled", "group_id", groupID, "member", member, "amount", amount)
	return nil
}
