package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/splitease/splitease/internal/models"
	"github.com/splitease/splitease/internal/storage"
)

// Bills manages recurring bill schedules.
type Bills struct {
	mu   sync.Mutex
	repo *storage.Repository
	now  func() time.Time
}

// NewBills creates a Bills service over repo.
func NewBills(repo *storage.Repository) *Bills {
	return &Bills{repo: repo, now: time.Now}
}

// NextPaymentDate advances from lastPaid (or now when nil) by one frequency
// interval.
func NextPaymentDate(lastPaid *time.Time, frequency models.BillFrequency, now time.Time) time.Time {
	base := now
	if lastPaid != nil {
		base = *lastPaid
	}
	switch frequency {
	case models.FrequencyWeekly:
		return base.AddDate(0, 0, 7)
	case models.FrequencyYearly:
		return base.AddDate(1, 0, 0)
	default:
		return base.AddDate(0, 1, 0)
	}
}

// DueStatus renders how soon a payment is due, relative to now.
func DueStatus(nextPayment, now time.Time) string {
	days := int(math.Ceil(nextPayment.Sub(now).Hours() / 24))
	switch {
	case days < 0:
		return "Overdue"
	case days == 0:
		return "Due Today"
	case days == 1:
		return "Due Tomorrow"
	default:
		return fmt.Sprintf("Due in %d days", days)
	}
}

// Save validates and stores a new recurring bill, assigning its id and
// created date.
func (b *Bills) Save(ctx context.Context, bill models.RecurringBill) (models.RecurringBill, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if bill.ReceiverName == "" {
		return models.RecurringBill{}, fmt.Errorf("receiver name is required")
	}
	if bill.Amount <= 0 {
		return models.RecurringBill{}, fmt.Errorf("amount must be positive")
	}
	switch bill.Frequency {
	case models.FrequencyWeekly, models.FrequencyMonthly, models.FrequencyYearly:
	default:
		return models.RecurringBill{}, fmt.Errorf("unknown frequency %q", bill.Frequency)
	}

	bill.ID = uuid.New().String()
	bill.CreatedDate = b.now()
	bill.LastPaidDate = nil
	bill.IsActive = true
	if bill.NextPaymentDate.IsZero() {
		bill.NextPaymentDate = NextPaymentDate(nil, bill.Frequency, b.now())
	}

	bills, err := b.repo.RecurringBills(ctx)
	if err != nil {
		return models.RecurringBill{}, err
	}
	if err := b.repo.SaveRecurringBills(ctx, append(bills, bill)); err != nil {
		return models.RecurringBill{}, err
	}
	slog.Info("recurring bill saved", "bill_id", bill.ID, "receiver", bill.ReceiverName, "frequency", bill.Frequency)
	return bill, nil
}

// List returns all stored recurring bills.
func (b *Bills) List(ctx context.Context) ([]models.RecurringBill, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.repo.RecurringBills(ctx)
}

// Pay records a payment on the bill: the last-paid date is set to now and
// the next payment date advances by one frequency interval.
func (b *Bills) Pay(ctx context.Context, billID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	bills, err := b.repo.RecurringBills(ctx)
	if err != nil {
		return err
	}
	for i := range bills {
		if bills[i].ID != billID {
			continue
		}
		now := b.now()
		bills[i].LastPaidDate = &now
		bills[i].NextPaymentDate = NextPaymentDate(&now, bills[i].Frequency, now)
		if err := b.repo.SaveRecurringBills(ctx, bills); err != nil {
			return err
		}
		slog.Info("recurring bill paid", "bill_id", billID, "next_payment", bills[i].NextPaymentDate)
		return nil
	}
	return fmt.Errorf("bill not found: %s", billID)
}

// Delete removes the bill by id.
func (b *Bills) Delete(ctx context.Context, billID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	bills, err := b.repo.RecurringBills(ctx)
	if err != nil {
		return err
	}
	kept := bills[:0]
	for _, bill := range bills {
		if bill.ID != billID {
			kept = append(kept, bill)
		}
	}
	return b.repo.SaveRecurringBills(ctx, kept)
}
