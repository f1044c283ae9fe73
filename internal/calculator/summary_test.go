package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/splitease/splitease/internal/models"
)

var testNow = time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

func amt(v float64) *float64 { return &v }

func expense(amount float64, paidBy string, split []string, status models.TransactionStatus, date time.Time) models.Transaction {
	return models.Transaction{
		ID:           "t-" + paidBy,
		Type:         models.TypeExpense,
		Description:  "test expense",
		Amount:       amt(amount),
		PaidBy:       paidBy,
		SplitBetween: split,
		Status:       status,
		Date:         date,
	}
}

func TestSummary(t *testing.T) {
	lastMonth := testNow.AddDate(0, -2, 0)

	tests := []struct {
		name         string
		transactions []models.Transaction
		currentUser  string
		want         models.FinancialSummary
	}{
		{
			name:         "empty list",
			transactions: nil,
			currentUser:  "Alice",
			want:         models.FinancialSummary{},
		},
		{
			name: "you paid unsettled, others owe their share",
			transactions: []models.Transaction{
				expense(85.60, "Alice", []string{"Alice", "Bob"}, models.StatusPending, testNow),
			},
			currentUser: "Alice",
			want: models.FinancialSummary{
				TotalBalance:    42.80,
				YouAreOwed:      42.80,
				MonthlySpending: 85.60, // fronted the full amount
			},
		},
		{
			name: "you paid settled, only your share counts",
			transactions: []models.Transaction{
				expense(85.60, "Alice", []string{"Alice", "Bob"}, models.StatusSettled, testNow),
			},
			currentUser: "Alice",
			want: models.FinancialSummary{
				MonthlySpending: 42.80,
			},
		},
		{
			name: "someone else paid unsettled, you owe your share and spent nothing yet",
			transactions: []models.Transaction{
				expense(90, "Bob", []string{"Alice", "Bob", "Carol"}, models.StatusPending, testNow),
			},
			currentUser: "Alice",
			want: models.FinancialSummary{
				TotalBalance: -30,
				YouOwe:       30,
			},
		},
		{
			name: "someone else paid settled, your share is effective spend",
			transactions: []models.Transaction{
				expense(90, "Bob", []string{"Alice", "Bob", "Carol"}, models.StatusSettled, testNow),
			},
			currentUser: "Alice",
			want: models.FinancialSummary{
				MonthlySpending: 30,
			},
		},
		{
			name: "personal expense outside any split counts at full amount",
			transactions: []models.Transaction{
				expense(12.50, "Alice", nil, models.StatusSettled, testNow),
			},
			currentUser: "Alice",
			want: models.FinancialSummary{
				MonthlySpending: 12.50,
			},
		},
		{
			name: "balances are all-time but monthly spending is current month only",
			transactions: []models.Transaction{
				expense(100, "Alice", []string{"Alice", "Bob"}, models.StatusPending, lastMonth),
			},
			currentUser: "Alice",
			want: models.FinancialSummary{
				TotalBalance: 50,
				YouAreOwed:   50,
			},
		},
		{
			name: "missing amount is skipped",
			transactions: []models.Transaction{
				{ID: "t1", Type: models.TypeGroupCreated, Description: "created Trip", Date: testNow},
			},
			currentUser: "Alice",
			want:        models.FinancialSummary{},
		},
		{
			name: "empty split contributes zero and must not divide by zero",
			transactions: []models.Transaction{
				expense(50, "Bob", []string{}, models.StatusPending, testNow),
			},
			currentUser: "Alice",
			want:        models.FinancialSummary{},
		},
		{
			name: "transactions not involving the user are ignored",
			transactions: []models.Transaction{
				expense(60, "Bob", []string{"Bob", "Carol"}, models.StatusPending, testNow),
			},
			currentUser: "Alice",
			want:        models.FinancialSummary{},
		},
		{
			name: "mixed owed and owing nets into total balance",
			transactions: []models.Transaction{
				expense(100, "Alice", []string{"Alice", "Bob"}, models.StatusPending, testNow),
				expense(40, "Bob", []string{"Alice", "Bob"}, models.StatusPending, testNow),
			},
			currentUser: "Alice",
			want: models.FinancialSummary{
				TotalBalance:    30,
				YouAreOwed:      50,
				YouOwe:          20,
				MonthlySpending: 100,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summary(tt.transactions, tt.currentUser, testNow)
			assertSummary(t, got, tt.want)
		})
	}
}

func assertSummary(t *testing.T, got, want models.FinancialSummary) {
	t.Helper()
	if math.Abs(got.TotalBalance-want.TotalBalance) > Epsilon {
		t.Errorf("TotalBalance = %v, want %v", got.TotalBalance, want.TotalBalance)
	}
	if math.Abs(got.YouOwe-want.YouOwe) > Epsilon {
		t.Errorf("YouOwe = %v, want %v", got.YouOwe, want.YouOwe)
	}
	if math.Abs(got.YouAreOwed-want.YouAreOwed) > Epsilon {
		t.Errorf("YouAreOwed = %v, want %v", got.YouAreOwed, want.YouAreOwed)
	}
	if math.Abs(got.MonthlySpending-want.MonthlySpending) > Epsilon {
		t.Errorf("MonthlySpending = %v, want %v", got.MonthlySpending, want.MonthlySpending)
	}
}

func TestSummary_TotalBalanceIdentity(t *testing.T) {
	transactions := []models.Transaction{
		expense(85.60, "Alice", []string{"Alice", "Bob"}, models.StatusPending, testNow),
		expense(33.33, "Bob", []string{"Alice", "Bob", "Carol"}, models.StatusPending, testNow),
		expense(120, "Carol", []string{"Alice", "Carol"}, models.StatusSettled, testNow),
		expense(7.77, "Alice", nil, models.StatusSettled, testNow),
	}

	got := Summary(transactions, "Alice", testNow)
	if got.TotalBalance != got.YouAreOwed-got.YouOwe {
		t.Errorf("TotalBalance = %v, want exactly YouAreOwed-YouOwe = %v", got.TotalBalance, got.YouAreOwed-got.YouOwe)
	}
}

func TestSummary_Idempotent(t *testing.T) {
	transactions := []models.Transaction{
		expense(85.60, "Alice", []string{"Alice", "Bob"}, models.StatusPending, testNow),
		expense(42, "Bob", []string{"Alice", "Bob"}, models.StatusPending, testNow),
	}

	first := Summary(transactions, "Alice", testNow)
	second := Summary(transactions, "Alice", testNow)
	if first != second {
		t.Errorf("repeated computation differs: %+v vs %+v", first, second)
	}
}

// Renaming the user and rewriting the transaction list must not change any
// number: the name is a label, not semantics.
func TestSummary_RenameInvariant(t *testing.T) {
	transactions := []models.Transaction{
		expense(85.60, "Alice", []string{"Alice", "Bob"}, models.StatusPending, testNow),
		expense(60, "Bob", []string{"Alice", "Bob"}, models.StatusPending, testNow),
	}
	before := Summary(transactions, "Alice", testNow)

	renamed := make([]models.Transaction, len(transactions))
	for i, tx := range transactions {
		if tx.PaidBy == "Alice" {
			tx.PaidBy = "Alicia"
		}
		split := make([]string, len(tx.SplitBetween))
		for j, m := range tx.SplitBetween {
			if m == "Alice" {
				m = "Alicia"
			}
			split[j] = m
		}
		tx.SplitBetween = split
		renamed[i] = tx
	}

	after := Summary(renamed, "Alicia", testNow)
	assertSummary(t, after, before)
}
