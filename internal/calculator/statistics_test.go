package calculator

import (
	"math"
	"testing"

	"github.com/splitease/splitease/internal/models"
)

func TestStatistics(t *testing.T) {
	user := models.User{ID: "u1", Name: "Alice"}
	lastMonth := testNow.AddDate(0, 0, -31)

	groups := []models.Group{
		{ID: "g1", Name: "Trip", Members: []string{"Alice", "Bob"}},
		{ID: "g2", Name: "Dinner", Members: []string{"Bob", "Alice"}},
		{ID: "g3", Name: "Flat", Members: []string{"Carol", "Dave"}},
	}
	transactions := []models.Transaction{
		groupExpense(100, "Alice", []string{"Alice", "Bob"}, models.StatusPending, "Trip"),
		groupExpense(40, "Alice", []string{"Alice", "Bob"}, models.StatusSettled, "Trip"),
		groupExpense(60, "Bob", []string{"Alice", "Bob"}, models.StatusPending, "Dinner"),
		expense(25, "Alice", nil, models.StatusSettled, lastMonth),
		// Not Alice's transaction at all.
		groupExpense(500, "Carol", []string{"Carol", "Dave"}, models.StatusPending, "Flat"),
	}

	stats := Statistics(user, transactions, groups, testNow)

	if stats.TotalGroups != 2 {
		t.Errorf("TotalGroups = %d, want 2", stats.TotalGroups)
	}
	if stats.GroupsAsAdmin != 1 {
		t.Errorf("GroupsAsAdmin = %d, want 1", stats.GroupsAsAdmin)
	}
	if stats.TotalTransactions != 4 {
		t.Errorf("TotalTransactions = %d, want 4", stats.TotalTransactions)
	}
	if math.Abs(stats.TotalAmountSpent-165) > Epsilon {
		t.Errorf("TotalAmountSpent = %v, want 165", stats.TotalAmountSpent)
	}
	if stats.MostActiveGroup == nil || stats.MostActiveGroup.Name != "Trip" || stats.MostActiveGroup.TransactionCount != 2 {
		t.Errorf("MostActiveGroup = %+v, want Trip with 2", stats.MostActiveGroup)
	}
	if stats.MostSpentInGroup == nil || stats.MostSpentInGroup.Name != "Trip" || math.Abs(stats.MostSpentInGroup.Amount-140) > Epsilon {
		t.Errorf("MostSpentInGroup = %+v, want Trip with 140", stats.MostSpentInGroup)
	}
	// Own expenses: 100, 40, 25 -> avg 55, largest 100.
	if math.Abs(stats.AverageTransactionAmount-55) > Epsilon {
		t.Errorf("AverageTransactionAmount = %v, want 55", stats.AverageTransactionAmount)
	}
	if stats.LargestTransaction == nil || math.Abs(stats.LargestTransaction.Amount-100) > Epsilon {
		t.Errorf("LargestTransaction = %+v, want amount 100", stats.LargestTransaction)
	}
	if stats.SettledTransactions != 2 {
		t.Errorf("SettledTransactions = %d, want 2", stats.SettledTransactions)
	}
	if stats.PendingTransactions != 2 {
		t.Errorf("PendingTransactions = %d, want 2", stats.PendingTransactions)
	}
	if math.Abs(stats.MonthlyStats.CurrentMonth-140) > Epsilon {
		t.Errorf("MonthlyStats.CurrentMonth = %v, want 140", stats.MonthlyStats.CurrentMonth)
	}
	if math.Abs(stats.MonthlyStats.LastMonth-25) > Epsilon {
		t.Errorf("MonthlyStats.LastMonth = %v, want 25", stats.MonthlyStats.LastMonth)
	}
	if stats.MonthlyStats.Trend != TrendUp {
		t.Errorf("Trend = %s, want up", stats.MonthlyStats.Trend)
	}
}

func TestStatistics_Empty(t *testing.T) {
	stats := Statistics(models.User{Name: "Alice"}, nil, nil, testNow)
	if stats.TotalGroups != 0 || stats.TotalTransactions != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
	if stats.MostActiveGroup != nil || stats.LargestTransaction != nil {
		t.Errorf("expected nil optional stats, got %+v", stats)
	}
	if stats.MonthlyStats.Trend != TrendSame {
		t.Errorf("Trend = %s, want same", stats.MonthlyStats.Trend)
	}
}
