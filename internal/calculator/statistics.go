package calculator

import (
	"time"

	"github.com/splitease/splitease/internal/models"
)

// Trend compares the current month's spending with the previous month's.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendSame Trend = "same"
)

// GroupActivity names the group with the most of the user's transactions.
type GroupActivity struct {
	Name             string
	TransactionCount int
}

// GroupSpending names the group the user paid the most into.
type GroupSpending struct {
	Name   string
	Amount float64
}

// LargestTransaction is the user's biggest own expense.
type LargestTransaction struct {
	Description string
	Amount      float64
	Date        time.Time
}

// MonthlyStats compares spending across the current and previous calendar
// months.
type MonthlyStats struct {
	CurrentMonth float64
	LastMonth    float64
	Trend        Trend
}

// UserStatistics is the profile-page statistics block, derived from the
// user's transactions and group memberships.
type UserStatistics struct {
	TotalGroups              int
	TotalTransactions        int
	TotalAmountSpent         float64
	MostActiveGroup          *GroupActivity
	MostSpentInGroup         *GroupSpending
	AverageTransactionAmount float64
	LargestTransaction       *LargestTransaction
	GroupsAsAdmin            int
	SettledTransactions      int
	PendingTransactions      int
	MonthlyStats             MonthlyStats
}

// Statistics derives the profile statistics for user. Only transactions the
// user participates in (as payer or split member) are considered.
func Statistics(user models.User, transactions []models.Transaction, groups []models.Group, now time.Time) UserStatistics {
	name := user.Name

	var userTxns []models.Transaction
	for _, t := range transactions {
		if t.PaidBy == name || t.InSplit(name) {
			userTxns = append(userTxns, t)
		}
	}

	stats := UserStatistics{}

	for _, g := range groups {
		if g.HasMember(name) {
			stats.TotalGroups++
		}
		if len(g.Members) > 0 && g.Members[0] == name {
			// Members[0] is the creator by convention.
			stats.GroupsAsAdmin++
		}
	}

	// Per-group transaction counts and own spending, tracked in first-seen
	// order so ties resolve deterministically.
	var groupOrder []string
	activity := make(map[string]int)
	spending := make(map[string]float64)

	var ownExpenses []models.Transaction
	for _, t := range userTxns {
		if t.Type == models.TypeExpense {
			stats.TotalTransactions++
		}
		switch t.Status {
		case models.StatusSettled:
			stats.SettledTransactions++
		case models.StatusPending:
			stats.PendingTransactions++
		}
		if t.GroupName != "" {
			if _, seen := activity[t.GroupName]; !seen {
				groupOrder = append(groupOrder, t.GroupName)
			}
			activity[t.GroupName]++
		}
		if t.PaidBy == name && t.Amount != nil {
			stats.TotalAmountSpent += *t.Amount
			if t.GroupName != "" {
				spending[t.GroupName] += *t.Amount
			}
			if t.Type == models.TypeExpense {
				ownExpenses = append(ownExpenses, t)
			}
		}
	}

	for _, g := range groupOrder {
		if stats.MostActiveGroup == nil || activity[g] > stats.MostActiveGroup.TransactionCount {
			stats.MostActiveGroup = &GroupActivity{Name: g, TransactionCount: activity[g]}
		}
		if amt := spending[g]; amt > 0 && (stats.MostSpentInGroup == nil || amt > stats.MostSpentInGroup.Amount) {
			stats.MostSpentInGroup = &GroupSpending{Name: g, Amount: amt}
		}
	}

	if len(ownExpenses) > 0 {
		var total float64
		largest := ownExpenses[0]
		for _, t := range ownExpenses {
			total += *t.Amount
			if *t.Amount > *largest.Amount {
				largest = t
			}
		}
		stats.AverageTransactionAmount = total / float64(len(ownExpenses))
		stats.LargestTransaction = &LargestTransaction{
			Description: largest.Description,
			Amount:      *largest.Amount,
			Date:        largest.Date,
		}
	}

	stats.MonthlyStats = monthlyStats(userTxns, name, now)
	return stats
}

func monthlyStats(transactions []models.Transaction, name string, now time.Time) MonthlyStats {
	curMonth, curYear := now.Month(), now.Year()
	prevMonth, prevYear := curMonth-1, curYear
	if curMonth == time.January {
		prevMonth, prevYear = time.December, curYear-1
	}

	var current, last float64
	for _, t := range transactions {
		if t.PaidBy != name || t.Amount == nil {
			continue
		}
		switch {
		case t.Date.Month() == curMonth && t.Date.Year() == curYear:
			current += *t.Amount
		case t.Date.Month() == prevMonth && t.Date.Year() == prevYear:
			last += *t.Amount
		}
	}

	trend := TrendSame
	if current > last {
		trend = TrendUp
	} else if current < last {
		trend = TrendDown
	}
	return MonthlyStats{CurrentMonth: current, LastMonth: last, Trend: trend}
}
