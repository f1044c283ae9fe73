// Package calculator implements the balance engine: pure, deterministic
// functions that turn a transaction list into the current user's financial
// summary, per-group balances, and per-member balances.
//
// All money is floating-point. Every comparison of a balance against zero
// uses Epsilon to absorb drift.
package calculator

import (
	"time"

	"github.com/splitease/splitease/internal/models"
)

// Epsilon is the threshold below which a balance counts as settled.
const Epsilon = 0.01

// Summary computes the current user's financial summary over the full
// transaction list. Balances are all-time; monthly spending covers the
// calendar month of now.
//
// Rules per transaction (amount required, otherwise skipped):
//   - share = amount / len(splitBetween); an empty split contributes nothing.
//   - Monthly spending: user paid and settled -> share (their settled cost);
//     user paid and unsettled -> full amount (they fronted it); someone else
//     paid and settled -> share (effective cost once reconciled); someone
//     else paid and unsettled -> nothing has left the user's pocket yet.
//     A payment by the user with no split membership counts as a personal
//     expense at full amount.
//   - Balances: the others' share of an unsettled expense the user paid
//     accrues to YouAreOwed; the user's share of an unsettled expense
//     someone else paid accrues to YouOwe. Settled contributes zero.
func Summary(transactions []models.Transaction, currentUser string, now time.Time) models.FinancialSummary {
	month, year := now.Month(), now.Year()

	var youOwe, youAreOwed, monthlySpending float64
	for _, t := range transactions {
		if t.Amount == nil {
			continue
		}
		amount := *t.Amount
		inSplit := t.InSplit(currentUser)

		if t.Date.Month() == month && t.Date.Year() == year {
			switch {
			case inSplit:
				share := amount / float64(len(t.SplitBetween))
				switch {
				case t.PaidBy == currentUser && t.Settled():
					monthlySpending += share
				case t.PaidBy == currentUser:
					monthlySpending += amount
				case t.Settled():
					monthlySpending += share
				}
			case t.PaidBy == currentUser:
				// Personal expense, or payer left out of the split.
				monthlySpending += amount
			}
		}

		if inSplit && !t.Settled() {
			share := amount / float64(len(t.SplitBetween))
			if t.PaidBy == currentUser {
				if others := amount - share; others > 0 {
					youAreOwed += others
				}
			} else {
				youOwe += share
			}
		}
	}

	return models.FinancialSummary{
		TotalBalance:    youAreOwed - youOwe,
		YouOwe:          youOwe,
		YouAreOwed:      youAreOwed,
		MonthlySpending: monthlySpending,
	}
}
