package calculator

import (
	"math"

	"github.com/splitease/splitease/internal/models"
)

// GroupBalances recomputes every group's cached TotalBalance and Expenses
// from the transaction list. All groups are recomputed on every call since
// renames and history clears can cascade across groups.
//
// The returned slice holds copies; the inputs are never mutated.
func GroupBalances(transactions []models.Transaction, groups []models.Group, currentUser string) []models.Group {
	out := make([]models.Group, len(groups))
	for i, group := range groups {
		var groupTxns []models.Transaction
		for _, t := range transactions {
			if t.GroupName == group.Name {
				groupTxns = append(groupTxns, t)
			}
		}

		var userBalance float64
		for _, t := range groupTxns {
			if t.Amount == nil || !t.InSplit(currentUser) || t.Settled() {
				continue
			}
			share := *t.Amount / float64(len(t.SplitBetween))
			if t.PaidBy == currentUser {
				if others := *t.Amount - share; others > 0 {
					userBalance += others
				}
			} else {
				userBalance -= share
			}
		}

		group.TotalBalance = userBalance
		group.Expenses = groupTxns
		out[i] = group
	}
	return out
}

// MemberBalance is one group member's outstanding amount relative to the
// current user. Balance is an absolute value; direction is carried by
// BalanceType.
type MemberBalance struct {
	Name        string
	Balance     float64
	BalanceType models.BalanceType
}

// MemberBalances computes the pairwise balance between the current user and
// each member of the group. Only flows involving the current user are
// modeled: a member's share of an unsettled expense the user paid counts
// toward the member owing the user, and vice versa when the member paid.
// Money owed between two other members is not tracked. The current user's
// own entry always nets to settled.
func MemberBalances(group models.Group, transactions []models.Transaction, currentUser string) []MemberBalance {
	var groupTxns []models.Transaction
	for _, t := range transactions {
		if t.GroupName == group.Name {
			groupTxns = append(groupTxns, t)
		}
	}

	out := make([]MemberBalance, 0, len(group.Members))
	for _, member := range group.Members {
		var balance float64
		for _, t := range groupTxns {
			if t.Amount == nil || !t.InSplit(member) || t.Settled() {
				continue
			}
			share := *t.Amount / float64(len(t.SplitBetween))
			switch {
			case t.PaidBy == currentUser && member != currentUser:
				balance += share // member owes the current user
			case t.PaidBy == member && member != currentUser:
				balance -= share // current user owes this member
			}
		}

		balanceType := models.BalanceSettled
		if math.Abs(balance) >= Epsilon {
			if balance > 0 {
				balanceType = models.BalanceOwedToYou
			} else {
				balanceType = models.BalanceYouOwe
			}
		}

		out = append(out, MemberBalance{
			Name:        member,
			Balance:     math.Abs(balance),
			BalanceType: balanceType,
		})
	}
	return out
}
