package models

import "time"

// Transaction is a single ledger entry: an expense, a settlement, or a
// group lifecycle marker.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string `json:"id"`

	// Type classifies the entry. Only expenses carry balance semantics.
	Type TransactionType `json:"type"`

	// Description is the human-readable label.
	Description string `json:"description"`

	// Amount is the full transaction amount. Absent on lifecycle entries;
	// transactions without an amount are excluded from all balance math.
	Amount *float64 `json:"amount,omitempty"`

	// PaidBy is the display name of the payer. Usually a member of
	// SplitBetween, but the data model does not enforce that.
	PaidBy string `json:"paidBy,omitempty"`

	// SplitBetween lists the members sharing the amount. Each share is
	// Amount / len(SplitBetween). An empty list means "no split data".
	SplitBetween []string `json:"splitBetween,omitempty"`

	// Date is when the transaction occurred.
	Date time.Time `json:"date"`

	// Status is the settlement state. The zero value is treated as pending.
	Status TransactionStatus `json:"status,omitempty"`

	// GroupName joins the transaction to a group by the group's name.
	// Empty for ungrouped (personal) transactions.
	GroupName string `json:"groupName,omitempty"`
}

// InSplit reports whether name is one of the members sharing this
// transaction. False when there is no split data.
func (t Transaction) InSplit(name string) bool {
	for _, m := range t.SplitBetween {
		if m == name {
			return true
		}
	}
	return false
}

// Settled reports whether the transaction is fully settled.
func (t Transaction) Settled() bool {
	return t.Status == StatusSettled
}
