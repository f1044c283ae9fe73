package models

// User is the single local account. Exactly one user exists per dataset.
//
// Name doubles as the identity join key across transactions and groups, so
// it must stay unique within the local dataset; renames go through the
// service layer's rewrite pass, never through direct assignment.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Name is the display name, used as the balance join key.
	Name string `json:"name"`

	// Email is derived from the name for generated users.
	Email string `json:"email"`

	// Avatar is a profile picture URL.
	Avatar string `json:"avatar"`
}

// FinancialSummary is the current user's derived financial position. It is
// recomputed wholesale from the transaction list on every mutation.
type FinancialSummary struct {
	// TotalBalance is always YouAreOwed - YouOwe.
	TotalBalance float64 `json:"totalBalance"`

	// YouOwe is the user's unsettled share of expenses others paid.
	YouOwe float64 `json:"youOwe"`

	// YouAreOwed is the unsettled share others owe on expenses the user paid.
	YouAreOwed float64 `json:"youAreOwed"`

	// MonthlySpending is the user's effective spend in the current
	// calendar month.
	MonthlySpending float64 `json:"monthlySpending"`
}

// Friend is a simplified contact view. Its Balance is written when the
// friend is added and is not reconciled against transaction-derived
// balances; the two can drift apart.
type Friend struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Balance     float64     `json:"balance"`
	BalanceType BalanceType `json:"balanceType"`
	Avatar      string      `json:"avatar"`
}
