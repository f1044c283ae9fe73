package models

// GroupMember is a member entry with its per-group settled flag.
type GroupMember struct {
	Name    string `json:"name"`
	Settled bool   `json:"settled"`
}

// Group is a named collection of member display names plus derived
// aggregates.
//
// Members[0] is the creator/admin by convention; there is no explicit role
// field. TotalBalance and Expenses are caches owned by the calculator
// package.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name, also the join key for transactions.
	Name string `json:"name"`

	// Members is the list of participant display names.
	Members []string `json:"members"`

	// MemberDetails carries per-member settled flags when present.
	MemberDetails []GroupMember `json:"memberDetails,omitempty"`

	// TotalBalance is the current user's signed balance within the group.
	// Derived; recomputed after every mutation that can affect it.
	TotalBalance float64 `json:"totalBalance"`

	// MemberCount mirrors len(Members).
	MemberCount int `json:"memberCount"`

	// Avatar is the group picture URL.
	Avatar string `json:"avatar"`

	// Expenses is the cached list of this group's transactions. Derived.
	Expenses []Transaction `json:"expenses,omitempty"`
}

// HasMember reports whether name is in the group's member list.
func (g Group) HasMember(name string) bool {
	for _, m := range g.Members {
		if m == name {
			return true
		}
	}
	return false
}
