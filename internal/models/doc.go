// Package models defines the core domain models for SplitEase.
//
// # Identity and Joins
//
// Participants are identified by display-name strings: Transaction.PaidBy,
// Transaction.SplitBetween and Group.Members all hold user names, and
// transactions are joined to groups by Transaction.GroupName == Group.Name.
// Renaming the current user therefore requires a global rewrite pass over
// every transaction and group (see the service layer's RenameUser).
//
// # Derived Fields
//
// Group.TotalBalance and Group.Expenses are caches recomputed by the
// calculator package after every mutation that can affect them. They are
// never authoritative and must not be mutated outside that recomputation.
//
// # Serialization
//
// All models are persisted as JSON snapshots. Field tags mirror the stored
// schema; time.Time fields round-trip as RFC 3339 strings.
package models
