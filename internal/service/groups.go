package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/splitease/splitease/internal/calculator"
	"github.com/splitease/splitease/internal/models"
)

// ErrGroupNotFound is returned by group operations given an unknown id.
var ErrGroupNotFound = fmt.Errorf("group not found")

// AddGroup appends g to the group list. Member names are trimmed and
// deduplicated and the derived fields are reset; a brand-new group has no
// transactions, so no balance recompute is needed.
func (l *Ledger) AddGroup(ctx context.Context, g models.Group) (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	members := dedupeNames(g.Members)
	if len(members) == 0 {
		return nil, fmt.Errorf("group needs at least one member")
	}
	if g.Name == "" {
		return nil, fmt.Errorf("group name is required")
	}

	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.Avatar == "" {
		g.Avatar = randomAvatar()
	}
	g.Members = members
	g.MemberCount = len(members)
	g.MemberDetails = make([]models.GroupMember, len(members))
	for i, m := range members {
		g.MemberDetails[i] = models.GroupMember{Name: m}
	}
	g.TotalBalance = 0
	g.Expenses = nil

	snap.Groups = append(snap.Groups, g)
	if err := l.repo.SaveGroups(ctx, snap.Groups); err != nil {
		return nil, fmt.Errorf("persist groups: %w", err)
	}
	slog.Info("group added", "group_id", g.ID, "name", g.Name, "members", g.MemberCount)
	return snap, nil
}

// DeleteGroup removes the group and converts its transactions to ungrouped
// ones. The transactions themselves are kept.
func (l *Ledger) DeleteGroup(ctx context.Context, groupID string) (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	group, ok := findGroup(snap.Groups, groupID)
	if !ok {
		return nil, ErrGroupNotFound
	}

	kept := snap.Groups[:0]
	for _, g := range snap.Groups {
		if g.ID != groupID {
			kept = append(kept, g)
		}
	}
	snap.Groups = kept

	for i := range snap.Transactions {
		if snap.Transactions[i].GroupName == group.Name {
			snap.Transactions[i].GroupName = ""
		}
	}

	snap, err = l.commit(ctx, snap)
	if err != nil {
		return nil, err
	}
	slog.Info("group deleted", "group_id", groupID, "name", group.Name)
	return snap, nil
}

// DeleteAllGroups clears the group list and strips the group name from
// every transaction.
func (l *Ledger) DeleteAllGroups(ctx context.Context) (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	count := len(snap.Groups)
	snap.Groups = nil
	for i := range snap.Transactions {
		snap.Transactions[i].GroupName = ""
	}

	snap, err = l.commit(ctx, snap)
	if err != nil {
		return nil, err
	}
	slog.Info("all groups deleted", "count", count)
	return snap, nil
}

// RemoveMemberFromGroup removes member from the group's member list and
// from the split of every transaction in that group, then recomputes
// derived state.
func (l *Ledger) RemoveMemberFromGroup(ctx context.Context, groupID, member string) (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	var groupName string
	found := false
	for i := range snap.Groups {
		g := &snap.Groups[i]
		if g.ID != groupID {
			continue
		}
		found = true
		groupName = g.Name
		g.Members = removeName(g.Members, member)
		g.MemberCount = len(g.Members)
		details := g.MemberDetails[:0]
		for _, d := range g.MemberDetails {
			if d.Name != member {
				details = append(details, d)
			}
		}
		g.MemberDetails = details
		break
	}
	if !found {
		return nil, ErrGroupNotFound
	}

	for i := range snap.Transactions {
		t := &snap.Transactions[i]
		if t.GroupName == groupName {
			t.SplitBetween = removeName(t.SplitBetween, member)
		}
	}

	snap, err = l.commit(ctx, snap)
	if err != nil {
		return nil, err
	}
	slog.Info("member removed from group", "group_id", groupID, "member", member)
	return snap, nil
}

// MarkMemberAsSettled settles every unsettled transaction in the group
// whose split includes member, and flips the member's settled flag.
func (l *Ledger) MarkMemberAsSettled(ctx context.Context, groupID, member string) (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	var groupName string
	found := false
	for i := range snap.Groups {
		g := &snap.Groups[i]
		if g.ID != groupID {
			continue
		}
		found = true
		groupName = g.Name
		for j := range g.MemberDetails {
			if g.MemberDetails[j].Name == member {
				g.MemberDetails[j].Settled = true
			}
		}
		break
	}
	if !found {
		return nil, ErrGroupNotFound
	}

	settled := 0
	for i := range snap.Transactions {
		t := &snap.Transactions[i]
		if t.GroupName == groupName && !t.Settled() && t.InSplit(member) {
			t.Status = models.StatusSettled
			settled++
		}
	}

	snap, err = l.commit(ctx, snap)
	if err != nil {
		return nil, err
	}
	slog.Info("member settled", "group_id", groupID, "member", member, "transactions_settled", settled)
	return snap, nil
}

// ClearGroupActivity deletes every transaction belonging to the group and
// resets the group's derived caches.
func (l *Ledger) ClearGroupActivity(ctx context.Context, groupID string) (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	group, ok := findGroup(snap.Groups, groupID)
	if !ok {
		return nil, ErrGroupNotFound
	}

	kept := snap.Transactions[:0]
	removed := 0
	for _, t := range snap.Transactions {
		if t.GroupName == group.Name {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	snap.Transactions = kept

	snap, err = l.commit(ctx, snap)
	if err != nil {
		return nil, err
	}
	slog.Info("group activity cleared", "group_id", groupID, "transactions_removed", removed)
	return snap, nil
}

// MemberBalances computes the per-member balance breakdown for the group
// from the current user's perspective.
func (l *Ledger) MemberBalances(ctx context.Context, groupID string) ([]calculator.MemberBalance, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	group, ok := findGroup(snap.Groups, groupID)
	if !ok {
		return nil, ErrGroupNotFound
	}
	return calculator.MemberBalances(group, snap.Transactions, snap.User.Name), nil
}

// Statistics derives the profile statistics block for the current user.
func (l *Ledger) Statistics(ctx context.Context) (calculator.UserStatistics, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap, err := l.load(ctx)
	if err != nil {
		return calculator.UserStatistics{}, err
	}
	return calculator.Statistics(*snap.User, snap.Transactions, snap.Groups, l.now()), nil
}

func findGroup(groups []models.Group, id string) (models.Group, bool) {
	for _, g := range groups {
		if g.ID == id {
			return g, true
		}
	}
	return models.Group{}, false
}

// dedupeNames trims and deduplicates member names, preserving order.
func dedupeNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func removeName(names []string, name string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
