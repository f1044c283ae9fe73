package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/splitease/splitease/internal/models"
)

// Word lists for generated display names, color + animal.
var (
	nameColors = []string{
		"Amber", "Azure", "Copper", "Coral", "Crimson", "Emerald", "Golden",
		"Indigo", "Ivory", "Jade", "Lavender", "Maroon", "Olive", "Pearl",
		"Ruby", "Saffron", "Scarlet", "Silver", "Teal", "Violet",
	}
	nameAnimals = []string{
		"Badger", "Dolphin", "Falcon", "Gazelle", "Heron", "Ibis", "Jaguar",
		"Koala", "Lemur", "Lynx", "Magpie", "Marmot", "Narwhal", "Ocelot",
		"Otter", "Panda", "Pelican", "Puffin", "Quokka", "Raven",
	}
)

// GenerateUsername returns a random color+animal display name.
func GenerateUsername() string {
	return nameColors[rand.IntN(len(nameColors))] + nameAnimals[rand.IntN(len(nameAnimals))]
}

func randomAvatar() string {
	return fmt.Sprintf("https://i.pravatar.cc/150?img=%d", rand.IntN(70)+1)
}

func emailFor(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "")) + "@example.com"
}

// NewUser creates a first-time user with a generated identity.
func NewUser() *models.User {
	name := GenerateUsername()
	return &models.User{
		ID:     uuid.New().String(),
		Name:   name,
		Email:  emailFor(name),
		Avatar: randomAvatar(),
	}
}

// RenameUser changes the current user's display name and rewrites every
// reference to the old name across transactions (PaidBy, SplitBetween) and
// groups (Members, MemberDetails), then recomputes derived state and
// persists everything. The rename is a label change only: recomputing the
// summary under the new name yields the same numbers as before.
func (l *Ledger) RenameUser(ctx context.Context, newName string) (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, fmt.Errorf("name is required")
	}

	snap, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	oldName := snap.User.Name
	if newName == oldName {
		return snap, nil
	}

	for i := range snap.Transactions {
		t := &snap.Transactions[i]
		if t.PaidBy == oldName {
			t.PaidBy = newName
		}
		for j, m := range t.SplitBetween {
			if m == oldName {
				t.SplitBetween[j] = newName
			}
		}
	}
	for i := range snap.Groups {
		g := &snap.Groups[i]
		for j, m := range g.Members {
			if m == oldName {
				g.Members[j] = newName
			}
		}
		for j := range g.MemberDetails {
			if g.MemberDetails[j].Name == oldName {
				g.MemberDetails[j].Name = newName
			}
		}
	}

	snap.User.Name = newName
	snap.User.Email = emailFor(newName)

	if err := l.repo.SaveUser(ctx, snap.User); err != nil {
		return nil, fmt.Errorf("persist user: %w", err)
	}
	snap, err = l.commit(ctx, snap)
	if err != nil {
		return nil, err
	}
	slog.Info("user renamed", "old_name", oldName, "new_name", newName)
	return snap, nil
}

// UpdateUser replaces the stored profile without touching the name-based
// joins. Renames must go through RenameUser.
func (l *Ledger) UpdateUser(ctx context.Context, email, avatar string) (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	if email != "" {
		snap.User.Email = email
	}
	if avatar != "" {
		snap.User.Avatar = avatar
	}
	if err := l.repo.SaveUser(ctx, snap.User); err != nil {
		return nil, fmt.Errorf("persist user: %w", err)
	}
	return snap, nil
}
