package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/splitease/splitease/internal/models"
	"github.com/splitease/splitease/internal/storage"
)

var (
	digitsOnly    = regexp.MustCompile(`^\d+$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
)

// Cards stores saved payment methods. Card numbers are validated inline and
// only the last four digits are retained.
type Cards struct {
	mu   sync.Mutex
	repo *storage.Repository
}

// NewCards creates a Cards service over repo.
func NewCards(repo *storage.Repository) *Cards {
	return &Cards{repo: repo}
}

// Save validates the card details and stores a new saved card. Validation
// failures are returned to the caller; nothing is persisted on failure.
func (c *Cards) Save(ctx context.Context, holder, number, expiry, cvv string) (models.SavedCard, error) {
	holder = strings.TrimSpace(holder)
	number = strings.ReplaceAll(strings.TrimSpace(number), " ", "")

	if holder == "" {
		return models.SavedCard{}, fmt.Errorf("cardholder name is required")
	}
	if len(number) != 16 || !digitsOnly.MatchString(number) {
		return models.SavedCard{}, fmt.Errorf("valid card number is required (16 digits)")
	}
	if !expiryPattern.MatchString(expiry) {
		return models.SavedCard{}, fmt.Errorf("expiry must be MM/YY")
	}
	if len(cvv) < 3 || len(cvv) > 4 || !digitsOnly.MatchString(cvv) {
		return models.SavedCard{}, fmt.Errorf("valid CVV is required")
	}

	card := models.SavedCard{
		ID:         uuid.New().String(),
		HolderName: holder,
		LastFour:   number[len(number)-4:],
		Expiry:     expiry,
		CardType:   cardType(number),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	cards, err := c.repo.SavedCards(ctx)
	if err != nil {
		return models.SavedCard{}, err
	}
	if err := c.repo.SaveSavedCards(ctx, append(cards, card)); err != nil {
		return models.SavedCard{}, err
	}
	slog.Info("card saved", "card_id", card.ID, "type", card.CardType, "last_four", card.LastFour)
	return card, nil
}

// List returns all saved cards.
func (c *Cards) List(ctx context.Context) ([]models.SavedCard, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.repo.SavedCards(ctx)
}

// Delete removes a saved card by id.
func (c *Cards) Delete(ctx context.Context, cardID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cards, err := c.repo.SavedCards(ctx)
	if err != nil {
		return err
	}
	kept := cards[:0]
	for _, card := range cards {
		if card.ID != cardID {
			kept = append(kept, card)
		}
	}
	return c.repo.SaveSavedCards(ctx, kept)
}

func cardType(number string) string {
	switch {
	case strings.HasPrefix(number, "4"):
		return "Visa"
	case strings.HasPrefix(number, "5"):
		return "Mastercard"
	case strings.HasPrefix(number, "34"), strings.HasPrefix(number, "37"):
		return "Amex"
	default:
		return "Card"
	}
}
