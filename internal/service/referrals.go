package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/splitease/splitease/internal/models"
	"github.com/splitease/splitease/internal/storage"
)

// referralBonus is the cashback earned per accepted referral.
const referralBonus = 10.0

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Referrals drives the invite-a-friend cashback flow: invites are
// acknowledged immediately and acceptance is simulated after a fixed delay.
type Referrals struct {
	mu    sync.Mutex
	repo  *storage.Repository
	delay time.Duration
	now   func() time.Time
}

// NewReferrals creates a Referrals service. delay is how long a simulated
// acceptance takes to land.
func NewReferrals(repo *storage.Repository, delay time.Duration) *Referrals {
	return &Referrals{repo: repo, delay: delay, now: time.Now}
}

// Invite validates the email and schedules a simulated acceptance. The
// acceptance timer cannot be cancelled once the invite is sent; its
// callback serializes against other referral mutations via the service
// mutex.
func (r *Referrals) Invite(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email address is required")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email address: %s", email)
	}

	slog.Info("referral invite sent", "email", email, "accept_delay", r.delay)
	time.AfterFunc(r.delay, func() {
		if err := r.accept(context.Background(), email); err != nil {
			slog.Error("referral acceptance failed", "email", email, "error", err)
		}
	})
	return nil
}

// accept records the referral: an unread notification plus the cashback
// bonus.
func (r *Referrals) accept(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	notifications, err := r.repo.Notifications(ctx)
	if err != nil {
		return err
	}
	notification := models.Notification{
		ID:      uuid.New().String(),
		Type:    models.NotificationReferralAccepted,
		Title:   "Referral Bonus",
		Message: fmt.Sprintf("%s has accepted your referral", email),
		Amount:  referralBonus,
		Date:    now,
		Status:  models.NotificationUnread,
		Email:   email,
	}
	if err := r.repo.SaveNotifications(ctx, append([]models.Notification{notification}, notifications...)); err != nil {
		return err
	}

	cashback, err := r.repo.Cashback(ctx)
	if err != nil {
		return err
	}
	cashback.TotalEarned += referralBonus
	cashback.ReferralCount++
	cashback.LastEarned = &now
	if err := r.repo.SaveCashback(ctx, cashback); err != nil {
		return err
	}

	slog.Info("referral accepted", "email", email, "total_earned", cashback.TotalEarned)
	return nil
}

// Notifications returns the notification feed, newest first.
func (r *Referrals) Notifications(ctx context.Context) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.repo.Notifications(ctx)
}

// UnreadCount returns the number of unread notifications.
func (r *Referrals) UnreadCount(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	notifications, err := r.repo.Notifications(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range notifications {
		if n.Status == models.NotificationUnread {
			count++
		}
	}
	return count, nil
}

// MarkRead flips the notification to read. Unknown ids are ignored.
func (r *Referrals) MarkRead(ctx context.Context, notificationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	notifications, err := r.repo.Notifications(ctx)
	if err != nil {
		return err
	}
	for i := range notifications {
		if notifications[i].ID == notificationID {
			notifications[i].Status = models.NotificationRead
		}
	}
	return r.repo.SaveNotifications(ctx, notifications)
}

// Cashback returns the aggregate referral earnings.
func (r *Referrals) Cashback(ctx context.Context) (models.CashbackData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.repo.Cashback(ctx)
}
