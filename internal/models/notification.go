package models

import "time"

// Notification records a referral event shown in the notification feed.
type Notification struct {
	ID      string             `json:"id"`
	Type    NotificationType   `json:"type"`
	Title   string             `json:"title"`
	Message string             `json:"message"`
	Amount  float64            `json:"amount"`
	Date    time.Time          `json:"date"`
	Status  NotificationStatus `json:"status"`
	Email   string             `json:"email,omitempty"`
}

// CashbackData aggregates referral earnings.
type CashbackData struct {
	TotalEarned   float64    `json:"totalEarned"`
	ReferralCount int        `json:"referralCount"`
	LastEarned    *time.Time `json:"lastEarned"`
}

// SavedCard is a stored payment method. Only the last four digits of the
// card number are retained.
type SavedCard struct {
	ID         string `json:"id"`
	HolderName string `json:"holderName"`
	LastFour   string `json:"lastFour"`
	Expiry     string `json:"expiry"` // MM/YY
	CardType   string `json:"cardType"`
}
