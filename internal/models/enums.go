package models

// TransactionType classifies ledger entries.
type TransactionType string

const (
	TypeExpense      TransactionType = "expense"
	TypeSettlement   TransactionType = "settlement"
	TypeGroupCreated TransactionType = "group_created"
	TypeGroupJoined  TransactionType = "group_joined"
)

// TransactionStatus tracks how far a transaction is from being settled.
// A settled transaction contributes zero to every outstanding-balance sum.
type TransactionStatus string

const (
	StatusPending          TransactionStatus = "pending"
	StatusSettled          TransactionStatus = "settled"
	StatusPartiallySettled TransactionStatus = "partially_settled"
)

// BalanceType conveys the direction of a balance from the current user's
// perspective. Balances themselves are stored as absolute values.
type BalanceType string

const (
	BalanceOwedToYou BalanceType = "owed_to_you"
	BalanceYouOwe    BalanceType = "you_owe"
	BalanceSettled   BalanceType = "settled"
)

// NotificationType classifies referral notifications.
type NotificationType string

const (
	NotificationReferralAccepted NotificationType = "referral_accepted"
	NotificationCashbackEarned   NotificationType = "cashback_earned"
)

// NotificationStatus is the read state of a notification.
type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

// BillFrequency is how often a recurring bill repeats.
type BillFrequency string

const (
	FrequencyWeekly  BillFrequency = "weekly"
	FrequencyMonthly BillFrequency = "monthly"
	FrequencyYearly  BillFrequency = "yearly"
)
