package models

import "time"

// RecurringBill is a scheduled repeating payment.
type RecurringBill struct {
	ID              string        `json:"id"`
	ReceiverName    string        `json:"receiverName"`
	Description     string        `json:"description"`
	Amount          float64       `json:"amount"`
	Frequency       BillFrequency `json:"frequency"`
	PaymentMethodID string        `json:"paymentMethodId"`

	// NextPaymentDate is advanced by one frequency interval each time the
	// bill is paid.
	NextPaymentDate time.Time  `json:"nextPaymentDate"`
	LastPaidDate    *time.Time `json:"lastPaidDate"`
	CreatedDate     time.Time  `json:"createdDate"`
	IsActive        bool       `json:"isActive"`
}
