package model

import "time"

// PaymentStatus represents the final status of a charge attempt
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusSucceeded PaymentStatus = "SUCCEEDED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// Payment is the audit record of a single charge attempt for a trip.
// Exactly one row exists per trip. Rows are written once at the end of the
// charge workflow and never updated or deleted afterward.
type Payment struct {
	ID                      int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	TripID                  int64         `gorm:"column:trip_id;unique;not null" json:"trip_id"`
	RiderID                 string        `gorm:"column:rider_id;not null;index;size:100" json:"rider_id"`
	ProviderPaymentIntentID *string       `gorm:"column:provider_payment_intent_id;unique;size:100" json:"provider_payment_intent_id,omitempty"`
	AmountCents             int64         `gorm:"column:amount_cents;not null" json:"amount_cents"`
	Currency                string        `gorm:"size:3" json:"currency"`
	Status                  PaymentStatus `gorm:"size:20;not null" json:"status"`
	CreatedAt               time.Time     `json:"created_at"`
	UpdatedAt               time.Time     `json:"updated_at"`

	// Relations
	Rider *Rider `gorm:"foreignKey:RiderID" json:"rider,omitempty"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}
