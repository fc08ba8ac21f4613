package model

import "time"

// PaymentMethod is a card the rider registered with the payment provider.
// Rows are created only by the webhook flow after the provider confirms the
// setup, and are never deleted.
type PaymentMethod struct {
	ID                      int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RiderID                 string    `gorm:"column:rider_id;not null;index;size:100" json:"rider_id"`
	ProviderPaymentMethodID string    `gorm:"column:provider_payment_method_id;unique;not null;size:100" json:"provider_payment_method_id"`
	Brand                   string    `gorm:"size:50" json:"brand"`
	Last4                   string    `gorm:"size:4" json:"last4"`
	IsDefault               bool      `gorm:"column:is_default;default:false" json:"is_default"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`

	// Relations
	Rider *Rider `gorm:"foreignKey:RiderID" json:"rider,omitempty"`
}

// TableName specifies the table name for GORM
func (PaymentMethod) TableName() string {
	return "payment_methods"
}
