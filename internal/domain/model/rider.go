package model

import "time"

// Rider maps an externally assigned rider ID to the payment provider's
// customer ID. The mapping is created lazily on the rider's first payment
// interaction and the provider customer ID never changes once set.
type Rider struct {
	ID                 string    `gorm:"primaryKey;size:100" json:"id"`
	ProviderCustomerID string    `gorm:"column:provider_customer_id;unique;not null;size:100" json:"provider_customer_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Rider) TableName() string {
	return "riders"
}
