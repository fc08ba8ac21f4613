package repository

import (
	"context"
	"errors"

	"github.com/ridewave/payment-service/internal/domain/model"
	"github.com/ridewave/payment-service/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type paymentMethodRepository struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) repository.PaymentMethodRepository {
	return &paymentMethodRepository{
		db: db,
	}
}

func (r *paymentMethodRepository) GetChargeable(ctx context.Context, riderID string) (*model.PaymentMethod, error) {
	var method model.PaymentMethod
	err := r.db.WithContext(ctx).
		Where("rider_id = ?", riderID).
		Order("is_default DESC, created_at DESC").
		First(&method).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &method, nil
}

func (r *paymentMethodRepository) ListByRider(ctx context.Context, riderID string) ([]*model.PaymentMethod, error) {
	var methods []*model.PaymentMethod
	err := r.db.WithContext(ctx).
		Where("rider_id = ?", riderID).
		Order("is_default DESC, created_at DESC").
		Find(&methods).Error
	if err != nil {
		return nil, err
	}
	return methods, nil
}

// SaveAsDefault demotes the rider's current default and inserts the new
// method as default in one transaction. When the method already exists the
// insert conflicts on the provider payment method ID and only the default
// flag is restored, so a redelivered notification leaves the same state
// behind.
func (r *paymentMethodRepository) SaveAsDefault(ctx context.Context, method *model.PaymentMethod) error {
	method.IsDefault = true
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.PaymentMethod{}).
			Where("rider_id = ? AND is_default = ?", method.RiderID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider_payment_method_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"is_default": true}),
		}).Create(method).Error
	})
}
