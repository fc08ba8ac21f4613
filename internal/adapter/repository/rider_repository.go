package repository

import (
	"context"
	"errors"

	"github.com/ridewave/payment-service/internal/domain/model"
	"github.com/ridewave/payment-service/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type riderRepository struct {
	db *gorm.DB
}

func NewRiderRepository(db *gorm.DB) repository.RiderRepository {
	return &riderRepository{
		db: db,
	}
}

func (r *riderRepository) GetByID(ctx context.Context, riderID string) (*model.Rider, error) {
	var rider model.Rider
	err := r.db.WithContext(ctx).Where("id = ?", riderID).First(&rider).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rider, nil
}

func (r *riderRepository) GetByProviderCustomerID(ctx context.Context, providerCustomerID string) (*model.Rider, error) {
	var rider model.Rider
	err := r.db.WithContext(ctx).Where("provider_customer_id = ?", providerCustomerID).First(&rider).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rider, nil
}

// CreateIfAbsent relies on the primary key conflict target so that two
// concurrent first-use requests for the same rider insert exactly one row.
func (r *riderRepository) CreateIfAbsent(ctx context.Context, rider *model.Rider) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(rider)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
