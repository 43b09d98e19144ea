// Package merchantrepo provides the read-only merchant lookup. Merchant
// management lives in a separate system sharing the database; this service
// only resolves display fields.
package merchantrepo

import (
	"context"
	"errors"

	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/core/ports"
	"okdelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MerchantDTO represents the database structure for merchant rows.
type MerchantDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessName    string
	BusinessAddress string
}

// TableName specifies the database table name for merchant rows.
func (MerchantDTO) TableName() string {
	return "merchants"
}

// GormMerchantRepository implements MerchantRepository using GORM.
type GormMerchantRepository struct {
	db *gorm.DB
}

// NewGormMerchantRepository creates a new GORM merchant repository.
func NewGormMerchantRepository(db *gorm.DB) *GormMerchantRepository {
	return &GormMerchantRepository{db: db}
}

// Get retrieves a merchant by ID.
func (r *GormMerchantRepository) Get(ctx context.Context, id kernel.UUID) (ports.Merchant, error) {
	if err := id.Validate(); err != nil {
		return ports.Merchant{}, err
	}

	var dto MerchantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Merchant{}, errs.NewObjectNotFoundError("merchant", id.String())
		}
		return ports.Merchant{}, err
	}

	merchantID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Merchant{}, err
	}

	return ports.Merchant{
		ID:              merchantID,
		BusinessName:    dto.BusinessName,
		BusinessAddress: dto.BusinessAddress,
	}, nil
}
