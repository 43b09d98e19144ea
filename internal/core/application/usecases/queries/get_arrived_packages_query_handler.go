package queries

import (
	"context"

	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetArrivedPackagesQueryHandler reads the office pickup queue from the
// database, oldest first so the queue drains in arrival order.
type GetArrivedPackagesQueryHandler struct {
	db *gorm.DB
}

// NewGetArrivedPackagesQueryHandler creates a handler for office queue queries.
func NewGetArrivedPackagesQueryHandler(db *gorm.DB) GetArrivedPackagesQueryHandler {
	return GetArrivedPackagesQueryHandler{db: db}
}

// Handle lists packages in registered status.
func (h GetArrivedPackagesQueryHandler) Handle(
	ctx context.Context,
	query GetArrivedPackagesQuery,
) ([]PackageSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT
			p.id,
			p.tracking_code,
			p.status,
			m.business_name,
			p.created_at
		FROM packages p
		JOIN merchants m ON m.id = p.merchant_id
		WHERE p.status = ?`
	args := []any{parcel.Registered.String()}

	if query.MerchantID() != nil {
		sqlQuery += " AND p.merchant_id = ?"
		args = append(args, query.MerchantID().String())
	}
	sqlQuery += " ORDER BY p.created_at"

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	packages := make([]PackageSummaryResponse, 0)

	for rows.Next() {
		var item PackageSummaryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&item.TrackingCode,
			&item.Status,
			&item.MerchantName,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		item.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}

		packages = append(packages, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return packages, nil
}
