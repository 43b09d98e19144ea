package queries

import (
	"context"
	"database/sql"

	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRiderLocationQueryHandler reads a rider's current position.
type GetRiderLocationQueryHandler struct {
	db *gorm.DB
}

// NewGetRiderLocationQueryHandler creates a handler for rider position queries.
func NewGetRiderLocationQueryHandler(db *gorm.DB) GetRiderLocationQueryHandler {
	return GetRiderLocationQueryHandler{db: db}
}

// Handle loads the rider's position. Returns an ObjectNotFoundError when the
// rider id is unknown.
func (h GetRiderLocationQueryHandler) Handle(
	ctx context.Context,
	query GetRiderLocationQuery,
) (GetRiderLocationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRiderLocationQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			latitude,
			longitude,
			last_location_update
		FROM riders
		WHERE id = ?
	`, query.RiderID().String()).Rows()
	if err != nil {
		return GetRiderLocationQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetRiderLocationQueryResponse{}, err
		}
		return GetRiderLocationQueryResponse{}, errs.NewObjectNotFoundError("rider_id", query.RiderID())
	}

	var response GetRiderLocationQueryResponse
	var id uuid.UUID
	var latitude, longitude sql.NullFloat64
	var lastUpdate sql.NullTime

	err = rows.Scan(
		&id,
		&response.Status,
		&latitude,
		&longitude,
		&lastUpdate,
	)
	if err != nil {
		return GetRiderLocationQueryResponse{}, err
	}

	response.RiderID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetRiderLocationQueryResponse{}, err
	}
	if latitude.Valid {
		response.Latitude = &latitude.Float64
	}
	if longitude.Valid {
		response.Longitude = &longitude.Float64
	}
	if lastUpdate.Valid {
		response.LastLocationUpdate = &lastUpdate.Time
	}

	return response, rows.Err()
}
