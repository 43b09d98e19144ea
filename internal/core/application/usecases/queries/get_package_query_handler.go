package queries

import (
	"context"
	"database/sql"

	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPackageQueryHandler reads the package detail view. Three queries: the
// package row with its relations, the status ledger, and the assignment
// history. Rider actor names are resolved by join; office actors have no
// user store in this service and keep an empty display name.
type GetPackageQueryHandler struct {
	db *gorm.DB
}

// NewGetPackageQueryHandler creates a handler for package detail queries.
func NewGetPackageQueryHandler(db *gorm.DB) GetPackageQueryHandler {
	return GetPackageQueryHandler{db: db}
}

// Handle loads the detail view. Returns an ObjectNotFoundError when the
// package id is unknown.
func (h GetPackageQueryHandler) Handle(
	ctx context.Context,
	query GetPackageQuery,
) (GetPackageQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPackageQueryResponse{}, err
	}

	response, err := h.loadPackage(ctx, query.PackageID())
	if err != nil {
		return GetPackageQueryResponse{}, err
	}

	response.History, err = h.loadHistory(ctx, query.PackageID())
	if err != nil {
		return GetPackageQueryResponse{}, err
	}

	response.Assignments, err = h.loadAssignments(ctx, query.PackageID())
	if err != nil {
		return GetPackageQueryResponse{}, err
	}

	return response, nil
}

func (h GetPackageQueryHandler) loadPackage(
	ctx context.Context,
	packageID kernel.UUID,
) (GetPackageQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.tracking_code,
			p.status,
			p.delivery_notes,
			m.business_name,
			m.business_address,
			r.name,
			p.assigned_at,
			p.created_at
		FROM packages p
		JOIN merchants m ON m.id = p.merchant_id
		LEFT JOIN riders r ON r.id = p.current_rider_id
		WHERE p.id = ?
	`, packageID.String()).Rows()
	if err != nil {
		return GetPackageQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetPackageQueryResponse{}, err
		}
		return GetPackageQueryResponse{}, errs.NewObjectNotFoundError("package_id", packageID)
	}

	var response GetPackageQueryResponse
	var id uuid.UUID
	var riderName sql.NullString
	var assignedAt sql.NullTime

	err = rows.Scan(
		&id,
		&response.TrackingCode,
		&response.Status,
		&response.DeliveryNotes,
		&response.MerchantName,
		&response.MerchantAddress,
		&riderName,
		&assignedAt,
		&response.CreatedAt,
	)
	if err != nil {
		return GetPackageQueryResponse{}, err
	}

	response.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetPackageQueryResponse{}, err
	}
	if riderName.Valid {
		response.RiderName = &riderName.String
	}
	if assignedAt.Valid {
		response.AssignedAt = &assignedAt.Time
	}

	return response, rows.Err()
}

func (h GetPackageQueryHandler) loadHistory(
	ctx context.Context,
	packageID kernel.UUID,
) ([]LedgerEntryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.status,
			l.actor_kind,
			COALESCE(r.name, ''),
			l.notes,
			l.latitude,
			l.longitude,
			l.created_at
		FROM status_ledger l
		LEFT JOIN riders r ON l.actor_kind = 'rider' AND r.id = l.actor_id
		WHERE l.package_id = ?
		ORDER BY l.created_at
	`, packageID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]LedgerEntryResponse, 0)

	for rows.Next() {
		var entry LedgerEntryResponse
		var latitude, longitude sql.NullFloat64

		err = rows.Scan(
			&entry.Status,
			&entry.ActorKind,
			&entry.ActorName,
			&entry.Notes,
			&latitude,
			&longitude,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if latitude.Valid {
			entry.Latitude = &latitude.Float64
		}
		if longitude.Valid {
			entry.Longitude = &longitude.Float64
		}

		history = append(history, entry)
	}

	return history, rows.Err()
}

func (h GetPackageQueryHandler) loadAssignments(
	ctx context.Context,
	packageID kernel.UUID,
) ([]AssignmentResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.rider_id,
			r.name,
			a.assigned_at,
			a.status
		FROM assignments a
		JOIN riders r ON r.id = a.rider_id
		WHERE a.package_id = ?
		ORDER BY a.assigned_at
	`, packageID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]AssignmentResponse, 0)

	for rows.Next() {
		var record AssignmentResponse
		var riderID uuid.UUID

		err = rows.Scan(
			&riderID,
			&record.RiderName,
			&record.AssignedAt,
			&record.Status,
		)
		if err != nil {
			return nil, err
		}

		record.RiderID, err = kernel.UUIDFromBytes(riderID[:])
		if err != nil {
			return nil, err
		}

		assignments = append(assignments, record)
	}

	return assignments, rows.Err()
}
