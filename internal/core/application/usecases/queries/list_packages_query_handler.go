package queries

import (
	"context"
	"database/sql"
	"strings"

	"okdelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListPackagesQueryHandler reads the package list with merchant and rider
// display names resolved in a single joined query.
type ListPackagesQueryHandler struct {
	db *gorm.DB
}

// NewListPackagesQueryHandler creates a handler for package list queries.
func NewListPackagesQueryHandler(db *gorm.DB) ListPackagesQueryHandler {
	return ListPackagesQueryHandler{db: db}
}

// Handle executes the filtered list query. Results are sorted newest first.
func (h ListPackagesQueryHandler) Handle(
	ctx context.Context,
	query ListPackagesQuery,
) (ListPackagesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListPackagesQueryResponse{}, err
	}

	where, args := buildPackageFilters(query.Filter())

	var total int64
	countErr := h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM packages p"+where, args...).
		Scan(&total).Error
	if countErr != nil {
		return ListPackagesQueryResponse{}, countErr
	}

	offset := (query.Page() - 1) * query.PerPage()
	listArgs := append(append([]any{}, args...), query.PerPage(), offset)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.tracking_code,
			p.status,
			m.business_name,
			r.name,
			p.assigned_at,
			p.created_at
		FROM packages p
		JOIN merchants m ON m.id = p.merchant_id
		LEFT JOIN riders r ON r.id = p.current_rider_id`+where+`
		ORDER BY p.created_at DESC
		LIMIT ? OFFSET ?
	`, listArgs...).Rows()
	if err != nil {
		return ListPackagesQueryResponse{}, err
	}
	defer rows.Close()

	items := make([]PackageSummaryResponse, 0, query.PerPage())

	for rows.Next() {
		var item PackageSummaryResponse
		var id uuid.UUID
		var riderName sql.NullString
		var assignedAt sql.NullTime

		err = rows.Scan(
			&id,
			&item.TrackingCode,
			&item.Status,
			&item.MerchantName,
			&riderName,
			&assignedAt,
			&item.CreatedAt,
		)
		if err != nil {
			return ListPackagesQueryResponse{}, err
		}

		packageID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return ListPackagesQueryResponse{}, idErr
		}
		item.ID = packageID

		if riderName.Valid {
			item.RiderName = &riderName.String
		}
		if assignedAt.Valid {
			item.AssignedAt = &assignedAt.Time
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return ListPackagesQueryResponse{}, err
	}

	return ListPackagesQueryResponse{
		Items:   items,
		Total:   total,
		Page:    query.Page(),
		PerPage: query.PerPage(),
	}, nil
}

// buildPackageFilters renders the optional filters into a WHERE clause and
// its positional arguments. The clause starts with a leading space.
func buildPackageFilters(filter ListPackagesFilter) (string, []any) {
	conditions := make([]string, 0, 5)
	args := make([]any, 0, 5)

	if filter.MerchantID != nil {
		conditions = append(conditions, "p.merchant_id = ?")
		args = append(args, filter.MerchantID.String())
	}
	if filter.Status != nil {
		conditions = append(conditions, "p.status = ?")
		args = append(args, filter.Status.String())
	}
	if filter.TrackingCode != "" {
		conditions = append(conditions, "p.tracking_code = ?")
		args = append(args, filter.TrackingCode)
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, "p.created_at >= ?")
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, "p.created_at <= ?")
		args = append(args, *filter.DateTo)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
