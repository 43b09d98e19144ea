// Package queries contains the read side of the CQRS split. Query handlers
// bypass the domain model and read display-shaped rows straight from the
// database with raw SQL.
package queries

import (
	"errors"
	"time"

	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/core/domain/model/parcel"
	"okdelivery/internal/pkg/errs"
	"okdelivery/internal/pkg/guard"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

var ErrListPackagesQueryIsNotConstructed = errors.New(
	"ListPackagesQuery must be created via NewListPackagesQuery constructor",
)

// ListPackagesQuery retrieves a filtered, paginated page of packages for the
// office dashboard. All filters are optional and combine with AND.
//
// Example:
//
//	status := parcel.InTransit
//	query, err := NewListPackagesQuery(ListPackagesFilter{Status: &status}, 1, 50)
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, query)
type ListPackagesQuery struct {
	filter  ListPackagesFilter
	page    int
	perPage int

	guard guard.ConstructorGuard
}

// ListPackagesFilter narrows the package list. Zero values mean "no filter".
type ListPackagesFilter struct {
	MerchantID   *kernel.UUID
	Status       *parcel.Status
	TrackingCode string
	DateFrom     *time.Time
	DateTo       *time.Time
}

// NewListPackagesQuery creates a package list query. Page numbers start at 1;
// a perPage of 0 selects the default page size.
func NewListPackagesQuery(filter ListPackagesFilter, page, perPage int) (ListPackagesQuery, error) {
	if page < 1 {
		return ListPackagesQuery{}, errs.NewValueIsOutOfRangeError("page", page, 1, "unbounded")
	}
	if perPage == 0 {
		perPage = defaultPerPage
	}
	if perPage < 1 || perPage > maxPerPage {
		return ListPackagesQuery{}, errs.NewValueIsOutOfRangeError("per_page", perPage, 1, maxPerPage)
	}

	if filter.MerchantID != nil {
		if err := filter.MerchantID.Validate(); err != nil {
			return ListPackagesQuery{}, err
		}
	}
	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			return ListPackagesQuery{}, err
		}
	}

	return ListPackagesQuery{
		filter:  filter,
		page:    page,
		perPage: perPage,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListPackagesQuery) Validate() error {
	return q.guard.Validate(ErrListPackagesQueryIsNotConstructed)
}

// Filter returns the active list filters.
func (q ListPackagesQuery) Filter() ListPackagesFilter {
	return q.filter
}

// Page returns the 1-based page number.
func (q ListPackagesQuery) Page() int {
	return q.page
}

// PerPage returns the page size.
func (q ListPackagesQuery) PerPage() int {
	return q.perPage
}

// PackageSummaryResponse is one row of the package list, with display names
// already resolved.
type PackageSummaryResponse struct {
	ID           kernel.UUID
	TrackingCode string
	Status       string
	MerchantName string
	RiderName    *string
	AssignedAt   *time.Time
	CreatedAt    time.Time
}

// ListPackagesQueryResponse is one page of the package list.
type ListPackagesQueryResponse struct {
	Items   []PackageSummaryResponse
	Total   int64
	Page    int
	PerPage int
}
