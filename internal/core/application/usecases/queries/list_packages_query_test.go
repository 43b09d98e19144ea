package queries_test

import (
	"testing"
	"time"

	"okdelivery/internal/core/application/usecases/queries"
	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/core/domain/model/parcel"
	"okdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListPackagesQuery_Defaults(t *testing.T) {
	query, err := queries.NewListPackagesQuery(queries.ListPackagesFilter{}, 1, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, query.Page())
	assert.Equal(t, 20, query.PerPage())
	require.NoError(t, query.Validate())
}

func TestNewListPackagesQuery_WithFilters(t *testing.T) {
	merchantID := kernel.NewUUID()
	status := parcel.InTransit
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)

	query, err := queries.NewListPackagesQuery(queries.ListPackagesFilter{
		MerchantID:   &merchantID,
		Status:       &status,
		TrackingCode: "OK-2026-0001",
		DateFrom:     &from,
		DateTo:       &to,
	}, 3, 50)

	require.NoError(t, err)
	assert.Equal(t, 3, query.Page())
	assert.Equal(t, 50, query.PerPage())
	require.NotNil(t, query.Filter().MerchantID)
	assert.Equal(t, "OK-2026-0001", query.Filter().TrackingCode)
}

func TestNewListPackagesQuery_InvalidPagination(t *testing.T) {
	_, err := queries.NewListPackagesQuery(queries.ListPackagesFilter{}, 0, 20)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewListPackagesQuery(queries.ListPackagesFilter{}, 1, 500)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewListPackagesQuery_InvalidStatusFilter(t *testing.T) {
	status := parcel.Unknown

	_, err := queries.NewListPackagesQuery(queries.ListPackagesFilter{Status: &status}, 1, 20)

	require.Error(t, err)
}

func TestListPackagesQuery_Validate_NotConstructed(t *testing.T) {
	var query queries.ListPackagesQuery

	err := query.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, queries.ErrListPackagesQueryIsNotConstructed)
}
