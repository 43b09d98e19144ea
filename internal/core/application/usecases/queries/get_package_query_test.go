package queries_test

import (
	"testing"

	"okdelivery/internal/core/application/usecases/queries"
	"okdelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetPackageQuery(t *testing.T) {
	packageID := kernel.NewUUID()

	query, err := queries.NewGetPackageQuery(packageID)

	require.NoError(t, err)
	assert.True(t, query.PackageID().IsEqual(packageID))
	require.NoError(t, query.Validate())
}

func TestNewGetPackageQuery_InvalidID(t *testing.T) {
	_, err := queries.NewGetPackageQuery(kernel.UUID{})

	require.Error(t, err)
}

func TestNewGetArrivedPackagesQuery(t *testing.T) {
	query, err := queries.NewGetArrivedPackagesQuery(nil)
	require.NoError(t, err)
	assert.Nil(t, query.MerchantID())

	merchantID := kernel.NewUUID()
	query, err = queries.NewGetArrivedPackagesQuery(&merchantID)
	require.NoError(t, err)
	require.NotNil(t, query.MerchantID())

	_, err = queries.NewGetArrivedPackagesQuery(&kernel.UUID{})
	require.Error(t, err)
}

func TestNewGetRiderLocationQuery(t *testing.T) {
	riderID := kernel.NewUUID()

	query, err := queries.NewGetRiderLocationQuery(riderID)

	require.NoError(t, err)
	assert.True(t, query.RiderID().IsEqual(riderID))

	_, err = queries.NewGetRiderLocationQuery(kernel.UUID{})
	require.Error(t, err)
}
