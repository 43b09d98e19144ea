package commands_test

import (
	"errors"
	"testing"
	"time"

	"okdelivery/internal/core/application/usecases/commands"
	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/core/domain/model/ledger"
	"okdelivery/internal/core/domain/model/parcel"
	"okdelivery/internal/core/ports"
	"okdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testMerchant() ports.Merchant {
	return ports.Merchant{
		ID:              kernel.NewUUID(),
		BusinessName:    "Dhanmondi Books",
		BusinessAddress: "House 12, Road 2, Dhanmondi",
	}
}

func newMerchantPackage(t *testing.T, merchantID kernel.UUID, trackingCode string) *parcel.Package {
	t.Helper()

	pkg, err := parcel.NewPackage(kernel.NewUUID(), merchantID, trackingCode, time.Now())
	require.NoError(t, err)
	return pkg
}

func TestAssignMerchantPickupCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	merchant := testMerchant()
	testRider := newTestRider(t, "Rahim Uddin")
	pkg1 := newMerchantPackage(t, merchant.ID, "OK-2026-0101")
	pkg2 := newMerchantPackage(t, merchant.ID, "OK-2026-0102")
	pending := []*parcel.Package{pkg1, pkg2}

	cmd, err := commands.NewAssignMerchantPickupCommand(merchant.ID, testRider.ID(), kernel.NewUUID())
	require.NoError(t, err)

	packageRepo := new(MockPackageRepository)
	riderRepo := new(MockRiderRepository)
	assignmentRepo := new(MockAssignmentRepository)
	ledgerRepo := new(MockLedgerRepository)
	merchantRepo := new(MockMerchantRepository)
	uow := new(MockAssignUoW)
	hub := new(MockBroadcastHub)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MerchantRepository").Return(merchantRepo).Once(),
		merchantRepo.On("Get", ctx, merchant.ID).Return(merchant, nil).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Get", ctx, testRider.ID()).Return(testRider, nil).Once(),
		uow.On("PackageRepository").Return(packageRepo).Once(),
		packageRepo.On("GetAllByMerchantInStatus", ctx, merchant.ID, parcel.Registered).Return(pending, nil).Once(),
	)

	uow.On("PackageRepository").Return(packageRepo).Twice()
	packageRepo.On("Update", ctx, mock.AnythingOfType("*parcel.Package")).Return(nil).Twice()
	uow.On("AssignmentRepository").Return(assignmentRepo).Twice()
	assignmentRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Twice()
	uow.On("LedgerRepository").Return(ledgerRepo).Twice()
	ledgerRepo.On("Append", ctx, mock.AnythingOfType("*ledger.Entry")).Return(nil).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	hub.On("PublishStatusChanged", ctx, mock.AnythingOfType("ports.StatusChangedEvent")).Twice()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockAssignUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignMerchantPickupCommandHandler(factory, hub)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, merchant, result.Merchant)
	assert.Equal(t, "Rahim Uddin", result.RiderName)
	require.Len(t, result.AssignedIDs, 2)
	assert.Equal(t, parcel.AssignedToRider, pkg1.Status())
	assert.Equal(t, parcel.AssignedToRider, pkg2.Status())

	entry := ledgerRepo.Calls[0].Arguments[1].(*ledger.Entry)
	assert.Equal(t, "Assigned to rider Rahim Uddin for pickup from merchant Dhanmondi Books", entry.Notes())

	packageRepo.AssertExpectations(t)
	ledgerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	hub.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAssignMerchantPickupCommandHandler_Handle_NoPendingPackages(t *testing.T) {
	ctx := t.Context()

	merchant := testMerchant()
	testRider := newTestRider(t, "Karim Mia")

	cmd, err := commands.NewAssignMerchantPickupCommand(merchant.ID, testRider.ID(), kernel.NewUUID())
	require.NoError(t, err)

	packageRepo := new(MockPackageRepository)
	riderRepo := new(MockRiderRepository)
	merchantRepo := new(MockMerchantRepository)
	uow := new(MockAssignUoW)
	hub := new(MockBroadcastHub)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MerchantRepository").Return(merchantRepo).Once(),
		merchantRepo.On("Get", ctx, merchant.ID).Return(merchant, nil).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Get", ctx, testRider.ID()).Return(testRider, nil).Once(),
		uow.On("PackageRepository").Return(packageRepo).Once(),
		packageRepo.On("GetAllByMerchantInStatus", ctx, merchant.ID, parcel.Registered).
			Return([]*parcel.Package{}, nil).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignMerchantPickupCommandHandler(factory, hub)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrNoPendingPackages)
	uow.AssertNotCalled(t, "Commit")
	hub.AssertNotCalled(t, "PublishStatusChanged")
}

func TestAssignMerchantPickupCommandHandler_Handle_MerchantNotFound(t *testing.T) {
	ctx := t.Context()

	merchantID := kernel.NewUUID()
	cmd, err := commands.NewAssignMerchantPickupCommand(merchantID, kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	merchantRepo := new(MockMerchantRepository)
	uow := new(MockAssignUoW)
	hub := new(MockBroadcastHub)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MerchantRepository").Return(merchantRepo).Once(),
		merchantRepo.On("Get", ctx, merchantID).
			Return(ports.Merchant{}, errs.NewObjectNotFoundError("merchant_id", merchantID)).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignMerchantPickupCommandHandler(factory, hub)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAssignMerchantPickupCommandHandler_Handle_RollbackOnAnyFailure(t *testing.T) {
	ctx := t.Context()

	merchant := testMerchant()
	testRider := newTestRider(t, "Rahim Uddin")
	pkg1 := newMerchantPackage(t, merchant.ID, "OK-2026-0101")
	pkg2 := newMerchantPackage(t, merchant.ID, "OK-2026-0102")
	pending := []*parcel.Package{pkg1, pkg2}

	cmd, err := commands.NewAssignMerchantPickupCommand(merchant.ID, testRider.ID(), kernel.NewUUID())
	require.NoError(t, err)

	packageRepo := new(MockPackageRepository)
	riderRepo := new(MockRiderRepository)
	assignmentRepo := new(MockAssignmentRepository)
	ledgerRepo := new(MockLedgerRepository)
	merchantRepo := new(MockMerchantRepository)
	uow := new(MockAssignUoW)
	hub := new(MockBroadcastHub)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MerchantRepository").Return(merchantRepo).Once(),
		merchantRepo.On("Get", ctx, merchant.ID).Return(merchant, nil).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Get", ctx, testRider.ID()).Return(testRider, nil).Once(),
		uow.On("PackageRepository").Return(packageRepo).Once(),
		packageRepo.On("GetAllByMerchantInStatus", ctx, merchant.ID, parcel.Registered).Return(pending, nil).Once(),
	)

	// first package succeeds, second package's write fails
	uow.On("PackageRepository").Return(packageRepo).Twice()
	packageRepo.On("Update", ctx, pkg1).Return(nil).Once()
	packageRepo.On("Update", ctx, pkg2).Return(errors.New("update error")).Once()
	uow.On("AssignmentRepository").Return(assignmentRepo).Once()
	assignmentRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once()
	uow.On("LedgerRepository").Return(ledgerRepo).Once()
	ledgerRepo.On("Append", ctx, mock.AnythingOfType("*ledger.Entry")).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockAssignUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignMerchantPickupCommandHandler(factory, hub)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "update error")
	uow.AssertNotCalled(t, "Commit")
	hub.AssertNotCalled(t, "PublishStatusChanged")
}
