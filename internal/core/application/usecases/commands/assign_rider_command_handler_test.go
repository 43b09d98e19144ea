package commands_test

import (
	"testing"
	"time"

	"okdelivery/internal/core/application/usecases/commands"
	"okdelivery/internal/core/domain/model/assignment"
	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/core/domain/model/ledger"
	"okdelivery/internal/core/domain/model/parcel"
	"okdelivery/internal/core/domain/services"
	"okdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssignRiderCommandHandler_Handle_DeliveryClassification(t *testing.T) {
	ctx := t.Context()

	testPackage := newTestPackage(t, parcel.ArrivedAtOffice)
	testRider := newTestRider(t, "Rahim Uddin")
	cmd, err := commands.NewAssignRiderCommand(testPackage.ID(), testRider.ID(), kernel.NewUUID())
	require.NoError(t, err)

	packageRepo := new(MockPackageRepository)
	riderRepo := new(MockRiderRepository)
	assignmentRepo := new(MockAssignmentRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockAssignUoW)
	hub := new(MockBroadcastHub)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(packageRepo).Once(),
		packageRepo.On("Get", ctx, testPackage.ID()).Return(testPackage, nil).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Get", ctx, testRider.ID()).Return(testRider, nil).Once(),
		uow.On("PackageRepository").Return(packageRepo).Once(),
		packageRepo.On("Update", ctx, mock.AnythingOfType("*parcel.Package")).Return(nil).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("GetOpenByPackageID", ctx, testPackage.ID()).
			Return([]*assignment.Assignment{}, nil).
			Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("Append", ctx, mock.AnythingOfType("*ledger.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		hub.On("PublishStatusChanged", ctx, mock.AnythingOfType("ports.StatusChangedEvent")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignRiderCommandHandler(factory, hub)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, services.Delivery, result.Classification)
	assert.Equal(t, "Rahim Uddin", result.RiderName)
	assert.Equal(t, parcel.AssignedToRider, result.Package.Status())
	require.NotNil(t, result.Package.CurrentRider())
	assert.True(t, result.Package.CurrentRider().IsEqual(testRider.ID()))
	require.NotNil(t, result.Package.AssignedAt())

	entry := ledgerRepo.Calls[0].Arguments[1].(*ledger.Entry)
	assert.Equal(t, "Assigned to rider Rahim Uddin for delivery", entry.Notes())
	assert.Equal(t, parcel.AssignedToRider, entry.Status())
	assert.Equal(t, ledger.ActorOffice, entry.ActorKind())

	packageRepo.AssertExpectations(t)
	riderRepo.AssertExpectations(t)
	assignmentRepo.AssertExpectations(t)
	ledgerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	hub.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAssignRiderCommandHandler_Handle_PickupClassification(t *testing.T) {
	ctx := t.Context()

	testPackage := newTestPackage(t, parcel.Registered)
	testRider := newTestRider(t, "Karim Mia")
	cmd, err := commands.NewAssignRiderCommand(testPackage.ID(), testRider.ID(), kernel.NewUUID())
	require.NoError(t, err)

	packageRepo := new(MockPackageRepository)
	riderRepo := new(MockRiderRepository)
	assignmentRepo := new(MockAssignmentRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockAssignUoW)
	hub := new(MockBroadcastHub)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(packageRepo).Once(),
		packageRepo.On("Get", ctx, testPackage.ID()).Return(testPackage, nil).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Get", ctx, testRider.ID()).Return(testRider, nil).Once(),
		uow.On("PackageRepository").Return(packageRepo).Once(),
		packageRepo.On("Update", ctx, mock.AnythingOfType("*parcel.Package")).Return(nil).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("GetOpenByPackageID", ctx, testPackage.ID()).
			Return([]*assignment.Assignment{}, nil).
			Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("Append", ctx, mock.AnythingOfType("*ledger.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		hub.On("PublishStatusChanged", ctx, mock.AnythingOfType("ports.StatusChangedEvent")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignRiderCommandHandler(factory, hub)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, services.Pickup, result.Classification)

	entry := ledgerRepo.Calls[0].Arguments[1].(*ledger.Entry)
	assert.Equal(t, "Assigned to rider Karim Mia for pickup", entry.Notes())
}

func TestAssignRiderCommandHandler_Handle_ReassignmentRevokesPriorRecord(t *testing.T) {
	ctx := t.Context()

	priorRiderID := kernel.NewUUID()
	testPackage := newTestPackage(t, parcel.AssignedToRider)
	testRider := newTestRider(t, "Karim Mia")
	cmd, err := commands.NewAssignRiderCommand(testPackage.ID(), testRider.ID(), kernel.NewUUID())
	require.NoError(t, err)

	priorRecord, err := assignment.NewAssignment(
		kernel.NewUUID(), testPackage.ID(), priorRiderID, kernel.NewUUID(), time.Now(),
	)
	require.NoError(t, err)

	packageRepo := new(MockPackageRepository)
	riderRepo := new(MockRiderRepository)
	assignmentRepo := new(MockAssignmentRepository)
	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockAssignUoW)
	hub := new(MockBroadcastHub)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(packageRepo).Once(),
		packageRepo.On("Get", ctx, testPackage.ID()).Return(testPackage, nil).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Get", ctx, testRider.ID()).Return(testRider, nil).Once(),
		uow.On("PackageRepository").Return(packageRepo).Once(),
		packageRepo.On("Update", ctx, mock.AnythingOfType("*parcel.Package")).Return(nil).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("GetOpenByPackageID", ctx, testPackage.ID()).
			Return([]*assignment.Assignment{priorRecord}, nil).
			Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("Update", ctx, priorRecord).Return(nil).Once(),
		uow.On("AssignmentRepository").Return(assignmentRepo).Once(),
		assignmentRepo.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("Append", ctx, mock.AnythingOfType("*ledger.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		hub.On("PublishStatusChanged", ctx, mock.AnythingOfType("ports.StatusChangedEvent")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignRiderCommandHandler(factory, hub)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, assignment.Revoked, priorRecord.Status())
	assert.True(t, result.Package.CurrentRider().IsEqual(testRider.ID()))

	newRecord := assignmentRepo.Calls[2].Arguments[1].(*assignment.Assignment)
	assert.Equal(t, assignment.Assigned, newRecord.Status())
	assert.True(t, newRecord.RiderID().IsEqual(testRider.ID()))
	assignmentRepo.AssertExpectations(t)
}

func TestAssignRiderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AssignRiderCommand{} // not constructed properly

	factory := new(MockAssignUoWFactory)
	hub := new(MockBroadcastHub)
	handler := commands.NewAssignRiderCommandHandler(factory, hub)

	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAssignRiderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAssignRiderCommandHandler_Handle_RiderNotFound(t *testing.T) {
	ctx := t.Context()

	testPackage := newTestPackage(t, parcel.ArrivedAtOffice)
	riderID := kernel.NewUUID()
	cmd, err := commands.NewAssignRiderCommand(testPackage.ID(), riderID, kernel.NewUUID())
	require.NoError(t, err)

	packageRepo := new(MockPackageRepository)
	riderRepo := new(MockRiderRepository)
	uow := new(MockAssignUoW)
	hub := new(MockBroadcastHub)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PackageRepository").Return(packageRepo).Once(),
		packageRepo.On("Get", ctx, testPackage.ID()).Return(testPackage, nil).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Get", ctx, riderID).Return(nil, errs.NewObjectNotFoundError("rider_id", riderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignRiderCommandHandler(factory, hub)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	hub.AssertNotCalled(t, "PublishStatusChanged")
	uow.AssertNotCalled(t, "Commit")
}
