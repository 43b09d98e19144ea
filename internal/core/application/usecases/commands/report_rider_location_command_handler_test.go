package commands_test

import (
	"errors"
	"testing"
	"time"

	"okdelivery/internal/core/application/usecases/commands"
	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/core/domain/model/rider"
	"okdelivery/internal/core/ports"
	"okdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReportRiderLocationCommandHandler_Handle_PromotesOfflineRider(t *testing.T) {
	ctx := t.Context()

	testRider := newTestRider(t, "Rahim Uddin")
	require.Equal(t, rider.Offline, testRider.Status())

	position, err := kernel.NewGeoPoint(23.7808, 90.2792)
	require.NoError(t, err)

	packageID := kernel.NewUUID()
	speed := 6.4
	cmd, err := commands.NewReportRiderLocationCommand(
		testRider.ID(), position, &packageID, &speed, nil, time.Now(),
	)
	require.NoError(t, err)

	riderRepo := new(MockRiderRepository)
	locationLog := new(MockLocationLog)
	uow := new(MockRiderUoW)
	hub := new(MockBroadcastHub)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Get", ctx, testRider.ID()).Return(testRider, nil).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Update", ctx, mock.AnythingOfType("*rider.Rider")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		locationLog.On("Append", ctx, mock.AnythingOfType("ports.LocationRecord")).Return(nil).Once(),
		hub.On("PublishLocationUpdated", ctx, mock.AnythingOfType("ports.LocationUpdatedEvent")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRiderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReportRiderLocationCommandHandler(factory, locationLog, hub, testLogger())
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, rider.Available, updated.Status())
	require.NotNil(t, updated.Position())
	assert.True(t, updated.Position().IsEqual(position))
	require.NotNil(t, updated.LastLocationUpdate())

	record := locationLog.Calls[0].Arguments[1].(ports.LocationRecord)
	assert.True(t, record.RiderID.IsEqual(testRider.ID()))
	require.NotNil(t, record.PackageID)
	assert.InDelta(t, 23.7808, record.Latitude, 1e-9)
	assert.InDelta(t, 90.2792, record.Longitude, 1e-9)
	require.NotNil(t, record.Speed)
	assert.Nil(t, record.Heading)

	event := hub.Calls[0].Arguments[1].(ports.LocationUpdatedEvent)
	assert.True(t, event.RiderID.IsEqual(testRider.ID()))
	assert.InDelta(t, 23.7808, event.Latitude, 1e-9)

	riderRepo.AssertExpectations(t)
	locationLog.AssertExpectations(t)
	uow.AssertExpectations(t)
	hub.AssertExpectations(t)
}

func TestReportRiderLocationCommandHandler_Handle_HistoryFailureDoesNotFailRequest(t *testing.T) {
	ctx := t.Context()

	testRider := newTestRider(t, "Karim Mia")
	position, err := kernel.NewGeoPoint(23.8103, 90.4125)
	require.NoError(t, err)

	cmd, err := commands.NewReportRiderLocationCommand(
		testRider.ID(), position, nil, nil, nil, time.Now(),
	)
	require.NoError(t, err)

	riderRepo := new(MockRiderRepository)
	locationLog := new(MockLocationLog)
	uow := new(MockRiderUoW)
	hub := new(MockBroadcastHub)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Get", ctx, testRider.ID()).Return(testRider, nil).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Update", ctx, mock.AnythingOfType("*rider.Rider")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		locationLog.On("Append", ctx, mock.AnythingOfType("ports.LocationRecord")).
			Return(errors.New("insert error")).
			Once(),
		hub.On("PublishLocationUpdated", ctx, mock.AnythingOfType("ports.LocationUpdatedEvent")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRiderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReportRiderLocationCommandHandler(factory, locationLog, hub, testLogger())
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, rider.Available, updated.Status())
	hub.AssertExpectations(t)
}

func TestReportRiderLocationCommandHandler_Handle_RiderNotFound(t *testing.T) {
	ctx := t.Context()

	riderID := kernel.NewUUID()
	position, err := kernel.NewGeoPoint(23.7808, 90.2792)
	require.NoError(t, err)

	cmd, err := commands.NewReportRiderLocationCommand(riderID, position, nil, nil, nil, time.Now())
	require.NoError(t, err)

	riderRepo := new(MockRiderRepository)
	locationLog := new(MockLocationLog)
	uow := new(MockRiderUoW)
	hub := new(MockBroadcastHub)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Get", ctx, riderID).Return(nil, errs.NewObjectNotFoundError("rider_id", riderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRiderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReportRiderLocationCommandHandler(factory, locationLog, hub, testLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	locationLog.AssertNotCalled(t, "Append")
	hub.AssertNotCalled(t, "PublishLocationUpdated")
}

func TestReportRiderLocationCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ReportRiderLocationCommand{} // not constructed properly

	factory := new(MockRiderUoWFactory)
	handler := commands.NewReportRiderLocationCommandHandler(
		factory, new(MockLocationLog), new(MockBroadcastHub), testLogger(),
	)

	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrReportRiderLocationCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
