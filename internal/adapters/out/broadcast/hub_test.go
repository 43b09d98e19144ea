package broadcast_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"okdelivery/internal/adapters/out/broadcast"
	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink captures every event it receives and can be configured to
// fail or panic.
type recordingSink struct {
	name      string
	failWith  error
	panicWith any

	statusEvents   []ports.StatusChangedEvent
	locationEvents []ports.LocationUpdatedEvent
}

func (s *recordingSink) Name() string {
	return s.name
}

func (s *recordingSink) StatusChanged(_ context.Context, event ports.StatusChangedEvent) error {
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	if s.failWith != nil {
		return s.failWith
	}
	s.statusEvents = append(s.statusEvents, event)
	return nil
}

func (s *recordingSink) LocationUpdated(_ context.Context, event ports.LocationUpdatedEvent) error {
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	if s.failWith != nil {
		return s.failWith
	}
	s.locationEvents = append(s.locationEvents, event)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func statusEvent() ports.StatusChangedEvent {
	return ports.StatusChangedEvent{
		PackageID:  kernel.NewUUID(),
		Status:     "assigned_to_rider",
		MerchantID: kernel.NewUUID(),
	}
}

func locationEvent() ports.LocationUpdatedEvent {
	return ports.LocationUpdatedEvent{
		RiderID:   kernel.NewUUID(),
		Latitude:  23.8103,
		Longitude: 90.4125,
		SentAt:    time.Now(),
	}
}

func TestHub_PublishStatusChanged_DeliversToAllSinks(t *testing.T) {
	first := &recordingSink{name: "first"}
	second := &recordingSink{name: "second"}
	hub, err := broadcast.NewHub(testLogger(), first, second)
	require.NoError(t, err)

	event := statusEvent()
	hub.PublishStatusChanged(context.Background(), event)

	require.Len(t, first.statusEvents, 1)
	require.Len(t, second.statusEvents, 1)
	assert.Equal(t, event, first.statusEvents[0])
	assert.Equal(t, event, second.statusEvents[0])
}

func TestHub_FailingSink_DoesNotAffectOthers(t *testing.T) {
	failing := &recordingSink{name: "failing", failWith: errors.New("connection refused")}
	healthy := &recordingSink{name: "healthy"}
	hub, err := broadcast.NewHub(testLogger(), failing, healthy)
	require.NoError(t, err)

	hub.PublishStatusChanged(context.Background(), statusEvent())
	hub.PublishLocationUpdated(context.Background(), locationEvent())

	assert.Len(t, healthy.statusEvents, 1)
	assert.Len(t, healthy.locationEvents, 1)
}

func TestHub_PanickingSink_DoesNotAffectOthers(t *testing.T) {
	panicking := &recordingSink{name: "panicking", panicWith: "boom"}
	healthy := &recordingSink{name: "healthy"}
	hub, err := broadcast.NewHub(testLogger(), panicking, healthy)
	require.NoError(t, err)

	require.NotPanics(t, func() {
		hub.PublishStatusChanged(context.Background(), statusEvent())
	})

	assert.Len(t, healthy.statusEvents, 1)
}

func TestHub_NoSinks_IsANoOp(t *testing.T) {
	hub, err := broadcast.NewHub(testLogger())
	require.NoError(t, err)

	require.NotPanics(t, func() {
		hub.PublishStatusChanged(context.Background(), statusEvent())
		hub.PublishLocationUpdated(context.Background(), locationEvent())
	})
}

func TestHub_NilLogger_ReturnsError(t *testing.T) {
	hub, err := broadcast.NewHub(nil)

	assert.Nil(t, hub)
	assert.Error(t, err)
}
