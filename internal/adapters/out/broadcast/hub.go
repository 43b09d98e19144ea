// Package broadcast fans committed domain events out to downstream sinks.
//
// The hub never reports failure to its caller. Each sink call runs under its
// own bounded context and panic guard, so one slow or broken sink cannot
// affect another sink or the request that published the event. A hub with no
// sinks is a valid no-op configuration.
package broadcast

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"okdelivery/internal/core/ports"
)

const sinkTimeout = 3 * time.Second

// Sink receives broadcast events. Implementations must be safe for
// concurrent use.
type Sink interface {
	Name() string
	StatusChanged(ctx context.Context, event ports.StatusChangedEvent) error
	LocationUpdated(ctx context.Context, event ports.LocationUpdatedEvent) error
}

// Hub implements ports.BroadcastHub over a fixed set of sinks injected at
// construction.
type Hub struct {
	sinks  []Sink
	logger *slog.Logger
}

// NewHub creates a Hub. An empty sink list is allowed.
func NewHub(logger *slog.Logger, sinks ...Sink) (*Hub, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &Hub{
		sinks:  sinks,
		logger: logger.With("component", "broadcast_hub"),
	}, nil
}

// PublishStatusChanged delivers a status-change event to every sink.
func (h *Hub) PublishStatusChanged(ctx context.Context, event ports.StatusChangedEvent) {
	for _, sink := range h.sinks {
		h.deliver(ctx, sink, "status_changed", func(sinkCtx context.Context) error {
			return sink.StatusChanged(sinkCtx, event)
		})
	}
}

// PublishLocationUpdated delivers a location-update event to every sink.
func (h *Hub) PublishLocationUpdated(ctx context.Context, event ports.LocationUpdatedEvent) {
	for _, sink := range h.sinks {
		h.deliver(ctx, sink, "location_updated", func(sinkCtx context.Context) error {
			return sink.LocationUpdated(sinkCtx, event)
		})
	}
}

// deliver runs one sink call under a bounded context and a panic guard.
func (h *Hub) deliver(ctx context.Context, sink Sink, eventKind string, call func(ctx context.Context) error) {
	sinkCtx, cancel := context.WithTimeout(ctx, sinkTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			h.logger.ErrorContext(ctx, "broadcast sink panicked",
				"sink", sink.Name(),
				"event", eventKind,
				"panic", r)
		}
	}()

	if err := call(sinkCtx); err != nil {
		h.logger.ErrorContext(ctx, "broadcast sink failed",
			"sink", sink.Name(),
			"event", eventKind,
			"error", err)
	}
}
