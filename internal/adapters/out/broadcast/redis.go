package broadcast

import (
	"context"
	"encoding/json"
	"fmt"

	"okdelivery/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// redisEnvelope wraps a payload with its event kind so channel consumers can
// distinguish status changes from location updates.
type redisEnvelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

const (
	redisEventStatusChanged   = "package.status_changed"
	redisEventLocationUpdated = "rider.location_updated"
)

// RedisSink publishes events to a Redis pub/sub channel. The external tracker
// service subscribes to this channel and re-broadcasts to its connected
// viewers.
type RedisSink struct {
	client  redis.UniversalClient
	channel string
}

// NewRedisSink creates a RedisSink publishing to the given channel.
func NewRedisSink(client redis.UniversalClient, channel string) (*RedisSink, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if channel == "" {
		return nil, fmt.Errorf("redis channel is required")
	}

	return &RedisSink{client: client, channel: channel}, nil
}

func (s *RedisSink) Name() string {
	return "redis"
}

func (s *RedisSink) StatusChanged(ctx context.Context, event ports.StatusChangedEvent) error {
	return s.publish(ctx, redisEventStatusChanged, statusPayload{
		PackageID:  event.PackageID.String(),
		Status:     event.Status,
		MerchantID: event.MerchantID.String(),
	})
}

func (s *RedisSink) LocationUpdated(ctx context.Context, event ports.LocationUpdatedEvent) error {
	payload := locationPayload{
		RiderID:   event.RiderID.String(),
		Latitude:  event.Latitude,
		Longitude: event.Longitude,
		SentAt:    event.SentAt,
	}
	if event.PackageID != nil {
		id := event.PackageID.String()
		payload.PackageID = &id
	}

	return s.publish(ctx, redisEventLocationUpdated, payload)
}

func (s *RedisSink) publish(ctx context.Context, kind string, payload any) error {
	message, err := json.Marshal(redisEnvelope{Event: kind, Data: payload})
	if err != nil {
		return fmt.Errorf("marshal redis payload: %w", err)
	}

	if err := s.client.Publish(ctx, s.channel, message).Err(); err != nil {
		return fmt.Errorf("publish to redis channel %q: %w", s.channel, err)
	}
	return nil
}
