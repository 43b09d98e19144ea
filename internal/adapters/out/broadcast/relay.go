package broadcast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"okdelivery/internal/core/ports"
)

// statusPayload is the wire form of a status-change event.
type statusPayload struct {
	PackageID  string `json:"package_id"`
	Status     string `json:"status"`
	MerchantID string `json:"merchant_id"`
}

// locationPayload is the wire form of a location-update event.
type locationPayload struct {
	RiderID   string    `json:"rider_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	PackageID *string   `json:"package_id,omitempty"`
	SentAt    time.Time `json:"sent_at"`
}

// RelaySink pushes events to an externally deployed real-time relay over
// HTTP. Requests carry a bearer token and are fire-and-forget: the relay's
// response body is discarded, only non-2xx statuses are reported as errors.
type RelaySink struct {
	pushURL string
	token   string
	client  *http.Client
}

// NewRelaySink creates a RelaySink pushing to pushURL. The relay exposes
// /events/status and /events/location under that base URL.
func NewRelaySink(pushURL, token string) (*RelaySink, error) {
	if pushURL == "" {
		return nil, fmt.Errorf("relay push URL is required")
	}

	return &RelaySink{
		pushURL: pushURL,
		token:   token,
		client:  &http.Client{Timeout: sinkTimeout},
	}, nil
}

func (s *RelaySink) Name() string {
	return "relay"
}

func (s *RelaySink) StatusChanged(ctx context.Context, event ports.StatusChangedEvent) error {
	return s.push(ctx, "/events/status", statusPayload{
		PackageID:  event.PackageID.String(),
		Status:     event.Status,
		MerchantID: event.MerchantID.String(),
	})
}

func (s *RelaySink) LocationUpdated(ctx context.Context, event ports.LocationUpdatedEvent) error {
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

	return s.push(ctx, "/events/location", payload)
}

func (s *RelaySink) push(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal relay payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.pushURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("push to relay: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("relay responded with status %d", resp.StatusCode)
	}
	return nil
}
