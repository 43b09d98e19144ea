package http

import (
	"time"

	"okdelivery/internal/core/application/usecases/commands"
	"okdelivery/internal/core/application/usecases/queries"
	"okdelivery/internal/core/domain/model/parcel"
	"okdelivery/internal/core/domain/model/rider"
)

type changeStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type assignRequest struct {
	RiderID string `json:"rider_id"`
}

type bulkAssignRequest struct {
	PackageIDs []string `json:"package_ids"`
	RiderID    string   `json:"rider_id"`
}

type riderLocationRequest struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Speed     *float64   `json:"speed,omitempty"`
	Heading   *float64   `json:"heading,omitempty"`
	PackageID *string    `json:"package_id,omitempty"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
}

type trackerLocationRequest struct {
	RiderID string `json:"rider_id"`
	riderLocationRequest
}

type errorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type packageResponse struct {
	ID             string     `json:"id"`
	MerchantID     string     `json:"merchant_id"`
	TrackingCode   string     `json:"tracking_code"`
	Status         string     `json:"status"`
	CurrentRiderID *string    `json:"current_rider_id,omitempty"`
	DeliveryNotes  string     `json:"delivery_notes,omitempty"`
	AssignedAt     *time.Time `json:"assigned_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func newPackageResponse(pkg *parcel.Package) packageResponse {
	response := packageResponse{
		ID:            pkg.ID().String(),
		MerchantID:    pkg.MerchantID().String(),
		TrackingCode:  pkg.TrackingCode(),
		Status:        pkg.Status().String(),
		DeliveryNotes: pkg.DeliveryNotes(),
		AssignedAt:    pkg.AssignedAt(),
		CreatedAt:     pkg.CreatedAt(),
	}
	if riderID := pkg.CurrentRider(); riderID != nil {
		id := riderID.String()
		response.CurrentRiderID = &id
	}
	return response
}

type assignResponse struct {
	AssignmentType string          `json:"assignment_type"`
	Package        packageResponse `json:"package"`
}

type bulkAssignResponse struct {
	AssignedCount int      `json:"assigned_count"`
	PickupCount   int      `json:"pickup_count"`
	DeliveryCount int      `json:"delivery_count"`
	AssignedIDs   []string `json:"assigned_ids"`
}

func newBulkAssignResponse(result commands.BulkAssignResult) bulkAssignResponse {
	ids := make([]string, len(result.AssignedIDs))
	for i, id := range result.AssignedIDs {
		ids[i] = id.String()
	}
	return bulkAssignResponse{
		AssignedCount: len(result.AssignedIDs),
		PickupCount:   result.PickupCount,
		DeliveryCount: result.DeliveryCount,
		AssignedIDs:   ids,
	}
}

type merchantResponse struct {
	ID              string `json:"id"`
	BusinessName    string `json:"business_name"`
	BusinessAddress string `json:"business_address"`
}

type riderSummaryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type merchantPickupResponse struct {
	Merchant           merchantResponse     `json:"merchant"`
	Rider              riderSummaryResponse `json:"rider"`
	AssignedCount      int                  `json:"assigned_count"`
	AssignedPackageIDs []string             `json:"assigned_package_ids"`
}

func newMerchantPickupResponse(result commands.AssignMerchantPickupResult) merchantPickupResponse {
	ids := make([]string, len(result.AssignedIDs))
	for i, id := range result.AssignedIDs {
		ids[i] = id.String()
	}
	return merchantPickupResponse{
		Merchant: merchantResponse{
			ID:              result.Merchant.ID.String(),
			BusinessName:    result.Merchant.BusinessName,
			BusinessAddress: result.Merchant.BusinessAddress,
		},
		Rider: riderSummaryResponse{
			ID:   result.RiderID.String(),
			Name: result.RiderName,
		},
		AssignedCount:      len(result.AssignedIDs),
		AssignedPackageIDs: ids,
	}
}

type riderResponse struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Status             string     `json:"status"`
	Latitude           *float64   `json:"latitude,omitempty"`
	Longitude          *float64   `json:"longitude,omitempty"`
	LastLocationUpdate *time.Time `json:"last_location_update,omitempty"`
}

func newRiderResponse(rdr *rider.Rider) riderResponse {
	response := riderResponse{
		ID:                 rdr.ID().String(),
		Name:               rdr.Name(),
		Status:             rdr.Status().String(),
		LastLocationUpdate: rdr.LastLocationUpdate(),
	}
	if position := rdr.Position(); position != nil {
		latitude := position.Latitude()
		longitude := position.Longitude()
		response.Latitude = &latitude
		response.Longitude = &longitude
	}
	return response
}

type packageSummaryResponse struct {
	ID           string     `json:"id"`
	TrackingCode string     `json:"tracking_code"`
	Status       string     `json:"status"`
	MerchantName string     `json:"merchant_name"`
	RiderName    *string    `json:"rider_name,omitempty"`
	AssignedAt   *time.Time `json:"assigned_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func newPackageSummaryResponse(item queries.PackageSummaryResponse) packageSummaryResponse {
	return packageSummaryResponse{
		ID:           item.ID.String(),
		TrackingCode: item.TrackingCode,
		Status:       item.Status,
		MerchantName: item.MerchantName,
		RiderName:    item.RiderName,
		AssignedAt:   item.AssignedAt,
		CreatedAt:    item.CreatedAt,
	}
}

func newPackageSummaryResponses(items []queries.PackageSummaryResponse) []packageSummaryResponse {
	responses := make([]packageSummaryResponse, len(items))
	for i, item := range items {
		responses[i] = newPackageSummaryResponse(item)
	}
	return responses
}

type packageListResponse struct {
	Items   []packageSummaryResponse `json:"items"`
	Total   int64                    `json:"total"`
	Page    int                      `json:"page"`
	PerPage int                      `json:"per_page"`
}

type ledgerEntryResponse struct {
	Status    string    `json:"status"`
	ActorKind string    `json:"actor_kind"`
	ActorName string    `json:"actor_name,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type assignmentResponse struct {
	RiderID    string    `json:"rider_id"`
	RiderName  string    `json:"rider_name"`
	AssignedAt time.Time `json:"assigned_at"`
	Status     string    `json:"status"`
}

type packageDetailResponse struct {
	ID              string                `json:"id"`
	TrackingCode    string                `json:"tracking_code"`
	Status          string                `json:"status"`
	DeliveryNotes   string                `json:"delivery_notes,omitempty"`
	MerchantName    string                `json:"merchant_name"`
	MerchantAddress string                `json:"merchant_address"`
	RiderName       *string               `json:"rider_name,omitempty"`
	AssignedAt      *time.Time            `json:"assigned_at,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	History         []ledgerEntryResponse `json:"history"`
	Assignments     []assignmentResponse  `json:"assignments"`
}

func newPackageDetailResponse(detail queries.GetPackageQueryResponse) packageDetailResponse {
	history := make([]ledgerEntryResponse, len(detail.History))
	for i, entry := range detail.History {
		history[i] = ledgerEntryResponse{
			Status:    entry.Status,
			ActorKind: entry.ActorKind,
			ActorName: entry.ActorName,
			Notes:     entry.Notes,
			Latitude:  entry.Latitude,
			Longitude: entry.Longitude,
			CreatedAt: entry.CreatedAt,
		}
	}

	assignments := make([]assignmentResponse, len(detail.Assignments))
	for i, record := range detail.Assignments {
		assignments[i] = assignmentResponse{
			RiderID:    record.RiderID.String(),
			RiderName:  record.RiderName,
			AssignedAt: record.AssignedAt,
			Status:     record.Status,
		}
	}

	return packageDetailResponse{
		ID:              detail.ID.String(),
		TrackingCode:    detail.TrackingCode,
		Status:          detail.Status,
		DeliveryNotes:   detail.DeliveryNotes,
		MerchantName:    detail.MerchantName,
		MerchantAddress: detail.MerchantAddress,
		RiderName:       detail.RiderName,
		AssignedAt:      detail.AssignedAt,
		CreatedAt:       detail.CreatedAt,
		History:         history,
		Assignments:     assignments,
	}
}

type riderLocationQueryResponse struct {
	RiderID            string     `json:"rider_id"`
	Status             string     `json:"status"`
	Latitude           *float64   `json:"latitude,omitempty"`
	Longitude          *float64   `json:"longitude,omitempty"`
	LastLocationUpdate *time.Time `json:"last_location_update,omitempty"`
}

func newRiderLocationQueryResponse(result queries.GetRiderLocationQueryResponse) riderLocationQueryResponse {
	return riderLocationQueryResponse{
		RiderID:            result.RiderID.String(),
		Status:             result.Status,
		Latitude:           result.Latitude,
		Longitude:          result.Longitude,
		LastLocationUpdate: result.LastLocationUpdate,
	}
}
