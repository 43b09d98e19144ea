// Package http exposes the delivery-office REST API over echo. Handlers
// translate the JSON wire contract into application commands and queries;
// they hold no business rules of their own.
package http

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strconv"
	"time"

	"okdelivery/internal/core/application/usecases/commands"
	"okdelivery/internal/core/application/usecases/queries"
	"okdelivery/internal/core/domain/model/kernel"
	"okdelivery/internal/core/domain/model/ledger"
	"okdelivery/internal/core/domain/model/parcel"
	"okdelivery/internal/core/domain/model/rider"
	"okdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Identity headers filled in by the authentication layer in front of this
// service. Auth itself is out of scope here; the handlers only consume the
// resolved identities.
const (
	headerActorID       = "X-Actor-Id"
	headerRiderID       = "X-Rider-Id"
	headerTrackerSecret = "X-Tracker-Secret"
)

type changePackageStatusHandler interface {
	Handle(ctx context.Context, command commands.ChangePackageStatusCommand) (*parcel.Package, error)
}

type assignRiderHandler interface {
	Handle(ctx context.Context, command commands.AssignRiderCommand) (commands.AssignRiderResult, error)
}

type bulkAssignRiderHandler interface {
	Handle(ctx context.Context, command commands.BulkAssignRiderCommand) (commands.BulkAssignResult, error)
}

type assignMerchantPickupHandler interface {
	Handle(ctx context.Context, command commands.AssignMerchantPickupCommand) (commands.AssignMerchantPickupResult, error)
}

type reportRiderLocationHandler interface {
	Handle(ctx context.Context, command commands.ReportRiderLocationCommand) (*rider.Rider, error)
}

type listPackagesHandler interface {
	Handle(ctx context.Context, query queries.ListPackagesQuery) (queries.ListPackagesQueryResponse, error)
}

type getPackageHandler interface {
	Handle(ctx context.Context, query queries.GetPackageQuery) (queries.GetPackageQueryResponse, error)
}

type getArrivedPackagesHandler interface {
	Handle(ctx context.Context, query queries.GetArrivedPackagesQuery) ([]queries.PackageSummaryResponse, error)
}

type getRiderLocationHandler interface {
	Handle(ctx context.Context, query queries.GetRiderLocationQuery) (queries.GetRiderLocationQueryResponse, error)
}

// Server wires the REST routes to command and query handlers.
type Server struct {
	changeStatusHandler   changePackageStatusHandler
	assignHandler         assignRiderHandler
	bulkAssignHandler     bulkAssignRiderHandler
	merchantPickupHandler assignMerchantPickupHandler
	reportLocationHandler reportRiderLocationHandler

	listPackagesHandler  listPackagesHandler
	getPackageHandler    getPackageHandler
	arrivedHandler       getArrivedPackagesHandler
	riderLocationHandler getRiderLocationHandler

	// shared secret for the external tracker callback; empty disables the
	// endpoint rather than leaving it open
	trackerSecret string
}

// NewServer creates a Server. The tracker secret is injected here instead of
// being read from the environment inside the handler so the callback path is
// testable without process-wide state.
func NewServer(
	changeStatusHandler changePackageStatusHandler,
	assignHandler assignRiderHandler,
	bulkAssignHandler bulkAssignRiderHandler,
	merchantPickupHandler assignMerchantPickupHandler,
	reportLocationHandler reportRiderLocationHandler,
	listPackagesHandler listPackagesHandler,
	getPackageHandler getPackageHandler,
	arrivedHandler getArrivedPackagesHandler,
	riderLocationHandler getRiderLocationHandler,
	trackerSecret string,
) *Server {
	return &Server{
		changeStatusHandler:   changeStatusHandler,
		assignHandler:         assignHandler,
		bulkAssignHandler:     bulkAssignHandler,
		merchantPickupHandler: merchantPickupHandler,
		reportLocationHandler: reportLocationHandler,
		listPackagesHandler:   listPackagesHandler,
		getPackageHandler:     getPackageHandler,
		arrivedHandler:        arrivedHandler,
		riderLocationHandler:  riderLocationHandler,
		trackerSecret:         trackerSecret,
	}
}

// RegisterRoutes attaches all routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	e.GET("/packages", s.ListPackages)
	e.GET("/packages/arrived", s.GetArrivedPackages)
	e.GET("/packages/:id", s.GetPackage)
	e.PATCH("/packages/:id/status", s.ChangePackageStatus)
	e.POST("/packages/:id/assign", s.AssignRider)
	e.POST("/packages/bulk-assign", s.BulkAssignRider)

	e.POST("/merchants/:id/assign-pickup", s.AssignMerchantPickup)

	e.POST("/rider/location", s.ReportRiderLocation)
	e.GET("/rider/location", s.GetRiderLocation)

	e.POST("/tracker/location", s.TrackerLocation)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// ListPackages handles GET /packages with filter and pagination query params.
func (s *Server) ListPackages(ctx echo.Context) error {
	filter, err := parseListFilter(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	page, err := parseIntParam(ctx, "page", 1)
	if err != nil {
		return writeError(ctx, err)
	}
	perPage, err := parseIntParam(ctx, "per_page", 0)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewListPackagesQuery(filter, page, perPage)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.listPackagesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, packageListResponse{
		Items:   newPackageSummaryResponses(result.Items),
		Total:   result.Total,
		Page:    result.Page,
		PerPage: result.PerPage,
	})
}

// GetPackage handles GET /packages/:id.
func (s *Server) GetPackage(ctx echo.Context) error {
	packageID, err := pathUUID(ctx, "id", "package_id")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetPackageQuery(packageID)
	if err != nil {
		return writeError(ctx, err)
	}

	detail, err := s.getPackageHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newPackageDetailResponse(detail))
}

// GetArrivedPackages handles GET /packages/arrived, the office queue view of
// packages still in registered status.
func (s *Server) GetArrivedPackages(ctx echo.Context) error {
	var merchantID *kernel.UUID
	if raw := ctx.QueryParam("merchant_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("merchant_id", err))
		}
		merchantID = &id
	}

	query, err := queries.NewGetArrivedPackagesQuery(merchantID)
	if err != nil {
		return writeError(ctx, err)
	}

	items, err := s.arrivedHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newPackageSummaryResponses(items))
}

// ChangePackageStatus handles PATCH /packages/:id/status.
func (s *Server) ChangePackageStatus(ctx echo.Context) error {
	packageID, err := pathUUID(ctx, "id", "package_id")
	if err != nil {
		return writeError(ctx, err)
	}

	actorID, err := headerUUID(ctx, headerActorID, "actor_id")
	if err != nil {
		return writeError(ctx, err)
	}

	var request changeStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	target, err := parcel.StatusFromString(request.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	command, err := commands.NewChangePackageStatusCommand(packageID, target, actorID, ledger.ActorOffice, request.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	pkg, err := s.changeStatusHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newPackageResponse(pkg))
}

// AssignRider handles POST /packages/:id/assign.
func (s *Server) AssignRider(ctx echo.Context) error {
	packageID, err := pathUUID(ctx, "id", "package_id")
	if err != nil {
		return writeError(ctx, err)
	}

	actorID, err := headerUUID(ctx, headerActorID, "actor_id")
	if err != nil {
		return writeError(ctx, err)
	}

	var request assignRequest
	if err = ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	riderID, err := kernel.UUIDFromString(request.RiderID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("rider_id", err))
	}

	command, err := commands.NewAssignRiderCommand(packageID, riderID, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.assignHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, assignResponse{
		AssignmentType: result.Classification.String(),
		Package:        newPackageResponse(result.Package),
	})
}

// BulkAssignRider handles POST /packages/bulk-assign.
func (s *Server) BulkAssignRider(ctx echo.Context) error {
	actorID, err := headerUUID(ctx, headerActorID, "actor_id")
	if err != nil {
		return writeError(ctx, err)
	}

	var request bulkAssignRequest
	if err = ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	riderID, err := kernel.UUIDFromString(request.RiderID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("rider_id", err))
	}

	packageIDs := make([]kernel.UUID, 0, len(request.PackageIDs))
	for _, raw := range request.PackageIDs {
		id, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("package_ids", parseErr))
		}
		packageIDs = append(packageIDs, id)
	}

	command, err := commands.NewBulkAssignRiderCommand(packageIDs, riderID, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.bulkAssignHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newBulkAssignResponse(result))
}

// AssignMerchantPickup handles POST /merchants/:id/assign-pickup.
func (s *Server) AssignMerchantPickup(ctx echo.Context) error {
	merchantID, err := pathUUID(ctx, "id", "merchant_id")
	if err != nil {
		return writeError(ctx, err)
	}

	actorID, err := headerUUID(ctx, headerActorID, "actor_id")
	if err != nil {
		return writeError(ctx, err)
	}

	var request assignRequest
	if err = ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	riderID, err := kernel.UUIDFromString(request.RiderID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("rider_id", err))
	}

	command, err := commands.NewAssignMerchantPickupCommand(merchantID, riderID, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.merchantPickupHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newMerchantPickupResponse(result))
}

// ReportRiderLocation handles POST /rider/location, the authenticated rider
// self-report path.
func (s *Server) ReportRiderLocation(ctx echo.Context) error {
	riderID, err := headerUUID(ctx, headerRiderID, "rider_id")
	if err != nil {
		return writeError(ctx, err)
	}

	var request riderLocationRequest
	if err = ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	return s.ingestLocation(ctx, riderID, request)
}

// TrackerLocation handles POST /tracker/location, the trusted external
// callback path. The payload carries an explicit rider_id and the request is
// gated by the shared-secret header.
func (s *Server) TrackerLocation(ctx echo.Context) error {
	if s.trackerSecret == "" ||
		subtle.ConstantTimeCompare([]byte(ctx.Request().Header.Get(headerTrackerSecret)), []byte(s.trackerSecret)) != 1 {
		return writeError(ctx, errs.NewUnauthorizedError("tracker secret mismatch"))
	}

	var request trackerLocationRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	riderID, err := kernel.UUIDFromString(request.RiderID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("rider_id", err))
	}

	return s.ingestLocation(ctx, riderID, request.riderLocationRequest)
}

// ingestLocation is the shared effect behind both location ingress paths.
func (s *Server) ingestLocation(ctx echo.Context, riderID kernel.UUID, request riderLocationRequest) error {
	position, err := kernel.NewGeoPoint(request.Latitude, request.Longitude)
	if err != nil {
		return writeError(ctx, err)
	}

	var packageID *kernel.UUID
	if request.PackageID != nil {
		id, parseErr := kernel.UUIDFromString(*request.PackageID)
		if parseErr != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("package_id", parseErr))
		}
		packageID = &id
	}

	sentAt := time.Now()
	if request.SentAt != nil {
		sentAt = *request.SentAt
	}

	command, err := commands.NewReportRiderLocationCommand(riderID, position, packageID, request.Speed, request.Heading, sentAt)
	if err != nil {
		return writeError(ctx, err)
	}

	rdr, err := s.reportLocationHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newRiderResponse(rdr))
}

// GetRiderLocation handles GET /rider/location for the authenticated rider.
func (s *Server) GetRiderLocation(ctx echo.Context) error {
	riderID, err := headerUUID(ctx, headerRiderID, "rider_id")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetRiderLocationQuery(riderID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.riderLocationHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newRiderLocationQueryResponse(result))
}

func pathUUID(ctx echo.Context, param, field string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(param))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(field, err)
	}
	return id, nil
}

func headerUUID(ctx echo.Context, header, field string) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(header)
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(field)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(field, err)
	}
	return id, nil
}

func parseListFilter(ctx echo.Context) (queries.ListPackagesFilter, error) {
	filter := queries.ListPackagesFilter{
		TrackingCode: ctx.QueryParam("tracking_code"),
	}

	if raw := ctx.QueryParam("merchant_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return queries.ListPackagesFilter{}, errs.NewValueIsInvalidErrorWithCause("merchant_id", err)
		}
		filter.MerchantID = &id
	}

	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := parcel.StatusFromString(raw)
		if err != nil {
			return queries.ListPackagesFilter{}, err
		}
		filter.Status = &status
	}

	if raw := ctx.QueryParam("date_from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return queries.ListPackagesFilter{}, errs.NewValueIsInvalidErrorWithCause("date_from", err)
		}
		filter.DateFrom = &from
	}

	if raw := ctx.QueryParam("date_to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return queries.ListPackagesFilter{}, errs.NewValueIsInvalidErrorWithCause("date_to", err)
		}
		filter.DateTo = &to
	}

	return filter, nil
}

func parseIntParam(ctx echo.Context, name string, fallback int) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}
