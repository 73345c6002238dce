package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/collection"
	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/observability"
	"github.com/odlemon/khaya-portal-sub000/internal/port"
)

var maintenanceTracer = otel.Tracer("service/maintenance")

// Action names accepted by MaintenanceService.
const (
	ActionAssignVendor = "assign_vendor"
	ActionUpdateETA    = "update_eta"
	ActionMarkArrived  = "mark_arrived"
)

// MaintenanceService drives the vendor-dispatch workflow. Status is
// owned by the backend: every action refetches the request list and
// returns the server's view rather than guessing the new status.
type MaintenanceService struct {
	api     port.MaintenanceAPI
	list    *collection.Collection[domain.MaintenanceRequest]
	metrics *observability.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

func NewMaintenanceService(api port.MaintenanceAPI, metrics *observability.Metrics, logger *zap.Logger, pageSize int) *MaintenanceService {
	s := &MaintenanceService{api: api, metrics: metrics, logger: logger, now: time.Now}
	s.list = collection.New(
		api.ListMaintenanceRequests,
		maintenanceSearchFields,
		func(r domain.MaintenanceRequest) string { return r.ID },
		pageSize,
	)
	return s
}

func maintenanceSearchFields(r domain.MaintenanceRequest) []string {
	return []string{
		r.Title,
		r.Description,
		r.PropertyID.Title,
		r.PropertyID.Address.City,
		r.TenantID.FirstName,
		r.TenantID.LastName,
		r.Status,
	}
}

func (s *MaintenanceService) Collection() *collection.Collection[domain.MaintenanceRequest] {
	return s.list
}

func (s *MaintenanceService) Refresh(ctx context.Context) error {
	ctx, span := maintenanceTracer.Start(ctx, "MaintenanceService.Refresh")
	defer span.End()
	return s.list.Load(ctx)
}

// AvailableActions returns which workflow actions the portal may offer
// for a request in the given status. Vendor assignment only applies
// while a request awaits one, ETA updates stop once the work is closed
// out, and arrival can only be recorded for an assigned vendor.
func AvailableActions(status string) []string {
	switch status {
	case domain.MaintenanceAwaitingVendor:
		return []string{ActionAssignVendor}
	case domain.MaintenanceVendorAssigned:
		return []string{ActionUpdateETA, ActionMarkArrived}
	case domain.MaintenanceInProgress:
		return []string{ActionUpdateETA}
	default:
		return nil
	}
}

func actionAllowed(status, action string) bool {
	for _, a := range AvailableActions(status) {
		if a == action {
			return true
		}
	}
	return false
}

// AssignVendor dispatches a vendor to an awaiting request. The ETA
// must be in the future; the backend decides the resulting status.
func (s *MaintenanceService) AssignVendor(ctx context.Context, requestID string, input *domain.AssignVendorInput) (*domain.MaintenanceRequest, error) {
	ctx, span := maintenanceTracer.Start(ctx, "MaintenanceService.AssignVendor")
	defer span.End()
	span.SetAttributes(attribute.String("request.id", requestID))

	req, ok := s.list.FindByID(requestID)
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "maintenance request", ID: requestID}
	}
	if !actionAllowed(req.Status, ActionAssignVendor) {
		return nil, &domain.ErrActionNotAllowed{Action: ActionAssignVendor, Status: req.Status}
	}
	if input.VendorID == "" {
		return nil, &domain.ErrValidation{Field: "vendorId", Message: "a vendor must be selected"}
	}
	if !input.EstimatedArrival.After(s.now()) {
		return nil, &domain.ErrValidation{Field: "estimatedArrival", Message: "estimated arrival must be in the future"}
	}

	if err := s.api.AssignVendor(ctx, requestID, input); err != nil {
		s.logger.Warn("vendor assignment failed", zap.String("request_id", requestID), zap.Error(err))
		return nil, err
	}
	return s.refetchAndFind(ctx, requestID)
}

// UpdateETA pushes a new arrival estimate to the renter.
func (s *MaintenanceService) UpdateETA(ctx context.Context, requestID, message string) (*domain.MaintenanceRequest, error) {
	ctx, span := maintenanceTracer.Start(ctx, "MaintenanceService.UpdateETA")
	defer span.End()

	req, ok := s.list.FindByID(requestID)
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "maintenance request", ID: requestID}
	}
	if !actionAllowed(req.Status, ActionUpdateETA) {
		return nil, &domain.ErrActionNotAllowed{Action: ActionUpdateETA, Status: req.Status}
	}
	if message == "" {
		return nil, &domain.ErrValidation{Field: "message", Message: "an update message is required"}
	}

	if err := s.api.UpdateETA(ctx, requestID, message); err != nil {
		return nil, err
	}
	return s.refetchAndFind(ctx, requestID)
}

// MarkArrived records the vendor on site.
func (s *MaintenanceService) MarkArrived(ctx context.Context, requestID string) (*domain.MaintenanceRequest, error) {
	ctx, span := maintenanceTracer.Start(ctx, "MaintenanceService.MarkArrived")
	defer span.End()

	req, ok := s.list.FindByID(requestID)
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "maintenance request", ID: requestID}
	}
	if !actionAllowed(req.Status, ActionMarkArrived) {
		return nil, &domain.ErrActionNotAllowed{Action: ActionMarkArrived, Status: req.Status}
	}

	if err := s.api.MarkArrived(ctx, requestID); err != nil {
		return nil, err
	}
	return s.refetchAndFind(ctx, requestID)
}

func (s *MaintenanceService) refetchAndFind(ctx context.Context, requestID string) (*domain.MaintenanceRequest, error) {
	if err := s.list.Load(ctx); err != nil {
		return nil, err
	}
	s.metrics.IncrRefetch("maintenance")
	updated, ok := s.list.FindByID(requestID)
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "maintenance request", ID: requestID}
	}
	return &updated, nil
}
