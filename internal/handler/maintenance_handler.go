package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/service"
)

func listMaintenanceHandler(svc *service.MaintenanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serveListing(w, r, svc.Collection(), func() error {
			return svc.Refresh(r.Context())
		}, logger)
	}
}

// maintenanceActionsHandler lists which workflow actions are available
// for a request, from its current status.
func maintenanceActionsHandler(svc *service.MaintenanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "requestId")
		req, ok := svc.Collection().FindByID(id)
		if !ok {
			handleServiceError(w, &domain.ErrNotFound{Resource: "maintenance request", ID: id}, logger)
			return
		}
		actions := service.AvailableActions(req.Status)
		if actions == nil {
			actions = []string{}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  req.Status,
			"actions": actions,
		})
	}
}

func assignVendorHandler(svc *service.MaintenanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input domain.AssignVendorInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		updated, err := svc.AssignVendor(r.Context(), chi.URLParam(r, "requestId"), &input)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func updateETAHandler(svc *service.MaintenanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		updated, err := svc.UpdateETA(r.Context(), chi.URLParam(r, "requestId"), body.Message)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func markArrivedHandler(svc *service.MaintenanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		updated, err := svc.MarkArrived(r.Context(), chi.URLParam(r, "requestId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}
