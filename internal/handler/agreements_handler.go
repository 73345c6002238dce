package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/service"
)

func listAgreementsHandler(svc *service.AgreementsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serveListing(w, r, svc.Collection(), func() error {
			return svc.Refresh(r.Context())
		}, logger)
	}
}

func createAgreementHandler(svc *service.AgreementsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input domain.CreateAgreementInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		created, err := svc.Create(r.Context(), &input)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}
