package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/credit-coach/backend/internal/models"
	"github.com/credit-coach/backend/internal/repository"
	"github.com/credit-coach/backend/internal/scoring"
	"github.com/credit-coach/backend/internal/service"
)

// RateSource provides the suggested lending rate shown in the playground
type RateSource interface {
	SuggestedLendingRate() (base, suggested float64, err error)
}

// Handler exposes the service over HTTP
type Handler struct {
	svc   *service.Service
	rates RateSource
}

// NewHandler initializes a new handler. rates may be nil when no feed is
// configured.
func NewHandler(svc *service.Service, rates RateSource) *Handler {
	return &Handler{svc: svc, rates: rates}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"detail": message})
}

// writeServiceError maps the error taxonomy onto HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scoring.ErrUnknownAction),
		errors.Is(err, repository.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, scoring.ErrInvalidLoanTerms),
		errors.Is(err, scoring.ErrInvalidProfileRange),
		errors.Is(err, models.ErrInvalidCreditScore),
		errors.Is(err, models.ErrInvalidUtilization),
		errors.Is(err, models.ErrInvalidAge),
		errors.Is(err, models.ErrNegativeAmount),
		errors.Is(err, models.ErrNegativeCount):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
