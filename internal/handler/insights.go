package handler

import (
	"encoding/json"
	"net/http"

	"github.com/credit-coach/backend/internal/service"
)

// CurrentCHI returns the user's credit health index
func (h *Handler) CurrentCHI(w http.ResponseWriter, r *http.Request) {
	chi, err := h.svc.CurrentCHI(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chi)
}

// CalculateCHI computes the index from explicit parameters
func (h *Handler) CalculateCHI(w http.ResponseWriter, r *http.Request) {
	var req service.CHICalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	chi, err := h.svc.CalculateCHI(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chi)
}

// RiskAlerts returns the alerts triggered by the user's profile
func (h *Handler) RiskAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.svc.RiskAlerts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, alerts)
}

// ScoreHistory returns the last year of score snapshots
func (h *Handler) ScoreHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.svc.ScoreHistory(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}

// RecordCreditScore stores a new score snapshot
func (h *Handler) RecordCreditScore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Score int `json:"score"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snapshot, err := h.svc.RecordCreditScore(r.Context(), req.Score)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, snapshot)
}

// BaseRate returns the central bank key rate and the suggested lending rate
func (h *Handler) BaseRate(w http.ResponseWriter, r *http.Request) {
	if h.rates == nil {
		respondError(w, http.StatusServiceUnavailable, "rate feed is not configured")
		return
	}

	base, suggested, err := h.rates.SuggestedLendingRate()
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]float64{
		"base_rate":      base,
		"suggested_rate": suggested,
	})
}
