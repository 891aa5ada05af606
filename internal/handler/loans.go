package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/credit-coach/backend/internal/service"
	"github.com/gorilla/mux"
)

// PlaygroundCalculate evaluates a hypothetical loan
func (h *Handler) PlaygroundCalculate(w http.ResponseWriter, r *http.Request) {
	var req service.PlaygroundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.PlaygroundCalculate(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// CompareTenures compares tenure options for a loan
func (h *Handler) CompareTenures(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	loanAmount, err := strconv.ParseFloat(query.Get("loan_amount"), 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "loan_amount is required")
		return
	}
	interestRate, err := strconv.ParseFloat(query.Get("interest_rate"), 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "interest_rate is required")
		return
	}

	var income, emis *float64
	if v := query.Get("monthly_income"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid monthly_income")
			return
		}
		income = &parsed
	}
	if v := query.Get("existing_emis"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid existing_emis")
			return
		}
		emis = &parsed
	}

	result, err := h.svc.CompareTenures(r.Context(), loanAmount, interestRate, income, emis)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// SimulationActions lists the what-if catalog
func (h *Handler) SimulationActions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.SimulationActions())
}

// Simulate runs a what-if action against the user's score
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req service.SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Simulate(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// CreateLoan records a loan and its amortization schedule
func (h *Handler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var req service.CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	loan, err := h.svc.CreateLoan(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, loan)
}

// ListLoans returns the user's loans
func (h *Handler) ListLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.svc.ListLoans(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loans)
}

// LoanSchedule returns a loan's amortization schedule
func (h *Handler) LoanSchedule(w http.ResponseWriter, r *http.Request) {
	loanID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid loan id")
		return
	}

	schedule, err := h.svc.LoanSchedule(r.Context(), loanID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, schedule)
}
