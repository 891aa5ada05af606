package models

import (
	"errors"
	"fmt"
)

// Validation errors for profile and score ranges
var (
	ErrInvalidCreditScore = errors.New("credit score must be between 300 and 900")
	ErrInvalidUtilization = errors.New("credit utilization must be between 0 and 100")
	ErrInvalidAge         = errors.New("age must be between 18 and 100")
	ErrNegativeAmount     = errors.New("amount cannot be negative")
	ErrNegativeCount      = errors.New("count cannot be negative")
)

// Profile holds the financial attributes the scoring engine reads
type Profile struct {
	ID                int64   `json:"id"`
	UserID            int64   `json:"user_id"`
	Name              string  `json:"name"`
	Age               int     `json:"age"`
	EmploymentType    string  `json:"employment_type"`
	MonthlyIncome     float64 `json:"monthly_income"`
	MonthlyExpenses   float64 `json:"monthly_expenses"`
	ExistingEMIs      float64 `json:"existing_emis"`
	CreditUtilization float64 `json:"credit_utilization"`
	ActiveLoans       int     `json:"active_loans"`
	MissedPayments    int     `json:"missed_payments"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

// Validate rejects out-of-range values at the boundary so the calculators
// never see values outside their documented domain. Age zero means not yet
// provided and is allowed until onboarding requires it.
func (p *Profile) Validate() error {
	if p.Age != 0 && (p.Age < 18 || p.Age > 100) {
		return fmt.Errorf("%w: got %d", ErrInvalidAge, p.Age)
	}
	if p.MonthlyIncome < 0 || p.MonthlyExpenses < 0 || p.ExistingEMIs < 0 {
		return ErrNegativeAmount
	}
	if p.CreditUtilization < 0 || p.CreditUtilization > 100 {
		return fmt.Errorf("%w: got %.0f", ErrInvalidUtilization, p.CreditUtilization)
	}
	if p.ActiveLoans < 0 || p.MissedPayments < 0 {
		return ErrNegativeCount
	}
	return nil
}

// ValidateCreditScore checks the documented credit score domain
func ValidateCreditScore(score int) error {
	if score < 300 || score > 900 {
		return fmt.Errorf("%w: got %d", ErrInvalidCreditScore, score)
	}
	return nil
}
