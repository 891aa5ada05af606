package models

import "time"

// Loan represents a tracked loan with its computed EMI
type Loan struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	LoanType     string    `json:"loan_type"`
	Principal    float64   `json:"principal_amount"`
	InterestRate float64   `json:"interest_rate"`
	TenureMonths int       `json:"tenure_months"`
	EMIAmount    float64   `json:"emi_amount"`
	StartDate    time.Time `json:"start_date"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
