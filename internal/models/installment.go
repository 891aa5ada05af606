package models

import "time"

// LoanInstallment is a scheduled payment for a loan
type LoanInstallment struct {
	ID            int64     `json:"id"`
	LoanID        int64     `json:"loan_id"`
	Month         int       `json:"month"`
	DueDate       time.Time `json:"due_date"`
	Amount        float64   `json:"amount"`
	PrincipalPart float64   `json:"principal_part"`
	InterestPart  float64   `json:"interest_part"`
	Balance       float64   `json:"balance"`
	Paid          bool      `json:"paid"`
}

// UpcomingPayment pairs a due installment with the borrower's contact,
// used by the reminder scheduler
type UpcomingPayment struct {
	InstallmentID int64     `json:"installment_id"`
	LoanID        int64     `json:"loan_id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	DueDate       time.Time `json:"due_date"`
	Amount        float64   `json:"amount"`
	Overdue       bool      `json:"overdue"`
}
