package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/credit-coach/backend/internal/models"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO coach.users (email, password_hash, is_onboarded, created_at, updated_at)
		VALUES ($1, $2, FALSE, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, password_hash, is_onboarded, created_at
		FROM coach.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsOnboarded, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(id int64) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, password_hash, is_onboarded, created_at
		FROM coach.users
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsOnboarded, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers returns all registered users
func (r *Repository) ListUsers() ([]models.User, error) {
	query := `
		SELECT id, email, password_hash, is_onboarded, created_at
		FROM coach.users
		ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsOnboarded, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// SetUserOnboarded marks a user as having completed onboarding
func (r *Repository) SetUserOnboarded(userID int64) error {
	query := `
		UPDATE coach.users
		SET is_onboarded = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	if _, err := r.db.Exec(query, userID); err != nil {
		return fmt.Errorf("failed to mark user onboarded: %w", err)
	}
	return nil
}

// CreateProfile creates a financial profile for a user
func (r *Repository) CreateProfile(profile *models.Profile) error {
	query := `
		INSERT INTO coach.profiles (user_id, name, age, employment_type, monthly_income,
			monthly_expenses, existing_emis, credit_utilization, active_loans, missed_payments,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query,
		profile.UserID, profile.Name, profile.Age, profile.EmploymentType,
		profile.MonthlyIncome, profile.MonthlyExpenses, profile.ExistingEMIs,
		profile.CreditUtilization, profile.ActiveLoans, profile.MissedPayments).
		Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// FindProfileByUserID retrieves a user's financial profile
func (r *Repository) FindProfileByUserID(userID int64) (*models.Profile, error) {
	profile := &models.Profile{}
	query := `
		SELECT id, user_id, name, age, employment_type, monthly_income, monthly_expenses,
			existing_emis, credit_utilization, active_loans, missed_payments, created_at, updated_at
		FROM coach.profiles
		WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.Name, &profile.Age, &profile.EmploymentType,
		&profile.MonthlyIncome, &profile.MonthlyExpenses, &profile.ExistingEMIs,
		&profile.CreditUtilization, &profile.ActiveLoans, &profile.MissedPayments,
		&profile.CreatedAt, &profile.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("profile: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile persists changes to a financial profile
func (r *Repository) UpdateProfile(profile *models.Profile) error {
	query := `
		UPDATE coach.profiles
		SET name = $1, age = $2, employment_type = $3, monthly_income = $4,
			monthly_expenses = $5, existing_emis = $6, credit_utilization = $7,
			active_loans = $8, missed_payments = $9, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $10`
	if _, err := r.db.Exec(query,
		profile.Name, profile.Age, profile.EmploymentType, profile.MonthlyIncome,
		profile.MonthlyExpenses, profile.ExistingEMIs, profile.CreditUtilization,
		profile.ActiveLoans, profile.MissedPayments, profile.UserID); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// IncrementActiveLoans bumps a user's active loan counter
func (r *Repository) IncrementActiveLoans(userID int64) error {
	query := `
		UPDATE coach.profiles
		SET active_loans = active_loans + 1, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $1`
	if _, err := r.db.Exec(query, userID); err != nil {
		return fmt.Errorf("failed to increment active loans: %w", err)
	}
	return nil
}

// CreateCreditScore records a credit score snapshot
func (r *Repository) CreateCreditScore(score *models.CreditScore) error {
	query := `
		INSERT INTO coach.credit_scores (user_id, score, recorded_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.db.QueryRow(query, score.UserID, score.Score, score.RecordedAt).
		Scan(&score.ID)
	if err != nil {
		return fmt.Errorf("failed to create credit score: %w", err)
	}
	return nil
}

// LatestCreditScore returns the most recent score snapshot for a user
func (r *Repository) LatestCreditScore(userID int64) (*models.CreditScore, error) {
	score := &models.CreditScore{}
	query := `
		SELECT id, user_id, score, recorded_at
		FROM coach.credit_scores
		WHERE user_id = $1
		ORDER BY recorded_at DESC
		LIMIT 1`
	err := r.db.QueryRow(query, userID).
		Scan(&score.ID, &score.UserID, &score.Score, &score.RecordedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("credit score: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find credit score: %w", err)
	}
	return score, nil
}

// ListCreditScores returns a user's score snapshots recorded since the given
// time, oldest first
func (r *Repository) ListCreditScores(userID int64, since time.Time) ([]models.CreditScore, error) {
	query := `
		SELECT id, user_id, score, recorded_at
		FROM coach.credit_scores
		WHERE user_id = $1 AND recorded_at >= $2
		ORDER BY recorded_at`
	rows, err := r.db.Query(query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list credit scores: %w", err)
	}
	defer rows.Close()

	var scores []models.CreditScore
	for rows.Next() {
		var score models.CreditScore
		if err := rows.Scan(&score.ID, &score.UserID, &score.Score, &score.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan credit score: %w", err)
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

// CreateLoan creates a new loan record
func (r *Repository) CreateLoan(loan *models.Loan) error {
	query := `
		INSERT INTO coach.loans (user_id, loan_type, principal_amount, interest_rate,
			tenure_months, emi_amount, start_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query,
		loan.UserID, loan.LoanType, loan.Principal, loan.InterestRate,
		loan.TenureMonths, loan.EMIAmount, loan.StartDate, loan.Status).
		Scan(&loan.ID, &loan.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create loan: %w", err)
	}
	return nil
}

// FindLoanByID retrieves a loan by id
func (r *Repository) FindLoanByID(id int64) (*models.Loan, error) {
	loan := &models.Loan{}
	query := `
		SELECT id, user_id, loan_type, principal_amount, interest_rate, tenure_months,
			emi_amount, start_date, status, created_at
		FROM coach.loans
		WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&loan.ID, &loan.UserID, &loan.LoanType, &loan.Principal, &loan.InterestRate,
		&loan.TenureMonths, &loan.EMIAmount, &loan.StartDate, &loan.Status, &loan.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("loan: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find loan: %w", err)
	}
	return loan, nil
}

// ListLoansByUserID returns a user's loans, newest first
func (r *Repository) ListLoansByUserID(userID int64) ([]models.Loan, error) {
	query := `
		SELECT id, user_id, loan_type, principal_amount, interest_rate, tenure_months,
			emi_amount, start_date, status, created_at
		FROM coach.loans
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	var loans []models.Loan
	for rows.Next() {
		var loan models.Loan
		if err := rows.Scan(&loan.ID, &loan.UserID, &loan.LoanType, &loan.Principal,
			&loan.InterestRate, &loan.TenureMonths, &loan.EMIAmount, &loan.StartDate,
			&loan.Status, &loan.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

// CreateInstallments bulk-inserts the amortization schedule of a loan
func (r *Repository) CreateInstallments(loanID int64, installments []models.LoanInstallment) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO coach.loan_installments (loan_id, month, due_date, amount,
			principal_part, interest_part, balance, paid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE)`
	for _, inst := range installments {
		if _, err := tx.Exec(query, loanID, inst.Month, inst.DueDate, inst.Amount,
			inst.PrincipalPart, inst.InterestPart, inst.Balance); err != nil {
			return fmt.Errorf("failed to create installment %d: %w", inst.Month, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit installments: %w", err)
	}
	return nil
}

// ListInstallmentsByLoanID returns a loan's schedule in month order
func (r *Repository) ListInstallmentsByLoanID(loanID int64) ([]models.LoanInstallment, error) {
	query := `
		SELECT id, loan_id, month, due_date, amount, principal_part, interest_part, balance, paid
		FROM coach.loan_installments
		WHERE loan_id = $1
		ORDER BY month`
	rows, err := r.db.Query(query, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments: %w", err)
	}
	defer rows.Close()

	var installments []models.LoanInstallment
	for rows.Next() {
		var inst models.LoanInstallment
		if err := rows.Scan(&inst.ID, &inst.LoanID, &inst.Month, &inst.DueDate, &inst.Amount,
			&inst.PrincipalPart, &inst.InterestPart, &inst.Balance, &inst.Paid); err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		installments = append(installments, inst)
	}
	return installments, rows.Err()
}

// ListUpcomingPayments returns unpaid installments due within the given
// number of days, including already overdue ones, joined to borrower contact
func (r *Repository) ListUpcomingPayments(withinDays int) ([]models.UpcomingPayment, error) {
	query := `
		SELECT i.id, i.loan_id, u.email, COALESCE(p.name, ''), i.due_date, i.amount,
			i.due_date < CURRENT_DATE AS overdue
		FROM coach.loan_installments i
		JOIN coach.loans l ON l.id = i.loan_id
		JOIN coach.users u ON u.id = l.user_id
		LEFT JOIN coach.profiles p ON p.user_id = u.id
		WHERE i.paid = FALSE AND i.due_date <= CURRENT_DATE + $1 * INTERVAL '1 day'
		ORDER BY i.due_date`
	rows, err := r.db.Query(query, withinDays)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming payments: %w", err)
	}
	defer rows.Close()

	var payments []models.UpcomingPayment
	for rows.Next() {
		var p models.UpcomingPayment
		if err := rows.Scan(&p.InstallmentID, &p.LoanID, &p.Email, &p.Name, &p.DueDate,
			&p.Amount, &p.Overdue); err != nil {
			return nil, fmt.Errorf("failed to scan upcoming payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
