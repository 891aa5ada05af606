package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/credit-coach/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestCreateUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO coach.users")).
		WithArgs("user@example.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow(int64(7), "2026-08-01T10:00:00Z"))

	user := &models.User{Email: "user@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.CreateUser(user))
	assert.Equal(t, int64(7), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "is_onboarded", "created_at"}).
		AddRow(int64(7), "user@example.com", "hash", true, "2026-08-01T10:00:00Z")
	mock.ExpectQuery(regexp.QuoteMeta("FROM coach.users")).
		WithArgs("user@example.com").
		WillReturnRows(rows)

	user, err := repo.FindUserByEmail("user@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.True(t, user.IsOnboarded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByEmailNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM coach.users")).
		WithArgs("missing@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "is_onboarded", "created_at"}))

	_, err := repo.FindUserByEmail("missing@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindProfileByUserID(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "age", "employment_type",
		"monthly_income", "monthly_expenses", "existing_emis", "credit_utilization",
		"active_loans", "missed_payments", "created_at", "updated_at"}).
		AddRow(int64(1), int64(7), "Priya", 31, "Salaried",
			85000.0, 35000.0, 12000.0, 30.0, 2, 0,
			"2026-08-01T10:00:00Z", "2026-08-01T10:00:00Z")
	mock.ExpectQuery(regexp.QuoteMeta("FROM coach.profiles")).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	profile, err := repo.FindProfileByUserID(7)
	require.NoError(t, err)
	assert.Equal(t, 85000.0, profile.MonthlyIncome)
	assert.Equal(t, 2, profile.ActiveLoans)
}

func TestLatestCreditScoreNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM coach.credit_scores")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "score", "recorded_at"}))

	_, err := repo.LatestCreditScore(7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateLoan(t *testing.T) {
	repo, mock := newMockRepo(t)

	start := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO coach.loans")).
		WithArgs(int64(7), "personal", 500000.0, 10.5, 36, 16251.0, start, "active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), start))

	loan := &models.Loan{
		UserID:       7,
		LoanType:     "personal",
		Principal:    500000,
		InterestRate: 10.5,
		TenureMonths: 36,
		EMIAmount:    16251,
		StartDate:    start,
		Status:       "active",
	}
	require.NoError(t, repo.CreateLoan(loan))
	assert.Equal(t, int64(3), loan.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInstallments(t *testing.T) {
	repo, mock := newMockRepo(t)

	due := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO coach.loan_installments")).
		WithArgs(int64(3), 1, due, 16251.0, 11876.0, 4375.0, 488124.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	installments := []models.LoanInstallment{{
		Month:         1,
		DueDate:       due,
		Amount:        16251,
		PrincipalPart: 11876,
		InterestPart:  4375,
		Balance:       488124,
	}}
	require.NoError(t, repo.CreateInstallments(3, installments))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementActiveLoans(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("SET active_loans = active_loans + 1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementActiveLoans(7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCreditScores(t *testing.T) {
	repo, mock := newMockRepo(t)

	since := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "score", "recorded_at"}).
		AddRow(int64(1), int64(7), 698, since.AddDate(0, 1, 0)).
		AddRow(int64(2), int64(7), 742, since.AddDate(0, 5, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM coach.credit_scores")).
		WithArgs(int64(7), since).
		WillReturnRows(rows)

	scores, err := repo.ListCreditScores(7, since)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, 698, scores[0].Score)
	assert.Equal(t, 742, scores[1].Score)
}
