package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeEMI(t *testing.T) {
	tests := []struct {
		name         string
		principal    float64
		annualRate   float64
		tenureMonths int
		want         float64
	}{
		{"standard 36 month loan", 500000, 10.5, 36, 16251},
		{"zero rate divides evenly", 120000, 0, 12, 10000},
		{"single month tenure", 100000, 12, 1, 101000},
		{"small personal loan", 50000, 14, 24, 2401},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeEMI(tt.principal, tt.annualRate, tt.tenureMonths)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeEMIInvalidTerms(t *testing.T) {
	tests := []struct {
		name         string
		principal    float64
		annualRate   float64
		tenureMonths int
	}{
		{"zero principal", 0, 10, 12},
		{"negative principal", -50000, 10, 12},
		{"negative rate", 100000, -1, 12},
		{"zero tenure", 100000, 10, 0},
		{"negative tenure", 100000, 10, -6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeEMI(tt.principal, tt.annualRate, tt.tenureMonths)
			assert.ErrorIs(t, err, ErrInvalidLoanTerms)
		})
	}
}

func TestTotalInterest(t *testing.T) {
	// Zero-rate loans pay no interest
	emi, err := ComputeEMI(120000, 0, 12)
	require.NoError(t, err)
	assert.Equal(t, 0.0, TotalInterest(120000, emi, 12))

	// One-month loan pays roughly one month of interest
	emi, err = ComputeEMI(100000, 12, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1000, TotalInterest(100000, emi, 1), 1)

	emi, err = ComputeEMI(500000, 10.5, 36)
	require.NoError(t, err)
	assert.InDelta(t, 85036, TotalInterest(500000, emi, 36), 1)
}

func TestBuildSchedule(t *testing.T) {
	start := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	schedule, err := BuildSchedule(300000, 12, 24, start)
	require.NoError(t, err)
	require.Len(t, schedule, 24)

	// Due dates advance one month per installment
	assert.Equal(t, start.AddDate(0, 1, 0), schedule[0].DueDate)
	assert.Equal(t, start.AddDate(0, 24, 0), schedule[23].DueDate)

	// Balance closes at zero and principal parts sum to the principal
	assert.Equal(t, 0.0, schedule[23].Balance)
	var principalPaid float64
	for i, inst := range schedule {
		principalPaid += inst.PrincipalPart
		assert.Equal(t, i+1, inst.Month)
		assert.GreaterOrEqual(t, inst.InterestPart, 0.0)
	}
	assert.InDelta(t, 300000, principalPaid, 1)

	// Interest declines as the balance amortizes
	assert.Greater(t, schedule[0].InterestPart, schedule[23].InterestPart)
}

func TestBuildScheduleInvalidTerms(t *testing.T) {
	_, err := BuildSchedule(0, 10, 12, time.Now())
	assert.ErrorIs(t, err, ErrInvalidLoanTerms)
}

func TestEMIToIncomeRatio(t *testing.T) {
	ratio, err := EMIToIncomeRatio(12000, 85000)
	require.NoError(t, err)
	assert.Equal(t, 14.12, ratio)

	ratio, err = EMIToIncomeRatio(0, 50000)
	require.NoError(t, err)
	assert.Equal(t, 0.0, ratio)

	// Ratio can exceed 100 when obligations outgrow income
	ratio, err = EMIToIncomeRatio(60000, 50000)
	require.NoError(t, err)
	assert.Equal(t, 120.0, ratio)
}

func TestEMIToIncomeRatioInvalidInput(t *testing.T) {
	_, err := EMIToIncomeRatio(10000, 0)
	assert.ErrorIs(t, err, ErrInvalidProfileRange)

	_, err = EMIToIncomeRatio(10000, -500)
	assert.ErrorIs(t, err, ErrInvalidProfileRange)

	_, err = EMIToIncomeRatio(-10, 50000)
	assert.ErrorIs(t, err, ErrInvalidProfileRange)
}

func TestLoanRecommendation(t *testing.T) {
	assert.Contains(t, LoanRecommendation(25), "fits well within your budget")
	assert.Contains(t, LoanRecommendation(35), "less room for savings")
	assert.Contains(t, LoanRecommendation(45), "extending tenure")
	assert.Contains(t, LoanRecommendation(55), "very high relative to your income")
}
