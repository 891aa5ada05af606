package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeCHI(t *testing.T) {
	tests := []struct {
		name string
		in   CHIInput
		want int
	}{
		{
			"healthy profile",
			CHIInput{CreditScore: 742, EMIToIncomeRatio: 14.1, ActiveLoans: 2, MissedPayments: 0},
			86,
		},
		{
			"maximal profile scores 100",
			CHIInput{CreditScore: 900, EMIToIncomeRatio: 0, ActiveLoans: 0, MissedPayments: 0},
			100,
		},
		{
			"ratio above 100 zeroes the emi component",
			CHIInput{CreditScore: 600, EMIToIncomeRatio: 120, ActiveLoans: 0, MissedPayments: 0},
			57,
		},
		{
			"saturated loans and misses keep only the score component",
			CHIInput{CreditScore: 450, EMIToIncomeRatio: 100, ActiveLoans: 10, MissedPayments: 5},
			20,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeCHI(tt.in))
		})
	}
}

func TestComputeCHIClampsCreditScore(t *testing.T) {
	base := CHIInput{EMIToIncomeRatio: 10, ActiveLoans: 1, MissedPayments: 0}

	over := base
	over.CreditScore = 1200
	max := base
	max.CreditScore = 900
	assert.Equal(t, ComputeCHI(max), ComputeCHI(over))
	assert.LessOrEqual(t, ComputeCHI(over), 100)

	under := base
	under.CreditScore = -50
	zero := base
	zero.CreditScore = 0
	assert.Equal(t, ComputeCHI(zero), ComputeCHI(under))
}

func TestComputeCHIMonotonicity(t *testing.T) {
	base := CHIInput{CreditScore: 600, EMIToIncomeRatio: 30, ActiveLoans: 2, MissedPayments: 1}

	// Non-decreasing in credit score
	prev := -1
	for score := 300; score <= 900; score += 50 {
		in := base
		in.CreditScore = score
		chi := ComputeCHI(in)
		assert.GreaterOrEqual(t, chi, prev, "score %d", score)
		prev = chi
	}

	// Non-increasing in EMI ratio
	prev = 101
	for ratio := 0.0; ratio <= 100; ratio += 10 {
		in := base
		in.EMIToIncomeRatio = ratio
		chi := ComputeCHI(in)
		assert.LessOrEqual(t, chi, prev, "ratio %.0f", ratio)
		prev = chi
	}

	// Non-increasing in active loans
	prev = 101
	for loans := 0; loans <= 12; loans++ {
		in := base
		in.ActiveLoans = loans
		chi := ComputeCHI(in)
		assert.LessOrEqual(t, chi, prev, "loans %d", loans)
		prev = chi
	}

	// Non-increasing in missed payments
	prev = 101
	for missed := 0; missed <= 7; missed++ {
		in := base
		in.MissedPayments = missed
		chi := ComputeCHI(in)
		assert.LessOrEqual(t, chi, prev, "missed %d", missed)
		prev = chi
	}
}

func TestBreakdown(t *testing.T) {
	in := CHIInput{CreditScore: 742, EMIToIncomeRatio: 14.1, ActiveLoans: 2, MissedPayments: 0}
	breakdown := Breakdown(in)

	assert.Equal(t, 33.0, breakdown.CreditScore.Score)
	assert.Equal(t, 25.8, breakdown.EMIRatio.Score)
	assert.Equal(t, 12.0, breakdown.ActiveLoans.Score)
	assert.Equal(t, 15.0, breakdown.MissedPayments.Score)

	assert.Equal(t, 40.0, breakdown.CreditScore.MaxScore)
	assert.Equal(t, "30%", breakdown.EMIRatio.Weight)
	assert.Equal(t, 742.0, breakdown.CreditScore.Value)
}

func TestRiskLevelFor(t *testing.T) {
	tests := []struct {
		chi  int
		want RiskLevel
	}{
		{0, RiskHigh},
		{39, RiskHigh},
		{40, RiskMedium},
		{69, RiskMedium},
		{70, RiskLow},
		{100, RiskLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RiskLevelFor(tt.chi), "chi %d", tt.chi)
	}
}
