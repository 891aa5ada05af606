package scoring

import "math"

// RiskLevel buckets a CHI score for display.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Component weights of the Credit Health Index. The four weights sum to 100
// so a maximal profile scores exactly 100.
const (
	creditScoreWeight = 40.0
	emiRatioWeight    = 30.0
	activeLoanWeight  = 15.0
	paymentWeight     = 15.0

	maxCreditScore = 900.0
	// 10+ active loans zero out the loan component.
	loanSaturation = 10.0
	// 5+ missed payments zero out the payment-history component.
	missedSaturation = 5.0
)

// CHIInput holds the profile measurements the index is built from.
type CHIInput struct {
	CreditScore      int
	EMIToIncomeRatio float64 // percent, 0-100+
	ActiveLoans      int
	MissedPayments   int
}

// ComputeCHI calculates the Credit Health Index, a composite 0-100 score.
// Each component is floored at zero; rounding happens once, on the final
// sum. The credit score is clamped to [0,900] so an out-of-range caller
// value cannot push the index above 100.
func ComputeCHI(in CHIInput) int {
	score, emi, loans, missed := components(in)
	return int(math.Round(score + emi + loans + missed))
}

// ComponentScore is one CHI component prepared for display.
type ComponentScore struct {
	Value    float64 `json:"value"`
	Score    float64 `json:"component_score"`
	MaxScore float64 `json:"max_score"`
	Weight   string  `json:"weight"`
}

// CHIBreakdown shows how each component contributed to the index. The
// per-component figures are rounded to one decimal for display only and do
// not feed back into the score.
type CHIBreakdown struct {
	CreditScore    ComponentScore `json:"credit_score"`
	EMIRatio       ComponentScore `json:"emi_ratio"`
	ActiveLoans    ComponentScore `json:"active_loans"`
	MissedPayments ComponentScore `json:"missed_payments"`
}

// Breakdown returns the per-component view of a CHI calculation.
func Breakdown(in CHIInput) CHIBreakdown {
	score, emi, loans, missed := components(in)
	return CHIBreakdown{
		CreditScore: ComponentScore{
			Value:    float64(in.CreditScore),
			Score:    round1(score),
			MaxScore: creditScoreWeight,
			Weight:   "40%",
		},
		EMIRatio: ComponentScore{
			Value:    in.EMIToIncomeRatio,
			Score:    round1(emi),
			MaxScore: emiRatioWeight,
			Weight:   "30%",
		},
		ActiveLoans: ComponentScore{
			Value:    float64(in.ActiveLoans),
			Score:    round1(loans),
			MaxScore: activeLoanWeight,
			Weight:   "15%",
		},
		MissedPayments: ComponentScore{
			Value:    float64(in.MissedPayments),
			Score:    round1(missed),
			MaxScore: paymentWeight,
			Weight:   "15%",
		},
	}
}

// RiskLevelFor buckets a CHI score. Boundary values belong to the higher
// band: 70 is low risk, 40 is medium.
func RiskLevelFor(chi int) RiskLevel {
	switch {
	case chi >= 70:
		return RiskLow
	case chi >= 40:
		return RiskMedium
	default:
		return RiskHigh
	}
}

func components(in CHIInput) (score, emi, loans, missed float64) {
	creditScore := in.CreditScore
	if creditScore < 0 {
		creditScore = 0
	}
	if creditScore > int(maxCreditScore) {
		creditScore = int(maxCreditScore)
	}
	score = float64(creditScore) / maxCreditScore * creditScoreWeight
	emi = math.Max(0, (1-in.EMIToIncomeRatio/100)*emiRatioWeight)
	loans = math.Max(0, (1-float64(in.ActiveLoans)/loanSaturation)*activeLoanWeight)
	missed = math.Max(0, (1-float64(in.MissedPayments)/missedSaturation)*paymentWeight)
	return score, emi, loans, missed
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
