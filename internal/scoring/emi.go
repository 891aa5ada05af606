package scoring

import (
	"fmt"
	"math"
	"time"
)

// ComputeEMI calculates the fixed monthly installment for a loan using the
// standard amortization formula. The result is rounded to the nearest whole
// currency unit. A zero rate degenerates to straight division so the formula
// never divides by zero.
func ComputeEMI(principal, annualRatePercent float64, tenureMonths int) (float64, error) {
	if principal <= 0 {
		return 0, fmt.Errorf("%w: principal must be positive, got %.2f", ErrInvalidLoanTerms, principal)
	}
	if annualRatePercent < 0 {
		return 0, fmt.Errorf("%w: interest rate cannot be negative, got %.2f", ErrInvalidLoanTerms, annualRatePercent)
	}
	if tenureMonths <= 0 {
		return 0, fmt.Errorf("%w: tenure must be at least 1 month, got %d", ErrInvalidLoanTerms, tenureMonths)
	}

	monthlyRate := annualRatePercent / 12 / 100
	if monthlyRate == 0 {
		return math.Round(principal / float64(tenureMonths)), nil
	}

	factor := math.Pow(1+monthlyRate, float64(tenureMonths))
	emi := principal * monthlyRate * factor / (factor - 1)
	return math.Round(emi), nil
}

// TotalInterest is the interest paid over the full tenure.
// Total payment = principal + TotalInterest.
func TotalInterest(principal, emi float64, tenureMonths int) float64 {
	return emi*float64(tenureMonths) - principal
}

// Installment is one row of an amortization schedule.
type Installment struct {
	Month         int       `json:"month"`
	DueDate       time.Time `json:"due_date"`
	Payment       float64   `json:"payment"`
	PrincipalPart float64   `json:"principal_part"`
	InterestPart  float64   `json:"interest_part"`
	Balance       float64   `json:"balance"`
}

// BuildSchedule amortizes a loan month by month starting one month after
// start. The last installment absorbs the rounding drift so the balance
// always closes at zero.
func BuildSchedule(principal, annualRatePercent float64, tenureMonths int, start time.Time) ([]Installment, error) {
	emi, err := ComputeEMI(principal, annualRatePercent, tenureMonths)
	if err != nil {
		return nil, err
	}

	monthlyRate := annualRatePercent / 12 / 100
	balance := principal
	schedule := make([]Installment, 0, tenureMonths)
	for month := 1; month <= tenureMonths; month++ {
		interest := balance * monthlyRate
		principalPart := emi - interest
		if month == tenureMonths {
			principalPart = balance
		}
		balance -= principalPart
		schedule = append(schedule, Installment{
			Month:         month,
			DueDate:       start.AddDate(0, month, 0),
			Payment:       round2(principalPart + interest),
			PrincipalPart: round2(principalPart),
			InterestPart:  round2(interest),
			Balance:       round2(balance),
		})
	}
	return schedule, nil
}

// EMIToIncomeRatio is total monthly EMI obligations as a percentage of
// monthly income. The ratio is undefined for non-positive income.
func EMIToIncomeRatio(totalEMIs, monthlyIncome float64) (float64, error) {
	if monthlyIncome <= 0 {
		return 0, fmt.Errorf("%w: monthly income must be positive, got %.2f", ErrInvalidProfileRange, monthlyIncome)
	}
	if totalEMIs < 0 {
		return 0, fmt.Errorf("%w: EMI total cannot be negative, got %.2f", ErrInvalidProfileRange, totalEMIs)
	}
	return round2(totalEMIs / monthlyIncome * 100), nil
}

// LoanRecommendation maps an EMI-to-income ratio to affordability advice.
func LoanRecommendation(emiRatio float64) string {
	switch {
	case emiRatio > 50:
		return "This EMI is very high relative to your income. Consider a smaller loan amount or longer tenure to reduce monthly payments."
	case emiRatio > 40:
		return "Consider extending tenure to reduce EMI. This loan may strain your monthly budget."
	case emiRatio > 30:
		return "This loan is affordable but leaves less room for savings. Consider a smaller amount if possible."
	default:
		return "This loan fits well within your budget. You have healthy financial headroom."
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
