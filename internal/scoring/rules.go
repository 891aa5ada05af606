package scoring

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Severity of a risk alert.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// RuleInput is the profile snapshot plus derived numbers the rules read.
// ScoreTrend is optional: nil means no score history is available and the
// improvement rule is skipped rather than evaluated against a default.
type RuleInput struct {
	CreditScore       int
	CreditUtilization float64 // percent
	ActiveLoans       int
	EMIToIncomeRatio  float64 // percent
	ScoreTrend        *int    // score delta over the trend window, if known
}

// Rule is one entry of the risk-rule table. Check decides whether the rule
// fires; Describe renders the alert text from the same input.
type Rule struct {
	Name      string
	Title     string
	Condition string // human-readable trigger shown alongside the alert
	Severity  Severity
	Check     func(RuleInput) bool
	Describe  func(RuleInput) string
}

// riskRules is evaluated in table order. The two utilization rules are
// mutually exclusive: above 80% only the critical one fires.
var riskRules = []Rule{
	{
		Name:      "high_emi_burden",
		Title:     "High EMI Burden",
		Condition: "EMI > 40% of income",
		Severity:  SeverityHigh,
		Check:     func(in RuleInput) bool { return in.EMIToIncomeRatio > 40 },
		Describe: func(in RuleInput) string {
			return fmt.Sprintf("Your EMI consumes %.0f%% of your income. This may reduce future loan eligibility.", in.EMIToIncomeRatio)
		},
	},
	{
		Name:      "critical_utilization",
		Title:     "Credit Utilization Critical",
		Condition: "Credit utilization > 80%",
		Severity:  SeverityHigh,
		Check:     func(in RuleInput) bool { return in.CreditUtilization > 80 },
		Describe: func(in RuleInput) string {
			return fmt.Sprintf("Credit utilization at %.0f%% is critically high. This severely impacts your score.", in.CreditUtilization)
		},
	},
	{
		Name:      "low_credit_score",
		Title:     "Low Credit Score",
		Condition: "Credit score < 600",
		Severity:  SeverityHigh,
		Check:     func(in RuleInput) bool { return in.CreditScore < 600 },
		Describe: func(in RuleInput) string {
			return fmt.Sprintf("Your credit score of %d is below average. Focus on timely payments and reducing debt.", in.CreditScore)
		},
	},
	{
		Name:      "moderate_utilization",
		Title:     "Credit Utilization Rising",
		Condition: "Credit utilization > 50%",
		Severity:  SeverityMedium,
		Check:     func(in RuleInput) bool { return in.CreditUtilization > 50 && in.CreditUtilization <= 80 },
		Describe: func(in RuleInput) string {
			return fmt.Sprintf("Your credit utilization is at %.0f%%. Consider paying down balances.", in.CreditUtilization)
		},
	},
	{
		Name:      "multiple_loans",
		Title:     "Multiple Active Loans",
		Condition: "Active loans > 3",
		Severity:  SeverityMedium,
		Check:     func(in RuleInput) bool { return in.ActiveLoans > 3 },
		Describe: func(in RuleInput) string {
			return fmt.Sprintf("You have %d active loans. Consider consolidating to simplify management.", in.ActiveLoans)
		},
	},
	{
		Name:      "score_improvement",
		Title:     "Score Improvement",
		Condition: "Score up 30+ points",
		Severity:  SeverityLow,
		Check:     func(in RuleInput) bool { return in.ScoreTrend != nil && *in.ScoreTrend >= 30 },
		Describe: func(in RuleInput) string {
			return fmt.Sprintf("Your credit score has improved by %d points in the last 6 months. Keep it up!", *in.ScoreTrend)
		},
	},
	{
		Name:      "healthy_finances",
		Title:     "Healthy Financial Status",
		Condition: "EMI < 30% and score > 750",
		Severity:  SeverityLow,
		Check:     func(in RuleInput) bool { return in.EMIToIncomeRatio < 30 && in.CreditScore > 750 },
		Describe: func(in RuleInput) string {
			return "Your finances are in excellent shape with low EMI burden and high credit score."
		},
	},
}

// Alert is a triggered risk rule. Alerts are generated fresh on every
// evaluation; the evaluator holds no state between runs.
type Alert struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
	RuleName    string    `json:"rule"`
	TriggeredAt time.Time `json:"triggered_at"`
}

// EvaluateRules runs the rule table against one profile snapshot and
// returns the triggered alerts in table order. Zero, one, or many rules may
// fire; the same input always yields the same rule set.
func EvaluateRules(in RuleInput, now time.Time) []Alert {
	var alerts []Alert
	for _, rule := range riskRules {
		if !rule.Check(in) {
			continue
		}
		alerts = append(alerts, Alert{
			ID:          uuid.NewString(),
			Title:       rule.Title,
			Description: rule.Describe(in),
			Severity:    rule.Severity,
			RuleName:    rule.Name,
			TriggeredAt: now,
		})
	}
	return alerts
}

var severityRank = map[Severity]int{
	SeverityHigh:   0,
	SeverityMedium: 1,
	SeverityLow:    2,
}

// SortBySeverity reorders alerts high to low for display. Table order is
// preserved within each severity tier.
func SortBySeverity(alerts []Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		return severityRank[alerts[i].Severity] < severityRank[alerts[j].Severity]
	})
}

// CountBySeverity tallies alerts per severity level.
func CountBySeverity(alerts []Alert) map[Severity]int {
	counts := map[Severity]int{
		SeverityHigh:   0,
		SeverityMedium: 0,
		SeverityLow:    0,
	}
	for _, a := range alerts {
		counts[a.Severity]++
	}
	return counts
}
