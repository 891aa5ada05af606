package scoring

import "fmt"

// Action is a what-if scenario with a fixed heuristic score impact. The
// impacts are reference constants, not derived from the CHI formula.
type Action struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      int    `json:"impact"`
	Direction   string `json:"direction"`
	Explanation string `json:"explanation"`
	Alternative string `json:"alternative"`
}

// actionCatalog is immutable reference data keyed by Action.ID.
var actionCatalog = []Action{
	{
		ID:          "miss_emi",
		Title:       "Miss 1 EMI",
		Description: "See the impact of missing a single EMI payment",
		Impact:      -35,
		Direction:   "down",
		Explanation: "Missing one EMI may reduce your score by ~30-40 points. Payment history accounts for 35% of your credit score.",
		Alternative: "Set up auto-debit or extend tenure by 6 months to reduce EMI if you're tight on cash.",
	},
	{
		ID:          "increase_util",
		Title:       "Increase Utilization",
		Description: "Use more of your available credit limit",
		Impact:      -25,
		Direction:   "down",
		Explanation: "Increasing utilization above 70% signals credit dependency. Each 10% increase above 30% costs ~5-10 points.",
		Alternative: "Request a credit limit increase instead, or spread expenses across multiple cards.",
	},
	{
		ID:          "extend_tenure",
		Title:       "Extend Tenure",
		Description: "Increase your loan repayment period",
		Impact:      5,
		Direction:   "up",
		Explanation: "Extending tenure lowers your EMI-to-income ratio, which can slightly improve your credit health index.",
		Alternative: "Consider this option if you need immediate cash flow relief.",
	},
	{
		ID:          "close_loan",
		Title:       "Close a Loan",
		Description: "Pay off and close an existing loan",
		Impact:      15,
		Direction:   "up",
		Explanation: "Closing a loan reduces your debt burden and may improve your score by 10-20 points over 2-3 months.",
		Alternative: "Prioritize closing high-interest loans first for maximum impact.",
	},
	{
		ID:          "reduce_utilization",
		Title:       "Reduce Utilization to 30%",
		Description: "Pay down credit card balances",
		Impact:      20,
		Direction:   "up",
		Explanation: "Reducing utilization below 30% is optimal. Each 10% reduction below 50% can add 5-10 points.",
		Alternative: "If you can't pay down, request a credit limit increase to lower the ratio.",
	},
	{
		ID:          "new_credit_inquiry",
		Title:       "Apply for New Credit",
		Description: "Submit a new loan or credit card application",
		Impact:      -10,
		Direction:   "down",
		Explanation: "Each hard inquiry reduces your score by 5-15 points temporarily. Multiple inquiries in short time have bigger impact.",
		Alternative: "Space out credit applications by at least 6 months when possible.",
	},
}

// Actions returns the simulation catalog in display order. The returned
// slice is a copy so callers cannot mutate the catalog.
func Actions() []Action {
	out := make([]Action, len(actionCatalog))
	copy(out, actionCatalog)
	return out
}

// ActionByID looks up one catalog entry.
func ActionByID(id string) (Action, bool) {
	for _, action := range actionCatalog {
		if action.ID == id {
			return action, true
		}
	}
	return Action{}, false
}

// SimulationResult is the outcome of projecting an action onto a score.
type SimulationResult struct {
	CurrentScore   int    `json:"current_score"`
	ProjectedScore int    `json:"projected_score"`
	Impact         int    `json:"impact"`
	Direction      string `json:"direction"`
	Explanation    string `json:"explanation"`
	Alternative    string `json:"alternative"`
}

// Simulate projects the score impact of a catalog action. The projected
// score is returned unclamped; presentation layers clamp to the valid
// [300,900] range when displaying it.
func Simulate(actionID string, currentScore int) (SimulationResult, error) {
	action, ok := ActionByID(actionID)
	if !ok {
		return SimulationResult{}, fmt.Errorf("%w: %q", ErrUnknownAction, actionID)
	}
	return SimulationResult{
		CurrentScore:   currentScore,
		ProjectedScore: currentScore + action.Impact,
		Impact:         action.Impact,
		Direction:      action.Direction,
		Explanation:    action.Explanation,
		Alternative:    action.Alternative,
	}, nil
}
