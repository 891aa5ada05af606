package service

import (
	"context"
	"fmt"
	"time"

	"github.com/credit-coach/backend/internal/models"
	"github.com/credit-coach/backend/internal/scoring"
)

// Tenure options offered by the comparison endpoint.
var comparisonTenures = []int{12, 24, 36, 48, 60, 72, 84}

// PlaygroundRequest describes a hypothetical loan. Profile fields are
// optional; nil values fall back to the stored profile.
type PlaygroundRequest struct {
	LoanAmount      float64  `json:"loan_amount"`
	InterestRate    float64  `json:"interest_rate"`
	TenureMonths    int      `json:"tenure_months"`
	MonthlyIncome   *float64 `json:"monthly_income"`
	MonthlyExpenses *float64 `json:"monthly_expenses"`
	ExistingEMIs    *float64 `json:"existing_emis"`
	CreditScore     *int     `json:"credit_score"`
	ActiveLoans     *int     `json:"active_loans"`
}

// PlaygroundResponse shows the EMI and the health-index impact of taking
// the hypothetical loan
type PlaygroundResponse struct {
	EMI            float64           `json:"emi"`
	TotalInterest  float64           `json:"total_interest"`
	TotalPayment   float64           `json:"total_payment"`
	NewTotalEMI    float64           `json:"new_total_emi"`
	NewEMIRatio    float64           `json:"new_emi_ratio"`
	CurrentCHI     int               `json:"current_chi"`
	NewCHI         int               `json:"new_chi"`
	CHIChange      int               `json:"chi_change"`
	RiskLevel      scoring.RiskLevel `json:"risk_level"`
	Recommendation string            `json:"recommendation"`
}

// ComparisonOption is one tenure alternative for the same loan
type ComparisonOption struct {
	TenureMonths  int     `json:"tenure_months"`
	EMI           float64 `json:"emi"`
	TotalInterest float64 `json:"total_interest"`
	TotalPayment  float64 `json:"total_payment"`
	EMIRatio      float64 `json:"emi_ratio"`
}

// ComparisonResponse compares tenure options for a loan
type ComparisonResponse struct {
	LoanAmount   float64            `json:"loan_amount"`
	InterestRate float64            `json:"interest_rate"`
	Options      []ComparisonOption `json:"options"`
}

// CreateLoanRequest adds a tracked loan
type CreateLoanRequest struct {
	LoanType     string     `json:"loan_type"`
	Principal    float64    `json:"principal_amount"`
	InterestRate float64    `json:"interest_rate"`
	TenureMonths int        `json:"tenure_months"`
	StartDate    *time.Time `json:"start_date"`
}

// SimulateRequest runs a what-if action. CurrentScore is optional; nil
// falls back to the latest stored snapshot.
type SimulateRequest struct {
	ActionID     string `json:"action_id"`
	CurrentScore *int   `json:"current_score"`
}

// PlaygroundCalculate computes a hypothetical loan's EMI and its effect on
// the user's credit health index
func (s *Service) PlaygroundCalculate(ctx context.Context, req PlaygroundRequest) (*PlaygroundResponse, error) {
	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.FindProfileByUserID(userID)
	if err != nil {
		return nil, err
	}

	income := profile.MonthlyIncome
	if req.MonthlyIncome != nil {
		income = *req.MonthlyIncome
	}
	existingEMIs := profile.ExistingEMIs
	if req.ExistingEMIs != nil {
		existingEMIs = *req.ExistingEMIs
	}
	creditScore := s.latestScoreOrDefault(userID)
	if req.CreditScore != nil {
		creditScore = *req.CreditScore
	}
	activeLoans := profile.ActiveLoans
	if req.ActiveLoans != nil {
		activeLoans = *req.ActiveLoans
	}

	if income <= 0 {
		return nil, fmt.Errorf("%w: monthly income must be positive to evaluate a loan",
			scoring.ErrInvalidProfileRange)
	}
	if err := models.ValidateCreditScore(creditScore); err != nil {
		return nil, err
	}

	emi, err := scoring.ComputeEMI(req.LoanAmount, req.InterestRate, req.TenureMonths)
	if err != nil {
		return nil, err
	}
	totalInterest := scoring.TotalInterest(req.LoanAmount, emi, req.TenureMonths)

	newTotalEMI := existingEMIs + emi
	currentRatio, err := scoring.EMIToIncomeRatio(existingEMIs, income)
	if err != nil {
		return nil, err
	}
	newRatio, err := scoring.EMIToIncomeRatio(newTotalEMI, income)
	if err != nil {
		return nil, err
	}

	currentCHI := scoring.ComputeCHI(scoring.CHIInput{
		CreditScore:      creditScore,
		EMIToIncomeRatio: currentRatio,
		ActiveLoans:      activeLoans,
		MissedPayments:   profile.MissedPayments,
	})
	newCHI := scoring.ComputeCHI(scoring.CHIInput{
		CreditScore:      creditScore,
		EMIToIncomeRatio: newRatio,
		ActiveLoans:      activeLoans + 1,
		MissedPayments:   profile.MissedPayments,
	})

	return &PlaygroundResponse{
		EMI:            emi,
		TotalInterest:  totalInterest,
		TotalPayment:   req.LoanAmount + totalInterest,
		NewTotalEMI:    newTotalEMI,
		NewEMIRatio:    newRatio,
		CurrentCHI:     currentCHI,
		NewCHI:         newCHI,
		CHIChange:      newCHI - currentCHI,
		RiskLevel:      scoring.RiskLevelFor(newCHI),
		Recommendation: scoring.LoanRecommendation(newRatio),
	}, nil
}

// CompareTenures calculates the same loan across the standard tenure grid
func (s *Service) CompareTenures(ctx context.Context, loanAmount, interestRate float64, monthlyIncome, existingEMIs *float64) (*ComparisonResponse, error) {
	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.FindProfileByUserID(userID)
	if err != nil {
		return nil, err
	}

	income := profile.MonthlyIncome
	if monthlyIncome != nil {
		income = *monthlyIncome
	}
	emis := profile.ExistingEMIs
	if existingEMIs != nil {
		emis = *existingEMIs
	}
	if income <= 0 {
		return nil, fmt.Errorf("%w: monthly income must be positive to compare tenures",
			scoring.ErrInvalidProfileRange)
	}

	resp := &ComparisonResponse{
		LoanAmount:   loanAmount,
		InterestRate: interestRate,
		Options:      make([]ComparisonOption, 0, len(comparisonTenures)),
	}
	for _, tenure := range comparisonTenures {
		emi, err := scoring.ComputeEMI(loanAmount, interestRate, tenure)
		if err != nil {
			return nil, err
		}
		totalInterest := scoring.TotalInterest(loanAmount, emi, tenure)
		ratio, err := scoring.EMIToIncomeRatio(emis+emi, income)
		if err != nil {
			return nil, err
		}
		resp.Options = append(resp.Options, ComparisonOption{
			TenureMonths:  tenure,
			EMI:           emi,
			TotalInterest: totalInterest,
			TotalPayment:  loanAmount + totalInterest,
			EMIRatio:      ratio,
		})
	}
	return resp, nil
}

// SimulationActions lists the what-if catalog
func (s *Service) SimulationActions() []scoring.Action {
	return scoring.Actions()
}

// Simulate projects the score impact of a catalog action
func (s *Service) Simulate(ctx context.Context, req SimulateRequest) (*scoring.SimulationResult, error) {
	currentScore := 0
	if req.CurrentScore != nil {
		currentScore = *req.CurrentScore
	} else {
		userID, err := s.userIDFromContext(ctx)
		if err != nil {
			return nil, err
		}
		currentScore = s.latestScoreOrDefault(userID)
	}

	result, err := scoring.Simulate(req.ActionID, currentScore)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateLoan records a loan, writes its amortization schedule, and bumps
// the profile's active loan counter
func (s *Service) CreateLoan(ctx context.Context, req CreateLoanRequest) (*models.Loan, error) {
	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	emi, err := scoring.ComputeEMI(req.Principal, req.InterestRate, req.TenureMonths)
	if err != nil {
		return nil, err
	}

	startDate := time.Now().UTC()
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	loan := &models.Loan{
		UserID:       userID,
		LoanType:     req.LoanType,
		Principal:    req.Principal,
		InterestRate: req.InterestRate,
		TenureMonths: req.TenureMonths,
		EMIAmount:    emi,
		StartDate:    startDate,
		Status:       "active",
	}
	if err := s.repo.CreateLoan(loan); err != nil {
		return nil, err
	}

	schedule, err := scoring.BuildSchedule(req.Principal, req.InterestRate, req.TenureMonths, startDate)
	if err != nil {
		return nil, err
	}
	installments := make([]models.LoanInstallment, 0, len(schedule))
	for _, inst := range schedule {
		installments = append(installments, models.LoanInstallment{
			LoanID:        loan.ID,
			Month:         inst.Month,
			DueDate:       inst.DueDate,
			Amount:        inst.Payment,
			PrincipalPart: inst.PrincipalPart,
			InterestPart:  inst.InterestPart,
			Balance:       inst.Balance,
		})
	}
	if err := s.repo.CreateInstallments(loan.ID, installments); err != nil {
		return nil, err
	}
	if err := s.repo.IncrementActiveLoans(userID); err != nil {
		return nil, err
	}

	s.log.Infof("Loan created for user %d: %s %.2f over %d months", userID, loan.LoanType, loan.Principal, loan.TenureMonths)
	return loan, nil
}

// ListLoans returns the user's loans
func (s *Service) ListLoans(ctx context.Context) ([]models.Loan, error) {
	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	loans, err := s.repo.ListLoansByUserID(userID)
	if err != nil {
		return nil, err
	}
	if loans == nil {
		loans = []models.Loan{}
	}
	return loans, nil
}

// LoanSchedule returns the amortization schedule of one of the user's loans
func (s *Service) LoanSchedule(ctx context.Context, loanID int64) ([]models.LoanInstallment, error) {
	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	loan, err := s.repo.FindLoanByID(loanID)
	if err != nil {
		return nil, err
	}
	if loan.UserID != userID {
		return nil, fmt.Errorf("loan does not belong to user")
	}
	return s.repo.ListInstallmentsByLoanID(loanID)
}
