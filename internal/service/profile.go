package service

import (
	"context"
	"fmt"

	"github.com/credit-coach/backend/internal/models"
)

// FullProfile is a profile enriched with the derived numbers the dashboard
// shows alongside it.
type FullProfile struct {
	models.Profile
	Email            string  `json:"email"`
	CreditScore      int     `json:"credit_score"`
	EMIToIncomeRatio float64 `json:"emi_to_income_ratio"`
	DisposableIncome float64 `json:"disposable_income"`
}

// UpdateProfileRequest carries partial profile changes; nil fields keep
// their current value.
type UpdateProfileRequest struct {
	Name              *string  `json:"name"`
	Age               *int     `json:"age"`
	EmploymentType    *string  `json:"employment_type"`
	MonthlyIncome     *float64 `json:"monthly_income"`
	MonthlyExpenses   *float64 `json:"monthly_expenses"`
	ExistingEMIs      *float64 `json:"existing_emis"`
	CreditUtilization *float64 `json:"credit_utilization"`
	ActiveLoans       *int     `json:"active_loans"`
	MissedPayments    *int     `json:"missed_payments"`
}

// OnboardRequest completes initial profile setup
type OnboardRequest struct {
	Name              string   `json:"name"`
	Age               int      `json:"age"`
	EmploymentType    string   `json:"employment_type"`
	MonthlyIncome     float64  `json:"monthly_income"`
	MonthlyExpenses   float64  `json:"monthly_expenses"`
	ExistingEMIs      *float64 `json:"existing_emis"`
	CreditUtilization *float64 `json:"credit_utilization"`
	ActiveLoans       *int     `json:"active_loans"`
}

// GetProfile returns the authenticated user's profile with derived fields
func (s *Service) GetProfile(ctx context.Context) (*FullProfile, error) {
	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.repo.FindProfileByUserID(userID)
	if err != nil {
		return nil, err
	}

	full := &FullProfile{
		Profile:     *profile,
		Email:       user.Email,
		CreditScore: s.latestScoreOrDefault(userID),
	}
	full.EMIToIncomeRatio = s.displayRatio(profile.ExistingEMIs, profile.MonthlyIncome)
	full.DisposableIncome = profile.MonthlyIncome - profile.MonthlyExpenses - profile.ExistingEMIs
	return full, nil
}

// UpdateProfile applies a partial update to the user's profile
func (s *Service) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*models.Profile, error) {
	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.FindProfileByUserID(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Age != nil {
		profile.Age = *req.Age
	}
	if req.EmploymentType != nil {
		profile.EmploymentType = *req.EmploymentType
	}
	if req.MonthlyIncome != nil {
		profile.MonthlyIncome = *req.MonthlyIncome
	}
	if req.MonthlyExpenses != nil {
		profile.MonthlyExpenses = *req.MonthlyExpenses
	}
	if req.ExistingEMIs != nil {
		profile.ExistingEMIs = *req.ExistingEMIs
	}
	if req.CreditUtilization != nil {
		profile.CreditUtilization = *req.CreditUtilization
	}
	if req.ActiveLoans != nil {
		profile.ActiveLoans = *req.ActiveLoans
	}
	if req.MissedPayments != nil {
		profile.MissedPayments = *req.MissedPayments
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateProfile(profile); err != nil {
		return nil, err
	}

	s.log.Infof("Profile updated for user %d", userID)
	return profile, nil
}

// Onboard completes the initial profile and marks the user onboarded
func (s *Service) Onboard(ctx context.Context, req OnboardRequest) (*models.Profile, error) {
	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req.EmploymentType == "" {
		return nil, fmt.Errorf("%w: employment type is required", ErrValidation)
	}
	if req.Age == 0 {
		return nil, fmt.Errorf("%w: age is required", models.ErrInvalidAge)
	}

	profile, err := s.repo.FindProfileByUserID(userID)
	if err != nil {
		return nil, err
	}

	profile.Name = req.Name
	profile.Age = req.Age
	profile.EmploymentType = req.EmploymentType
	profile.MonthlyIncome = req.MonthlyIncome
	profile.MonthlyExpenses = req.MonthlyExpenses
	if req.ExistingEMIs != nil {
		profile.ExistingEMIs = *req.ExistingEMIs
	}
	if req.CreditUtilization != nil {
		profile.CreditUtilization = *req.CreditUtilization
	} else if profile.CreditUtilization == 0 {
		profile.CreditUtilization = defaultUtilization
	}
	if req.ActiveLoans != nil {
		profile.ActiveLoans = *req.ActiveLoans
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateProfile(profile); err != nil {
		return nil, err
	}
	if err := s.repo.SetUserOnboarded(userID); err != nil {
		return nil, err
	}

	s.log.Infof("User %d completed onboarding", userID)
	return profile, nil
}
