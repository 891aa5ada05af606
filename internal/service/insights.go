package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/credit-coach/backend/internal/models"
	"github.com/credit-coach/backend/internal/repository"
	"github.com/credit-coach/backend/internal/scoring"
)

// Window over which the score_improvement trend is derived.
const trendWindowMonths = 6

// CHIResponse is a computed health index with its display breakdown
type CHIResponse struct {
	CHIScore  int                  `json:"chi_score"`
	RiskLevel scoring.RiskLevel    `json:"risk_level"`
	Breakdown scoring.CHIBreakdown `json:"breakdown"`
}

// CHICalculateRequest carries explicit calculator inputs
type CHICalculateRequest struct {
	CreditScore      int     `json:"credit_score"`
	EMIToIncomeRatio float64 `json:"emi_to_income_ratio"`
	ActiveLoans      int     `json:"active_loans"`
	MissedPayments   int     `json:"missed_payments"`
}

// AlertsResponse is the evaluated rule set, sorted for display
type AlertsResponse struct {
	Alerts []scoring.Alert          `json:"alerts"`
	Counts map[scoring.Severity]int `json:"counts"`
}

// ScoreTrendItem is one point on the score history chart
type ScoreTrendItem struct {
	Month string `json:"month"`
	Score int    `json:"score"`
}

// ScoreTrendResponse is the score history endpoint payload
type ScoreTrendResponse struct {
	Trend        []ScoreTrendItem `json:"trend"`
	CurrentScore int              `json:"current_score"`
}

// CurrentCHI computes the health index from the user's stored profile and
// latest credit score snapshot
func (s *Service) CurrentCHI(ctx context.Context) (*CHIResponse, error) {
	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.FindProfileByUserID(userID)
	if err != nil {
		return nil, err
	}

	in := scoring.CHIInput{
		CreditScore:      s.latestScoreOrDefault(userID),
		EMIToIncomeRatio: s.displayRatio(profile.ExistingEMIs, profile.MonthlyIncome),
		ActiveLoans:      profile.ActiveLoans,
		MissedPayments:   profile.MissedPayments,
	}
	chi := scoring.ComputeCHI(in)
	return &CHIResponse{
		CHIScore:  chi,
		RiskLevel: scoring.RiskLevelFor(chi),
		Breakdown: scoring.Breakdown(in),
	}, nil
}

// CalculateCHI computes the health index from explicit parameters. Inputs
// are validated against the documented ranges before the calculator runs.
func (s *Service) CalculateCHI(req CHICalculateRequest) (*CHIResponse, error) {
	if err := models.ValidateCreditScore(req.CreditScore); err != nil {
		return nil, err
	}
	if req.EMIToIncomeRatio < 0 || req.EMIToIncomeRatio > 100 {
		return nil, fmt.Errorf("%w: EMI-to-income ratio must be between 0 and 100, got %.2f",
			scoring.ErrInvalidProfileRange, req.EMIToIncomeRatio)
	}
	if req.ActiveLoans < 0 || req.MissedPayments < 0 {
		return nil, fmt.Errorf("%w: loan and payment counts cannot be negative",
			scoring.ErrInvalidProfileRange)
	}

	in := scoring.CHIInput{
		CreditScore:      req.CreditScore,
		EMIToIncomeRatio: req.EMIToIncomeRatio,
		ActiveLoans:      req.ActiveLoans,
		MissedPayments:   req.MissedPayments,
	}
	chi := scoring.ComputeCHI(in)
	return &CHIResponse{
		CHIScore:  chi,
		RiskLevel: scoring.RiskLevelFor(chi),
		Breakdown: scoring.Breakdown(in),
	}, nil
}

// RiskAlerts evaluates the rule table against the user's current profile
func (s *Service) RiskAlerts(ctx context.Context) (*AlertsResponse, error) {
	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.FindProfileByUserID(userID)
	if err != nil {
		return nil, err
	}

	in := scoring.RuleInput{
		CreditScore:       s.latestScoreOrDefault(userID),
		CreditUtilization: profile.CreditUtilization,
		ActiveLoans:       profile.ActiveLoans,
		EMIToIncomeRatio:  s.displayRatio(profile.ExistingEMIs, profile.MonthlyIncome),
		ScoreTrend:        s.scoreTrend(userID),
	}

	alerts := scoring.EvaluateRules(in, time.Now().UTC())
	scoring.SortBySeverity(alerts)
	if alerts == nil {
		alerts = []scoring.Alert{}
	}
	return &AlertsResponse{
		Alerts: alerts,
		Counts: scoring.CountBySeverity(alerts),
	}, nil
}

// RecordCreditScore stores a new score snapshot for the user
func (s *Service) RecordCreditScore(ctx context.Context, score int) (*models.CreditScore, error) {
	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateCreditScore(score); err != nil {
		return nil, err
	}

	snapshot := &models.CreditScore{
		UserID:     userID,
		Score:      score,
		RecordedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateCreditScore(snapshot); err != nil {
		return nil, err
	}

	s.log.Infof("Credit score %d recorded for user %d", score, userID)
	return snapshot, nil
}

// ScoreHistory returns the last 12 months of score snapshots for charting
func (s *Service) ScoreHistory(ctx context.Context) (*ScoreTrendResponse, error) {
	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	since := time.Now().UTC().AddDate(-1, 0, 0)
	scores, err := s.repo.ListCreditScores(userID, since)
	if err != nil {
		return nil, err
	}

	resp := &ScoreTrendResponse{
		Trend:        make([]ScoreTrendItem, 0, len(scores)),
		CurrentScore: defaultCreditScore,
	}
	for _, snapshot := range scores {
		resp.Trend = append(resp.Trend, ScoreTrendItem{
			Month: snapshot.RecordedAt.Format("Jan"),
			Score: snapshot.Score,
		})
	}
	if len(scores) > 0 {
		resp.CurrentScore = scores[len(scores)-1].Score
	}
	return resp, nil
}

// latestScoreOrDefault reads the newest score snapshot, falling back to the
// default for users with no history yet.
func (s *Service) latestScoreOrDefault(userID int64) int {
	snapshot, err := s.repo.LatestCreditScore(userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warnf("Failed to load credit score for user %d: %v", userID, err)
		}
		return defaultCreditScore
	}
	return snapshot.Score
}

// displayRatio is the EMI-to-income ratio for dashboard paths: profiles
// without income yet (pre-onboarding) render as 0% instead of failing.
func (s *Service) displayRatio(existingEMIs, monthlyIncome float64) float64 {
	if monthlyIncome <= 0 {
		return 0
	}
	ratio, err := scoring.EMIToIncomeRatio(existingEMIs, monthlyIncome)
	if err != nil {
		return 0
	}
	return ratio
}

// scoreTrend derives the score delta over the trend window. Returns nil
// when fewer than two snapshots exist, which makes the evaluator skip the
// improvement rule.
func (s *Service) scoreTrend(userID int64) *int {
	since := time.Now().UTC().AddDate(0, -trendWindowMonths, 0)
	scores, err := s.repo.ListCreditScores(userID, since)
	if err != nil {
		s.log.Warnf("Failed to load score history for user %d: %v", userID, err)
		return nil
	}
	if len(scores) < 2 {
		return nil
	}
	trend := scores[len(scores)-1].Score - scores[0].Score
	return &trend
}
