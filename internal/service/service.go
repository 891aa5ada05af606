package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/credit-coach/backend/internal/config"
	"github.com/credit-coach/backend/internal/models"
	"github.com/credit-coach/backend/internal/repository"
	"github.com/credit-coach/backend/internal/utils/email"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ErrValidation marks rejected request input.
var ErrValidation = errors.New("invalid input")

// Score assumed for users who have not recorded any snapshot yet.
const defaultCreditScore = 700

// Default utilization seeded into a fresh profile.
const defaultUtilization = 30

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	log    *logrus.Logger
	config *config.Config
	mailer *email.Sender
}

// NewService initializes a new service. The mailer may be nil when reminder
// delivery is not configured.
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config, mailer *email.Sender) *Service {
	return &Service{repo: repo, log: log, config: cfg, mailer: mailer}
}

// AuthResult is returned on signup and login
type AuthResult struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *models.User `json:"user"`
}

// Register creates a new user with a hashed password and an empty profile
func (s *Service) Register(emailAddr, password string) (*AuthResult, error) {
	emailAddr = strings.TrimSpace(strings.ToLower(emailAddr))
	if emailAddr == "" || !strings.Contains(emailAddr, "@") {
		return nil, fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        emailAddr,
		PasswordHash: string(hashedPassword),
	}
	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	// Seed an empty profile so scoring endpoints work before onboarding
	profile := &models.Profile{
		UserID:            user.ID,
		CreditUtilization: defaultUtilization,
	}
	if err := s.repo.CreateProfile(profile); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return &AuthResult{AccessToken: token, TokenType: "bearer", User: user}, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(emailAddr, password string) (*AuthResult, error) {
	user, err := s.repo.FindUserByEmail(strings.TrimSpace(strings.ToLower(emailAddr)))
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Infof("User logged in: %s", user.Email)
	return &AuthResult{AccessToken: token, TokenType: "bearer", User: user}, nil
}

// CurrentUser returns the authenticated user
func (s *Service) CurrentUser(ctx context.Context) (*models.User, error) {
	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindUserByID(userID)
}

func (s *Service) issueToken(userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", userID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(s.config.TokenTTLHours) * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

func (s *Service) userIDFromContext(ctx context.Context) (int64, error) {
	userIDStr, ok := ctx.Value("userID").(string)
	if !ok || userIDStr == "" {
		return 0, fmt.Errorf("user ID not found in context")
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID: %w", err)
	}
	return userID, nil
}
