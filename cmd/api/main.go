package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/credit-coach/backend/internal/config"
	"github.com/credit-coach/backend/internal/handler"
	"github.com/credit-coach/backend/internal/integrations/ratefeed"
	"github.com/credit-coach/backend/internal/middleware"
	"github.com/credit-coach/backend/internal/repository"
	"github.com/credit-coach/backend/internal/scheduler"
	"github.com/credit-coach/backend/internal/service"
	"github.com/credit-coach/backend/internal/utils/email"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	mailer := email.NewSender(cfg, logger)
	svc := service.NewService(repo, logger, cfg, mailer)
	rates := ratefeed.NewClient(cfg, logger)
	h := handler.NewHandler(svc, rates)

	// Start background jobs
	jobs := scheduler.New(svc, logger)
	if err := jobs.Start(); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}
	defer jobs.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/api/auth/signup", h.Signup).Methods("POST")
	r.HandleFunc("/api/auth/login", h.Login).Methods("POST")
	r.HandleFunc("/api/chi/calculate", h.CalculateCHI).Methods("POST")
	r.HandleFunc("/api/loans/simulator/actions", h.SimulationActions).Methods("GET")
	r.HandleFunc("/api/rates/base", h.BaseRate).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/api").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/auth/me", h.Me).Methods("GET")
	authRouter.HandleFunc("/profiles/me", h.GetProfile).Methods("GET")
	authRouter.HandleFunc("/profiles/me", h.UpdateProfile).Methods("PUT")
	authRouter.HandleFunc("/profiles/onboarding", h.Onboard).Methods("POST")
	authRouter.HandleFunc("/credit-scores/history", h.ScoreHistory).Methods("GET")
	authRouter.HandleFunc("/credit-scores", h.RecordCreditScore).Methods("POST")
	authRouter.HandleFunc("/chi/current", h.CurrentCHI).Methods("GET")
	authRouter.HandleFunc("/risk-alerts", h.RiskAlerts).Methods("GET")
	authRouter.HandleFunc("/loans/playground/calculate", h.PlaygroundCalculate).Methods("POST")
	authRouter.HandleFunc("/loans/comparison", h.CompareTenures).Methods("GET")
	authRouter.HandleFunc("/loans/simulator/simulate", h.Simulate).Methods("POST")
	authRouter.HandleFunc("/loans", h.ListLoans).Methods("GET")
	authRouter.HandleFunc("/loans", h.CreateLoan).Methods("POST")
	authRouter.HandleFunc("/loans/{id:[0-9]+}/schedule", h.LoanSchedule).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
