package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/flatbank/flatbank/internal/domain/session"
	"github.com/flatbank/flatbank/internal/domain/usecase/admin"
	"github.com/flatbank/flatbank/internal/domain/usecase/auth"
	"github.com/flatbank/flatbank/internal/domain/usecase/customer"
	"github.com/flatbank/flatbank/internal/domain/usecase/employee"
	"github.com/flatbank/flatbank/internal/domain/usecase/manager"
	"github.com/flatbank/flatbank/internal/infrastructure/adapter/hash"
	"github.com/flatbank/flatbank/internal/infrastructure/adapter/logger"
	"github.com/flatbank/flatbank/internal/infrastructure/adapter/repository"
	timeProvider "github.com/flatbank/flatbank/internal/infrastructure/adapter/time"
	"github.com/flatbank/flatbank/internal/infrastructure/config"
	"github.com/flatbank/flatbank/internal/infrastructure/server"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	appLogger.SetLevel(logger.ParseLevel(cfg.Logger.Level))
	defer appLogger.Flush()

	tp := timeProvider.NewRealTimeProvider()
	hasher := hash.NewBcryptHasher(cfg.Auth.BcryptCost)

	// Open the record files
	userRepo, err := repository.NewUserRepository(cfg.Store.Dir, appLogger)
	if err != nil {
		appLogger.Error("Failed to open user store", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	accountRepo, err := repository.NewAccountRepository(cfg.Store.Dir, appLogger)
	if err != nil {
		appLogger.Error("Failed to open account store", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	transactionRepo, err := repository.NewTransactionRepository(cfg.Store.Dir, appLogger)
	if err != nil {
		appLogger.Error("Failed to open transaction store", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	loanRepo, err := repository.NewLoanRepository(cfg.Store.Dir, appLogger)
	if err != nil {
		appLogger.Error("Failed to open loan store", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	feedbackRepo, err := repository.NewFeedbackRepository(cfg.Store.Dir, appLogger)
	if err != nil {
		appLogger.Error("Failed to open feedback store", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	// Session registry and role services
	sessions := session.NewRegistry(cfg.Session.Capacity)

	authSvc := auth.NewService(userRepo, accountRepo, sessions, hasher, appLogger)
	customerSvc := customer.NewService(userRepo, accountRepo, transactionRepo, loanRepo, feedbackRepo, tp, appLogger)
	employeeSvc := employee.NewService(userRepo, accountRepo, transactionRepo, loanRepo, hasher, tp, appLogger)
	managerSvc := manager.NewService(userRepo, accountRepo, loanRepo, feedbackRepo, appLogger)
	adminSvc := admin.NewService(userRepo, accountRepo, hasher, tp, appLogger)

	router := server.NewRouter(authSvc, customerSvc, employeeSvc, managerSvc, adminSvc, appLogger)
	srv := server.NewServer(cfg.Server, router, authSvc, appLogger)

	// Serve until SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		appLogger.Error("Server exited with error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
