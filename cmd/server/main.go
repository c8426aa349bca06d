package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"churchadmin-backend/internal/config"
	"churchadmin-backend/internal/db"
	"churchadmin-backend/internal/finance"
	"churchadmin-backend/internal/handler"
	"churchadmin-backend/internal/realtime"
	"churchadmin-backend/internal/repository"
	"churchadmin-backend/internal/server"
	"churchadmin-backend/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect database", "err", err)
		os.Exit(1)
	}
	defer pg.Close()

	// repositories
	userRepo := repository.UserRepository{DB: pg}
	txRepo := repository.TransactionRepository{DB: pg}
	memberRepo := repository.MemberRepository{DB: pg}
	eventRepo := repository.EventRepository{DB: pg}
	attendanceRepo := repository.AttendanceRepository{DB: pg}
	staffRepo := repository.StaffRepository{DB: pg}
	payrollRepo := repository.PayrollRepository{DB: pg}
	settingsRepo := repository.SettingsRepository{DB: pg}

	// The snapshot is the read model for all aggregation endpoints. Seed it
	// with a full fetch, then keep it fresh from the change feed.
	snapshot := finance.NewSnapshot()
	seed := func(ctx context.Context) error {
		txs, err := txRepo.ListAll(ctx)
		if err != nil {
			return err
		}
		snapshot.Replace(txs)
		logger.Info("transaction snapshot seeded", "count", len(txs))
		return nil
	}
	if err := seed(ctx); err != nil {
		logger.Error("failed to seed snapshot", "err", err)
		os.Exit(1)
	}

	listener := realtime.Listener{DB: pg, Logger: logger, OnReconnect: seed}
	go func() {
		if err := listener.Run(ctx, snapshot.Apply); err != nil && ctx.Err() == nil {
			logger.Error("change feed stopped", "err", err)
		}
	}()

	// services
	authSvc := service.AuthService{Config: cfg, Users: userRepo, Logger: logger}

	// handlers
	healthHandler := handler.HealthHandler{DB: pg}
	authHandler := handler.AuthHandler{Service: &authSvc}
	financeHandler := handler.FinanceHandler{Snapshot: snapshot, Repo: txRepo, Settings: settingsRepo, PageSize: cfg.PageSize}
	memberHandler := handler.MemberHandler{Repo: memberRepo}
	eventHandler := handler.EventHandler{Repo: eventRepo}
	attendanceHandler := handler.AttendanceHandler{Repo: attendanceRepo}
	staffHandler := handler.StaffHandler{Repo: staffRepo}
	payrollHandler := handler.PayrollHandler{Repo: payrollRepo, Settings: settingsRepo}
	settingsHandler := handler.SettingsHandler{Repo: settingsRepo}
	docsHandler := handler.DocsHandler{}
	homeHandler := handler.HomeHandler{}

	router := server.NewRouter(cfg, logger,
		healthHandler, authHandler, financeHandler, memberHandler, eventHandler,
		attendanceHandler, staffHandler, payrollHandler, settingsHandler,
		docsHandler, homeHandler)

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
