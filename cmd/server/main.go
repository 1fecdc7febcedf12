package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mscp/internal/config"
	"mscp/internal/email/noop"
	"mscp/internal/email/ses"
	"mscp/internal/handler"
	"mscp/internal/logging"
	"mscp/internal/port"
	"mscp/internal/repository/postgres"
	"mscp/internal/router"
	"mscp/internal/service"
	s3storage "mscp/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(&cfg.Log)

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	stakeholderRepo := postgres.NewStakeholderRepo(db)
	subClusterRepo := postgres.NewSubClusterRepo(db)
	kpiRepo := postgres.NewKpiRepo(db)
	planRepo := postgres.NewActionPlanRepo(db)
	reportRepo := postgres.NewReportRepo(db)
	calendarRepo := postgres.NewCalendarRepo(db)
	locationRepo := postgres.NewLocationRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email delivery
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender(logger)
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, stakeholderRepo, cfg.JWT)
	userSvc := service.NewUserService(userRepo, stakeholderRepo, emailSender, logger)
	stakeholderSvc := service.NewStakeholderService(stakeholderRepo)
	subClusterSvc := service.NewSubClusterService(subClusterRepo, userRepo)
	kpiSvc := service.NewKpiService(kpiRepo, subClusterRepo)
	planSvc := service.NewActionPlanService(planRepo, stakeholderRepo, calendarRepo, locationRepo, kpiRepo)
	reportSvc := service.NewReportService(reportRepo, planRepo, calendarRepo, stakeholderRepo, kpiRepo, s3Client, &cfg.S3, logger)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc, userSvc)
	userH := handler.NewUserHandler(userSvc)
	stakeholderH := handler.NewStakeholderHandler(stakeholderSvc)
	subClusterH := handler.NewSubClusterHandler(subClusterSvc)
	kpiH := handler.NewKpiHandler(kpiSvc)
	planH := handler.NewActionPlanHandler(planSvc)
	reportH := handler.NewReportHandler(reportSvc)
	calendarH := handler.NewCalendarHandler(calendarRepo, locationRepo)
	healthH := handler.NewHealthHandler(db)

	// Start due-date reminder scheduler
	reminderSvc := service.NewReminderService(calendarRepo, planRepo, reportRepo, userRepo, emailSender, cfg.Reminder, logger)
	if cfg.Reminder.Enabled {
		if err := reminderSvc.Run(); err != nil {
			return fmt.Errorf("failed to start reminder scheduler: %w", err)
		}
		defer reminderSvc.Stop()
	}

	// Setup router
	r := router.Setup(
		authSvc,
		authH, userH, stakeholderH, subClusterH,
		kpiH, planH, reportH, calendarH, healthH,
		logger, cfg.CORS.AllowedOrigins,
	)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.Server.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server failed: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}
