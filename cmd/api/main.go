package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/watan-hr/fingerprint-attendance/internal/app"
	"github.com/watan-hr/fingerprint-attendance/internal/config"
	appHTTP "github.com/watan-hr/fingerprint-attendance/internal/handler/http"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/cron"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/jwt"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/logger"
	serviceAuth "github.com/watan-hr/fingerprint-attendance/internal/service/auth"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer a.Close()
	log := a.Logger

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authService := serviceAuth.NewAuthService(a.Services.Settings, JWTService, log)

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authService),
		Settings:   appHTTP.NewSettingsHandler(a.Services.Settings),
		Attendance: appHTTP.NewAttendanceHandler(a.Services.Attendance),
		Employee:   appHTTP.NewEmployeeHandler(a.Services.Employee),
		Holiday:    appHTTP.NewHolidayHandler(a.Services.Holiday),
		Report:     appHTTP.NewReportHandler(a.Services.Report, cfg.Export.Organization),
		Dashboard:  appHTTP.NewDashboardHandler(a.Services.Dashboard),
		Backup:     appHTTP.NewBackupHandler(a.Services.Backup),
	}, appHTTP.RouterOptions{
		Logger:         log,
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
		LogLevel:       logger.ParseLevel(cfg.Log.Level),
	})

	scheduler := cron.NewScheduler(log)
	cron.NewDeviceSyncJobs(a.Services.Attendance, cfg.Sync.Interval, log).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
