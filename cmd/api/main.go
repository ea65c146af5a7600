package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/donorflow/donorflow/config"
	httphandler "github.com/donorflow/donorflow/internal/http"
	"github.com/donorflow/donorflow/internal/repository"
	"github.com/donorflow/donorflow/internal/service"
	"github.com/donorflow/donorflow/pkg/logger"
	"github.com/donorflow/donorflow/pkg/mailer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.NewLogger(cfg.LogLevel)

	if err := runServer(cfg, appLogger); err != nil {
		appLogger.WithField("error", err.Error()).Fatal("Server exited with error")
	}
}

// runServer contains the core server logic, extracted for testability
func runServer(cfg *config.Config, appLogger logger.Logger) error {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelPing()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	smtpMailer := mailer.NewSMTPMailer(&mailer.Config{
		SMTPHost:     cfg.SMTP.Host,
		SMTPPort:     cfg.SMTP.Port,
		SMTPUsername: cfg.SMTP.Username,
		SMTPPassword: cfg.SMTP.Password,
		FromEmail:    cfg.SMTP.FromEmail,
		FromName:     cfg.SMTP.FromName,
	})

	templateRepo := repository.NewTemplateRepository(db)
	templateService := service.NewTemplateService(templateRepo, smtpMailer, appLogger)
	uploadService := service.NewUploadService(cfg.FileManager.Endpoint, cfg.FileManager.APIKey, appLogger)

	mux := http.NewServeMux()
	httphandler.NewTemplateHandler(templateService, cfg.Security.JWTSecret, appLogger).RegisterRoutes(mux)
	httphandler.NewUploadHandler(uploadService, cfg.Security.JWTSecret, appLogger).RegisterRoutes(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok","version":%q}`, cfg.Version)
	})

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: mux,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverError := make(chan error, 1)
	go func() {
		appLogger.WithField("addr", server.Addr).Info("Server started")
		serverError <- server.ListenAndServe()
	}()

	select {
	case err := <-serverError:
		if err != nil && err != http.ErrServerClosed {
			appLogger.WithField("error", err.Error()).Error("Server error")
			return err
		}
		return nil
	case sig := <-shutdown:
		appLogger.WithField("signal", sig.String()).Info("Shutdown signal received - starting graceful shutdown")

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			appLogger.WithField("error", err.Error()).Error("Error during graceful shutdown")
			return err
		}
		appLogger.Info("Server stopped")
		return nil
	}
}
