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

	"github.com/JeanGrijp/alerting-system/internal/adapters/http/router"
	"github.com/JeanGrijp/alerting-system/internal/adapters/notifier"
	"github.com/JeanGrijp/alerting-system/internal/adapters/storage/memory"
	"github.com/JeanGrijp/alerting-system/internal/config"
	"github.com/JeanGrijp/alerting-system/internal/core/domain"
	"github.com/JeanGrijp/alerting-system/internal/core/ports"
	"github.com/JeanGrijp/alerting-system/internal/core/services"
)

func runServer(parent context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	violations, closeStorage, err := initViolationLog(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	defer closeStorage()

	clock := domain.SystemClock{}
	windows := memory.NewWindowStore()
	windows.StartJanitor(ctx, cfg.RateLimiter.SweepInterval(), clock)

	async, err := services.NewAsyncNotifier(initNotifier(cfg.Mail), services.AsyncNotifierOptions{
		RatePerSecond: cfg.Mail.RatePerSecond,
		Burst:         cfg.Mail.Burst,
		SendTimeout:   cfg.Mail.SendTimeout(),
		MaxInFlight:   cfg.Mail.MaxInFlight,
	})
	if err != nil {
		return fmt.Errorf("failed to create notifier: %w", err)
	}

	alerting, err := services.NewAlertingService(violations, async, services.AlertingConfig{
		From: cfg.Mail.Sender(),
		To:   cfg.Mail.AlertRecipient,
	})
	if err != nil {
		return fmt.Errorf("failed to create alerting service: %w", err)
	}

	limiter, err := services.NewRateLimiterService(windows, services.Config{
		Rule:     cfg.RateLimiter.Rule(),
		Clock:    clock,
		Observer: alerting,
	})
	if err != nil {
		return fmt.Errorf("failed to create limiter: %w", err)
	}

	metrics, err := services.NewMetricsService(violations)
	if err != nil {
		return fmt.Errorf("failed to create metrics service: %w", err)
	}

	if cfg.Auth.AccessToken == "" {
		log.Println("VALID_ACCESS_TOKEN is empty: every /api/submit request will be rejected")
	}
	if cfg.Mail.AlertRecipient == "" {
		log.Println("ALERT_EMAIL is empty: alerts will be attempted without a recipient")
	}

	srv := &http.Server{
		Addr: fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router.New(router.Dependencies{
			Limiter:           limiter,
			Validator:         services.NewAccessValidator(cfg.Auth.AccessToken),
			Metrics:           metrics,
			TrustProxyHeaders: cfg.Server.TrustProxyHeaders,
			LogRequests:       true,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("server listening on %s (storage=%s, limit=%d per %s)",
			srv.Addr, cfg.Storage.Type, cfg.RateLimiter.MaxRequests, cfg.RateLimiter.Rule().Window)
		err := srv.ListenAndServe()
		if err != nil {
			errCh <- err
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Println("shutdown signal received")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
	if err := async.Close(shutdownCtx); err != nil {
		log.Printf("pending alerts dropped: %v", err)
	}

	return serveErr
}

func initNotifier(cfg config.MailConfig) ports.Notifier {
	if cfg.Username == "" {
		log.Println("EMAIL_USER is empty: alerts will be written to the log")
		return notifier.NewLogNotifier(nil)
	}

	smtp, err := notifier.NewSMTPNotifier(notifier.SMTPConfig{
		Host:               cfg.Host,
		Port:               cfg.Port,
		Username:           cfg.Username,
		Password:           cfg.Password,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	})
	if err != nil {
		log.Printf("failed to create smtp notifier, falling back to log: %v", err)
		return notifier.NewLogNotifier(nil)
	}
	return smtp
}
