package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/contactform/backend/internal/config"
	"github.com/contactform/backend/internal/handler"
	"github.com/contactform/backend/internal/logging"
	"github.com/contactform/backend/internal/metrics"
	"github.com/contactform/backend/internal/notify"
	"github.com/contactform/backend/internal/repository"
	"github.com/contactform/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	ctx := context.Background()
	pool, err := repository.NewPool(ctx, cfg.DatabaseURI)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	// スキーマを最新にしてから受け付けを開始する
	sqlDB := repository.OpenSQL(pool)
	if err := repository.Migrate(ctx, sqlDB); err != nil {
		logging.Fatal("migration failed", "error", err)
	}
	_ = sqlDB.Close()

	reg := metrics.NewRegistry()
	m := metrics.New(reg)

	submissionRepo := repository.NewPgSubmissionRepository(pool)
	txManager := repository.NewPgTxManager(pool)
	notifier := notify.NewSMTPNotifier(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SenderMail,
		Password: cfg.SenderPassword,
		From:     cfg.SenderMail,
		To:       cfg.ReceiverMail,
		Company:  cfg.CompanyName,
		Timeout:  cfg.SMTPTimeout,
	})
	contactService := service.NewContactService(submissionRepo, txManager, notifier, service.WithMetrics(m))

	h := handler.New(pool, cfg.CompanyURI)
	contactHandler := handler.NewContactHandler(contactService, m, cfg.SMTPTimeout+5*time.Second)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("POST /contact", contactHandler.Submit)
	mux.HandleFunc("GET /healthz", h.Health)
	mux.Handle("GET /metrics", metrics.Handler(reg))

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler.RequestLogger(handler.SecurityHeaders(h.CORS(mux))),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// a submission may wait on the mail relay
		WriteTimeout: cfg.SMTPTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.SMTPTimeout+5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
