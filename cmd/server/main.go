package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/te-mata-wananga/apparel-order-api/internal/config"
	"github.com/te-mata-wananga/apparel-order-api/internal/email"
	"github.com/te-mata-wananga/apparel-order-api/internal/handlers"
	"github.com/te-mata-wananga/apparel-order-api/internal/middleware"
	"github.com/te-mata-wananga/apparel-order-api/internal/pdf"
	"github.com/te-mata-wananga/apparel-order-api/internal/service"
	"github.com/te-mata-wananga/apparel-order-api/internal/sheets"
	"github.com/te-mata-wananga/apparel-order-api/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting apparel order api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"environment", cfg.Environment,
		"log_level", cfg.LogLevel,
	)

	// Salary deduction form renderer; optional, orders go through without it
	var renderer service.Renderer
	if cfg.Render.Disabled {
		log.Warn("pdf rendering disabled, confirmations will carry no attachment")
	} else {
		renderer = pdf.NewRenderer(time.Duration(cfg.Render.Timeout)*time.Second, log)
	}

	// Confirmation email delivery
	notifier := email.NewNotifier(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
		cfg.Contact.PayrollEmail,
		cfg.Contact.OrdersEmail,
		log,
	)

	// Back-office ledger; a construction failure must not stop the service
	// because recording is best-effort at request time too
	var ledger service.Ledger
	if cfg.Sheets.Disabled {
		log.Warn("ledger recording disabled")
	} else {
		recorder, err := sheets.NewRecorder(
			context.Background(),
			[]byte(cfg.Sheets.CredentialsJSON),
			cfg.Sheets.SpreadsheetID,
			cfg.Sheets.AppendRange,
			cfg.Sheets.BlankColumns,
			log,
		)
		if err != nil {
			log.Error("failed to initialize ledger recorder, continuing without it", "error", err)
		} else {
			ledger = recorder
		}
	}

	// Initialize services
	orderService := service.NewOrderService(renderer, notifier, ledger, cfg.Payment.PlanDates, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	orderHandler := handlers.NewOrderHandler(orderService, cfg.IsProduction(), log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(time.Duration(cfg.Server.WriteTimeout) * time.Second))

	// CORS configuration; the form is served from a different origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// Order submission; /submit-order is the path the original form posts to
	r.Post("/submit-order", orderHandler.SubmitOrder)
	r.Route("/api", func(r chi.Router) {
		r.Post("/order", orderHandler.SubmitOrder)
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
