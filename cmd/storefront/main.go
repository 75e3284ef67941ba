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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"storefront/internal/app/ledger"
	"storefront/internal/app/orders"
	"storefront/internal/app/payments"
	"storefront/internal/config"
	"storefront/internal/gateway"
	"storefront/internal/handler/http/checkout"
	"storefront/internal/infrastructure/database"
	"storefront/internal/infrastructure/kafka"
	"storefront/internal/linkcache"
	"storefront/internal/repository/ledger_repo"
	sheets_ledger_repo "storefront/internal/repository/ledger_repo/sheets"
	postgres_link_repo "storefront/internal/repository/link_repo/postgres"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.TimeKey = "timestamp"

	appLogger, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create zap logger: %v\n", err)
		os.Exit(1)
	}
	appLogger.Info("Storefront service starting...")

	appLogger.Info("Waiting for database to be available...")
	dbConfig := database.DBConfig{
		Host:     cfg.DBConfig.DBHost,
		Port:     cfg.DBConfig.DBPort,
		User:     cfg.DBConfig.DBUser,
		Password: cfg.DBConfig.DBPassword,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.DBSSLMode,
	}

	var db *sql.DB
	maxRetries := 10
	retryDelay := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = database.NewPostgresDB(dbConfig)
		if err == nil {
			appLogger.Info("Successfully connected to PostgreSQL database!")
			break
		}
		appLogger.Warn(fmt.Sprintf("Failed to connect to database (attempt %d/%d): %v. Retrying in %s...", i+1, maxRetries, err, retryDelay))
		time.Sleep(retryDelay)
	}

	if db == nil {
		appLogger.Fatal("Could not connect to database after multiple retries. Exiting.", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Error closing database connection", zap.Error(err))
		} else {
			appLogger.Info("Database connection closed.")
		}
	}()

	appLogger.Info("Running database migrations...")
	migrateDSN := "postgres://" + cfg.GetDBMigrationConnectionString()
	m, err := migrate.New(cfg.MigrationsPath, migrateDSN)
	if err != nil {
		appLogger.Fatal("Failed to create migrate instance", zap.Error(err))
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		appLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}
	appLogger.Info("Database migrations completed successfully (or no new migrations).")

	linkRepository := postgres_link_repo.NewLinkRepository(db, appLogger.With(zap.String("component", "LinkRepository")))
	linkCache := linkcache.NewCache(linkRepository, cfg.LinkRefreshInterval, cfg.LinkLookupTimeout, appLogger.With(zap.String("component", "LinkCache")))

	startCtx, startCancel := context.WithTimeout(context.Background(), cfg.LinkLookupTimeout)
	linkCache.Start(startCtx)
	startCancel()
	defer linkCache.Stop()

	paymentGateway := gateway.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, appLogger.With(zap.String("component", "RazorpayGateway")))

	var ledgerRepository ledger_repo.LedgerRepository
	ledgerRepository, err = sheets_ledger_repo.NewLedgerRepository(context.Background(), sheets_ledger_repo.Config{
		SpreadsheetID: cfg.SpreadsheetID,
		TabName:       cfg.SpreadsheetTab,
		ClientEmail:   cfg.GoogleClientEmail,
		PrivateKey:    cfg.GooglePrivateKey,
	}, appLogger.With(zap.String("component", "LedgerRepository")))
	if err != nil {
		// Ledger misconfiguration does not block payments. Every append
		// degrades to "verified but not recorded".
		appLogger.Warn("Ledger store unavailable, payments will be verified without being recorded", zap.Error(err))
		ledgerRepository = ledger_repo.NewUnavailable(err.Error())
	}
	ledgerRecorder := ledger.NewRecorder(ledgerRepository, cfg.LedgerTimeout, cfg.LedgerMaxRetries, appLogger.With(zap.String("component", "LedgerRecorder")))

	kafkaProducer, err := kafka.NewProducer(cfg.GetKafkaBrokers(), appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create Kafka producer", zap.Error(err))
	}
	defer func() {
		if err := kafkaProducer.Close(); err != nil {
			appLogger.Error("Error closing Kafka producer", zap.Error(err))
		}
	}()
	appLogger.Info("Kafka producer created successfully.")

	orderService := orders.NewOrderService(paymentGateway, linkCache, cfg.RazorpayKeyID, cfg.GatewayTimeout, appLogger.With(zap.String("component", "OrderService")))
	verificationService := payments.NewVerificationService(cfg.RazorpayKeySecret, ledgerRecorder, kafkaProducer, cfg.KafkaPaymentEventsTopic, appLogger.With(zap.String("component", "VerificationService")))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	checkout.RegisterRoutes(r, orderService, verificationService, appLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	serverAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()
	appLogger.Info("Storefront service started", zap.String("address", serverAddr))

	<-sigChan

	appLogger.Info("Shutting down storefront service...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Fatal("Storefront graceful shutdown failed", zap.Error(err))
	}
	appLogger.Info("Storefront service stopped.")
}
