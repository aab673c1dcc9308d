package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/cnab"
	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
	fileUseCase "github.com/amirhossein-jamali/cnab-processor/internal/domain/usecase/file"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/usecase/processing"
	storeUseCase "github.com/amirhossein-jamali/cnab-processor/internal/domain/usecase/store"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/repository"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/storage"
	timeProvider "github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Logger.Format == "json", cfg.Logger.Level)
	defer func() { _ = appLogger.Flush() }()

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("Service stopped with error", map[string]any{"error": err.Error()})
		_ = appLogger.Flush()
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLogger coreport.Logger) error {
	ctx := context.Background()
	tp := timeProvider.NewRealTimeProvider()
	collector := metrics.NewCollector()

	dbConfig := &database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		SlowThreshold:   cfg.Database.SlowThreshold,
		LogLevel:        cfg.Database.LogLevel,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	}

	dbManager := database.NewManager(dbConfig, appLogger, tp).WithQueryObserver(collector)
	db, err := dbManager.Connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			appLogger.Error("Failed to close database", map[string]any{"error": err.Error()})
		}
	}()

	if sqlDB, err := db.DB(); err == nil {
		if err := collector.RegisterDBStats(sqlDB, dbConfig.Database); err != nil {
			appLogger.Warn("Failed to register database pool metrics", map[string]any{"error": err.Error()})
		}
	}

	if err := dbManager.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	fileStore, err := storage.NewFileStore(cfg.Storage.DataDir, cfg.Storage.MaxUploadBytes, tp, appLogger)
	if err != nil {
		return err
	}

	uow := dbManager.CreateUnitOfWork()
	fileRepo := repository.NewFileRepository(db, appLogger)

	parser := cnab.NewParser(cnab.NewDecoder(tp), cnab.WithMaxLines(cfg.Processing.MaxLines))
	validator := cnab.NewValidator(tp)
	processor := processing.NewProcessor(
		uow,
		fileStore,
		parser,
		validator,
		tp,
		appLogger,
		processing.WithErrorSummaryLimit(cfg.Processing.ErrorSummaryLimit),
		processing.WithMetrics(collector),
	)

	dispatcher := processing.NewDispatcher(processor, processing.DispatcherConfig{
		Workers:   cfg.Processing.WorkerCount,
		QueueSize: cfg.Processing.QueueSize,
		Retry: processing.RetryPolicy{
			MaxRetries:    cfg.Processing.MaxRetries,
			RetryInterval: coreport.Duration(cfg.Processing.RetryInterval),
			MaxInterval:   coreport.Duration(cfg.Processing.MaxRetryInterval),
			JitterFactor:  cfg.Processing.JitterFactor,
		},
	}, tp, appLogger, collector)
	dispatcher.Start()

	if cfg.Processing.RecoverOnStartup {
		enqueued, err := dispatcher.RecoverPending(ctx, fileRepo, cfg.Processing.RecoveryBatchSize)
		if err != nil {
			appLogger.Error("Failed to recover pending files", map[string]any{"error": err.Error()})
		} else if enqueued > 0 {
			appLogger.Info("Recovered pending files", map[string]any{"enqueued": enqueued})
		}
	}

	files := fileUseCase.NewFileUseCase(fileRepo, fileStore, dispatcher, dispatcher, tp, appLogger)
	stores := storeUseCase.NewStoreUseCase(
		repository.NewStoreRepository(db, appLogger),
		repository.NewTransactionRepository(db, appLogger),
		repository.NewTransactionTypeRepository(db, appLogger),
		appLogger,
	)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, collector)
	routes.SetupRoutes(router, routes.Handlers{
		File:    handler.NewFileHandler(files, cfg.Storage.MaxUploadBytes, appLogger),
		Store:   handler.NewStoreHandler(stores, appLogger),
		Health:  handler.NewHealthHandler(dbManager, 2*time.Second, appLogger),
		Metrics: collector.Handler(),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":     server.Addr,
			"env":      cfg.Environment,
			"data_dir": fileStore.DataDir(),
			"workers":  cfg.Processing.WorkerCount,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-quit:
	case err, ok := <-serverErr:
		if ok {
			runErr = fmt.Errorf("server failed: %w", err)
		}
	}

	appLogger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// stop taking uploads before draining the workers
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		appLogger.Warn("Dispatcher did not drain in time", map[string]any{"error": err.Error()})
	}

	appLogger.Info("Server exited gracefully", nil)
	return runErr
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	if cfg.Database.Driver == "postgres" {
		required := map[string]string{
			"database.host (or CNAB_DB_HOST)":         cfg.Database.Host,
			"database.username (or CNAB_DB_USERNAME)": cfg.Database.Username,
			"database.password (or CNAB_DB_PASSWORD)": cfg.Database.Password,
			"database.database (or CNAB_DB_NAME)":     cfg.Database.Database,
		}
		for name, value := range required {
			if value == "" {
				missingConfigs = append(missingConfigs, name)
			}
		}
	}
	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	if cfg.Storage.DataDir == "" {
		missingConfigs = append(missingConfigs, "storage.dataDir")
	}
	if cfg.Processing.WorkerCount <= 0 {
		missingConfigs = append(missingConfigs, "processing.workerCount")
	}
	if cfg.Processing.QueueSize <= 0 {
		missingConfigs = append(missingConfigs, "processing.queueSize")
	}
	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	if cfg.Environment == config.Production {
		var warnings []string

		sslMode := strings.ToLower(cfg.Database.SSLMode)
		if cfg.Database.Driver == "postgres" && sslMode != "require" && sslMode != "verify-ca" && sslMode != "verify-full" {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}
		if cfg.Database.Driver == "sqlite" {
			warnings = append(warnings, "database.driver sqlite is meant for local runs and tests")
		}
		if cfg.Storage.MaxUploadBytes <= 0 {
			warnings = append(warnings, "storage.maxUploadBytes is unlimited")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential issues in production configuration: %v", warnings)
		}
	}

	return nil
}
