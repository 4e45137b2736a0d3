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

	"github.com/polisq/polisq/internal/api"
	"github.com/polisq/polisq/internal/audit"
	"github.com/polisq/polisq/internal/auth"
	"github.com/polisq/polisq/internal/config"
	"github.com/polisq/polisq/internal/history"
	"github.com/polisq/polisq/internal/migrations"
	"github.com/polisq/polisq/internal/nl2sql"
	"github.com/polisq/polisq/internal/observability"
	"github.com/polisq/polisq/internal/query/sqldb"
	"github.com/polisq/polisq/internal/seed"
	"github.com/polisq/polisq/internal/store"
	s3store "github.com/polisq/polisq/internal/storage/s3"
)

func main() {
	cfg, err := config.LoadFromEnv("polisq-api")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stdout)

	db, err := store.Open(context.Background(), store.Config{
		DSN:             cfg.Store.DSN,
		MaxOpenConns:    cfg.Store.MaxOpenConns,
		MaxIdleConns:    cfg.Store.MaxIdleConns,
		ConnMaxIdleTime: cfg.Store.ConnMaxIdleTime,
		ConnMaxLifetime: cfg.Store.ConnMaxLifetime,
	})
	if err != nil {
		logger.Error("failed to open store", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	runner := migrations.NewRunner()
	applied, err := runner.Up(context.Background(), db, 0)
	if err != nil {
		logger.Error("failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}
	if applied > 0 {
		logger.Info("applied migrations", slog.Int("count", applied))
	}

	seeder := seed.New(db)
	hasData, err := seeder.HasData(context.Background())
	if err != nil {
		logger.Error("failed to inspect store", slog.Any("error", err))
		os.Exit(1)
	}
	if !hasData {
		summary, err := seeder.Seed(context.Background(), cfg.Seed.Records)
		if err != nil {
			logger.Error("failed to seed fixtures", slog.Any("error", err))
			os.Exit(1)
		}
		recordSeedMetrics(summary)
		logger.Info("seeded fixtures",
			slog.Int("customers", summary.Customers),
			slog.Int("policies", summary.Policies),
			slog.Int("claims", summary.Claims),
		)
	}

	translator, err := nl2sql.NewOpenAITranslator(nl2sql.OpenAIConfig{
		BaseURL:     cfg.AI.BaseURL,
		APIKey:      cfg.AI.APIKey,
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		Timeout:     cfg.AI.Timeout,
	})
	if err != nil {
		logger.Error("failed to initialize translator", slog.Any("error", err))
		os.Exit(1)
	}

	auditLog := audit.NewLog()
	deps := api.Dependencies{
		Logger:            logger,
		Translator:        translator,
		Engine:            sqldb.NewEngine(db),
		Transcript:        history.NewTranscript(),
		AuditLog:          auditLog,
		Readiness:         api.CheckStore(db),
		DependencyTimeout: time.Second,
		Reset: func(ctx context.Context) (seed.Summary, error) {
			if err := runner.Reset(ctx, db); err != nil {
				return seed.Summary{}, err
			}
			summary, err := seed.New(db).Seed(ctx, cfg.Seed.Records)
			if err != nil {
				return seed.Summary{}, err
			}
			recordSeedMetrics(summary)
			return summary, nil
		},
	}

	if cfg.Audit.ArchiveEnabled {
		objectStore, err := s3store.New(context.Background(), s3store.Config{
			Endpoint:         cfg.Audit.Endpoint,
			Region:           cfg.Audit.Region,
			Bucket:           cfg.Audit.Bucket,
			AccessKeyID:      cfg.Audit.AccessKeyID,
			SecretAccessKey:  cfg.Audit.SecretAccessKey,
			UseSSL:           cfg.Audit.UseSSL,
			Prefix:           cfg.Audit.Prefix,
			AutoCreateBucket: true,
		})
		if err != nil {
			logger.Error("failed to initialize audit object store", slog.Any("error", err))
			os.Exit(1)
		}
		deps.Archiver = audit.NewArchiver(auditLog, objectStore, cfg.Service.Name, logger)
	}

	if cfg.Auth.Required {
		validator, err := auth.NewStaticAPIKeyValidator(cfg.Auth.StaticKeys)
		if err != nil {
			logger.Error("failed to parse static auth keys", slog.Any("error", err))
			os.Exit(1)
		}
		deps.AuthMiddleware = auth.Middleware(logger, validator)
	}

	handler := api.NewHandler(cfg, deps)
	server := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting api server", slog.String("addr", cfg.HTTP.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down api server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		_ = server.Close()
		os.Exit(1)
	}
}

func recordSeedMetrics(summary seed.Summary) {
	observability.AddSeededRows("addresses", summary.Addresses)
	observability.AddSeededRows("agents", summary.Agents)
	observability.AddSeededRows("customers", summary.Customers)
	observability.AddSeededRows("policy_types", summary.PolicyTypes)
	observability.AddSeededRows("policies", summary.Policies)
	observability.AddSeededRows("claims", summary.Claims)
	observability.AddSeededRows("prospects", summary.Prospects)
}
