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

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cashier-api/internal/config"
	"cashier-api/internal/database"
	"cashier-api/internal/drawer"
	"cashier-api/internal/logger"
	"cashier-api/internal/repositories"
	"cashier-api/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder, closeDB, err := openRecorder(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("open audit store", zap.String("driver", cfg.AuditDriver), zap.Error(err))
	}

	// --- Services ---
	cashDrawerService := services.NewCashDrawerService(drawer.NewEuro(), recorder, zl)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           SetupRoutes(zl, cashDrawerService, cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zl.Info("Server running", zap.String("port", cfg.Port), zap.String("audit_driver", cfg.AuditDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Error("listen", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = multierr.Combine(srv.Shutdown(shutdownCtx), closeDB())
	if err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
}

// openRecorder picks the audit store named by AUDIT_DRIVER.
func openRecorder(ctx context.Context, cfg config.Config, zl *zap.Logger) (services.SettlementRecorder, func() error, error) {
	switch cfg.AuditDriver {
	case config.AuditMySQL:
		db, err := database.NewMySQL(ctx, cfg.MySQLURL)
		if err != nil {
			return nil, nil, err
		}
		repo := repositories.NewCashDrawerRepository(db, zl)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, nil, multierr.Append(fmt.Errorf("mysql schema: %w", err), db.Close())
		}
		return repo, db.Close, nil

	case config.AuditPostgres:
		pool, err := database.NewPostgresPool(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		repo := repositories.NewPostgresCashDrawerRepository(pool, zl)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgres schema: %w", err)
		}
		return repo, func() error { pool.Close(); return nil }, nil

	default:
		return repositories.NewAuditLogRepository(zl), func() error { return nil }, nil
	}
}
