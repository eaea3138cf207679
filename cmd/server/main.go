package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/tradewell/storefront/internal/adapter/handler"
	"github.com/tradewell/storefront/internal/adapter/storage"
	"github.com/tradewell/storefront/internal/core/service"
)

const (
	auditQueueSize   = 1000
	auditWorkerCount = 4
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	httpAddr := getenv("HTTP_ADDR", ":8080")
	mysqlDSN := getenv("MYSQL_DSN", "root:root@tcp(localhost:3306)/storefront?parseTime=true")
	redisAddr := getenv("REDIS_ADDR", "localhost:6379")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		logger.Error("failed to open mysql", "error", err)
		os.Exit(1)
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		logger.Error("failed to ping mysql", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to mysql")

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		PoolSize: 100,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect redis", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to redis")

	inventory := storage.NewMySQLInventory(db)
	ledger := storage.NewMySQLLedger(db)
	auditRepo := storage.NewMySQLAudit(db)
	cache := storage.NewRedisAdapter(rdb)

	auditLogger := service.NewAuditLogger(auditRepo, auditQueueSize, auditWorkerCount, logger)
	reconciler := service.NewReconciler(inventory)
	purchases := service.NewPurchaseService(reconciler, inventory, ledger, cache, logger)
	stock := service.NewStockService(inventory, auditLogger, logger)

	h := handler.NewHTTPHandler(purchases, stock, logger)
	httpServer := &http.Server{
		Addr:    httpAddr,
		Handler: h.Routes(),
	}

	go func() {
		logger.Info("http server listening", "addr", httpAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	logger.Info("http server stopped")

	// Drain pending audit entries before closing the stores they write to.
	auditLogger.Close()
	logger.Info("audit writer stopped")

	rdb.Close()
	db.Close()
	logger.Info("connections closed")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
