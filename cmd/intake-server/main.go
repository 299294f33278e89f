// cmd/intake-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"competition-intake/internal/auth"
	"competition-intake/internal/common/config"
	"competition-intake/internal/common/database"
	"competition-intake/internal/common/logger"
	"competition-intake/internal/notify"
	"competition-intake/internal/server"
	"competition-intake/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = zapLogger.Sync() }()
	log := logger.NewZapAdapter(zapLogger)

	zapLogger.Info("starting intake server",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	redisClient, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		zapLogger.Fatal("failed to build redis client", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelPing()
	if err := retryWithBackoff(func() error {
		return redisClient.Ping(pingCtx)
	}, 5, 1*time.Second, zapLogger, "redis connect"); err != nil {
		zapLogger.Fatal("redis unreachable", zap.Error(err))
	}

	recordStore := store.NewRedisStore(redisClient, log)

	notifier, err := notify.New(context.Background(), cfg.Notifications, log)
	if err != nil {
		zapLogger.Fatal("failed to build notifier", zap.Error(err))
	}

	gate := auth.NewBasicAuth(cfg.Admin, log)
	srv := server.New(cfg.Server, recordStore, notifier, log)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      srv.Handler(gate, redisClient.Ping),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info("listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// pprof on a separate loopback port, kept off the public listener
	go func() {
		if err := http.ListenAndServe("localhost:6061", nil); err != nil {
			zapLogger.Warn("pprof listener failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
