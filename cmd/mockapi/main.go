// Command mockapi serves the in-memory membership backend for local
// development against the gateway.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/octabyte/bm-gateway/config"
	"github.com/octabyte/bm-gateway/mockapi"
	"github.com/octabyte/bm-gateway/otel"
	"github.com/octabyte/bm-gateway/utils/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := cfg.ValidateMockAPI(); err != nil {
		panic(err)
	}

	logger.Init(&cfg.Logger)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	otelCfg := cfg.Otel
	otelCfg.ServiceName = cfg.MockAPI.ServiceName
	stopOtel, err := otel.InitOpenTelemetry(ctx, otelCfg)
	if err != nil {
		logger.LogFatal("failed to init opentelemetry", zap.Error(err))
	}
	defer stopOtel()

	server, err := mockapi.New(cfg.MockAPI, logger.Named("mockapi"))
	if err != nil {
		logger.LogFatal("failed to create server", zap.Error(err))
	}

	go func() {
		if err := server.Start(cfg.MockAPIAddr); err != nil {
			logger.LogError("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.LogError("shutdown failed", zap.Error(err))
	}
}
