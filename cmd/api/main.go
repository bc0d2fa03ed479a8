package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	api "todoapp/internal/adapter/http"
	"todoapp/pkg/config"
	"todoapp/pkg/logger"
	"todoapp/pkg/tracing"
)

func main() {
	ctx := context.Background()

	config.Load()
	appConfig := config.GetDefaultConfig()

	lokiLogger, err := logger.NewLokiLogger("todoapp", appConfig.LokiURL)

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer lokiLogger.Sync()

	telemetry, err := tracing.InitTelemetry(tracing.TelemetryConfig{
		ServiceName:    "todoapp",
		ServiceVersion: "1.0.0",
		Environment:    appConfig.Environment,
		MetricsPort:    appConfig.MetricsPort,
		OTLPEndpoint:   appConfig.OTLPEndpoint,
	})

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer telemetry.Shutdown(ctx)

	metrics := tracing.NewAppMetrics(telemetry.PrometheusRegistry)
	metrics.StartSystemMetrics(ctx)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if os.Getenv("GIN_MODE") == "release" {
			appConfig.Environment = "production"
		}

		api.StartServerWithConfig(metrics, lokiLogger, appConfig)
	}()

	<-c
	lokiLogger.Logger.Info("Shutting down gracefully...")
}
