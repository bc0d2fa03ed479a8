package http

import (
	"log/slog"
	"net/http"
	"time"

	database "todoapp/internal/adapter/database/sqlite"
	"todoapp/internal/adapter/http/routes"

	"todoapp/pkg"
	"todoapp/pkg/config"
	"todoapp/pkg/logger"
	"todoapp/pkg/tracing"
)

func StartServer(metrics *tracing.AppMetrics, log *logger.LokiLogger) {
	StartServerWithConfig(metrics, log, config.GetDefaultConfig())
}

func StartServerWithConfig(metrics *tracing.AppMetrics, log *logger.LokiLogger, appConfig *config.AppConfig) {
	db, err := database.NewDB()

	if err != nil {
		slog.Error("Failed to open database", "error", err)
		return
	}

	defer db.Close()

	container := NewContainer(db, log)

	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		SessionHandler: container.SessionHandler,
		TodoHandler:    container.TodoHandler,
	}, metrics, log, appConfig)

	port := pkg.GetServerPort()

	slog.Info("Server starting",
		"port", port,
		"environment", appConfig.Environment,
		"rate_limit_enabled", appConfig.RateLimitEnabled)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Server failed to start", "error", err)
	}
}
