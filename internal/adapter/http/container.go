package http

import (
	"log/slog"

	database "todoapp/internal/adapter/database/sqlite"
	repository "todoapp/internal/adapter/database/sqlite/repository"

	"todoapp/internal/adapter/http/handler"
	"todoapp/internal/core/port"
	"todoapp/internal/core/service"
	"todoapp/internal/core/telemetry"
	"todoapp/pkg/logger"
)

type Container struct {
	UserRepo port.UserRepository
	TodoRepo port.TodoRepository

	TodoUseCase     port.TodoService
	IdentityUseCase port.IdentityService

	TodoHandler    *handler.TodoHandler
	SessionHandler *handler.SessionHandler
}

func NewContainer(db *database.DB, log *logger.LokiLogger) *Container {
	probe := telemetry.NewOTELProbe(slog.Default())

	userRepo := repository.NewUserRepository(db, probe)
	todoRepo := repository.NewTodoRepository(db, probe)

	identitySvc := service.NewIdentityService(userRepo, probe)
	todoSvc := service.NewTodoService(todoRepo, probe)

	sessionHandler := handler.NewSessionHandler(identitySvc, log)
	todoHandler := handler.NewTodoHandler(todoSvc, log)

	return &Container{
		UserRepo:        userRepo,
		TodoRepo:        todoRepo,
		TodoUseCase:     todoSvc,
		IdentityUseCase: identitySvc,
		TodoHandler:     todoHandler,
		SessionHandler:  sessionHandler,
	}
}
