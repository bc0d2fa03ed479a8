package handler

import (
	"net/http"
	"time"

	. "todoapp/internal/adapter/http/helper"
	"todoapp/internal/adapter/http/middleware"
	"todoapp/internal/core/domain"
	"todoapp/internal/core/model/request"
	"todoapp/internal/core/model/response"
	"todoapp/internal/core/port"
	"todoapp/pkg/logger"
	. "todoapp/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type TodoHandler struct {
	svc    port.TodoService
	Logger *logger.LokiLogger
}

func NewTodoHandler(svc port.TodoService, logger *logger.LokiLogger) *TodoHandler {
	return &TodoHandler{
		svc:    svc,
		Logger: logger,
	}
}

func (t *TodoHandler) GetAllTodos(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.GetAllTodos", []attribute.KeyValue{
		attribute.String("handler.operation", "GetAllTodos"),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	todos, err := t.svc.List(ctx)

	if err != nil {
		AddSpanError(span, err)
		t.logError(c, err, "Failed to list todos")
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, toTodoResponses(todos))
}

func (t *TodoHandler) GetMyTodos(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.GetMyTodos", []attribute.KeyValue{
		attribute.String("handler.operation", "GetMyTodos"),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	userId := c.GetInt(middleware.UserIdKey)
	span.SetAttributes(attribute.Int("user.id", userId))

	todos, err := t.svc.ListForUser(ctx, userId)

	if err != nil {
		AddSpanError(span, err)
		t.logError(c, err, "Failed to list user todos")
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, toTodoResponses(todos))
}

func (t *TodoHandler) GetTodoByUUID(c *gin.Context) {
	ctx := c.Request.Context()

	todo, err := t.svc.Get(ctx, c.Param("uuid"))

	if err != nil {
		t.logError(c, err, "Failed to get todo")
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, toTodoResponse(todo))
}

func (t *TodoHandler) CreateTodo(c *gin.Context) {
	ctx := c.Request.Context()

	userId := c.GetInt(middleware.UserIdKey)

	var params request.TodoRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	todo, err := todoFromRequest(params, userId)

	if err != nil {
		SendBadRequestError(c, "deadline", err.Error())
		return
	}

	todo, err = t.svc.Save(ctx, todo)

	if err != nil {
		t.logError(c, err, "Failed to create todo")
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusCreated, toTodoResponse(todo))
}

func (t *TodoHandler) UpdateTodo(c *gin.Context) {
	ctx := c.Request.Context()

	userId := c.GetInt(middleware.UserIdKey)

	var params request.TodoRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	todo, err := todoFromRequest(params, userId)

	if err != nil {
		SendBadRequestError(c, "deadline", err.Error())
		return
	}

	todo, err = t.svc.Update(ctx, c.Param("uuid"), todo)

	if err != nil {
		t.logError(c, err, "Failed to update todo")
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, toTodoResponse(todo))
}

func (t *TodoHandler) DeleteByUUID(c *gin.Context) {
	ctx := c.Request.Context()

	if err := t.svc.Delete(ctx, c.Param("uuid")); err != nil {
		t.logError(c, err, "Failed to delete todo")
		SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Todo deleted successfully",
	})
}

func (t *TodoHandler) logError(c *gin.Context, err error, msg string) {
	if t.Logger == nil {
		return
	}

	t.Logger.ErrorWithTrace(c.Request.Context(), msg,
		zap.Error(err),
		zap.String("path", c.FullPath()),
	)
}

func todoFromRequest(params request.TodoRequest, userId int) (domain.Todo, error) {
	todo := domain.Todo{
		Name:     params.Name,
		Priority: domain.Priority(params.Priority),
		UserId:   userId,
	}

	if params.Deadline != "" {
		deadline, err := time.Parse(time.DateOnly, params.Deadline)
		if err != nil {
			return domain.Todo{}, err
		}
		todo.Deadline = deadline
	}

	return todo, nil
}

func toTodoResponse(todo domain.Todo) response.TodoResponse {
	return response.TodoResponse{
		UUID:      todo.UUID,
		Name:      todo.Name,
		Deadline:  todo.Deadline.Format(time.DateOnly),
		Priority:  todo.Priority.String(),
		CreatedAt: todo.CreatedAt,
		UpdatedAt: todo.UpdatedAt,
	}
}

func toTodoResponses(todos []domain.Todo) []response.TodoResponse {
	responses := make([]response.TodoResponse, 0, len(todos))

	for _, todo := range todos {
		responses = append(responses, toTodoResponse(todo))
	}

	return responses
}
