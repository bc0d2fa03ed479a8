package handler

import (
	"net/http"

	. "todoapp/internal/adapter/http/helper"
	"todoapp/internal/adapter/http/middleware"
	"todoapp/internal/core/domain"
	"todoapp/internal/core/model/response"
	"todoapp/internal/core/port"
	"todoapp/pkg/auth"
	"todoapp/pkg/logger"
	. "todoapp/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type SessionHandler struct {
	svc    port.IdentityService
	Logger *logger.LokiLogger
}

func NewSessionHandler(svc port.IdentityService, logger *logger.LokiLogger) *SessionHandler {
	return &SessionHandler{
		svc:    svc,
		Logger: logger,
	}
}

// CreateSession resolves the verified principal into the canonical local
// user and issues the session token for the todo routes.
func (s *SessionHandler) CreateSession(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.session.CreateSession", []attribute.KeyValue{
		attribute.String("handler.operation", "CreateSession"),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	principal := middleware.CurrentPrincipal(c)

	if principal != nil {
		span.SetAttributes(attribute.String("principal.provider", string(principal.Provider())))
	}

	user, err := s.svc.Resolve(ctx, principal)

	if err != nil {
		AddSpanError(span, err)
		s.logError(c, err, "Failed to resolve principal")
		SendDomainError(c, err)
		return
	}

	token, err := auth.CreateJwtTokenForUser(user.ID)

	if err != nil {
		AddSpanError(span, err)
		s.logError(c, err, "Failed to issue session token")
		SendInternalError(c, "Error creating session")
		return
	}

	SendSuccess(c, http.StatusCreated, response.SessionResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

func (s *SessionHandler) GetUsername(c *gin.Context) {
	principal := middleware.CurrentPrincipal(c)

	username, err := s.svc.Username(principal)

	if err != nil {
		s.logError(c, err, "Failed to read principal username")
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.UsernameResponse{
		Username: username,
	})
}

func (s *SessionHandler) logError(c *gin.Context, err error, msg string) {
	if s.Logger == nil {
		return
	}

	s.Logger.ErrorWithTrace(c.Request.Context(), msg,
		zap.Error(err),
		zap.String("path", c.FullPath()),
	)
}

func toUserResponse(user domain.User) response.UserResponse {
	return response.UserResponse{
		UUID:      user.UUID,
		Email:     user.Email,
		GoogleId:  user.GoogleId,
		GithubId:  user.GithubId,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
