package routes

import (
	"todoapp/internal/adapter/http/handler"
	"todoapp/internal/adapter/http/middleware"
	"todoapp/pkg/config"
	"todoapp/pkg/logger"
	. "todoapp/pkg/tracing"

	"github.com/gin-gonic/gin"
)

type HandlersConfig struct {
	SessionHandler *handler.SessionHandler
	TodoHandler    *handler.TodoHandler
}

func SetupRouter(handlers HandlersConfig, metrics *AppMetrics, log *logger.LokiLogger) *gin.Engine {
	return SetupRouterWithConfig(handlers, metrics, log, config.GetDefaultConfig())
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *AppMetrics, log *logger.LokiLogger, appConfig *config.AppConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	middleware.SetupGinMiddlewareWithConfig(router, "todoapp", metrics, log, appConfig)

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	if handlers.SessionHandler != nil {
		setupPrincipalRoutes(router, handlers.SessionHandler)
	}

	if handlers.TodoHandler != nil {
		setupProtectedRoutes(router, handlers.TodoHandler)
	}

	return router
}

// setupPrincipalRoutes are entered with a provider-attribute assertion
// instead of a session token.
func setupPrincipalRoutes(router *gin.Engine, sessionHandler *handler.SessionHandler) {
	principal := router.Group("/")
	principal.Use(middleware.PrincipalMiddleware())
	{
		principal.POST("/session", sessionHandler.CreateSession)
		principal.GET("/me/username", sessionHandler.GetUsername)
	}
}

func setupProtectedRoutes(router *gin.Engine, todoHandler *handler.TodoHandler) {
	protected := router.Group("/")
	protected.Use(middleware.GinJwtMiddleware())
	{
		protected.GET("/todos", todoHandler.GetAllTodos)
		protected.GET("/me/todos", todoHandler.GetMyTodos)
		protected.GET("/todos/:uuid", todoHandler.GetTodoByUUID)
		protected.POST("/todos", todoHandler.CreateTodo)
		protected.PUT("/todos/:uuid", todoHandler.UpdateTodo)
		protected.DELETE("/todos/:uuid", todoHandler.DeleteByUUID)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	if handlers.SessionHandler != nil {
		setupPrincipalRoutes(router, handlers.SessionHandler)
	}

	if handlers.TodoHandler != nil {
		setupProtectedRoutes(router, handlers.TodoHandler)
	}

	return router
}
