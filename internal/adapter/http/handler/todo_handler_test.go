package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	. "todoapp/pkg/test"

	"todoapp/internal/adapter/database/sqlite"
	"todoapp/internal/adapter/database/sqlite/repository"
	"todoapp/internal/adapter/http/middleware"
	"todoapp/internal/core/port"
	"todoapp/internal/core/service"
	"todoapp/pkg/auth"
	"todoapp/pkg/test/factory"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
)

type TodoHandlerSuite struct {
	suite.Suite
	UserRepo port.UserRepository
	Router   *gin.Engine
	Token    string
	UserId   int
}

func (s *TodoHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")

	db := sqlite.WrapDB(InitTestDB())

	s.UserRepo = repository.NewUserRepository(db, nil)
	todoRepo := repository.NewTodoRepository(db, nil)

	todoHandler := NewTodoHandler(service.NewTodoService(todoRepo, nil), nil)

	user, err := s.UserRepo.Create(context.Background(), factory.NewUser())
	Expect(err).To(BeNil())

	s.UserId = user.ID
	s.Token, err = auth.CreateJwtTokenForUser(user.ID)
	Expect(err).To(BeNil())

	s.Router = setupTodoTestRouter(todoHandler)
}

func TestTodoHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TodoHandlerSuite))
}

func setupTodoTestRouter(todoHandler *TodoHandler) *gin.Engine {
	router := gin.New()

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

	return router
}

func (s *TodoHandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+s.Token)

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	return rr
}

func (s *TodoHandlerSuite) TestCreateTodo_Success() {
	rr := s.do("POST", "/todos", `{"name": "write docs", "priority": "medium"}`)

	Expect(rr.Code).To(Equal(http.StatusCreated))

	data := gin.H{}
	json.Unmarshal(rr.Body.Bytes(), &data)

	todo := data["data"].(map[string]any)
	Expect(todo["name"]).To(Equal("write docs"))
	Expect(todo["priority"]).To(Equal("medium"))
	Expect(todo["deadline"]).To(Equal("1970-01-01"))
}

func (s *TodoHandlerSuite) TestCreateTodo_ValidationError() {
	rr := s.do("POST", "/todos", `{"priority": "urgent"}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	data := gin.H{}
	json.Unmarshal(rr.Body.Bytes(), &data)

	errorBody := data["error"].(map[string]any)
	Expect(errorBody["code"]).To(Equal("VALIDATION_ERROR"))
}

func (s *TodoHandlerSuite) TestCreateTodo_DuplicateNameConflicts() {
	rr := s.do("POST", "/todos", `{"name": "only once", "priority": "small"}`)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	rr = s.do("POST", "/todos", `{"name": "only once", "priority": "big"}`)
	Expect(rr.Code).To(Equal(http.StatusConflict))

	data := gin.H{}
	json.Unmarshal(rr.Body.Bytes(), &data)

	errorBody := data["error"].(map[string]any)
	Expect(errorBody["code"]).To(Equal("DUPLICATE_KEY"))
}

func (s *TodoHandlerSuite) TestCreateTodo_BadDeadline() {
	rr := s.do("POST", "/todos", `{"name": "bad date", "priority": "small", "deadline": "31-12-2026"}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
}

func (s *TodoHandlerSuite) TestGetTodo_NotFound() {
	rr := s.do("GET", "/todos/4f9a7c2e-8a1b-4c3d-9e5f-6a7b8c9d0e1f", "")

	Expect(rr.Code).To(Equal(http.StatusNotFound))
}

func (s *TodoHandlerSuite) TestUpdateTodo_RoundTrip() {
	rr := s.do("POST", "/todos", `{"name": "v1", "priority": "small"}`)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	data := gin.H{}
	json.Unmarshal(rr.Body.Bytes(), &data)
	uid := data["data"].(map[string]any)["uuid"].(string)

	rr = s.do("PUT", "/todos/"+uid, `{"name": "v2", "priority": "big", "deadline": "2026-12-31"}`)
	Expect(rr.Code).To(Equal(http.StatusOK))

	updated := gin.H{}
	json.Unmarshal(rr.Body.Bytes(), &updated)

	todo := updated["data"].(map[string]any)
	Expect(todo["name"]).To(Equal("v2"))
	Expect(todo["deadline"]).To(Equal("2026-12-31"))
	Expect(todo["uuid"]).To(Equal(uid))
}

func (s *TodoHandlerSuite) TestDeleteTodo_ThenNotFound() {
	rr := s.do("POST", "/todos", `{"name": "short lived", "priority": "small"}`)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	data := gin.H{}
	json.Unmarshal(rr.Body.Bytes(), &data)
	uid := data["data"].(map[string]any)["uuid"].(string)

	rr = s.do("DELETE", "/todos/"+uid, "")
	Expect(rr.Code).To(Equal(http.StatusOK))

	rr = s.do("DELETE", "/todos/"+uid, "")
	Expect(rr.Code).To(Equal(http.StatusNotFound))
}

func (s *TodoHandlerSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest("GET", "/todos", nil)

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
}

func (s *TodoHandlerSuite) TestGetMyTodos_ScopedToSessionUser() {
	rr := s.do("POST", "/todos", `{"name": "mine", "priority": "small"}`)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	other, err := s.UserRepo.Create(context.Background(), factory.NewUser())
	Expect(err).To(BeNil())

	otherToken, err := auth.CreateJwtTokenForUser(other.ID)
	Expect(err).To(BeNil())

	req, _ := http.NewRequest("GET", "/me/todos", nil)
	req.Header.Set("Authorization", "Bearer "+otherToken)

	rr = httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusOK))

	data := gin.H{}
	json.Unmarshal(rr.Body.Bytes(), &data)

	Expect(data["data"]).To(BeEmpty())
}
