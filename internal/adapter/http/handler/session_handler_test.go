package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	. "todoapp/pkg/test"

	"todoapp/internal/adapter/database/sqlite"
	"todoapp/internal/adapter/database/sqlite/repository"
	"todoapp/internal/adapter/http/middleware"
	"todoapp/internal/core/port"
	"todoapp/internal/core/service"
	"todoapp/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
)

type SessionHandlerSuite struct {
	suite.Suite
	UserRepo port.UserRepository
	Router   *gin.Engine
}

func (s *SessionHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")

	db := sqlite.WrapDB(InitTestDB())

	s.UserRepo = repository.NewUserRepository(db, nil)

	sessionHandler := NewSessionHandler(service.NewIdentityService(s.UserRepo, nil), nil)

	router := gin.New()

	principal := router.Group("/")
	principal.Use(middleware.PrincipalMiddleware())
	{
		principal.POST("/session", sessionHandler.CreateSession)
		principal.GET("/me/username", sessionHandler.GetUsername)
	}

	s.Router = router
}

func TestSessionHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(SessionHandlerSuite))
}

func (s *SessionHandlerSuite) doWithClaims(method, path string, claims jwt.MapClaims) *httptest.ResponseRecorder {
	token, err := auth.CreateJwtTokenWithClaims(claims)
	Expect(err).To(BeNil())

	req, _ := http.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	return rr
}

func (s *SessionHandlerSuite) TestCreateSession_GoogleFirstLogin() {
	rr := s.doWithClaims("POST", "/session", jwt.MapClaims{
		"provider": "google",
		"sub":      "google-sub-10",
		"name":     "New User",
		"email":    "new@example.com",
	})

	Expect(rr.Code).To(Equal(http.StatusCreated))

	data := gin.H{}
	json.Unmarshal(rr.Body.Bytes(), &data)

	session := data["data"].(map[string]any)
	Expect(session["token"]).NotTo(BeEmpty())

	user := session["user"].(map[string]any)
	Expect(user["email"]).To(Equal("new@example.com"))
	Expect(user["google_id"]).To(Equal("google-sub-10"))
}

func (s *SessionHandlerSuite) TestCreateSession_GithubLinksExistingEmail() {
	rr := s.doWithClaims("POST", "/session", jwt.MapClaims{
		"provider": "google",
		"sub":      "google-sub-11",
		"name":     "Linked User",
		"email":    "linked@example.com",
	})
	Expect(rr.Code).To(Equal(http.StatusCreated))

	rr = s.doWithClaims("POST", "/session", jwt.MapClaims{
		"provider": "github",
		"id":       4242,
		"login":    "linkeduser",
		"email":    "linked@example.com",
	})
	Expect(rr.Code).To(Equal(http.StatusCreated))

	data := gin.H{}
	json.Unmarshal(rr.Body.Bytes(), &data)

	user := data["data"].(map[string]any)["user"].(map[string]any)
	Expect(user["google_id"]).To(Equal("google-sub-11"))
	Expect(user["github_id"]).To(Equal("4242"))
}

func (s *SessionHandlerSuite) TestCreateSession_UnsupportedProvider() {
	rr := s.doWithClaims("POST", "/session", jwt.MapClaims{
		"provider": "gitlab",
		"email":    "who@example.com",
	})

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	data := gin.H{}
	json.Unmarshal(rr.Body.Bytes(), &data)

	errorBody := data["error"].(map[string]any)
	Expect(errorBody["code"]).To(Equal("UNSUPPORTED_PRINCIPAL"))
}

func (s *SessionHandlerSuite) TestCreateSession_MissingAttribute() {
	rr := s.doWithClaims("POST", "/session", jwt.MapClaims{
		"provider": "google",
		"name":     "No Sub",
		"email":    "nosub@example.com",
	})

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	data := gin.H{}
	json.Unmarshal(rr.Body.Bytes(), &data)

	errorBody := data["error"].(map[string]any)
	Expect(errorBody["code"]).To(Equal("MISSING_ATTRIBUTE"))
}

func (s *SessionHandlerSuite) TestGetUsername_PerProvider() {
	rr := s.doWithClaims("GET", "/me/username", jwt.MapClaims{
		"provider": "google",
		"sub":      "google-sub-12",
		"name":     "Display Name",
		"email":    "display@example.com",
	})

	Expect(rr.Code).To(Equal(http.StatusOK))

	data := gin.H{}
	json.Unmarshal(rr.Body.Bytes(), &data)
	Expect(data["data"].(map[string]any)["username"]).To(Equal("Display Name"))

	rr = s.doWithClaims("GET", "/me/username", jwt.MapClaims{
		"provider": "github",
		"id":       4243,
		"login":    "octouser",
		"email":    "octo2@example.com",
	})

	Expect(rr.Code).To(Equal(http.StatusOK))

	json.Unmarshal(rr.Body.Bytes(), &data)
	Expect(data["data"].(map[string]any)["username"]).To(Equal("octouser"))
}

func (s *SessionHandlerSuite) TestMissingAssertion_Unauthorized() {
	req, _ := http.NewRequest("POST", "/session", nil)

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
}
