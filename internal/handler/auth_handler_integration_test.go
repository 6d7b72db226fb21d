package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobsoutcuba/backend/internal/handler"
	"github.com/jobsoutcuba/backend/internal/middleware"
	"github.com/jobsoutcuba/backend/internal/repository"
	"github.com/jobsoutcuba/backend/internal/service"
	"github.com/jobsoutcuba/backend/internal/testutil"
	"github.com/jobsoutcuba/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const testSecret = "test-secret-key"

type AuthHandlerIntegrationTestSuite struct {
	suite.Suite
	testDB *testutil.TestDatabase
	router *gin.Engine
}

func (s *AuthHandlerIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())

	usuarioRepo := repository.NewUsuarioRepository(s.testDB.DB)
	authService := service.NewAuthService(usuarioRepo, testSecret, time.Hour, 24*time.Hour)
	authHandler := handler.NewAuthHandler(authService)

	s.router = gin.New()
	s.router.POST("/api/auth/register", authHandler.Register)
	s.router.POST("/api/auth/login", authHandler.Login)
	s.router.POST("/api/auth/refresh", authHandler.Refresh)
	s.router.GET("/api/auth/perfil", middleware.AuthMiddleware(testSecret), authHandler.Perfil)
	s.router.GET("/api/auth/disponible/:username", authHandler.UsernameDisponible)
}

func (s *AuthHandlerIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *AuthHandlerIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func (s *AuthHandlerIntegrationTestSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	bodyBytes, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthHandlerIntegrationTestSuite) register(username string) map[string]interface{} {
	w := s.postJSON("/api/auth/register", map[string]string{
		"nombre":   "Prueba",
		"username": username,
		"email":    username + "@example.com",
		"password": "ClaveSegura123",
	})
	assert.Equal(s.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func (s *AuthHandlerIntegrationTestSuite) TestRegisterSuccess() {
	response := s.register("nuevo")

	assert.Equal(s.T(), true, response["success"])
	assert.Equal(s.T(), "Usuario registrado exitosamente", response["message"])

	data := response["data"].(map[string]interface{})
	assert.NotEmpty(s.T(), data["token"])
	assert.NotEmpty(s.T(), data["refreshToken"])

	user := data["user"].(map[string]interface{})
	assert.Equal(s.T(), "nuevo", user["username"])
	assert.Equal(s.T(), "trabajador", user["rol"])
	// Password hash never leaves the API
	_, exposed := user["password_hash"]
	assert.False(s.T(), exposed)
}

func (s *AuthHandlerIntegrationTestSuite) TestRegisterDuplicado() {
	s.register("nuevo")

	w := s.postJSON("/api/auth/register", map[string]string{
		"nombre":   "Prueba",
		"username": "nuevo",
		"email":    "otro@example.com",
		"password": "ClaveSegura123",
	})

	assert.Equal(s.T(), http.StatusConflict, w.Code)

	var response map[string]interface{}
	assert.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(s.T(), false, response["success"])

	errBody := response["error"].(map[string]interface{})
	assert.Equal(s.T(), "fail", errBody["status"])
	assert.Equal(s.T(), float64(http.StatusConflict), errBody["statusCode"])
}

func (s *AuthHandlerIntegrationTestSuite) TestRegisterBodyInvalido() {
	w := s.postJSON("/api/auth/register", map[string]string{"nombre": "Sin username"})

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *AuthHandlerIntegrationTestSuite) TestLoginYPerfil() {
	s.register("nuevo")

	w := s.postJSON("/api/auth/login", map[string]string{
		"username": "nuevo",
		"password": "ClaveSegura123",
	})
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &response))
	token := response["data"].(map[string]interface{})["token"].(string)

	req, _ := http.NewRequest(http.MethodGet, "/api/auth/perfil", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(s.T(), http.StatusOK, rec.Code)
	var perfil map[string]interface{}
	assert.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &perfil))
	assert.Equal(s.T(), "nuevo", perfil["data"].(map[string]interface{})["username"])
}

func (s *AuthHandlerIntegrationTestSuite) TestLoginIncorrecto() {
	s.register("nuevo")

	w := s.postJSON("/api/auth/login", map[string]string{
		"username": "nuevo",
		"password": "mala",
	})

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *AuthHandlerIntegrationTestSuite) TestPerfilSinToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/auth/perfil", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *AuthHandlerIntegrationTestSuite) TestRefresh() {
	response := s.register("nuevo")
	refresh := response["data"].(map[string]interface{})["refreshToken"].(string)

	w := s.postJSON("/api/auth/refresh", map[string]string{"refreshToken": refresh})
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(s.T(), body["data"].(map[string]interface{})["token"])
}

func (s *AuthHandlerIntegrationTestSuite) TestUsernameDisponible() {
	req, _ := http.NewRequest(http.MethodGet, "/api/auth/disponible/libre", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var body map[string]interface{}
	assert.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(s.T(), true, body["data"].(map[string]interface{})["disponible"])

	s.register("ocupado")
	req, _ = http.NewRequest(http.MethodGet, "/api/auth/disponible/ocupado", nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var after map[string]interface{}
	assert.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &after))
	assert.Equal(s.T(), false, after["data"].(map[string]interface{})["disponible"])
}

func TestAuthHandlerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerIntegrationTestSuite))
}
