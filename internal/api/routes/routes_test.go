package routes_test

import (
	"net/http"
	"testing"
	"time"

	"ifc-reuse-backend/internal/api/routes"
	"ifc-reuse-backend/internal/config"
	"ifc-reuse-backend/internal/service"
	"ifc-reuse-backend/internal/storage"
	"ifc-reuse-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) *testutils.HTTPTestSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		JWTSecret:      "routes-test-secret",
		JWTTTL:         time.Hour,
		AdminEmails:    []string{"admin@example.com"},
		AllowedOrigins: []string{"*"},
		WorkDir:        t.TempDir(),
		MeshFormat:     "glb",
		MaxUploadBytes: 1 << 20,
	}
	router, err := routes.SetupRoutes(testutils.NewSQLiteDB(t), cfg, storage.NewMemoryStore())
	require.NoError(t, err)
	return &testutils.HTTPTestSuite{Router: router}
}

func TestSetupRoutes_Health(t *testing.T) {
	s := newRouter(t)

	recorder := s.MakeRequest(http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}

func TestSetupRoutes_APIRequiresToken(t *testing.T) {
	s := newRouter(t)

	for _, path := range []string{"/api/v1/projects", "/api/v1/components", "/api/v1/users/me"} {
		recorder := s.MakeRequest(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, path)
	}
}

func TestSetupRoutes_MeshIsPublic(t *testing.T) {
	s := newRouter(t)

	recorder := s.MakeRequest(http.MethodGet, "/api/v1/components/2O2Fr$t4X7Zf8NOew3FLOH/mesh", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = s.MakeRequest(http.MethodGet, "/components/2O2Fr$t4X7Zf8NOew3FLOH/glb", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestSetupRoutes_RegisterLoginFlow(t *testing.T) {
	s := newRouter(t)

	recorder := s.MakeRequest(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Admin", "email": "admin@example.com", "password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	recorder = s.MakeRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "admin@example.com", "password": "correct horse",
	})
	var login service.LoginResponse
	testutils.AssertJSONResponse(t, recorder, http.StatusOK, &login)
	require.NotEmpty(t, login.AccessToken)
	headers := testutils.BearerHeader(login.AccessToken)

	recorder = s.MakeRequestWithHeaders(http.MethodGet, "/api/v1/users/me", nil, headers)
	var me service.UserResponse
	testutils.AssertJSONResponse(t, recorder, http.StatusOK, &me)
	assert.Equal(t, "admin", me.Role)

	recorder = s.MakeRequestWithHeaders(http.MethodDelete, "/api/v1/projects", nil, headers)
	var deleted service.DeleteAllResponse
	testutils.AssertJSONResponse(t, recorder, http.StatusOK, &deleted)
	assert.Zero(t, deleted.Projects)
}

func TestSetupRoutes_UnknownEndpoint(t *testing.T) {
	s := newRouter(t)

	recorder := s.MakeRequest(http.MethodGet, "/api/v2/anything", nil)

	testutils.AssertErrorResponse(t, recorder, http.StatusNotFound, "Endpoint not found")
}
