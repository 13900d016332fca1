package handlers_test

import (
	"testing"

	"ifc-reuse-backend/internal/api/middleware"
	"ifc-reuse-backend/internal/auth"
	"ifc-reuse-backend/internal/database/models"
	"ifc-reuse-backend/internal/testutils"

	"github.com/stretchr/testify/require"
)

// authFixture signs tokens for a regular user and an admin
type authFixture struct {
	service    *auth.AuthService
	middleware *auth.AuthMiddleware
	user       *models.User
	admin      *models.User
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	svc, err := auth.NewAuthService(&auth.AuthConfig{JWTSecret: "handler-test-secret"})
	require.NoError(t, err)

	factory := testutils.NewUserFactory()
	return &authFixture{
		service:    svc,
		middleware: auth.NewAuthMiddleware(svc),
		user:       factory.Create(),
		admin:      factory.Admin(),
	}
}

func (f *authFixture) headers(t *testing.T, user *models.User) map[string]string {
	t.Helper()
	token, err := f.service.GenerateJWT(user)
	require.NoError(t, err)
	return testutils.BearerHeader(token)
}

// newHTTPSuite builds a router with the request id and recovery middleware in front
func newHTTPSuite() *testutils.HTTPTestSuite {
	s := testutils.SetupHTTPTest()
	s.Router.Use(middleware.RequestID(), middleware.Recovery())
	return s
}
