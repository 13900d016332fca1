package handlers_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"ifc-reuse-backend/internal/api/handlers"
	apperrors "ifc-reuse-backend/internal/errors"
	"ifc-reuse-backend/internal/mocks"
	"ifc-reuse-backend/internal/service"
	"ifc-reuse-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type UserHandlerTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockUserService *mocks.MockUserServiceInterface
	auth            *authFixture
	http            *testutils.HTTPTestSuite
}

func (suite *UserHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockUserService = mocks.NewMockUserServiceInterface(suite.ctrl)
	suite.auth = newAuthFixture(suite.T())

	handler := handlers.NewUserHandler(suite.mockUserService)
	suite.http = newHTTPSuite()
	suite.http.Router.POST("/api/auth/register", handler.Register)
	suite.http.Router.POST("/api/auth/login", handler.Login)
	suite.http.Router.GET("/api/v1/users/me", suite.auth.middleware.RequireAuth(), handler.GetCurrentUser)
}

func (suite *UserHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *UserHandlerTestSuite) TestRegister_Success() {
	suite.mockUserService.EXPECT().Register(gomock.Any()).DoAndReturn(func(req *service.RegisterRequest) (*service.UserResponse, error) {
		assert.Equal(suite.T(), "jane@example.com", req.Email)
		return &service.UserResponse{ID: uuid.New(), Name: req.Name, Email: req.Email, Role: "user", CreatedAt: time.Now()}, nil
	})

	recorder := suite.http.MakeRequest(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Jane", "email": "jane@example.com", "password": "correct horse",
	})

	var resp service.UserResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusCreated, &resp)
	assert.Equal(suite.T(), "jane@example.com", resp.Email)
}

func (suite *UserHandlerTestSuite) TestRegister_Conflict() {
	suite.mockUserService.EXPECT().Register(gomock.Any()).Return(nil, apperrors.ErrUserExists)

	recorder := suite.http.MakeRequest(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Jane", "email": "jane@example.com", "password": "correct horse",
	})

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusConflict, "user already exists with this email")
}

func (suite *UserHandlerTestSuite) TestRegister_ValidationError() {
	suite.mockUserService.EXPECT().Register(gomock.Any()).Return(nil, apperrors.NewValidationError("password", "failed on the 'min=8' rule"))

	recorder := suite.http.MakeRequest(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Jane", "email": "jane@example.com", "password": "short",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, recorder.Code)
	assert.Contains(suite.T(), recorder.Body.String(), "password")
}

func (suite *UserHandlerTestSuite) TestRegister_MalformedJSON() {
	recorder := suite.http.MakeRequest(http.MethodPost, "/api/auth/register", "not an object")

	assert.Equal(suite.T(), http.StatusBadRequest, recorder.Code)
}

func (suite *UserHandlerTestSuite) TestLogin() {
	suite.mockUserService.EXPECT().Login(gomock.Any()).Return(&service.LoginResponse{
		AccessToken: "token",
		TokenType:   "Bearer",
		ExpiresIn:   3600,
	}, nil)

	recorder := suite.http.MakeRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "jane@example.com", "password": "correct horse",
	})

	var resp service.LoginResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &resp)
	assert.Equal(suite.T(), "token", resp.AccessToken)
}

func (suite *UserHandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.mockUserService.EXPECT().Login(gomock.Any()).Return(nil, apperrors.ErrInvalidCredentials)

	recorder := suite.http.MakeRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "jane@example.com", "password": "wrong",
	})

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusUnauthorized, "invalid email or password")
}

func (suite *UserHandlerTestSuite) TestLogin_InternalErrorIsHidden() {
	suite.mockUserService.EXPECT().Login(gomock.Any()).Return(nil, errors.New("pq: connection refused"))

	recorder := suite.http.MakeRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "jane@example.com", "password": "correct horse",
	})

	assert.Equal(suite.T(), http.StatusInternalServerError, recorder.Code)
	assert.NotContains(suite.T(), recorder.Body.String(), "connection refused")
	assert.Contains(suite.T(), recorder.Body.String(), recorder.Header().Get("X-Request-ID"))
}

func (suite *UserHandlerTestSuite) TestGetCurrentUser() {
	user := suite.auth.user
	suite.mockUserService.EXPECT().GetByID(user.ID).Return(&service.UserResponse{ID: user.ID, Email: user.Email, Role: "user"}, nil)

	recorder := suite.http.MakeRequestWithHeaders(http.MethodGet, "/api/v1/users/me", nil, suite.auth.headers(suite.T(), user))

	var resp service.UserResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &resp)
	assert.Equal(suite.T(), user.ID, resp.ID)
}

func (suite *UserHandlerTestSuite) TestGetCurrentUser_NoToken() {
	recorder := suite.http.MakeRequest(http.MethodGet, "/api/v1/users/me", nil)

	assert.Equal(suite.T(), http.StatusUnauthorized, recorder.Code)
}

func TestUserHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}
