package handlers_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

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

type UploadHandlerTestSuite struct {
	suite.Suite
	ctrl              *gomock.Controller
	mockIngestService *mocks.MockIngestServiceInterface
	auth              *authFixture
	http              *testutils.HTTPTestSuite
}

func (suite *UploadHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockIngestService = mocks.NewMockIngestServiceInterface(suite.ctrl)
	suite.auth = newAuthFixture(suite.T())

	handler := handlers.NewUploadHandler(suite.mockIngestService)
	suite.http = newHTTPSuite()
	suite.http.Router.POST("/api/v1/uploads", suite.auth.middleware.RequireAuth(), handler.Upload)
}

func (suite *UploadHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *UploadHandlerTestSuite) post(filename string, content []byte) *httptest.ResponseRecorder {
	return suite.http.MakeMultipartRequest("/api/v1/uploads",
		map[string]string{"projectName": "Haus", "location": "Berlin"},
		"file", filename, content, suite.auth.headers(suite.T(), suite.auth.user))
}

func (suite *UploadHandlerTestSuite) TestUpload_Success() {
	projectID := uuid.New()
	user := suite.auth.user
	suite.mockIngestService.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, actor service.Actor, req *service.UploadRequest) (*service.UploadSummary, error) {
			assert.Equal(suite.T(), user.ID, actor.UserID)
			assert.False(suite.T(), actor.Admin)
			assert.Equal(suite.T(), "house.ifc", req.Filename)
			assert.Equal(suite.T(), "Haus", req.ProjectName)
			assert.Equal(suite.T(), "Berlin", req.Location)
			assert.Equal(suite.T(), int64(13), req.Size)
			body, _ := io.ReadAll(req.Body)
			assert.Equal(suite.T(), "ISO-10303-21;", string(body))
			return &service.UploadSummary{
				ProjectID:        projectID,
				Filename:         "house.ifc",
				Walls:            2,
				MeshFilesCreated: 2,
				FailedComponents: []string{},
				MeshFormat:       "glb",
			}, nil
		})

	recorder := suite.post("house.ifc", []byte("ISO-10303-21;"))

	var resp service.UploadResponse
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusCreated, &resp)
	assert.Equal(suite.T(), "IFC file uploaded and processed", resp.Message)
	assert.Equal(suite.T(), projectID, resp.Data.ProjectID)
	assert.Equal(suite.T(), 2, resp.Data.Walls)
}

func (suite *UploadHandlerTestSuite) TestUpload_MissingFile() {
	recorder := suite.http.MakeMultipartRequest("/api/v1/uploads",
		map[string]string{"projectName": "Haus"}, "", "", nil,
		suite.auth.headers(suite.T(), suite.auth.user))

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "file is required")
}

func (suite *UploadHandlerTestSuite) TestUpload_ErrorMapping() {
	testCases := []struct {
		err    error
		status int
	}{
		{apperrors.ErrInvalidFileType, http.StatusBadRequest},
		{fmt.Errorf("%w: line 3: unexpected token", apperrors.ErrInvalidIFC), http.StatusBadRequest},
		{apperrors.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		suite.Run(tc.err.Error(), func() {
			suite.mockIngestService.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)

			recorder := suite.post("house.ifc", []byte("x"))

			assert.Equal(suite.T(), tc.status, recorder.Code)
			assert.NotContains(suite.T(), recorder.Body.String(), "disk full")
			assert.NotContains(suite.T(), recorder.Body.String(), "unexpected token")
		})
	}
}

func (suite *UploadHandlerTestSuite) TestUpload_RequiresAuth() {
	recorder := suite.http.MakeMultipartRequest("/api/v1/uploads", nil, "file", "house.ifc", []byte("x"), nil)

	assert.Equal(suite.T(), http.StatusUnauthorized, recorder.Code)
}

func TestUploadHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UploadHandlerTestSuite))
}
