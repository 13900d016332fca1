package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ifc-reuse-backend/internal/api/handlers"
	apperrors "ifc-reuse-backend/internal/errors"
	"ifc-reuse-backend/internal/mocks"
	"ifc-reuse-backend/internal/service"
	"ifc-reuse-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReuseHandlerTestSuite struct {
	suite.Suite
	ctrl             *gomock.Controller
	mockReuseService *mocks.MockReuseServiceInterface
	auth             *authFixture
	http             *testutils.HTTPTestSuite
}

func (suite *ReuseHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockReuseService = mocks.NewMockReuseServiceInterface(suite.ctrl)
	suite.auth = newAuthFixture(suite.T())

	handler := handlers.NewReuseHandler(suite.mockReuseService)
	suite.http = newHTTPSuite()
	suite.http.Router.POST("/api/v1/mark-reusable", suite.auth.middleware.RequireAuth(), handler.MarkReusable)
}

func (suite *ReuseHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *ReuseHandlerTestSuite) mark(body interface{}) *httptest.ResponseRecorder {
	return suite.http.MakeRequestWithHeaders(http.MethodPost, "/api/v1/mark-reusable", body,
		suite.auth.headers(suite.T(), suite.auth.user))
}

func (suite *ReuseHandlerTestSuite) TestMarkReusable() {
	suite.mockReuseService.EXPECT().MarkReusable(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ service.Actor, req *service.MarkReusableRequest) (*service.MarkReusableResponse, error) {
			suite.Equal("house.ifc", req.Filename)
			suite.Equal([]string{"2O2Fr$t4X7Zf8NOew3FLOH"}, req.SelectedGUIDs)
			suite.Nil(req.Reusable)
			return &service.MarkReusableResponse{
				Status:      "success",
				Message:     "Components marked as reusable",
				NewFilename: "updated_house.ifc",
				Marked:      req.SelectedGUIDs,
				Skipped:     []string{},
				NotFound:    []string{},
			}, nil
		})

	res := suite.mark(map[string]interface{}{
		"filename":      "house.ifc",
		"selectedGuids": []string{"2O2Fr$t4X7Zf8NOew3FLOH"},
	})

	var resp service.MarkReusableResponse
	testutils.AssertJSONResponse(suite.T(), res, http.StatusOK, &resp)
	suite.Equal("updated_house.ifc", resp.NewFilename)
	suite.Equal([]string{"2O2Fr$t4X7Zf8NOew3FLOH"}, resp.Marked)
}

func (suite *ReuseHandlerTestSuite) TestMarkReusable_NoGUIDs() {
	suite.mockReuseService.EXPECT().MarkReusable(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrNoGUIDs)

	res := suite.mark(map[string]interface{}{"filename": "house.ifc", "selectedGuids": []string{}})

	suite.Equal(http.StatusBadRequest, res.Code)
	suite.Contains(res.Body.String(), "no GUIDs selected")
}

func (suite *ReuseHandlerTestSuite) TestMarkReusable_UnknownFile() {
	suite.mockReuseService.EXPECT().MarkReusable(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrProjectNotFound)

	res := suite.mark(map[string]interface{}{"filename": "nope.ifc", "selectedGuids": []string{"x"}})

	suite.Equal(http.StatusNotFound, res.Code)
}

func (suite *ReuseHandlerTestSuite) TestMarkReusable_MalformedBody() {
	res := suite.mark("selectedGuids")

	suite.Equal(http.StatusBadRequest, res.Code)
}

func TestReuseHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReuseHandlerTestSuite))
}
