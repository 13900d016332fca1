package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"ifc-reuse-backend/internal/database/models"
	apperrors "ifc-reuse-backend/internal/errors"
	"ifc-reuse-backend/internal/mocks"
	"ifc-reuse-backend/internal/service"
	"ifc-reuse-backend/internal/storage"
	"ifc-reuse-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// ProjectServiceTestSuite defines the test suite for ProjectService
type ProjectServiceTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockRepo       *mocks.MockProjectRepositoryInterface
	store          *storage.MemoryStore
	projectService *service.ProjectService
	factories      *testutils.FactorySet
	ctx            context.Context
}

// SetupTest sets up the test suite
func (suite *ProjectServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockRepo = mocks.NewMockProjectRepositoryInterface(suite.ctrl)
	suite.store = storage.NewMemoryStore()
	suite.projectService = service.NewProjectService(suite.mockRepo, suite.store)
	suite.factories = testutils.NewFactorySet()
	suite.ctx = context.Background()
}

// TearDownTest cleans up after each test
func (suite *ProjectServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *ProjectServiceTestSuite) put(key, content string) {
	suite.Require().NoError(suite.store.Put(suite.ctx, key, strings.NewReader(content)))
}

func (suite *ProjectServiceTestSuite) TestList() {
	user, project, component := suite.factories.CreateProjectHierarchy()
	component.PreviewKey = storage.MeshKey(project.ID, component.GlobalID+"_IfcWall.glb")
	project.Components = []models.Component{*component}

	suite.mockRepo.EXPECT().List(nil).Return([]models.Project{*project}, nil)

	projects, err := suite.projectService.List(service.Actor{UserID: user.ID}, false)

	assert.NoError(suite.T(), err)
	suite.Require().Len(projects, 1)
	assert.Equal(suite.T(), project.Name, projects[0].Name)
	suite.Require().Len(projects[0].Components, 1)
	summary := projects[0].Components[0]
	assert.Equal(suite.T(), component.GlobalID, summary.ID)
	assert.Equal(suite.T(), component.ID, summary.ComponentID)
	assert.Equal(suite.T(), "IfcWall", summary.Type)
	assert.Equal(suite.T(), "/api/v1/components/"+component.GlobalID+"/mesh", summary.MeshURL)
}

func (suite *ProjectServiceTestSuite) TestList_Mine() {
	userID := uuid.New()
	suite.mockRepo.EXPECT().List(&userID).Return(nil, nil)

	projects, err := suite.projectService.List(service.Actor{UserID: userID}, true)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), projects)
	assert.Empty(suite.T(), projects)
}

func (suite *ProjectServiceTestSuite) TestGet() {
	project := suite.factories.Project.Create()
	suite.mockRepo.EXPECT().GetWithComponents(project.ID).Return(project, nil)

	resp, err := suite.projectService.Get(project.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), project.Filename, resp.Filename)
	assert.Empty(suite.T(), resp.Components)

	missing := uuid.New()
	suite.mockRepo.EXPECT().GetWithComponents(missing).Return(nil, gorm.ErrRecordNotFound)
	_, err = suite.projectService.Get(missing)
	assert.ErrorIs(suite.T(), err, apperrors.ErrProjectNotFound)
}

func (suite *ProjectServiceTestSuite) TestOpenFile() {
	project := suite.factories.Project.Create()
	owner := service.Actor{UserID: project.UserID}
	suite.put(project.SourceKey, "ISO-10303-21;")
	suite.put(storage.SourceKey(project.ID, "updated_house.ifc"), "derived")
	suite.mockRepo.EXPECT().GetByID(project.ID).Return(project, nil).Times(4)

	rc, err := suite.projectService.OpenFile(suite.ctx, owner, project.ID, "house.ifc")
	suite.Require().NoError(err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(suite.T(), "ISO-10303-21;", string(data))

	rc, err = suite.projectService.OpenFile(suite.ctx, owner, project.ID, "updated_house.ifc")
	suite.Require().NoError(err)
	data, _ = io.ReadAll(rc)
	rc.Close()
	assert.Equal(suite.T(), "derived", string(data))

	_, err = suite.projectService.OpenFile(suite.ctx, owner, project.ID, "other.ifc")
	assert.ErrorIs(suite.T(), err, apperrors.ErrSourceFileNotFound)

	rc, err = suite.projectService.OpenFile(suite.ctx, owner, project.ID, "../../house.ifc")
	suite.Require().NoError(err)
	rc.Close()
}

func (suite *ProjectServiceTestSuite) TestOpenFile_OwnerOrAdmin() {
	project := suite.factories.Project.Create()
	suite.put(project.SourceKey, "ISO-10303-21;")
	suite.mockRepo.EXPECT().GetByID(project.ID).Return(project, nil).Times(2)

	_, err := suite.projectService.OpenFile(suite.ctx, service.Actor{UserID: uuid.New()}, project.ID, "house.ifc")
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotProjectOwner)

	rc, err := suite.projectService.OpenFile(suite.ctx, service.Actor{UserID: uuid.New(), Admin: true}, project.ID, "house.ifc")
	suite.Require().NoError(err)
	rc.Close()
}

func (suite *ProjectServiceTestSuite) TestDelete_Owner() {
	project := suite.factories.Project.Create()
	other := suite.factories.Project.Create()
	suite.put(project.SourceKey, "source")
	suite.put(storage.MeshKey(project.ID, "a_IfcWall.glb"), "mesh")
	suite.put(other.SourceKey, "keep")

	suite.mockRepo.EXPECT().GetByID(project.ID).Return(project, nil)
	suite.mockRepo.EXPECT().Delete(project.ID).Return(nil)

	err := suite.projectService.Delete(suite.ctx, service.Actor{UserID: project.UserID}, project.ID)

	assert.NoError(suite.T(), err)
	keys, _ := suite.store.List(suite.ctx, "")
	assert.Equal(suite.T(), []string{other.SourceKey}, keys)
}

func (suite *ProjectServiceTestSuite) TestDelete_NotOwner() {
	project := suite.factories.Project.Create()
	suite.mockRepo.EXPECT().GetByID(project.ID).Return(project, nil)

	err := suite.projectService.Delete(suite.ctx, service.Actor{UserID: uuid.New()}, project.ID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotProjectOwner)
}

func (suite *ProjectServiceTestSuite) TestDelete_NotFound() {
	id := uuid.New()
	suite.mockRepo.EXPECT().GetByID(id).Return(nil, gorm.ErrRecordNotFound)

	err := suite.projectService.Delete(suite.ctx, service.Actor{Admin: true}, id)

	assert.ErrorIs(suite.T(), err, apperrors.ErrProjectNotFound)
}

func (suite *ProjectServiceTestSuite) TestDeleteAll_RequiresAdmin() {
	_, err := suite.projectService.DeleteAll(suite.ctx, service.Actor{UserID: uuid.New()})

	assert.ErrorIs(suite.T(), err, apperrors.ErrAdminRequired)
}

func (suite *ProjectServiceTestSuite) TestDeleteAll() {
	suite.put("sources/p1/house.ifc", "a")
	suite.put("meshes/p1/a.glb", "b")
	suite.mockRepo.EXPECT().DeleteAll().Return(int64(2), int64(7), nil)

	resp, err := suite.projectService.DeleteAll(suite.ctx, service.Actor{UserID: uuid.New(), Admin: true})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), resp.Projects)
	assert.Equal(suite.T(), int64(7), resp.Components)
	keys, _ := suite.store.List(suite.ctx, "")
	assert.Empty(suite.T(), keys)
}

func (suite *ProjectServiceTestSuite) TestDeleteAll_RepositoryError() {
	suite.put("sources/p1/house.ifc", "a")
	suite.mockRepo.EXPECT().DeleteAll().Return(int64(0), int64(0), errors.New("locked"))

	_, err := suite.projectService.DeleteAll(suite.ctx, service.Actor{Admin: true})

	assert.Error(suite.T(), err)
	keys, _ := suite.store.List(suite.ctx, "")
	assert.Len(suite.T(), keys, 1)
}

// TestProjectServiceTestSuite runs the test suite
func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
