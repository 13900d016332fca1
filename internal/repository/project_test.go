//go:build integration
// +build integration

package repository

import (
	"testing"
	"time"

	"ifc-reuse-backend/internal/database/models"
	"ifc-reuse-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// ProjectRepositoryTestSuite tests the ProjectRepository
type ProjectRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *ProjectRepository
	users         *UserRepository
	components    *ComponentRepository
	factories     *testutils.FactorySet
	owner         *models.User
}

// SetupSuite runs before all tests in the suite
func (suite *ProjectRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewProjectRepository(suite.baseTestSuite.DB)
	suite.users = NewUserRepository(suite.baseTestSuite.DB)
	suite.components = NewComponentRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *ProjectRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *ProjectRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
	suite.owner = suite.factories.User.Create()
	suite.Require().NoError(suite.users.Create(suite.owner))
}

// TearDownTest runs after each test
func (suite *ProjectRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *ProjectRepositoryTestSuite) createProject(filename string) *models.Project {
	project := suite.factories.Project.WithFilename(suite.owner.ID, filename)
	suite.Require().NoError(suite.repo.Create(project))
	return project
}

// TestCreate tests creating a new project
func (suite *ProjectRepositoryTestSuite) TestCreate() {
	project := suite.factories.Project.WithOwner(suite.owner.ID)

	err := suite.repo.Create(project)

	suite.NoError(err)
	suite.NotEqual(uuid.Nil, project.ID)
	suite.NotZero(project.CreatedAt)
}

// TestCreateUnknownOwner tests the foreign key to users
func (suite *ProjectRepositoryTestSuite) TestCreateUnknownOwner() {
	err := suite.repo.Create(suite.factories.Project.WithOwner(uuid.New()))

	suite.Error(err)
}

// TestGetByIDNotFound tests retrieving a non-existent project
func (suite *ProjectRepositoryTestSuite) TestGetByIDNotFound() {
	project, err := suite.repo.GetByID(uuid.New())

	suite.Equal(gorm.ErrRecordNotFound, err)
	suite.Nil(project)
}

// TestGetLatestByFilename tests that the newest upload of a file name wins
func (suite *ProjectRepositoryTestSuite) TestGetLatestByFilename() {
	older := suite.factories.Project.WithFilename(suite.owner.ID, "house.ifc")
	older.CreatedAt = time.Now().Add(-time.Hour)
	suite.Require().NoError(suite.repo.Create(older))
	newer := suite.createProject("house.ifc")
	suite.createProject("other.ifc")

	found, err := suite.repo.GetLatestByFilename("house.ifc")

	suite.NoError(err)
	suite.Equal(newer.ID, found.ID)

	_, err = suite.repo.GetLatestByFilename("missing.ifc")
	suite.Equal(gorm.ErrRecordNotFound, err)
}

// TestListPreloadsComponents tests listing with components and the owner filter
func (suite *ProjectRepositoryTestSuite) TestListPreloadsComponents() {
	project := suite.createProject("house.ifc")
	suite.Require().NoError(suite.components.Create(suite.factories.Component.WithProject(project.ID)))
	suite.Require().NoError(suite.components.Create(suite.factories.Component.WithProject(project.ID)))

	other := suite.factories.User.Create()
	suite.Require().NoError(suite.users.Create(other))
	suite.Require().NoError(suite.repo.Create(suite.factories.Project.WithOwner(other.ID)))

	all, err := suite.repo.List(nil)
	suite.NoError(err)
	suite.Len(all, 2)

	mine, err := suite.repo.List(&suite.owner.ID)
	suite.NoError(err)
	suite.Require().Len(mine, 1)
	suite.Len(mine[0].Components, 2)
}

// TestDelete tests that deleting a project removes its components
func (suite *ProjectRepositoryTestSuite) TestDelete() {
	project := suite.createProject("house.ifc")
	component := suite.factories.Component.WithProject(project.ID)
	suite.Require().NoError(suite.components.Create(component))

	suite.NoError(suite.repo.Delete(project.ID))

	_, err := suite.repo.GetByID(project.ID)
	suite.Equal(gorm.ErrRecordNotFound, err)
	_, err = suite.components.GetByID(component.ID)
	suite.Equal(gorm.ErrRecordNotFound, err)

	suite.Equal(gorm.ErrRecordNotFound, suite.repo.Delete(project.ID))
}

// TestDeleteAll tests removing every project and component
func (suite *ProjectRepositoryTestSuite) TestDeleteAll() {
	for i := 0; i < 2; i++ {
		project := suite.createProject("house.ifc")
		suite.Require().NoError(suite.components.Create(suite.factories.Component.WithProject(project.ID)))
	}

	projects, components, err := suite.repo.DeleteAll()

	suite.NoError(err)
	suite.Equal(int64(2), projects)
	suite.Equal(int64(2), components)

	remaining, err := suite.repo.List(nil)
	suite.NoError(err)
	suite.Empty(remaining)
}

// TestProjectRepositoryTestSuite runs the test suite
func TestProjectRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectRepositoryTestSuite))
}
