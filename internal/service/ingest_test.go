package service_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ifc-reuse-backend/internal/database/models"
	apperrors "ifc-reuse-backend/internal/errors"
	"ifc-reuse-backend/internal/ifc"
	"ifc-reuse-backend/internal/pipeline"
	"ifc-reuse-backend/internal/repository"
	"ifc-reuse-backend/internal/service"
	"ifc-reuse-backend/internal/storage"
	"ifc-reuse-backend/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

const (
	houseFixture = "../ifc/testdata/house.ifc"
	doorGUID     = "1hMBWvWjL6fgd3dzI2R$nT"
	slabGUID     = "0hlS6$rRr5Zg1TKC$HhDzm"
	windowGUID   = "3cUkl32yn9qRSPvBJVyWw5"
)

// meshConverter writes a placeholder mesh unless told to fail for a GUID
type meshConverter struct {
	failFor map[string]bool
}

func (c *meshConverter) Convert(_ context.Context, src, dst string) error {
	guid := strings.TrimSuffix(filepath.Base(src), ".ifc")
	if c.failFor[guid] {
		return errors.New("IfcConvert exited with status 1")
	}
	return os.WriteFile(dst, []byte("glTF"), 0o644)
}

// IngestFlowTestSuite runs uploads and reuse marking against SQLite and an
// in-memory store
type IngestFlowTestSuite struct {
	suite.Suite
	ctx        context.Context
	db         *gorm.DB
	store      *storage.MemoryStore
	converter  *meshConverter
	projects   *repository.ProjectRepository
	components *repository.ComponentRepository
	ingest     *service.IngestService
	reuse      *service.ReuseService
	owner      *models.User
	actor      service.Actor
	house      []byte
}

func (suite *IngestFlowTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.db = testutils.NewSQLiteDB(suite.T())
	suite.store = storage.NewMemoryStore()
	suite.converter = &meshConverter{failFor: map[string]bool{}}
	suite.projects = repository.NewProjectRepository(suite.db)
	suite.components = repository.NewComponentRepository(suite.db)

	work := suite.T().TempDir()
	pipe := pipeline.New(suite.converter, work, pipeline.FormatGLB)
	v := service.NewValidator()
	suite.ingest = service.NewIngestService(suite.projects, suite.components, suite.store, pipe, v, service.IngestOptions{
		MaxUploadBytes: 1 << 20,
		WorkDir:        work,
	})
	suite.reuse = service.NewReuseService(suite.projects, suite.components, suite.store, pipe, v)

	suite.owner = testutils.NewUserFactory().Create()
	suite.Require().NoError(repository.NewUserRepository(suite.db).Create(suite.owner))
	suite.actor = service.Actor{UserID: suite.owner.ID, Email: suite.owner.Email}

	house, err := os.ReadFile(houseFixture)
	suite.Require().NoError(err)
	suite.house = house
}

func (suite *IngestFlowTestSuite) upload(filename string) *service.UploadSummary {
	summary, err := suite.ingest.Upload(suite.ctx, suite.actor, &service.UploadRequest{
		Filename:    filename,
		ProjectName: "Haus",
		Location:    "Berlin",
		Size:        int64(len(suite.house)),
		Body:        bytes.NewReader(suite.house),
	})
	suite.Require().NoError(err)
	return summary
}

func (suite *IngestFlowTestSuite) rows(project *models.Project) []models.Component {
	rows, _, err := suite.components.Search(repository.ComponentFilter{ProjectID: &project.ID})
	suite.Require().NoError(err)
	return rows
}

func (suite *IngestFlowTestSuite) TestUpload_OneRowPerElement() {
	summary := suite.upload("house.ifc")

	suite.Equal("house.ifc", summary.Filename)
	suite.Equal(2, summary.Walls)
	suite.Equal(1, summary.Windows)
	suite.Equal(1, summary.Slabs)
	suite.Equal(1, summary.Doors)
	suite.Equal(0, summary.Beams)
	suite.Equal(5, summary.MeshFilesCreated)
	suite.Empty(summary.FailedComponents)
	suite.Equal("glb", summary.MeshFormat)

	project, err := suite.projects.GetByID(summary.ProjectID)
	suite.Require().NoError(err)
	suite.Equal(suite.owner.ID, project.UserID)
	suite.Equal("Uploaded via form", project.Description)

	rows := suite.rows(project)
	suite.Len(rows, 5)
	categories := map[string]int{}
	for _, row := range rows {
		categories[row.Category]++
		suite.Equal("Berlin", row.Location)
		suite.False(row.Reusable)
		suite.Equal(storage.MeshKey(project.ID, pipeline.MeshFileName(row.GlobalID, row.IfcType, "glb")), row.PreviewKey)
		ok, err := suite.store.Exists(suite.ctx, row.PreviewKey)
		suite.Require().NoError(err)
		suite.True(ok)
	}
	suite.Equal(map[string]int{"Architectural": 4, "Structural": 1}, categories)

	ok, err := suite.store.Exists(suite.ctx, project.SourceKey)
	suite.Require().NoError(err)
	suite.True(ok)
}

func (suite *IngestFlowTestSuite) TestUpload_FailedConversionKeepsSiblings() {
	suite.converter.failFor[doorGUID] = true

	summary := suite.upload("house.ifc")

	suite.Equal(4, summary.MeshFilesCreated)
	suite.Equal([]string{doorGUID}, summary.FailedComponents)
	suite.Equal(1, summary.Doors)

	project, err := suite.projects.GetByID(summary.ProjectID)
	suite.Require().NoError(err)
	rows := suite.rows(project)
	suite.Len(rows, 4)
	for _, row := range rows {
		suite.NotEqual(doorGUID, row.GlobalID)
	}
}

func (suite *IngestFlowTestSuite) TestUpload_Rejects() {
	_, err := suite.ingest.Upload(suite.ctx, suite.actor, &service.UploadRequest{
		Filename: "house.txt", ProjectName: "Haus", Body: bytes.NewReader(suite.house),
	})
	suite.ErrorIs(err, apperrors.ErrInvalidFileType)

	_, err = suite.ingest.Upload(suite.ctx, suite.actor, &service.UploadRequest{
		Filename: "house.ifc", Body: bytes.NewReader(suite.house),
	})
	suite.True(apperrors.IsValidation(err))

	_, err = suite.ingest.Upload(suite.ctx, suite.actor, &service.UploadRequest{
		Filename: "house.ifc", ProjectName: "Haus", Body: strings.NewReader("not a step file"),
	})
	suite.ErrorIs(err, apperrors.ErrInvalidIFC)

	_, err = suite.ingest.Upload(suite.ctx, suite.actor, &service.UploadRequest{
		Filename: "house.ifc", ProjectName: "Haus", Body: bytes.NewReader(make([]byte, 2<<20)),
	})
	suite.ErrorIs(err, apperrors.ErrFileTooLarge)

	projects, err := suite.projects.List(nil)
	suite.Require().NoError(err)
	suite.Empty(projects)
	keys, _ := suite.store.List(suite.ctx, "")
	suite.Empty(keys)
}

func (suite *IngestFlowTestSuite) TestMarkReusable_UnseenGUIDCreatesRow() {
	suite.converter.failFor[doorGUID] = true
	summary := suite.upload("house.ifc")

	resp, err := suite.reuse.MarkReusable(suite.ctx, suite.actor, &service.MarkReusableRequest{
		Filename:      "house.ifc",
		SelectedGUIDs: []string{doorGUID},
	})

	suite.Require().NoError(err)
	suite.Equal("success", resp.Status)
	suite.Equal("updated_house.ifc", resp.NewFilename)
	suite.Equal([]string{doorGUID}, resp.Marked)

	row, err := suite.components.GetByProjectAndGUID(summary.ProjectID, doorGUID)
	suite.Require().NoError(err)
	suite.True(row.Reusable)
	suite.Equal("Door", row.Subcategory)
	suite.Empty(row.PreviewKey)
}

func (suite *IngestFlowTestSuite) TestMarkReusable_FlipsOnlySelected() {
	summary := suite.upload("house.ifc")

	resp, err := suite.reuse.MarkReusable(suite.ctx, suite.actor, &service.MarkReusableRequest{
		ProjectID:     &summary.ProjectID,
		SelectedGUIDs: []string{slabGUID, slabGUID, "not-a-guid", "0000000000000000000000"},
	})

	suite.Require().NoError(err)
	suite.Equal([]string{slabGUID}, resp.Marked)
	suite.Equal([]string{"not-a-guid"}, resp.Skipped)
	suite.Equal([]string{"0000000000000000000000"}, resp.NotFound)

	project, err := suite.projects.GetByID(summary.ProjectID)
	suite.Require().NoError(err)
	for _, row := range suite.rows(project) {
		suite.Equal(row.GlobalID == slabGUID, row.Reusable, row.GlobalID)
	}

	// a second call reads the derived file, so earlier marks survive
	_, err = suite.reuse.MarkReusable(suite.ctx, suite.actor, &service.MarkReusableRequest{
		Filename:      "house.ifc",
		SelectedGUIDs: []string{windowGUID},
	})
	suite.Require().NoError(err)

	rc, err := suite.store.Open(suite.ctx, storage.SourceKey(summary.ProjectID, "updated_house.ifc"))
	suite.Require().NoError(err)
	defer rc.Close()
	derived, err := ifc.Parse(rc)
	suite.Require().NoError(err)
	for _, guid := range []string{slabGUID, windowGUID} {
		reusable, found := derived.Reusable(derived.ByGUID(guid))
		suite.True(found, guid)
		suite.True(reusable, guid)
	}
}

func (suite *IngestFlowTestSuite) TestMarkReusable_Errors() {
	_, err := suite.reuse.MarkReusable(suite.ctx, suite.actor, &service.MarkReusableRequest{Filename: "house.ifc"})
	suite.ErrorIs(err, apperrors.ErrNoGUIDs)

	_, err = suite.reuse.MarkReusable(suite.ctx, suite.actor, &service.MarkReusableRequest{
		Filename: "missing.ifc", SelectedGUIDs: []string{slabGUID},
	})
	suite.ErrorIs(err, apperrors.ErrProjectNotFound)

	suite.upload("house.ifc")
	_, err = suite.reuse.MarkReusable(suite.ctx, service.Actor{UserID: testutils.NewUserFactory().Create().ID}, &service.MarkReusableRequest{
		Filename: "house.ifc", SelectedGUIDs: []string{slabGUID},
	})
	suite.ErrorIs(err, apperrors.ErrNotProjectOwner)

	resp, err := suite.reuse.MarkReusable(suite.ctx, suite.actor, &service.MarkReusableRequest{
		Filename: "house.ifc", SelectedGUIDs: []string{"0000000000000000000000"},
	})
	suite.Require().NoError(err)
	suite.Equal("updated_house.ifc", resp.NewFilename)
	suite.Empty(resp.Marked)
	suite.Equal([]string{"0000000000000000000000"}, resp.NotFound)
}

func (suite *IngestFlowTestSuite) TestDeleteAll_RemovesEverything() {
	suite.upload("house.ifc")
	suite.upload("other.ifc")

	projects := service.NewProjectService(suite.projects, suite.store)
	resp, err := projects.DeleteAll(suite.ctx, service.Actor{UserID: suite.owner.ID, Admin: true})

	suite.Require().NoError(err)
	suite.Equal(int64(2), resp.Projects)
	suite.Equal(int64(10), resp.Components)

	list, err := suite.projects.List(nil)
	suite.Require().NoError(err)
	suite.Empty(list)
	rows, total, err := suite.components.Search(repository.ComponentFilter{})
	suite.Require().NoError(err)
	suite.Empty(rows)
	suite.Zero(total)
	keys, _ := suite.store.List(suite.ctx, "")
	suite.Empty(keys)
}

func TestIngestFlowTestSuite(t *testing.T) {
	suite.Run(t, new(IngestFlowTestSuite))
}

func TestCleanUploadFilename(t *testing.T) {
	testCases := []struct {
		in   string
		want string
		err  error
	}{
		{"house.ifc", "house.ifc", nil},
		{"HOUSE.IFC", "HOUSE.IFC", nil},
		{"../../etc/house.ifc", "house.ifc", nil},
		{`C:\Users\jane\house.ifc`, "house.ifc", nil},
		{"house.ifczip", "", apperrors.ErrInvalidFileType},
		{"house", "", apperrors.ErrInvalidFileType},
		{"  ", "", apperrors.ErrInvalidFilename},
		{"..", "", apperrors.ErrInvalidFilename},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := service.CleanUploadFilename(tc.in)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
