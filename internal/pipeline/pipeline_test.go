package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ifc-reuse-backend/internal/ifc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	wallGUID     = "2O2Fr$t4X7Zf8NOew3FLOH"
	wallSCGUID   = "1KhDe6a$X5bQX8_8bC6NV4"
	windowGUID   = "3cUkl32yn9qRSPvBJVyWw5"
	slabGUID     = "0hlS6$rRr5Zg1TKC$HhDzm"
	doorGUID     = "1hMBWvWjL6fgd3dzI2R$nT"
	houseFixture = "../ifc/testdata/house.ifc"
)

// fakeConverter writes a small mesh for every source unless the source
// contains one of the failing GUIDs.
type fakeConverter struct {
	failFor  map[string]bool
	noOutput bool
	calls    []string
}

func (c *fakeConverter) Convert(_ context.Context, src, dst string) error {
	f, err := ifc.Open(src)
	if err != nil {
		return err
	}
	guid := strings.TrimSuffix(filepath.Base(src), ".ifc")
	if f.ByGUID(guid) == nil {
		return errors.New("element missing from exported file")
	}
	c.calls = append(c.calls, guid)
	if c.failFor[guid] {
		return errors.New("IfcConvert failed")
	}
	if c.noOutput {
		return nil
	}
	return os.WriteFile(dst, []byte("glTF"), 0o644)
}

type PipelineTestSuite struct {
	suite.Suite
	file    *ifc.File
	workDir string
	outDir  string
}

func (suite *PipelineTestSuite) SetupTest() {
	f, err := ifc.Open(houseFixture)
	suite.Require().NoError(err)
	suite.file = f
	suite.workDir = filepath.Join(suite.T().TempDir(), "work")
	suite.outDir = filepath.Join(suite.T().TempDir(), "meshes")
}

func (suite *PipelineTestSuite) TestExtract() {
	p := New(&fakeConverter{}, suite.workDir, FormatGLB)

	elements, counts := p.Extract(suite.file)

	suite.Equal(map[string]int{
		"walls": 2, "windows": 1, "slabs": 1, "beams": 0, "columns": 0, "doors": 1, "spaces": 0,
	}, counts)
	suite.Require().Len(elements, 5)

	var guids []string
	for _, el := range elements {
		guids = append(guids, el.GUID)
	}
	suite.Equal([]string{wallGUID, wallSCGUID, windowGUID, slabGUID, doorGUID}, guids)

	sc := elements[1]
	suite.Equal("IfcWall", sc.IfcType)
	suite.Equal("IfcWallStandardCase", sc.SourceType)
	suite.Equal("Architectural", sc.Category)
	suite.Equal("Wall", sc.Subcategory)
	suite.Equal("Kalksandstein", sc.Material)
	suite.Equal("W2", sc.Metadata["tag"])
	suite.Equal("IFC4", sc.Metadata["schema"])

	suite.Equal(5000.0, elements[0].Dimensions["Length"])
	suite.Equal("Structural", elements[3].Category)
	suite.Equal("Unnamed IfcDoor", elements[4].Name)
	suite.Equal(ifc.UnknownMaterial, elements[4].Material)
}

func (suite *PipelineTestSuite) TestRun_AllConverted() {
	conv := &fakeConverter{}
	p := New(conv, suite.workDir, FormatGLB)

	var results []Result
	summary, err := p.Run(context.Background(), suite.file, suite.outDir, func(_ context.Context, res Result) error {
		results = append(results, res)
		return nil
	})

	suite.Require().NoError(err)
	suite.Equal(5, summary.Converted)
	suite.Empty(summary.Failed)
	suite.Equal(2, summary.Counts["walls"])
	suite.Require().Len(results, 5)
	suite.Equal(wallGUID+"_IfcWall.glb", results[0].MeshName)
	suite.FileExists(filepath.Join(suite.outDir, wallSCGUID+"_IfcWall.glb"))

	leftovers, err := os.ReadDir(suite.workDir)
	suite.Require().NoError(err)
	suite.Empty(leftovers, "temporary files must be removed")
}

func (suite *PipelineTestSuite) TestRun_FailureDoesNotStopSiblings() {
	conv := &fakeConverter{failFor: map[string]bool{windowGUID: true}}
	p := New(conv, suite.workDir, FormatOBJ)

	summary, err := p.Run(context.Background(), suite.file, suite.outDir, nil)

	suite.Require().NoError(err)
	suite.Equal(4, summary.Converted)
	suite.Equal([]string{windowGUID}, summary.Failed)
	suite.Len(conv.calls, 5)
	suite.FileExists(filepath.Join(suite.outDir, slabGUID+"_IfcSlab.obj"))
	suite.NoFileExists(filepath.Join(suite.outDir, windowGUID+"_IfcWindow.obj"))
}

func (suite *PipelineTestSuite) TestRun_MissingOutputIsAFailure() {
	p := New(&fakeConverter{noOutput: true}, suite.workDir, FormatGLB)

	summary, err := p.Run(context.Background(), suite.file, suite.outDir, nil)

	suite.Require().NoError(err)
	suite.Equal(0, summary.Converted)
	suite.Len(summary.Failed, 5)
}

func (suite *PipelineTestSuite) TestRun_SinkErrorIsAFailure() {
	p := New(&fakeConverter{}, suite.workDir, FormatGLB)

	summary, err := p.Run(context.Background(), suite.file, suite.outDir, func(_ context.Context, res Result) error {
		if res.Element.GUID == slabGUID {
			return errors.New("insert failed")
		}
		return nil
	})

	suite.Require().NoError(err)
	suite.Equal(4, summary.Converted)
	suite.Equal([]string{slabGUID}, summary.Failed)
}

func (suite *PipelineTestSuite) TestRun_Cancelled() {
	conv := &fakeConverter{}
	p := New(conv, suite.workDir, FormatGLB)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := p.Run(ctx, suite.file, suite.outDir, nil)

	suite.ErrorIs(err, context.Canceled)
	suite.Equal(0, summary.Converted)
	suite.Empty(conv.calls)
}

func TestPipelineTestSuite(t *testing.T) {
	suite.Run(t, new(PipelineTestSuite))
}

func TestMeshFileName(t *testing.T) {
	assert.Equal(t, "abc_IfcDoor.obj", MeshFileName("abc", "IfcDoor", "obj"))
}

func TestDescribe_UnwatchedType(t *testing.T) {
	f, err := ifc.Open(houseFixture)
	require.NoError(t, err)
	pipe := f.Add("IfcPipeSegment", ifc.String(ifc.NewGUID()), ifc.RefTo(5), ifc.String("Pipe"))

	el := New(&fakeConverter{}, t.TempDir(), "").Describe(f, pipe)

	assert.Equal(t, "Unknown", el.Category)
	assert.Equal(t, "IfcPipeSegment", el.IfcType)
	assert.Equal(t, "Pipe", el.Name)
	assert.Equal(t, "IfcPipeSegment", el.Metadata["source_type"])

	chair := f.Add("IfcFurnishingElement", ifc.String(ifc.NewGUID()), ifc.RefTo(5), ifc.Null())
	el = New(&fakeConverter{}, t.TempDir(), "").Describe(f, chair)
	assert.Equal(t, "IfcFurnishingElement", el.IfcType)
	assert.Equal(t, "Unnamed IfcFurnishingElement", el.Name)
}
