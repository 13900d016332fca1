package service

import (
	"testing"

	"ifc-reuse-backend/internal/database/models"
	"ifc-reuse-backend/internal/pipeline"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComponent(t *testing.T) {
	projectID := uuid.New()
	el := pipeline.Element{
		GUID:        "2O2Fr$t4X7Zf8NOew3FLOH",
		IfcType:     "IfcWall",
		SourceType:  "IfcWallStandardCase",
		Name:        "Wand-Ext-01",
		Material:    "Beton",
		Category:    "Architectural",
		Subcategory: "Wall",
		Dimensions:  map[string]float64{"Length": 5, "Height": 2.8},
		Metadata:    map[string]string{"source_type": "IfcWallStandardCase"},
	}

	c := newComponent(projectID, el, "Berlin", true, "meshes/x.glb")

	assert.Equal(t, projectID, c.ProjectID)
	assert.Equal(t, el.GUID, c.GlobalID)
	assert.Equal(t, "IfcWall", c.IfcType)
	assert.Equal(t, "Wall", c.Subcategory)
	assert.Equal(t, "Berlin", c.Location)
	assert.Equal(t, 1, c.Quantity)
	assert.True(t, c.Reusable)
	assert.JSONEq(t, `{"Length":5,"Height":2.8}`, string(c.Dimensions))
	assert.JSONEq(t, `{"source_type":"IfcWallStandardCase"}`, string(c.ExtraMetadata))
}

func TestNewComponent_EmptyMaps(t *testing.T) {
	c := newComponent(uuid.New(), pipeline.Element{GUID: "1hMBWvWjL6fgd3dzI2R$nT"}, "", false, "")

	assert.Equal(t, "{}", string(c.Dimensions))
	assert.Equal(t, "{}", string(c.ExtraMetadata))
}

func TestToComponentResponse(t *testing.T) {
	c := newComponent(uuid.New(), pipeline.Element{
		GUID:       "2O2Fr$t4X7Zf8NOew3FLOH",
		IfcType:    "IfcWall",
		Dimensions: map[string]float64{"Width": 0.3},
		Metadata:   map[string]string{"tag": "W1"},
	}, "Berlin", false, "meshes/p/2O2Fr$t4X7Zf8NOew3FLOH_IfcWall.glb")
	c.ID = uuid.New()

	resp := toComponentResponse(c)

	assert.Equal(t, c.ID, resp.ID)
	assert.Equal(t, map[string]float64{"Width": 0.3}, resp.Dimensions)
	assert.Equal(t, map[string]string{"tag": "W1"}, resp.ExtraMetadata)
	assert.Equal(t, "/api/v1/components/2O2Fr$t4X7Zf8NOew3FLOH/mesh", resp.MeshURL)
}

func TestToComponentResponse_NoMesh(t *testing.T) {
	resp := toComponentResponse(&models.Component{GlobalID: "1hMBWvWjL6fgd3dzI2R$nT"})

	require.Empty(t, resp.MeshURL)
	assert.Nil(t, resp.Dimensions)
	assert.Nil(t, resp.ExtraMetadata)
}
