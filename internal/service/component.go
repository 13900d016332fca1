package service

import (
	"encoding/json"
	"time"

	"ifc-reuse-backend/internal/database/models"
	"ifc-reuse-backend/internal/pipeline"

	"github.com/google/uuid"
)

// ComponentResponse represents a catalog entry
type ComponentResponse struct {
	ID            uuid.UUID          `json:"id"`
	ProjectID     uuid.UUID          `json:"project_id"`
	GlobalID      string             `json:"global_id"`
	Category      string             `json:"category"`
	Subcategory   string             `json:"subcategory"`
	IfcType       string             `json:"ifc_type"`
	Name          string             `json:"name"`
	Material      string             `json:"material"`
	Location      string             `json:"location"`
	Dimensions    map[string]float64 `json:"dimensions"`
	ExtraMetadata map[string]string  `json:"extra_metadata"`
	Quantity      int                `json:"quantity"`
	Reusable      bool               `json:"reusable"`
	MeshURL       string             `json:"mesh_url,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// newComponent builds the row for an extracted element
func newComponent(projectID uuid.UUID, el pipeline.Element, location string, reusable bool, previewKey string) *models.Component {
	return &models.Component{
		ProjectID:     projectID,
		GlobalID:      el.GUID,
		Category:      el.Category,
		Subcategory:   el.Subcategory,
		IfcType:       el.IfcType,
		Name:          el.Name,
		Material:      el.Material,
		Location:      location,
		Dimensions:    models.EncodeJSON(el.Dimensions),
		ExtraMetadata: models.EncodeJSON(el.Metadata),
		Quantity:      1,
		Reusable:      reusable,
		PreviewKey:    previewKey,
	}
}

func toComponentResponse(c *models.Component) ComponentResponse {
	resp := ComponentResponse{
		ID:          c.ID,
		ProjectID:   c.ProjectID,
		GlobalID:    c.GlobalID,
		Category:    c.Category,
		Subcategory: c.Subcategory,
		IfcType:     c.IfcType,
		Name:        c.Name,
		Material:    c.Material,
		Location:    c.Location,
		Dimensions:  c.DimensionsMap(),
		Quantity:    c.Quantity,
		Reusable:    c.Reusable,
		CreatedAt:   c.CreatedAt,
	}
	if len(c.ExtraMetadata) > 0 {
		_ = json.Unmarshal(c.ExtraMetadata, &resp.ExtraMetadata)
	}
	if c.PreviewKey != "" {
		resp.MeshURL = meshURL(c.GlobalID)
	}
	return resp
}

// meshURL is the public path a component's mesh is served under
func meshURL(guid string) string {
	return "/api/v1/components/" + guid + "/mesh"
}
