package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Component is a building element extracted from a project's IFC model
type Component struct {
	BaseModel
	ProjectID     uuid.UUID      `json:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_components_project_guid"`
	GlobalID      string         `json:"global_id" gorm:"size:22;not null;index;uniqueIndex:idx_components_project_guid"`
	Category      string         `json:"category" gorm:"size:50;index"`
	Subcategory   string         `json:"subcategory" gorm:"size:50;index"`
	IfcType       string         `json:"ifc_type" gorm:"size:100"`
	Name          string         `json:"name" gorm:"size:255"`
	Material      string         `json:"material" gorm:"size:255"`
	Location      string         `json:"location" gorm:"size:200"`
	Dimensions    datatypes.JSON `json:"dimensions"`
	ExtraMetadata datatypes.JSON `json:"extra_metadata"`
	Quantity      int            `json:"quantity" gorm:"not null;default:1"`
	Reusable      bool           `json:"reusable" gorm:"not null;default:false;index"`
	PreviewKey    string         `json:"preview_key" gorm:"size:512"`

	// Relationships
	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
}

// TableName returns the table name for Component
func (Component) TableName() string {
	return "components"
}

// DimensionsMap decodes the stored dimensions, returning nil when empty.
func (c *Component) DimensionsMap() map[string]float64 {
	if len(c.Dimensions) == 0 {
		return nil
	}
	var m map[string]float64
	if err := json.Unmarshal(c.Dimensions, &m); err != nil {
		return nil
	}
	return m
}

// EncodeJSON marshals v for a datatypes.JSON column; nil maps stay empty objects.
func EncodeJSON[T any](v map[string]T) datatypes.JSON {
	if v == nil {
		return datatypes.JSON("{}")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(data)
}
