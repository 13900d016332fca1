package models

import (
	"github.com/google/uuid"
)

// Project is one uploaded IFC model and the components extracted from it
type Project struct {
	BaseModel
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description string    `json:"description" gorm:"type:text"`
	Location    string    `json:"location" gorm:"size:200" validate:"max=200"`
	Filename    string    `json:"filename" gorm:"not null;size:255;index"`
	SourceKey   string    `json:"source_key" gorm:"size:512"`

	// Relationships
	User       *User       `json:"owner,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Components []Component `json:"components,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Project
func (Project) TableName() string {
	return "projects"
}
