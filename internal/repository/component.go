package repository

import (
	"strings"

	"ifc-reuse-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ComponentFilter narrows a catalog search; zero fields are ignored
type ComponentFilter struct {
	Category    string
	Subcategory string
	Material    string
	Location    string
	Reusable    *bool
	ProjectID   *uuid.UUID
	Limit       int
	Offset      int
}

// ComponentRepository handles database operations for extracted components
type ComponentRepository struct {
	db *gorm.DB
}

// NewComponentRepository creates a new component repository
func NewComponentRepository(db *gorm.DB) *ComponentRepository {
	return &ComponentRepository{db: db}
}

// Create creates a new component
func (r *ComponentRepository) Create(component *models.Component) error {
	return r.db.Create(component).Error
}

// GetByID retrieves a component by ID
func (r *ComponentRepository) GetByID(id uuid.UUID) (*models.Component, error) {
	var component models.Component
	err := r.db.First(&component, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &component, nil
}

// GetByProjectAndGUID retrieves the component with an IFC GlobalId inside one project
func (r *ComponentRepository) GetByProjectAndGUID(projectID uuid.UUID, guid string) (*models.Component, error) {
	var component models.Component
	err := r.db.First(&component, "project_id = ? AND global_id = ?", projectID, guid).Error
	if err != nil {
		return nil, err
	}
	return &component, nil
}

// FindByGUIDPrefix retrieves components whose GlobalId starts with prefix, newest first
func (r *ComponentRepository) FindByGUIDPrefix(prefix string) ([]models.Component, error) {
	var components []models.Component
	err := r.db.Where("SUBSTR(global_id, 1, ?) = ?", len(prefix), prefix).
		Order("created_at DESC").
		Find(&components).Error
	if err != nil {
		return nil, err
	}
	return components, nil
}

// Search retrieves components matching filter together with the unpaginated total
func (r *ComponentRepository) Search(filter ComponentFilter) ([]models.Component, int64, error) {
	var components []models.Component
	var total int64

	query := r.db.Model(&models.Component{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Subcategory != "" {
		query = query.Where("subcategory = ?", filter.Subcategory)
	}
	if filter.Material != "" {
		query = query.Where("LOWER(material) LIKE ? ESCAPE '\\'", containsPattern(filter.Material))
	}
	if filter.Location != "" {
		query = query.Where("LOWER(location) LIKE ? ESCAPE '\\'", containsPattern(filter.Location))
	}
	if filter.Reusable != nil {
		query = query.Where("reusable = ?", *filter.Reusable)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}

	// Get total count
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Get paginated results
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if err := query.Order("created_at DESC").Order("global_id ASC").Find(&components).Error; err != nil {
		return nil, 0, err
	}

	return components, total, nil
}

// SetReusable updates only the reusable flag of one component
func (r *ComponentRepository) SetReusable(id uuid.UUID, reusable bool) error {
	result := r.db.Model(&models.Component{}).Where("id = ?", id).Update("reusable", reusable)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Update saves every column of a component
func (r *ComponentRepository) Update(component *models.Component) error {
	return r.db.Save(component).Error
}

// containsPattern builds a case-insensitive LIKE pattern matching s anywhere.
func containsPattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(strings.ToLower(s)) + "%"
}
