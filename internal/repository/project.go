package repository

import (
	"ifc-reuse-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetWithComponents retrieves a project and its components ordered by GUID
func (r *ProjectRepository) GetWithComponents(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Components", func(db *gorm.DB) *gorm.DB {
		return db.Order("global_id ASC")
	}).First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetLatestByFilename retrieves the most recent project uploaded under filename
func (r *ProjectRepository) GetLatestByFilename(filename string) (*models.Project, error) {
	var project models.Project
	err := r.db.Where("filename = ?", filename).Order("created_at DESC").First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves projects newest first with their components; ownerID narrows to one user
func (r *ProjectRepository) List(ownerID *uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	query := r.db.Model(&models.Project{}).Preload("Components", func(db *gorm.DB) *gorm.DB {
		return db.Order("global_id ASC")
	})
	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}
	if err := query.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Delete removes a project and its components in one transaction
func (r *ProjectRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Component{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Project{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// DeleteAll removes every component and then every project, returning both counts
func (r *ProjectRepository) DeleteAll() (projects int64, components int64, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Component{})
		if res.Error != nil {
			return res.Error
		}
		components = res.RowsAffected

		res = tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Project{})
		if res.Error != nil {
			return res.Error
		}
		projects = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return projects, components, nil
}
