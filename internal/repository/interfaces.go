package repository

import (
	"ifc-reuse-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Count() (int64, error)
}

// ProjectRepositoryInterface defines the interface for project repository operations
type ProjectRepositoryInterface interface {
	Create(project *models.Project) error
	GetByID(id uuid.UUID) (*models.Project, error)
	GetWithComponents(id uuid.UUID) (*models.Project, error)
	GetLatestByFilename(filename string) (*models.Project, error)
	List(ownerID *uuid.UUID) ([]models.Project, error)
	Delete(id uuid.UUID) error
	DeleteAll() (projects int64, components int64, err error)
}

// ComponentRepositoryInterface defines the interface for component repository operations
type ComponentRepositoryInterface interface {
	Create(component *models.Component) error
	GetByID(id uuid.UUID) (*models.Component, error)
	GetByProjectAndGUID(projectID uuid.UUID, guid string) (*models.Component, error)
	FindByGUIDPrefix(prefix string) ([]models.Component, error)
	Search(filter ComponentFilter) ([]models.Component, int64, error)
	SetReusable(id uuid.UUID, reusable bool) error
	Update(component *models.Component) error
}

var (
	_ UserRepositoryInterface      = (*UserRepository)(nil)
	_ ProjectRepositoryInterface   = (*ProjectRepository)(nil)
	_ ComponentRepositoryInterface = (*ComponentRepository)(nil)
)
