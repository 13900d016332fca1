package testutils

import (
	"fmt"
	"time"

	"ifc-reuse-backend/internal/database/models"
	"ifc-reuse-backend/internal/ifc"

	"github.com/google/uuid"
)

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with a unique email
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:         "Jane Planner",
		Email:        fmt.Sprintf("jane.%s@test.com", id.String()[:8]),
		PasswordHash: "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z6mZ8ZQy6kQ7Q5M5gZ6Q5V2W",
		Role:         models.UserRoleUser,
	}
}

// WithEmail sets a custom email for the user
func (f *UserFactory) WithEmail(email string) *models.User {
	user := f.Create()
	user.Email = email
	return user
}

// Admin creates a user with the admin role
func (f *UserFactory) Admin() *models.User {
	user := f.Create()
	user.Role = models.UserRoleAdmin
	return user
}

// ProjectFactory provides methods to create test Project data
type ProjectFactory struct{}

// NewProjectFactory creates a new ProjectFactory
func NewProjectFactory() *ProjectFactory {
	return &ProjectFactory{}
}

// Create creates a test Project with default values
func (f *ProjectFactory) Create() *models.Project {
	id := uuid.New()
	return &models.Project{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		UserID:      uuid.New(),
		Name:        "Test House",
		Description: "Two storey test house",
		Location:    "Berlin",
		Filename:    "house.ifc",
		SourceKey:   "sources/" + id.String() + "/house.ifc",
	}
}

// WithOwner sets the owning user of the project
func (f *ProjectFactory) WithOwner(userID uuid.UUID) *models.Project {
	project := f.Create()
	project.UserID = userID
	return project
}

// WithFilename sets the uploaded file name of the project
func (f *ProjectFactory) WithFilename(userID uuid.UUID, filename string) *models.Project {
	project := f.WithOwner(userID)
	project.Filename = filename
	project.SourceKey = "sources/" + project.ID.String() + "/" + filename
	return project
}

// ComponentFactory provides methods to create test Component data
type ComponentFactory struct{}

// NewComponentFactory creates a new ComponentFactory
func NewComponentFactory() *ComponentFactory {
	return &ComponentFactory{}
}

// Create creates a test wall component with a fresh GlobalId
func (f *ComponentFactory) Create() *models.Component {
	return &models.Component{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		ProjectID:     uuid.New(),
		GlobalID:      ifc.NewGUID(),
		Category:      "Architectural",
		Subcategory:   "Wall",
		IfcType:       "IfcWall",
		Name:          "Wand-Ext-01",
		Material:      "Beton",
		Location:      "Berlin",
		Dimensions:    models.EncodeJSON(map[string]float64{"Length": 5000}),
		ExtraMetadata: models.EncodeJSON(map[string]string{"source_type": "IFCWALL"}),
		Quantity:      1,
	}
}

// WithProject sets the owning project of the component
func (f *ComponentFactory) WithProject(projectID uuid.UUID) *models.Component {
	component := f.Create()
	component.ProjectID = projectID
	return component
}

// WithKind sets the category, subcategory and IFC type of the component
func (f *ComponentFactory) WithKind(projectID uuid.UUID, category, subcategory, ifcType string) *models.Component {
	component := f.WithProject(projectID)
	component.Category = category
	component.Subcategory = subcategory
	component.IfcType = ifcType
	return component
}

// FactorySet provides access to all factories
type FactorySet struct {
	User      *UserFactory
	Project   *ProjectFactory
	Component *ComponentFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		User:      NewUserFactory(),
		Project:   NewProjectFactory(),
		Component: NewComponentFactory(),
	}
}

// CreateProjectHierarchy creates an owner, a project of that owner and one component in it
func (fs *FactorySet) CreateProjectHierarchy() (*models.User, *models.Project, *models.Component) {
	user := fs.User.Create()
	project := fs.Project.WithOwner(user.ID)
	component := fs.Component.WithProject(project.ID)
	return user, project, component
}
