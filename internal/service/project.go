package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"ifc-reuse-backend/internal/database/models"
	apperrors "ifc-reuse-backend/internal/errors"
	"ifc-reuse-backend/internal/logger"
	"ifc-reuse-backend/internal/repository"
	"ifc-reuse-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectService handles listing and deletion of uploaded projects
type ProjectService struct {
	repo  repository.ProjectRepositoryInterface
	store storage.Store
}

// NewProjectService creates a new project service
func NewProjectService(repo repository.ProjectRepositoryInterface, store storage.Store) *ProjectService {
	return &ProjectService{
		repo:  repo,
		store: store,
	}
}

// ComponentSummary is the short form of a component nested in a project
type ComponentSummary struct {
	ID          string    `json:"id" example:"2O2Fr$t4X7Zf8NOew3FLOH"`
	ComponentID uuid.UUID `json:"component_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type" example:"IfcWall"`
	Material    string    `json:"material"`
	Reusable    bool      `json:"reusable"`
	MeshURL     string    `json:"mesh_url,omitempty"`
}

// ProjectResponse represents a project with its components
type ProjectResponse struct {
	ID          uuid.UUID          `json:"id"`
	UserID      uuid.UUID          `json:"user_id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Location    string             `json:"location"`
	Filename    string             `json:"filename"`
	CreatedAt   time.Time          `json:"created_at"`
	Components  []ComponentSummary `json:"components"`
}

// DeleteAllResponse reports how many rows a bulk delete removed
type DeleteAllResponse struct {
	Message    string `json:"message"`
	Projects   int64  `json:"projects"`
	Components int64  `json:"components"`
}

// List returns every project, or only the actor's when mine is set
func (s *ProjectService) List(actor Actor, mine bool) ([]ProjectResponse, error) {
	var owner *uuid.UUID
	if mine {
		owner = &actor.UserID
	}
	projects, err := s.repo.List(owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, toProjectResponse(&projects[i]))
	}
	return out, nil
}

// Get retrieves a project with its components
func (s *ProjectService) Get(id uuid.UUID) (*ProjectResponse, error) {
	project, err := s.repo.GetWithComponents(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	resp := toProjectResponse(project)
	return &resp, nil
}

// OpenFile streams the uploaded source or its derived reuse file to the
// project owner or an admin
func (s *ProjectService) OpenFile(ctx context.Context, actor Actor, id uuid.UUID, name string) (io.ReadCloser, error) {
	project, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if err := actor.requireOwner(project); err != nil {
		return nil, err
	}

	name = path.Base(name)
	if name != project.Filename && name != storage.DerivedName(project.Filename) {
		return nil, apperrors.ErrSourceFileNotFound
	}

	rc, err := s.store.Open(ctx, storage.SourceKey(project.ID, name))
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, apperrors.ErrSourceFileNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return rc, nil
}

// Delete removes a project, its components and its stored artifacts
func (s *ProjectService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	project, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProjectNotFound
		}
		return fmt.Errorf("failed to get project: %w", err)
	}
	if err := actor.requireOwner(project); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.cleanup(ctx, storage.ProjectPrefixes(id)...)
	return nil
}

// DeleteAll removes every component, then every project, then all stored artifacts
func (s *ProjectService) DeleteAll(ctx context.Context, actor Actor) (*DeleteAllResponse, error) {
	if !actor.Admin {
		return nil, apperrors.ErrAdminRequired
	}

	projects, components, err := s.repo.DeleteAll()
	if err != nil {
		return nil, fmt.Errorf("failed to delete projects: %w", err)
	}

	s.cleanup(ctx, storage.SourcesPrefix(), storage.MeshPrefix())

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"projects":   projects,
		"components": components,
	}).Warn("all projects deleted")

	return &DeleteAllResponse{
		Message:    "All projects and components deleted",
		Projects:   projects,
		Components: components,
	}, nil
}

// cleanup removes stored artifacts; failures are logged, never returned
func (s *ProjectService) cleanup(ctx context.Context, prefixes ...string) {
	for _, prefix := range prefixes {
		if err := s.store.DeletePrefix(ctx, prefix); err != nil {
			logger.WithContext(ctx).WithField("prefix", prefix).WithError(err).Warn("failed to delete stored artifacts")
		}
	}
}

func toProjectResponse(p *models.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Description: p.Description,
		Location:    p.Location,
		Filename:    p.Filename,
		CreatedAt:   p.CreatedAt,
		Components:  make([]ComponentSummary, 0, len(p.Components)),
	}
	for _, c := range p.Components {
		summary := ComponentSummary{
			ID:          c.GlobalID,
			ComponentID: c.ID,
			Name:        c.Name,
			Type:        c.IfcType,
			Material:    c.Material,
			Reusable:    c.Reusable,
		}
		if c.PreviewKey != "" {
			summary.MeshURL = meshURL(c.GlobalID)
		}
		resp.Components = append(resp.Components, summary)
	}
	return resp
}
