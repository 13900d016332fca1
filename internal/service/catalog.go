package service

import (
	"errors"
	"fmt"
	"strings"

	apperrors "ifc-reuse-backend/internal/errors"
	"ifc-reuse-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 100
	maxPageSize     = 500
)

// CatalogService answers catalog queries and reuse toggles
type CatalogService struct {
	components repository.ComponentRepositoryInterface
	projects   repository.ProjectRepositoryInterface
}

// NewCatalogService creates a new catalog service
func NewCatalogService(components repository.ComponentRepositoryInterface, projects repository.ProjectRepositoryInterface) *CatalogService {
	return &CatalogService{
		components: components,
		projects:   projects,
	}
}

// ComponentQuery holds the catalog filters; empty fields match everything
type ComponentQuery struct {
	Category    string
	Subcategory string
	Material    string
	Location    string
	Reusable    *bool
	ProjectID   *uuid.UUID
	Page        int
	PageSize    int
}

// ComponentListResponse is one page of catalog results
type ComponentListResponse struct {
	Components []ComponentResponse `json:"components"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
}

// SetReusableRequest toggles the reuse flag of one component
type SetReusableRequest struct {
	Reusable *bool `json:"reusable" binding:"required"`
}

// normalizePage applies defaults and caps the page size
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// Search returns the components matching every filter in q
func (s *CatalogService) Search(q *ComponentQuery) (*ComponentListResponse, error) {
	page, pageSize := normalizePage(q.Page, q.PageSize)

	rows, total, err := s.components.Search(repository.ComponentFilter{
		Category:    strings.TrimSpace(q.Category),
		Subcategory: strings.TrimSpace(q.Subcategory),
		Material:    strings.TrimSpace(q.Material),
		Location:    strings.TrimSpace(q.Location),
		Reusable:    q.Reusable,
		ProjectID:   q.ProjectID,
		Limit:       pageSize,
		Offset:      (page - 1) * pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search components: %w", err)
	}

	resp := &ComponentListResponse{
		Components: make([]ComponentResponse, 0, len(rows)),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
	}
	for i := range rows {
		resp.Components = append(resp.Components, toComponentResponse(&rows[i]))
	}
	return resp, nil
}

// Get retrieves one component
func (s *CatalogService) Get(id uuid.UUID) (*ComponentResponse, error) {
	component, err := s.components.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrComponentNotFound
		}
		return nil, fmt.Errorf("failed to get component: %w", err)
	}
	resp := toComponentResponse(component)
	return &resp, nil
}

// SetReusable updates only the reuse flag; the caller must own the project
func (s *CatalogService) SetReusable(actor Actor, id uuid.UUID, reusable bool) (*ComponentResponse, error) {
	component, err := s.components.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrComponentNotFound
		}
		return nil, fmt.Errorf("failed to get component: %w", err)
	}

	project, err := s.projects.GetByID(component.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if err := actor.requireOwner(project); err != nil {
		return nil, err
	}

	if err := s.components.SetReusable(id, reusable); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrComponentNotFound
		}
		return nil, fmt.Errorf("failed to update component: %w", err)
	}

	component.Reusable = reusable
	resp := toComponentResponse(component)
	return &resp, nil
}
