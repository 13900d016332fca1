package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"ifc-reuse-backend/internal/database/models"
	apperrors "ifc-reuse-backend/internal/errors"
	"ifc-reuse-backend/internal/ifc"
	"ifc-reuse-backend/internal/logger"
	"ifc-reuse-backend/internal/pipeline"
	"ifc-reuse-backend/internal/repository"
	"ifc-reuse-backend/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReuseService records reuse decisions in the stored IFC model and the catalog
type ReuseService struct {
	projects   repository.ProjectRepositoryInterface
	components repository.ComponentRepositoryInterface
	store      storage.Store
	pipeline   *pipeline.Pipeline
	validator  *validator.Validate
}

// NewReuseService creates a new reuse service
func NewReuseService(
	projects repository.ProjectRepositoryInterface,
	components repository.ComponentRepositoryInterface,
	store storage.Store,
	pipe *pipeline.Pipeline,
	validator *validator.Validate,
) *ReuseService {
	return &ReuseService{
		projects:   projects,
		components: components,
		store:      store,
		pipeline:   pipe,
		validator:  validator,
	}
}

// MarkReusableRequest selects elements of an uploaded file by GlobalId
type MarkReusableRequest struct {
	Filename      string     `json:"filename" validate:"required_without=ProjectID,max=255" example:"house.ifc"`
	SelectedGUIDs []string   `json:"selectedGuids" example:"2O2Fr$t4X7Zf8NOew3FLOH"`
	ProjectID     *uuid.UUID `json:"project_id,omitempty"`
	// Reusable defaults to true
	Reusable *bool `json:"reusable,omitempty"`
}

// MarkReusableResponse reports the derived file and the per-GUID outcome
type MarkReusableResponse struct {
	Status      string   `json:"status" example:"success"`
	Message     string   `json:"message"`
	NewFilename string   `json:"new_filename" example:"updated_house.ifc"`
	Marked      []string `json:"marked"`
	Skipped     []string `json:"skipped"`
	NotFound    []string `json:"not_found"`
}

// MarkReusable sets Pset_Reuse.Reusable on the selected elements, always
// writes updated_<filename> next to the source and mirrors the flag into the
// catalog, creating rows for elements that were never converted. The file
// write and the row updates are not atomic: a database failure after the
// file was written leaves the file updated.
func (s *ReuseService) MarkReusable(ctx context.Context, actor Actor, req *MarkReusableRequest) (*MarkReusableResponse, error) {
	if len(req.SelectedGUIDs) == 0 {
		return nil, apperrors.ErrNoGUIDs
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	reusable := true
	if req.Reusable != nil {
		reusable = *req.Reusable
	}

	project, err := s.findProject(req)
	if err != nil {
		return nil, err
	}
	if err := actor.requireOwner(project); err != nil {
		return nil, err
	}

	log := logger.WithContext(ctx).WithField("project_id", project.ID.String())

	derivedName := storage.DerivedName(project.Filename)
	derivedKey := storage.SourceKey(project.ID, derivedName)
	model, err := s.openModel(ctx, project.SourceKey, derivedKey)
	if err != nil {
		return nil, err
	}

	resp := &MarkReusableResponse{
		Status:   "success",
		Marked:   []string{},
		Skipped:  []string{},
		NotFound: []string{},
	}
	var marked []*ifc.Entity
	seen := make(map[string]bool)
	for _, raw := range req.SelectedGUIDs {
		guid := strings.TrimSpace(raw)
		if seen[guid] {
			continue
		}
		seen[guid] = true

		if !ifc.ValidGUID(guid) {
			resp.Skipped = append(resp.Skipped, raw)
			continue
		}
		e := model.ByGUID(guid)
		if !model.IsProduct(e) {
			resp.NotFound = append(resp.NotFound, guid)
			continue
		}
		model.MarkReusable(e, reusable)
		marked = append(marked, e)
		resp.Marked = append(resp.Marked, guid)
	}

	var buf bytes.Buffer
	if _, err := model.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode derived file: %w", err)
	}
	if err := s.store.Put(ctx, derivedKey, &buf); err != nil {
		return nil, fmt.Errorf("failed to store derived file: %w", err)
	}
	resp.NewFilename = derivedName

	for _, e := range marked {
		if err := s.mirror(project.ID, project.Location, model, e, reusable); err != nil {
			log.WithField("guid", ifc.GlobalID(e)).WithError(err).Error("failed to mirror reuse flag")
			return nil, fmt.Errorf("failed to update component %s: %w", ifc.GlobalID(e), err)
		}
	}

	resp.Message = fmt.Sprintf("%d components marked", len(marked))
	if len(marked) == 0 {
		resp.Message = "No components were marked"
	}
	log.WithFields(map[string]interface{}{
		"marked":    len(resp.Marked),
		"skipped":   len(resp.Skipped),
		"not_found": len(resp.NotFound),
	}).Info("reuse flags written")
	return resp, nil
}

func (s *ReuseService) findProject(req *MarkReusableRequest) (*models.Project, error) {
	var (
		project *models.Project
		err     error
	)
	if req.ProjectID != nil {
		project, err = s.projects.GetByID(*req.ProjectID)
	} else {
		project, err = s.projects.GetLatestByFilename(path.Base(strings.TrimSpace(req.Filename)))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// openModel reads the derived file when one exists so earlier marks are kept,
// otherwise the uploaded source.
func (s *ReuseService) openModel(ctx context.Context, sourceKey, derivedKey string) (*ifc.File, error) {
	rc, err := s.store.Open(ctx, derivedKey)
	if errors.Is(err, storage.ErrNotExist) {
		rc, err = s.store.Open(ctx, sourceKey)
	}
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, apperrors.ErrSourceFileNotFound
		}
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer rc.Close()

	model, err := ifc.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidIFC, err)
	}
	return model, nil
}

func (s *ReuseService) mirror(projectID uuid.UUID, location string, model *ifc.File, e *ifc.Entity, reusable bool) error {
	guid := ifc.GlobalID(e)
	existing, err := s.components.GetByProjectAndGUID(projectID, guid)
	switch {
	case err == nil:
		return s.components.SetReusable(existing.ID, reusable)
	case errors.Is(err, gorm.ErrRecordNotFound):
		el := s.pipeline.Describe(model, e)
		return s.components.Create(newComponent(projectID, el, location, reusable, ""))
	default:
		return err
	}
}
