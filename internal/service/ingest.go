package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
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
)

const defaultUploadDescription = "Uploaded via form"

// IngestOptions tunes upload handling
type IngestOptions struct {
	MaxUploadBytes  int64
	DefaultReusable bool
	WorkDir         string
}

// IngestService accepts IFC uploads and turns them into projects and components
type IngestService struct {
	projects   repository.ProjectRepositoryInterface
	components repository.ComponentRepositoryInterface
	store      storage.Store
	pipeline   *pipeline.Pipeline
	validator  *validator.Validate
	opts       IngestOptions
}

// NewIngestService creates a new ingest service
func NewIngestService(
	projects repository.ProjectRepositoryInterface,
	components repository.ComponentRepositoryInterface,
	store storage.Store,
	pipe *pipeline.Pipeline,
	validator *validator.Validate,
	opts IngestOptions,
) *IngestService {
	if opts.WorkDir == "" {
		opts.WorkDir = os.TempDir()
	}
	return &IngestService{
		projects:   projects,
		components: components,
		store:      store,
		pipeline:   pipe,
		validator:  validator,
		opts:       opts,
	}
}

// UploadRequest describes one uploaded IFC file
type UploadRequest struct {
	Filename    string    `json:"filename" validate:"required,max=255"`
	ProjectName string    `json:"projectName" validate:"required,min=1,max=200"`
	Location    string    `json:"location" validate:"max=200"`
	Description string    `json:"description" validate:"max=2000"`
	Size        int64     `json:"-"`
	Body        io.Reader `json:"-" validate:"required"`
}

// UploadSummary reports per-type element counts and conversion results
type UploadSummary struct {
	ProjectID        uuid.UUID `json:"project_id"`
	Filename         string    `json:"filename"`
	Walls            int       `json:"walls"`
	Windows          int       `json:"windows"`
	Slabs            int       `json:"slabs"`
	Beams            int       `json:"beams"`
	Columns          int       `json:"columns"`
	Doors            int       `json:"doors"`
	Spaces           int       `json:"spaces"`
	MeshFilesCreated int       `json:"mesh_files_created"`
	FailedComponents []string  `json:"failed_components"`
	MeshFormat       string    `json:"mesh_format"`
}

// UploadResponse wraps the summary the way the upload endpoint returns it
type UploadResponse struct {
	Message string        `json:"message" example:"IFC file uploaded and processed"`
	Data    UploadSummary `json:"data"`
}

// CleanUploadFilename reduces name to its base and requires the .ifc extension
func CleanUploadFilename(name string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if base == "." || base == "/" || base == ".." || base == "" {
		return "", apperrors.ErrInvalidFilename
	}
	if !strings.EqualFold(filepath.Ext(base), ".ifc") {
		return "", apperrors.ErrInvalidFileType
	}
	return base, nil
}

// Upload stores the file, creates the project and converts every watched
// element. Conversion failures are collected per GUID; failures before the
// element loop abort the request.
func (s *IngestService) Upload(ctx context.Context, actor Actor, req *UploadRequest) (*UploadSummary, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	filename, err := CleanUploadFilename(req.Filename)
	if err != nil {
		return nil, err
	}
	if s.opts.MaxUploadBytes > 0 && req.Size > s.opts.MaxUploadBytes {
		return nil, apperrors.ErrFileTooLarge
	}

	log := logger.WithContext(ctx).WithField("filename", filename)

	tmpPath, err := s.spool(req.Body)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			log.WithError(err).Warn("failed to remove spooled upload")
		}
	}()

	model, err := ifc.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidIFC, err)
	}

	projectID := uuid.New()
	sourceKey := storage.SourceKey(projectID, filename)
	if err := s.putFile(ctx, sourceKey, tmpPath); err != nil {
		return nil, fmt.Errorf("failed to store source file: %w", err)
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = defaultUploadDescription
	}
	project := &models.Project{
		BaseModel:   models.BaseModel{ID: projectID},
		UserID:      actor.UserID,
		Name:        strings.TrimSpace(req.ProjectName),
		Description: description,
		Location:    strings.TrimSpace(req.Location),
		Filename:    filename,
		SourceKey:   sourceKey,
	}
	if err := s.projects.Create(project); err != nil {
		if delErr := s.store.Delete(ctx, sourceKey); delErr != nil {
			log.WithError(delErr).Warn("failed to remove orphaned source file")
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	log = log.WithField("project_id", projectID.String())
	ctx = logger.WithProjectID(ctx, projectID.String())

	outDir, err := os.MkdirTemp(s.opts.WorkDir, "meshes-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create mesh directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(outDir); err != nil {
			log.WithError(err).Warn("failed to remove mesh directory")
		}
	}()

	sink := func(ctx context.Context, res pipeline.Result) error {
		key := storage.MeshKey(projectID, res.MeshName)
		if err := s.putFile(ctx, key, res.MeshPath); err != nil {
			return fmt.Errorf("failed to store mesh: %w", err)
		}
		component := newComponent(projectID, res.Element, project.Location, s.opts.DefaultReusable, key)
		if err := s.components.Create(component); err != nil {
			if delErr := s.store.Delete(ctx, key); delErr != nil {
				log.WithError(delErr).Warn("failed to remove orphaned mesh")
			}
			return fmt.Errorf("failed to create component: %w", err)
		}
		return nil
	}

	run, err := s.pipeline.Run(ctx, model, outDir, sink)
	if err != nil {
		return nil, fmt.Errorf("conversion aborted: %w", err)
	}

	summary := &UploadSummary{
		ProjectID:        projectID,
		Filename:         filename,
		Walls:            run.Counts["walls"],
		Windows:          run.Counts["windows"],
		Slabs:            run.Counts["slabs"],
		Beams:            run.Counts["beams"],
		Columns:          run.Counts["columns"],
		Doors:            run.Counts["doors"],
		Spaces:           run.Counts["spaces"],
		MeshFilesCreated: run.Converted,
		FailedComponents: run.Failed,
		MeshFormat:       s.pipeline.Format(),
	}
	log.WithFields(map[string]interface{}{
		"converted": run.Converted,
		"failed":    len(run.Failed),
	}).Info("upload processed")

	return summary, nil
}

// spool copies body into a temp file, enforcing the upload size limit
func (s *IngestService) spool(body io.Reader) (string, error) {
	if err := os.MkdirAll(s.opts.WorkDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create work directory: %w", err)
	}
	f, err := os.CreateTemp(s.opts.WorkDir, "upload-*.ifc")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	src := body
	if s.opts.MaxUploadBytes > 0 {
		src = io.LimitReader(body, s.opts.MaxUploadBytes+1)
	}
	n, err := io.Copy(f, src)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil && s.opts.MaxUploadBytes > 0 && n > s.opts.MaxUploadBytes {
		err = apperrors.ErrFileTooLarge
	}
	if err != nil {
		_ = os.Remove(f.Name())
		if errors.Is(err, apperrors.ErrFileTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	return f.Name(), nil
}

func (s *IngestService) putFile(ctx context.Context, key, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.store.Put(ctx, key, f)
}
