package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	apperrors "ifc-reuse-backend/internal/errors"
	"ifc-reuse-backend/internal/ifc"
	"ifc-reuse-backend/internal/logger"
	"ifc-reuse-backend/internal/repository"
	"ifc-reuse-backend/internal/storage"
)

var meshContentTypes = map[string]string{
	".glb": "model/gltf-binary",
	".obj": "model/obj",
}

// MeshFile is an opened mesh ready to stream
type MeshFile struct {
	Reader      io.ReadCloser
	Name        string
	ContentType string
}

// MeshService resolves component identifiers to stored meshes
type MeshService struct {
	components repository.ComponentRepositoryInterface
	store      storage.Store
}

// NewMeshService creates a new mesh service
func NewMeshService(components repository.ComponentRepositoryInterface, store storage.Store) *MeshService {
	return &MeshService{
		components: components,
		store:      store,
	}
}

// MeshContentType maps a mesh file name to its media type
func MeshContentType(name string) string {
	if ct, ok := meshContentTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Open returns the newest stored mesh whose component GlobalId starts with guidPrefix
func (s *MeshService) Open(ctx context.Context, guidPrefix string) (*MeshFile, error) {
	if !ifc.ValidGUIDPrefix(guidPrefix) {
		return nil, apperrors.NewValidationError("id", "not a GlobalId or GlobalId prefix")
	}

	components, err := s.components.FindByGUIDPrefix(guidPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to find components: %w", err)
	}

	for _, c := range components {
		if c.PreviewKey == "" {
			continue
		}
		rc, err := s.store.Open(ctx, c.PreviewKey)
		if errors.Is(err, storage.ErrNotExist) {
			logger.WithContext(ctx).WithField("key", c.PreviewKey).Warn("mesh referenced by component is missing")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to open mesh: %w", err)
		}
		name := path.Base(c.PreviewKey)
		return &MeshFile{Reader: rc, Name: name, ContentType: MeshContentType(name)}, nil
	}
	return nil, apperrors.ErrMeshNotFound
}
