package service

import (
	"context"
	"io"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// UserServiceInterface defines the interface for user service
type UserServiceInterface interface {
	Register(req *RegisterRequest) (*UserResponse, error)
	Login(req *LoginRequest) (*LoginResponse, error)
	GetByID(id uuid.UUID) (*UserResponse, error)
}

// IngestServiceInterface defines the interface for upload processing
type IngestServiceInterface interface {
	Upload(ctx context.Context, actor Actor, req *UploadRequest) (*UploadSummary, error)
}

// ReuseServiceInterface defines the interface for reuse marking
type ReuseServiceInterface interface {
	MarkReusable(ctx context.Context, actor Actor, req *MarkReusableRequest) (*MarkReusableResponse, error)
}

// CatalogServiceInterface defines the interface for catalog queries
type CatalogServiceInterface interface {
	Search(q *ComponentQuery) (*ComponentListResponse, error)
	Get(id uuid.UUID) (*ComponentResponse, error)
	SetReusable(actor Actor, id uuid.UUID, reusable bool) (*ComponentResponse, error)
}

// ProjectServiceInterface defines the interface for project service
type ProjectServiceInterface interface {
	List(actor Actor, mine bool) ([]ProjectResponse, error)
	Get(id uuid.UUID) (*ProjectResponse, error)
	OpenFile(ctx context.Context, actor Actor, id uuid.UUID, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	DeleteAll(ctx context.Context, actor Actor) (*DeleteAllResponse, error)
}

// MeshServiceInterface defines the interface for mesh lookup
type MeshServiceInterface interface {
	Open(ctx context.Context, guidPrefix string) (*MeshFile, error)
}

var (
	_ UserServiceInterface    = (*UserService)(nil)
	_ IngestServiceInterface  = (*IngestService)(nil)
	_ ReuseServiceInterface   = (*ReuseService)(nil)
	_ CatalogServiceInterface = (*CatalogService)(nil)
	_ ProjectServiceInterface = (*ProjectService)(nil)
	_ MeshServiceInterface    = (*MeshService)(nil)
)
