// Package storage holds uploaded IFC sources, derived IFC files and meshes
// behind a small key/value interface with filesystem, memory and S3
// backends.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ErrNotExist is returned when a key has no object.
var ErrNotExist = errors.New("storage: object does not exist")

// ErrInvalidKey is returned for empty keys or keys escaping the store root.
var ErrInvalidKey = errors.New("storage: invalid key")

// Store is an artifact store addressed by slash separated keys.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
	// List returns the keys starting with prefix in lexical order.
	List(ctx context.Context, prefix string) ([]string, error)
	// Delete removes key; a missing key is not an error.
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

const (
	sourcesDir    = "sources"
	meshesDir     = "meshes"
	derivedPrefix = "updated_"
)

// SourceKey is the key of an uploaded IFC file.
func SourceKey(projectID uuid.UUID, filename string) string {
	return path.Join(sourcesDir, projectID.String(), path.Base(filename))
}

// DerivedName is the file name written after marking components reusable.
func DerivedName(filename string) string {
	return derivedPrefix + path.Base(filename)
}

// MeshKey is the key of a converted component mesh.
func MeshKey(projectID uuid.UUID, meshName string) string {
	return path.Join(meshesDir, projectID.String(), path.Base(meshName))
}

// MeshPrefix is the prefix every mesh key starts with.
func MeshPrefix() string { return meshesDir + "/" }

// SourcesPrefix is the prefix every uploaded or derived IFC key starts with.
func SourcesPrefix() string { return sourcesDir + "/" }

// ProjectPrefixes lists the prefixes that hold a project's artifacts.
func ProjectPrefixes(projectID uuid.UUID) []string {
	return []string{
		path.Join(sourcesDir, projectID.String()) + "/",
		path.Join(meshesDir, projectID.String()) + "/",
	}
}

// cleanKey normalises key and rejects traversal outside the root.
func cleanKey(key string) (string, error) {
	if key == "" || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return "", ErrInvalidKey
		}
	}
	clean := strings.TrimPrefix(path.Clean("/"+key), "/")
	if clean == "" {
		return "", ErrInvalidKey
	}
	return clean, nil
}
