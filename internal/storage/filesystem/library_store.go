package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/reqshift/reqshift/internal/core"
	"gopkg.in/yaml.v3"
)

// CollectionMeta contains metadata for listing stored collections.
type CollectionMeta struct {
	ID            string
	Name          string
	Description   string
	Type          core.CollectionType
	SourceFormat  string
	Path          string
	RequestCount  int
	VariableCount int
	UpdatedAt     time.Time
}

// LibraryStore persists imported collections as YAML files, one file per
// collection keyed by ID.
type LibraryStore struct {
	basePath string
}

// NewLibraryStore creates a filesystem-backed collection library.
func NewLibraryStore(basePath string) (*LibraryStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create library directory: %w", err)
	}

	return &LibraryStore{
		basePath: basePath,
	}, nil
}

// Save persists a collection to disk.
func (s *LibraryStore) Save(ctx context.Context, c *core.Collection) error {
	content, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}

	path := s.collectionPath(c.ID)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write collection file: %w", err)
	}

	return nil
}

// Get retrieves a collection by ID.
func (s *LibraryStore) Get(ctx context.Context, id string) (*core.Collection, error) {
	return s.loadFromPath(s.collectionPath(id))
}

// GetByPath retrieves a collection by file path.
func (s *LibraryStore) GetByPath(ctx context.Context, path string) (*core.Collection, error) {
	return s.loadFromPath(path)
}

// List returns metadata for all stored collections.
func (s *LibraryStore) List(ctx context.Context) ([]CollectionMeta, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read library directory: %w", err)
	}

	var collections []CollectionMeta
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(s.basePath, entry.Name())
		c, err := s.loadFromPath(path)
		if err != nil {
			continue // Skip invalid files
		}

		meta := CollectionMeta{
			ID:            c.ID,
			Name:          c.Name,
			Description:   c.Description,
			Type:          c.Type,
			SourceFormat:  c.SourceFormat,
			Path:          path,
			RequestCount:  c.RequestCount(),
			VariableCount: len(c.Variables),
		}
		if info, err := entry.Info(); err == nil {
			meta.UpdatedAt = info.ModTime()
		}
		collections = append(collections, meta)
	}

	return collections, nil
}

// Delete removes a stored collection.
func (s *LibraryStore) Delete(ctx context.Context, id string) error {
	path := s.collectionPath(id)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("collection not found: %s", id)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	return nil
}

// Search finds stored collections whose name or description matches the
// query, case-insensitively.
func (s *LibraryStore) Search(ctx context.Context, query string) ([]CollectionMeta, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	var results []CollectionMeta

	for _, meta := range all {
		if strings.Contains(strings.ToLower(meta.Name), query) ||
			strings.Contains(strings.ToLower(meta.Description), query) {
			results = append(results, meta)
		}
	}

	return results, nil
}

func (s *LibraryStore) collectionPath(id string) string {
	return filepath.Join(s.basePath, id+".yaml")
}

func (s *LibraryStore) loadFromPath(path string) (*core.Collection, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection file: %w", err)
	}

	var c core.Collection
	if err := yaml.Unmarshal(content, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal collection: %w", err)
	}

	return &c, nil
}
