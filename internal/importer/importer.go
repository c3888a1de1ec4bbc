package importer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/reqshift/reqshift/internal/core"
)

// Common errors
var (
	ErrInvalidFormat   = errors.New("invalid format")
	ErrMissingRequired = errors.New("missing required field")
	ErrParseError      = errors.New("parse error")
)

// Format represents a supported import format.
type Format string

const (
	FormatAuto          Format = "auto"
	FormatPostman       Format = "postman"
	FormatInsomnia      Format = "insomnia"
	FormatThunderClient Format = "thunderclient"
	FormatEnv           Format = "env"
	FormatCSV           Format = "csv"
	FormatJSON          Format = "json"
	FormatUnknown       Format = "unknown"
)

// Importer defines the interface for importing collections from external formats.
type Importer interface {
	// Name returns the name of this importer.
	Name() string

	// Format returns the format this importer handles.
	Format() Format

	// FileExtensions returns the file extensions this importer can handle.
	FileExtensions() []string

	// DetectFormat checks if the content matches this importer's format.
	DetectFormat(content []byte) bool

	// Import parses the content and returns a collection.
	Import(ctx context.Context, content []byte) (*core.Collection, error)
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Collection    *core.Collection
	RequestCount  int
	FolderCount   int
	VariableCount int
	SourceFormat  Format
}

// Registry holds all registered importers in registration order. Order
// matters for detection because some formats share shallow shape.
type Registry struct {
	importers map[Format]Importer
	order     []Format
}

// NewRegistry creates an empty importer registry.
func NewRegistry() *Registry {
	return &Registry{
		importers: make(map[Format]Importer),
	}
}

// NewDefaultRegistry creates a registry with every built-in importer
// registered in detection priority order.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewPostmanImporter())
	r.Register(NewInsomniaImporter())
	r.Register(NewThunderClientImporter())
	r.Register(NewEnvImporter())
	r.Register(NewCSVImporter())
	r.Register(NewJSONImporter())
	return r
}

// Register adds an importer to the registry.
func (r *Registry) Register(imp Importer) {
	if _, exists := r.importers[imp.Format()]; !exists {
		r.order = append(r.order, imp.Format())
	}
	r.importers[imp.Format()] = imp
}

// Get returns an importer by format.
func (r *Registry) Get(format Format) (Importer, bool) {
	imp, ok := r.importers[format]
	return imp, ok
}

// DetectAndImport classifies the content and imports it with the matching
// importer. Detection ambiguity is never an error; only content that
// classifies as unknown is rejected.
func (r *Registry) DetectAndImport(ctx context.Context, content []byte) (*ImportResult, error) {
	for _, format := range r.order {
		imp := r.importers[format]
		if imp.DetectFormat(content) {
			return r.importWith(ctx, imp, content)
		}
	}
	return nil, fmt.Errorf("%w: content does not match any known collection format", ErrInvalidFormat)
}

// Import imports content using the specified format.
func (r *Registry) Import(ctx context.Context, format Format, content []byte) (*ImportResult, error) {
	if format == FormatAuto {
		return r.DetectAndImport(ctx, content)
	}

	imp, ok := r.importers[format]
	if !ok {
		return nil, fmt.Errorf("%w: no importer registered for %q", ErrInvalidFormat, format)
	}

	return r.importWith(ctx, imp, content)
}

// ImportFile imports content routed by file extension: .env and .csv
// bypass JSON detection entirely; everything else goes through the
// structural detector.
func (r *Registry) ImportFile(ctx context.Context, path string, content []byte) (*ImportResult, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".env":
		return r.Import(ctx, FormatEnv, content)
	case ".csv":
		return r.Import(ctx, FormatCSV, content)
	}
	return r.DetectAndImport(ctx, content)
}

func (r *Registry) importWith(ctx context.Context, imp Importer, content []byte) (*ImportResult, error) {
	coll, err := imp.Import(ctx, content)
	if err != nil {
		return nil, err
	}
	coll.SourceFormat = string(imp.Format())
	return &ImportResult{
		Collection:    coll,
		RequestCount:  coll.RequestCount(),
		FolderCount:   coll.FolderCount(),
		VariableCount: len(coll.Variables),
		SourceFormat:  imp.Format(),
	}, nil
}

// ListFormats returns all registered formats in registration order.
func (r *Registry) ListFormats() []Format {
	return append([]Format(nil), r.order...)
}
