package exporter

import (
	"context"
	"errors"
	"fmt"

	"github.com/reqshift/reqshift/internal/core"
)

// Common errors
var (
	ErrInvalidCollection = errors.New("invalid collection")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// maxDepth caps folder recursion when serializing. Parsers only build
// finite trees, but an externally edited collection could carry a cycle;
// deeper subtrees are silently truncated.
const maxDepth = 64

// Format represents a supported export format.
type Format string

const (
	FormatPostman       Format = "postman"
	FormatInsomnia      Format = "insomnia"
	FormatThunderClient Format = "thunderclient"
	FormatJSON          Format = "json"
	FormatEnv           Format = "env"
)

// Exporter defines the interface for exporting collections to external formats.
type Exporter interface {
	// Name returns the name of this exporter.
	Name() string

	// Format returns the format this exporter produces.
	Format() Format

	// FileExtension returns the file extension for exported files.
	FileExtension() string

	// Export converts the collection to the target format. Output is
	// always syntactically valid for the target even when the collection
	// holds data the target cannot represent; conversion may be lossy
	// but never fails on representable input.
	Export(ctx context.Context, coll *core.Collection) ([]byte, error)
}

// ExportResult contains the result of an export operation.
type ExportResult struct {
	Content       []byte
	Format        Format
	FileExtension string
}

// Registry holds all registered exporters.
type Registry struct {
	exporters map[Format]Exporter
}

// NewRegistry creates an empty exporter registry.
func NewRegistry() *Registry {
	return &Registry{
		exporters: make(map[Format]Exporter),
	}
}

// NewDefaultRegistry creates a registry with every built-in exporter.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewPostmanExporter())
	r.Register(NewInsomniaExporter())
	r.Register(NewThunderClientExporter())
	r.Register(NewJSONExporter())
	r.Register(NewEnvExporter())
	return r
}

// Register adds an exporter to the registry.
func (r *Registry) Register(exp Exporter) {
	r.exporters[exp.Format()] = exp
}

// Get returns an exporter by format.
func (r *Registry) Get(format Format) (Exporter, bool) {
	exp, ok := r.exporters[format]
	return exp, ok
}

// Export exports the collection using the specified format.
func (r *Registry) Export(ctx context.Context, format Format, coll *core.Collection) (*ExportResult, error) {
	exp, ok := r.exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	content, err := exp.Export(ctx, coll)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		Content:       content,
		Format:        format,
		FileExtension: exp.FileExtension(),
	}, nil
}

// ListFormats returns all registered formats.
func (r *Registry) ListFormats() []Format {
	formats := make([]Format, 0, len(r.exporters))
	for f := range r.exporters {
		formats = append(formats, f)
	}
	return formats
}
