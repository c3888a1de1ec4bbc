package exporter

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/reqshift/reqshift/internal/core"
)

// JSONExporter exports a collection's variables as a flat JSON object,
// the inverse of the generic JSON importer. Requests and folders are not
// representable in this target and are dropped.
type JSONExporter struct{}

// NewJSONExporter creates a new generic JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

func (j *JSONExporter) Name() string {
	return "Generic JSON"
}

func (j *JSONExporter) Format() Format {
	return FormatJSON
}

func (j *JSONExporter) FileExtension() string {
	return ".json"
}

func (j *JSONExporter) Export(ctx context.Context, coll *core.Collection) ([]byte, error) {
	if coll == nil {
		return nil, ErrInvalidCollection
	}

	// The object is written by hand to keep the variable order; a map
	// would re-sort the keys.
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, v := range coll.Variables {
		key, err := json.Marshal(v.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(v.Value)
		if err != nil {
			return nil, err
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
		if i < len(coll.Variables)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}")

	return buf.Bytes(), nil
}

// Verify JSONExporter implements Exporter interface
var _ Exporter = (*JSONExporter)(nil)
