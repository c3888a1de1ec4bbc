package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/reqshift/reqshift/internal/core"
)

// CSVImporter imports key,value,type,description,enabled variable rows
// into a variable-only collection. Extension-routed (.csv).
type CSVImporter struct{}

// NewCSVImporter creates a new CSV importer.
func NewCSVImporter() *CSVImporter {
	return &CSVImporter{}
}

func (c *CSVImporter) Name() string {
	return "CSV Variables"
}

func (c *CSVImporter) Format() Format {
	return FormatCSV
}

func (c *CSVImporter) FileExtensions() []string {
	return []string{".csv"}
}

// DetectFormat always reports false: .csv files are routed by extension.
func (c *CSVImporter) DetectFormat(content []byte) bool {
	return false
}

func (c *CSVImporter) Import(ctx context.Context, content []byte) (*core.Collection, error) {
	variables, err := ParseVariablesCSV(content)
	if err != nil {
		return nil, err
	}

	coll := core.NewEnvironment("Imported Variables")
	coll.Variables = variables
	return coll, nil
}

// ParseVariablesCSV parses variable rows in key,value,type,description,
// enabled column order. A first line whose lowercase form contains "key"
// is skipped as a header; there is no strict requirement that a header be
// present. The enabled column disables a variable only on the literal
// string "false".
func ParseVariablesCSV(content []byte) ([]core.Variable, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid CSV: %v", ErrParseError, err)
	}

	var variables []core.Variable
	for i, record := range records {
		if i == 0 && isCSVHeader(record) {
			continue
		}
		if len(record) < 2 {
			continue
		}

		v := core.NewVariable(csvField(record, 0), csvField(record, 1))
		if t := csvField(record, 2); t != "" {
			v.Type = core.VariableType(t)
		}
		v.Description = csvField(record, 3)
		v.Enabled = csvField(record, 4) != "false"

		if v.Key == "" {
			continue
		}
		variables = append(variables, v)
	}

	return variables, nil
}

// isCSVHeader recognizes the key,value,type,description,enabled header
// row. The check is against the first column only so that data rows whose
// key merely contains "key" (apiKey, keystore) are not swallowed.
func isCSVHeader(record []string) bool {
	return len(record) > 0 && strings.ToLower(csvField(record, 0)) == "key"
}

// csvField returns the trimmed field at idx with one layer of surrounding
// matching quotes stripped, or "" when the row is short.
func csvField(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return stripQuotes(strings.TrimSpace(record[idx]))
}

// Verify CSVImporter implements Importer interface
var _ Importer = (*CSVImporter)(nil)
