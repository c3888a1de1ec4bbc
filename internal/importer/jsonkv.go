package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/reqshift/reqshift/internal/core"
)

// JSONImporter imports a flat JSON object as a variable-only collection:
// every top-level key becomes one variable. Nested values are not walked;
// they keep their raw JSON text as the variable value. This is the
// generic fallback when no structural fingerprint matches.
type JSONImporter struct{}

// NewJSONImporter creates a new generic JSON importer.
func NewJSONImporter() *JSONImporter {
	return &JSONImporter{}
}

func (j *JSONImporter) Name() string {
	return "Generic JSON"
}

func (j *JSONImporter) Format() Format {
	return FormatJSON
}

func (j *JSONImporter) FileExtensions() []string {
	return []string{".json"}
}

func (j *JSONImporter) DetectFormat(content []byte) bool {
	return Detect(content) == FormatJSON
}

func (j *JSONImporter) Import(ctx context.Context, content []byte) (*core.Collection, error) {
	coll := core.NewEnvironment("Imported Variables")

	// Walk the token stream instead of unmarshaling into a map so the
	// file's key order survives into the variable list.
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: not valid JSON: %v", ErrParseError, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected a flat JSON object of key-value pairs", ErrParseError)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParseError, err)
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParseError, err)
		}

		coll.Variables = append(coll.Variables, core.NewVariable(key, rawToString(raw)))
	}

	return coll, nil
}

// rawToString coerces a raw JSON value to its string form: strings are
// unquoted, everything else (numbers, booleans, nested structures) keeps
// its source text verbatim.
func rawToString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

func sortedRawKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Verify JSONImporter implements Importer interface
var _ Importer = (*JSONImporter)(nil)
