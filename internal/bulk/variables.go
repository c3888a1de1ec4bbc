package bulk

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/reqshift/reqshift/internal/core"
	"github.com/reqshift/reqshift/internal/importer"
)

// VarFormat identifies a variable import/export encoding.
type VarFormat string

const (
	VarFormatJSON VarFormat = "json"
	VarFormatCSV  VarFormat = "csv"
)

// ErrUnsupportedVarFormat is returned when a variable operation names an
// encoding this package does not handle.
var ErrUnsupportedVarFormat = fmt.Errorf("unsupported variable format")

// ExportVariables renders a collection's variables in the requested
// encoding. JSON output is a pretty-printed array of variable objects;
// CSV output carries a key,value,type,description,enabled header and one
// quoted row per variable.
func ExportVariables(coll *core.Collection, format VarFormat) ([]byte, error) {
	switch format {
	case VarFormatJSON:
		vars := coll.Variables
		if vars == nil {
			vars = []core.Variable{}
		}
		return json.MarshalIndent(vars, "", "  ")
	case VarFormatCSV:
		var b strings.Builder
		b.WriteString("key,value,type,description,enabled\n")
		for _, v := range coll.Variables {
			b.WriteString(strings.Join([]string{
				quoteCSVField(v.Key),
				quoteCSVField(v.Value),
				quoteCSVField(string(v.Type)),
				quoteCSVField(v.Description),
				quoteCSVField(fmt.Sprintf("%t", v.Enabled)),
			}, ","))
			b.WriteString("\n")
		}
		return []byte(b.String()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVarFormat, format)
	}
}

// ImportVariables parses a variable document and returns a new collection
// whose variable list is fully replaced by the parsed set. The content is
// parsed in its entirety before anything is touched, so a malformed
// document leaves the input collection unchanged.
func ImportVariables(coll *core.Collection, content []byte, format VarFormat) (*core.Collection, error) {
	var vars []core.Variable
	var err error

	switch format {
	case VarFormatJSON:
		vars, err = parseVariablesJSON(content)
	case VarFormatCSV:
		vars, err = importer.ParseVariablesCSV(content)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVarFormat, format)
	}
	if err != nil {
		return nil, err
	}

	clone := coll.Clone()
	clone.Variables = vars
	return clone, nil
}

// parseVariablesJSON decodes an array of variable objects. Absent enabled
// flags default to true and absent types to the default type, so exports
// from other tools that omit those fields import cleanly.
func parseVariablesJSON(content []byte) ([]core.Variable, error) {
	var raw []struct {
		ID          string `json:"id"`
		Key         string `json:"key"`
		Value       string `json:"value"`
		Type        string `json:"type"`
		Description string `json:"description"`
		Enabled     *bool  `json:"enabled"`
	}
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", importer.ErrParseError, err)
	}

	vars := make([]core.Variable, 0, len(raw))
	for _, r := range raw {
		v := core.NewVariable(r.Key, r.Value)
		if r.ID != "" {
			v.ID = r.ID
		}
		if r.Type != "" {
			v.Type = core.VariableType(r.Type)
		}
		v.Description = r.Description
		if r.Enabled != nil {
			v.Enabled = *r.Enabled
		}
		vars = append(vars, v)
	}
	return vars, nil
}

// quoteCSVField wraps a field in double quotes, doubling any embedded
// quotes per RFC 4180 so commas and quotes in values survive.
func quoteCSVField(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
