package importer

import (
	"context"
	"strings"

	"github.com/joho/godotenv"
	"github.com/reqshift/reqshift/internal/core"
)

// EnvImporter imports dotenv files into variable-only collections. It is
// extension-routed (.env) and never participates in JSON detection.
type EnvImporter struct{}

// NewEnvImporter creates a new dotenv importer.
func NewEnvImporter() *EnvImporter {
	return &EnvImporter{}
}

func (e *EnvImporter) Name() string {
	return "Dotenv File"
}

func (e *EnvImporter) Format() Format {
	return FormatEnv
}

func (e *EnvImporter) FileExtensions() []string {
	return []string{".env"}
}

// DetectFormat always reports false: .env files are routed by extension.
func (e *EnvImporter) DetectFormat(content []byte) bool {
	return false
}

func (e *EnvImporter) Import(ctx context.Context, content []byte) (*core.Collection, error) {
	coll := core.NewEnvironment("Environment Variables")

	// Lines are walked one at a time to keep the file's variable order;
	// godotenv handles the quoting rules for each entry.
	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, ok := parseEnvLine(trimmed)
		if !ok {
			continue
		}
		coll.Variables = append(coll.Variables, core.NewVariable(key, value))
	}

	return coll, nil
}

// parseEnvLine splits one KEY=value line, preferring godotenv's parsing
// and falling back to a first-equals split with one layer of matching
// quotes stripped.
func parseEnvLine(line string) (key, value string, ok bool) {
	if !strings.Contains(line, "=") {
		return "", "", false
	}

	if parsed, err := godotenv.Unmarshal(line); err == nil && len(parsed) == 1 {
		for k, v := range parsed {
			return k, v, true
		}
	}

	parts := strings.SplitN(line, "=", 2)
	key = strings.TrimSpace(parts[0])
	value = stripQuotes(strings.TrimSpace(parts[1]))
	if key == "" {
		return "", "", false
	}
	return key, value, true
}

// stripQuotes removes one layer of surrounding matching quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// Verify EnvImporter implements Importer interface
var _ Importer = (*EnvImporter)(nil)
