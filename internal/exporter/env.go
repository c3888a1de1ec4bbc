package exporter

import (
	"context"
	"fmt"
	"strings"

	"github.com/reqshift/reqshift/internal/core"
)

// EnvExporter exports a collection's variables as dotenv text. Disabled
// variables are emitted as comments so nothing is silently dropped.
type EnvExporter struct{}

// NewEnvExporter creates a new dotenv exporter.
func NewEnvExporter() *EnvExporter {
	return &EnvExporter{}
}

func (e *EnvExporter) Name() string {
	return "Dotenv File"
}

func (e *EnvExporter) Format() Format {
	return FormatEnv
}

func (e *EnvExporter) FileExtension() string {
	return ".env"
}

func (e *EnvExporter) Export(ctx context.Context, coll *core.Collection) ([]byte, error) {
	if coll == nil {
		return nil, ErrInvalidCollection
	}

	var b strings.Builder
	for _, v := range coll.Variables {
		line := fmt.Sprintf("%s=%s", v.Key, quoteEnvValue(v.Value))
		if !v.Enabled {
			line = "# " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return []byte(b.String()), nil
}

// quoteEnvValue wraps a value in double quotes when whitespace or a hash
// would otherwise break the line-oriented format.
func quoteEnvValue(value string) string {
	if strings.ContainsAny(value, " \t#\"") {
		return `"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
	}
	return value
}

// Verify EnvExporter implements Exporter interface
var _ Exporter = (*EnvExporter)(nil)
