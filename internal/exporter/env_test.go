package exporter

import (
	"context"
	"strings"
	"testing"

	"github.com/reqshift/reqshift/internal/core"
	"github.com/reqshift/reqshift/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvExport(t *testing.T) {
	env := core.NewEnvironment("Vars")
	env.Variables = append(env.Variables,
		core.NewVariable("HOST", "api.example.com"),
		core.NewVariable("GREETING", "hello world"))
	disabled := core.NewVariable("LEGACY", "old")
	disabled.Enabled = false
	env.Variables = append(env.Variables, disabled)

	out, err := NewEnvExporter().Export(context.Background(), env)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "HOST=api.example.com", lines[0])
	assert.Equal(t, `GREETING="hello world"`, lines[1], "whitespace forces quoting")
	assert.Equal(t, "# LEGACY=old", lines[2], "disabled variables export as comments")
}

func TestEnvRoundTrip(t *testing.T) {
	env := core.NewEnvironment("Vars")
	env.Variables = append(env.Variables,
		core.NewVariable("HOST", "api.example.com"),
		core.NewVariable("MESSAGE", "hello world"))

	out, err := NewEnvExporter().Export(context.Background(), env)
	require.NoError(t, err)

	imported, err := importer.NewEnvImporter().Import(context.Background(), out)
	require.NoError(t, err)

	require.Len(t, imported.Variables, 2)
	assert.Equal(t, "HOST", imported.Variables[0].Key)
	assert.Equal(t, "api.example.com", imported.Variables[0].Value)
	assert.Equal(t, "hello world", imported.Variables[1].Value, "quoting strips back off")
}

func TestEnvExportEmptyCollection(t *testing.T) {
	out, err := NewEnvExporter().Export(context.Background(), core.NewEnvironment("Empty"))
	require.NoError(t, err)
	assert.Empty(t, out)
}
