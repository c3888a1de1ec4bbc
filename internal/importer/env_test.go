package importer

import (
	"context"
	"testing"

	"github.com/reqshift/reqshift/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvImport(t *testing.T) {
	imp := NewEnvImporter()

	content := []byte(`# Service endpoints
HOST=api.example.com

PORT=8080
GREETING="hello world"
MOTTO='single quoted'
EMPTY=
TOKEN=abc=def
`)

	coll, err := imp.Import(context.Background(), content)
	require.NoError(t, err)

	assert.Equal(t, "Environment Variables", coll.Name)
	assert.Equal(t, core.TypeEnvironment, coll.Type)

	require.Len(t, coll.Variables, 6)

	// Variable order follows the file, comments and blanks skipped.
	keys := make([]string, 0, len(coll.Variables))
	for _, v := range coll.Variables {
		keys = append(keys, v.Key)
	}
	assert.Equal(t, []string{"HOST", "PORT", "GREETING", "MOTTO", "EMPTY", "TOKEN"}, keys)

	vars := coll.VariableMap()
	assert.Equal(t, "api.example.com", vars["HOST"])
	assert.Equal(t, "hello world", vars["GREETING"], "double quotes are stripped")
	assert.Equal(t, "single quoted", vars["MOTTO"], "single quotes are stripped")
	assert.Equal(t, "", vars["EMPTY"])
	assert.Equal(t, "abc=def", vars["TOKEN"], "only the first equals splits")
}

func TestEnvImportSkipsMalformedLines(t *testing.T) {
	imp := NewEnvImporter()

	coll, err := imp.Import(context.Background(), []byte("JUSTAWORD\nVALID=1\n=nokey\n"))
	require.NoError(t, err)

	require.Len(t, coll.Variables, 1)
	assert.Equal(t, "VALID", coll.Variables[0].Key)
}

func TestEnvImportEmptyInput(t *testing.T) {
	imp := NewEnvImporter()

	coll, err := imp.Import(context.Background(), []byte(""))
	require.NoError(t, err)
	assert.Empty(t, coll.Variables)
}

func TestEnvDetectFormatAlwaysFalse(t *testing.T) {
	imp := NewEnvImporter()
	assert.False(t, imp.DetectFormat([]byte("HOST=api.example.com")))
}
