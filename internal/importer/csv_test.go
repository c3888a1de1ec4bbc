package importer

import (
	"context"
	"testing"

	"github.com/reqshift/reqshift/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVImport(t *testing.T) {
	imp := NewCSVImporter()

	content := []byte(`key,value,type,description,enabled
host,api.example.com,default,Primary host,true
token,secret123,secret,,false
region,eu
`)

	coll, err := imp.Import(context.Background(), content)
	require.NoError(t, err)

	assert.Equal(t, "Imported Variables", coll.Name)
	assert.Equal(t, core.TypeEnvironment, coll.Type)

	require.Len(t, coll.Variables, 3)

	host := coll.Variables[0]
	assert.Equal(t, "host", host.Key)
	assert.Equal(t, "Primary host", host.Description)
	assert.True(t, host.Enabled)

	token := coll.Variables[1]
	assert.Equal(t, core.VarSecret, token.Type)
	assert.False(t, token.Enabled)

	region := coll.Variables[2]
	assert.Equal(t, "eu", region.Value)
	assert.Equal(t, core.VarDefault, region.Type, "missing type defaults")
	assert.True(t, region.Enabled, "missing enabled column means enabled")
}

func TestCSVImportFirstRowWithKeyPrefixIsData(t *testing.T) {
	imp := NewCSVImporter()

	// The header check matches the literal column name "key" only, so a
	// first data row whose key merely contains the word is kept.
	content := []byte("apiKey,secret123,secret,API Key,true\n")

	coll, err := imp.Import(context.Background(), content)
	require.NoError(t, err)

	require.Len(t, coll.Variables, 1)
	assert.Equal(t, "apiKey", coll.Variables[0].Key)
	assert.Equal(t, "secret123", coll.Variables[0].Value)
	assert.Equal(t, core.VarSecret, coll.Variables[0].Type)
}

func TestCSVImportQuotedComma(t *testing.T) {
	imp := NewCSVImporter()

	content := []byte("key,value\n" + `greeting,"hello, world"` + "\n")

	coll, err := imp.Import(context.Background(), content)
	require.NoError(t, err)

	require.Len(t, coll.Variables, 1)
	assert.Equal(t, "hello, world", coll.Variables[0].Value)
}

func TestCSVImportSkipsShortRows(t *testing.T) {
	imp := NewCSVImporter()

	content := []byte("key,value\nloner\nhost,api\n")

	coll, err := imp.Import(context.Background(), content)
	require.NoError(t, err)

	require.Len(t, coll.Variables, 1)
	assert.Equal(t, "host", coll.Variables[0].Key)
}

func TestCSVImportEmptyInput(t *testing.T) {
	imp := NewCSVImporter()

	coll, err := imp.Import(context.Background(), []byte(""))
	require.NoError(t, err)
	assert.Empty(t, coll.Variables)
}

func TestCSVDetectFormatAlwaysFalse(t *testing.T) {
	imp := NewCSVImporter()
	assert.False(t, imp.DetectFormat([]byte("key,value\nhost,api\n")))
}
