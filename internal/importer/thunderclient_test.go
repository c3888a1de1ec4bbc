package importer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const thunderSample = `{
	"_id": "tc-1",
	"colName": "Weather API",
	"requests": [
		{"_id": "r1", "name": "Current", "method": "GET", "url": "https://api/weather/current",
			"headers": [
				{"name": "Accept", "value": "application/json"},
				{"name": "X-Debug", "value": "1", "active": false}
			]}
	],
	"folders": [
		{"_id": "f1", "name": "Forecast", "requests": [
			{"_id": "r2", "name": "Weekly", "method": "POST", "url": "https://api/weather/weekly",
				"body": {"type": "json", "raw": "{\"days\": 7}"}}
		]}
	]
}`

func TestThunderClientImport(t *testing.T) {
	imp := NewThunderClientImporter()

	coll, err := imp.Import(context.Background(), []byte(thunderSample))
	require.NoError(t, err)

	assert.Equal(t, "Weather API", coll.Name)
	assert.Equal(t, "tc-1", coll.ID)

	require.Len(t, coll.Requests, 1)
	current := coll.Requests[0]
	require.Len(t, current.Headers, 2)
	assert.True(t, current.Headers[0].Enabled, "missing active defaults to enabled")
	assert.False(t, current.Headers[1].Enabled)

	require.Len(t, coll.Folders, 1)
	forecast := coll.Folders[0]
	assert.Equal(t, "Forecast", forecast.Name)
	require.Len(t, forecast.Requests, 1)

	weekly := forecast.Requests[0]
	assert.Equal(t, `{"days": 7}`, weekly.Body)
	h, ok := weekly.Header("Content-Type")
	require.True(t, ok)
	assert.Equal(t, "application/json", h.Value)
}

func TestThunderClientImportMissingShape(t *testing.T) {
	imp := NewThunderClientImporter()

	_, err := imp.Import(context.Background(), []byte(`{"something": "else"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRequired)
}

func TestThunderClientImportInvalidJSON(t *testing.T) {
	imp := NewThunderClientImporter()

	_, err := imp.Import(context.Background(), []byte(`{"colName":`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParseError)
}

func TestThunderClientImportDefaultName(t *testing.T) {
	imp := NewThunderClientImporter()

	coll, err := imp.Import(context.Background(), []byte(`{"colName": "", "requests": []}`))
	require.NoError(t, err)
	assert.Equal(t, "Thunder Client Collection", coll.Name)
}
