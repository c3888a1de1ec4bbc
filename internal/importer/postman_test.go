package importer

import (
	"context"
	"testing"

	"github.com/reqshift/reqshift/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postmanSample = `{
	"info": {
		"_postman_id": "abc-123",
		"name": "User API",
		"description": "User management endpoints",
		"schema": "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"
	},
	"variable": [
		{"key": "host", "value": "api.example.com"},
		{"key": "apiKey", "value": "secret123", "type": "secret"}
	],
	"item": [
		{
			"name": "List Users",
			"request": {
				"method": "GET",
				"url": "https://{{host}}/users",
				"header": [
					{"key": "Accept", "value": "application/json"},
					{"key": "X-Debug", "value": "1", "disabled": true}
				]
			},
			"event": [
				{"listen": "prerequest", "script": {"exec": ["console.log('before');", "console.log('again');"]}},
				{"listen": "test", "script": {"exec": ["pm.test('ok', () => {});"]}}
			]
		},
		{
			"name": "Admin",
			"item": [
				{
					"name": "Create User",
					"request": {
						"method": "POST",
						"url": {"raw": "https://{{host}}/users", "protocol": "https", "host": ["api", "example", "com"], "path": ["users"]},
						"body": {"mode": "raw", "raw": "{\"name\": \"Ada\"}"}
					}
				},
				{
					"name": "Danger Zone",
					"item": [
						{
							"name": "Purge",
							"request": {"method": "DELETE", "url": "https://{{host}}/users"}
						}
					]
				}
			]
		}
	]
}`

func TestPostmanImportCollection(t *testing.T) {
	imp := NewPostmanImporter()

	coll, err := imp.Import(context.Background(), []byte(postmanSample))
	require.NoError(t, err)

	assert.Equal(t, "User API", coll.Name)
	assert.Equal(t, "abc-123", coll.ID)
	assert.Equal(t, "User management endpoints", coll.Description)
	assert.Equal(t, core.TypeCollection, coll.Type)

	require.Len(t, coll.Variables, 2)
	assert.Equal(t, core.VarDefault, coll.Variables[0].Type)
	assert.Equal(t, core.VarSecret, coll.Variables[1].Type)

	require.Len(t, coll.Requests, 1)
	root := coll.Requests[0]
	assert.Equal(t, "List Users", root.Name)
	assert.Equal(t, "GET", root.Method)
	assert.Equal(t, "https://{{host}}/users", root.URL)
	assert.Equal(t, "console.log('before');\nconsole.log('again');", root.PreRequestScript)
	assert.Equal(t, "pm.test('ok', () => {});", root.TestScript)

	require.Len(t, root.Headers, 2)
	assert.True(t, root.Headers[0].Enabled)
	assert.False(t, root.Headers[1].Enabled)

	// Folder nesting survives two levels down.
	require.Len(t, coll.Folders, 1)
	admin := coll.Folders[0]
	assert.Equal(t, "Admin", admin.Name)
	require.Len(t, admin.Requests, 1)
	require.Len(t, admin.Folders, 1)
	require.Len(t, admin.Folders[0].Requests, 1)
	assert.Equal(t, "Purge", admin.Folders[0].Requests[0].Name)

	// Object-form URL resolves to its raw field.
	assert.Equal(t, "https://{{host}}/users", admin.Requests[0].URL)
}

func TestPostmanImportJSONBodyGetsContentType(t *testing.T) {
	imp := NewPostmanImporter()

	coll, err := imp.Import(context.Background(), []byte(postmanSample))
	require.NoError(t, err)

	create := coll.Folders[0].Requests[0]
	h, ok := create.Header("Content-Type")
	require.True(t, ok)
	assert.Equal(t, "application/json", h.Value)
}

func TestPostmanImportMissingInfo(t *testing.T) {
	imp := NewPostmanImporter()

	_, err := imp.Import(context.Background(), []byte(`{"item": []}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRequired)
}

func TestPostmanImportInvalidJSON(t *testing.T) {
	imp := NewPostmanImporter()

	_, err := imp.Import(context.Background(), []byte(`{"info":`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParseError)
}

func TestPostmanImportDefaults(t *testing.T) {
	imp := NewPostmanImporter()

	coll, err := imp.Import(context.Background(), []byte(`{
		"info": {"schema": "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"},
		"item": [{"name": "Ping", "request": {"url": "https://api/ping"}}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Postman Collection", coll.Name)
	require.Len(t, coll.Requests, 1)
	assert.Equal(t, "GET", coll.Requests[0].Method, "missing method defaults to GET")
}

func TestPostmanImportURLEncodedBody(t *testing.T) {
	imp := NewPostmanImporter()

	coll, err := imp.Import(context.Background(), []byte(`{
		"info": {"name": "Forms", "schema": "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"},
		"item": [{
			"name": "Login",
			"request": {
				"method": "POST",
				"url": "https://api/login",
				"body": {"mode": "urlencoded", "urlencoded": [
					{"key": "user", "value": "ada"},
					{"key": "debug", "value": "1", "disabled": true},
					{"key": "pass", "value": "pw"}
				]}
			}
		}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "user=ada&pass=pw", coll.Requests[0].Body)
}

func TestPostmanImportEmptyFolder(t *testing.T) {
	imp := NewPostmanImporter()

	coll, err := imp.Import(context.Background(), []byte(`{
		"info": {"name": "Sparse", "schema": "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"},
		"item": [{"name": "Empty Folder", "item": []}]
	}`))
	require.NoError(t, err)

	require.Len(t, coll.Folders, 1)
	assert.Equal(t, "Empty Folder", coll.Folders[0].Name)
	assert.Empty(t, coll.Folders[0].Requests)
}

func TestPostmanImportEnvironment(t *testing.T) {
	imp := NewPostmanImporter()

	coll, err := imp.Import(context.Background(), []byte(`{
		"_postman_id": "env-1",
		"name": "Production",
		"_postman_variable_scope": "environment",
		"values": [
			{"key": "host", "value": "api.example.com", "enabled": true},
			{"key": "token", "value": "t0k3n", "type": "secret", "enabled": false},
			{"key": "region", "value": "eu"}
		]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Production", coll.Name)
	assert.Equal(t, "env-1", coll.ID)
	assert.Equal(t, core.TypeEnvironment, coll.Type)

	require.Len(t, coll.Variables, 3)
	assert.True(t, coll.Variables[0].Enabled)
	assert.Equal(t, core.VarSecret, coll.Variables[1].Type)
	assert.False(t, coll.Variables[1].Enabled)
	assert.True(t, coll.Variables[2].Enabled, "missing enabled defaults to true")
}

func TestPostmanImportEnvironmentByValuesOnly(t *testing.T) {
	imp := NewPostmanImporter()

	coll, err := imp.Import(context.Background(), []byte(`{
		"values": [{"key": "host", "value": "api"}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Postman Environment", coll.Name)
	assert.Equal(t, core.TypeEnvironment, coll.Type)
	require.Len(t, coll.Variables, 1)
}
