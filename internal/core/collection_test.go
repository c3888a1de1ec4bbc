package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollection(t *testing.T) {
	coll := NewCollection("My API")

	assert.NotEmpty(t, coll.ID)
	assert.Equal(t, "My API", coll.Name)
	assert.Equal(t, SchemaVersion, coll.Version)
	assert.Equal(t, TypeCollection, coll.Type)
}

func TestNewEnvironment(t *testing.T) {
	env := NewEnvironment("Staging")

	assert.Equal(t, TypeEnvironment, env.Type)
	assert.Empty(t, env.Requests)
}

func TestCollection_Clone(t *testing.T) {
	coll := NewCollection("Original")
	coll.Variables = []Variable{NewVariable("host", "example.com")}

	folder := NewFolder("Users")
	folder.Requests = []Request{NewRequest("List Users", "GET", "https://{{host}}/users")}
	sub := NewFolder("Admin")
	sub.Requests = []Request{NewRequest("Delete User", "DELETE", "https://{{host}}/users/1")}
	folder.Folders = []Folder{sub}
	coll.Folders = []Folder{folder}

	req := NewRequest("Health", "GET", "https://{{host}}/health")
	req.Headers = []Header{{Key: "Accept", Value: "application/json", Enabled: true}}
	coll.Requests = []Request{req}

	clone := coll.Clone()

	t.Run("clone is equal", func(t *testing.T) {
		assert.Equal(t, coll, clone)
	})

	t.Run("mutating clone leaves original untouched", func(t *testing.T) {
		clone.Variables[0].Value = "changed"
		clone.Requests[0].Headers[0].Value = "text/plain"
		clone.Folders[0].Folders[0].Requests[0].URL = "changed"

		assert.Equal(t, "example.com", coll.Variables[0].Value)
		assert.Equal(t, "application/json", coll.Requests[0].Headers[0].Value)
		assert.Equal(t, "https://{{host}}/users/1", coll.Folders[0].Folders[0].Requests[0].URL)
	})
}

func TestRequest_Header(t *testing.T) {
	req := NewRequest("Test", "POST", "https://example.com")
	req.Headers = []Header{
		{Key: "Content-Type", Value: "application/json", Enabled: true},
		{Key: "X-Trace", Value: "abc", Enabled: false},
	}

	t.Run("case-insensitive lookup", func(t *testing.T) {
		h, ok := req.Header("content-type")
		require.True(t, ok)
		assert.Equal(t, "application/json", h.Value)
	})

	t.Run("missing header", func(t *testing.T) {
		_, ok := req.Header("Authorization")
		assert.False(t, ok)
	})
}

func TestRequest_SetHeader(t *testing.T) {
	req := NewRequest("Test", "GET", "https://example.com")

	req.SetHeader("Accept", "application/json")
	require.Len(t, req.Headers, 1)
	assert.True(t, req.Headers[0].Enabled)

	req.SetHeader("accept", "text/html")
	require.Len(t, req.Headers, 1)
	assert.Equal(t, "text/html", req.Headers[0].Value)
}

func TestCollection_VariableMap(t *testing.T) {
	coll := NewEnvironment("env")
	coll.Variables = []Variable{
		{Key: "host", Value: "first", Enabled: true},
		{Key: "token", Value: "secret", Enabled: false},
		{Key: "host", Value: "second", Enabled: true},
	}

	m := coll.VariableMap()
	assert.Equal(t, "second", m["host"], "duplicate keys are last-write-wins")
	_, ok := m["token"]
	assert.False(t, ok, "disabled variables are excluded")
}

func TestCollection_Counts(t *testing.T) {
	coll := NewCollection("counts")
	coll.Requests = []Request{NewRequest("root", "GET", "/")}

	inner := NewFolder("inner")
	inner.Requests = []Request{NewRequest("a", "GET", "/a"), NewRequest("b", "GET", "/b")}
	outer := NewFolder("outer")
	outer.Folders = []Folder{inner}
	coll.Folders = []Folder{outer}

	assert.Equal(t, 3, coll.RequestCount())
	assert.Equal(t, 2, coll.FolderCount())
}
