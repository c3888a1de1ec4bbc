package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/reqshift/reqshift/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *LibraryStore {
	t.Helper()
	store, err := NewLibraryStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func storedCollection() *core.Collection {
	coll := core.NewCollection("Stored API")
	coll.Description = "kept on disk"
	coll.SourceFormat = "postman"
	coll.Variables = append(coll.Variables, core.NewVariable("host", "api.example.com"))

	req := core.NewRequest("List", "GET", "https://{{host}}/items")
	req.Headers = append(req.Headers, core.Header{Key: "Accept", Value: "application/json", Enabled: true})
	coll.Requests = append(coll.Requests, req)

	folder := core.NewFolder("Nested")
	folder.Requests = append(folder.Requests, core.NewRequest("Create", "POST", "https://{{host}}/items"))
	coll.Folders = append(coll.Folders, folder)

	return coll
}

func TestLibraryStoreSaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	coll := storedCollection()

	require.NoError(t, store.Save(ctx, coll))

	loaded, err := store.Get(ctx, coll.ID)
	require.NoError(t, err)

	assert.Equal(t, coll.ID, loaded.ID)
	assert.Equal(t, "Stored API", loaded.Name)
	assert.Equal(t, "postman", loaded.SourceFormat)
	assert.Equal(t, core.TypeCollection, loaded.Type)

	require.Len(t, loaded.Variables, 1)
	assert.True(t, loaded.Variables[0].Enabled)

	require.Len(t, loaded.Requests, 1)
	require.Len(t, loaded.Requests[0].Headers, 1)
	assert.Equal(t, "Accept", loaded.Requests[0].Headers[0].Key)

	require.Len(t, loaded.Folders, 1)
	require.Len(t, loaded.Folders[0].Requests, 1)
	assert.Equal(t, "Create", loaded.Folders[0].Requests[0].Name)
}

func TestLibraryStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "no-such-id")
	assert.Error(t, err)
}

func TestLibraryStoreList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := storedCollection()
	second := core.NewEnvironment("Production")
	second.Variables = append(second.Variables,
		core.NewVariable("host", "prod.example.com"),
		core.NewVariable("token", "t"))

	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))

	metas, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 2)

	byID := make(map[string]CollectionMeta)
	for _, m := range metas {
		byID[m.ID] = m
	}

	assert.Equal(t, 2, byID[first.ID].RequestCount)
	assert.Equal(t, 1, byID[first.ID].VariableCount)
	assert.Equal(t, core.TypeEnvironment, byID[second.ID].Type)
	assert.Equal(t, 2, byID[second.ID].VariableCount)
	assert.False(t, byID[first.ID].UpdatedAt.IsZero())
}

func TestLibraryStoreListSkipsInvalidFiles(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, storedCollection()))
	require.NoError(t, os.WriteFile(filepath.Join(store.basePath, "broken.yaml"), []byte("{ broken: ["), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(store.basePath, "notes.txt"), []byte("ignored"), 0644))

	metas, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, metas, 1)
}

func TestLibraryStoreDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	coll := storedCollection()

	require.NoError(t, store.Save(ctx, coll))
	require.NoError(t, store.Delete(ctx, coll.ID))

	_, err := store.Get(ctx, coll.ID)
	assert.Error(t, err)

	err = store.Delete(ctx, coll.ID)
	assert.ErrorContains(t, err, "not found")
}

func TestLibraryStoreSearch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	orders := core.NewCollection("Orders API")
	billing := core.NewCollection("Billing")
	billing.Description = "invoices and orders"
	users := core.NewCollection("Users")

	for _, c := range []*core.Collection{orders, billing, users} {
		require.NoError(t, store.Save(ctx, c))
	}

	results, err := store.Search(ctx, "ORDER")
	require.NoError(t, err)
	assert.Len(t, results, 2, "matches name and description, case-insensitively")

	results, err = store.Search(ctx, "users")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, users.ID, results[0].ID)
}

func TestLibraryStoreSaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	coll := storedCollection()

	require.NoError(t, store.Save(ctx, coll))

	coll.Name = "Renamed"
	require.NoError(t, store.Save(ctx, coll))

	loaded, err := store.Get(ctx, coll.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", loaded.Name)

	metas, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, metas, 1)
}
