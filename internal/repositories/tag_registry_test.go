package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTags(t *testing.T) (TagRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tags.json")
	return NewTagRepository(path, StoreOptions{LockTimeout: 200 * time.Millisecond}), path
}

func TestTagRepository_LoadMissingOrMalformed(t *testing.T) {
	tags, path := newTestTags(t)
	ctx := context.Background()

	got, err := tags.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got)

	require.NoError(t, os.WriteFile(path, []byte(`{"not":"a list"}`), 0o644))
	got, err = tags.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got)
}

func TestTagRepository_SaveSortsAndDedupes(t *testing.T) {
	tags, path := newTestTags(t)
	ctx := context.Background()

	require.NoError(t, tags.Save(ctx, []string{"travel", "dining", " travel ", ""}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `["dining","travel"]`, string(raw))

	got, err := tags.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"dining", "travel"}, got)
}

func TestTagRepository_AddAndDelete(t *testing.T) {
	tags, _ := newTestTags(t)
	ctx := context.Background()

	got, err := tags.Add(ctx, []string{"travel", "cashback"})
	require.NoError(t, err)
	assert.Equal(t, []string{"cashback", "travel"}, got)

	got, err = tags.Add(ctx, []string{"travel", "business"})
	require.NoError(t, err)
	assert.Equal(t, []string{"business", "cashback", "travel"}, got)

	got, err = tags.Delete(ctx, []string{"cashback", "unknown"})
	require.NoError(t, err)
	assert.Equal(t, []string{"business", "travel"}, got)

	loaded, err := tags.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, got, loaded)
}
