package local

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndGet(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key, err := store.Save(ctx, "image/jpeg", strings.NewReader("fake jpeg bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "scan_"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	r, mimeType, err := store.Get(ctx, key)
	require.NoError(t, err)
	defer func() { require.NoError(t, r.Close()) }()

	assert.Equal(t, "image/jpeg", mimeType)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "fake jpeg bytes", string(data))
}

func TestSavePNGExtension(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	key, err := store.Save(context.Background(), "image/png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".png"))

	_, mimeType, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
}

func TestDelete(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key, err := store.Save(ctx, "image/jpeg", strings.NewReader("bytes"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, key))

	_, _, err = store.Get(ctx, key)
	assert.Error(t, err)
}

func TestGetRejectsTraversal(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.Get(context.Background(), "../../etc/passwd")
	assert.Error(t, err)
}

func TestGetMissing(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.Get(context.Background(), "scan_none.jpg")
	assert.Error(t, err)
}
