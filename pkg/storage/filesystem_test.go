package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileSystemStorage(t *testing.T) {
	t.Run("creates storage with new directory", func(t *testing.T) {
		rootDir := filepath.Join(t.TempDir(), "site")

		storage, err := NewFileSystemStorage(rootDir)
		if err != nil {
			t.Fatalf("Failed to create storage: %v", err)
		}
		if storage.rootDir != rootDir {
			t.Errorf("Expected rootDir %s, got %s", rootDir, storage.rootDir)
		}
		if _, err := os.Stat(rootDir); os.IsNotExist(err) {
			t.Error("Root directory should have been created")
		}
		assert.Equal(t, rootDir, storage.Location())
	})

	t.Run("creates storage with existing directory", func(t *testing.T) {
		storage, err := NewFileSystemStorage(t.TempDir())
		require.NoError(t, err)
		assert.NotNil(t, storage)
	})
}

func TestFileSystemStorage_WriteFile(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	storage, err := NewFileSystemStorage(root)
	require.NoError(t, err)

	require.NoError(t, WritePage(ctx, storage, "api", "ui.grid.class:Grid", "<h1>Grid</h1>"))
	require.NoError(t, WriteJSON(ctx, storage, SetupFile, map[string]string{"title": "Docs"}))

	page, err := os.ReadFile(filepath.Join(root, "partials", "api", "ui.grid.class:Grid.html"))
	require.NoError(t, err)
	assert.Equal(t, "<h1>Grid</h1>", string(page))

	setup, err := os.ReadFile(filepath.Join(root, "js", "docs-setup.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Docs"}`, string(setup))

	stats := storage.Stats()
	assert.Equal(t, 2, stats.Files)
	assert.Equal(t, int64(len("<h1>Grid</h1>")+len(`{"title":"Docs"}`)), stats.Bytes)
}

func TestFileSystemStorage_Overwrite(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	storage, err := NewFileSystemStorage(root)
	require.NoError(t, err)

	require.NoError(t, storage.WriteFile(ctx, IndexFile, []byte("old")))
	require.NoError(t, storage.WriteFile(ctx, IndexFile, []byte("new")))

	data, err := os.ReadFile(filepath.Join(root, IndexFile))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestFileSystemStorage_RejectsEscapingNames(t *testing.T) {
	storage, err := NewFileSystemStorage(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "/etc/passwd", "../outside.html", "partials/../../x", ".."} {
		err := storage.WriteFile(context.Background(), name, []byte("x"))
		assert.ErrorIs(t, err, ErrInvalidPath, name)
	}
	assert.Zero(t, storage.Stats().Files)
}

func TestFileSystemStorage_CanceledContext(t *testing.T) {
	storage, err := NewFileSystemStorage(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, storage.WriteFile(ctx, IndexFile, nil), context.Canceled)
}
