package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileURL(t *testing.T) {
	url := fileURL("https://f003.backblazeb2.com", "orientation-uploads", "1700000000-report.pdf")

	assert.Equal(t, "https://f003.backblazeb2.com/file/orientation-uploads/1700000000-report.pdf", url)
}

func TestObjectKey(t *testing.T) {
	first := objectKey("report.pdf")
	second := objectKey("report.pdf")

	assert.True(t, strings.HasSuffix(first, "-report.pdf"))
	assert.NotEqual(t, first, second, "repeated uploads of the same name must not collide")
}

func TestDiskStore_Put(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "http://localhost:8080/files")
	require.NoError(t, err)

	desc, err := store.Put(context.Background(), "notes.txt", strings.NewReader("day one"))

	require.NoError(t, err)
	assert.Equal(t, "notes.txt", desc.Name)
	assert.Equal(t, int64(len("day one")), desc.Size)
	assert.True(t, strings.HasPrefix(desc.URL, "http://localhost:8080/files/"))

	key := strings.TrimPrefix(desc.URL, "http://localhost:8080/files/")
	stored, err := os.ReadFile(filepath.Join(dir, key))
	require.NoError(t, err)
	assert.Equal(t, "day one", string(stored))
}
