package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadDownload(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/files/")
	require.NoError(t, err)

	path, err := s.Upload(ctx, strings.NewReader("<html></html>"), "receipts/r1.html", "text/html")
	require.NoError(t, err)
	assert.Equal(t, "receipts/r1.html", path)

	exists, err := s.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := s.Download(ctx, path)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(body))

	url, err := s.GetURL(ctx, path, 0)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/receipts/r1.html", url)
}

func TestLocalStorage_Overwrite(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	_, err = s.Upload(ctx, strings.NewReader("v1"), "state/doc.json", "application/json")
	require.NoError(t, err)
	_, err = s.Upload(ctx, strings.NewReader("v2"), "state/doc.json", "application/json")
	require.NoError(t, err)

	rc, err := s.Download(ctx, "state/doc.json")
	require.NoError(t, err)
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "v2", string(body))
}

func TestLocalStorage_TraversalStaysInside(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	path, err := s.Upload(ctx, strings.NewReader("x"), "../../escape.txt", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "escape.txt", path)

	_, err = s.Upload(ctx, strings.NewReader("x"), "..", "text/plain")
	assert.Error(t, err)
}

func TestLocalStorage_Missing(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	_, err = s.Download(ctx, "nope.txt")
	assert.ErrorIs(t, err, ErrFileNotFound)

	exists, err := s.Exists(ctx, "nope.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, s.Delete(ctx, "nope.txt"))
}
