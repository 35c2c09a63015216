package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	return s
}

func TestLocalSaveAndGet(t *testing.T) {
	s := newLocalStorage(t)
	ctx := context.Background()

	err := s.Save(ctx, "abc123/passport.jpg", strings.NewReader("passport bytes"), "image/jpeg")
	require.NoError(t, err)

	reader, err := s.Get(ctx, "abc123/passport.jpg")
	require.NoError(t, err)
	defer reader.Close()

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "passport bytes", string(content))

	size, err := s.GetSize(ctx, "abc123/passport.jpg")
	require.NoError(t, err)
	assert.Equal(t, int64(len("passport bytes")), size)
}

func TestLocalSaveOverwrites(t *testing.T) {
	s := newLocalStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "abc123/passport.jpg", strings.NewReader("first attempt"), "image/jpeg"))
	require.NoError(t, s.Save(ctx, "abc123/passport.jpg", strings.NewReader("retry"), "image/jpeg"))

	reader, err := s.Get(ctx, "abc123/passport.jpg")
	require.NoError(t, err)
	defer reader.Close()

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "retry", string(content))
}

func TestLocalExistsAndDelete(t *testing.T) {
	s := newLocalStorage(t)
	ctx := context.Background()

	exists, err := s.Exists(ctx, "abc123/cscs_front.png")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Save(ctx, "abc123/cscs_front.png", strings.NewReader("front"), "image/png"))

	exists, err = s.Exists(ctx, "abc123/cscs_front.png")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.Delete(ctx, "abc123/cscs_front.png"))

	exists, err = s.Exists(ctx, "abc123/cscs_front.png")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing file is not an error.
	assert.NoError(t, s.Delete(ctx, "abc123/cscs_front.png"))
}

func TestLocalGetURL(t *testing.T) {
	ctx := context.Background()

	s, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	url, err := s.GetURL(ctx, "abc123/passport.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/files/abc123/passport.jpg", url)

	s, err = NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: "https://uploads.example.com"})
	require.NoError(t, err)
	url, err = s.GetURL(ctx, "abc123/passport.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://uploads.example.com/abc123/passport.jpg", url)
}
