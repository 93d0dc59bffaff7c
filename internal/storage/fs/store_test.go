package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"CasaMoreno/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: filepath.Join(t.TempDir(), "nested")}

	_, ok, err := s.Get(ctx, storage.AuthTokenKey)
	require.NoError(t, err)
	assert.False(t, ok, "missing slot must read as absent")

	require.NoError(t, s.Save(storage.AuthTokenKey, "tok-abc"))
	v, ok, err := s.Get(ctx, storage.AuthTokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-abc", v)

	info, err := os.Stat(filepath.Join(s.Dir, storage.AuthTokenKey))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, s.Delete(storage.AuthTokenKey))
	_, ok, _ = s.Get(ctx, storage.AuthTokenKey)
	assert.False(t, ok)
	// повторное удаление не ошибка
	assert.NoError(t, s.Delete(storage.AuthTokenKey))
}

func TestStore_TrimsTrailingWhitespace(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, storage.AuthTokenKey), []byte("tok\r\n \t"), 0o600))

	v, ok, err := Store{Dir: dir}.Get(context.Background(), storage.AuthTokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)
}

func TestStore_EmptyFileIsAbsent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, storage.AuthTokenKey), []byte("\n"), 0o600))

	_, ok, err := Store{Dir: dir}.Get(context.Background(), storage.AuthTokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_RejectsPathKeys(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	_, _, err := s.Get(context.Background(), "../etc/passwd")
	assert.Error(t, err)
	assert.Error(t, s.Save("a/b", "x"))
}
