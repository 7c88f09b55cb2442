package fileops

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/implgen/internal/errors"
)

func TestMkdirAll_ReturnsCreatedSegments(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "com", "example", "impl")

	created, err := MkdirAll(target)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "com"),
		filepath.Join(root, "com", "example"),
		target,
	}, created)
	assert.DirExists(t, target)

	created, err = MkdirAll(target)
	require.NoError(t, err)
	assert.Empty(t, created, "existing directories are not reported")
}

func TestMkdirAll_FileInTheWay(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "com")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := MkdirAll(filepath.Join(blocker, "example"))
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.FileSystemErrorCode))
}

func TestCreateText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "FooImpl.java")

	w, err := CreateText(path)
	require.NoError(t, err)
	_, err = io.WriteString(w, "class FooImpl {}\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "closing twice is a no-op")

	content, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "class FooImpl {}\n", string(content))
}

func TestCreateText_MissingParent(t *testing.T) {
	_, err := CreateText(filepath.Join(t.TempDir(), "missing", "FooImpl.java"))
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.FileSystemErrorCode))
}

func TestDeleteIfExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	require.NoError(t, DeleteIfExists(file))
	assert.NoFileExists(t, file)

	require.NoError(t, DeleteIfExists(file), "missing paths are ignored")

	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.txt"), nil, 0o644))
	err := DeleteIfExists(sub)
	require.Error(t, err, "non-empty directories are not removed")
	assert.True(t, errors.IsKind(err, errors.FileSystemErrorCode))
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.jdesc"))
	require.Error(t, err)
	assert.Equal(t, errors.FileSystemErrorCode, errors.KindOf(err))
}

func TestPathValidator(t *testing.T) {
	pv := NewPathValidator()

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "empty", path: "", wantErr: true},
		{name: "clean relative", path: "a/./b/", want: filepath.Clean("a/b")},
		{name: "leading parent", path: "../a", want: filepath.Clean("../a")},
		{name: "collapsed parent", path: "a/../b", want: "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pv.ValidateAndCleanOptional(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
