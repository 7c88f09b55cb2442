package toolchain

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/implgen/internal/errors"
)

func readArchive(t *testing.T, path string) ([]string, map[string]string) {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	var names []string
	contents := make(map[string]string)
	for _, f := range r.File {
		names = append(names, f.Name)
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		contents[f.Name] = string(data)
	}
	return names, contents
}

func TestJarArchiver_Write(t *testing.T) {
	dir := t.TempDir()
	classFile := filepath.Join(dir, "FooImpl.class")
	require.NoError(t, os.WriteFile(classFile, []byte{0xca, 0xfe, 0xba, 0xbe}, 0o644))

	archive := filepath.Join(dir, "out.jar")
	a := &JarArchiver{Modified: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
	err := a.Write(archive, DefaultManifest(), []Entry{
		{Name: "com", Dir: true},
		{Name: "com/example/", Dir: true},
		{Name: "com/example/FooImpl.class", Path: classFile},
		{Name: "com/example/notes.txt", Data: []byte("hello")},
	})
	require.NoError(t, err)

	names, contents := readArchive(t, archive)
	assert.Equal(t, []string{
		"META-INF/",
		"META-INF/MANIFEST.MF",
		"com/",
		"com/example/",
		"com/example/FooImpl.class",
		"com/example/notes.txt",
	}, names)
	assert.Equal(t, "Manifest-Version: 1.0\nCreated-By: implgen\n\n", contents["META-INF/MANIFEST.MF"])
	assert.Equal(t, "\xca\xfe\xba\xbe", contents["com/example/FooImpl.class"])
	assert.Equal(t, "hello", contents["com/example/notes.txt"])
	assert.Empty(t, contents["com/"])
}

func TestJarArchiver_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing entry file", func(t *testing.T) {
		archive := filepath.Join(dir, "missing.jar")
		err := NewJarArchiver().Write(archive, DefaultManifest(), []Entry{
			{Name: "A.class", Path: filepath.Join(dir, "nope.class")},
		})
		require.Error(t, err)
		assert.Equal(t, errors.ArchiveErrorCode, errors.KindOf(err))
	})

	t.Run("unwritable destination", func(t *testing.T) {
		archive := filepath.Join(dir, "no", "such", "dir", "out.jar")
		err := NewJarArchiver().Write(archive, DefaultManifest(), nil)
		require.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.ArchiveErrorCode))
		assert.NoFileExists(t, archive)
	})
}
