package toolchain

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/toyz/implgen/internal/errors"
	"github.com/toyz/implgen/internal/templates"
	"github.com/toyz/implgen/internal/utils/fileops"
)

const (
	manifestDir  = "META-INF/"
	manifestPath = "META-INF/MANIFEST.MF"
)

// Entry is one archive member. Directory entries need only a name; file
// entries are read from Path, or taken from Data when Path is empty.
type Entry struct {
	Name string
	Dir  bool
	Path string
	Data []byte
}

// Archiver writes a jar-shaped archive
type Archiver interface {
	Write(path string, manifest templates.ManifestData, entries []Entry) error
}

// JarArchiver writes deflated zip archives with a leading manifest
type JarArchiver struct {
	Modified time.Time // entry timestamp, the current time when zero
}

// NewJarArchiver creates a new archiver
func NewJarArchiver() *JarArchiver {
	return &JarArchiver{}
}

// DefaultManifest returns the minimal manifest written for generated units
func DefaultManifest() templates.ManifestData {
	return templates.ManifestData{
		Version: "1.0",
		Attributes: []templates.ManifestAttribute{
			{Name: "Created-By", Value: "implgen"},
		},
	}
}

// Write creates path and fills it with the manifest followed by entries.
// The file is closed on every path; a failed archive is left for the caller
// to remove.
func (a *JarArchiver) Write(path string, manifest templates.ManifestData, entries []Entry) (err error) {
	out, err := fileops.Create(path)
	if err != nil {
		return errors.WrapArchiveError(path, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = errors.WrapArchiveError(path, closeErr)
		}
	}()

	zw := zip.NewWriter(out)
	if err := a.writeAll(zw, manifest, entries); err != nil {
		zw.Close()
		return errors.WrapArchiveError(path, err)
	}
	if err := zw.Close(); err != nil {
		return errors.WrapArchiveError(path, err)
	}
	return nil
}

func (a *JarArchiver) writeAll(zw *zip.Writer, manifest templates.ManifestData, entries []Entry) error {
	text, err := templates.RenderManifest(manifest)
	if err != nil {
		return err
	}

	if err := a.writeDir(zw, manifestDir); err != nil {
		return err
	}
	if err := a.writeData(zw, manifestPath, []byte(text)); err != nil {
		return err
	}

	for _, e := range entries {
		switch {
		case e.Dir:
			err = a.writeDir(zw, e.Name)
		case e.Path != "":
			err = a.writeFile(zw, e.Name, e.Path)
		default:
			err = a.writeData(zw, e.Name, e.Data)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *JarArchiver) header(name string, method uint16) *zip.FileHeader {
	modified := a.Modified
	if modified.IsZero() {
		modified = time.Now()
	}
	return &zip.FileHeader{
		Name:     name,
		Method:   method,
		Modified: modified,
	}
}

// writeDir records a directory entry; the name always ends in '/'
func (a *JarArchiver) writeDir(zw *zip.Writer, name string) error {
	if !strings.HasSuffix(name, "/") {
		name += "/"
	}
	_, err := zw.CreateHeader(a.header(name, zip.Store))
	return err
}

func (a *JarArchiver) writeData(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.CreateHeader(a.header(name, zip.Deflate))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (a *JarArchiver) writeFile(zw *zip.Writer, name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := zw.CreateHeader(a.header(name, zip.Deflate))
	if err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}
