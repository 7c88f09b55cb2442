package fileops

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
)

// FileOps provides the file operations generation needs, combining path
// validation and error wrapping
type FileOps struct {
	pathValidator *PathValidator
	errorWrapper  *ErrorWrapper
}

// NewFileOps creates a new FileOps instance with all components
func NewFileOps() *FileOps {
	return &FileOps{
		pathValidator: NewPathValidator(),
		errorWrapper:  NewErrorWrapper(),
	}
}

var defaultOps = NewFileOps()

// ReadFile reads a file with the default FileOps
func ReadFile(path string) ([]byte, error) {
	return defaultOps.ReadFile(path)
}

// MkdirAll creates a directory and its missing parents with the default FileOps
func MkdirAll(path string) ([]string, error) {
	return defaultOps.MkdirAll(path)
}

// CreateText creates a text file with the default FileOps
func CreateText(path string) (io.WriteCloser, error) {
	return defaultOps.CreateText(path)
}

// Create creates a binary file with the default FileOps
func Create(path string) (io.WriteCloser, error) {
	return defaultOps.Create(path)
}

// DeleteIfExists removes a path with the default FileOps
func DeleteIfExists(path string) error {
	return defaultOps.DeleteIfExists(path)
}

// PathValidator returns the path validator instance
func (fo *FileOps) PathValidator() *PathValidator {
	return fo.pathValidator
}

// ErrorWrapper returns the error wrapper instance
func (fo *FileOps) ErrorWrapper() *ErrorWrapper {
	return fo.errorWrapper
}

// ReadFile reads a whole file with path validation and error handling
func (fo *FileOps) ReadFile(path string) ([]byte, error) {
	cleanPath, err := fo.pathValidator.ValidateAndClean(path)
	if err != nil {
		return nil, fo.errorWrapper.WrapFileReadError(path, err)
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fo.errorWrapper.WrapFileReadError(cleanPath, err)
	}
	return content, nil
}

// MkdirAll creates path and any missing parents. It returns the directories
// it created, outermost first, so a caller can remove exactly those again.
func (fo *FileOps) MkdirAll(path string) ([]string, error) {
	cleanPath, err := fo.pathValidator.ValidateAndCleanOptional(path)
	if err != nil {
		return nil, fo.errorWrapper.WrapPathResolutionError(path, err)
	}

	var missing []string
	for dir := cleanPath; !fo.pathValidator.Exists(dir); {
		missing = append(missing, dir)
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	created := make([]string, 0, len(missing))
	for i := len(missing) - 1; i >= 0; i-- {
		if err := os.Mkdir(missing[i], 0o755); err != nil && !os.IsExist(err) {
			return created, fo.errorWrapper.WrapDirectoryCreateError(missing[i], err)
		}
		created = append(created, missing[i])
	}

	if !fo.pathValidator.IsDir(cleanPath) {
		return created, fo.errorWrapper.WrapDirectoryCreateError(cleanPath, os.ErrExist)
	}
	return created, nil
}

// CreateText creates or truncates a file for writing generated source
func (fo *FileOps) CreateText(path string) (io.WriteCloser, error) {
	return fo.Create(path)
}

// Create creates or truncates a file for writing. Writes are buffered; Close
// flushes before closing the file and is safe to call more than once.
func (fo *FileOps) Create(path string) (io.WriteCloser, error) {
	cleanPath, err := fo.pathValidator.ValidateAndCleanOptional(path)
	if err != nil {
		return nil, fo.errorWrapper.WrapPathResolutionError(path, err)
	}

	file, err := os.Create(cleanPath)
	if err != nil {
		return nil, fo.errorWrapper.WrapFileCreateError(cleanPath, err)
	}
	return &bufferedFile{
		Writer: bufio.NewWriter(file),
		file:   file,
		path:   cleanPath,
		wrap:   fo.errorWrapper,
	}, nil
}

// DeleteIfExists removes a file or an empty directory. A missing path is not
// an error.
func (fo *FileOps) DeleteIfExists(path string) error {
	cleanPath, err := fo.pathValidator.ValidateAndCleanOptional(path)
	if err != nil {
		return fo.errorWrapper.WrapPathResolutionError(path, err)
	}

	if err := os.Remove(cleanPath); err != nil && !os.IsNotExist(err) {
		return fo.errorWrapper.WrapFileRemovalError(cleanPath, err)
	}
	return nil
}

// Exists checks if a path exists using the path validator
func (fo *FileOps) Exists(path string) bool {
	return fo.pathValidator.Exists(path)
}

// IsDir checks if a path is a directory using the path validator
func (fo *FileOps) IsDir(path string) bool {
	return fo.pathValidator.IsDir(path)
}

type bufferedFile struct {
	*bufio.Writer
	file   *os.File
	path   string
	wrap   *ErrorWrapper
	closed bool
}

func (w *bufferedFile) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	flushErr := w.Flush()
	closeErr := w.file.Close()
	if flushErr != nil {
		return w.wrap.WrapFileCreateError(w.path, flushErr)
	}
	if closeErr != nil {
		return w.wrap.WrapFileCreateError(w.path, closeErr)
	}
	return nil
}
