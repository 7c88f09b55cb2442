package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator provides centralized path validation and cleaning functionality
type PathValidator struct{}

// NewPathValidator creates a new PathValidator instance
func NewPathValidator() *PathValidator {
	return &PathValidator{}
}

// ValidateAndClean cleans a path and requires it to exist
func (pv *PathValidator) ValidateAndClean(path string) (string, error) {
	cleanPath, err := pv.ValidateAndCleanOptional(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(cleanPath); os.IsNotExist(err) {
		return "", fmt.Errorf("path does not exist: %s", cleanPath)
	}
	return cleanPath, nil
}

// ValidateAndCleanOptional cleans a path without requiring it to exist.
// Parent references are only accepted as a leading prefix.
func (pv *PathValidator) ValidateAndCleanOptional(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	cleanPath := filepath.Clean(path)

	leading := true
	for _, segment := range strings.Split(filepath.ToSlash(cleanPath), "/") {
		if segment != ".." {
			leading = false
			continue
		}
		if !leading {
			return "", fmt.Errorf("path traversal not allowed in path: %s", path)
		}
	}

	return cleanPath, nil
}

// Exists checks if a path exists
func (pv *PathValidator) Exists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// IsDir checks if a path exists and is a directory
func (pv *PathValidator) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile checks if a path exists and is a regular file
func (pv *PathValidator) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
