package cli

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/implgen/internal/utils/fileops"
)

// catalogExtensions are the file kinds the catalog loader understands
var catalogExtensions = map[string]bool{
	".jdesc": true,
	".yaml":  true,
	".yml":   true,
}

// CatalogScanner expands catalog arguments into descriptor files
type CatalogScanner struct {
	files *fileops.FileOps
}

// NewCatalogScanner creates a new catalog scanner
func NewCatalogScanner() *CatalogScanner {
	return &CatalogScanner{
		files: fileops.NewFileOps(),
	}
}

// Scan resolves every argument to catalog files. A file is taken as is, a
// directory contributes the catalog files directly inside it and "dir/..."
// walks the whole tree, skipping hidden directories. Files found in
// directories are sorted; explicit files keep their position.
func (s *CatalogScanner) Scan(args []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, arg := range args {
		recursive := strings.HasSuffix(arg, "/...")
		root := strings.TrimSuffix(arg, "/...")
		if root == "" {
			root = "."
		}

		cleanPath, err := s.files.PathValidator().ValidateAndClean(root)
		if err != nil {
			return nil, s.files.ErrorWrapper().WrapPathResolutionError(root, err)
		}

		if !s.files.IsDir(cleanPath) {
			add(cleanPath)
			continue
		}

		found, err := s.scanDirectory(cleanPath, recursive)
		if err != nil {
			return nil, s.files.ErrorWrapper().WrapFileReadError(cleanPath, err)
		}
		for _, f := range found {
			add(f)
		}
	}

	return files, nil
}

func (s *CatalogScanner) scanDirectory(dir string, recursive bool) ([]string, error) {
	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == dir {
				return nil
			}
			if !recursive || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if catalogExtensions[strings.ToLower(filepath.Ext(path))] {
			found = append(found, path)
		}
		return nil
	})
	sort.Strings(found)
	return found, err
}
