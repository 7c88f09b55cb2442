package cli

import (
	"github.com/toyz/implgen/internal/utils"
	"github.com/toyz/implgen/internal/utils/fileops"
)

// Cleaner removes the temporary files and directories of one packaged
// generation. Removal is best effort: failures are logged at debug level and
// never returned.
type Cleaner struct {
	paths       []string
	diagnostics *utils.DiagnosticSystem
}

// NewCleaner creates a new cleaner
func NewCleaner(diagnostics *utils.DiagnosticSystem) *Cleaner {
	return &Cleaner{
		diagnostics: diagnostics,
	}
}

// Track records paths for removal. Directories must be tracked before the
// files inside them.
func (c *Cleaner) Track(paths ...string) {
	c.paths = append(c.paths, paths...)
}

// Tracked returns the recorded paths in tracking order
func (c *Cleaner) Tracked() []string {
	return append([]string(nil), c.paths...)
}

// Clean removes tracked paths in reverse order and returns those it removed
func (c *Cleaner) Clean() []string {
	var removed []string
	for i := len(c.paths) - 1; i >= 0; i-- {
		path := c.paths[i]
		if err := fileops.DeleteIfExists(path); err != nil {
			if c.diagnostics != nil {
				c.diagnostics.Debug("Could not remove %s: %v", path, err)
			}
			continue
		}
		removed = append(removed, path)
	}
	c.paths = nil
	return removed
}
