package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/toyz/implgen/internal/errors"
	"github.com/toyz/implgen/internal/utils"
	"github.com/toyz/implgen/internal/utils/fileops"
)

// DefaultConfigFile is picked up from the working directory when no -config is given
const DefaultConfigFile = "implgen.toml"

// Config holds the configuration for the CLI generator
type Config struct {
	// Catalogs lists descriptor (.jdesc) and YAML catalog files to load
	// on top of the built-in prelude
	Catalogs []string `toml:"catalogs"`

	// Compiler is the shell-quoted compiler command used by -jar
	Compiler string `toml:"compiler"`

	// Classpath is handed to the compiler so it can find the target type
	Classpath string `toml:"classpath"`

	// ScratchDir is where -jar creates its temporary tree; the OS temp
	// directory when empty
	ScratchDir string `toml:"scratch_dir"`

	// OutputDir is the root for source-only generation
	OutputDir string `toml:"output_dir"`

	// Verbose enables detailed logging and error reporting
	Verbose bool `toml:"verbose"`

	// Quiet limits output to errors
	Quiet bool `toml:"quiet"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		OutputDir: ".",
	}
}

// LoadConfig reads a TOML configuration file. Unknown keys are rejected and
// relative catalog paths are resolved against the file's directory.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := fileops.ReadFile(path)
	if err != nil {
		return nil, errors.WrapConfigurationError(path, "read", err)
	}

	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.WrapConfigurationError(path, "parse", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		sort.Strings(keys)
		return nil, errors.WrapConfigurationError(path, "parse", errors.Newf(errors.ConfigurationErrorCode, "unknown keys: %s", strings.Join(keys, ", "))).
			WithSuggestion("Supported keys: catalogs, compiler, classpath, scratch_dir, output_dir, verbose, quiet")
	}

	base := filepath.Dir(path)
	for i, catalog := range cfg.Catalogs {
		if !filepath.IsAbs(catalog) {
			cfg.Catalogs[i] = filepath.Join(base, catalog)
		}
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}

	return cfg, nil
}

// LoadDefaultConfig loads DefaultConfigFile from dir when it exists
func LoadDefaultConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, DefaultConfigFile)
	if _, err := os.Stat(path); err != nil {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

// Level maps the verbosity switches to a diagnostic level
func (c *Config) Level() utils.DiagnosticLevel {
	switch {
	case c.Quiet:
		return utils.DiagnosticError
	case c.Verbose:
		return utils.DiagnosticVerbose
	default:
		return utils.DiagnosticInfo
	}
}
