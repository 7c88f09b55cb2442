package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/implgen/internal/errors"
	"github.com/toyz/implgen/internal/utils"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
catalogs = ["types/app.jdesc", "/abs/extra.yaml"]
compiler = "javac -encoding UTF-8 -g"
classpath = "lib/app.jar"
scratch_dir = "/var/tmp"
verbose = true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "types", "app.jdesc"), "/abs/extra.yaml"}, cfg.Catalogs)
	assert.Equal(t, "javac -encoding UTF-8 -g", cfg.Compiler)
	assert.Equal(t, "lib/app.jar", cfg.Classpath)
	assert.Equal(t, "/var/tmp", cfg.ScratchDir)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, utils.DiagnosticVerbose, cfg.Level())
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "unknown key", content: "catalog = [\"a.jdesc\"]\n", want: "unknown keys: catalog"},
		{name: "bad syntax", content: "verbose = \n", want: "failed to parse configuration"},
		{name: "wrong type", content: "verbose = \"yes\"\n", want: "failed to parse configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, t.TempDir(), tt.content))
			require.Error(t, err)
			assert.Equal(t, errors.ConfigurationErrorCode, errors.KindOf(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read configuration")
}

func TestLoadDefaultConfig(t *testing.T) {
	cfg, err := LoadDefaultConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	dir := t.TempDir()
	writeConfig(t, dir, "quiet = true\noutput_dir = \"gen\"\n")
	cfg, err = LoadDefaultConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "gen", cfg.OutputDir)
	assert.Equal(t, utils.DiagnosticError, cfg.Level())
}

func TestConfig_Level(t *testing.T) {
	assert.Equal(t, utils.DiagnosticInfo, DefaultConfig().Level())
	assert.Equal(t, utils.DiagnosticError, (&Config{Quiet: true, Verbose: true}).Level(), "quiet wins")
}
