package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDiagnostics(level DiagnosticLevel) (*DiagnosticSystem, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	d := NewDiagnosticSystem(level)
	d.SetOutput(&out, &errOut)
	d.SetColors(false)
	d.SetShowTime(false)
	return d, &out, &errOut
}

func TestDiagnosticSystem_Levels(t *testing.T) {
	tests := []struct {
		level   DiagnosticLevel
		wantOut []string
		wantErr []string
	}{
		{DiagnosticSilent, nil, nil},
		{DiagnosticError, nil, []string{"[ERROR] e"}},
		{DiagnosticWarn, nil, []string{"[ERROR] e", "[WARN] w"}},
		{DiagnosticInfo, []string{"[INFO] i"}, []string{"[ERROR] e", "[WARN] w"}},
		{DiagnosticVerbose, []string{"[INFO] i", "[VERBOSE] v"}, []string{"[ERROR] e", "[WARN] w"}},
		{DiagnosticDebug, []string{"[INFO] i", "[VERBOSE] v", "[DEBUG] d"}, []string{"[ERROR] e", "[WARN] w"}},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			d, out, errOut := newTestDiagnostics(tt.level)
			d.Error("e")
			d.Warn("w")
			d.Info("i")
			d.Verbose("v")
			d.Debug("d")

			assert.Equal(t, tt.wantOut, splitLines(out.String()))
			assert.Equal(t, tt.wantErr, splitLines(errOut.String()))
		})
	}
}

func TestDiagnosticSystem_Formatting(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticVerbose)

	d.Section("implgen")
	d.Indent()
	d.List("%d units", 2)
	d.StartProgress("compile")
	d.EndProgress("compile")
	d.Unindent()
	d.Unindent()
	d.Summary("done", map[string]interface{}{"units": 2, "archive": "out.jar"})

	lines := splitLines(out.String())
	assert.Equal(t, "implgen", lines[0])
	assert.Equal(t, "  - 2 units", lines[1])
	assert.Equal(t, "  - compile...", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "  ✓ compile ("), lines[3])
	assert.Equal(t, []string{"", "done", "   archive: out.jar", "   units: 2"}, lines[4:])
}

func TestDiagnosticSystem_FailProgress(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticVerbose)
	d.StartProgress("compile")
	d.FailProgress("compile")
	d.FailProgress("never started")

	lines := splitLines(out.String())
	require.Len(t, lines, 3)
	assert.Equal(t, "- compile...", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "✗ compile ("), lines[1])
	assert.Equal(t, "✗ never started", lines[2])

	quiet, out, _ := newTestDiagnostics(DiagnosticInfo)
	quiet.StartProgress("compile")
	quiet.FailProgress("compile")
	assert.Empty(t, out.String())
}

func TestDiagnosticSystem_Colors(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticInfo)
	d.SetColors(true)
	d.Info("colored")

	assert.Contains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "[INFO]")
}

func TestParseDiagnosticLevel(t *testing.T) {
	for l := DiagnosticSilent; l <= DiagnosticDebug; l++ {
		got, ok := ParseDiagnosticLevel(l.String())
		assert.True(t, ok)
		assert.Equal(t, l, got)
	}

	got, ok := ParseDiagnosticLevel(" Verbose ")
	assert.True(t, ok)
	assert.Equal(t, DiagnosticVerbose, got)

	_, ok = ParseDiagnosticLevel("loud")
	assert.False(t, ok)
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
