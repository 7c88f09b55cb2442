package cli

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/toyz/implgen/internal/errors"
)

func newBufferedReporter(t *testing.T, verbose bool) (*DiagnosticReporter, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var out, errOut bytes.Buffer
	return NewDiagnosticReporterTo(verbose, &out, &errOut), &out, &errOut
}

func TestDiagnosticReporter_ReportError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		verbose  bool
		contains []string
		absent   []string
	}{
		{
			name: "unsupported target",
			err:  errors.Unsupported("com.example.Sealed", "type is final"),
			contains: []string{
				"ERROR: Implementation Failed",
				"Type: Unsupported Target Type",
				"Message: type 'com.example.Sealed' is not supported: type is final",
				"Target: com.example.Sealed",
				"Implementable Types:",
			},
			absent: []string{"Verbose Debug Information"},
		},
		{
			name:    "descriptor error with location",
			err:     errors.WrapDescriptorError("types.jdesc", 7, stderrors.New("unexpected token")),
			verbose: true,
			contains: []string{
				"Type: Descriptor Error",
				"Message: invalid descriptor 'types.jdesc' at line 7\n",
				"Underlying cause: unexpected token",
				"Location: types.jdesc:7",
				"Descriptor Syntax Help:",
				"Error Kind: Descriptor",
				"1. unexpected token",
			},
		},
		{
			name: "compile error context",
			err: errors.WrapCompileError([]string{"AImpl.java"}, stderrors.New("exit status 1")).
				WithContext("output", "AImpl.java:3: error\n1 error"),
			contains: []string{
				"Type: Compilation Error",
				"   Output: \n      AImpl.java:3: error\n      1 error",
				"Suggestions:\n   1. Check that the compiler command is installed and on PATH",
				"Compiler Setup:",
			},
		},
		{
			name:     "plain error",
			err:      stderrors.New("boom"),
			contains: []string{"Message: boom"},
			absent:   []string{"Type:"},
		},
		{
			name: "multiple errors",
			err: &errors.MultipleErrors{Errors: []errors.ImplError{
				errors.NotFound("a.B"),
				errors.NoUsableConstructor("a.C"),
			}},
			contains: []string{"[1/2]", "Type: Unknown Type", "[2/2]", "Type: Resolution Error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter, out, errOut := newBufferedReporter(t, tt.verbose)
			reporter.ReportError(tt.err)

			assert.Empty(t, out.String())
			for _, want := range tt.contains {
				assert.Contains(t, errOut.String(), want)
			}
			for _, unwanted := range tt.absent {
				assert.NotContains(t, errOut.String(), unwanted)
			}
		})
	}
}

func TestDiagnosticReporter_ReportInvalidType(t *testing.T) {
	reporter, _, errOut := newBufferedReporter(t, false)
	reporter.ReportInvalidType("com.example.Missing", errors.NotFound("com.example.Missing"))
	assert.Equal(t, "Invalid type name: com.example.Missing\n", errOut.String())

	verbose, _, errOut := newBufferedReporter(t, true)
	verbose.ReportInvalidType("x", errors.NotFound("x"))
	assert.Contains(t, errOut.String(), "type 'x' not found")
}

func TestDiagnosticReporter_ReportSuccess(t *testing.T) {
	reporter, out, errOut := newBufferedReporter(t, false)
	reporter.ReportSuccess(GenerationSummary{
		Target:         "com.example.Outer",
		Unit:           "OuterImpl",
		NestedUnits:    2,
		Archive:        "out.jar",
		GeneratedFiles: []string{"com/example/OuterImpl.java"},
	})

	assert.Equal(t, "Implemented com.example.Outer as OuterImpl\n"+
		"Nested units: 2\n"+
		"Archive: out.jar\n"+
		"Generated files:\n"+
		"  - com/example/OuterImpl.java\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestDiagnosticReporter_WarningAndDebug(t *testing.T) {
	reporter, _, errOut := newBufferedReporter(t, false)
	reporter.ReportWarning("catalog has no types", "check the path")
	reporter.Debug("hidden %d", 1)
	assert.Equal(t, "! catalog has no types\n  - check the path\n", errOut.String())

	verbose, _, errOut := newBufferedReporter(t, true)
	verbose.Debug("loaded %d files", 3)
	assert.Equal(t, "[DEBUG] loaded 3 files\n", errOut.String())
}
