package errors

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, UnknownErrorCode},
		{"plain", io.EOF, UnknownErrorCode},
		{"unsupported", Unsupported("a.B", "type is final"), UnsupportedErrorCode},
		{"wrapped by fmt", fmt.Errorf("generate: %w", NoUsableConstructor("a.B")), ResolutionErrorCode},
		{"not found", NotFound("a.B"), NotFoundErrorCode},
		{"descriptor", WrapDescriptorError("a.jdesc", 3, io.ErrUnexpectedEOF), DescriptorErrorCode},
		{"file system", WrapFileSystemError("create", "/x", io.ErrClosedPipe), FileSystemErrorCode},
		{"configuration", WrapConfigurationError("implgen.toml", "parse", io.EOF), ConfigurationErrorCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestIsKind_SearchesChain(t *testing.T) {
	inner := MalformedText("lone surrogate", 4)
	outer := WrapGenerationError(UnknownErrorCode, "render failed", inner)

	assert.Equal(t, UnknownErrorCode, KindOf(outer), "KindOf reports the outermost kind")
	assert.True(t, IsKind(outer, MalformedTextErrorCode))
	assert.False(t, IsKind(outer, CompileErrorCode))
	assert.False(t, IsKind(nil, UnknownErrorCode))
}

func TestGenerationError_Builders(t *testing.T) {
	err := Unsupported("com.example.Sealed", "type is final")
	assert.Equal(t, "type 'com.example.Sealed' is not supported: type is final", err.Error())
	assert.Equal(t, "eligibility", err.Stage)
	assert.Equal(t, "com.example.Sealed", err.TypeName)
	assert.Equal(t, "com.example.Sealed", err.Context()["type"])

	compile := WrapCompileError([]string{"AImpl.java"}, io.EOF)
	assert.Equal(t, "failed to compile generated sources: EOF", compile.Error())
	assert.Equal(t, []string{"AImpl.java"}, compile.Context()["sources"])
	assert.Len(t, compile.Suggestions(), 2)
	assert.ErrorIs(t, compile, io.EOF)

	malformed := MalformedText("truncated sequence", 7)
	assert.Equal(t, 7, malformed.Context()["offset"])
}

func TestCatalogError(t *testing.T) {
	err := WrapDescriptorError("types.jdesc", 0, io.EOF)
	assert.Equal(t, "invalid descriptor 'types.jdesc': EOF", err.Error())

	err = WrapDescriptorError("types.jdesc", 12, io.EOF)
	assert.Equal(t, "invalid descriptor 'types.jdesc' at line 12: EOF", err.Error())
	assert.Equal(t, 12, err.Line)

	plain := DescriptorError("types.yaml", "missing name")
	assert.Equal(t, "invalid descriptor 'types.yaml': missing name", plain.Error())
	assert.Nil(t, plain.Unwrap())
}

func TestMultipleErrors(t *testing.T) {
	var errs MultipleErrors
	assert.True(t, errs.IsEmpty())
	assert.NoError(t, errs.ErrorOrNil())
	assert.Equal(t, UnknownErrorCode, errs.ErrorCode())

	errs.Add(NotFound("a.B"))
	assert.Equal(t, "type 'a.B' not found", errs.Error())

	errs.Add(Unsupported("a.C", "type is final"))
	require.Error(t, errs.ErrorOrNil())
	assert.Equal(t, NotFoundErrorCode, errs.ErrorCode())
	assert.Contains(t, errs.Error(), "multiple errors (2 total):")
	assert.Contains(t, errs.Error(), "  2. type 'a.C' is not supported: type is final")
}

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "Unsupported", UnsupportedErrorCode.String())
	assert.Equal(t, "MalformedText", MalformedTextErrorCode.String())
	assert.Equal(t, "Unknown", ErrorCode(99).String())
}
