package errors

import "fmt"

// GenerationError represents a failure while producing an implementation unit
type GenerationError struct {
	*BaseError
	TypeName string // canonical name of the target type
	Stage    string // stage of generation where error occurred
}

// NewGenerationError creates a generation error of the given kind
func NewGenerationError(code ErrorCode, message string) *GenerationError {
	return &GenerationError{
		BaseError: New(code, message),
	}
}

// WrapGenerationError creates a generation error with an underlying cause
func WrapGenerationError(code ErrorCode, message string, cause error) *GenerationError {
	return &GenerationError{
		BaseError: Wrap(code, message, cause),
	}
}

// WithTypeName sets the target type name
func (e *GenerationError) WithTypeName(typeName string) *GenerationError {
	e.TypeName = typeName
	e.WithContext("type", typeName)
	return e
}

// WithStage sets the generation stage
func (e *GenerationError) WithStage(stage string) *GenerationError {
	e.Stage = stage
	return e
}

// WithHints adds suggestions and keeps the concrete type for chaining
func (e *GenerationError) WithHints(suggestions ...string) *GenerationError {
	e.WithSuggestions(suggestions...)
	return e
}

// Unsupported reports a target type that cannot be subtyped
func Unsupported(typeName, reason string) *GenerationError {
	return NewGenerationError(UnsupportedErrorCode, fmt.Sprintf("type '%s' is not supported: %s", typeName, reason)).
		WithTypeName(typeName).
		WithStage("eligibility")
}

// NoUsableConstructor reports a class whose constructors are all private
func NoUsableConstructor(typeName string) *GenerationError {
	return NewGenerationError(ResolutionErrorCode, fmt.Sprintf("cannot extend '%s': every constructor is private", typeName)).
		WithTypeName(typeName).
		WithStage("plan").
		WithHints("Expose a protected or package-private constructor on the target class")
}

// MalformedText reports text that cannot be escaped
func MalformedText(reason string, offset int) *GenerationError {
	err := NewGenerationError(MalformedTextErrorCode, fmt.Sprintf("malformed text at byte %d: %s", offset, reason)).
		WithStage("escape")
	err.WithContext("offset", offset)
	return err
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *GenerationError {
	err := WrapGenerationError(FileSystemErrorCode, fmt.Sprintf("failed to %s '%s'", operation, path), cause)
	err.WithContext("operation", operation).
		WithContext("path", path)
	return err
}

// WrapCompileError wraps a failed compiler invocation
func WrapCompileError(sources []string, cause error) *GenerationError {
	err := WrapGenerationError(CompileErrorCode, "failed to compile generated sources", cause).
		WithStage("compile").
		WithHints(
			"Check that the compiler command is installed and on PATH",
			"Make sure the target type is available on the configured classpath",
		)
	err.WithContext("sources", sources)
	return err
}

// WrapArchiveError wraps a failure while writing the archive
func WrapArchiveError(path string, cause error) *GenerationError {
	err := WrapGenerationError(ArchiveErrorCode, fmt.Sprintf("failed to write archive '%s'", path), cause).
		WithStage("archive")
	err.WithContext("path", path)
	return err
}

// CatalogError represents a failure to load or query type descriptors
type CatalogError struct {
	*BaseError
	Name string // type name or descriptor file involved
	Line int    // descriptor line, when known
}

// NotFound reports a type name the catalog cannot resolve
func NotFound(name string) *CatalogError {
	return &CatalogError{
		BaseError: New(NotFoundErrorCode, fmt.Sprintf("type '%s' not found", name)).
			WithSuggestions(
				"Use the canonical name, e.g. java.lang.Runnable",
				"Pass the descriptor file that declares the type with -catalog",
			),
		Name: name,
	}
}

// WrapDescriptorError wraps a descriptor parse or link failure
func WrapDescriptorError(file string, line int, cause error) *CatalogError {
	message := fmt.Sprintf("invalid descriptor '%s'", file)
	if line > 0 {
		message = fmt.Sprintf("invalid descriptor '%s' at line %d", file, line)
	}
	return &CatalogError{
		BaseError: Wrap(DescriptorErrorCode, message, cause),
		Name:      file,
		Line:      line,
	}
}

// DescriptorError creates a descriptor error without an underlying cause
func DescriptorError(file, message string) *CatalogError {
	return &CatalogError{
		BaseError: New(DescriptorErrorCode, fmt.Sprintf("invalid descriptor '%s': %s", file, message)),
		Name:      file,
	}
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(path, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, path)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("path", path).
		WithContext("operation", operation)
}
