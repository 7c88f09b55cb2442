package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/implgen/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
	errOut  io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter writing to the process streams
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return NewDiagnosticReporterTo(verbose, os.Stdout, os.Stderr)
}

// NewDiagnosticReporterTo creates a diagnostic reporter writing to out and errOut
func NewDiagnosticReporterTo(verbose bool, out, errOut io.Writer) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     out,
		errOut:  errOut,
	}
}

// ReportWarning provides user-friendly warning reporting
func (r *DiagnosticReporter) ReportWarning(message string, suggestions ...string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.errOut, "! ")
	fmt.Fprintf(r.errOut, "%s\n", message)
	for _, s := range suggestions {
		fmt.Fprintf(r.errOut, "  - %s\n", s)
	}
}

// ReportInvalidType reports a type name the catalog does not know. It is kept
// apart from generation failures so callers can tell the two apart.
func (r *DiagnosticReporter) ReportInvalidType(name string, err error) {
	fmt.Fprintf(r.errOut, "Invalid type name: %s\n", name)
	if r.verbose && err != nil {
		fmt.Fprintf(r.errOut, "  %s\n", err.Error())
	}
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.errOut, "\nERROR: Implementation Failed\n")
	fmt.Fprintf(r.errOut, "============================\n\n")

	var multi *errors.MultipleErrors
	var implErr errors.ImplError
	switch {
	case stderrors.As(err, &multi):
		for i, e := range multi.Errors {
			fmt.Fprintf(r.errOut, "[%d/%d]\n", i+1, len(multi.Errors))
			r.reportImplError(e)
		}
	case stderrors.As(err, &implErr):
		r.reportImplError(implErr)
	default:
		r.reportBasicError(err)
	}

	fmt.Fprintf(r.errOut, "\n")
}

// reportImplError reports an ImplError with full context and suggestions
func (r *DiagnosticReporter) reportImplError(implErr errors.ImplError) {
	r.printErrorHeader(implErr.ErrorCode())

	message := implErr.Error()
	if cause := implErr.Unwrap(); cause != nil {
		message = strings.TrimSuffix(message, ": "+cause.Error())
	}
	fmt.Fprintf(r.errOut, "Message: %s\n\n", message)

	// In verbose mode, show the underlying cause if available
	if r.verbose && implErr.Unwrap() != nil {
		fmt.Fprintf(r.errOut, "Underlying cause: %s\n\n", implErr.Unwrap().Error())
	}

	var catErr *errors.CatalogError
	if stderrors.As(implErr, &catErr) && catErr.Name != "" {
		if catErr.Line > 0 {
			fmt.Fprintf(r.errOut, "Location: %s:%d\n\n", catErr.Name, catErr.Line)
		}
	}

	if context := implErr.Context(); len(context) > 0 {
		r.printContext(context)
	}

	if suggestions := implErr.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	r.printAdditionalHelp(implErr.ErrorCode())

	if r.verbose {
		r.printVerboseDebuggingInfo(implErr)
	}
}

// reportBasicError reports a basic error without rich context
func (r *DiagnosticReporter) reportBasicError(err error) {
	fmt.Fprintf(r.errOut, "Message: %v\n\n", err)
}

// printErrorHeader prints a formatted error header based on error kind
func (r *DiagnosticReporter) printErrorHeader(code errors.ErrorCode) {
	var errorTypeStr string

	switch code {
	case errors.UnsupportedErrorCode:
		errorTypeStr = "Unsupported Target Type"
	case errors.ResolutionErrorCode:
		errorTypeStr = "Resolution Error"
	case errors.FileSystemErrorCode:
		errorTypeStr = "File System Error"
	case errors.CompileErrorCode:
		errorTypeStr = "Compilation Error"
	case errors.ArchiveErrorCode:
		errorTypeStr = "Archive Error"
	case errors.MalformedTextErrorCode:
		errorTypeStr = "Malformed Text"
	case errors.NotFoundErrorCode:
		errorTypeStr = "Unknown Type"
	case errors.DescriptorErrorCode:
		errorTypeStr = "Descriptor Error"
	case errors.ConfigurationErrorCode:
		errorTypeStr = "Configuration Error"
	default:
		errorTypeStr = "Unknown Error"
	}

	fmt.Fprintf(r.errOut, "Type: %s\n", errorTypeStr)
	fmt.Fprintf(r.errOut, "%s\n\n", strings.Repeat("-", len(errorTypeStr)+6))
}

// printContext prints context information in a readable format
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.errOut, "Context:\n")

	// Print important context items first
	importantKeys := []string{"type", "path", "operation"}
	printed := make(map[string]bool)

	for _, key := range importantKeys {
		if value, exists := context[key]; exists {
			fmt.Fprintf(r.errOut, "   %s: %v\n", r.formatContextKey(key), value)
			printed[key] = true
		}
	}

	var rest []string
	for key := range context {
		if !printed[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		value := fmt.Sprintf("%v", context[key])
		if strings.Contains(value, "\n") {
			value = "\n      " + strings.ReplaceAll(value, "\n", "\n      ")
		}
		fmt.Fprintf(r.errOut, "   %s: %s\n", r.formatContextKey(key), value)
	}

	fmt.Fprintf(r.errOut, "\n")
}

// formatContextKey formats context keys to be more readable
func (r *DiagnosticReporter) formatContextKey(key string) string {
	switch key {
	case "type":
		return "Target"
	default:
		// Convert snake_case to Title Case
		parts := strings.Split(key, "_")
		for i, part := range parts {
			if len(part) > 0 {
				parts[i] = strings.ToUpper(part[:1]) + part[1:]
			}
		}
		return strings.Join(parts, " ")
	}
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.errOut, "Suggestions:\n")

	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.errOut, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.errOut, "      %s\n", line)
			}
		}
	}

	fmt.Fprintf(r.errOut, "\n")
}

// printAdditionalHelp prints additional help based on error kind
func (r *DiagnosticReporter) printAdditionalHelp(code errors.ErrorCode) {
	switch code {
	case errors.UnsupportedErrorCode:
		fmt.Fprintf(r.errOut, "Implementable Types:\n")
		fmt.Fprintf(r.errOut, "  - Top-level interfaces and non-final classes\n")
		fmt.Fprintf(r.errOut, "  - Classes must declare at least one non-private constructor\n")
		fmt.Fprintf(r.errOut, "  - Enumerations, arrays and primitives cannot be implemented\n\n")

	case errors.DescriptorErrorCode:
		fmt.Fprintf(r.errOut, "Descriptor Syntax Help:\n")
		fmt.Fprintf(r.errOut, "  - Members end with ';' and carry no bodies, as in javap output\n")
		fmt.Fprintf(r.errOut, "  - Constructors use the simple name of their class\n")
		fmt.Fprintf(r.errOut, "  - YAML catalogs accept only the documented keys\n\n")

	case errors.CompileErrorCode:
		fmt.Fprintf(r.errOut, "Compiler Setup:\n")
		fmt.Fprintf(r.errOut, "  - Set the compiler command with -compiler or in implgen.toml\n")
		fmt.Fprintf(r.errOut, "  - Put the target type's classes on -classpath\n\n")
	}

	fmt.Fprintf(r.errOut, "For more help:\n")
	fmt.Fprintf(r.errOut, "  - Run with -verbose for more detailed output\n")
	fmt.Fprintf(r.errOut, "  - Use -dump-plan to inspect what would be generated\n")
}

// printVerboseDebuggingInfo prints additional debugging information in verbose mode
func (r *DiagnosticReporter) printVerboseDebuggingInfo(implErr errors.ImplError) {
	fmt.Fprintf(r.errOut, "\nVerbose Debug Information:\n")
	fmt.Fprintf(r.errOut, "  Error Kind: %s (%d)\n", implErr.ErrorCode(), int(implErr.ErrorCode()))

	if genErr, ok := implErr.(*errors.GenerationError); ok && genErr.Stage != "" {
		fmt.Fprintf(r.errOut, "  Stage: %s\n", genErr.Stage)
	}

	if cause := implErr.Unwrap(); cause != nil {
		fmt.Fprintf(r.errOut, "  Error Chain:\n")
		level := 1
		for err := cause; err != nil; err = stderrors.Unwrap(err) {
			fmt.Fprintf(r.errOut, "    %d. %s\n", level, err.Error())
			level++
		}
	}
}

// Debug prints debug information when verbose mode is enabled
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(r.errOut, "[DEBUG] "+format+"\n", args...)
	}
}

// ReportSuccess reports successful generation with summary information
func (r *DiagnosticReporter) ReportSuccess(summary GenerationSummary) {
	green := color.New(color.FgGreen)
	green.Fprintf(r.out, "Implemented %s as %s\n", summary.Target, summary.Unit)

	if summary.NestedUnits > 0 {
		fmt.Fprintf(r.out, "Nested units: %d\n", summary.NestedUnits)
	}
	if summary.Archive != "" {
		fmt.Fprintf(r.out, "Archive: %s\n", summary.Archive)
	}

	if len(summary.GeneratedFiles) > 0 {
		fmt.Fprintf(r.out, "Generated files:\n")
		for _, file := range summary.GeneratedFiles {
			fmt.Fprintf(r.out, "  - %s\n", file)
		}
	}
}

// GenerationSummary contains information about one generation
type GenerationSummary struct {
	Target         string
	Unit           string
	NestedUnits    int
	Archive        string
	GeneratedFiles []string
}
