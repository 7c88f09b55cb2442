package templates

import (
	"strconv"
	"strings"
)

// indentUnit is the indentation step of generated source
const indentUnit = "    "

// TemplateUtils provides common utilities for template generation
type TemplateUtils struct{}

// NewTemplateUtils creates a new template utilities instance
func NewTemplateUtils() *TemplateUtils {
	return &TemplateUtils{}
}

// ParamList renders "Type name, Type name"
func (tu *TemplateUtils) ParamList(params []ParamData) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, p.Type+" "+p.Name)
	}
	return strings.Join(parts, ", ")
}

// ThrowsClause renders "throws A, B " with a trailing space, or nothing
func (tu *TemplateUtils) ThrowsClause(types []string) string {
	if len(types) == 0 {
		return ""
	}
	return "throws " + strings.Join(types, ", ") + " "
}

// Indent prefixes every non-empty line of s with one indentation step
func (tu *TemplateUtils) Indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = indentUnit + line
		}
	}
	return strings.Join(lines, "\n")
}

// NumberedNames returns prefix0 .. prefix(n-1)
func (tu *TemplateUtils) NumberedNames(prefix string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = prefix + strconv.Itoa(i)
	}
	return names
}

// SuperCall renders the forwarding constructor statement for n parameters
func (tu *TemplateUtils) SuperCall(argPrefix string, n int) string {
	return "super(" + strings.Join(tu.NumberedNames(argPrefix, n), ", ") + ");"
}

// ReturnStatement renders a return of value, or a bare return when value is empty
func (tu *TemplateUtils) ReturnStatement(value string) string {
	if value == "" {
		return "return;"
	}
	return "return " + value + ";"
}

// DefaultTemplateUtils provides a global instance for convenience
var DefaultTemplateUtils = NewTemplateUtils()
