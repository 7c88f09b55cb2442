package templates

import (
	"bytes"
	"fmt"
	"text/template"
)

// This package renders Java source text. Every string handed to a template
// must already be escaped; templates only arrange text.

// UnitData is the template input for one class body
type UnitData struct {
	Modifiers    string // normalized, with trailing space when non-empty
	Name         string
	Relation     string // "extends" or "implements"
	Target       string
	Fields       []FieldData
	Constructors []ExecutableData
	Methods      []ExecutableData
	Nested       []string // rendered nested class bodies
}

// FieldData is one re-declared field
type FieldData struct {
	Modifiers string
	Type      string
	Name      string
	Init      string // default value, empty when the field is not initialized
}

// ParamData is one formal parameter
type ParamData struct {
	Type string
	Name string
}

// ExecutableData is a constructor (ReturnType empty) or a method
type ExecutableData struct {
	Modifiers  string
	ReturnType string
	Name       string
	Params     []ParamData
	Throws     []string
	Body       string
}

// CompilationUnitData wraps a top-level class body with its package clause
type CompilationUnitData struct {
	Package string
	Body    string
}

// ManifestAttribute is a main-section manifest attribute
type ManifestAttribute struct {
	Name  string
	Value string
}

// ManifestData is the template input for an archive manifest
type ManifestData struct {
	Version    string
	Attributes []ManifestAttribute
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"params": DefaultTemplateUtils.ParamList,
		"throws": DefaultTemplateUtils.ThrowsClause,
		"indent": DefaultTemplateUtils.Indent,
	}
}

// RenderClass renders a class body
func RenderClass(data UnitData) (string, error) {
	return DefaultTemplateRegistry.Execute("class", data)
}

// RenderCompilationUnit renders a complete source file
func RenderCompilationUnit(data CompilationUnitData) (string, error) {
	return DefaultTemplateRegistry.Execute("compilation-unit", data)
}

// RenderManifest renders a manifest main section
func RenderManifest(data ManifestData) (string, error) {
	return DefaultTemplateRegistry.Execute("manifest", data)
}

// Execute runs the named template with every registered template available
// for {{template}} calls
func (tr *TemplateRegistry) Execute(name string, data interface{}) (string, error) {
	text, ok := tr.Get(name)
	if !ok {
		return "", fmt.Errorf("template not found: %s", name)
	}

	tmpl, err := template.New(name).Funcs(templateFuncs()).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	for other, otherText := range tr.templates {
		if other == name {
			continue
		}
		if _, err := tmpl.New(other).Parse(otherText); err != nil {
			return "", fmt.Errorf("failed to parse template %s: %w", other, err)
		}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
