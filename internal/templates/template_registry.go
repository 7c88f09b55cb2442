package templates

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerUnitTemplates()
	registry.registerManifestTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// MustGet retrieves a template by name, panics if not found
func (tr *TemplateRegistry) MustGet(name string) string {
	template, exists := tr.templates[name]
	if !exists {
		panic("template not found: " + name)
	}
	return template
}

// Names returns the registered template names
func (tr *TemplateRegistry) Names() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	return names
}

// registerUnitTemplates registers the Java source templates
func (tr *TemplateRegistry) registerUnitTemplates() {
	// Compilation unit: optional package clause followed by the top-level class
	tr.templates["compilation-unit"] = `{{if .Package}}package {{.Package}};

{{end}}{{.Body}}
`

	// Class body. Nested classes arrive pre-rendered and are indented one level.
	tr.templates["class"] = `{{.Modifiers}}class {{.Name}} {{.Relation}} {{.Target}} {
{{range .Fields}}    {{.Modifiers}}{{.Type}} {{.Name}}{{if .Init}} = {{.Init}}{{end}};
{{end}}{{range .Constructors}}
{{template "executable" .}}{{end}}{{range .Methods}}
{{template "executable" .}}{{end}}{{range .Nested}}
{{indent .}}
{{end}}}`

	// Constructor or method with a single-statement body
	tr.templates["executable"] = `    {{.Modifiers}}{{if .ReturnType}}{{.ReturnType}} {{end}}{{.Name}}({{params .Params}}) {{throws .Throws}}{
        {{.Body}}
    }
`
}

// registerManifestTemplates registers the archive manifest template
func (tr *TemplateRegistry) registerManifestTemplates() {
	tr.templates["manifest"] = `Manifest-Version: {{.Version}}
{{range .Attributes}}{{.Name}}: {{.Value}}
{{end}}
`
}

// Global template registry instance
var DefaultTemplateRegistry = NewTemplateRegistry()
