package catalog

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/toyz/implgen/internal/errors"
	"github.com/toyz/implgen/internal/models"
)

// yamlFile is the root of a YAML catalog. Type references use the same
// spelling as descriptor source, e.g. "java.util.List<String>" or "int[]".
type yamlFile struct {
	Package string     `yaml:"package"`
	Imports stringList `yaml:"imports"`
	Types   []yamlType `yaml:"types"`
}

type yamlType struct {
	Name         string            `yaml:"name"`
	Kind         string            `yaml:"kind"`
	Origin       string            `yaml:"origin"`
	Modifiers    stringList        `yaml:"modifiers"`
	Annotations  []yamlAnnotation  `yaml:"annotations"`
	TypeParams   stringList        `yaml:"typeParams"`
	Extends      stringList        `yaml:"extends"`
	Implements   stringList        `yaml:"implements"`
	Fields       []yamlField       `yaml:"fields"`
	Constructors []yamlConstructor `yaml:"constructors"`
	Methods      []yamlMethod      `yaml:"methods"`
	Nested       []yamlType        `yaml:"nested"`
}

type yamlAnnotation struct {
	Name string `yaml:"name"`
	Args string `yaml:"args"`
}

type yamlField struct {
	Name      string     `yaml:"name"`
	Type      string     `yaml:"type"`
	Modifiers stringList `yaml:"modifiers"`
}

type yamlConstructor struct {
	Modifiers  stringList `yaml:"modifiers"`
	TypeParams stringList `yaml:"typeParams"`
	Params     stringList `yaml:"params"`
	Throws     stringList `yaml:"throws"`
}

type yamlMethod struct {
	Name       string     `yaml:"name"`
	Returns    string     `yaml:"returns"`
	Default    bool       `yaml:"default"`
	Modifiers  stringList `yaml:"modifiers"`
	TypeParams stringList `yaml:"typeParams"`
	Params     stringList `yaml:"params"`
	Throws     stringList `yaml:"throws"`
}

// stringList accepts either a single string or a sequence of strings
type stringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *stringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}
		if str == "" {
			*s = nil
		} else {
			*s = stringList{str}
		}
		return nil
	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}
		*s = arr
		return nil
	default:
		return fmt.Errorf("line %d: expected string or list of strings", node.Line)
	}
}

// LoadYAML decodes a YAML catalog and adds its types. Unknown keys are
// rejected.
func (c *Catalog) LoadYAML(name string, data []byte) error {
	var file yamlFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return errors.WrapDescriptorError(name, 0, err)
	}

	decls := make([]*declaration, 0, len(file.Types))
	for _, yt := range file.Types {
		decl, err := yt.declaration(nil, file.Package, file.Imports, name)
		if err != nil {
			return errors.WrapDescriptorError(name, 0, err)
		}
		decls = append(decls, decl)
	}
	return c.commit(decls, name)
}

func (yt yamlType) declaration(outer *declaration, pkg string, imports []string, source string) (*declaration, error) {
	if yt.Name == "" {
		return nil, fmt.Errorf("type entry has no name")
	}

	var kind models.Kind
	switch yt.Kind {
	case "", "class":
		kind = models.KindClass
	case "interface":
		kind = models.KindInterface
	default:
		return nil, fmt.Errorf("type %s has unknown kind %q", yt.Name, yt.Kind)
	}

	mods, isDefault, err := parseModifiers(yt.Modifiers)
	if err != nil {
		return nil, fmt.Errorf("type %s: %w", yt.Name, err)
	}
	if isDefault {
		return nil, fmt.Errorf("type %s: 'default' is not valid on a type declaration", yt.Name)
	}

	decl := newDeclaration(yt.Name, kind, mods, outer)
	if outer == nil {
		decl.Package = pkg
		decl.Imports = imports
		decl.Source = source
	}

	if yt.Origin != "" {
		origin, ok := models.ParseOrigin(yt.Origin)
		if !ok {
			return nil, fmt.Errorf("type %s has unknown origin %q", yt.Name, yt.Origin)
		}
		decl.Origin = origin
	}

	for _, a := range yt.Annotations {
		decl.Annotations = append(decl.Annotations, annotationDecl{
			Name: strings.TrimPrefix(a.Name, "@"),
			Args: a.Args,
		})
	}
	if decl.TypeParams, err = parseTypeParams(yt.TypeParams); err != nil {
		return nil, fmt.Errorf("type %s: %w", yt.Name, err)
	}

	extends, err := parseTypeRefs(yt.Extends)
	if err != nil {
		return nil, fmt.Errorf("type %s: %w", yt.Name, err)
	}
	implements, err := parseTypeRefs(yt.Implements)
	if err != nil {
		return nil, fmt.Errorf("type %s: %w", yt.Name, err)
	}
	if err := decl.setSupertypes(extends, implements); err != nil {
		return nil, err
	}

	for _, f := range yt.Fields {
		if err := addYAMLField(decl, f); err != nil {
			return nil, fmt.Errorf("type %s: %w", yt.Name, err)
		}
	}
	for _, ctor := range yt.Constructors {
		if err := addYAMLConstructor(decl, ctor); err != nil {
			return nil, fmt.Errorf("type %s: %w", yt.Name, err)
		}
	}
	for _, m := range yt.Methods {
		if err := addYAMLMethod(decl, m); err != nil {
			return nil, fmt.Errorf("type %s: %w", yt.Name, err)
		}
	}

	for _, n := range yt.Nested {
		nested, err := n.declaration(decl, pkg, imports, source)
		if err != nil {
			return nil, err
		}
		decl.Nested = append(decl.Nested, nested)
	}
	return decl, nil
}

func addYAMLField(decl *declaration, f yamlField) error {
	if f.Name == "" {
		return fmt.Errorf("field entry has no name")
	}
	mods, isDefault, err := parseModifiers(f.Modifiers)
	if err != nil || isDefault {
		return fmt.Errorf("field %s has invalid modifiers %v", f.Name, []string(f.Modifiers))
	}
	ref, err := parseTypeRefString(f.Type)
	if err != nil {
		return fmt.Errorf("field %s: %w", f.Name, err)
	}
	decl.addField(fieldDecl{Name: f.Name, Type: ref, Modifiers: mods})
	return nil
}

func addYAMLConstructor(decl *declaration, ctor yamlConstructor) error {
	mods, isDefault, err := parseModifiers(ctor.Modifiers)
	if err != nil || isDefault {
		return fmt.Errorf("constructor has invalid modifiers %v", []string(ctor.Modifiers))
	}
	c := constructorDecl{Modifiers: mods}
	if c.TypeParams, err = parseTypeParams(ctor.TypeParams); err != nil {
		return err
	}
	if c.Params, err = parseTypeRefs(ctor.Params); err != nil {
		return err
	}
	if c.Throws, err = parseTypeRefs(ctor.Throws); err != nil {
		return err
	}
	return decl.addConstructor(c)
}

func addYAMLMethod(decl *declaration, m yamlMethod) error {
	if m.Name == "" {
		return fmt.Errorf("method entry has no name")
	}
	mods, isDefault, err := parseModifiers(m.Modifiers)
	if err != nil {
		return fmt.Errorf("method %s: %w", m.Name, err)
	}

	md := methodDecl{Name: m.Name, Modifiers: mods}
	returns := m.Returns
	if returns == "" {
		returns = "void"
	}
	if md.Return, err = parseTypeRefString(returns); err != nil {
		return fmt.Errorf("method %s: %w", m.Name, err)
	}
	if md.TypeParams, err = parseTypeParams(m.TypeParams); err != nil {
		return fmt.Errorf("method %s: %w", m.Name, err)
	}
	if md.Params, err = parseTypeRefs(m.Params); err != nil {
		return fmt.Errorf("method %s: %w", m.Name, err)
	}
	if md.Throws, err = parseTypeRefs(m.Throws); err != nil {
		return fmt.Errorf("method %s: %w", m.Name, err)
	}
	return decl.addMethod(md, isDefault || m.Default)
}

func parseTypeRefs(values []string) ([]typeRef, error) {
	refs := make([]typeRef, 0, len(values))
	for _, v := range values {
		ref, err := parseTypeRefString(v)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// parseTypeParams reads entries of the form "T" or "T extends A & B"
func parseTypeParams(values []string) ([]typeParam, error) {
	var params []typeParam
	for _, v := range values {
		name, bounds, hasBounds := strings.Cut(strings.TrimSpace(v), " extends ")
		name = strings.TrimSpace(name)
		if name == "" || strings.ContainsAny(name, " <>[].") {
			return nil, fmt.Errorf("invalid type parameter %q", v)
		}
		tp := typeParam{Name: name}
		if hasBounds {
			for _, b := range splitBounds(bounds) {
				ref, err := parseTypeRefString(b)
				if err != nil {
					return nil, err
				}
				tp.Bounds = append(tp.Bounds, ref)
			}
		}
		params = append(params, tp)
	}
	return params, nil
}

// splitBounds splits on '&' outside of type argument brackets
func splitBounds(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case '&':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
