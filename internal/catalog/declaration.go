package catalog

import (
	"fmt"
	"strings"

	"github.com/toyz/implgen/internal/models"
)

// typeRef is an unresolved reference to a type as written in a descriptor.
// Generic arguments are dropped on parse; only the erased name survives.
type typeRef struct {
	Name string
	Dims int
}

func (r typeRef) String() string {
	return r.Name + strings.Repeat("[]", r.Dims)
}

type typeParam struct {
	Name   string
	Bounds []typeRef
}

type fieldDecl struct {
	Name      string
	Type      typeRef
	Modifiers models.Modifier
}

type constructorDecl struct {
	Modifiers  models.Modifier
	TypeParams []typeParam
	Params     []typeRef
	Throws     []typeRef
}

type methodDecl struct {
	Name       string
	Modifiers  models.Modifier
	TypeParams []typeParam
	Return     typeRef
	Params     []typeRef
	Throws     []typeRef
}

type annotationDecl struct {
	Name string
	Args string
}

// declaration is the format-independent form of one declared type. Both the
// descriptor grammar and the YAML loader produce it.
type declaration struct {
	Name        string
	Package     string
	Imports     []string
	Outer       *declaration
	Kind        models.Kind
	Modifiers   models.Modifier
	Origin      models.Origin
	Annotations []annotationDecl
	TypeParams  []typeParam
	Super       *typeRef
	Interfaces  []typeRef

	Fields       []fieldDecl
	Constructors []constructorDecl
	Methods      []methodDecl
	Nested       []*declaration

	Source string
	Line   int
}

// newDeclaration applies the implicit modifiers of the declaration kind
func newDeclaration(name string, kind models.Kind, mods models.Modifier, outer *declaration) *declaration {
	d := &declaration{
		Name:      name,
		Kind:      kind,
		Modifiers: mods,
		Outer:     outer,
		Origin:    models.OriginTopLevel,
	}
	if outer != nil {
		d.Origin = models.OriginMember
		d.Package = outer.Package
		d.Imports = outer.Imports
		d.Source = outer.Source
		if outer.Kind == models.KindInterface {
			d.Modifiers |= models.ModPublic | models.ModStatic
		}
	}
	if kind == models.KindInterface {
		d.Modifiers |= models.ModInterface | models.ModAbstract
		if outer != nil {
			d.Modifiers |= models.ModStatic
		}
	}
	return d
}

func (d *declaration) CanonicalName() string {
	if d.Outer != nil {
		return d.Outer.CanonicalName() + "." + d.Name
	}
	if d.Package == "" {
		return d.Name
	}
	return d.Package + "." + d.Name
}

func (d *declaration) isInterface() bool {
	return d.Kind == models.KindInterface
}

func (d *declaration) addField(f fieldDecl) {
	if d.isInterface() {
		f.Modifiers |= models.ModPublic | models.ModStatic | models.ModFinal
	}
	d.Fields = append(d.Fields, f)
}

func (d *declaration) addConstructor(c constructorDecl) error {
	if d.isInterface() {
		return fmt.Errorf("interface %s cannot declare constructors", d.Name)
	}
	d.Constructors = append(d.Constructors, c)
	return nil
}

// addMethod records a method. isDefault marks an interface method with a body.
func (d *declaration) addMethod(m methodDecl, isDefault bool) error {
	if isDefault && !d.isInterface() {
		return fmt.Errorf("default method %s outside an interface", m.Name)
	}
	if d.isInterface() && !m.Modifiers.IsPrivate() {
		m.Modifiers |= models.ModPublic
		if !isDefault && !m.Modifiers.IsStatic() {
			m.Modifiers |= models.ModAbstract
		}
	}
	d.Methods = append(d.Methods, m)
	return nil
}

// setSupertypes distributes extends/implements clauses by kind
func (d *declaration) setSupertypes(extends, implements []typeRef) error {
	if d.isInterface() {
		if len(implements) > 0 {
			return fmt.Errorf("interface %s cannot implement other types", d.Name)
		}
		d.Interfaces = append(d.Interfaces, extends...)
		return nil
	}
	if len(extends) > 1 {
		return fmt.Errorf("class %s extends more than one class", d.Name)
	}
	if len(extends) == 1 {
		super := extends[0]
		d.Super = &super
	}
	d.Interfaces = append(d.Interfaces, implements...)
	return nil
}

// walk visits d and every nested declaration depth first
func (d *declaration) walk(fn func(*declaration)) {
	fn(d)
	for _, n := range d.Nested {
		n.walk(fn)
	}
}

// parseModifiers maps keywords to modifier bits. "default" is reported
// separately since it is not a modifier bit.
func parseModifiers(keywords []string) (mods models.Modifier, isDefault bool, err error) {
	for _, kw := range keywords {
		if kw == "default" {
			isDefault = true
			continue
		}
		bit, ok := models.ParseModifier(kw)
		if !ok || bit == models.ModInterface {
			return 0, false, fmt.Errorf("unknown modifier %q", kw)
		}
		mods |= bit
	}
	return mods, isDefault, nil
}

// parseTypeRefString parses a textual type reference such as
// "java.util.Map<K, V>[]" or "String..." into its erased form.
func parseTypeRefString(s string) (typeRef, error) {
	s = strings.TrimSpace(s)
	ref := typeRef{}

	if strings.HasSuffix(s, "...") {
		ref.Dims++
		s = strings.TrimSpace(strings.TrimSuffix(s, "..."))
	}
	for strings.HasSuffix(s, "[]") {
		ref.Dims++
		s = strings.TrimSpace(strings.TrimSuffix(s, "[]"))
	}

	if i := strings.IndexByte(s, '<'); i >= 0 {
		if !strings.HasSuffix(s, ">") {
			return typeRef{}, fmt.Errorf("unbalanced type arguments in %q", s)
		}
		s = strings.TrimSpace(s[:i])
	}

	if s == "" || strings.ContainsAny(s, " <>[](),") {
		return typeRef{}, fmt.Errorf("invalid type reference %q", s)
	}
	ref.Name = s
	return ref, nil
}
