package catalog

import (
	"strings"

	"github.com/toyz/implgen/internal/models"
)

const (
	objectName       = "java.lang.Object"
	cloneableName    = "java.lang.Cloneable"
	serializableName = "java.io.Serializable"
)

// supertyper is implemented by descriptors that know their direct supertypes
type supertyper interface {
	Supertypes() []models.Type
}

// TypeInfo is a declared type after linking. Every reference it holds has
// been resolved against the catalog it was loaded into.
type TypeInfo struct {
	decl *declaration

	annotations  []models.Annotation
	super        models.Type
	interfaces   []models.Type
	fields       []models.Field
	constructors []models.Constructor
	methods      []models.Method
	nested       []*TypeInfo
}

var _ models.Type = (*TypeInfo)(nil)

func (t *TypeInfo) SimpleName() string         { return t.decl.Name }
func (t *TypeInfo) CanonicalName() string      { return t.decl.CanonicalName() }
func (t *TypeInfo) PackageName() string        { return t.decl.Package }
func (t *TypeInfo) Modifiers() models.Modifier { return t.decl.Modifiers }
func (t *TypeInfo) Kind() models.Kind          { return t.decl.Kind }
func (t *TypeInfo) Origin() models.Origin      { return t.decl.Origin }
func (t *TypeInfo) Primitive() models.Primitive {
	return models.PrimitiveNone
}
func (t *TypeInfo) Component() models.Type { return nil }

func (t *TypeInfo) Annotations() []models.Annotation {
	return t.annotations
}

// Superclass returns the direct superclass, nil for interfaces and Object
func (t *TypeInfo) Superclass() models.Type {
	return t.super
}

// Interfaces returns the direct superinterfaces
func (t *TypeInfo) Interfaces() []models.Type {
	return t.interfaces
}

// Supertypes returns the superclass followed by the superinterfaces
func (t *TypeInfo) Supertypes() []models.Type {
	var out []models.Type
	if t.super != nil {
		out = append(out, t.super)
	}
	return append(out, t.interfaces...)
}

// Fields follows reflection order: declared, superinterfaces, superclass.
func (t *TypeInfo) Fields() []models.Field {
	var out []models.Field
	collectFields(t, map[string]bool{}, &out)
	return out
}

func collectFields(t models.Type, visited map[string]bool, out *[]models.Field) {
	info, ok := t.(*TypeInfo)
	if !ok || visited[info.CanonicalName()] {
		return
	}
	visited[info.CanonicalName()] = true

	for _, f := range info.fields {
		if f.Modifiers.IsPublic() {
			*out = append(*out, f)
		}
	}
	for _, iface := range info.interfaces {
		collectFields(iface, visited, out)
	}
	if info.super != nil {
		collectFields(info.super, visited, out)
	}
}

func (t *TypeInfo) Constructors() []models.Constructor {
	var out []models.Constructor
	for _, c := range t.constructors {
		if c.Modifiers.IsPublic() {
			out = append(out, c)
		}
	}
	return out
}

func (t *TypeInfo) DeclaredConstructors() []models.Constructor {
	return t.constructors
}

func (t *TypeInfo) DeclaredMethods() []models.Method {
	return t.methods
}

// Methods returns public methods with the first declaration of each exact
// signature winning: own methods, then the superclass chain, then
// superinterfaces. Static interface methods are not inherited.
func (t *TypeInfo) Methods() []models.Method {
	seen := make(map[string]bool)
	var out []models.Method
	add := func(m models.Method) {
		sig := signature(m)
		if seen[sig] {
			return
		}
		seen[sig] = true
		out = append(out, m)
	}

	for _, m := range t.methods {
		if m.Modifiers.IsPublic() {
			add(m)
		}
	}
	if t.super != nil {
		for _, m := range t.super.Methods() {
			add(m)
		}
	}
	for _, iface := range t.interfaces {
		for _, m := range iface.Methods() {
			if !m.Modifiers.IsStatic() {
				add(m)
			}
		}
	}
	return out
}

// NestedTypes returns public member types, including those inherited from
// the superclass chain.
func (t *TypeInfo) NestedTypes() []models.Type {
	var out []models.Type
	seen := make(map[string]bool)
	for _, n := range t.nested {
		if n.Modifiers().IsPublic() {
			seen[n.SimpleName()] = true
			out = append(out, n)
		}
	}
	if t.super != nil {
		for _, n := range t.super.NestedTypes() {
			if !seen[n.SimpleName()] {
				seen[n.SimpleName()] = true
				out = append(out, n)
			}
		}
	}
	return out
}

func (t *TypeInfo) IsAssignableFrom(other models.Type) bool {
	return isAssignable(t, other)
}

// isAssignable reports whether a value of type from can be assigned to to.
func isAssignable(to, from models.Type) bool {
	if to == nil || from == nil {
		return false
	}
	if to.CanonicalName() == from.CanonicalName() {
		return true
	}
	if to.Kind() == models.KindPrimitive || from.Kind() == models.KindPrimitive {
		return false
	}
	switch to.CanonicalName() {
	case objectName:
		return true
	case cloneableName, serializableName:
		if from.Kind() == models.KindArray {
			return true
		}
	}
	return isSubtype(from, to.CanonicalName(), map[string]bool{})
}

func isSubtype(t models.Type, target string, visited map[string]bool) bool {
	st, ok := t.(supertyper)
	if !ok || visited[t.CanonicalName()] {
		return false
	}
	visited[t.CanonicalName()] = true
	for _, s := range st.Supertypes() {
		if s.CanonicalName() == target || isSubtype(s, target, visited) {
			return true
		}
	}
	return false
}

// signature identifies a method by name and erased parameter types
func signature(m models.Method) string {
	var b strings.Builder
	b.WriteString(m.Name)
	b.WriteByte('(')
	for i, p := range m.Params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.CanonicalName())
	}
	b.WriteByte(')')
	return b.String()
}
