package catalog

import (
	"embed"
	"strings"
	"unicode"

	"github.com/toyz/implgen/internal/models"
)

// prelude holds the java.lang, java.io and java.util declarations every
// catalog starts with
//
//go:embed prelude/*.jdesc
var prelude embed.FS

// primitiveType describes one of the built-in value types
type primitiveType struct {
	primitive models.Primitive
}

var _ models.Type = primitiveType{}

func (p primitiveType) SimpleName() string               { return p.primitive.String() }
func (p primitiveType) CanonicalName() string            { return p.primitive.String() }
func (p primitiveType) PackageName() string              { return "" }
func (p primitiveType) Kind() models.Kind                { return models.KindPrimitive }
func (p primitiveType) Origin() models.Origin            { return models.OriginTopLevel }
func (p primitiveType) Primitive() models.Primitive      { return p.primitive }
func (p primitiveType) Component() models.Type           { return nil }
func (p primitiveType) Annotations() []models.Annotation { return nil }
func (p primitiveType) Fields() []models.Field           { return nil }
func (p primitiveType) Constructors() []models.Constructor {
	return nil
}
func (p primitiveType) DeclaredConstructors() []models.Constructor {
	return nil
}
func (p primitiveType) DeclaredMethods() []models.Method { return nil }
func (p primitiveType) Methods() []models.Method         { return nil }
func (p primitiveType) NestedTypes() []models.Type       { return nil }

func (p primitiveType) Modifiers() models.Modifier {
	return models.ModPublic | models.ModAbstract | models.ModFinal
}

func (p primitiveType) IsAssignableFrom(other models.Type) bool {
	return other != nil && other.Primitive() == p.primitive
}

// arrayType is an array of some component type
type arrayType struct {
	component models.Type
}

var _ models.Type = arrayType{}

func arrayOf(component models.Type, dims int) models.Type {
	t := component
	for i := 0; i < dims; i++ {
		t = arrayType{component: t}
	}
	return t
}

func (a arrayType) SimpleName() string    { return a.component.SimpleName() + "[]" }
func (a arrayType) CanonicalName() string { return a.component.CanonicalName() + "[]" }

// PackageName is the package of the innermost element type
func (a arrayType) PackageName() string                        { return a.component.PackageName() }
func (a arrayType) Kind() models.Kind                          { return models.KindArray }
func (a arrayType) Origin() models.Origin                      { return models.OriginTopLevel }
func (a arrayType) Primitive() models.Primitive                { return models.PrimitiveNone }
func (a arrayType) Component() models.Type                     { return a.component }
func (a arrayType) Annotations() []models.Annotation           { return nil }
func (a arrayType) Fields() []models.Field                     { return nil }
func (a arrayType) Constructors() []models.Constructor         { return nil }
func (a arrayType) DeclaredConstructors() []models.Constructor { return nil }
func (a arrayType) DeclaredMethods() []models.Method           { return nil }
func (a arrayType) Methods() []models.Method                   { return nil }
func (a arrayType) NestedTypes() []models.Type                 { return nil }

func (a arrayType) Modifiers() models.Modifier {
	return models.ModPublic | models.ModAbstract | models.ModFinal
}

func (a arrayType) IsAssignableFrom(other models.Type) bool {
	if other == nil || other.Kind() != models.KindArray {
		return false
	}
	from := other.Component()
	if a.component.Kind() == models.KindPrimitive || from.Kind() == models.KindPrimitive {
		return a.component.CanonicalName() == from.CanonicalName()
	}
	return a.component.IsAssignableFrom(from)
}

// opaqueType stands in for a referenced type that no descriptor declares.
// Only its name is known; it is treated as a direct subclass of Object.
type opaqueType struct {
	canonical string
	pkg       string
	simple    string
}

var _ models.Type = (*opaqueType)(nil)

func newOpaqueType(canonical string) *opaqueType {
	pkg, simple := splitCanonical(canonical)
	return &opaqueType{canonical: canonical, pkg: pkg, simple: simple}
}

func (o *opaqueType) SimpleName() string               { return o.simple }
func (o *opaqueType) CanonicalName() string            { return o.canonical }
func (o *opaqueType) PackageName() string              { return o.pkg }
func (o *opaqueType) Modifiers() models.Modifier       { return models.ModPublic }
func (o *opaqueType) Kind() models.Kind                { return models.KindClass }
func (o *opaqueType) Origin() models.Origin            { return models.OriginTopLevel }
func (o *opaqueType) Primitive() models.Primitive      { return models.PrimitiveNone }
func (o *opaqueType) Component() models.Type           { return nil }
func (o *opaqueType) Annotations() []models.Annotation { return nil }
func (o *opaqueType) Fields() []models.Field           { return nil }
func (o *opaqueType) Constructors() []models.Constructor {
	return nil
}
func (o *opaqueType) DeclaredConstructors() []models.Constructor {
	return nil
}
func (o *opaqueType) DeclaredMethods() []models.Method { return nil }
func (o *opaqueType) Methods() []models.Method         { return nil }
func (o *opaqueType) NestedTypes() []models.Type       { return nil }

func (o *opaqueType) IsAssignableFrom(other models.Type) bool {
	return other != nil && other.CanonicalName() == o.canonical
}

// splitCanonical separates the package from the type path. Package segments
// are the leading ones that start with a lower-case letter.
func splitCanonical(canonical string) (pkg, simple string) {
	segments := strings.Split(canonical, ".")
	i := 0
	for i < len(segments)-1 && startsLower(segments[i]) {
		i++
	}
	return strings.Join(segments[:i], "."), segments[len(segments)-1]
}

func startsLower(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r)
	}
	return false
}
