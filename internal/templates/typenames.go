package templates

import (
	"strings"

	"github.com/toyz/implgen/internal/models"
)

// markerAnnotations are declared on types but never repeated at use sites
var markerAnnotations = map[string]bool{
	"java.lang.FunctionalInterface": true,
}

// TypeName renders t as it should appear inside code generated for context:
// its non-marker annotations, then the simple name when both live in the same
// package or the canonical name otherwise.
func TypeName(t, context models.Type) string {
	return AnnotationPrefix(t) + QualifiedName(t, context)
}

// QualifiedName renders t without annotations
func QualifiedName(t, context models.Type) string {
	if t.Kind() == models.KindPrimitive {
		return t.SimpleName()
	}
	if samePackage(t, context) {
		return t.SimpleName()
	}
	return t.CanonicalName()
}

// AnnotationPrefix renders the declared annotations of t, each followed by a space
func AnnotationPrefix(t models.Type) string {
	var b strings.Builder
	for _, a := range t.Annotations() {
		if markerAnnotations[a.Name] {
			continue
		}
		b.WriteString("@")
		b.WriteString(a.Name)
		b.WriteString("(")
		b.WriteString(a.Args)
		b.WriteString(") ")
	}
	return b.String()
}

func samePackage(t, context models.Type) bool {
	for t.Kind() == models.KindArray {
		t = t.Component()
	}
	if t.Kind() == models.KindPrimitive {
		// primitive element types have no package and always render bare
		return true
	}
	return t.PackageName() == context.PackageName()
}
