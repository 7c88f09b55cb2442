package generator

import (
	"strconv"
	"strings"

	"github.com/toyz/implgen/internal/models"
)

// MethodKey is the exact identity of a method slot: name, arity and the
// ordered canonical parameter types.
type MethodKey struct {
	Name   string
	Arity  int
	Params string
}

// KeyOf returns the key for m
func KeyOf(m models.Method) MethodKey {
	names := make([]string, len(m.Params))
	for i, p := range m.Params {
		names[i] = p.CanonicalName()
	}
	return MethodKey{
		Name:   m.Name,
		Arity:  len(m.Params),
		Params: strings.Join(names, ","),
	}
}

// String renders the key as name(arity:params)
func (k MethodKey) String() string {
	return k.Name + "(" + strconv.Itoa(k.Arity) + ":" + k.Params + ")"
}

// ResolveMethods returns the overridable methods of target that a generated
// unit has to implement. Declared methods come first, then the public methods
// visible on the target. Methods with equal keys collapse to the first one
// seen, then methods whose parameters are pairwise assignable in either
// direction collapse the same way. Final and native methods are dropped last.
//
// The assignability merge approximates override resolution: it can merge
// unrelated overloads and it ignores bridge methods.
func ResolveMethods(target models.Type) []models.Method {
	discovered := append(append([]models.Method(nil), target.DeclaredMethods()...), target.Methods()...)

	seen := make(map[MethodKey]bool, len(discovered))
	var unique []models.Method
	for _, m := range discovered {
		key := KeyOf(m)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, m)
	}

	var merged []models.Method
	for _, m := range unique {
		if containsEquivalent(merged, m) {
			continue
		}
		merged = append(merged, m)
	}

	resolved := merged[:0]
	for _, m := range merged {
		if m.Modifiers.IsFinal() || m.Modifiers.IsNative() {
			continue
		}
		resolved = append(resolved, m)
	}
	return resolved
}

// Equivalent reports whether a and b occupy the same slot under the
// assignability rule: same name, same arity and each parameter pair
// assignable one way or the other.
func Equivalent(a, b models.Method) bool {
	if a.Name != b.Name || len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		pa, pb := a.Params[i], b.Params[i]
		if !pa.IsAssignableFrom(pb) && !pb.IsAssignableFrom(pa) {
			return false
		}
	}
	return true
}

func containsEquivalent(methods []models.Method, m models.Method) bool {
	for _, existing := range methods {
		if Equivalent(existing, m) {
			return true
		}
	}
	return false
}
