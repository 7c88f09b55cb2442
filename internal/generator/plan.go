package generator

import (
	"strings"

	"github.com/toyz/implgen/internal/errors"
	"github.com/toyz/implgen/internal/models"
	"github.com/toyz/implgen/internal/templates"
)

// UnitSuffix is appended to the simple name of every implemented type
const UnitSuffix = "Impl"

// FieldPlan is one field re-declared by the unit
type FieldPlan struct {
	Field     models.Field
	Name      string // synthesized, unique within the unit
	NeedsInit bool   // finals must be definitely assigned
}

// Plan lists everything a unit for Target will contain. A Plan is built for
// one generation and discarded after rendering.
type Plan struct {
	Target       models.Type
	UnitName     string
	Fields       []FieldPlan
	Constructors []models.Constructor
	Methods      []models.Method
	Nested       []*Plan
}

// UnitName returns the default unit name for t
func UnitName(t models.Type) string {
	return t.SimpleName() + UnitSuffix
}

// BuildPlan collects the fields, constructors, methods and nested types of an
// eligible target. Nested member types are planned recursively, each one at
// most once per tree.
func BuildPlan(target models.Type, unitName string) (*Plan, error) {
	return buildPlan(target, unitName, map[string]bool{target.CanonicalName(): true})
}

// buildPlan skips nested types planned anywhere else in the tree; a member
// class extending its enclosing class inherits itself and all its siblings.
// A unit claims all of its members before descending into any of them.
func buildPlan(target models.Type, unitName string, planned map[string]bool) (*Plan, error) {
	ctors, err := usableConstructors(target)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Target:       target,
		UnitName:     unitName,
		Fields:       planFields(target),
		Constructors: ctors,
		Methods:      ResolveMethods(target),
	}

	var claimed []models.Type
	for _, nested := range target.NestedTypes() {
		mods := nested.Modifiers()
		if mods.IsFinal() || mods.IsPrivate() || planned[nested.CanonicalName()] {
			continue
		}
		planned[nested.CanonicalName()] = true
		claimed = append(claimed, nested)
	}

	for _, nested := range claimed {
		child, err := buildPlan(nested, UnitName(nested), planned)
		if err != nil {
			return nil, err
		}
		plan.Nested = append(plan.Nested, child)
	}

	return plan, nil
}

func planFields(target models.Type) []FieldPlan {
	fields := target.Fields()
	names := templates.DefaultTemplateUtils.NumberedNames("field", len(fields))

	plans := make([]FieldPlan, len(fields))
	for i, f := range fields {
		plans[i] = FieldPlan{
			Field:     f,
			Name:      names[i],
			NeedsInit: f.Modifiers.IsFinal(),
		}
	}
	return plans
}

// usableConstructors returns the constructors the unit forwards. Interfaces
// have none. A class without public constructors falls back to its declared
// non-private ones.
func usableConstructors(target models.Type) ([]models.Constructor, error) {
	if models.IsInterface(target) {
		return nil, nil
	}

	var ctors []models.Constructor
	for _, c := range target.Constructors() {
		if !c.Modifiers.IsPrivate() {
			ctors = append(ctors, c)
		}
	}
	if len(ctors) > 0 {
		return ctors, nil
	}

	for _, c := range target.DeclaredConstructors() {
		if !c.Modifiers.IsPrivate() {
			ctors = append(ctors, c)
		}
	}
	if len(ctors) == 0 {
		return nil, errors.NoUsableConstructor(target.CanonicalName())
	}
	return ctors, nil
}

// BinaryNames returns the binary names of the nested units below p, depth
// first, e.g. FooImpl$BarImpl.
func (p *Plan) BinaryNames() []string {
	var names []string
	var walk func(prefix string, plans []*Plan)
	walk = func(prefix string, plans []*Plan) {
		for _, child := range plans {
			name := prefix + "$" + child.UnitName
			names = append(names, name)
			walk(name, child.Nested)
		}
	}
	walk(p.UnitName, p.Nested)
	return names
}

// PlanOutline is a name-only view of a Plan for debug dumps
type PlanOutline struct {
	Target       string
	Unit         string
	Fields       []string
	Constructors []string
	Methods      []string
	Nested       []PlanOutline
}

// Outline summarizes p without descriptor internals
func (p *Plan) Outline() PlanOutline {
	out := PlanOutline{
		Target: p.Target.CanonicalName(),
		Unit:   p.UnitName,
	}
	for _, f := range p.Fields {
		out.Fields = append(out.Fields, f.Name+" "+f.Field.Type.CanonicalName())
	}
	for _, c := range p.Constructors {
		out.Constructors = append(out.Constructors, p.UnitName+"("+canonicalList(c.Params)+")")
	}
	for _, m := range p.Methods {
		out.Methods = append(out.Methods, m.Name+"("+canonicalList(m.Params)+")")
	}
	for _, child := range p.Nested {
		out.Nested = append(out.Nested, child.Outline())
	}
	return out
}

func canonicalList(types []models.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.CanonicalName()
	}
	return strings.Join(names, ", ")
}
