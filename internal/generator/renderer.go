package generator

import (
	"strings"

	"github.com/toyz/implgen/internal/errors"
	"github.com/toyz/implgen/internal/models"
	"github.com/toyz/implgen/internal/templates"
)

// RenderedUnit is the source text of one unit. Body holds the class
// declaration with every child unit already embedded.
type RenderedUnit struct {
	Name     string
	Body     string
	Children []*RenderedUnit
}

// Renderer turns plans into Java source
type Renderer struct {
	utils *templates.TemplateUtils
}

// NewRenderer creates a renderer using the default template helpers
func NewRenderer() *Renderer {
	return &Renderer{utils: templates.DefaultTemplateUtils}
}

// Render renders the unit for plan and all of its nested units
func (r *Renderer) Render(plan *Plan) (*RenderedUnit, error) {
	return r.render(plan, plan.Target)
}

// render renders one unit. Type names are resolved against scope, the
// top-level target whose package the source file declares.
func (r *Renderer) render(plan *Plan, scope models.Type) (*RenderedUnit, error) {
	target := plan.Target

	unit := &RenderedUnit{Name: plan.UnitName}
	data := templates.UnitData{
		Modifiers: classModifiers(target),
		Relation:  "extends",
	}
	if models.IsInterface(target) {
		data.Relation = "implements"
	}

	var err error
	if data.Name, err = r.escape(target, plan.UnitName); err != nil {
		return nil, err
	}
	if data.Target, err = r.escape(target, headerName(target, scope)); err != nil {
		return nil, err
	}

	for _, f := range plan.Fields {
		field, err := r.field(target, scope, f)
		if err != nil {
			return nil, err
		}
		data.Fields = append(data.Fields, field)
	}

	argNames := func(n int) []string { return r.utils.NumberedNames("arg", n) }

	for _, c := range plan.Constructors {
		ctor := templates.ExecutableData{
			Modifiers: c.Modifiers.Normalize(models.MemberConstructor),
			Name:      data.Name,
			Body:      r.utils.SuperCall("arg", len(c.Params)),
		}
		if ctor.Params, err = r.params(target, scope, c.Params, argNames(len(c.Params))); err != nil {
			return nil, err
		}
		if ctor.Throws, err = r.throws(target, scope, c.Exceptions); err != nil {
			return nil, err
		}
		data.Constructors = append(data.Constructors, ctor)
	}

	for _, m := range plan.Methods {
		method := templates.ExecutableData{
			Modifiers: m.Modifiers.Normalize(models.MemberMethod),
			Body:      r.utils.ReturnStatement(templates.DefaultValue(m.Return)),
		}
		if method.ReturnType, err = r.escape(target, templates.TypeName(m.Return, scope)); err != nil {
			return nil, err
		}
		if method.Name, err = r.escape(target, m.Name); err != nil {
			return nil, err
		}
		if method.Params, err = r.params(target, scope, m.Params, argNames(len(m.Params))); err != nil {
			return nil, err
		}
		if method.Throws, err = r.throws(target, scope, m.Exceptions); err != nil {
			return nil, err
		}
		data.Methods = append(data.Methods, method)
	}

	for _, nested := range plan.Nested {
		child, err := r.render(nested, scope)
		if err != nil {
			return nil, err
		}
		unit.Children = append(unit.Children, child)
		data.Nested = append(data.Nested, child.Body)
	}

	body, err := templates.RenderClass(data)
	if err != nil {
		return nil, errors.WrapGenerationError(errors.UnknownErrorCode, "failed to render unit", err).
			WithTypeName(target.CanonicalName()).
			WithStage("render")
	}
	unit.Body = body
	return unit, nil
}

// RenderSource renders plan as a complete compilation unit
func (r *Renderer) RenderSource(plan *Plan) (string, *RenderedUnit, error) {
	unit, err := r.Render(plan)
	if err != nil {
		return "", nil, err
	}

	pkg, err := r.escape(plan.Target, plan.Target.PackageName())
	if err != nil {
		return "", nil, err
	}
	source, err := templates.RenderCompilationUnit(templates.CompilationUnitData{
		Package: pkg,
		Body:    unit.Body,
	})
	if err != nil {
		return "", nil, errors.WrapGenerationError(errors.UnknownErrorCode, "failed to render compilation unit", err).
			WithTypeName(plan.Target.CanonicalName()).
			WithStage("render")
	}
	return source, unit, nil
}

func (r *Renderer) field(target, scope models.Type, f FieldPlan) (templates.FieldData, error) {
	typeName, err := r.escape(target, templates.TypeName(f.Field.Type, scope))
	if err != nil {
		return templates.FieldData{}, err
	}
	field := templates.FieldData{
		Modifiers: f.Field.Modifiers.Normalize(models.MemberField),
		Type:      typeName,
		Name:      f.Name,
	}
	if f.NeedsInit {
		field.Init = templates.DefaultValue(f.Field.Type)
	}
	return field, nil
}

func (r *Renderer) params(target, scope models.Type, types []models.Type, names []string) ([]templates.ParamData, error) {
	params := make([]templates.ParamData, len(types))
	for i, t := range types {
		typeName, err := r.escape(target, templates.TypeName(t, scope))
		if err != nil {
			return nil, err
		}
		params[i] = templates.ParamData{Type: typeName, Name: names[i]}
	}
	return params, nil
}

func (r *Renderer) throws(target, scope models.Type, types []models.Type) ([]string, error) {
	var names []string
	for _, t := range types {
		name, err := r.escape(target, templates.QualifiedName(t, scope))
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// escape escapes s and attributes a failure to target
func (r *Renderer) escape(target models.Type, s string) (string, error) {
	escaped, err := templates.Escape(s)
	if err != nil {
		if genErr, ok := err.(*errors.GenerationError); ok {
			return "", genErr.WithTypeName(target.CanonicalName())
		}
		return "", err
	}
	return escaped, nil
}

// classModifiers normalizes the target's modifiers for the unit header
func classModifiers(target models.Type) string {
	if models.IsInterface(target) {
		return target.Modifiers().Normalize(models.MemberInterface)
	}
	return target.Modifiers().Normalize(models.MemberClass)
}

// headerName names target in the header of a unit nested in scope. A member
// inherited from a supertype in another package is not visible by its
// relative name there, so it is written out in full.
func headerName(target, scope models.Type) string {
	if target.PackageName() != scope.PackageName() {
		return target.CanonicalName()
	}
	return relativeName(target)
}

// relativeName names target as seen from its own package: the simple name
// for top-level types, Outer.Inner for member types.
func relativeName(target models.Type) string {
	pkg := target.PackageName()
	if pkg == "" {
		return target.CanonicalName()
	}
	return strings.TrimPrefix(target.CanonicalName(), pkg+".")
}
