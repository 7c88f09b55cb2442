package generator

import (
	"github.com/toyz/implgen/internal/models"
)

// SourceExtension is the file extension of generated units
const SourceExtension = ".java"

// Generator implements the UnitGenerator interface. It holds no per-call
// state and may be shared between goroutines.
type Generator struct {
	renderer *Renderer
}

// NewGenerator creates a new unit generator instance
func NewGenerator() *Generator {
	return &Generator{
		renderer: NewRenderer(),
	}
}

// Generate produces <SimpleName>Impl for target
func (g *Generator) Generate(target models.Type) (*models.GeneratedUnit, error) {
	if target == nil {
		return g.GenerateNamed(target, "")
	}
	return g.GenerateNamed(target, UnitName(target))
}

// GenerateNamed checks target, plans the unit and renders it under unitName
func (g *Generator) GenerateNamed(target models.Type, unitName string) (*models.GeneratedUnit, error) {
	if err := CheckEligible(target); err != nil {
		return nil, err
	}
	plan, err := BuildPlan(target, unitName)
	if err != nil {
		return nil, err
	}

	source, _, err := g.renderer.RenderSource(plan)
	if err != nil {
		return nil, err
	}

	return &models.GeneratedUnit{
		PackageName: target.PackageName(),
		UnitName:    unitName,
		FileName:    unitName + SourceExtension,
		Content:     source,
		NestedUnits: plan.BinaryNames(),
	}, nil
}

// Plan checks target and returns the plan Generate would render
func (g *Generator) Plan(target models.Type) (*Plan, error) {
	if err := CheckEligible(target); err != nil {
		return nil, err
	}
	return BuildPlan(target, UnitName(target))
}
