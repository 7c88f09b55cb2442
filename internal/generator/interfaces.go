package generator

import "github.com/toyz/implgen/internal/models"

// UnitGenerator defines the interface for producing an implementation unit from a target type
type UnitGenerator interface {
	Generate(target models.Type) (*models.GeneratedUnit, error)
	GenerateNamed(target models.Type, unitName string) (*models.GeneratedUnit, error)
	Plan(target models.Type) (*Plan, error)
}
