package templates

import "github.com/toyz/implgen/internal/models"

// DefaultValue returns the literal for the zero value of t. Void yields the
// empty string; every reference type yields null.
func DefaultValue(t models.Type) string {
	if t == nil {
		return "null"
	}

	switch t.Primitive() {
	case models.PrimitiveVoid:
		return ""
	case models.PrimitiveBoolean:
		return "false"
	case models.PrimitiveChar:
		return `'\u0000'`
	case models.PrimitiveLong:
		return "0L"
	case models.PrimitiveByte, models.PrimitiveShort, models.PrimitiveInt:
		return "0"
	case models.PrimitiveFloat:
		return "0.0f"
	case models.PrimitiveDouble:
		return "0.0d"
	default:
		return "null"
	}
}
