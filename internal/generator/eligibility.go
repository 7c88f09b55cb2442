package generator

import (
	"github.com/toyz/implgen/internal/errors"
	"github.com/toyz/implgen/internal/models"
)

// enumBase is the root of every enumeration; only the compiler may extend it
const enumBase = "java.lang.Enum"

// CheckEligible reports whether target can be subtyped by a generated unit.
// It returns an Unsupported error naming the first rule the target breaks.
func CheckEligible(target models.Type) error {
	if target == nil {
		return errors.Unsupported("<nil>", "no target type")
	}
	name := target.CanonicalName()

	switch target.Origin() {
	case models.OriginLocal:
		return errors.Unsupported(name, "local classes cannot be implemented")
	case models.OriginAnonymous:
		return errors.Unsupported(name, "anonymous classes cannot be implemented")
	case models.OriginMember:
		return errors.Unsupported(name, "member classes cannot be implemented directly").
			WithHints("Generate the enclosing type instead; its nested types are implemented along with it")
	}

	switch target.Kind() {
	case models.KindPrimitive:
		return errors.Unsupported(name, "primitive types cannot be subtyped")
	case models.KindArray:
		return errors.Unsupported(name, "array types cannot be subtyped")
	}

	if target.Modifiers().IsFinal() {
		return errors.Unsupported(name, "final classes cannot be extended")
	}
	if name == enumBase {
		return errors.Unsupported(name, "enumerations can only be declared, not extended")
	}
	if !models.IsInterface(target) && len(target.DeclaredConstructors()) == 0 {
		return errors.Unsupported(name, "class declares no constructors")
	}

	return nil
}
