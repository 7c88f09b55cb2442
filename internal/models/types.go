package models

// Kind represents the broad category of a type descriptor
type Kind int

const (
	KindClass Kind = iota
	KindInterface
	KindPrimitive
	KindArray
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindPrimitive:
		return "primitive"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Origin records where a type was declared relative to other types
type Origin int

const (
	OriginTopLevel Origin = iota
	OriginMember
	OriginLocal
	OriginAnonymous
)

// String returns the string representation of the origin
func (o Origin) String() string {
	switch o {
	case OriginTopLevel:
		return "top-level"
	case OriginMember:
		return "member"
	case OriginLocal:
		return "local"
	case OriginAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// ParseOrigin converts a textual origin into an Origin
func ParseOrigin(s string) (Origin, bool) {
	switch s {
	case "", "top-level", "toplevel":
		return OriginTopLevel, true
	case "member", "nested":
		return OriginMember, true
	case "local":
		return OriginLocal, true
	case "anonymous":
		return OriginAnonymous, true
	}
	return OriginTopLevel, false
}

// Primitive identifies the built-in value types. PrimitiveNone marks reference types.
type Primitive int

const (
	PrimitiveNone Primitive = iota
	PrimitiveBoolean
	PrimitiveChar
	PrimitiveByte
	PrimitiveShort
	PrimitiveInt
	PrimitiveLong
	PrimitiveFloat
	PrimitiveDouble
	PrimitiveVoid
)

var primitiveNames = map[Primitive]string{
	PrimitiveBoolean: "boolean",
	PrimitiveChar:    "char",
	PrimitiveByte:    "byte",
	PrimitiveShort:   "short",
	PrimitiveInt:     "int",
	PrimitiveLong:    "long",
	PrimitiveFloat:   "float",
	PrimitiveDouble:  "double",
	PrimitiveVoid:    "void",
}

// String returns the keyword of the primitive
func (p Primitive) String() string {
	return primitiveNames[p]
}

// ParsePrimitive maps a keyword to its primitive
func ParsePrimitive(name string) (Primitive, bool) {
	for p, n := range primitiveNames {
		if n == name {
			return p, true
		}
	}
	return PrimitiveNone, false
}

// Primitives returns every primitive in declaration order
func Primitives() []Primitive {
	return []Primitive{
		PrimitiveBoolean, PrimitiveChar, PrimitiveByte, PrimitiveShort,
		PrimitiveInt, PrimitiveLong, PrimitiveFloat, PrimitiveDouble, PrimitiveVoid,
	}
}

// Annotation is a declared annotation on a type
type Annotation struct {
	Name string // canonical name of the annotation type
	Args string // raw element values, without the surrounding parentheses
}

// Field describes an accessible field
type Field struct {
	Name      string
	Type      Type
	Modifiers Modifier
}

// Constructor describes a constructor of a class
type Constructor struct {
	Modifiers  Modifier
	Params     []Type
	Exceptions []Type
}

// Method describes a method reachable on a type
type Method struct {
	Name       string
	Modifiers  Modifier
	Return     Type
	Params     []Type
	Exceptions []Type
	Declarer   string // canonical name of the declaring type
}

// Type is the read-only view of a type that generation works against. Any
// introspection backend can provide it; values must not change while a
// generation is running.
type Type interface {
	SimpleName() string
	CanonicalName() string
	PackageName() string
	Modifiers() Modifier
	Kind() Kind
	Origin() Origin
	Primitive() Primitive
	// Component returns the element type of an array, nil otherwise.
	Component() Type
	Annotations() []Annotation

	// Fields returns the public fields, declared and inherited.
	Fields() []Field
	// Constructors returns the public constructors.
	Constructors() []Constructor
	DeclaredConstructors() []Constructor
	DeclaredMethods() []Method
	// Methods returns the public methods, declared, inherited and interface defaults.
	Methods() []Method
	// NestedTypes returns the public member types, declared and inherited.
	NestedTypes() []Type

	IsAssignableFrom(other Type) bool
}

// IsInterface reports whether t is an interface type
func IsInterface(t Type) bool {
	return t.Kind() == KindInterface
}

// IsPrimitive reports whether t is a primitive type, void included
func IsPrimitive(t Type) bool {
	return t.Kind() == KindPrimitive
}

// IsVoid reports whether t is the void pseudo-type
func IsVoid(t Type) bool {
	return t.Primitive() == PrimitiveVoid
}
