package models

import "strings"

// Modifier is a bit set of declaration modifiers. Bit values follow the JVM
// access flags so descriptors exported from class files map one to one.
type Modifier uint32

const (
	ModPublic       Modifier = 0x0001
	ModPrivate      Modifier = 0x0002
	ModProtected    Modifier = 0x0004
	ModStatic       Modifier = 0x0008
	ModFinal        Modifier = 0x0010
	ModSynchronized Modifier = 0x0020
	ModVolatile     Modifier = 0x0040
	ModTransient    Modifier = 0x0080
	ModNative       Modifier = 0x0100
	ModInterface    Modifier = 0x0200
	ModAbstract     Modifier = 0x0400
	ModStrict       Modifier = 0x0800
)

// MemberKind selects the modifier vocabulary that is legal for a declaration.
type MemberKind int

const (
	MemberClass MemberKind = iota
	MemberInterface
	MemberField
	MemberConstructor
	MemberMethod
)

// String returns the string representation of the member kind
func (k MemberKind) String() string {
	switch k {
	case MemberClass:
		return "class"
	case MemberInterface:
		return "interface"
	case MemberField:
		return "field"
	case MemberConstructor:
		return "constructor"
	case MemberMethod:
		return "method"
	default:
		return "unknown"
	}
}

const (
	accessModifiers = ModPublic | ModProtected | ModPrivate

	classModifiers       = accessModifiers | ModAbstract | ModStatic | ModFinal | ModStrict
	interfaceModifiers   = accessModifiers | ModAbstract | ModStatic | ModStrict
	constructorModifiers = accessModifiers
	methodModifiers      = accessModifiers | ModAbstract | ModStatic | ModFinal | ModSynchronized | ModNative | ModStrict
	fieldModifiers       = accessModifiers | ModStatic | ModFinal | ModTransient | ModVolatile
)

// modifierNames lists keywords in canonical Java source order.
var modifierNames = []struct {
	bit  Modifier
	name string
}{
	{ModPublic, "public"},
	{ModProtected, "protected"},
	{ModPrivate, "private"},
	{ModAbstract, "abstract"},
	{ModStatic, "static"},
	{ModFinal, "final"},
	{ModTransient, "transient"},
	{ModVolatile, "volatile"},
	{ModSynchronized, "synchronized"},
	{ModNative, "native"},
	{ModStrict, "strictfp"},
	{ModInterface, "interface"},
}

// ParseModifier maps a source keyword to its modifier bit.
func ParseModifier(keyword string) (Modifier, bool) {
	for _, m := range modifierNames {
		if m.name == keyword {
			return m.bit, true
		}
	}
	return 0, false
}

// Has reports whether every bit of other is set.
func (m Modifier) Has(other Modifier) bool {
	return m&other == other
}

func (m Modifier) IsPublic() bool    { return m.Has(ModPublic) }
func (m Modifier) IsPrivate() bool   { return m.Has(ModPrivate) }
func (m Modifier) IsProtected() bool { return m.Has(ModProtected) }
func (m Modifier) IsStatic() bool    { return m.Has(ModStatic) }
func (m Modifier) IsFinal() bool     { return m.Has(ModFinal) }
func (m Modifier) IsNative() bool    { return m.Has(ModNative) }
func (m Modifier) IsAbstract() bool  { return m.Has(ModAbstract) }

// Mask strips abstract and interface markers and keeps only the modifiers
// legal for kind.
func (m Modifier) Mask(kind MemberKind) Modifier {
	m &^= ModAbstract | ModInterface
	switch kind {
	case MemberInterface:
		return m & interfaceModifiers
	case MemberField:
		return m & fieldModifiers
	case MemberConstructor:
		return m & constructorModifiers
	case MemberMethod:
		return m & methodModifiers
	default:
		return m & classModifiers
	}
}

// Normalize renders the masked modifiers for kind followed by a single space,
// or the empty string when nothing remains.
func (m Modifier) Normalize(kind MemberKind) string {
	s := m.Mask(kind).String()
	if s == "" {
		return ""
	}
	return s + " "
}

// String renders the modifier keywords in canonical order separated by spaces.
func (m Modifier) String() string {
	var parts []string
	for _, mod := range modifierNames {
		if m&mod.bit != 0 {
			parts = append(parts, mod.name)
		}
	}
	return strings.Join(parts, " ")
}
