package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModifier_Normalize(t *testing.T) {
	tests := []struct {
		name string
		mods Modifier
		kind MemberKind
		want string
	}{
		{
			name: "abstract class loses abstract",
			mods: ModPublic | ModAbstract,
			kind: MemberClass,
			want: "public ",
		},
		{
			name: "interface marker is dropped",
			mods: ModPublic | ModInterface | ModAbstract,
			kind: MemberInterface,
			want: "public ",
		},
		{
			name: "member interface keeps static",
			mods: ModPublic | ModStatic | ModInterface | ModAbstract,
			kind: MemberClass,
			want: "public static ",
		},
		{
			name: "canonical order",
			mods: ModFinal | ModStatic | ModPrivate,
			kind: MemberField,
			want: "private static final ",
		},
		{
			name: "method drops field-only bits",
			mods: ModProtected | ModSynchronized | ModVolatile | ModTransient,
			kind: MemberMethod,
			want: "protected synchronized ",
		},
		{
			name: "constructor keeps only access",
			mods: ModProtected | ModStatic | ModFinal | ModNative,
			kind: MemberConstructor,
			want: "protected ",
		},
		{
			name: "field drops method-only bits",
			mods: ModPublic | ModVolatile | ModSynchronized | ModNative | ModStrict,
			kind: MemberField,
			want: "public volatile ",
		},
		{
			name: "nothing left",
			mods: ModAbstract,
			kind: MemberMethod,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mods.Normalize(tt.kind))
		})
	}
}

func TestModifier_String(t *testing.T) {
	assert.Equal(t, "", Modifier(0).String())
	assert.Equal(t, "public protected private abstract static final transient volatile synchronized native strictfp interface",
		Modifier(0x0FFF).String())
}

func TestModifier_Predicates(t *testing.T) {
	m := ModPublic | ModStatic | ModFinal
	assert.True(t, m.Has(ModPublic|ModFinal))
	assert.False(t, m.Has(ModPublic|ModAbstract))
	assert.True(t, m.IsPublic())
	assert.True(t, m.IsStatic())
	assert.True(t, m.IsFinal())
	assert.False(t, m.IsPrivate())
	assert.False(t, m.IsProtected())
	assert.False(t, m.IsNative())
	assert.False(t, m.IsAbstract())
}

func TestParseModifier(t *testing.T) {
	for _, keyword := range []string{"public", "protected", "private", "abstract", "static", "final", "transient", "volatile", "synchronized", "native", "strictfp"} {
		bit, ok := ParseModifier(keyword)
		assert.True(t, ok, keyword)
		assert.Equal(t, keyword, bit.String())
	}

	_, ok := ParseModifier("sealed")
	assert.False(t, ok)
}

func TestMemberKind_String(t *testing.T) {
	assert.Equal(t, "class", MemberClass.String())
	assert.Equal(t, "interface", MemberInterface.String())
	assert.Equal(t, "field", MemberField.String())
	assert.Equal(t, "constructor", MemberConstructor.String())
	assert.Equal(t, "method", MemberMethod.String())
	assert.Equal(t, "unknown", MemberKind(42).String())
}

func TestParseOrigin(t *testing.T) {
	tests := []struct {
		in   string
		want Origin
		ok   bool
	}{
		{"", OriginTopLevel, true},
		{"top-level", OriginTopLevel, true},
		{"nested", OriginMember, true},
		{"member", OriginMember, true},
		{"local", OriginLocal, true},
		{"anonymous", OriginAnonymous, true},
		{"lambda", OriginTopLevel, false},
	}

	for _, tt := range tests {
		got, ok := ParseOrigin(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	assert.Equal(t, "anonymous", OriginAnonymous.String())
}

func TestParsePrimitive(t *testing.T) {
	for _, p := range Primitives() {
		got, ok := ParsePrimitive(p.String())
		assert.True(t, ok)
		assert.Equal(t, p, got)
	}

	got, ok := ParsePrimitive("String")
	assert.False(t, ok)
	assert.Equal(t, PrimitiveNone, got)
	assert.Equal(t, "", PrimitiveNone.String())
}

func TestGeneratedUnit_ClassFiles(t *testing.T) {
	unit := &GeneratedUnit{UnitName: "OuterImpl", NestedUnits: []string{"OuterImpl$NodeImpl", "OuterImpl$NodeImpl$ListenerImpl"}}
	assert.Equal(t, []string{"OuterImpl.class", "OuterImpl$NodeImpl.class", "OuterImpl$NodeImpl$ListenerImpl.class"}, unit.ClassFiles())

	assert.Equal(t, []string{"RunnableImpl.class"}, (&GeneratedUnit{UnitName: "RunnableImpl"}).ClassFiles())
}
