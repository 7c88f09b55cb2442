package templates_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/implgen/internal/catalog"
	"github.com/toyz/implgen/internal/models"
	"github.com/toyz/implgen/internal/templates"
)

const annotatedSource = `
package com.example.tags;

@Deprecated(since = "1.2")
public interface Tagged {
}

@FunctionalInterface
public interface Marker {
    void mark();
}
`

func typeCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New()
	require.NoError(t, err)
	require.NoError(t, c.LoadDescriptor("tags.jdesc", []byte(annotatedSource)))
	return c
}

func mustLookup(t *testing.T, c *catalog.Catalog, name string) models.Type {
	t.Helper()
	typ, err := c.Lookup(name)
	require.NoError(t, err)
	return typ
}

func TestDefaultValue(t *testing.T) {
	c := typeCatalog(t)

	tests := []struct {
		typeName string
		want     string
	}{
		{"void", ""},
		{"boolean", "false"},
		{"char", `'\u0000'`},
		{"byte", "0"},
		{"short", "0"},
		{"int", "0"},
		{"long", "0L"},
		{"float", "0.0f"},
		{"double", "0.0d"},
		{"java.lang.String", "null"},
		{"int[]", "null"},
		{"java.lang.Runnable", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			assert.Equal(t, tt.want, templates.DefaultValue(mustLookup(t, c, tt.typeName)))
		})
	}

	assert.Equal(t, "null", templates.DefaultValue(nil))
}

func TestTypeName(t *testing.T) {
	c := typeCatalog(t)
	tagged := mustLookup(t, c, "com.example.tags.Tagged")
	runnable := mustLookup(t, c, "java.lang.Runnable")

	tests := []struct {
		name     string
		typeName string
		context  models.Type
		want     string
	}{
		{"primitive", "int", tagged, "int"},
		{"primitive array", "byte[][]", tagged, "byte[][]"},
		{"same package", "java.lang.String", runnable, "String"},
		{"other package", "java.lang.String", tagged, "java.lang.String"},
		{"array of other package", "java.lang.Object[]", tagged, "java.lang.Object[]"},
		{"array of same package", "java.lang.Object[]", runnable, "Object[]"},
		{"annotated", "com.example.tags.Tagged", runnable, `@java.lang.Deprecated(since="1.2") com.example.tags.Tagged`},
		{"marker annotation skipped", "com.example.tags.Marker", tagged, "Marker"},
		{"functional interface in java.lang", "java.lang.Runnable", tagged, "java.lang.Runnable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, templates.TypeName(mustLookup(t, c, tt.typeName), tt.context))
		})
	}
}

func TestRenderClass(t *testing.T) {
	nested, err := templates.RenderClass(templates.UnitData{
		Modifiers: "public static ",
		Name:      "InnerImpl",
		Relation:  "implements",
		Target:    "Outer.Inner",
	})
	require.NoError(t, err)
	assert.Equal(t, "public static class InnerImpl implements Outer.Inner {\n}", nested)

	body, err := templates.RenderClass(templates.UnitData{
		Modifiers: "public ",
		Name:      "OuterImpl",
		Relation:  "extends",
		Target:    "Outer",
		Fields: []templates.FieldData{
			{Modifiers: "public static final ", Type: "int", Name: "field0", Init: "0"},
			{Modifiers: "public ", Type: "String", Name: "field1"},
		},
		Constructors: []templates.ExecutableData{
			{
				Modifiers: "public ",
				Name:      "OuterImpl",
				Params:    []templates.ParamData{{Type: "int", Name: "arg0"}, {Type: "String", Name: "arg1"}},
				Throws:    []string{"java.io.IOException"},
				Body:      templates.DefaultTemplateUtils.SuperCall("arg", 2),
			},
		},
		Methods: []templates.ExecutableData{
			{
				Modifiers:  "public ",
				ReturnType: "long",
				Name:       "size",
				Body:       templates.DefaultTemplateUtils.ReturnStatement("0L"),
			},
		},
		Nested: []string{nested},
	})
	require.NoError(t, err)

	want := strings.Join([]string{
		"public class OuterImpl extends Outer {",
		"    public static final int field0 = 0;",
		"    public String field1;",
		"",
		"    public OuterImpl(int arg0, String arg1) throws java.io.IOException {",
		"        super(arg0, arg1);",
		"    }",
		"",
		"    public long size() {",
		"        return 0L;",
		"    }",
		"",
		"    public static class InnerImpl implements Outer.Inner {",
		"    }",
		"}",
	}, "\n")
	assert.Equal(t, want, body)

	unit, err := templates.RenderCompilationUnit(templates.CompilationUnitData{Package: "com.example", Body: body})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(unit, "package com.example;\n\npublic class OuterImpl"))
	assert.True(t, strings.HasSuffix(unit, "}\n"))

	unnamed, err := templates.RenderCompilationUnit(templates.CompilationUnitData{Body: nested})
	require.NoError(t, err)
	assert.Equal(t, nested+"\n", unnamed)
}

func TestRenderManifest(t *testing.T) {
	manifest, err := templates.RenderManifest(templates.ManifestData{
		Version:    "1.0",
		Attributes: []templates.ManifestAttribute{{Name: "Created-By", Value: "implgen"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Manifest-Version: 1.0\nCreated-By: implgen\n\n", manifest)
}

func TestTemplateUtils(t *testing.T) {
	utils := templates.NewTemplateUtils()

	assert.Equal(t, "", utils.ParamList(nil))
	assert.Equal(t, "int arg0, char[] arg1", utils.ParamList([]templates.ParamData{{"int", "arg0"}, {"char[]", "arg1"}}))
	assert.Equal(t, "", utils.ThrowsClause(nil))
	assert.Equal(t, "throws A, B ", utils.ThrowsClause([]string{"A", "B"}))
	assert.Equal(t, "    a\n\n    b", utils.Indent("a\n\nb\n"))
	assert.Equal(t, []string{"field0", "field1"}, utils.NumberedNames("field", 2))
	assert.Equal(t, "super();", utils.SuperCall("arg", 0))
	assert.Equal(t, "return;", utils.ReturnStatement(""))
}

func TestTemplateRegistry(t *testing.T) {
	registry := templates.NewTemplateRegistry()
	assert.ElementsMatch(t, []string{"compilation-unit", "class", "executable", "manifest"}, registry.Names())

	_, ok := registry.Get("missing")
	assert.False(t, ok)
	assert.Panics(t, func() { registry.MustGet("missing") })

	_, err := registry.Execute("missing", nil)
	assert.Error(t, err)
}
