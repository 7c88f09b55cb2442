package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/implgen/internal/models"
	"github.com/toyz/implgen/internal/templates"
)

// The descriptor format follows javap output closely: declarations carry no
// bodies, constructors and methods end with ';' and parameter names are
// optional. Generic arguments are accepted and erased.

type fileNode struct {
	Package string        `("package" @Ident ";")?`
	Imports []*importNode `@@*`
	Types   []*memberNode `@@*`
}

type importNode struct {
	Static   bool   `"import" @"static"?`
	Name     string `@Ident`
	Wildcard bool   `@Wildcard? ";"`
}

type memberNode struct {
	Pos         lexer.Position
	Annotations []*annotationNode `@@*`
	Modifiers   []string          `@("public" | "protected" | "private" | "abstract" | "static" | "final" | "transient" | "volatile" | "synchronized" | "native" | "strictfp" | "default")*`
	Type        *typeBodyNode     `( @@`
	TypeParams  []*typeParamNode  `| ("<" @@ ("," @@)* ">")?`
	Result      *typeRefNode      `  @@`
	Name        string            `  @Ident?`
	Params      *paramListNode    `  @@?`
	Throws      []*typeRefNode    `  ("throws" @@ ("," @@)*)?`
	End         bool              `  @";" )`
}

type typeBodyNode struct {
	Keyword    string           `@("class" | "interface")`
	Name       string           `@Ident`
	TypeParams []*typeParamNode `("<" @@ ("," @@)* ">")?`
	Extends    []*typeRefNode   `("extends" @@ ("," @@)*)?`
	Implements []*typeRefNode   `("implements" @@ ("," @@)*)?`
	Members    []*memberNode    `"{" @@* "}"`
}

type annotationNode struct {
	Name string   `"@" @Ident`
	Args []string `("(" @(Ident | String | Char | Number | "=" | "," | "{" | "}")* ")")?`
}

type typeParamNode struct {
	Name   string         `@Ident`
	Bounds []*typeRefNode `("extends" @@ ("&" @@)*)?`
}

type typeRefNode struct {
	Annotations []*annotationNode `@@*`
	Name        string            `@Ident`
	Args        []*typeArgNode    `("<" (@@ ("," @@)*)? ">")?`
	Dims        []*dimNode        `@@*`
	Varargs     bool              `@Ellipsis?`
}

type typeArgNode struct {
	Wildcard bool         `( @"?"`
	Bound    *typeRefNode `  (("extends" | "super") @@)?`
	Type     *typeRefNode `| @@ )`
}

type dimNode struct {
	Open bool `@"[" "]"`
}

type paramListNode struct {
	Open   bool         `@"("`
	Params []*paramNode `(@@ ("," @@)*)? ")"`
}

type paramNode struct {
	Final bool         `@"final"?`
	Type  *typeRefNode `@@`
	Name  string       `@Ident?`
}

var descriptorLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*([^*]|\*+[^*/])*\*+/`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Char", Pattern: `'(\\.|[^'\\])*'`},
	{Name: "Number", Pattern: `[-+]?\d+(\.\d+)?[lLfFdD]?`},
	{Name: "Ellipsis", Pattern: `\.\.\.`},
	{Name: "Wildcard", Pattern: `\.\*`},
	{Name: "Ident", Pattern: `[\p{L}_$][\p{L}\p{N}_$]*(\.[\p{L}_$][\p{L}\p{N}_$]*)*`},
	{Name: "Punct", Pattern: `[;,(){}<>\[\]@=?&]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var descriptorParser = participle.MustBuild[fileNode](
	participle.Lexer(descriptorLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(4),
)

// parseDescriptor parses descriptor source into declarations
func parseDescriptor(filename, src string) ([]*declaration, error) {
	src, err := templates.Unescape(src)
	if err != nil {
		return nil, err
	}

	file, err := descriptorParser.ParseString(filename, src)
	if err != nil {
		return nil, err
	}

	var imports []string
	for _, imp := range file.Imports {
		if imp.Static {
			continue
		}
		name := imp.Name
		if imp.Wildcard {
			name += ".*"
		}
		imports = append(imports, name)
	}

	var decls []*declaration
	for _, node := range file.Types {
		if node.Type == nil {
			return nil, positionError(node.Pos, "only type declarations are allowed at the top level")
		}
		decl, err := convertTypeNode(node, nil, file.Package, imports, filename)
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

func convertTypeNode(node *memberNode, outer *declaration, pkg string, imports []string, filename string) (*declaration, error) {
	body := node.Type
	mods, isDefault, err := parseModifiers(node.Modifiers)
	if err != nil {
		return nil, positionError(node.Pos, err.Error())
	}
	if isDefault {
		return nil, positionError(node.Pos, "'default' is not valid on a type declaration")
	}

	kind := models.KindClass
	if body.Keyword == "interface" {
		kind = models.KindInterface
	}

	decl := newDeclaration(body.Name, kind, mods, outer)
	if outer == nil {
		decl.Package = pkg
		decl.Imports = imports
		decl.Source = filename
	}
	decl.Line = node.Pos.Line
	decl.Annotations = convertAnnotations(node.Annotations)
	decl.TypeParams = convertTypeParams(body.TypeParams)

	if err := decl.setSupertypes(convertRefs(body.Extends), convertRefs(body.Implements)); err != nil {
		return nil, positionError(node.Pos, err.Error())
	}

	for _, member := range body.Members {
		if err := convertMember(decl, member, filename); err != nil {
			return nil, err
		}
	}
	return decl, nil
}

func convertMember(decl *declaration, member *memberNode, filename string) error {
	if member.Type != nil {
		nested, err := convertTypeNode(member, decl, decl.Package, decl.Imports, filename)
		if err != nil {
			return err
		}
		decl.Nested = append(decl.Nested, nested)
		return nil
	}

	mods, isDefault, err := parseModifiers(member.Modifiers)
	if err != nil {
		return positionError(member.Pos, err.Error())
	}
	result := convertRef(member.Result)

	switch {
	case member.Params == nil:
		if member.Name == "" {
			return positionError(member.Pos, fmt.Sprintf("field of type %s has no name", result))
		}
		if isDefault || len(member.TypeParams) > 0 || len(member.Throws) > 0 {
			return positionError(member.Pos, fmt.Sprintf("malformed field %s", member.Name))
		}
		decl.addField(fieldDecl{Name: member.Name, Type: result, Modifiers: mods})

	case member.Name == "":
		if lastSegment(result.Name) != decl.Name || result.Dims > 0 {
			return positionError(member.Pos, fmt.Sprintf("method %s is missing a return type", result.Name))
		}
		err = decl.addConstructor(constructorDecl{
			Modifiers:  mods,
			TypeParams: convertTypeParams(member.TypeParams),
			Params:     convertParams(member.Params),
			Throws:     convertRefs(member.Throws),
		})

	default:
		err = decl.addMethod(methodDecl{
			Name:       member.Name,
			Modifiers:  mods,
			TypeParams: convertTypeParams(member.TypeParams),
			Return:     result,
			Params:     convertParams(member.Params),
			Throws:     convertRefs(member.Throws),
		}, isDefault)
	}

	if err != nil {
		return positionError(member.Pos, err.Error())
	}
	return nil
}

func convertRef(node *typeRefNode) typeRef {
	ref := typeRef{Name: node.Name, Dims: len(node.Dims)}
	if node.Varargs {
		ref.Dims++
	}
	return ref
}

func convertRefs(nodes []*typeRefNode) []typeRef {
	refs := make([]typeRef, 0, len(nodes))
	for _, n := range nodes {
		refs = append(refs, convertRef(n))
	}
	return refs
}

func convertParams(list *paramListNode) []typeRef {
	refs := make([]typeRef, 0, len(list.Params))
	for _, p := range list.Params {
		refs = append(refs, convertRef(p.Type))
	}
	return refs
}

func convertTypeParams(nodes []*typeParamNode) []typeParam {
	var params []typeParam
	for _, n := range nodes {
		params = append(params, typeParam{Name: n.Name, Bounds: convertRefs(n.Bounds)})
	}
	return params
}

func convertAnnotations(nodes []*annotationNode) []annotationDecl {
	var annotations []annotationDecl
	for _, n := range nodes {
		annotations = append(annotations, annotationDecl{Name: n.Name, Args: joinAnnotationArgs(n.Args)})
	}
	return annotations
}

// joinAnnotationArgs rebuilds element values from their tokens
func joinAnnotationArgs(tokens []string) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok)
		if tok == "," {
			b.WriteString(" ")
		}
	}
	return b.String()
}

func lastSegment(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// descriptorPosition is a parse failure tied to a line of the descriptor
type descriptorPosition struct {
	pos     lexer.Position
	message string
}

func (e *descriptorPosition) Error() string {
	return fmt.Sprintf("%s: %s", e.pos, e.message)
}

func positionError(pos lexer.Position, message string) error {
	return &descriptorPosition{pos: pos, message: message}
}

// errorLine extracts the descriptor line from a parse error, or 0
func errorLine(err error) int {
	var perr participle.Error
	if errors.As(err, &perr) {
		return perr.Position().Line
	}
	var derr *descriptorPosition
	if errors.As(err, &derr) {
		return derr.pos.Line
	}
	return 0
}
