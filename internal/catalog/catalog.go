package catalog

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/implgen/internal/errors"
	"github.com/toyz/implgen/internal/models"
	"github.com/toyz/implgen/internal/utils/fileops"
)

// maxBoundDepth limits how far a type variable is chased through bounds that
// name other type variables
const maxBoundDepth = 16

var primitives = func() map[string]models.Type {
	out := make(map[string]models.Type)
	for _, p := range models.Primitives() {
		out[p.String()] = primitiveType{primitive: p}
	}
	return out
}()

// Catalog holds linked type declarations and answers lookups by name.
// A Catalog is not safe for concurrent loading; lookups on a fully loaded
// catalog may run concurrently.
type Catalog struct {
	tops         []*declaration
	preludeDecls map[*declaration]bool

	index map[string]*declaration
	types map[string]*TypeInfo
}

// New creates a catalog seeded with the built-in prelude
func New() (*Catalog, error) {
	c := &Catalog{
		preludeDecls: make(map[*declaration]bool),
		index:        make(map[string]*declaration),
		types:        make(map[string]*TypeInfo),
	}

	files, err := fs.Glob(prelude, "prelude/*.jdesc")
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var decls []*declaration
	for _, name := range files {
		src, err := prelude.ReadFile(name)
		if err != nil {
			return nil, err
		}
		parsed, err := parseDescriptor(name, string(src))
		if err != nil {
			return nil, errors.WrapDescriptorError(name, errorLine(err), err)
		}
		decls = append(decls, parsed...)
	}
	for _, d := range decls {
		c.preludeDecls[d] = true
	}
	if err := c.commit(decls, "<prelude>"); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile loads a descriptor file. Files ending in .yaml or .yml are read as
// YAML catalogs, anything else as descriptor source.
func (c *Catalog) LoadFile(path string) error {
	data, err := fileops.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return c.LoadYAML(path, data)
	default:
		return c.LoadDescriptor(path, data)
	}
}

// LoadFiles loads every file and reports all failures together. Files that
// load successfully stay in the catalog even when others fail.
func (c *Catalog) LoadFiles(paths ...string) error {
	var errs errors.MultipleErrors
	for _, path := range paths {
		if err := c.LoadFile(path); err != nil {
			if implErr, ok := err.(errors.ImplError); ok {
				errs.Add(implErr)
			} else {
				errs.Add(errors.WrapDescriptorError(path, 0, err))
			}
		}
	}
	return errs.ErrorOrNil()
}

// LoadDescriptor parses descriptor source and adds its types. name is used in
// error messages only.
func (c *Catalog) LoadDescriptor(name string, src []byte) error {
	decls, err := parseDescriptor(name, string(src))
	if err != nil {
		return errors.WrapDescriptorError(name, errorLine(err), err)
	}
	return c.commit(decls, name)
}

// Lookup returns the type with the given name. Primitive keywords, canonical
// names, binary names using '$' and trailing "[]" array suffixes are accepted.
func (c *Catalog) Lookup(name string) (models.Type, error) {
	base := strings.TrimSpace(name)
	dims := 0
	for strings.HasSuffix(base, "[]") {
		dims++
		base = strings.TrimSpace(strings.TrimSuffix(base, "[]"))
	}

	if p, ok := primitives[base]; ok {
		return arrayOf(p, dims), nil
	}
	if t, ok := c.types[strings.ReplaceAll(base, "$", ".")]; ok {
		return arrayOf(t, dims), nil
	}
	return nil, errors.NotFound(name)
}

// Names returns the canonical names of every declared type, sorted
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.types))
	for name := range c.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// commit merges decls into the catalog and relinks everything. The catalog
// is left untouched when linking fails.
func (c *Catalog) commit(decls []*declaration, source string) error {
	tops := make([]*declaration, 0, len(c.tops)+len(decls))
	replaced := make(map[*declaration]bool)

	for _, d := range decls {
		existing, ok := c.index[d.CanonicalName()]
		if !ok {
			continue
		}
		if existing.Outer != nil || !c.preludeDecls[existing] {
			return declarationError(source, d.Line, "type %s is already declared in %s", d.CanonicalName(), existing.Source)
		}
		replaced[existing] = true
	}
	for _, d := range c.tops {
		if !replaced[d] {
			tops = append(tops, d)
		}
	}
	tops = append(tops, decls...)

	index, types, err := link(tops)
	if err != nil {
		return err
	}

	for d := range replaced {
		delete(c.preludeDecls, d)
	}
	c.tops = tops
	c.index = index
	c.types = types
	return nil
}

// linker resolves the references of every declaration against one index
type linker struct {
	index  map[string]*declaration
	types  map[string]*TypeInfo
	opaque map[string]*opaqueType
}

func link(tops []*declaration) (map[string]*declaration, map[string]*TypeInfo, error) {
	l := &linker{
		index:  make(map[string]*declaration),
		types:  make(map[string]*TypeInfo),
		opaque: make(map[string]*opaqueType),
	}

	var all []*declaration
	for _, top := range tops {
		var dup *declaration
		top.walk(func(d *declaration) {
			name := d.CanonicalName()
			if _, ok := l.index[name]; ok && dup == nil {
				dup = d
			}
			l.index[name] = d
			all = append(all, d)
		})
		if dup != nil {
			return nil, nil, declarationError(dup.Source, dup.Line, "type %s is declared twice", dup.CanonicalName())
		}
	}

	for _, d := range all {
		l.types[d.CanonicalName()] = &TypeInfo{decl: d}
	}
	for _, d := range all {
		if err := l.linkDeclaration(d); err != nil {
			return nil, nil, errors.WrapDescriptorError(d.Source, d.Line, err)
		}
	}
	if err := l.checkCycles(all); err != nil {
		return nil, nil, err
	}
	return l.index, l.types, nil
}

func (l *linker) linkDeclaration(d *declaration) error {
	info := l.types[d.CanonicalName()]
	sc := &scope{linker: l, decl: d}

	info.annotations = sc.annotations(d.Annotations)

	if d.Kind == models.KindClass {
		switch {
		case d.Super != nil:
			super := sc.resolve(*d.Super)
			if super.Kind() != models.KindClass {
				return fmt.Errorf("class %s cannot extend %s %s", d.Name, super.Kind(), super.CanonicalName())
			}
			info.super = super
		case d.CanonicalName() != objectName:
			info.super = sc.resolve(typeRef{Name: objectName})
		}
	}
	for _, ref := range d.Interfaces {
		iface := sc.resolve(ref)
		if iface.Kind() != models.KindInterface {
			if _, opaque := iface.(*opaqueType); !opaque {
				return fmt.Errorf("%s %s cannot implement non-interface %s", d.Kind, d.Name, iface.CanonicalName())
			}
		}
		info.interfaces = append(info.interfaces, iface)
	}

	for _, f := range d.Fields {
		info.fields = append(info.fields, models.Field{
			Name:      f.Name,
			Type:      sc.resolve(f.Type),
			Modifiers: f.Modifiers,
		})
	}
	for _, ctor := range d.Constructors {
		s := sc.with(ctor.TypeParams)
		info.constructors = append(info.constructors, models.Constructor{
			Modifiers:  ctor.Modifiers,
			Params:     s.resolveAll(ctor.Params),
			Exceptions: s.resolveAll(ctor.Throws),
		})
	}
	for _, m := range d.Methods {
		s := sc.with(m.TypeParams)
		info.methods = append(info.methods, models.Method{
			Name:       m.Name,
			Modifiers:  m.Modifiers,
			Return:     s.resolve(m.Return),
			Params:     s.resolveAll(m.Params),
			Exceptions: s.resolveAll(m.Throws),
			Declarer:   d.CanonicalName(),
		})
	}
	for _, n := range d.Nested {
		info.nested = append(info.nested, l.types[n.CanonicalName()])
	}
	return nil
}

func (l *linker) checkCycles(all []*declaration) error {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int)

	var visit func(t *TypeInfo) *TypeInfo
	visit = func(t *TypeInfo) *TypeInfo {
		name := t.CanonicalName()
		switch state[name] {
		case visiting:
			return t
		case done:
			return nil
		}
		state[name] = visiting
		for _, s := range t.Supertypes() {
			if next, ok := s.(*TypeInfo); ok {
				if culprit := visit(next); culprit != nil {
					return culprit
				}
			}
		}
		state[name] = done
		return nil
	}

	for _, d := range all {
		if culprit := visit(l.types[d.CanonicalName()]); culprit != nil {
			return declarationError(culprit.decl.Source, culprit.decl.Line, "cyclic inheritance involving %s", culprit.CanonicalName())
		}
	}
	return nil
}

// scope resolves names as they are written inside one declaration
type scope struct {
	linker     *linker
	decl       *declaration
	typeParams []typeParam
}

func (s *scope) with(params []typeParam) *scope {
	return &scope{linker: s.linker, decl: s.decl, typeParams: params}
}

func (s *scope) resolveAll(refs []typeRef) []models.Type {
	out := make([]models.Type, 0, len(refs))
	for _, r := range refs {
		out = append(out, s.resolve(r))
	}
	return out
}

func (s *scope) resolve(ref typeRef) models.Type {
	return arrayOf(s.resolveName(ref.Name, 0), ref.Dims)
}

func (s *scope) resolveName(name string, depth int) models.Type {
	if p, ok := primitives[name]; ok {
		return p
	}

	if !strings.Contains(name, ".") {
		if tp, ok := s.typeVariable(name); ok {
			if len(tp.Bounds) == 0 || depth >= maxBoundDepth {
				return s.resolveName(objectName, depth+1)
			}
			bound := tp.Bounds[0]
			return arrayOf(s.resolveName(bound.Name, depth+1), bound.Dims)
		}
	}

	name = strings.ReplaceAll(name, "$", ".")
	for _, candidate := range s.candidates(name) {
		if t, ok := s.linker.types[candidate]; ok {
			return t
		}
	}
	return s.opaque(name)
}

// typeVariable finds a type parameter in scope: the member's own, then the
// declaring type's, then those of enclosing types.
func (s *scope) typeVariable(name string) (typeParam, bool) {
	for _, tp := range s.typeParams {
		if tp.Name == name {
			return tp, true
		}
	}
	for d := s.decl; d != nil; d = d.Outer {
		for _, tp := range d.TypeParams {
			if tp.Name == name {
				return tp, true
			}
		}
	}
	return typeParam{}, false
}

// candidates lists canonical names name may refer to, in lookup order
func (s *scope) candidates(name string) []string {
	out := []string{name}
	for d := s.decl; d != nil; d = d.Outer {
		out = append(out, d.CanonicalName()+"."+name)
	}
	if s.decl.Package != "" {
		out = append(out, s.decl.Package+"."+name)
	}

	first, rest, qualified := strings.Cut(name, ".")
	if imp, ok := s.singleImport(first); ok {
		if qualified {
			imp += "." + rest
		}
		out = append(out, imp)
	}
	for _, imp := range s.decl.Imports {
		if prefix, ok := strings.CutSuffix(imp, ".*"); ok {
			out = append(out, prefix+"."+name)
		}
	}
	return append(out, "java.lang."+name)
}

// singleImport finds the single-type import whose simple name is simple
func (s *scope) singleImport(simple string) (string, bool) {
	for _, imp := range s.decl.Imports {
		if !strings.HasSuffix(imp, ".*") && lastSegment(imp) == simple {
			return imp, true
		}
	}
	return "", false
}

// opaque returns the placeholder for a name no declaration provides. A
// single-type import naming it wins; otherwise a bare simple name is taken to
// live in the referring declaration's package.
func (s *scope) opaque(name string) models.Type {
	canonical := name
	first, rest, qualified := strings.Cut(name, ".")
	if imp, ok := s.singleImport(first); ok {
		canonical = imp
		if qualified {
			canonical += "." + rest
		}
	} else if !qualified && s.decl.Package != "" {
		canonical = s.decl.Package + "." + name
	}
	if t, ok := s.linker.opaque[canonical]; ok {
		return t
	}
	t := newOpaqueType(canonical)
	s.linker.opaque[canonical] = t
	return t
}

func (s *scope) annotations(decls []annotationDecl) []models.Annotation {
	var out []models.Annotation
	for _, a := range decls {
		out = append(out, models.Annotation{
			Name: s.resolveName(a.Name, 0).CanonicalName(),
			Args: a.Args,
		})
	}
	return out
}

func declarationError(source string, line int, format string, args ...interface{}) *errors.CatalogError {
	err := errors.DescriptorError(source, fmt.Sprintf(format, args...))
	err.Line = line
	return err
}
