package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/toyz/implgen/internal/errors"
	"github.com/toyz/implgen/internal/generator"
	"github.com/toyz/implgen/internal/models"
	"github.com/toyz/implgen/internal/toolchain"
	"github.com/toyz/implgen/internal/utils"
	"github.com/toyz/implgen/internal/utils/fileops"
)

// scratchPrefix names the temporary root of a packaged generation
const scratchPrefix = "implgen-"

// GenerationContext is the state of one generation call. Every call builds
// its own, so a Generator carries nothing from one call to the next.
type GenerationContext struct {
	Root       string   // output root
	Package    string   // package of the target
	PackageDir string   // Root joined with the package segments
	UnitName   string   // simple name of the generated class
	Created    []string // directories and files created by the call, in creation order
}

// newGenerationContext resolves where the unit for target goes under root
func newGenerationContext(root string, target models.Type) *GenerationContext {
	ctx := &GenerationContext{
		Root:       root,
		Package:    target.PackageName(),
		PackageDir: root,
		UnitName:   generator.UnitName(target),
	}
	if ctx.Package != "" {
		ctx.PackageDir = filepath.Join(append([]string{root}, strings.Split(ctx.Package, ".")...)...)
	}
	return ctx
}

// SourcePath returns the path of the generated source file
func (c *GenerationContext) SourcePath() string {
	return filepath.Join(c.PackageDir, c.UnitName+generator.SourceExtension)
}

// ArchiveDir returns the archive directory of the package, e.g. com/example/
func (c *GenerationContext) ArchiveDir() string {
	if c.Package == "" {
		return ""
	}
	return strings.ReplaceAll(c.Package, ".", "/") + "/"
}

// Result describes a finished generation
type Result struct {
	Context    *GenerationContext
	Unit       *models.GeneratedUnit
	SourcePath string
	Archive    string   // set by ImplementJar
	ClassFiles []string // compiled artifacts packaged by ImplementJar
}

// Generator coordinates one generation end to end: it renders the unit,
// writes it and, for packaged generation, compiles and archives it.
type Generator struct {
	units       generator.UnitGenerator
	compiler    toolchain.Compiler
	archiver    toolchain.Archiver
	diagnostics *utils.DiagnosticSystem
	scratchDir  string
	newID       func() string
}

// NewGenerator creates a CLI generator configured from cfg
func NewGenerator(cfg *Config, diagnostics *utils.DiagnosticSystem) *Generator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	g := NewGeneratorWith(
		generator.NewGenerator(),
		toolchain.NewJavacCompiler(cfg.Compiler, cfg.Classpath),
		toolchain.NewJarArchiver(),
		diagnostics,
	)
	g.scratchDir = cfg.ScratchDir
	return g
}

// NewGeneratorWith creates a CLI generator from explicit collaborators
func NewGeneratorWith(units generator.UnitGenerator, compiler toolchain.Compiler, archiver toolchain.Archiver, diagnostics *utils.DiagnosticSystem) *Generator {
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticSilent)
	}
	return &Generator{
		units:       units,
		compiler:    compiler,
		archiver:    archiver,
		diagnostics: diagnostics,
		newID:       uuid.NewString,
	}
}

// SetScratchDir sets the parent of the temporary tree used by ImplementJar
func (g *Generator) SetScratchDir(dir string) {
	g.scratchDir = dir
}

// Implement generates <SimpleName>Impl for target under root, creating the
// package directories it needs.
func (g *Generator) Implement(target models.Type, root string) (*Result, error) {
	gctx, result, err := g.implement(target, root)
	if err != nil {
		return nil, err
	}
	result.Context = gctx
	return result, nil
}

// implement renders and writes the unit. The context is returned even on
// failure so a caller can remove whatever was created.
func (g *Generator) implement(target models.Type, root string) (gctx *GenerationContext, result *Result, err error) {
	step := "Generating " + target.CanonicalName()
	g.diagnostics.StartProgress(step)
	defer func() { g.endStep(step, err) }()

	unit, err := g.units.Generate(target)
	if err != nil {
		return nil, nil, err
	}

	gctx = newGenerationContext(root, target)
	gctx.UnitName = unit.UnitName

	created, err := fileops.MkdirAll(gctx.PackageDir)
	gctx.Created = append(gctx.Created, created...)
	if err != nil {
		return gctx, nil, err
	}

	sourcePath := gctx.SourcePath()
	if err := g.writeSource(gctx, sourcePath, unit.Content); err != nil {
		return gctx, nil, err
	}
	g.diagnostics.Verbose("Wrote %s", sourcePath)

	return gctx, &Result{Unit: unit, SourcePath: sourcePath}, nil
}

func (g *Generator) writeSource(gctx *GenerationContext, path, content string) (err error) {
	w, err := fileops.CreateText(path)
	if err != nil {
		return err
	}
	gctx.Created = append(gctx.Created, path)
	defer func() {
		if closeErr := w.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if _, err := io.WriteString(w, content); err != nil {
		return errors.WrapFileSystemError("write", path, err)
	}
	return nil
}

// ImplementJar generates the unit in a scratch tree, compiles it and packs
// the class files into archivePath. Every scratch file and directory is
// removed afterwards, also when a step fails. A failed compile leaves no
// archive; a failed archive write removes the partial archive.
func (g *Generator) ImplementJar(ctx context.Context, target models.Type, archivePath string) (*Result, error) {
	cleaner := NewCleaner(g.diagnostics)
	defer func() {
		removed := cleaner.Clean()
		g.diagnostics.Debug("Removed %d scratch paths", len(removed))
	}()

	base := g.scratchDir
	if base == "" {
		base = os.TempDir()
	}
	scratch := filepath.Join(base, scratchPrefix+g.newID())
	created, err := fileops.MkdirAll(scratch)
	cleaner.Track(created...)
	if err != nil {
		return nil, err
	}
	g.diagnostics.Debug("Scratch directory %s", scratch)

	gctx, result, err := g.implement(target, scratch)
	if gctx != nil {
		cleaner.Track(gctx.Created...)
	}
	if err != nil {
		return nil, err
	}
	result.Context = gctx

	classFiles, err := g.compile(ctx, gctx, result.SourcePath, cleaner)
	if err != nil {
		return nil, err
	}

	if err := g.writeArchive(gctx, archivePath, classFiles); err != nil {
		return nil, err
	}

	result.Archive = archivePath
	result.ClassFiles = classFiles
	return result, nil
}

// compile runs the compiler on source and returns the class files it wrote.
// Whatever the compiler left behind is tracked for cleanup, also on failure.
func (g *Generator) compile(ctx context.Context, gctx *GenerationContext, source string, cleaner *Cleaner) (classFiles []string, err error) {
	step := "Compiling " + gctx.UnitName
	g.diagnostics.StartProgress(step)
	defer func() { g.endStep(step, err) }()

	compileErr := g.compiler.Compile(ctx, []string{source})
	classFiles = collectClassFiles(gctx)
	cleaner.Track(classFiles...)
	if compileErr != nil {
		return nil, compileErr
	}
	if len(classFiles) == 0 || filepath.Base(classFiles[0]) != gctx.UnitName+".class" {
		return nil, errors.WrapCompileError([]string{source}, os.ErrNotExist).
			WithHints("The compiler finished without writing " + gctx.UnitName + ".class next to the source")
	}
	return classFiles, nil
}

// writeArchive packs classFiles into archivePath and removes a partial
// archive when writing fails
func (g *Generator) writeArchive(gctx *GenerationContext, archivePath string, classFiles []string) (err error) {
	step := "Writing " + archivePath
	g.diagnostics.StartProgress(step)
	defer func() { g.endStep(step, err) }()

	entries := archiveEntries(gctx, classFiles)
	if err := g.archiver.Write(archivePath, toolchain.DefaultManifest(), entries); err != nil {
		if rmErr := fileops.DeleteIfExists(archivePath); rmErr != nil {
			g.diagnostics.Debug("Could not remove partial archive %s: %v", archivePath, rmErr)
		}
		return err
	}
	return nil
}

// endStep closes a progress step as finished or failed
func (g *Generator) endStep(step string, err error) {
	if err != nil {
		g.diagnostics.FailProgress(step)
		return
	}
	g.diagnostics.EndProgress(step)
}

// collectClassFiles finds <Unit>.class and the <Unit>$*.class files of nested
// units next to the source, top-level class first
func collectClassFiles(gctx *GenerationContext) []string {
	var files []string
	top := filepath.Join(gctx.PackageDir, gctx.UnitName+".class")
	if _, err := os.Stat(top); err == nil {
		files = append(files, top)
	}

	nested, _ := filepath.Glob(filepath.Join(gctx.PackageDir, gctx.UnitName+"$*.class"))
	sort.Strings(nested)
	return append(files, nested...)
}

// archiveEntries lists one directory entry per package segment, then the
// class files under the package directory
func archiveEntries(gctx *GenerationContext, classFiles []string) []toolchain.Entry {
	var entries []toolchain.Entry
	if gctx.Package != "" {
		var prefix string
		for _, segment := range strings.Split(gctx.Package, ".") {
			prefix += segment + "/"
			entries = append(entries, toolchain.Entry{Name: prefix, Dir: true})
		}
	}
	for _, file := range classFiles {
		entries = append(entries, toolchain.Entry{
			Name: gctx.ArchiveDir() + filepath.Base(file),
			Path: file,
		})
	}
	return entries
}
