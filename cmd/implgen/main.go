package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/toyz/implgen/internal/catalog"
	"github.com/toyz/implgen/internal/cli"
	"github.com/toyz/implgen/internal/generator"
	"github.com/toyz/implgen/internal/toolchain"
	"github.com/toyz/implgen/internal/utils"
)

const usage = `usage: implgen [options] <type>
       implgen [options] -jar <type> <archive>`

// Exit codes
const (
	exitOK          = 0
	exitFailure     = 1
	exitInvalidType = 2
	exitUsage       = 64
)

// catalogList collects repeated -catalog flags
type catalogList []string

func (c *catalogList) String() string {
	return strings.Join(*c, ",")
}

func (c *catalogList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("implgen", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var catalogs catalogList
	var (
		jarFlag       = flags.Bool("jar", false, "Compile the generated unit and package it into <archive>")
		configFlag    = flags.String("config", "", "Configuration file (defaults to ./"+cli.DefaultConfigFile+" when present)")
		outputFlag    = flags.String("out", "", "Output root for source generation (defaults to the current directory)")
		compilerFlag  = flags.String("compiler", "", "Compiler command used by -jar (default \""+toolchain.DefaultCompileCommand+"\")")
		classpathFlag = flags.String("classpath", "", "Classpath handed to the compiler")
		dumpPlanFlag  = flags.Bool("dump-plan", false, "Print what would be generated and exit")
		verboseFlag   = flags.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag     = flags.Bool("quiet", false, "Only show errors")
	)
	flags.Var(&catalogs, "catalog", "Descriptor file or directory to load (repeatable, 'dir/...' recurses)")

	flags.Usage = func() {
		fmt.Fprintf(stderr, "%s\n\n", usage)
		fmt.Fprintf(stderr, "Generates <SimpleName>Impl, a compilable stub that implements or extends <type>.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  implgen java.lang.Runnable                                   # Writes java/lang/RunnableImpl.java\n")
		fmt.Fprintf(stderr, "  implgen -catalog ./types/... com.example.Task                # Load descriptors recursively\n")
		fmt.Fprintf(stderr, "  implgen -jar -classpath app.jar com.example.Task task.jar    # Compile and package\n")
	}

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		return exitUsage
	}

	positional := flags.Args()
	if (*jarFlag && len(positional) != 2) || (!*jarFlag && len(positional) != 1) {
		fmt.Fprintln(stderr, usage)
		return exitUsage
	}

	set := make(map[string]bool)
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var cfg *cli.Config
	var err error
	if *configFlag != "" {
		cfg, err = cli.LoadConfig(*configFlag)
	} else {
		cfg, err = cli.LoadDefaultConfig(".")
	}
	if err != nil {
		cli.NewDiagnosticReporterTo(*verboseFlag, stdout, stderr).ReportError(err)
		return exitFailure
	}

	// Flags win over the configuration file
	cfg.Catalogs = append(cfg.Catalogs, catalogs...)
	if set["verbose"] {
		cfg.Verbose = *verboseFlag
	}
	if set["quiet"] {
		cfg.Quiet = *quietFlag
	}
	if set["compiler"] {
		cfg.Compiler = *compilerFlag
	}
	if set["classpath"] {
		cfg.Classpath = *classpathFlag
	}
	if set["out"] {
		cfg.OutputDir = *outputFlag
	}

	diagnostics := utils.NewDiagnosticSystem(cfg.Level())
	diagnostics.SetOutput(stdout, stderr)
	reporter := cli.NewDiagnosticReporterTo(cfg.Verbose, stdout, stderr)

	if cfg.Verbose {
		diagnostics.Section("Configuration")
		diagnostics.List("Catalogs: %s", strings.Join(cfg.Catalogs, ", "))
		diagnostics.List("Output root: %s", cfg.OutputDir)
		if *jarFlag {
			compiler := cfg.Compiler
			if compiler == "" {
				compiler = toolchain.DefaultCompileCommand
			}
			diagnostics.List("Compiler: %s", compiler)
			diagnostics.List("Classpath: %s", cfg.Classpath)
		}
	}

	types, err := loadCatalog(cfg, diagnostics)
	if err != nil {
		reporter.ReportError(err)
		return exitFailure
	}

	name := positional[0]
	target, err := types.Lookup(name)
	if err != nil {
		reporter.ReportInvalidType(name, err)
		return exitInvalidType
	}

	if *dumpPlanFlag {
		plan, err := generator.NewGenerator().Plan(target)
		if err != nil {
			reporter.ReportError(err)
			return exitFailure
		}
		dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
		dumper.Fdump(stdout, plan.Outline())
		return exitOK
	}

	gen := cli.NewGenerator(cfg, diagnostics)
	summary := cli.GenerationSummary{Target: target.CanonicalName()}

	if *jarFlag {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result, err := gen.ImplementJar(ctx, target, positional[1])
		if err != nil {
			reporter.ReportError(err)
			return exitFailure
		}
		summary.Unit = result.Unit.UnitName
		summary.NestedUnits = len(result.Unit.NestedUnits)
		summary.Archive = result.Archive
	} else {
		result, err := gen.Implement(target, cfg.OutputDir)
		if err != nil {
			reporter.ReportError(err)
			return exitFailure
		}
		summary.Unit = result.Unit.UnitName
		summary.NestedUnits = len(result.Unit.NestedUnits)
		summary.GeneratedFiles = []string{result.SourcePath}
	}

	if !cfg.Quiet {
		reporter.ReportSuccess(summary)
	}
	return exitOK
}

// loadCatalog builds the type catalog from the prelude plus every configured descriptor
func loadCatalog(cfg *cli.Config, diagnostics *utils.DiagnosticSystem) (*catalog.Catalog, error) {
	diagnostics.StartProgress("Loading catalog")
	types, err := catalog.New()
	if err != nil {
		return nil, err
	}

	files, err := cli.NewCatalogScanner().Scan(cfg.Catalogs)
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		diagnostics.Debug("loading %s", file)
	}
	if err := types.LoadFiles(files...); err != nil {
		return nil, err
	}

	diagnostics.EndProgress("Loading catalog")
	diagnostics.Verbose("%d types available", len(types.Names()))
	return types, nil
}
