// Package main provides the CLI entrypoint for xmlbind-gen.
//
// xmlbind-gen compiles XML binding descriptions into adapter plans and emits
// Go adapters for them:
//   - a field model is read from a YAML mapping file or discovered from the
//     `xml` and `xmlpoly` struct tags of Go packages
//   - every declared type is compiled into a read and a write plan
//   - plans are rendered as Go source against the xmlbind runtime
//
// Commands:
//
//	xmlbind-gen gen   -mapping rss.yaml -out ./rssxml -package rssxml
//	xmlbind-gen check -pkg ./examples/rss
//	xmlbind-gen dump  -mapping rss.yaml -type Feed
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"xmlbind-generator/internal/analyze"
	"xmlbind-generator/internal/convert"
	"xmlbind-generator/internal/diagnostic"
	"xmlbind-generator/internal/gen"
	"xmlbind-generator/internal/ir"
	"xmlbind-generator/internal/mapping"
	"xmlbind-generator/internal/match"
	"xmlbind-generator/internal/model"
	"xmlbind-generator/internal/plan"
	"xmlbind-generator/primitive"
)

const usage = `xmlbind-gen - compile XML bindings into Go adapters

Usage:
  xmlbind-gen <command> [flags]

Commands:
  gen     generate adapter sources
  check   report model and compile diagnostics
  dump    print compiled plans

Run "xmlbind-gen <command> -h" for the flags of a command.
`

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error

	switch args[0] {
	case "gen":
		err = runGen(ctx, args[1:], stdout, stderr)
	case "check":
		err = runCheck(ctx, args[1:], stdout, stderr)
	case "dump":
		err = runDump(ctx, args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, "error:", err)
		return 2
	default:
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
}

// source selects where the field model comes from.
type source struct {
	mapping    string
	pkgs       string
	dir        string
	primitives string
}

func (s *source) register(fs *flag.FlagSet) {
	fs.StringVar(&s.mapping, "mapping", "", "YAML mapping file describing the bound types")
	fs.StringVar(&s.pkgs, "pkg", "", "comma-separated Go package patterns to discover tagged structs from")
	fs.StringVar(&s.dir, "dir", "", "directory package patterns are resolved from")
	fs.StringVar(&s.primitives, "primitive", "",
		"comma-separated scalar kinds routed through built-in converters (overrides the mapping file)")
}

// loaded is a field model ready to compile.
type loaded struct {
	model       *model.Model
	hierarchy   model.Hierarchy
	opts        plan.Options
	converters  []gen.ConverterRef
	diagnostics diagnostic.Diagnostics
}

func (s *source) load() (*loaded, error) {
	if (s.mapping == "") == (s.pkgs == "") {
		return nil, fmt.Errorf("exactly one of -mapping and -pkg is required: %w", errUsage)
	}

	var (
		out *loaded
		err error
	)

	if s.mapping != "" {
		out, err = s.loadMapping()
	} else {
		out, err = s.loadPackages()
	}

	if err != nil {
		return nil, err
	}

	if s.primitives != "" {
		kinds, err := convert.ParseKinds(strings.Split(s.primitives, ","))
		if err != nil {
			return nil, fmt.Errorf("-primitive: %w", err)
		}

		out.opts.PrimitiveConverters = kinds
	}

	return out, nil
}

func (s *source) loadMapping() (*loaded, error) {
	mf, err := mapping.LoadFile(s.mapping)
	if err != nil {
		return nil, err
	}

	schema, err := mapping.Build(mf)
	if err != nil {
		return nil, err
	}

	out := &loaded{
		model:     schema.Model,
		hierarchy: schema.Hierarchy,
		opts:      plan.Options{PrimitiveConverters: schema.PrimitiveConverters},
	}

	for _, def := range schema.Converters.All() {
		out.converters = append(out.converters, gen.ConverterRef{
			Name:    def.Name,
			Read:    def.Read,
			Write:   def.Write,
			PkgPath: def.Package,
		})
	}

	for _, name := range schema.StandardConverters {
		out.converters = append(out.converters, gen.ConverterRef{Name: name, Standard: true})
	}

	return out, nil
}

func (s *source) loadPackages() (*loaded, error) {
	a := analyze.NewAnalyzer()
	a.Dir = s.dir

	graph, err := a.LoadPackages(strings.Split(s.pkgs, ",")...)
	if err != nil {
		return nil, err
	}

	d := analyze.Discover(graph)

	out := &loaded{
		model:       d.Model,
		hierarchy:   d.Hierarchy,
		diagnostics: d.Diagnostics,
	}

	// Tagged structs can only name converters; the standard ones are registered
	// by the generated code, the rest by the application.
	var names []string
	for i := range d.Model.Fields {
		names = append(names, d.Model.Fields[i].Converter)
	}

	for _, name := range primitive.Standard(names...) {
		out.converters = append(out.converters, gen.ConverterRef{Name: name, Standard: true})
	}

	return out, nil
}

func (l *loaded) compile(ctx context.Context) (*plan.Result, diagnostic.Diagnostics, error) {
	res, err := plan.CompileAll(ctx, l.model, l.hierarchy, l.opts)
	if err != nil {
		return nil, l.diagnostics, err
	}

	diags := l.diagnostics
	diags.Merge(res.Compiler.Diagnostics())

	return res, diags, nil
}

func runGen(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var src source
	src.register(fs)

	cfg := gen.DefaultGeneratorConfig()
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "output directory")
	fs.StringVar(&cfg.PackageName, "package", cfg.PackageName, "name of the generated package")
	fs.StringVar(&cfg.PackagePath, "import", "", "import path of the generated package")
	noComments := fs.Bool("no-comments", false, "omit doc comments from generated code")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.GenerateComments = !*noComments

	l, err := src.load()
	if err != nil {
		return err
	}

	res, diags, err := l.compile(ctx)
	if err != nil {
		return err
	}

	printDiagnostics(stderr, diags, false)

	if err := errors.Join(diags.Error(), res.Err()); err != nil {
		return err
	}

	cfg.Converters = l.converters

	files, err := gen.NewGenerator(cfg).Generate(res.Plans)
	if err != nil {
		return err
	}

	if err := gen.WriteFiles(files, cfg.OutputDir); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "wrote %d files to %s\n", len(files), cfg.OutputDir)

	return nil
}

func runCheck(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var src source
	src.register(fs)
	verbose := fs.Bool("v", false, "also print info diagnostics")

	if err := fs.Parse(args); err != nil {
		return err
	}

	l, err := src.load()
	if err != nil {
		return err
	}

	res, diags, err := l.compile(ctx)
	if err != nil {
		return err
	}

	printDiagnostics(stdout, diags, *verbose)

	for _, f := range res.Failed {
		fmt.Fprintf(stdout, "FAILED %s: %v\n", f.Type, f.Err)
	}

	fmt.Fprintf(stdout, "%d types compiled, %d failed, %d errors, %d warnings\n",
		len(res.Plans), len(res.Failed), len(diags.Errors), len(diags.Warnings))

	if diags.HasErrors() || len(res.Failed) > 0 {
		return errors.New("check failed")
	}

	return nil
}

func runDump(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var src source
	src.register(fs)
	typeName := fs.String("type", "", "only dump the type with this name or full id")
	raw := fs.Bool("spew", false, "dump the plan structures instead of the plan listing")

	if err := fs.Parse(args); err != nil {
		return err
	}

	l, err := src.load()
	if err != nil {
		return err
	}

	res, diags, err := l.compile(ctx)
	if err != nil {
		return err
	}

	printDiagnostics(stderr, diags, false)

	found := false

	for _, p := range res.Plans {
		if *typeName != "" && *typeName != p.Type.Name && *typeName != p.Type.String() {
			continue
		}

		found = true

		if *raw {
			spew.Fdump(stdout, p)
			continue
		}

		fmt.Fprintln(stdout, ir.FormatPlan(p))
	}

	if *typeName != "" && !found {
		names := make([]string, 0, len(res.Plans))
		for _, p := range res.Plans {
			names = append(names, p.Type.Name)
		}

		return fmt.Errorf("no compiled plan for type %q%s", *typeName, match.DidYouMean(*typeName, names))
	}

	return res.Err()
}

func printDiagnostics(w io.Writer, d diagnostic.Diagnostics, infos bool) {
	for _, e := range d.Errors {
		fmt.Fprintln(w, e.String())
	}

	for _, wn := range d.Warnings {
		fmt.Fprintln(w, wn.String())
	}

	if infos {
		for _, i := range d.Infos {
			fmt.Fprintln(w, i.String())
		}
	}
}
