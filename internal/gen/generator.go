package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"type-duplicate/internal/analyze"
	"type-duplicate/internal/common"
	"type-duplicate/internal/diagnostic"
	"type-duplicate/internal/synth"
)

// Header is the first line of every generated file.
const Header = "// Code generated by dupgen. DO NOT EDIT."

// ErrDiagnostics is returned when annotated types have error diagnostics.
// Nothing is generated in that case.
var ErrDiagnostics = errors.New("annotated types have errors")

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// OutputFile is the name of the file generated in each package directory.
	OutputFile string
	// LineDirectives prefixes every size term with a /*line*/ directive that
	// points at the field it measures.
	LineDirectives bool
	// HeapsizeImport is the import path of the heapsize runtime package.
	HeapsizeImport string
	// DuplicateImport is the import path of the duplicate runtime package.
	DuplicateImport string
	// DebugDir receives *.unformatted.go sidecars when formatting fails.
	// Empty disables them.
	DebugDir string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		OutputFile:      "duplicate_gen.go",
		LineDirectives:  false,
		HeapsizeImport:  "type-duplicate/heapsize",
		DuplicateImport: "type-duplicate/duplicate",
	}
}

// Generator generates companion code for loaded packages.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory of the package the file belongs to.
	Dir string
	// Filename is the name of the file (e.g., "duplicate_gen.go").
	Filename string
	// Package is the import path of the package.
	Package string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the location of the file on disk.
func (f GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Analysis is the synthesized state of one generator run.
type Analysis struct {
	Packages []*analyze.PackageInfo
	// Bundles holds the bundle of every annotated type that synthesized
	// without errors.
	Bundles map[analyze.TypeID]*synth.Bundle
}

// Analyze synthesizes every annotated type of pkgs. Types annotated in any of
// the packages count as measurable from all of them.
func (g *Generator) Analyze(pkgs []*analyze.PackageInfo) (*Analysis, diagnostic.Diagnostics) {
	var (
		diags diagnostic.Diagnostics
		all   []analyze.TypeDef
	)

	for _, pkg := range pkgs {
		all = append(all, pkg.Defs...)
	}

	a := &Analysis{
		Packages: pkgs,
		Bundles:  make(map[analyze.TypeID]*synth.Bundle, len(all)),
	}

	for _, pkg := range pkgs {
		s := synth.NewSynthesizer(pkg.Fset, all...)

		for _, def := range pkg.Defs {
			b, d := s.Synthesize(def)
			diags.Merge(d)

			if b != nil {
				a.Bundles[def.ID] = b
			}
		}
	}

	return a, diags
}

// Generate produces one file per package with annotated types. Any error
// diagnostic aborts the run: no file is returned and the error wraps
// ErrDiagnostics.
func (g *Generator) Generate(pkgs []*analyze.PackageInfo) ([]GeneratedFile, diagnostic.Diagnostics, error) {
	a, diags := g.Analyze(pkgs)
	if diags.HasErrors() {
		return nil, diags, fmt.Errorf("%w: %d error(s)", ErrDiagnostics, len(diags.Errors))
	}

	var files []GeneratedFile

	for _, pkg := range pkgs {
		bundles := a.PackageBundles(pkg)
		if len(bundles) == 0 {
			common.Logger().Debug("no annotated types", zap.String("package", pkg.Path))
			continue
		}

		file, err := g.GeneratePackage(pkg, bundles)
		if err != nil {
			return nil, diags, fmt.Errorf("generating %s: %w", pkg.Path, err)
		}

		common.Logger().Debug("generated file",
			zap.String("package", pkg.Path),
			zap.String("file", file.Path()),
			zap.Int("types", len(bundles)))

		files = append(files, *file)
	}

	return files, diags, nil
}

// PackageBundles returns the bundles of pkg in declaration order.
func (a *Analysis) PackageBundles(pkg *analyze.PackageInfo) []*synth.Bundle {
	var bundles []*synth.Bundle

	for _, def := range pkg.Defs {
		if b, ok := a.Bundles[def.ID]; ok {
			bundles = append(bundles, b)
		}
	}

	slices.SortStableFunc(bundles, func(x, y *synth.Bundle) int {
		return comparePositions(x.Pos.Filename, x.Pos.Offset, y.Pos.Filename, y.Pos.Offset)
	})

	return bundles
}

// GeneratePackage renders the file of one package.
func (g *Generator) GeneratePackage(pkg *analyze.PackageInfo, bundles []*synth.Bundle) (*GeneratedFile, error) {
	data := g.buildTemplateData(pkg, bundles)

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	file := &GeneratedFile{
		Dir:      pkg.Dir,
		Filename: g.config.OutputFile,
		Package:  pkg.Path,
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		if g.config.DebugDir != "" {
			_ = writeDebugUnformatted(g.config.DebugDir, pkg.Name+"_"+g.config.OutputFile, buf.Bytes())
		}

		file.Content = buf.Bytes()

		return file, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	file.Content = formatted

	return file, nil
}

func comparePositions(fx string, ox int, fy string, oy int) int {
	if fx != fy {
		if fx < fy {
			return -1
		}

		return 1
	}

	return ox - oy
}
