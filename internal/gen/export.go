package gen

import (
	"gopkg.in/yaml.v3"

	"type-duplicate/internal/analyze"
	"type-duplicate/internal/synth"
)

// Report describes what a run found and would generate.
type Report struct {
	Packages []PackageReport `yaml:"packages"`
}

// PackageReport describes one loaded package.
type PackageReport struct {
	Path   string       `yaml:"path"`
	Name   string       `yaml:"name"`
	Output string       `yaml:"output,omitempty"`
	Types  []TypeReport `yaml:"types"`
}

// TypeReport describes one annotated type. Size, Derived and Marker are empty
// when the type did not synthesize.
type TypeReport struct {
	Name     string        `yaml:"name"`
	Position string        `yaml:"position"`
	Shape    string        `yaml:"shape"`
	Fields   []FieldReport `yaml:"fields,omitempty"`
	Skipped  []string      `yaml:"skipped,omitempty"`
	Size     string        `yaml:"size,omitempty"`
	Derived  string        `yaml:"derived,omitempty"`
	Marker   string        `yaml:"marker,omitempty"`
}

// FieldReport describes one field of an annotated type.
type FieldReport struct {
	Accessor string `yaml:"accessor"`
	Type     string `yaml:"type"`
	Position string `yaml:"position"`
	Call     string `yaml:"call,omitempty"`
}

// Export builds the report of an analysis.
func (g *Generator) Export(a *Analysis) *Report {
	r := &Report{Packages: []PackageReport{}}

	for _, pkg := range a.Packages {
		pr := PackageReport{
			Path:  pkg.Path,
			Name:  pkg.Name,
			Types: []TypeReport{},
		}

		if len(a.PackageBundles(pkg)) > 0 {
			pr.Output = GeneratedFile{Dir: pkg.Dir, Filename: g.config.OutputFile}.Path()
		}

		for _, def := range pkg.Defs {
			pr.Types = append(pr.Types, exportType(pkg, def, a.Bundles[def.ID]))
		}

		r.Packages = append(r.Packages, pr)
	}

	return r
}

// ExportYAML generates the report of an analysis as YAML.
func (g *Generator) ExportYAML(a *Analysis) ([]byte, error) {
	return yaml.Marshal(g.Export(a))
}

func exportType(pkg *analyze.PackageInfo, def analyze.TypeDef, b *synth.Bundle) TypeReport {
	tr := TypeReport{
		Name:     def.ID.Name,
		Position: def.Pos.String(),
		Shape:    def.Shape.Kind.String(),
	}

	calls := make(map[analyze.Accessor]string)

	if b != nil {
		for _, t := range b.Size.Terms {
			calls[t.Field] = t.Call
		}

		tr.Size = b.Size.String()
		tr.Derived = b.Derived.Name
		tr.Marker = b.Marker.Interface
	}

	for _, f := range def.Shape.Fields {
		tr.Fields = append(tr.Fields, FieldReport{
			Accessor: f.Accessor.String(),
			Type:     analyze.TypeString(f.Type, pkg.Types),
			Position: f.Span.String(),
			Call:     calls[f.Accessor],
		})
	}

	for _, f := range def.Skipped {
		tr.Skipped = append(tr.Skipped, f.Span.String())
	}

	return tr
}
