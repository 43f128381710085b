package gen

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"type-duplicate/internal/analyze"
	"type-duplicate/internal/common"
	"type-duplicate/internal/synth"
)

// templateData holds all data needed for the file template.
type templateData struct {
	Header          string
	PackageName     string
	StdImports      []importSpec
	Imports         []importSpec
	Types           []typeData
	MarkerInterface string
	SizerInterface  string
}

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// typeData is the per-type part of the template.
type typeData struct {
	Original string
	Derived  synth.DerivedType
	Marker   synth.MarkerAssociation
	// Format is the quoted fmt format of the debug form.
	Format string
	// Values lists the companion fields read from receiver v.
	Values string
	Wire   []wireField
	// Recv is the receiver name of the size method, empty when unused.
	Recv     string
	SizeBody string
}

// buildTemplateData constructs the template data of one package.
func (g *Generator) buildTemplateData(pkg *analyze.PackageInfo, bundles []*synth.Bundle) *templateData {
	data := &templateData{
		Header:          Header,
		PackageName:     pkg.Name,
		StdImports:      []importSpec{{Path: "encoding/json"}, {Path: "fmt"}},
		MarkerInterface: synth.MarkerInterface,
		SizerInterface:  synth.SizerInterface,
	}

	data.Imports = []importSpec{
		runtimeImport(g.config.DuplicateImport, "duplicate"),
		runtimeImport(g.config.HeapsizeImport, "heapsize"),
	}
	sort.Slice(data.Imports, func(i, j int) bool {
		return data.Imports[i].Path < data.Imports[j].Path
	})

	for _, b := range bundles {
		td := typeData{
			Original: b.Original.Name,
			Derived:  b.Derived,
			Marker:   b.Marker,
			Format:   debugFormat(b.Derived),
			Values:   fieldValues("v", b.Derived),
			Wire:     wireFields(b.Derived),
			SizeBody: g.sizeBody(pkg.Dir, b.Size),
		}

		if len(b.Size.Terms) > 0 {
			td.Recv = b.Size.Receiver
		}

		data.Types = append(data.Types, td)
	}

	return data
}

// runtimeImport imports path under name, aliasing it when the last path
// element differs from the package name.
func runtimeImport(path, name string) importSpec {
	spec := importSpec{Path: path}
	if common.PkgAlias(path) != name {
		spec.Alias = name
	}

	return spec
}

// sizeBody renders the returned expression, one term per line.
func (g *Generator) sizeBody(dir string, e synth.SizeExpr) string {
	if len(e.Terms) == 0 {
		return "0"
	}

	var sb strings.Builder

	sb.WriteString("0")

	for _, t := range e.Terms {
		sb.WriteString(" +\n\t\t")

		if g.config.LineDirectives {
			sb.WriteString(lineDirective(dir, t.Span.Filename, t.Span.Line, t.Span.Column))
			sb.WriteString(" ")
		}

		sb.WriteString(t.Call)
	}

	return sb.String()
}

// lineDirective returns a /*line*/ comment attributing the following
// expression to a source position. Relative file names resolve against the
// directory of the generated file.
func lineDirective(dir, filename string, line, col int) string {
	if filename == "" || line <= 0 {
		return ""
	}

	if dir != "" && filepath.IsAbs(filename) {
		if rel, err := filepath.Rel(dir, filename); err == nil {
			filename = rel
		}
	}

	if col <= 0 {
		return fmt.Sprintf("/*line %s:%d*/", filepath.ToSlash(filename), line)
	}

	return fmt.Sprintf("/*line %s:%d:%d*/", filepath.ToSlash(filename), line, col)
}

var fileTemplate = template.Must(template.New("duplicate").Parse(`{{.Header}}

package {{.PackageName}}

import (
{{range .StdImports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}}
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{range .Types}}
// {{.Derived.Name}} is the companion record of {{.Original}}.
type {{.Derived.Name}} struct {
{{range .Derived.Fields}}	{{.Name}} {{.Type}}
{{end}}}
{{if .Derived.Printable}}
// String renders {{.Derived.Name}} in debug form.
func (v {{.Derived.Name}}) String() string {
{{if .Values}}	return fmt.Sprintf({{.Format}}, {{.Values}})
{{else}}	return {{.Format}}
{{end}}}
{{end}}{{if .Derived.Serializable}}
// MarshalJSON implements json.Marshaler.
func (v {{.Derived.Name}}) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
{{range .Wire}}		{{.Name}} {{.Type}} ` + "`" + `json:"{{.Key}}"` + "`" + `
{{end}}	}{ {{.Values}} })
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *{{.Derived.Name}}) UnmarshalJSON(data []byte) error {
	var w struct {
{{range .Wire}}		{{.Name}} {{.Type}} ` + "`" + `json:"{{.Key}}"` + "`" + `
{{end}}	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

{{range .Wire}}	v.{{.Field}} = w.{{.Name}}
{{end}}
	return nil
}
{{end}}
// {{.Marker.Method}} marks {{.Original}} as having the companion record {{.Derived.Name}}.
func ({{.Original}}) {{.Marker.Method}}() {}

var _ {{$.MarkerInterface}} = (*{{.Original}})(nil)
var _ {{$.SizerInterface}} = (*{{.Original}})(nil)
{{end}}{{range .Types}}
// HeapSizeOfChildren reports the heap memory owned by the fields of {{.Original}}.
func ({{if .Recv}}{{.Recv}} {{end}}*{{.Original}}) HeapSizeOfChildren() int {
	return {{.SizeBody}}
}
{{end}}`))
