package gen

import (
	"fmt"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"type-duplicate/internal/analyze"
	"type-duplicate/internal/analyze/analyzetest"
	"type-duplicate/internal/diagnostic"
)

const genSrc = `package src

type SomeStruct struct{}

type Pair struct {
	Left  string
	Right []int
	Next  *Pair
}

type Triple [3]uint16

type Bad struct {
	Index map[string]int
}
`

func testPackage(t *testing.T, names ...string) *analyze.PackageInfo {
	t.Helper()

	r := analyzetest.Check(t, genSrc)

	return &analyze.PackageInfo{
		Path:  analyzetest.PkgPath,
		Name:  r.Pkg.Name(),
		Dir:   t.TempDir(),
		Defs:  r.ClassifyAll(t, names...),
		Types: r.Pkg,
		Fset:  r.Fset,
	}
}

func generateOne(t *testing.T, cfg GeneratorConfig, pkg *analyze.PackageInfo) string {
	t.Helper()

	files, diags, err := NewGenerator(cfg).Generate([]*analyze.PackageInfo{pkg})
	require.NoError(t, err)
	require.False(t, diags.HasErrors())
	require.Len(t, files, 1)

	assert.Equal(t, "duplicate_gen.go", files[0].Filename)
	assert.Equal(t, pkg.Dir, files[0].Dir)
	assert.Equal(t, pkg.Path, files[0].Package)

	_, err = parser.ParseFile(token.NewFileSet(), files[0].Filename, files[0].Content, parser.ParseComments)
	require.NoError(t, err, string(files[0].Content))

	return string(files[0].Content)
}

func TestGenerator_Generate_NoFields(t *testing.T) {
	content := generateOne(t, DefaultGeneratorConfig(), testPackage(t, "SomeStruct"))

	assert.True(t, strings.HasPrefix(content, Header+"\n\npackage src\n"))

	// Imports
	assert.Contains(t, content, "\"encoding/json\"")
	assert.Contains(t, content, "\"fmt\"")
	assert.Contains(t, content, "\"type-duplicate/duplicate\"")
	assert.Contains(t, content, "\"type-duplicate/heapsize\"")

	// Companion record
	assert.Contains(t, content, "type SomeStructBson struct {\n\ta uint32\n\tb uint32\n}")
	assert.Contains(t, content,
		"func (v SomeStructBson) String() string {\n"+
			"\treturn fmt.Sprintf(\"SomeStructBson { a: %v, b: %v }\", v.a, v.b)\n}")
	assert.Contains(t, content, "func (v SomeStructBson) MarshalJSON() ([]byte, error) {")
	assert.Contains(t, content, "}{v.a, v.b})")
	assert.Contains(t, content, "func (v *SomeStructBson) UnmarshalJSON(data []byte) error {")
	assert.Contains(t, content, "\tv.a = w.A\n\tv.b = w.B\n")
	assert.Contains(t, content, "A uint32 `json:\"a\"`")
	assert.Contains(t, content, "B uint32 `json:\"b\"`")

	// Marker association
	assert.Contains(t, content, "func (SomeStruct) DuplicateMarker() {}")
	assert.Contains(t, content, "var _ duplicate.Marker = (*SomeStruct)(nil)")
	assert.Contains(t, content, "var _ heapsize.HeapSizer = (*SomeStruct)(nil)")

	// Size method without fields
	assert.Contains(t, content, "func (*SomeStruct) HeapSizeOfChildren() int {\n\treturn 0\n}")
}

func TestGenerator_Generate_SizeTerms(t *testing.T) {
	content := generateOne(t, DefaultGeneratorConfig(), testPackage(t, "Pair", "Triple"))

	assert.Contains(t, content,
		"func (x *Pair) HeapSizeOfChildren() int {\n"+
			"\treturn 0 +\n"+
			"\t\theapsize.OfString(x.Left) +\n"+
			"\t\theapsize.OfSlice(x.Right) +\n"+
			"\t\theapsize.OfPointer(x.Next)\n}")
	assert.Contains(t, content,
		"\treturn 0 +\n"+
			"\t\theapsize.OfScalar(x[0]) +\n"+
			"\t\theapsize.OfScalar(x[1]) +\n"+
			"\t\theapsize.OfScalar(x[2])\n}")
	assert.NotContains(t, content, "/*line")
}

func TestGenerator_Generate_SizeMethodsLast(t *testing.T) {
	content := generateOne(t, DefaultGeneratorConfig(), testPackage(t, "SomeStruct", "Pair", "Triple"))

	lastMarker := strings.LastIndex(content, "DuplicateMarker() {}")
	firstSize := strings.Index(content, "HeapSizeOfChildren() int {")

	require.Positive(t, lastMarker)
	require.Positive(t, firstSize)
	assert.Greater(t, firstSize, lastMarker)
}

func TestGenerator_Generate_DeclarationOrder(t *testing.T) {
	// Definitions handed over out of order still render in source order.
	content := generateOne(t, DefaultGeneratorConfig(), testPackage(t, "Triple", "SomeStruct", "Pair"))

	some := strings.Index(content, "type SomeStructBson struct")
	pair := strings.Index(content, "type PairBson struct")
	triple := strings.Index(content, "type TripleBson struct")

	assert.Less(t, some, pair)
	assert.Less(t, pair, triple)
}

func TestGenerator_Generate_LineDirectives(t *testing.T) {
	pkg := testPackage(t, "Pair")
	cfg := DefaultGeneratorConfig()
	cfg.LineDirectives = true

	content := generateOne(t, cfg, pkg)

	for _, f := range pkg.Defs[0].Shape.Fields {
		directive := fmt.Sprintf("/*line src.go:%d:%d*/", f.Span.Line, f.Span.Column)
		assert.Contains(t, content, directive)
	}

	assert.Contains(t, content, "heapsize.OfString(x.Left)")
}

func TestGenerator_Generate_AliasedRuntimeImports(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.HeapsizeImport = "example.com/rt/heapsize/v2"
	cfg.DuplicateImport = "example.com/rt/dup"

	content := generateOne(t, cfg, testPackage(t, "SomeStruct"))

	assert.Contains(t, content, "heapsize \"example.com/rt/heapsize/v2\"")
	assert.Contains(t, content, "duplicate \"example.com/rt/dup\"")
}

func TestGenerator_Generate_Deterministic(t *testing.T) {
	pkg := testPackage(t, "SomeStruct", "Pair", "Triple")

	first := generateOne(t, DefaultGeneratorConfig(), pkg)
	second := generateOne(t, DefaultGeneratorConfig(), pkg)

	assert.Equal(t, first, second)
}

func TestGenerator_Generate_AbortsOnErrors(t *testing.T) {
	pkg := testPackage(t, "SomeStruct", "Bad")

	files, diags, err := NewGenerator(DefaultGeneratorConfig()).Generate([]*analyze.PackageInfo{pkg})
	require.ErrorIs(t, err, ErrDiagnostics)
	assert.Nil(t, files)
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeMissingCapability, diags.Errors[0].Code)
	assert.Equal(t, "Bad.Index", diags.Errors[0].FieldPath)
}

func TestGenerator_Generate_SkipsPackagesWithoutTypes(t *testing.T) {
	pkg := testPackage(t)

	files, diags, err := NewGenerator(DefaultGeneratorConfig()).Generate([]*analyze.PackageInfo{pkg})
	require.NoError(t, err)
	assert.True(t, diags.IsValid())
	assert.Empty(t, files)
}

func TestLineDirective(t *testing.T) {
	tests := []struct {
		name     string
		dir      string
		filename string
		line     int
		col      int
		want     string
	}{
		{"relative", "/src/pkg", "types.go", 12, 2, "/*line types.go:12:2*/"},
		{"absolute in dir", "/src/pkg", "/src/pkg/types.go", 12, 2, "/*line types.go:12:2*/"},
		{"no column", "/src/pkg", "types.go", 7, 0, "/*line types.go:7*/"},
		{"no file", "/src/pkg", "", 7, 1, ""},
		{"no line", "/src/pkg", "types.go", 0, 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lineDirective(tt.dir, tt.filename, tt.line, tt.col))
		})
	}
}
