// Package analyzetest type-checks Go source snippets for analyzer and
// synthesizer tests, without loading packages from disk.
package analyzetest

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/require"

	"type-duplicate/internal/analyze"
)

// PkgPath is the import path snippets are checked under.
const PkgPath = "example.com/src"

// Result is a type-checked snippet.
type Result struct {
	Fset *token.FileSet
	File *ast.File
	Pkg  *types.Package
	Info *types.Info
}

// Check parses and type-checks src as a single file named src.go.
// src must start with a package clause and must not import anything.
func Check(t testing.TB, src string) *Result {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "src.go", src, parser.ParseComments)
	require.NoError(t, err)

	info := &types.Info{
		Defs: make(map[*ast.Ident]types.Object),
		Uses: make(map[*ast.Ident]types.Object),
	}

	pkg, err := (&types.Config{}).Check(PkgPath, fset, []*ast.File{file}, info)
	require.NoError(t, err)

	return &Result{Fset: fset, File: file, Pkg: pkg, Info: info}
}

// Spec returns the type spec declaring name, or nil.
func (r *Result) Spec(name string) *ast.TypeSpec {
	for _, decl := range r.File.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}

		for _, s := range gd.Specs {
			if ts, ok := s.(*ast.TypeSpec); ok && ts.Name.Name == name {
				return ts
			}
		}
	}

	return nil
}

// Object returns the type name object declared as name.
func (r *Result) Object(t testing.TB, name string) *types.TypeName {
	t.Helper()

	obj, ok := r.Pkg.Scope().Lookup(name).(*types.TypeName)
	require.True(t, ok, "type %s not declared", name)

	return obj
}

// Classify classifies the named type and fails the test on error.
func (r *Result) Classify(t testing.TB, name string) analyze.TypeDef {
	t.Helper()

	def, err := analyze.Classify(r.Fset, r.Spec(name), r.Object(t, name))
	require.NoError(t, err)

	return def
}

// ClassifyAll classifies every named type in order and fails the test on error.
func (r *Result) ClassifyAll(t testing.TB, names ...string) []analyze.TypeDef {
	t.Helper()

	defs := make([]analyze.TypeDef, 0, len(names))
	for _, name := range names {
		defs = append(defs, r.Classify(t, name))
	}

	return defs
}
