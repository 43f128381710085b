package analyze

import (
	"go/types"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"type-duplicate/internal/diagnostic"
)

func defNames(info *PackageInfo) []string {
	var names []string
	for _, d := range info.Defs {
		names = append(names, d.ID.Name)
	}

	return names
}

func findDef(t *testing.T, info *PackageInfo, name string) TypeDef {
	t.Helper()

	for _, d := range info.Defs {
		if d.ID.Name == name {
			return d
		}
	}

	t.Fatalf("type %s not found in %s", name, info.Path)

	return TypeDef{}
}

func TestLoader_LoadPackages(t *testing.T) {
	loader := NewLoader("duplicate_gen.go")
	infos, diags, err := loader.Load("type-duplicate/store", "type-duplicate/warehouse")
	require.NoError(t, err)
	require.Len(t, infos, 2)

	// Sorted by import path
	assert.Equal(t, "type-duplicate/store", infos[0].Path)
	assert.Equal(t, "type-duplicate/warehouse", infos[1].Path)
	assert.Equal(t, "store", infos[0].Name)
	assert.NotEmpty(t, infos[0].Dir)
	assert.NotNil(t, infos[0].Types)
	assert.NotNil(t, infos[0].Fset)

	assert.Len(t, diags.Errors, 4)
	assert.Empty(t, diags.Warnings)
}

func TestLoader_StoreTypes(t *testing.T) {
	loader := NewLoader("duplicate_gen.go")
	infos, diags, err := loader.Load("type-duplicate/store")
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.False(t, diags.HasErrors())

	store := infos[0]
	assert.Equal(t, []string{
		"Product", "Customer", "Order", "OrderItem", "AuditedOrder", "Wrapped", "Padded",
		"Tombstone", "Point", "Coordinates", "Segment", "Nothing", "Left", "Right",
	}, defNames(store))

	assert.Equal(t, ShapeNone, findDef(t, store, "Tombstone").Shape.Kind)
	assert.Equal(t, ShapeNone, findDef(t, store, "Nothing").Shape.Kind)
	assert.Equal(t, ShapePositional, findDef(t, store, "Coordinates").Shape.Kind)
	assert.Equal(t, 2, findDef(t, store, "Segment").Shape.Len())

	order := findDef(t, store, "Order")
	assert.Equal(t, ShapeNamed, order.Shape.Kind)
	assert.Equal(t, 7, order.Shape.Len())
	assert.Equal(t, "types.go", filepath.Base(order.Pos.Filename))
	assert.Equal(t, TypeID{PkgPath: "type-duplicate/store", Name: "Order"}, order.ID)

	// The blank field of Padded is reported, not measured.
	require.Len(t, diags.Infos, 1)
	assert.Equal(t, diagnostic.CodeBlankField, diags.Infos[0].Code)
	assert.Equal(t, "Padded._", diags.Infos[0].FieldPath)
}

func TestLoader_WarehouseRejects(t *testing.T) {
	loader := NewLoader("duplicate_gen.go")
	infos, diags, err := loader.Load("type-duplicate/warehouse")
	require.NoError(t, err)
	require.Len(t, infos, 1)

	rejected := make(map[string]string)
	for _, d := range diags.Errors {
		assert.Equal(t, diagnostic.CodeUnsupportedShape, d.Code)
		assert.True(t, d.Pos.IsValid())
		rejected[d.TypeName] = d.Message
	}

	assert.Len(t, rejected, 4)
	assert.Contains(t, rejected["Storage"], "interface")
	assert.Contains(t, rejected["SKU"], "opaque")
	assert.Contains(t, rejected["Stock"], "aliases")
	assert.Contains(t, rejected["Bin"], "generic")

	// Rejected types never reach the definitions list.
	assert.Equal(t, []string{"Shelf", "Pallet", "Crate", "Box"}, defNames(infos[0]))
}

func TestLoader_MasksGeneratedOutput(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	write("go.mod", "module example.com/masked\n\ngo 1.24\n")
	write("types.go", `package masked

//dupgen:derive
type Thing struct {
	Name string
}
`)
	// Refers to a name only generation provides.
	write("use.go", `package masked

var _ = ThingBson{}
`)
	// Stale output that would not compile.
	write("duplicate_gen.go", `package masked

func (x *Thing) HeapSizeOfChildren() int { return x.Missing }
`)

	loader := &Loader{OutputFile: "duplicate_gen.go", Dir: dir}
	infos, diags, err := loader.Load("./...")
	require.NoError(t, err)
	require.Len(t, infos, 1)

	assert.Equal(t, []string{"Thing"}, defNames(infos[0]))
	assert.False(t, diags.HasErrors())

	// The undefined companion type is tolerated as a warning.
	require.NotEmpty(t, diags.Warnings)
	assert.Equal(t, diagnostic.CodeTypeCheck, diags.Warnings[0].Code)
	assert.Contains(t, diags.Warnings[0].Message, "ThingBson")

	// Masking also hides stale methods from collision checks.
	thing := infos[0].Types.Scope().Lookup("Thing")
	require.NotNil(t, thing)
	mset := types.NewMethodSet(types.NewPointer(thing.Type()))
	assert.Nil(t, mset.Lookup(nil, "HeapSizeOfChildren"))
}

func TestPackageErrors(t *testing.T) {
	undefined := packages.Error{
		Pos:  "/src/unit/main.go:15:14",
		Msg:  "undefined: SomeStructBson",
		Kind: packages.TypeError,
	}
	compile := packages.Error{
		Pos:  "-",
		Msg:  "# example.com/unit\nmain.go:15:14: undefined: SomeStructBson",
		Kind: packages.ListError,
	}

	t.Run("compile error next to type error", func(t *testing.T) {
		var diags diagnostic.Diagnostics
		pkgs := []*packages.Package{{PkgPath: "example.com/unit", Errors: []packages.Error{compile, undefined}}}

		errs := packageErrors(pkgs, &diags)
		assert.Empty(t, errs)
		require.Len(t, diags.Warnings, 1)
		assert.Equal(t, diagnostic.CodeTypeCheck, diags.Warnings[0].Code)
		assert.Equal(t, 15, diags.Warnings[0].Pos.Line)
	})

	t.Run("compile error alone", func(t *testing.T) {
		var diags diagnostic.Diagnostics
		pkgs := []*packages.Package{{PkgPath: "example.com/unit", Errors: []packages.Error{compile}}}

		assert.Len(t, packageErrors(pkgs, &diags), 1)
	})

	t.Run("other list errors", func(t *testing.T) {
		var diags diagnostic.Diagnostics
		missing := packages.Error{Msg: "no required module provides package example.com/gone", Kind: packages.ListError}
		pkgs := []*packages.Package{{PkgPath: "example.com/unit", Errors: []packages.Error{missing, undefined}}}

		assert.Len(t, packageErrors(pkgs, &diags), 1)
	})
}

func TestLoader_BadPattern(t *testing.T) {
	loader := &Loader{OutputFile: "duplicate_gen.go", Dir: t.TempDir()}
	_, _, err := loader.Load("example.com/does/not/exist")
	require.Error(t, err)
}
