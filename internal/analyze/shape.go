package analyze

import (
	"go/ast"
	"go/token"
	"go/types"
)

// Classify reduces an annotated type definition to its field shape.
// spec may be nil when the definition has no syntax at hand; positions then
// fall back to the type name.
func Classify(fset *token.FileSet, spec *ast.TypeSpec, obj *types.TypeName) (TypeDef, error) {
	def := TypeDef{
		ID:  TypeID{Name: obj.Name()},
		Pos: fset.Position(obj.Pos()),
	}
	if obj.Pkg() != nil {
		def.ID.PkgPath = obj.Pkg().Path()
	}

	if obj.IsAlias() {
		return def, def.unsupported("aliases have no definition of their own")
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		return def, def.unsupported("not a defined type")
	}

	def.Named = named

	if named.TypeParams().Len() > 0 {
		return def, def.unsupported("generic types are not supported")
	}

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		def.Shape, def.Skipped = structShape(fset, ut)

	case *types.Array:
		def.Shape = arrayShape(fset, spec, obj, ut)

	case *types.Interface:
		// Interfaces are the closest Go has to sum types.
		return def, def.unsupported("interface types have alternatives, not fields")

	default:
		return def, def.unsupported("underlying " + opaqueKind(ut) + " type is opaque")
	}

	return def, nil
}

func (d TypeDef) unsupported(reason string) *ShapeError {
	return &ShapeError{Type: d.ID.Name, Pos: d.Pos, Reason: reason}
}

func structShape(fset *token.FileSet, st *types.Struct) (FieldShape, []FieldDescriptor) {
	if st.NumFields() == 0 {
		return NoFields(), nil
	}

	var (
		fields  []FieldDescriptor
		skipped []FieldDescriptor
	)

	for i := range st.NumFields() {
		v := st.Field(i)
		fd := FieldDescriptor{
			Accessor: NameAccessor(v.Name()),
			Span:     fset.Position(v.Pos()),
			Type:     v.Type(),
		}

		if v.Name() == "_" {
			skipped = append(skipped, fd)
			continue
		}

		fields = append(fields, fd)
	}

	return NamedFields(fields...), skipped
}

func arrayShape(fset *token.FileSet, spec *ast.TypeSpec, obj *types.TypeName, arr *types.Array) FieldShape {
	if arr.Len() == 0 {
		return NoFields()
	}

	span := fset.Position(obj.Pos())
	if spec != nil {
		if at, ok := spec.Type.(*ast.ArrayType); ok {
			span = fset.Position(at.Elt.Pos())
		}
	}

	fields := make([]FieldDescriptor, 0, arr.Len())
	for i := range int(arr.Len()) {
		fields = append(fields, FieldDescriptor{
			Accessor: IndexAccessor(i),
			Span:     span,
			Type:     arr.Elem(),
		})
	}

	return PositionalFields(fields...)
}

func opaqueKind(t types.Type) string {
	switch t.(type) {
	case *types.Basic:
		return "basic"
	case *types.Map:
		return "map"
	case *types.Slice:
		return "slice"
	case *types.Pointer:
		return "pointer"
	case *types.Chan:
		return "channel"
	case *types.Signature:
		return "function"
	default:
		return "external"
	}
}
