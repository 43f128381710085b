package synth

import (
	"fmt"
	"go/types"

	"type-duplicate/internal/analyze"
	"type-duplicate/internal/diagnostic"
)

// CheckCollisions reports generated identifiers that would clash with
// declarations already visible where def is declared: the companion type name
// in the package scope, and the generated methods on the original type.
func (s *Synthesizer) CheckCollisions(def analyze.TypeDef, b *Bundle) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	if def.Named == nil || def.Named.Obj().Pkg() == nil {
		return diags
	}

	pkg := def.Named.Obj().Pkg()

	if obj := pkg.Scope().Lookup(b.Derived.Name); obj != nil {
		diags.AddError(def.Pos, diagnostic.CodeNameCollision,
			fmt.Sprintf("generated type %s collides with %s declared%s",
				b.Derived.Name, objectKind(obj), s.at(obj)),
			def.ID.Name, "")
		diags.Errors[len(diags.Errors)-1].Suggestions = []string{
			"rename " + obj.Name() + " or " + def.ID.Name,
		}
	}

	for _, method := range []string{SizeMethod, b.Marker.Method} {
		obj, index, _ := types.LookupFieldOrMethod(types.NewPointer(def.Named), false, pkg, method)
		// Promoted through an embedded field; the new method shadows it.
		if obj == nil || len(index) != 1 {
			continue
		}

		diags.AddError(def.Pos, diagnostic.CodeMethodCollision,
			fmt.Sprintf("type %s already has %s %s%s", def.ID.Name, objectKind(obj), method, s.at(obj)),
			def.ID.Name, analyze.FieldPath(def.ID.Name, analyze.NameAccessor(method)))
	}

	return diags
}

func (s *Synthesizer) at(obj types.Object) string {
	if s.fset == nil || !obj.Pos().IsValid() {
		return ""
	}

	return " at " + s.fset.Position(obj.Pos()).String()
}

func objectKind(obj types.Object) string {
	switch o := obj.(type) {
	case *types.TypeName:
		return "type " + o.Name()
	case *types.Func:
		if sig, ok := o.Type().(*types.Signature); ok && sig.Recv() != nil {
			return "method"
		}

		return "func " + o.Name()
	case *types.Var:
		if o.IsField() {
			return "field"
		}

		return "var " + o.Name()
	case *types.Const:
		return "const " + o.Name()
	default:
		return obj.Name()
	}
}
