package synth

import (
	"fmt"
	"go/token"
	"go/types"

	"type-duplicate/duplicate"
	"type-duplicate/internal/analyze"
	"type-duplicate/internal/diagnostic"
)

// Synthesizer turns classified type definitions into bundles.
type Synthesizer struct {
	dispatcher *Dispatcher
	fset       *token.FileSet
}

// NewSynthesizer creates a Synthesizer for one generator run over defs.
// fset resolves positions of declarations that generated names collide with;
// it may be nil.
func NewSynthesizer(fset *token.FileSet, defs ...analyze.TypeDef) *Synthesizer {
	return &Synthesizer{
		dispatcher: NewDispatcher(defs...),
		fset:       fset,
	}
}

// Synthesize derives the size expression, companion type and marker
// association of def. A nil bundle is returned whenever the diagnostics hold
// an error; nothing is ever emitted for a partially synthesized type.
func (s *Synthesizer) Synthesize(def analyze.TypeDef) (*Bundle, diagnostic.Diagnostics) {
	size, diags := s.SizeExpression(def)

	b := &Bundle{
		Original: def.ID,
		Pos:      def.Pos,
		Shape:    def.Shape.Kind,
		Size:     size,
		Derived:  Derive(def.ID.Name),
		Marker:   Associate(def.ID.Name),
	}

	diags.Merge(s.CheckCollisions(def, b))

	if diags.HasErrors() {
		return nil, diags
	}

	return b, diags
}

// SizeExpression folds the fields of def into a size expression, in
// declaration order. Fields lacking the capability are reported at their own
// position.
func (s *Synthesizer) SizeExpression(def analyze.TypeDef) (SizeExpr, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	expr := SizeExpr{Receiver: Receiver}

	switch def.Shape.Kind {
	case analyze.ShapeNone:
		// A type without fields owns no heap memory.
		return expr, diags

	case analyze.ShapePositional, analyze.ShapeNamed:
		var pkg *types.Package
		if def.Named != nil {
			pkg = def.Named.Obj().Pkg()
		}

		for _, f := range def.Shape.Fields {
			strategy := s.dispatcher.Dispatch(f.Type)
			if strategy == StrategyNone {
				diags.AddError(f.Span, diagnostic.CodeMissingCapability,
					fmt.Sprintf("field type %s does not support heap-size measurement: "+
						"it needs a %s() int method, a string or scalar kind, or to be a slice of those",
						analyze.TypeString(f.Type, pkg), SizeMethod),
					def.ID.Name, analyze.FieldPath(def.ID.Name, f.Accessor))

				continue
			}

			expr.Terms = append(expr.Terms, Term{
				Field: f.Accessor,
				Call:  strategy.Call(f.Accessor.Selector(Receiver)),
				Span:  f.Span,
			})
		}

	default:
		diags.AddError(def.Pos, diagnostic.CodeUnsupportedShape,
			fmt.Sprintf("unknown field shape %s", def.Shape.Kind), def.ID.Name, "")
	}

	return expr, diags
}

// Derive returns the companion type of the type called name. Its fields never
// depend on the original fields.
func Derive(name string) DerivedType {
	return DerivedType{
		Name: duplicate.DerivedName(name),
		Fields: []DerivedField{
			{Name: "a", Type: "uint32"},
			{Name: "b", Type: "uint32"},
		},
		Printable:    true,
		Serializable: true,
	}
}

// Associate returns the marker association of the type called name.
func Associate(name string) MarkerAssociation {
	return MarkerAssociation{
		TypeName:  name,
		Interface: MarkerInterface,
		Method:    MarkerMethod,
	}
}
