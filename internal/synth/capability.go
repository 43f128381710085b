package synth

import (
	"go/types"

	"type-duplicate/internal/analyze"
	"type-duplicate/internal/common"
)

// Strategy selects the heapsize helper measuring a field.
type Strategy int

const (
	StrategyNone      Strategy = iota
	StrategyMethod             // heapsize.Of(&x.F), *T implements HeapSizer
	StrategyInterface          // heapsize.Of(x.F), interface embedding HeapSizer
	StrategyPointer            // heapsize.OfPointer(x.F), *E implements HeapSizer
	StrategyString             // heapsize.OfString(x.F)
	StrategyScalar             // heapsize.OfScalar(x.F)
	StrategySlice              // heapsize.OfSlice(x.F), scalar elements
	StrategyStrings            // heapsize.OfStrings(x.F), string elements
	StrategySliceOf            // heapsize.OfSliceOf(x.F), elements implementing HeapSizer
)

// String returns the helper name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyMethod, StrategyInterface:
		return "Of"
	case StrategyPointer:
		return "OfPointer"
	case StrategyString:
		return "OfString"
	case StrategyScalar:
		return "OfScalar"
	case StrategySlice:
		return "OfSlice"
	case StrategyStrings:
		return "OfStrings"
	case StrategySliceOf:
		return "OfSliceOf"
	default:
		return common.UnknownStr
	}
}

// Call returns the expression measuring the field read by selector.
func (s Strategy) Call(selector string) string {
	if s == StrategyMethod {
		return "heapsize.Of(&" + selector + ")"
	}

	return "heapsize." + s.String() + "(" + selector + ")"
}

// Dispatcher decides how a field type is measured.
type Dispatcher struct {
	// Pending lists types whose size method is generated in the same run.
	// They count as implementing the capability although go/types cannot see
	// the method yet.
	Pending map[analyze.TypeID]bool
}

// NewDispatcher creates a Dispatcher treating defs as capable.
func NewDispatcher(defs ...analyze.TypeDef) *Dispatcher {
	pending := make(map[analyze.TypeID]bool, len(defs))
	for _, d := range defs {
		pending[d.ID] = true
	}

	return &Dispatcher{Pending: pending}
}

// Dispatch returns the strategy for a field of type t, or StrategyNone when
// the type does not support heap-size measurement.
func (d *Dispatcher) Dispatch(t types.Type) Strategy {
	t = types.Unalias(t)

	switch u := t.Underlying().(type) {
	case *types.Interface:
		if d.interfaceHasSizer(u) {
			return StrategyInterface
		}

		return StrategyNone

	case *types.Pointer:
		// Named pointer types have no methods of their own, so OfPointer
		// cannot accept them.
		if _, named := t.(*types.Named); named {
			return StrategyNone
		}

		if d.implements(u.Elem()) {
			return StrategyPointer
		}

		return StrategyNone
	}

	if d.implements(t) {
		return StrategyMethod
	}

	switch u := t.Underlying().(type) {
	case *types.Basic:
		return basicStrategy(u, StrategyString, StrategyScalar)

	case *types.Slice:
		elem := types.Unalias(u.Elem())
		if b, ok := elem.Underlying().(*types.Basic); ok {
			return basicStrategy(b, StrategyStrings, StrategySlice)
		}

		if d.implements(elem) {
			return StrategySliceOf
		}
	}

	return StrategyNone
}

func basicStrategy(b *types.Basic, str, scalar Strategy) Strategy {
	info := b.Info()

	switch {
	case info&types.IsUntyped != 0:
		return StrategyNone
	case info&types.IsString != 0:
		return str
	case info&(types.IsBoolean|types.IsNumeric) != 0:
		return scalar
	default:
		return StrategyNone
	}
}

// implements reports whether *t has the size method. t must not be a pointer
// or an interface.
func (d *Dispatcher) implements(t types.Type) bool {
	t = types.Unalias(t)

	switch t.Underlying().(type) {
	case *types.Pointer, *types.Interface:
		return false
	}

	if named, ok := t.(*types.Named); ok && d.Pending[typeID(named)] {
		return true
	}

	obj, _, _ := types.LookupFieldOrMethod(types.NewPointer(t), false, nil, SizeMethod)

	fn, ok := obj.(*types.Func)
	if !ok {
		return false
	}

	return isSizeSignature(fn.Type())
}

func (d *Dispatcher) interfaceHasSizer(iface *types.Interface) bool {
	for i := range iface.NumMethods() {
		m := iface.Method(i)
		if m.Name() == SizeMethod && isSizeSignature(m.Type()) {
			return true
		}
	}

	return false
}

func isSizeSignature(t types.Type) bool {
	sig, ok := t.(*types.Signature)
	if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return false
	}

	return types.Identical(sig.Results().At(0).Type(), types.Typ[types.Int])
}

func typeID(named *types.Named) analyze.TypeID {
	obj := named.Obj()

	id := analyze.TypeID{Name: obj.Name()}
	if obj.Pkg() != nil {
		id.PkgPath = obj.Pkg().Path()
	}

	return id
}
