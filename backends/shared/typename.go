package shared

import (
	"fmt"
	"strings"

	"github.com/dafny-lang/dafny-codegen/rir"
)

// Primitives is the per-target spelling table TypeName renders rir.Type
// values against. Every concrete backend under backends/* builds one of
// these instead of writing its own six-way type-switch; the switch itself
// (recursing into collections, arrays, arrows, user-defined types) is
// identical across every target, only the leaves differ.
type Primitives struct {
	Bool, Char, Int, Real string
	// Bitvector renders a bitvector of the given width; called only when no
	// native width fits (HasNativeBacking is false) or the target has no
	// fixed-width integers at all — most targets route a bitvector through
	// NativeInt at a chosen width instead.
	Bitvector func(width int) string
	// NativeInt renders the target's native fixed-width integer type at
	// bits, for a bitvector with native backing.
	NativeInt func(bits int) string
	Array     func(rank int, elem string) string
	// Collection renders a set/seq/multiset/map. key is "" for every kind
	// but MapKind.
	Collection func(kind rir.CollectionKind, key, elem string) string
	Arrow      func(inputs []string, output string) string
	// TypeParam renders a reference to an enclosing declaration's type
	// formal; identity by default (most targets spell it the same way the
	// source did).
	TypeParam func(name string) string
	// UserDefined renders a reference to a declared class/trait/datatype/
	// newtype/subset type by name, with its instantiated type arguments
	// already rendered.
	UserDefined func(name string, args []string) string
}

// TypeName renders t using p. Every backend's TargetTypeName delegates
// here after filling in its own Primitives.
func TypeName(p Primitives, t rir.Type) string {
	switch t := t.(type) {
	case rir.BoolType:
		return p.Bool
	case rir.CharType:
		return p.Char
	case rir.IntType:
		return p.Int
	case rir.RealType:
		return p.Real
	case rir.BitvectorType:
		if t.HasNativeBacking() && p.NativeInt != nil {
			return p.NativeInt(t.NativeBits)
		}
		if p.Bitvector != nil {
			return p.Bitvector(t.Width)
		}
		return p.Int
	case rir.CollectionType:
		key := ""
		if t.Kind == rir.MapKind {
			key = TypeName(p, t.Key)
		}
		return p.Collection(t.Kind, key, TypeName(p, t.Element))
	case rir.ArrayType:
		return p.Array(t.Rank, TypeName(p, t.Element))
	case rir.UserDefinedType:
		args := make([]string, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			args[i] = TypeName(p, a)
		}
		if p.UserDefined != nil {
			return p.UserDefined(t.Decl.Name, args)
		}
		if len(args) == 0 {
			return t.Decl.Name
		}
		return fmt.Sprintf("%s<%s>", t.Decl.Name, strings.Join(args, ", "))
	case rir.ArrowType:
		inputs := make([]string, len(t.Inputs))
		for i, in := range t.Inputs {
			inputs[i] = TypeName(p, in)
		}
		return p.Arrow(inputs, TypeName(p, t.Output))
	case rir.TypeParameterType:
		if p.TypeParam != nil {
			return p.TypeParam(t.Name)
		}
		return t.Name
	case rir.TypeProxy:
		return "<unresolved>"
	default:
		return fmt.Sprintf("%v", t)
	}
}

// NeedsCastAfterArithmetic reports whether t is a bitvector with a native
// backing (width at most the native width, equal widths included), the
// common case across every native-width-limited target (§4.5): arithmetic
// may widen past the declared type and must be cast back down.
func NeedsCastAfterArithmetic(t rir.Type) bool {
	bv, ok := t.(rir.BitvectorType)
	return ok && bv.HasNativeBacking()
}
