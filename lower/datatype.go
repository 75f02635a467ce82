package lower

import (
	"github.com/dafny-lang/dafny-codegen/backend"
	"github.com/dafny-lang/dafny-codegen/emit"
	"github.com/dafny-lang/dafny-codegen/internal/contract"
	"github.com/dafny-lang/dafny-codegen/rir"
)

// LowerDatatype implements §4.1's datatype lowering: a record datatype
// (exactly one constructor) collapses to a single product type; any other
// inductive or co-inductive datatype becomes a sealed base plus one variant
// per constructor, with the variant responsible for its own is_ predicate
// and named destructors.
func LowerDatatype(b backend.Backend, w emit.Writer, d *rir.Datatype) {
	contract.Assertf(len(d.Constructors) >= 1, "datatype %s has zero constructors", d.Name)
	if d.IsRecord() {
		// A record collapses to a single product type: there is no sealed
		// base to distinguish, so the base declaration *is* the product.
		b.DeclareDatatypeConstructor(w, d, d.Constructors[0])
		return
	}
	base := b.DeclareDatatypeBase(w, d)
	for _, c := range d.Constructors {
		b.DeclareDatatypeConstructor(base, d, c)
	}
}

// WrapCoinductiveConstructorArgs applies the lazy-evaluation wrapper (§4.1)
// to a co-inductive constructor's arguments when the active backend lacks
// native co-datatype support. It is a no-op — and must stay a no-op — for
// any backend whose capability bit says otherwise.
func WrapCoinductiveConstructorArgs(b backend.Backend, d *rir.Datatype, args []rir.Expr) []rir.Expr {
	if d.Shape != rir.CoInductive || b.Capabilities().SupportsCoDatatypesNatively {
		return args
	}
	out := make([]rir.Expr, len(args))
	for i, a := range args {
		out[i] = &rir.ThunkExpr{ExprBase: rir.ExprBase{Type: a.ResolvedType(), Token: a.Tok()}, Inner: a}
	}
	return out
}

// ForceCoinductiveFieldAccess wraps a field access on a co-inductive
// datatype value in ForceExpr when the backend needs explicit forcing
// (§4.1 "observing a field forces the thunk exactly once").
func ForceCoinductiveFieldAccess(b backend.Backend, d *rir.Datatype, access rir.Expr) rir.Expr {
	if d.Shape != rir.CoInductive || b.Capabilities().SupportsCoDatatypesNatively {
		return access
	}
	return &rir.ForceExpr{ExprBase: rir.ExprBase{Type: access.ResolvedType(), Token: access.Tok()}, Thunk: access}
}
