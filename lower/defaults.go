package lower

import (
	"math/big"

	"github.com/dafny-lang/dafny-codegen/rir"
)

// DefaultValue computes the canonical default expression for t (§4.1).
// Recursion terminates because the resolver forbids non-founded default
// chains (a datatype cannot be its own only way to construct a default);
// this function trusts that invariant rather than re-checking it.
func DefaultValue(prog *rir.Program, t rir.Type) rir.Expr {
	base := rir.ExprBase{Type: t}
	switch t := t.(type) {
	case rir.BoolType:
		return &rir.Literal{ExprBase: base, Kind: rir.BoolLiteral, Value: false}
	case rir.CharType:
		return &rir.Literal{ExprBase: base, Kind: rir.CharLiteral, Value: 'D'}
	case rir.IntType:
		return &rir.Literal{ExprBase: base, Kind: rir.IntLiteral, Value: big.NewInt(0)}
	case rir.RealType:
		return &rir.Literal{ExprBase: base, Kind: rir.RealLiteral, Value: big.NewFloat(0)}
	case rir.BitvectorType:
		return &rir.Literal{ExprBase: base, Kind: rir.BitvectorLiteral, Value: big.NewInt(0)}
	case rir.CollectionType:
		return &rir.CollectionDisplay{ExprBase: base, Kind: t.Kind}
	case rir.ArrayType:
		// An empty/zero-length array of the default rank; backends that
		// need a non-empty allocation at this type still only reach this
		// path for a Field/Constant whose declared length is itself 0,
		// since non-zero-length arrays require an explicit size expression
		// the resolver always supplies.
		return &rir.CollectionDisplay{ExprBase: base, Kind: rir.SeqKind}
	case rir.UserDefinedType:
		return defaultValueForUserDefined(prog, t)
	case rir.ArrowType:
		// A language-appropriate null/unit: represented as a literal nil
		// marker the backend recognizes by the Arrow-typed ExprBase.Type.
		return &rir.Literal{ExprBase: base, Kind: rir.StringLiteral, Value: nil}
	case rir.TypeParameterType:
		internalf("DefaultValue", t.Name, "unresolved type parameter reached default-value computation")
	case rir.TypeProxy:
		internalf("DefaultValue", "<type proxy>", "unresolved type proxy reached default-value computation (§3)")
	}
	internalf("DefaultValue", "<unknown>", "unhandled type variant %T", t)
	return nil
}

func defaultValueForUserDefined(prog *rir.Program, t rir.UserDefinedType) rir.Expr {
	decl := prog.Decls[t.Decl.Index]
	switch d := decl.(type) {
	case *rir.Datatype:
		return defaultValueForDatatype(prog, d, t)
	case *rir.Newtype:
		return DefaultValue(prog, d.Base)
	case *rir.SubsetType:
		if d.Witness != nil {
			return d.Witness
		}
		internalf("DefaultValue", d.Name, "subset type has no witness; the compilability filter should have dropped it")
	case *rir.Class, *rir.Trait:
		// A language-appropriate null/unit value for reference types.
		return &rir.Literal{ExprBase: rir.ExprBase{Type: t}, Kind: rir.StringLiteral, Value: nil}
	}
	internalf("DefaultValue", t.Decl.Name, "default value requested for non-defaultable declaration kind")
	return nil
}

func defaultValueForDatatype(prog *rir.Program, d *rir.Datatype, t rir.UserDefinedType) rir.Expr {
	ctor := d.Constructors[d.DefaultConstructor]
	args := make([]rir.Expr, 0, len(ctor.Formals))
	for _, f := range ctor.Formals {
		if f.Ghost {
			continue
		}
		args = append(args, DefaultValue(prog, f.Type))
	}
	return &rir.ApplyExpr{
		ExprBase: rir.ExprBase{Type: t, Token: ctor.Token},
		Callee:   d.Ref(),
		Member:   ctor.Name,
		Args:     args,
	}
}
