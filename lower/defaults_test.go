package lower

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafny-lang/dafny-codegen/rir"
)

func TestDefaultValuePrimitives(t *testing.T) {
	prog := &rir.Program{}

	b := DefaultValue(prog, rir.BoolType{}).(*rir.Literal)
	assert.Equal(t, false, b.Value)

	c := DefaultValue(prog, rir.CharType{}).(*rir.Literal)
	assert.Equal(t, 'D', c.Value)

	i := DefaultValue(prog, rir.IntType{}).(*rir.Literal)
	assert.Equal(t, big.NewInt(0).String(), i.Value.(*big.Int).String())

	coll := DefaultValue(prog, rir.CollectionType{Kind: rir.SeqKind, Element: rir.IntType{}}).(*rir.CollectionDisplay)
	assert.Empty(t, coll.Elements)
}

func TestDefaultValueNewtypeDelegatesToBase(t *testing.T) {
	nt := &rir.Newtype{DeclBase: rir.DeclBase{Name: "Age"}, Base: rir.IntType{}}
	prog := &rir.Program{Decls: []rir.TopLevelDecl{nt}}
	nt.Self = rir.DeclRef{Index: 0, Name: "Age"}

	got := DefaultValue(prog, rir.UserDefinedType{Decl: rir.DeclRef{Index: 0, Name: "Age"}}).(*rir.Literal)
	assert.Equal(t, rir.IntLiteral, got.Kind)
}

func TestDefaultValueSubsetTypeUsesWitness(t *testing.T) {
	witness := &rir.IdentExpr{Name: "w"}
	st := &rir.SubsetType{DeclBase: rir.DeclBase{Name: "Pos"}, Base: rir.IntType{}, Witness: witness}
	prog := &rir.Program{Decls: []rir.TopLevelDecl{st}}

	got := DefaultValue(prog, rir.UserDefinedType{Decl: rir.DeclRef{Index: 0, Name: "Pos"}})
	assert.Same(t, witness, got)
}

func TestDefaultValueDatatypeUsesDefaultConstructorAndDropsGhostFormals(t *testing.T) {
	dt := &rir.Datatype{
		DeclBase: rir.DeclBase{Name: "List"},
		Constructors: []*rir.Constructor{
			{Name: "Nil"},
			{Name: "Cons", Formals: []rir.Formal{
				{Name: "head", Type: rir.IntType{}},
				{Name: "proof", Type: rir.BoolType{}, Ghost: true},
			}},
		},
		DefaultConstructor: 1,
	}
	dt.Self = rir.DeclRef{Index: 0, Name: "List"}
	prog := &rir.Program{Decls: []rir.TopLevelDecl{dt}}

	got := DefaultValue(prog, rir.UserDefinedType{Decl: dt.Self}).(*rir.ApplyExpr)
	assert.Equal(t, "Cons", got.Member)
	require.Len(t, got.Args, 1)
}
