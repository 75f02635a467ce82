package shared

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafny-lang/dafny-codegen/backend"
	"github.com/dafny-lang/dafny-codegen/rir"
)

func testSyntax() Syntax {
	return Syntax{
		Tag:            "test",
		FileExt:        ".t",
		IndentUnit:     "  ",
		Semi:           ";",
		ClassKeyword:   "class",
		BlockOpenText:  " {",
		BlockCloseText: "}",
		True:           "true",
		False:          "false",
		Null:           "null",
		BinOp:          DefaultBinOps(),
		UnOp:           DefaultUnOps(),
	}
}

func newTestGeneric() *Generic {
	return NewGeneric(testSyntax(), backend.Capabilities{}, backend.NewReserved([]string{"class"}, "_"))
}

func TestEmitExpressionLiteralsByKind(t *testing.T) {
	g := newTestGeneric()
	w := g.CreateFile("out")

	g.EmitExpression(w, &rir.Literal{Kind: rir.BoolLiteral, Value: true})
	w.Write(" ")
	g.EmitExpression(w, &rir.Literal{Kind: rir.IntLiteral, Value: big.NewInt(42)})
	w.Write(" ")
	g.EmitExpression(w, &rir.Literal{Kind: rir.StringLiteral, Value: "hi"})
	w.Write(" ")
	g.EmitExpression(w, &rir.Literal{Kind: rir.StringLiteral, Value: nil})
	w.Close()

	files, err := g.Files()
	require.NoError(t, err)
	assert.Equal(t, `true 42 "hi" null`, string(files["out.t"]))
}

func TestEmitExpressionBinaryUsesEuclideanHelpersForDivMod(t *testing.T) {
	g := newTestGeneric()
	w := g.CreateFile("out")
	g.EmitExpression(w, &rir.BinaryExpr{
		Op:    rir.OpDiv,
		Left:  &rir.Literal{Kind: rir.IntLiteral, Value: big.NewInt(7)},
		Right: &rir.Literal{Kind: rir.IntLiteral, Value: big.NewInt(3)},
	})
	w.Close()
	files, err := g.Files()
	require.NoError(t, err)
	assert.Equal(t, "ediv(7, 3)", string(files["out.t"]))
}

func TestEmitExpressionBinaryQualifiesRuntimeHelperWhenSyntaxProvidesOne(t *testing.T) {
	syntax := testSyntax()
	syntax.RuntimeHelperName = func(logical string) string { return "dafnyrt." + logical }
	g := NewGeneric(syntax, backend.Capabilities{}, backend.NewReserved([]string{"class"}, "_"))
	w := g.CreateFile("out")
	g.EmitExpression(w, &rir.BinaryExpr{
		Op:    rir.OpMod,
		Left:  &rir.Literal{Kind: rir.IntLiteral, Value: big.NewInt(7)},
		Right: &rir.Literal{Kind: rir.IntLiteral, Value: big.NewInt(3)},
	})
	w.Close()
	files, err := g.Files()
	require.NoError(t, err)
	assert.Equal(t, "dafnyrt.emod(7, 3)", string(files["out.t"]))
}

func TestEmitExpressionThunkAndForceQualifyWhenSyntaxProvidesOne(t *testing.T) {
	syntax := testSyntax()
	syntax.RuntimeHelperName = func(logical string) string {
		if logical == "thunk" {
			return "dafnyrt.MakeThunk"
		}
		return "dafnyrt." + logical
	}
	g := NewGeneric(syntax, backend.Capabilities{}, backend.NewReserved([]string{"class"}, "_"))
	w := g.CreateFile("out")
	g.EmitExpression(w, &rir.ThunkExpr{Inner: &rir.Literal{Kind: rir.IntLiteral, Value: big.NewInt(1)}})
	w.Write(" ")
	g.EmitExpression(w, &rir.ForceExpr{Thunk: &rir.IdentExpr{Name: "t"}})
	w.Close()
	files, err := g.Files()
	require.NoError(t, err)
	assert.Equal(t, "dafnyrt.MakeThunk(() => 1) dafnyrt.force(t)", string(files["out.t"]))
}

func TestEmitExpressionBinaryPlainOperatorWraps(t *testing.T) {
	g := newTestGeneric()
	w := g.CreateFile("out")
	g.EmitExpression(w, &rir.BinaryExpr{
		Op:    rir.OpAdd,
		Left:  &rir.Literal{Kind: rir.IntLiteral, Value: big.NewInt(1)},
		Right: &rir.Literal{Kind: rir.IntLiteral, Value: big.NewInt(2)},
	})
	w.Close()
	files, err := g.Files()
	require.NoError(t, err)
	assert.Equal(t, "(1 + 2)", string(files["out.t"]))
}

func TestEmitExpressionApplySanitizesMemberNameOnly(t *testing.T) {
	g := newTestGeneric()
	w := g.CreateFile("out")
	g.EmitExpression(w, &rir.ApplyExpr{
		Callee: rir.DeclRef{Name: "Owner"},
		Member: "class",
		Args:   []rir.Expr{&rir.Literal{Kind: rir.IntLiteral, Value: big.NewInt(1)}},
	})
	w.Close()
	files, err := g.Files()
	require.NoError(t, err)
	assert.Equal(t, "Owner.class_(1)", string(files["out.t"]))
}

func TestSanitizeLeavesNonReservedNamesAlone(t *testing.T) {
	g := newTestGeneric()
	assert.Equal(t, "widget", g.Sanitize("widget"))
	assert.NotEqual(t, "class", g.Sanitize("class"))
}
