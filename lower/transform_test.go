package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafny-lang/dafny-codegen/backend"
	"github.com/dafny-lang/dafny-codegen/rir"
)

func TestPrepareBodyDropsAssertAndLemmaCall(t *testing.T) {
	prog := &rir.Program{}
	body := []rir.Stmt{
		&rir.AssertStmt{Cond: &rir.IdentExpr{Name: "x"}},
		&rir.LemmaCallStmt{Call: &rir.ApplyExpr{}},
		&rir.ReturnStmt{},
	}
	out := PrepareBody(prog, &recordingBackend{}, body)
	require.Len(t, out, 1)
	_, ok := out[0].(*rir.ReturnStmt)
	assert.True(t, ok)
}

func TestPrepareBodyCollapsesGhostResolvedMatchStmtToItsArm(t *testing.T) {
	prog := &rir.Program{}
	kept := []rir.Stmt{&rir.ReturnStmt{Values: []rir.Expr{&rir.IdentExpr{Name: "kept"}}}}
	dropped := []rir.Stmt{&rir.ReturnStmt{Values: []rir.Expr{&rir.IdentExpr{Name: "dropped"}}}}
	body := []rir.Stmt{
		&rir.MatchStmt{
			Scrutinee:        &rir.IdentExpr{Name: "s"},
			ScrutineeIsGhost: true,
			Arms: []rir.MatchArm{
				{IsGhostArm: false},
				{IsGhostArm: true},
			},
			ArmBodies: [][]rir.Stmt{dropped, kept},
		},
	}
	out := PrepareBody(prog, &recordingBackend{}, body)
	require.Len(t, out, 1)
	ret := out[0].(*rir.ReturnStmt)
	ident := ret.Values[0].(*rir.IdentExpr)
	assert.Equal(t, "kept", ident.Name)
}

func TestPrepareBodyKeepsNonGhostMatchAllArms(t *testing.T) {
	prog := &rir.Program{}
	body := []rir.Stmt{
		&rir.MatchStmt{
			Scrutinee:        &rir.IdentExpr{Name: "s"},
			ScrutineeIsGhost: false,
			Arms:             []rir.MatchArm{{}, {}},
			ArmBodies:        [][]rir.Stmt{{&rir.ReturnStmt{}}, {&rir.ReturnStmt{}}},
		},
	}
	out := PrepareBody(prog, &recordingBackend{}, body)
	require.Len(t, out, 1)
	m := out[0].(*rir.MatchStmt)
	assert.Len(t, m.ArmBodies, 2)
}

// A call to a Method with a ghost formal must drop that argument entirely:
// the method's own emitted signature has already erased the ghost formal
// (EraseFormals in lowerMethod), so the call's arity has to match.
func TestPrepareBodyDropsGhostArgForMethodCallInNestedApply(t *testing.T) {
	method := &rir.Method{
		MemberBase: rir.MemberBase{Name: "F"},
		Formals: []rir.Formal{
			{Name: "a", Type: rir.IntType{}},
			{Name: "proof", Type: rir.BoolType{}, Ghost: true},
		},
	}
	class := &rir.Class{DeclBase: rir.DeclBase{Name: "C"}, Members: []rir.Member{method}}
	class.Self = rir.DeclRef{Index: 0, Name: "C"}
	prog := &rir.Program{Decls: []rir.TopLevelDecl{class}}

	call := &rir.ApplyExpr{
		Callee: class.Self,
		Member: "F",
		Args: []rir.Expr{
			&rir.IdentExpr{Name: "x"},
			&rir.IdentExpr{Name: "y"},
		},
	}
	body := []rir.Stmt{&rir.CallStmt{Call: call}}

	out := PrepareBody(prog, &recordingBackend{}, body)
	require.Len(t, out, 1)
	got := out[0].(*rir.CallStmt).Call
	require.Len(t, got.Args, 1, "the ghost argument must be dropped, not defaulted, to match the method's erased signature")
	assert.Equal(t, "x", got.Args[0].(*rir.IdentExpr).Name)
}

// A call to a Function with a ghost formal keeps the full argument list —
// the function's own signature is never erased (§4.4 bullet 3) — but the
// ghost position is rewritten to the formal's default value.
func TestPrepareBodyDefaultsGhostArgForFunctionCallInNestedApply(t *testing.T) {
	fn := &rir.Function{
		MemberBase: rir.MemberBase{Name: "F"},
		Formals: []rir.Formal{
			{Name: "a", Type: rir.IntType{}},
			{Name: "proof", Type: rir.BoolType{}, Ghost: true},
		},
		Result: rir.IntType{},
	}
	class := &rir.Class{DeclBase: rir.DeclBase{Name: "C"}, Members: []rir.Member{fn}}
	class.Self = rir.DeclRef{Index: 0, Name: "C"}
	prog := &rir.Program{Decls: []rir.TopLevelDecl{class}}

	call := &rir.ApplyExpr{
		Callee: class.Self,
		Member: "F",
		Args: []rir.Expr{
			&rir.IdentExpr{Name: "x"},
			&rir.IdentExpr{Name: "y"},
		},
	}
	body := []rir.Stmt{&rir.CallStmt{Call: call}}

	out := PrepareBody(prog, &recordingBackend{}, body)
	require.Len(t, out, 1)
	got := out[0].(*rir.CallStmt).Call
	require.Len(t, got.Args, 2, "a function call keeps its full arity")
	assert.Equal(t, "x", got.Args[0].(*rir.IdentExpr).Name)
	_, stillIdent := got.Args[1].(*rir.IdentExpr)
	assert.False(t, stillIdent, "ghost argument should be rewritten to a default-value literal")
}

// A constructor call on a co-inductive datatype must have its arguments
// thunked when the backend lacks native co-datatype support (§4.1), wired
// through prepareExpr's ApplyExpr case rather than left as dead code only
// LowerDatatype's own unit tests exercise.
func TestPrepareExprThunksCoinductiveConstructorCall(t *testing.T) {
	dt := &rir.Datatype{
		DeclBase:     rir.DeclBase{Name: "Stream"},
		Shape:        rir.CoInductive,
		Constructors: []*rir.Constructor{{Name: "Cons"}},
	}
	dt.Self = rir.DeclRef{Index: 0, Name: "Stream"}
	prog := &rir.Program{Decls: []rir.TopLevelDecl{dt}}

	call := &rir.ApplyExpr{
		Callee: dt.Self,
		Member: "Cons",
		Args:   []rir.Expr{&rir.IdentExpr{Name: "head"}, &rir.IdentExpr{Name: "tail"}},
	}

	out := prepareExpr(prog, &recordingBackend{}, call)
	got := out.(*rir.ApplyExpr)
	for _, a := range got.Args {
		_, wrapped := a.(*rir.ThunkExpr)
		assert.True(t, wrapped, "co-inductive constructor arguments must be thunked")
	}
}

// The same call against a backend with native co-datatype support must
// leave the arguments untouched.
func TestPrepareExprLeavesCoinductiveConstructorCallAloneWhenBackendSupportsIt(t *testing.T) {
	dt := &rir.Datatype{
		DeclBase:     rir.DeclBase{Name: "Stream"},
		Shape:        rir.CoInductive,
		Constructors: []*rir.Constructor{{Name: "Cons"}},
	}
	dt.Self = rir.DeclRef{Index: 0, Name: "Stream"}
	prog := &rir.Program{Decls: []rir.TopLevelDecl{dt}}

	call := &rir.ApplyExpr{
		Callee: dt.Self,
		Member: "Cons",
		Args:   []rir.Expr{&rir.IdentExpr{Name: "head"}},
	}

	native := &recordingBackend{caps: backend.Capabilities{SupportsCoDatatypesNatively: true}}
	out := prepareExpr(prog, native, call)
	got := out.(*rir.ApplyExpr)
	_, stillIdent := got.Args[0].(*rir.IdentExpr)
	assert.True(t, stillIdent)
}

// A field access on a co-inductive datatype must be wrapped in a forcing
// read when the backend lacks native co-datatype support.
func TestPrepareExprForcesCoinductiveFieldAccess(t *testing.T) {
	dt := &rir.Datatype{
		DeclBase: rir.DeclBase{Name: "Stream"},
		Shape:    rir.CoInductive,
	}
	dt.Self = rir.DeclRef{Index: 0, Name: "Stream"}
	prog := &rir.Program{Decls: []rir.TopLevelDecl{dt}}

	access := &rir.FieldAccessExpr{
		Owner:     dt.Self,
		FieldName: "head",
		Receiver:  &rir.IdentExpr{Name: "s"},
	}

	out := prepareExpr(prog, &recordingBackend{}, access)
	_, forced := out.(*rir.ForceExpr)
	assert.True(t, forced, "a co-inductive field access must be forced")
}

func TestPrepareBodyRecursesIntoIfAndLoop(t *testing.T) {
	prog := &rir.Program{}
	body := []rir.Stmt{
		&rir.IfStmt{
			Cond: &rir.IdentExpr{Name: "c"},
			Then: []rir.Stmt{&rir.AssertStmt{}},
			Else: []rir.Stmt{&rir.ReturnStmt{}},
		},
		&rir.LoopStmt{
			Kind: rir.WhileLoop,
			Cond: &rir.IdentExpr{Name: "c"},
			Body: []rir.Stmt{&rir.AssertStmt{}, &rir.ReturnStmt{}},
		},
	}
	out := PrepareBody(prog, &recordingBackend{}, body)
	require.Len(t, out, 2)
	ifs := out[0].(*rir.IfStmt)
	assert.Empty(t, ifs.Then)
	loop := out[1].(*rir.LoopStmt)
	require.Len(t, loop.Body, 1)
}
