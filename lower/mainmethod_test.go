package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafny-lang/dafny-codegen/rir"
)

func staticMainMethod(name string) *rir.Method {
	return &rir.Method{
		MemberBase:      rir.MemberBase{Name: name, Static: true},
		IsMainCandidate: true,
	}
}

func TestFindMainWithNoCandidatesReturnsNilWithoutError(t *testing.T) {
	prog := &rir.Program{Decls: []rir.TopLevelDecl{
		&rir.Class{DeclBase: rir.DeclBase{Name: "C"}},
	}}
	main, diags, err := FindMain(prog, "")
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Nil(t, main)
}

func TestFindMainWithSingleCandidateSucceeds(t *testing.T) {
	m := staticMainMethod("Main")
	prog := &rir.Program{Decls: []rir.TopLevelDecl{
		&rir.Class{DeclBase: rir.DeclBase{Name: "C"}, Members: []rir.Member{m}},
	}}
	main, diags, err := FindMain(prog, "")
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.NotNil(t, main)
	assert.Same(t, m, main.Method)
}

func TestFindMainWithMultipleCandidatesReportsEveryOne(t *testing.T) {
	m1 := staticMainMethod("Main")
	m2 := staticMainMethod("Main")
	prog := &rir.Program{Decls: []rir.TopLevelDecl{
		&rir.Class{DeclBase: rir.DeclBase{Name: "A"}, Members: []rir.Member{m1}},
		&rir.Class{DeclBase: rir.DeclBase{Name: "B"}, Members: []rir.Member{m2}},
	}}
	main, diags, err := FindMain(prog, "")
	assert.Error(t, err)
	assert.Nil(t, main)
	assert.Len(t, diags, 2)
}

func TestFindMainSkipsGhostAndNonStaticWithoutInstantiableClass(t *testing.T) {
	ghostMain := &rir.Method{
		MemberBase:      rir.MemberBase{Name: "Main", Static: true, Ghost: true},
		IsMainCandidate: true,
	}
	instanceMain := &rir.Method{
		MemberBase:      rir.MemberBase{Name: "Main", Static: false},
		IsMainCandidate: true,
	}
	prog := &rir.Program{Decls: []rir.TopLevelDecl{
		&rir.Class{DeclBase: rir.DeclBase{Name: "A"}, Members: []rir.Member{ghostMain}},
		&rir.Class{DeclBase: rir.DeclBase{Name: "B", Ghost: false}, Members: []rir.Member{instanceMain}},
	}}
	main, diags, err := FindMain(prog, "")
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Nil(t, main)
}

func TestFindMainAllowsInstanceMethodOnDefaultClass(t *testing.T) {
	m := &rir.Method{
		MemberBase:      rir.MemberBase{Name: "Main", Static: false},
		IsMainCandidate: true,
	}
	prog := &rir.Program{Decls: []rir.TopLevelDecl{
		&rir.Class{DeclBase: rir.DeclBase{Name: "_default"}, IsDefaultClass: true, Members: []rir.Member{m}},
	}}
	main, diags, err := FindMain(prog, "")
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.NotNil(t, main)
	assert.Same(t, m, main.Method)
}

func TestFindMainRejectsCandidateWithNonGhostFormals(t *testing.T) {
	m := &rir.Method{
		MemberBase:      rir.MemberBase{Name: "Main", Static: true},
		Formals:         []rir.Formal{{Name: "argv", Type: rir.IntType{}}},
		IsMainCandidate: true,
	}
	prog := &rir.Program{Decls: []rir.TopLevelDecl{
		&rir.Class{DeclBase: rir.DeclBase{Name: "C"}, Members: []rir.Member{m}},
	}}
	main, diags, err := FindMain(prog, "")
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Nil(t, main)
}

func TestFindMainWithOverrideSelectsByQualifiedName(t *testing.T) {
	m1 := staticMainMethod("Run")
	m2 := staticMainMethod("Run")
	prog := &rir.Program{Decls: []rir.TopLevelDecl{
		&rir.Class{DeclBase: rir.DeclBase{Name: "A"}, Members: []rir.Member{m1}},
		&rir.Class{DeclBase: rir.DeclBase{Name: "B"}, Members: []rir.Member{m2}},
	}}
	main, diags, err := FindMain(prog, "B.Run")
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.NotNil(t, main)
	assert.Same(t, m2, main.Method)
}

func TestFindMainWithOverrideNotFoundErrors(t *testing.T) {
	prog := &rir.Program{Decls: []rir.TopLevelDecl{
		&rir.Class{DeclBase: rir.DeclBase{Name: "A"}},
	}}
	main, diags, err := FindMain(prog, "NoSuch.Method")
	assert.Error(t, err)
	assert.Nil(t, main)
	assert.Len(t, diags, 1)
}
