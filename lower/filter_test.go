package lower

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafny-lang/dafny-codegen/backend"
	"github.com/dafny-lang/dafny-codegen/rir"
)

func noWitness(rir.DeclRef) bool { return false }

func TestKeepMemberDropsGhostMember(t *testing.T) {
	m := &rir.Field{MemberBase: rir.MemberBase{Name: "g", Ghost: true}}
	prog := &rir.Program{}
	keep, reason, diags := keepMember(prog, false, m, &recordingBackend{}, "test", noWitness)
	assert.False(t, keep)
	assert.Contains(t, reason, "ghost")
	assert.Empty(t, diags)
}

func TestKeepMemberDropsMemberOfGhostEnclosingDecl(t *testing.T) {
	m := &rir.Field{MemberBase: rir.MemberBase{Name: "f"}}
	prog := &rir.Program{}
	keep, reason, diags := keepMember(prog, true, m, &recordingBackend{}, "test", noWitness)
	assert.False(t, keep)
	assert.Contains(t, reason, "ghost")
	assert.Empty(t, diags)
}

func TestKeepMemberDropsMethodWithOnlyGhostOutFormals(t *testing.T) {
	m := &rir.Method{
		MemberBase: rir.MemberBase{Name: "M"},
		OutFormals: []rir.Formal{{Name: "r", Type: rir.BoolType{}, Ghost: true}},
	}
	prog := &rir.Program{}
	keep, reason, diags := keepMember(prog, false, m, &recordingBackend{}, "test", noWitness)
	assert.False(t, keep)
	assert.Contains(t, reason, "out-parameters")
	assert.Empty(t, diags)
}

// A set<SomeTrait> formal is rejected, with a diagnostic, when the active
// backend's capability bits don't set SupportsTraitCollections — the path
// §4.5's collection-element rule and numeric.ElementAllowed actually drive.
func TestKeepMemberRejectsTraitCollectionElementWithoutCapability(t *testing.T) {
	trait := &rir.Trait{DeclBase: rir.DeclBase{Name: "Shape"}}
	trait.Self = rir.DeclRef{Index: 0, Name: "Shape"}
	prog := &rir.Program{Decls: []rir.TopLevelDecl{trait}}

	m := &rir.Method{
		MemberBase: rir.MemberBase{Name: "Take"},
		Formals: []rir.Formal{
			{Name: "shapes", Type: rir.CollectionType{Kind: rir.SetKind, Element: rir.UserDefinedType{Decl: trait.Self}}},
		},
	}

	noTraitCollections := &recordingBackend{caps: backend.Capabilities{SupportsTraitCollections: false}}
	keep, reason, diags := keepMember(prog, false, m, noTraitCollections, "gosys", noWitness)
	if !assert.False(t, keep) || !assert.Contains(t, reason, "trait") {
		t.Logf("keepMember diagnostics: %s", spew.Sdump(diags))
	}
	require.Len(t, diags, 1)
	assert.True(t, diags.HasErrors())
	assert.Contains(t, diags[0].Detail, "set<Shape>")
}

// The same signature must be kept when the backend declares
// SupportsTraitCollections.
func TestKeepMemberAllowsTraitCollectionElementWithCapability(t *testing.T) {
	trait := &rir.Trait{DeclBase: rir.DeclBase{Name: "Shape"}}
	trait.Self = rir.DeclRef{Index: 0, Name: "Shape"}
	prog := &rir.Program{Decls: []rir.TopLevelDecl{trait}}

	m := &rir.Method{
		MemberBase: rir.MemberBase{Name: "Take"},
		Formals: []rir.Formal{
			{Name: "shapes", Type: rir.CollectionType{Kind: rir.SetKind, Element: rir.UserDefinedType{Decl: trait.Self}}},
		},
	}

	withTraitCollections := &recordingBackend{caps: backend.Capabilities{SupportsTraitCollections: true}}
	keep, _, diags := keepMember(prog, false, m, withTraitCollections, "dynamic", noWitness)
	assert.True(t, keep)
	assert.Empty(t, diags)
}

// A collection over a plain (non-trait) element type is never rejected,
// regardless of the capability bit.
func TestKeepMemberAllowsNonTraitCollectionElement(t *testing.T) {
	prog := &rir.Program{}
	m := &rir.Method{
		MemberBase: rir.MemberBase{Name: "Take"},
		Formals: []rir.Formal{
			{Name: "xs", Type: rir.CollectionType{Kind: rir.SeqKind, Element: rir.IntType{}}},
		},
	}
	keep, _, diags := keepMember(prog, false, m, &recordingBackend{}, "jvm", noWitness)
	assert.True(t, keep)
	assert.Empty(t, diags)
}
