package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafny-lang/dafny-codegen/backend"
	"github.com/dafny-lang/dafny-codegen/emit"
	"github.com/dafny-lang/dafny-codegen/rir"
)

// orderBackend implements backend.Backend, recording the sequence of
// structural calls Compile makes so the driver's traversal order can be
// asserted without needing a real emission substrate. Every method returns
// its input writer unchanged (a zero-value emit.Writer suffices since
// nothing here ever calls a real Writer method on it).
type orderBackend struct {
	events []string
}

func (o *orderBackend) log(s string) { o.events = append(o.events, s) }

func (o *orderBackend) Capabilities() backend.Capabilities { return backend.Capabilities{} }
func (o *orderBackend) Tag() string                        { return "test" }
func (o *orderBackend) CreateFile(path string) emit.Writer {
	o.log("file:" + path)
	return emit.Writer{}
}
func (o *orderBackend) OpenModule(w emit.Writer, name string) emit.Writer {
	o.log("module:" + name)
	return w
}
func (o *orderBackend) OpenClass(w emit.Writer, name string, implements []string, isDefaultClass bool) emit.Writer {
	o.log("class:" + name)
	return w
}
func (o *orderBackend) OpenMember(w emit.Writer, sig backend.MemberSignature) emit.Writer {
	o.log("member:" + sig.Name)
	return w
}
func (o *orderBackend) Close(w emit.Writer) {}
func (o *orderBackend) DeclareField(w emit.Writer, name string, t rir.Type, static, mutable, hasInit bool) emit.Writer {
	o.log("field:" + name)
	return w
}
func (o *orderBackend) DeclareLocal(w emit.Writer, name string, t rir.Type) string  { return name }
func (o *orderBackend) DeclareFormal(w emit.Writer, name string, t rir.Type) string { return name }
func (o *orderBackend) DeclareDatatypeBase(w emit.Writer, d *rir.Datatype) emit.Writer {
	return w
}
func (o *orderBackend) DeclareDatatypeConstructor(w emit.Writer, d *rir.Datatype, c *rir.Constructor) {
}
func (o *orderBackend) DeclareNewtype(w emit.Writer, n *rir.Newtype)       {}
func (o *orderBackend) DeclareSubsetType(w emit.Writer, s *rir.SubsetType) {}
func (o *orderBackend) EmitStatement(w emit.Writer, s rir.Stmt)            {}
func (o *orderBackend) EmitExpression(w emit.Writer, e rir.Expr)           {}
func (o *orderBackend) TargetTypeName(t rir.Type) string                  { return "" }
func (o *orderBackend) RequiresCastAfterArithmetic(t rir.Type) bool        { return false }
func (o *orderBackend) IsReservedWord(name string) bool                   { return false }
func (o *orderBackend) Sanitize(name string) string                       { return name }
func (o *orderBackend) Files() (map[string][]byte, error)                 { return nil, nil }
func (o *orderBackend) PostEmit(outputDir string, compileLevel int) (string, error) {
	return "", nil
}

func TestCompileWalksModulesInDependencyOrder(t *testing.T) {
	a := &rir.Module{Name: "A"}
	b := &rir.Module{Name: "B", Imports: []*rir.Module{a}}
	// Discovery order is deliberately B-then-A; DependencyOrder must still
	// place A first since B imports it.
	prog := &rir.Program{Modules: []*rir.Module{b, a}}

	ob := &orderBackend{}
	_, diags, err := Compile(prog, Options{Target: "test"}, ob)
	require.NoError(t, err)
	assert.Empty(t, diags)

	require.Contains(t, ob.events, "file:A")
	require.Contains(t, ob.events, "file:B")
	aIdx := indexOf(ob.events, "file:A")
	bIdx := indexOf(ob.events, "file:B")
	assert.Less(t, aIdx, bIdx, "module A must be lowered before module B")
}

func TestCompileLowersDefaultClassBeforeOtherDeclsInAModule(t *testing.T) {
	m := &rir.Module{Name: "M"}
	defaultClass := &rir.Class{
		DeclBase:       rir.DeclBase{Name: "_default", Module: m},
		IsDefaultClass: true,
	}
	other := &rir.Class{DeclBase: rir.DeclBase{Name: "Other", Module: m}}
	m.Decls = []rir.TopLevelDecl{other, defaultClass} // declared in reverse order

	prog := &rir.Program{Modules: []*rir.Module{m}, Decls: []rir.TopLevelDecl{other, defaultClass}}

	ob := &orderBackend{}
	_, _, err := Compile(prog, Options{Target: "test"}, ob)
	require.NoError(t, err)

	defIdx := indexOf(ob.events, "class:_default")
	otherIdx := indexOf(ob.events, "class:Other")
	require.NotEqual(t, -1, defIdx)
	require.NotEqual(t, -1, otherIdx)
	assert.Less(t, defIdx, otherIdx, "the default class must be lowered before other declarations")
}

func TestCompileOrdersMembersFieldsFirstThenStaticBeforeInstance(t *testing.T) {
	m := &rir.Module{Name: "M"}
	instanceMethod := &rir.Method{MemberBase: rir.MemberBase{Name: "Inst", Static: false}}
	staticMethod := &rir.Method{MemberBase: rir.MemberBase{Name: "Stat", Static: true}}
	field := &rir.Field{MemberBase: rir.MemberBase{Name: "F"}, Type: rir.IntType{}}
	class := &rir.Class{
		DeclBase:       rir.DeclBase{Name: "C", Module: m},
		IsDefaultClass: true,
		Members:        []rir.Member{instanceMethod, staticMethod, field},
	}
	m.Decls = []rir.TopLevelDecl{class}
	prog := &rir.Program{Modules: []*rir.Module{m}, Decls: []rir.TopLevelDecl{class}}

	ob := &orderBackend{}
	_, _, err := Compile(prog, Options{Target: "test"}, ob)
	require.NoError(t, err)

	fieldIdx := indexOf(ob.events, "field:F")
	statIdx := indexOf(ob.events, "member:Stat")
	instIdx := indexOf(ob.events, "member:Inst")
	require.True(t, fieldIdx >= 0 && statIdx >= 0 && instIdx >= 0)
	assert.Less(t, fieldIdx, statIdx)
	assert.Less(t, statIdx, instIdx, "static members lower before instance members")
}

func TestCompileDropsGhostMembersEntirely(t *testing.T) {
	m := &rir.Module{Name: "M"}
	ghostMethod := &rir.Method{MemberBase: rir.MemberBase{Name: "GhostOnly", Ghost: true}}
	class := &rir.Class{
		DeclBase:       rir.DeclBase{Name: "C", Module: m},
		IsDefaultClass: true,
		Members:        []rir.Member{ghostMethod},
	}
	m.Decls = []rir.TopLevelDecl{class}
	prog := &rir.Program{Modules: []*rir.Module{m}, Decls: []rir.TopLevelDecl{class}}

	ob := &orderBackend{}
	_, _, err := Compile(prog, Options{Target: "test"}, ob)
	require.NoError(t, err)
	assert.NotContains(t, ob.events, "member:GhostOnly")
}

func indexOf(haystack []string, needle string) int {
	for i, s := range haystack {
		if s == needle {
			return i
		}
	}
	return -1
}
