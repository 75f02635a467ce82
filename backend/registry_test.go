package backend

import (
	"testing"

	"github.com/dafny-lang/dafny-codegen/emit"
	"github.com/dafny-lang/dafny-codegen/rir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct{ tag string }

func (f *fakeBackend) Capabilities() Capabilities                  { return Capabilities{} }
func (f *fakeBackend) Tag() string                                 { return f.tag }
func (f *fakeBackend) CreateFile(path string) emit.Writer          { return emit.Writer{} }
func (f *fakeBackend) OpenModule(w emit.Writer, name string) emit.Writer { return w }
func (f *fakeBackend) OpenClass(w emit.Writer, name string, implements []string, isDefaultClass bool) emit.Writer {
	return w
}
func (f *fakeBackend) OpenMember(w emit.Writer, sig MemberSignature) emit.Writer { return w }
func (f *fakeBackend) Close(w emit.Writer)                                      {}
func (f *fakeBackend) DeclareField(w emit.Writer, name string, t rir.Type, static, mutable, hasInit bool) emit.Writer {
	return w
}
func (f *fakeBackend) DeclareLocal(w emit.Writer, name string, t rir.Type) string  { return name }
func (f *fakeBackend) DeclareFormal(w emit.Writer, name string, t rir.Type) string { return name }
func (f *fakeBackend) DeclareDatatypeBase(w emit.Writer, d *rir.Datatype) emit.Writer {
	return w
}
func (f *fakeBackend) DeclareDatatypeConstructor(w emit.Writer, d *rir.Datatype, c *rir.Constructor) {}
func (f *fakeBackend) DeclareNewtype(w emit.Writer, n *rir.Newtype)                                  {}
func (f *fakeBackend) DeclareSubsetType(w emit.Writer, s *rir.SubsetType)                            {}
func (f *fakeBackend) EmitStatement(w emit.Writer, s rir.Stmt)                                       {}
func (f *fakeBackend) EmitExpression(w emit.Writer, e rir.Expr)                                      {}
func (f *fakeBackend) TargetTypeName(t rir.Type) string                                              { return "" }
func (f *fakeBackend) RequiresCastAfterArithmetic(t rir.Type) bool                                   { return false }
func (f *fakeBackend) IsReservedWord(name string) bool                                               { return false }
func (f *fakeBackend) Sanitize(name string) string                                                   { return name }
func (f *fakeBackend) Files() (map[string][]byte, error)                                             { return nil, nil }
func (f *fakeBackend) PostEmit(outputDir string, compileLevel int) (string, error)                   { return "", nil }

func TestRegisterAndLookupRoundTrip(t *testing.T) {
	Register("fake-test-target", func() Backend { return &fakeBackend{tag: "fake-test-target"} })

	b, err := Lookup("fake-test-target")
	require.NoError(t, err)
	assert.Equal(t, "fake-test-target", b.Tag())

	assert.Contains(t, Tags(), "fake-test-target")
}

func TestLookupUnknownTagErrors(t *testing.T) {
	_, err := Lookup("no-such-target-ever")
	assert.Error(t, err)
}

func TestLookupReturnsFreshInstancePerCall(t *testing.T) {
	calls := 0
	Register("fake-counter-target", func() Backend {
		calls++
		return &fakeBackend{tag: "fake-counter-target"}
	})

	_, err := Lookup("fake-counter-target")
	require.NoError(t, err)
	_, err = Lookup("fake-counter-target")
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}
