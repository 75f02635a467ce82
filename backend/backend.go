package backend

import (
	"github.com/dafny-lang/dafny-codegen/emit"
	"github.com/dafny-lang/dafny-codegen/rir"
)

// MemberSignature is the structured description of a method, function, or
// constructor header OpenMember renders. Result is nil for a void method
// and for a constructor; OutFormals is non-empty only for a method with
// multiple named out-parameters.
type MemberSignature struct {
	Name          string
	Static        bool
	IsConstructor bool
	Formals       []rir.Formal
	OutFormals    []rir.Formal
	Result        rir.Type
	// IsMain is set on the one method the driver discovered as the
	// program's entry point (§4.1 "main-method discovery"); a backend that
	// needs to wire up a native entry point stub reacts to this instead of
	// re-deriving main-method eligibility itself.
	IsMain bool
}

// Backend implements one target language's rendering of the operations
// named in spec §4.2. The driver never downcasts a Backend or type-switches
// on its concrete type (§9): every decision a backend makes about its own
// syntax stays behind this interface.
//
// Every operation takes a writer handle identifying where to emit.
// Operations that open a scope return a new child handle.
type Backend interface {
	// Capabilities returns this backend's static capability record.
	Capabilities() Capabilities

	// Tag is the target selector string a caller passes in Options.Target.
	Tag() string

	// --- File and scoping ---

	CreateFile(path string) emit.Writer
	OpenModule(w emit.Writer, name string) emit.Writer
	// OpenClass opens a class/trait scope; implements lists the names of
	// capability sets (traits/interfaces) it implements.
	OpenClass(w emit.Writer, name string, implements []string, isDefaultClass bool) emit.Writer
	// OpenMember writes a method/function/constructor's signature and
	// returns the writer its body should be emitted into. The backend alone
	// renders parameter and result syntax; the driver hands it structured
	// data rather than pre-built text so no target's punctuation leaks
	// upstream of this interface.
	OpenMember(w emit.Writer, sig MemberSignature) emit.Writer
	// Close seals w. Idempotent and commutes with Fork (§4.3).
	Close(w emit.Writer)

	// --- Declarations ---

	// DeclareField returns an insertion-point writer for the field's RHS
	// initializer expression if hasInit is true, and the zero-value Writer
	// otherwise.
	DeclareField(w emit.Writer, name string, t rir.Type, static, mutable, hasInit bool) emit.Writer
	DeclareLocal(w emit.Writer, name string, t rir.Type) string
	DeclareFormal(w emit.Writer, name string, t rir.Type) string
	// DeclareDatatypeBase opens the sealed abstract base for a non-record
	// inductive or co-inductive datatype (§4.1); returns the writer used
	// for per-constructor variant declarations.
	DeclareDatatypeBase(w emit.Writer, d *rir.Datatype) emit.Writer
	DeclareDatatypeConstructor(w emit.Writer, d *rir.Datatype, c *rir.Constructor)
	DeclareNewtype(w emit.Writer, n *rir.Newtype)
	DeclareSubsetType(w emit.Writer, s *rir.SubsetType)

	// --- Statements ---

	EmitStatement(w emit.Writer, s rir.Stmt)

	// --- Expressions ---

	// EmitExpression writes e's target-syntax rendering directly to w,
	// fully parenthesized per operator precedence (§4.6). It recurses into
	// sub-expressions itself; callers never assemble expression text by
	// hand.
	EmitExpression(w emit.Writer, e rir.Expr)

	// --- Queries ---

	// TargetTypeName returns the target-syntax spelling of t.
	TargetTypeName(t rir.Type) string
	// RequiresCastAfterArithmetic reports whether arithmetic on t's native
	// representation needs an explicit cast back to t's declared type.
	RequiresCastAfterArithmetic(t rir.Type) bool
	// IsReservedWord reports whether name collides with this target's
	// reserved-word list.
	IsReservedWord(name string) bool
	// Sanitize appends this backend's disambiguating suffix to name if it
	// collides with a reserved word, otherwise returns name unchanged.
	Sanitize(name string) string

	// --- Output ---

	// Files renders every file CreateFile has opened to bytes, in
	// deterministic path order. The driver calls this exactly once, after
	// every declaration has been lowered.
	Files() (map[string][]byte, error)

	// --- Post-emit ---

	// PostEmit runs the target's native compiler/assembler/runner if
	// compileLevel warrants it (§6, §2 step 6). outputDir is the just-flushed
	// output directory. It returns captured stderr on failure.
	PostEmit(outputDir string, compileLevel int) (stderr string, err error)
}
