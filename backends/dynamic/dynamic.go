// Package dynamic implements the dynamic interpreted-language target named
// in spec.md §1: a backend rendering Python source.
package dynamic

import (
	"fmt"

	"github.com/blang/semver"

	"github.com/dafny-lang/dafny-codegen/backend"
	"github.com/dafny-lang/dafny-codegen/backends/shared"
	"github.com/dafny-lang/dafny-codegen/rir"
)

const Tag = "dynamic"

var reservedWords = []string{
	"False", "None", "True", "and", "as", "assert", "async", "await",
	"break", "class", "continue", "def", "del", "elif", "else", "except",
	"finally", "for", "from", "global", "if", "import", "in", "is",
	"lambda", "nonlocal", "not", "or", "pass", "raise", "return", "try",
	"while", "with", "yield", "self", "print",
}

var primitives = shared.Primitives{
	Bool: "", Char: "", Int: "", Real: "",
	Bitvector:   func(width int) string { return "" },
	NativeInt:   func(bits int) string { return "" },
	Array:       func(rank int, elem string) string { return "" },
	Collection:  func(kind rir.CollectionKind, key, elem string) string { return "" },
	Arrow:       func(inputs []string, output string) string { return "" },
	UserDefined: func(name string, args []string) string { return "" },
}

var syntax = shared.Syntax{
	Tag:        Tag,
	FileExt:    ".py",
	IndentUnit: "    ",
	Semi:       "",

	ModuleKeyword: "",
	ModuleBraced:  false,

	ClassKeyword: "class",

	// Python's block is carried by indentation alone; a ":" opens it with
	// nothing on its own line, and there is no closing delimiter to emit.
	BlockOpenText:  ":",
	BlockCloseText: "",
	BlockOwnLine:   false,

	ParamStyle:  shared.ParamNameOnly,
	ReturnStyle: shared.ReturnNone,

	FuncKeyword: "def",
	VarKeyword:  "",
	NewKeyword:  "",

	True: "True", False: "False", Null: "None",

	BinOp: pythonBinOps(),
	UnOp:  shared.DefaultUnOps(),

	IfKw: "if", ElseKw: "else", WhileKw: "while", ForKw: "for",
	ReturnKw: "return", BreakKw: "break", ContinueKw: "continue",
	PrintFn: "print",

	TypeName: func(t rir.Type) string { return fmt.Sprintf("%v", t) },
}

// pythonBinOps overrides the handful of operators Python spells as words
// rather than the C-family punctuation DefaultBinOps assumes.
func pythonBinOps() map[rir.BinaryOpKind]string {
	ops := shared.DefaultBinOps()
	ops[rir.OpAnd] = "and"
	ops[rir.OpOr] = "or"
	ops[rir.OpImplies] = "or" // unused: Generic's emitBinary expands implication itself as (!(a) || (b)) on every target
	return ops
}

var capabilities = backend.Capabilities{
	ErasedGenerics:              true,
	NativeIntWidths:             nil, // Python ints are already arbitrary-precision; no native width ever fits better
	SupportsTraitCollections:    true,
	SupportsCoDatatypesNatively: false,
	SupportsLabeledLoops:        false,
	MaxTupleArity:               0,
	StringRepr:                  backend.ObjectString,
	ReservedWords:               reservedWords,
	DisambiguateSuffix:          "_",
	IdentifierCase:              backend.CaseSnake,
	DocCapability:                backend.DocLine,
	MinRuntimeVersion:            semver.MustParse("3.8.0"),
}

// Backend renders Python source.
type Backend struct {
	*shared.Generic
}

func New() backend.Backend {
	reserved := backend.NewReserved(reservedWords, capabilities.DisambiguateSuffix)
	return &Backend{Generic: shared.NewGeneric(syntax, capabilities, reserved)}
}

// PostEmit runs the emitted entry module under the interpreter; Python has
// no separate compile step, so any compileLevel >= LevelCompile is treated
// the same as LevelCompileAndRun for the purpose of catching a syntax
// error, but only actually executes the program at LevelCompileAndRun.
func (b *Backend) PostEmit(outputDir string, compileLevel int) (string, error) {
	if compileLevel < 2 {
		return "", nil
	}
	if stderr, err := shared.RunToolchain(outputDir, "python3", "-m", "py_compile", "main.py"); err != nil {
		return stderr, err
	}
	if compileLevel < 3 {
		return "", nil
	}
	if stderr, err := shared.RunToolchain(outputDir, "python3", "main.py"); err != nil {
		return stderr, err
	}
	return "", nil
}

func init() {
	backend.Register(Tag, New)
}
