// Package proto implements the prototype-based scripting-language target
// named in spec.md §1: a backend rendering JavaScript source.
package proto

import (
	"fmt"

	"github.com/blang/semver"

	"github.com/dafny-lang/dafny-codegen/backend"
	"github.com/dafny-lang/dafny-codegen/backends/shared"
	"github.com/dafny-lang/dafny-codegen/rir"
)

const Tag = "proto"

var reservedWords = []string{
	"break", "case", "catch", "class", "const", "continue", "debugger",
	"default", "delete", "do", "else", "export", "extends", "finally",
	"for", "function", "if", "import", "in", "instanceof", "new",
	"return", "super", "switch", "this", "throw", "try", "typeof", "var",
	"void", "while", "with", "yield", "let", "static", "await", "async",
	"null", "true", "false", "undefined",
}

var primitives = shared.Primitives{
	Bool: "", // dynamically typed; TypeName is never consulted for declarations
	Char: "",
	Int:  "",
	Real: "",
	Bitvector: func(width int) string {
		return ""
	},
	NativeInt: func(bits int) string { return "" },
	Array: func(rank int, elem string) string {
		return ""
	},
	Collection: func(kind rir.CollectionKind, key, elem string) string {
		return ""
	},
	Arrow: func(inputs []string, output string) string {
		return ""
	},
	UserDefined: func(name string, args []string) string {
		return ""
	},
}

var syntax = shared.Syntax{
	Tag:        Tag,
	FileExt:    ".js",
	IndentUnit: "  ",
	Semi:       ";",

	ModuleKeyword: "",
	ModuleBraced:  false,

	ClassKeyword: "class",

	BlockOpenText:  " {",
	BlockCloseText: "}",
	BlockOwnLine:   false,

	ParamStyle:  shared.ParamNameOnly,
	ReturnStyle: shared.ReturnNone,

	FuncKeyword: "function",
	VarKeyword:  "let",
	NewKeyword:  "new",

	True: "true", False: "false", Null: "null",

	BinOp: shared.DefaultBinOps(),
	UnOp:  shared.DefaultUnOps(),

	IfKw: "if", ElseKw: "else", WhileKw: "while", ForKw: "for",
	ReturnKw: "return", BreakKw: "break", ContinueKw: "continue",
	PrintFn: "console.log",

	// TypeName still renders something, even though JavaScript erases every
	// declared type at emission time: Generic's ConversionExpr rendering and
	// TargetTypeName consult it regardless of ParamStyle/ReturnStyle. It
	// renders the RIR type's Go %v form, not a JavaScript type.
	TypeName: func(t rir.Type) string { return fmt.Sprintf("%v", t) },
}

var capabilities = backend.Capabilities{
	ErasedGenerics:              true,
	NativeIntWidths:             []int{8, 16, 32},
	SupportsTraitCollections:    true,
	SupportsCoDatatypesNatively: false,
	SupportsLabeledLoops:        true,
	MaxTupleArity:               0,
	StringRepr:                  backend.ObjectString,
	ReservedWords:               reservedWords,
	DisambiguateSuffix:          "_",
	IdentifierCase:              backend.CaseLowerCamel,
	DocCapability:               backend.DocBlock,
	MinRuntimeVersion:           semver.MustParse("0.0.0"),
}

// Backend renders JavaScript source. A prototype-based scripting language
// has no declared field/local/parameter types at all, so ParamStyle is
// ParamNameOnly and ReturnStyle is ReturnNone: the generic renderer's
// signature and declaration code already degrades to bare names whenever a
// target leaves those styles at their name-only settings (backends/shared's
// renderOneParam and renderSignature).
type Backend struct {
	*shared.Generic
}

func New() backend.Backend {
	reserved := backend.NewReserved(reservedWords, capabilities.DisambiguateSuffix)
	return &Backend{Generic: shared.NewGeneric(syntax, capabilities, reserved)}
}

// PostEmit runs the emitted entry file under node.
func (b *Backend) PostEmit(outputDir string, compileLevel int) (string, error) {
	if compileLevel < 3 {
		return "", nil
	}
	if stderr, err := shared.RunToolchain(outputDir, "node", "main.js"); err != nil {
		return stderr, err
	}
	return "", nil
}

func init() {
	backend.Register(Tag, New)
}
