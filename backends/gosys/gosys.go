// Package gosys implements the garbage-collected systems-language target
// named in spec.md §1: a backend rendering Go source.
package gosys

import (
	"fmt"

	"github.com/blang/semver"

	"github.com/dafny-lang/dafny-codegen/backend"
	"github.com/dafny-lang/dafny-codegen/backends/shared"
	"github.com/dafny-lang/dafny-codegen/rir"
)

const Tag = "gosys"

var reservedWords = []string{
	"break", "case", "chan", "const", "continue", "default", "defer",
	"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
	"interface", "map", "package", "range", "return", "select", "struct",
	"switch", "type", "var", "nil", "true", "false", "iota", "string",
	"int", "bool", "error", "any",
}

func nativeIntName(bits int) string {
	switch {
	case bits <= 8:
		return "int8"
	case bits <= 16:
		return "int16"
	case bits <= 32:
		return "int32"
	default:
		return "int64"
	}
}

var primitives = shared.Primitives{
	Bool: "bool",
	Char: "rune",
	Int:  "*big.Int",
	Real: "*big.Rat",
	Bitvector: func(width int) string {
		return "*big.Int"
	},
	NativeInt: nativeIntName,
	Array: func(rank int, elem string) string {
		s := elem
		for i := 0; i < rank; i++ {
			s = "[]" + s
		}
		return s
	},
	Collection: func(kind rir.CollectionKind, key, elem string) string {
		switch kind {
		case rir.MapKind:
			return fmt.Sprintf("map[%s]%s", key, elem)
		case rir.SetKind, rir.MultisetKind:
			return fmt.Sprintf("map[%s]int", elem)
		default:
			return "[]" + elem
		}
	},
	Arrow: func(inputs []string, output string) string {
		s := "func("
		for i, in := range inputs {
			if i > 0 {
				s += ", "
			}
			s += in
		}
		return s + ") " + output
	},
	UserDefined: func(name string, args []string) string {
		if len(args) == 0 {
			return "*" + name
		}
		s := "*" + name + "["
		for i, a := range args {
			if i > 0 {
				s += ", "
			}
			s += a
		}
		return s + "]"
	},
	TypeParam: func(name string) string { return name },
}

var syntax = shared.Syntax{
	Tag:        Tag,
	FileExt:    ".go",
	IndentUnit: "\t",
	Semi:       "",

	ModuleKeyword: "package",
	ModuleBraced:  false,

	ClassKeyword: "",

	BlockOpenText:  " {",
	BlockCloseText: "}",
	BlockOwnLine:   false,

	ParamStyle:  shared.ParamNameColonType,
	ReturnStyle: shared.ReturnTypeAfterParams,

	FuncKeyword: "func",
	VarKeyword:  "var",
	NewKeyword:  "",

	True: "true", False: "false", Null: "nil",

	BinOp: shared.DefaultBinOps(),
	UnOp:  shared.DefaultUnOps(),

	IfKw: "if", ElseKw: "else", WhileKw: "for", ForKw: "for",
	ReturnKw: "return", BreakKw: "break", ContinueKw: "continue",
	PrintFn: "fmt.Println",

	TypeName:       func(t rir.Type) string { return shared.TypeName(primitives, t) },
	CastAfterArith: shared.NeedsCastAfterArithmetic,

	// runtime/resources/gosys/runtime.go is package dafnyrt, exporting
	// Ediv/Emod/Rotate/MakeThunk/Force as capitalized Go identifiers.
	RuntimeHelperName: func(logical string) string { return "dafnyrt." + gosysRuntimeNames[logical] },
}

var gosysRuntimeNames = map[string]string{
	"ediv": "Ediv", "emod": "Emod", "rotate": "Rotate",
	"thunk": "MakeThunk", "force": "Force",
}

var capabilities = backend.Capabilities{
	ErasedGenerics: true,
	NativeIntWidths: []int{8, 16, 32, 64},
	// The Go backend this target stands for historically boxes every
	// generic element through interface{} rather than letting a trait-typed
	// collection hold an unsized element directly (§4.5 "Collection element
	// types forbid bare trait (unsized) parameters unless the backend's
	// capability bit allows it"); this is the one target of the six that
	// exercises the driver's rejection path for that rule.
	SupportsTraitCollections:    false,
	SupportsCoDatatypesNatively: false,
	SupportsLabeledLoops:        true,
	MaxTupleArity:               0,
	StringRepr:                  backend.CodeUnitString,
	ReservedWords:               reservedWords,
	DisambiguateSuffix:          "_",
	IdentifierCase:              backend.CasePreserve,
	DocCapability:               backend.DocLine,
	MinRuntimeVersion:           semver.MustParse("1.18.0"),
}

// Backend renders Go source.
type Backend struct {
	*shared.Generic
}

func New() backend.Backend {
	reserved := backend.NewReserved(reservedWords, capabilities.DisambiguateSuffix)
	return &Backend{Generic: shared.NewGeneric(syntax, capabilities, reserved)}
}

// PostEmit shells out to `go build` and, for run level, `go run`.
func (b *Backend) PostEmit(outputDir string, compileLevel int) (string, error) {
	if compileLevel < 2 {
		return "", nil
	}
	if stderr, err := shared.RunToolchain(outputDir, "go", "build", "./..."); err != nil {
		return stderr, err
	}
	if compileLevel < 3 {
		return "", nil
	}
	if stderr, err := shared.RunToolchain(outputDir, "go", "run", "."); err != nil {
		return stderr, err
	}
	return "", nil
}

func init() {
	backend.Register(Tag, New)
}
