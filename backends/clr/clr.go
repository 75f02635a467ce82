// Package clr implements the C-family managed-runtime target named in
// spec.md §1: a backend rendering C# source.
package clr

import (
	"fmt"

	"github.com/blang/semver"

	"github.com/dafny-lang/dafny-codegen/backend"
	"github.com/dafny-lang/dafny-codegen/backends/shared"
	"github.com/dafny-lang/dafny-codegen/rir"
)

const Tag = "clr"

var reservedWords = []string{
	"abstract", "as", "base", "bool", "break", "byte", "case", "catch",
	"char", "checked", "class", "const", "continue", "decimal", "default",
	"delegate", "do", "double", "else", "enum", "event", "explicit",
	"extern", "false", "finally", "fixed", "float", "for", "foreach",
	"goto", "if", "implicit", "in", "int", "interface", "internal", "is",
	"lock", "long", "namespace", "new", "null", "object", "operator",
	"out", "override", "params", "private", "protected", "public",
	"readonly", "ref", "return", "sbyte", "sealed", "short", "sizeof",
	"stackalloc", "static", "string", "struct", "switch", "this", "throw",
	"true", "try", "typeof", "uint", "ulong", "unchecked", "unsafe",
	"ushort", "using", "virtual", "void", "volatile", "while", "var",
	"record",
}

func nativeIntName(bits int) string {
	switch {
	case bits <= 8:
		return "sbyte"
	case bits <= 16:
		return "short"
	case bits <= 32:
		return "int"
	default:
		return "long"
	}
}

var primitives = shared.Primitives{
	Bool: "bool",
	Char: "char",
	Int:  "System.Numerics.BigInteger",
	Real: "decimal",
	Bitvector: func(width int) string {
		return "System.Numerics.BigInteger"
	},
	NativeInt: nativeIntName,
	Array: func(rank int, elem string) string {
		if rank <= 1 {
			return elem + "[]"
		}
		return fmt.Sprintf("%s[%s]", elem, commas(rank-1))
	},
	Collection: func(kind rir.CollectionKind, key, elem string) string {
		switch kind {
		case rir.MapKind:
			return fmt.Sprintf("System.Collections.Immutable.ImmutableDictionary<%s, %s>", key, elem)
		case rir.MultisetKind:
			return fmt.Sprintf("System.Collections.Immutable.ImmutableDictionary<%s, int>", elem)
		default:
			return fmt.Sprintf("System.Collections.Immutable.ImmutableList<%s>", elem)
		}
	},
	Arrow: func(inputs []string, output string) string {
		return "System.Func<" + joinWithTail(inputs, output) + ">"
	},
	UserDefined: func(name string, args []string) string {
		if len(args) == 0 {
			return name
		}
		s := name + "<"
		for i, a := range args {
			if i > 0 {
				s += ", "
			}
			s += a
		}
		return s + ">"
	},
}

func commas(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s += ","
	}
	return s
}

func joinWithTail(inputs []string, tail string) string {
	s := ""
	for _, in := range inputs {
		s += in + ", "
	}
	return s + tail
}

var syntax = shared.Syntax{
	Tag:        Tag,
	FileExt:    ".cs",
	IndentUnit: "    ",
	Semi:       ";",

	ModuleKeyword: "namespace",
	ModuleBraced:  true,

	ClassKeyword: "class",

	BlockOpenText:  "",
	BlockCloseText: "}",
	BlockOwnLine:   true,

	ParamStyle:  shared.ParamTypeSpaceName,
	ReturnStyle: shared.ReturnTypeBefore,

	VarKeyword:    "",
	ConstKeyword:  "readonly",
	StaticKeyword: "static",
	ThisKeyword:   "this",
	NewKeyword:    "new",

	True: "true", False: "false", Null: "null",

	BinOp: shared.DefaultBinOps(),
	UnOp:  shared.DefaultUnOps(),

	IfKw: "if", ElseKw: "else", WhileKw: "while", ForKw: "for",
	ReturnKw: "return", BreakKw: "break", ContinueKw: "continue",
	PrintFn: "System.Console.WriteLine",

	TypeName:       func(t rir.Type) string { return shared.TypeName(primitives, t) },
	CastAfterArith: shared.NeedsCastAfterArithmetic,

	// runtime/resources/clr/Runtime.cs exports Ediv/Emod/Rotate and
	// MakeThunk/ForceThunk (not Thunk/Force) as PascalCase static methods
	// on the Runtime class.
	RuntimeHelperName: func(logical string) string { return "Runtime." + clrRuntimeNames[logical] },
}

var clrRuntimeNames = map[string]string{
	"ediv": "Ediv", "emod": "Emod", "rotate": "Rotate",
	"thunk": "MakeThunk", "force": "ForceThunk",
}

var capabilities = backend.Capabilities{
	ErasedGenerics:              false,
	NativeIntWidths:             []int{8, 16, 32, 64},
	SupportsTraitCollections:    true,
	SupportsCoDatatypesNatively: false,
	SupportsLabeledLoops:        false,
	MaxTupleArity:               0,
	StringRepr:                  backend.ObjectString,
	ReservedWords:               reservedWords,
	DisambiguateSuffix:          "_",
	IdentifierCase:              backend.CaseUpperCamel,
	DocCapability:               backend.DocBlock,
	MinRuntimeVersion:           semver.MustParse("6.0.0"),
}

// Backend renders C# source. The C#/.NET "C-family managed runtime"
// target the CLR-class backend in spec.md §1 describes never natively
// breaks to an arbitrary outer loop by label — only `goto` does — so
// SupportsLabeledLoops stays false and the driver's tail-call/break-label
// lowering emulates it with the sentinel-loop fallback instead (§4.1, §9).
type Backend struct {
	*shared.Generic
}

func New() backend.Backend {
	reserved := backend.NewReserved(reservedWords, capabilities.DisambiguateSuffix)
	return &Backend{Generic: shared.NewGeneric(syntax, capabilities, reserved)}
}

// PostEmit shells out to the dotnet CLI's build and run subcommands.
func (b *Backend) PostEmit(outputDir string, compileLevel int) (string, error) {
	if compileLevel < 2 {
		return "", nil
	}
	if stderr, err := shared.RunToolchain(outputDir, "dotnet", "build", outputDir); err != nil {
		return stderr, err
	}
	if compileLevel < 3 {
		return "", nil
	}
	if stderr, err := shared.RunToolchain(outputDir, "dotnet", "run", "--project", outputDir); err != nil {
		return stderr, err
	}
	return "", nil
}

func init() {
	backend.Register(Tag, New)
}
