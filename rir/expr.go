package rir

import "github.com/dafny-lang/dafny-codegen/diag"

// Expr is the closed expression variant enumeration (§3, §4.2). Every
// variant carries ResolvedType() and Tok() so the driver can assert
// groundedness and attach diagnostics uniformly (§3 invariant: every
// compiled expression has a non-null resolved type).
type Expr interface {
	isExpr()
	ResolvedType() Type
	Tok() diag.SourceToken
}

// ExprBase factors the two fields every variant must carry.
type ExprBase struct {
	Type  Type
	Token diag.SourceToken
}

func (e ExprBase) ResolvedType() Type        { return e.Type }
func (e ExprBase) Tok() diag.SourceToken     { return e.Token }

// LiteralKind distinguishes the literal forms of §4.2.
type LiteralKind int

const (
	BoolLiteral LiteralKind = iota
	CharLiteral
	IntLiteral
	RealLiteral
	BitvectorLiteral
	StringLiteral
)

// Literal is a constant of one of the LiteralKind forms. Value holds the
// canonical Go representation for that kind: bool, rune, string, *big.Int
// for int and bitvector literals, *big.Float for real literals. DefaultValue
// and LoadFile both build literals in this representation; a nil Value
// marks a null/unit default.
type Literal struct {
	ExprBase
	Kind  LiteralKind
	Value interface{}
}

func (*Literal) isExpr() {}

// BinaryOpKind is one of the source language's binary operators. OpDiv and
// OpMod denote Euclidean division and modulus (§4.5).
type BinaryOpKind int

const (
	OpAdd BinaryOpKind = iota
	OpSub
	OpMul
	OpDiv // Euclidean
	OpMod // Euclidean
	OpEq
	OpNeq
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpImplies
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpRotl
	OpRotr
	OpConcat // sequence/string concatenation
	OpIn     // collection membership
)

type BinaryExpr struct {
	ExprBase
	Op    BinaryOpKind
	Left  Expr
	Right Expr
}

func (*BinaryExpr) isExpr() {}

type UnaryOpKind int

const (
	OpNeg UnaryOpKind = iota
	OpNot
	OpBitNot
	OpCardinality
)

type UnaryExpr struct {
	ExprBase
	Op      UnaryOpKind
	Operand Expr
}

func (*UnaryExpr) isExpr() {}

// ConversionExpr is an explicit numeric/type conversion (e.g. int to real,
// bitvector width widening).
type ConversionExpr struct {
	ExprBase
	Operand Expr
	Target  Type
}

func (*ConversionExpr) isExpr() {}

// CollectionDisplay is a set/seq/multiset literal display.
type CollectionDisplay struct {
	ExprBase
	Kind     CollectionKind
	Elements []Expr
}

func (*CollectionDisplay) isExpr() {}

// MapDisplay is a map literal display.
type MapDisplay struct {
	ExprBase
	Keys   []Expr
	Values []Expr
}

func (*MapDisplay) isExpr() {}

// IndexSelect is `coll[index]` for seq/map/multiset-count or array.
type IndexSelect struct {
	ExprBase
	Collection Expr
	Index      Expr
}

func (*IndexSelect) isExpr() {}

// IndexUpdate is the non-destructive `coll[index := value]` form.
type IndexUpdate struct {
	ExprBase
	Collection Expr
	Index      Expr
	Value      Expr
}

func (*IndexUpdate) isExpr() {}

// SeqSlice is `s[lo..hi]` (a nil Lo means 0), `s.take(n)` (n in Lo, Hi ==
// nil), or `s.drop(n)` (n in Lo, DropForm set).
type SeqSlice struct {
	ExprBase
	Seq      Expr
	Lo       Expr // n for take(n) and drop(n); nil in s[..hi]
	Hi       Expr // nil for take(n) and drop(n)
	DropForm bool
}

func (*SeqSlice) isExpr() {}

// ArraySelect is a multi-dimensional native array read `a[i0, i1, ...]`.
type ArraySelect struct {
	ExprBase
	Array   Expr
	Indices []Expr
}

func (*ArraySelect) isExpr() {}

// QuantifierKind distinguishes forall/exists; only ghost contexts use these,
// but the driver still needs to erase them faithfully.
type QuantifierKind int

const (
	Forall QuantifierKind = iota
	Exists
)

type QuantifierExpr struct {
	ExprBase
	Kind     QuantifierKind
	BoundVar string
	Domain   Type
	Body     Expr
}

func (*QuantifierExpr) isExpr() {}

// ComprehensionExpr is a set or map comprehension.
type ComprehensionExpr struct {
	ExprBase
	Kind     CollectionKind // SetKind or MapKind
	BoundVar string
	Domain   Type
	Filter   Expr // nil if unfiltered
	Element  Expr // for MapKind, the value; the key is BoundVar itself or KeyExpr
	KeyExpr  Expr // non-nil only for MapKind when key != BoundVar
}

func (*ComprehensionExpr) isExpr() {}

// LambdaExpr is an anonymous function literal.
type LambdaExpr struct {
	ExprBase
	Formals []Formal
	Body    Expr
}

func (*LambdaExpr) isExpr() {}

// LetExpr is `var x := value; body` in expression position.
type LetExpr struct {
	ExprBase
	Name  string
	Value Expr
	Body  Expr
}

func (*LetExpr) isExpr() {}

// MatchArm is one arm of a MatchExpr/MatchStmt.
type MatchArm struct {
	Constructor DeclRef // the datatype constructor this arm matches, by name
	Bindings    []string
	IsGhostArm  bool // resolver marks the taken arm when the scrutinee is ghost (§4.4)
}

type MatchExpr struct {
	ExprBase
	Scrutinee    Expr
	ScrutineeIsGhost bool
	Arms         []MatchArm
	ArmBodies    []Expr
}

func (*MatchExpr) isExpr() {}

// ApplyExpr is a method/function/constructor call in expression position.
type ApplyExpr struct {
	ExprBase
	Callee DeclRef
	Member string // member name on Callee, or "" for a bare function reference
	Args   []Expr
}

func (*ApplyExpr) isExpr() {}

// FieldAccessKind distinguishes the field-access forms of §4.2.
type FieldAccessKind int

const (
	InstanceField FieldAccessKind = iota
	StaticField                   // companion/static receiver
	SpecialField                  // symbolic id, e.g. ".Length", ".Keys"
)

type FieldAccessExpr struct {
	ExprBase
	Kind       FieldAccessKind
	Receiver   Expr // nil for StaticField
	Owner      DeclRef
	FieldName  string
	SymbolicID string // non-empty only for SpecialField
}

func (*FieldAccessExpr) isExpr() {}

// IdentExpr is a reference to a local, formal, or field with no receiver
// (the driver resolves which at lowering time from the enclosing scope).
type IdentExpr struct {
	ExprBase
	Name string
}

func (*IdentExpr) isExpr() {}

// ThunkExpr and ForceExpr implement the co-inductive lazy-evaluation
// wrapper (§4.1 "Datatype lowering"): a backend without native co-datatype
// support wraps every co-inductive constructor argument in a ThunkExpr at
// construction time, and the driver emits a ForceExpr everywhere that
// argument is later observed. Each backend decides, via its
// SupportsCoDatatypesNatively capability bit, whether it ever sees these at
// all — a backend that supports co-datatypes natively never receives them,
// because the driver only introduces them when the bit is false.
type ThunkExpr struct {
	ExprBase
	Inner Expr
}

func (*ThunkExpr) isExpr() {}

// ForceExpr forces a thunk, memoizing so the wrapped expression evaluates
// at most once regardless of how many times the field is observed.
type ForceExpr struct {
	ExprBase
	Thunk Expr
}

func (*ForceExpr) isExpr() {}
