package rir

import "github.com/dafny-lang/dafny-codegen/diag"

// MemberKind distinguishes the Member variants of spec §3.
type MemberKind int

const (
	FieldMember MemberKind = iota
	ConstantMember
	MethodMember
	FunctionMember
	ConstructorMember
	LemmaMember
	PredicateMember
)

// Member is the closed variant enumeration replacing the member-kind
// inheritance hierarchy (§9).
type Member interface {
	isMember()
	MemberName() string
	MemberKind() MemberKind
	IsGhost() bool
	IsStatic() bool
}

// MemberBase carries the attributes every Member variant shares (§3).
type MemberBase struct {
	Name       string
	Ghost      bool
	Static     bool
	TypeParams []string
	Doc        string
	Token      diag.SourceToken
}

func (m MemberBase) MemberName() string { return m.Name }
func (m MemberBase) IsGhost() bool      { return m.Ghost }
func (m MemberBase) IsStatic() bool     { return m.Static }

// Field is a class/datatype field.
type Field struct {
	MemberBase
	Type     Type
	Mutable  bool
	Default  Expr // nil if the target computes the canonical default
}

func (*Field) isMember()             {}
func (*Field) MemberKind() MemberKind { return FieldMember }

// Constant is a `const` member: a field whose RHS is fixed at
// declaration time.
type Constant struct {
	MemberBase
	Type  Type
	Value Expr
	// RHSMentionsGhost is set by the resolver when Value reads ghost
	// state, meaning Value cannot be evaluated at runtime at all and the
	// driver must erase it to a default-value expression (§4.4).
	RHSMentionsGhost bool
}

func (*Constant) isMember()             {}
func (*Constant) MemberKind() MemberKind { return ConstantMember }

// Specification is a method/function's pre/postcondition clause set,
// consumed only to decide whether a body is reachable under verification;
// the core never checks them (Non-goals, §1).
type Specification struct {
	Requires []Expr
	Ensures  []Expr
	Decreases []Expr
}

// TailRecursion records whether the resolver flagged this member
// self-recursive-in-tail-position, and under what label the driver should
// lower the resulting loop (§4.1).
type TailRecursion struct {
	IsTailRecursive bool
	Label           string
}

// Method is a (possibly multi-out-parameter) imperative member.
type Method struct {
	MemberBase
	Formals      []Formal
	OutFormals   []Formal
	Spec         Specification
	Body         []Stmt // nil for abstract/extern methods
	Tail         TailRecursion
	IsMainCandidate bool // resolver-computed: marked @Main by source
}

func (*Method) isMember()             {}
func (*Method) MemberKind() MemberKind { return MethodMember }

// Function is a pure, expression-bodied member.
type Function struct {
	MemberBase
	Formals []Formal
	Result  Type
	Spec    Specification
	Body    Expr // nil for abstract/extern functions
	Tail    TailRecursion
}

func (*Function) isMember()             {}
func (*Function) MemberKind() MemberKind { return FunctionMember }

// ConstructorMethod is a class instance constructor (distinct from a
// datatype Constructor, which lives on Datatype.Constructors).
type ConstructorMethod struct {
	MemberBase
	Formals []Formal
	Spec    Specification
	Body    []Stmt
}

func (*ConstructorMethod) isMember()             {}
func (*ConstructorMethod) MemberKind() MemberKind { return ConstructorMember }

// Lemma is always ghost; its invocations lower to no-ops (§4.4).
type Lemma struct {
	MemberBase
	Formals []Formal
	Spec    Specification
	Body    []Stmt
}

func (*Lemma) isMember()             {}
func (*Lemma) MemberKind() MemberKind { return LemmaMember }

// Predicate is a boolean-result Function with no special lowering beyond
// what Function already does; kept as a distinct variant because the
// resolver distinguishes them syntactically and some backends document them
// differently.
type Predicate struct {
	MemberBase
	Formals []Formal
	Spec    Specification
	Body    Expr
}

func (*Predicate) isMember()             {}
func (*Predicate) MemberKind() MemberKind { return PredicateMember }
