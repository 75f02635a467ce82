package rir

import "github.com/dafny-lang/dafny-codegen/diag"

// Stmt is the closed statement variant enumeration (§4.2).
type Stmt interface {
	isStmt()
	Tok() diag.SourceToken
}

type StmtBase struct {
	Token diag.SourceToken
}

func (s StmtBase) Tok() diag.SourceToken { return s.Token }

// AssignStmt is a single-target assignment.
type AssignStmt struct {
	StmtBase
	Target Expr // IdentExpr, FieldAccessExpr, IndexSelect, or ArraySelect
	Value  Expr
}

func (*AssignStmt) isStmt() {}

// MultiAssignStmt binds every out-parameter of a method call in one
// statement (§4.2 "multi-assignment from method with multiple
// out-parameters").
type MultiAssignStmt struct {
	StmtBase
	Targets []Expr
	Call    *ApplyExpr
}

func (*MultiAssignStmt) isStmt() {}

// VarDeclStmt introduces a local.
type VarDeclStmt struct {
	StmtBase
	Name    string
	Type    Type
	Ghost   bool
	Initial Expr // nil if uninitialized
}

func (*VarDeclStmt) isStmt() {}

// IfStmt is an if/else or if/else-if chain; Else may itself be a single
// *IfStmt to represent an else-if link, or nil, or any other Stmt slice
// wrapped as a Block.
type IfStmt struct {
	StmtBase
	Cond Expr
	Then []Stmt
	Else []Stmt // nil if absent
}

func (*IfStmt) isStmt() {}

// LoopKind distinguishes the loop forms of §4.2.
type LoopKind int

const (
	WhileLoop LoopKind = iota
	ForRangeLoop
	ForCollectionLoop
	InfiniteLoop
)

// LoopStmt covers all four loop forms. Which fields are meaningful depends
// on Kind:
//   - WhileLoop: Cond, Body
//   - ForRangeLoop: Var, Lo, Hi, Body
//   - ForCollectionLoop: Var, Collection, Body
//   - InfiniteLoop: Body, Label (for a later BreakStmt to target)
type LoopStmt struct {
	StmtBase
	Kind       LoopKind
	Label      string
	Cond       Expr
	Var        string
	Lo, Hi     Expr
	Collection Expr
	Body       []Stmt
}

func (*LoopStmt) isStmt() {}

// BreakStmt exits the loop (or labeled block) named Label, or the innermost
// enclosing loop if Label is empty.
type BreakStmt struct {
	StmtBase
	Label string
}

func (*BreakStmt) isStmt() {}

// ContinueStmt restarts the loop (or labeled block) named Label from the
// top, or the innermost enclosing loop if Label is empty. The tail-call
// transform (§4.1) is the only place the driver itself constructs one;
// source programs have no continue statement of their own.
type ContinueStmt struct {
	StmtBase
	Label string
}

func (*ContinueStmt) isStmt() {}

// ReturnStmt returns from a method; Values is empty for a bare return and
// holds one expression per out-formal otherwise.
type ReturnStmt struct {
	StmtBase
	Values []Expr
}

func (*ReturnStmt) isStmt() {}

// YieldStmt yields one value from an Iterator body.
type YieldStmt struct {
	StmtBase
	Values []Expr
}

func (*YieldStmt) isStmt() {}

// PrintStmt is the source language's print statement.
type PrintStmt struct {
	StmtBase
	Args []Expr
}

func (*PrintStmt) isStmt() {}

// CallStmt is a method/constructor call used as a statement, discarding any
// result.
type CallStmt struct {
	StmtBase
	Call *ApplyExpr
}

func (*CallStmt) isStmt() {}

// AbsurdStmt marks a statically unreachable point (e.g. after a
// verified-exhaustive match with no default). Every backend lowers it to
// whatever its native "this cannot happen" idiom is.
type AbsurdStmt struct {
	StmtBase
	Reason string
}

func (*AbsurdStmt) isStmt() {}

// AssertStmt and LemmaCallStmt both erase to no-ops under lowering (§4.4);
// they are kept as distinct statement kinds so the erasure pass has
// something concrete to drop instead of the driver needing to recognize
// them by side channel.
type AssertStmt struct {
	StmtBase
	Cond Expr
}

func (*AssertStmt) isStmt() {}

type LemmaCallStmt struct {
	StmtBase
	Call *ApplyExpr
}

func (*LemmaCallStmt) isStmt() {}

// MatchStmt is the statement-position counterpart of MatchExpr.
type MatchStmt struct {
	StmtBase
	Scrutinee        Expr
	ScrutineeIsGhost bool
	Arms             []MatchArm
	ArmBodies        [][]Stmt
}

func (*MatchStmt) isStmt() {}
