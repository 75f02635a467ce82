package lower

import (
	"github.com/dafny-lang/dafny-codegen/backend"
	"github.com/dafny-lang/dafny-codegen/rir"
)

// PrepareBody applies the whole-tree parts of §4.4's ghost erasure that a
// single-statement filter cannot express on its own: dropping no-op
// statements, collapsing a ghost-scrutinee match down to its statically
// resolved arm, and rewriting ghost-parameter call-site arguments to their
// default value. It runs once per member body before any statement reaches
// the backend, so EmitStatement/EmitExpression never observe a construct
// §4.4 says must disappear. b is the active backend, consulted only to
// decide whether a co-inductive constructor call or field access needs the
// lazy-evaluation wrapper (§4.1); a backend with native co-datatype support
// never triggers it.
func PrepareBody(prog *rir.Program, b backend.Backend, stmts []rir.Stmt) []rir.Stmt {
	out := make([]rir.Stmt, 0, len(stmts))
	for _, s := range stmts {
		if IsNoOpStatement(s) {
			continue
		}
		out = append(out, prepareStmt(prog, b, s)...)
	}
	return out
}

// prepareStmt returns the zero-or-more statements s rewrites to: a
// ghost-resolved MatchStmt expands to exactly its chosen arm's (recursively
// prepared) body, everything else stays a single statement.
func prepareStmt(prog *rir.Program, b backend.Backend, s rir.Stmt) []rir.Stmt {
	switch s := s.(type) {
	case *rir.AssignStmt:
		s.Target = prepareExpr(prog, b, s.Target)
		s.Value = prepareExpr(prog, b, s.Value)
		return []rir.Stmt{s}
	case *rir.MultiAssignStmt:
		for i, t := range s.Targets {
			s.Targets[i] = prepareExpr(prog, b, t)
		}
		s.Call = prepareExpr(prog, b, s.Call).(*rir.ApplyExpr)
		return []rir.Stmt{s}
	case *rir.VarDeclStmt:
		if s.Initial != nil {
			s.Initial = prepareExpr(prog, b, s.Initial)
		}
		return []rir.Stmt{s}
	case *rir.IfStmt:
		s.Cond = prepareExpr(prog, b, s.Cond)
		s.Then = PrepareBody(prog, b, s.Then)
		if s.Else != nil {
			s.Else = PrepareBody(prog, b, s.Else)
		}
		return []rir.Stmt{s}
	case *rir.LoopStmt:
		if s.Cond != nil {
			s.Cond = prepareExpr(prog, b, s.Cond)
		}
		if s.Lo != nil {
			s.Lo = prepareExpr(prog, b, s.Lo)
		}
		if s.Hi != nil {
			s.Hi = prepareExpr(prog, b, s.Hi)
		}
		if s.Collection != nil {
			s.Collection = prepareExpr(prog, b, s.Collection)
		}
		s.Body = PrepareBody(prog, b, s.Body)
		return []rir.Stmt{s}
	case *rir.ReturnStmt:
		for i, v := range s.Values {
			s.Values[i] = prepareExpr(prog, b, v)
		}
		return []rir.Stmt{s}
	case *rir.YieldStmt:
		for i, v := range s.Values {
			s.Values[i] = prepareExpr(prog, b, v)
		}
		return []rir.Stmt{s}
	case *rir.PrintStmt:
		for i, v := range s.Args {
			s.Args[i] = prepareExpr(prog, b, v)
		}
		return []rir.Stmt{s}
	case *rir.CallStmt:
		s.Call = prepareExpr(prog, b, s.Call).(*rir.ApplyExpr)
		return []rir.Stmt{s}
	case *rir.MatchStmt:
		s.Scrutinee = prepareExpr(prog, b, s.Scrutinee)
		if i := ResolveMatchArm(s.ScrutineeIsGhost, s.Arms); i >= 0 {
			return PrepareBody(prog, b, s.ArmBodies[i])
		}
		for i := range s.ArmBodies {
			s.ArmBodies[i] = PrepareBody(prog, b, s.ArmBodies[i])
		}
		return []rir.Stmt{s}
	default:
		return []rir.Stmt{s}
	}
}

// prepareExpr rewrites e and every sub-expression it contains: a
// ghost-resolved MatchExpr collapses to its chosen arm's body, every
// ApplyExpr has its ghost-parameter arguments replaced with that
// parameter's default value or dropped (§4.4 bullet 3 vs. bullet 1), a
// co-inductive constructor call has its arguments wrapped in a lazy thunk,
// and a co-inductive field access is wrapped in a forcing read (§4.1).
func prepareExpr(prog *rir.Program, b backend.Backend, e rir.Expr) rir.Expr {
	if e == nil {
		return nil
	}
	switch e := e.(type) {
	case *rir.BinaryExpr:
		e.Left = prepareExpr(prog, b, e.Left)
		e.Right = prepareExpr(prog, b, e.Right)
		return e
	case *rir.UnaryExpr:
		e.Operand = prepareExpr(prog, b, e.Operand)
		return e
	case *rir.ConversionExpr:
		e.Operand = prepareExpr(prog, b, e.Operand)
		return e
	case *rir.CollectionDisplay:
		for i, el := range e.Elements {
			e.Elements[i] = prepareExpr(prog, b, el)
		}
		return e
	case *rir.MapDisplay:
		for i, k := range e.Keys {
			e.Keys[i] = prepareExpr(prog, b, k)
		}
		for i, v := range e.Values {
			e.Values[i] = prepareExpr(prog, b, v)
		}
		return e
	case *rir.IndexSelect:
		e.Collection = prepareExpr(prog, b, e.Collection)
		e.Index = prepareExpr(prog, b, e.Index)
		return e
	case *rir.IndexUpdate:
		e.Collection = prepareExpr(prog, b, e.Collection)
		e.Index = prepareExpr(prog, b, e.Index)
		e.Value = prepareExpr(prog, b, e.Value)
		return e
	case *rir.SeqSlice:
		e.Seq = prepareExpr(prog, b, e.Seq)
		if e.Lo != nil {
			e.Lo = prepareExpr(prog, b, e.Lo)
		}
		if e.Hi != nil {
			e.Hi = prepareExpr(prog, b, e.Hi)
		}
		return e
	case *rir.ArraySelect:
		e.Array = prepareExpr(prog, b, e.Array)
		for i, idx := range e.Indices {
			e.Indices[i] = prepareExpr(prog, b, idx)
		}
		return e
	case *rir.QuantifierExpr:
		e.Body = prepareExpr(prog, b, e.Body)
		return e
	case *rir.ComprehensionExpr:
		if e.Filter != nil {
			e.Filter = prepareExpr(prog, b, e.Filter)
		}
		if e.Element != nil {
			e.Element = prepareExpr(prog, b, e.Element)
		}
		if e.KeyExpr != nil {
			e.KeyExpr = prepareExpr(prog, b, e.KeyExpr)
		}
		return e
	case *rir.LambdaExpr:
		e.Body = prepareExpr(prog, b, e.Body)
		return e
	case *rir.LetExpr:
		e.Value = prepareExpr(prog, b, e.Value)
		e.Body = prepareExpr(prog, b, e.Body)
		return e
	case *rir.MatchExpr:
		e.Scrutinee = prepareExpr(prog, b, e.Scrutinee)
		if i := ResolveMatchArm(e.ScrutineeIsGhost, e.Arms); i >= 0 {
			return prepareExpr(prog, b, e.ArmBodies[i])
		}
		for i := range e.ArmBodies {
			e.ArmBodies[i] = prepareExpr(prog, b, e.ArmBodies[i])
		}
		return e
	case *rir.FieldAccessExpr:
		if e.Receiver != nil {
			e.Receiver = prepareExpr(prog, b, e.Receiver)
		}
		if dt, ok := ownerDatatype(prog, e.Owner); ok {
			return ForceCoinductiveFieldAccess(b, dt, e)
		}
		return e
	case *rir.ThunkExpr:
		e.Inner = prepareExpr(prog, b, e.Inner)
		return e
	case *rir.ForceExpr:
		e.Thunk = prepareExpr(prog, b, e.Thunk)
		return e
	case *rir.ApplyExpr:
		for i, a := range e.Args {
			e.Args[i] = prepareExpr(prog, b, a)
		}
		if formals, keepsFullSignature, ok := calleeFormals(prog, e.Callee, e.Member); ok {
			if keepsFullSignature {
				e.Args = RewriteGhostArgs(prog, formals, e.Args)
			} else {
				e.Args = EraseArgs(formals, e.Args)
			}
		}
		if dt, ok := constructorDatatype(prog, e.Callee, e.Member); ok {
			e.Args = WrapCoinductiveConstructorArgs(b, dt, e.Args)
		}
		return e
	default:
		// Literal, IdentExpr: no sub-expressions to descend into.
		return e
	}
}

// calleeFormals looks up the formal parameter list for an ApplyExpr's
// target, checking both a declaration's members and, for a datatype
// constructor call, its Constructors list (which carries Formals directly
// rather than through the Member interface). keepsFullSignature reports
// whether the target is a Function, the one member kind whose emitted
// signature is not erased of ghost formals (§4.4 bullet 3); every other
// kind (method, predicate, constructor, lemma) erases the formal from its
// signature (bullet 1), so its call sites must drop the argument rather
// than default it.
func calleeFormals(prog *rir.Program, callee rir.DeclRef, member string) (formals []rir.Formal, keepsFullSignature bool, ok bool) {
	if callee.Index < 0 || callee.Index >= len(prog.Decls) {
		return nil, false, false
	}
	decl := prog.Decls[callee.Index]
	var members []rir.Member
	switch d := decl.(type) {
	case *rir.Class:
		members = d.Members
	case *rir.Trait:
		members = d.Members
	case *rir.Datatype:
		members = d.Members
		for _, c := range d.Constructors {
			if c.Name == member {
				return c.Formals, false, true
			}
		}
	}
	for _, m := range members {
		if m.MemberName() != member {
			continue
		}
		switch m := m.(type) {
		case *rir.Method:
			return m.Formals, false, true
		case *rir.Function:
			return m.Formals, true, true
		case *rir.Predicate:
			return m.Formals, false, true
		case *rir.ConstructorMethod:
			return m.Formals, false, true
		case *rir.Lemma:
			return m.Formals, false, true
		}
	}
	return nil, false, false
}

// constructorDatatype reports the Datatype an ApplyExpr's callee/member
// names a constructor of, so prepareExpr knows when to run
// WrapCoinductiveConstructorArgs over its arguments.
func constructorDatatype(prog *rir.Program, callee rir.DeclRef, member string) (*rir.Datatype, bool) {
	if callee.Index < 0 || callee.Index >= len(prog.Decls) {
		return nil, false
	}
	d, ok := prog.Decls[callee.Index].(*rir.Datatype)
	if !ok {
		return nil, false
	}
	for _, c := range d.Constructors {
		if c.Name == member {
			return d, true
		}
	}
	return nil, false
}

// ownerDatatype reports the Datatype a FieldAccessExpr's Owner refers to,
// so prepareExpr knows when to run ForceCoinductiveFieldAccess over the
// access.
func ownerDatatype(prog *rir.Program, owner rir.DeclRef) (*rir.Datatype, bool) {
	if owner.Index < 0 || owner.Index >= len(prog.Decls) {
		return nil, false
	}
	d, ok := prog.Decls[owner.Index].(*rir.Datatype)
	return d, ok
}
