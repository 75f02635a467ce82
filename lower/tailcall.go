package lower

import "github.com/dafny-lang/dafny-codegen/rir"

// TransformTailCalls implements §4.1's tail-call transformation: wrap the
// body in a labeled infinite loop, and rewrite every self-call reachable in
// tail position into (a) assignments to the bound parameters, (b) a jump
// (ContinueStmt) to the loop's label. Backends whose target cannot express
// labels lower ContinueStmt/BreakStmt by emulating with a sentinel loop
// (§4.1); that emulation is each backend's concern, not this transform's.
func TransformTailCalls(selfRef rir.DeclRef, selfName string, formals []rir.Formal, body []rir.Stmt, label string) []rir.Stmt {
	rewritten := rewriteTailPositions(body, selfRef, selfName, formals, label)
	return []rir.Stmt{&rir.LoopStmt{Kind: rir.InfiniteLoop, Label: label, Body: rewritten}}
}

func isSelfCall(e *rir.ApplyExpr, selfRef rir.DeclRef, selfName string) bool {
	return e.Callee == selfRef && (e.Member == selfName || e.Member == "")
}

// rewriteTailPositions walks a straight-line block, leaving every statement
// but the last untouched, and expanding the last statement if (and only
// if) it is itself, or contains, a self-call in tail position.
func rewriteTailPositions(stmts []rir.Stmt, selfRef rir.DeclRef, selfName string, formals []rir.Formal, label string) []rir.Stmt {
	if len(stmts) == 0 {
		return stmts
	}
	out := make([]rir.Stmt, len(stmts)-1, len(stmts))
	copy(out, stmts[:len(stmts)-1])
	last := stmts[len(stmts)-1]
	return append(out, rewriteTailStmt(last, selfRef, selfName, formals, label)...)
}

func rewriteTailStmt(s rir.Stmt, selfRef rir.DeclRef, selfName string, formals []rir.Formal, label string) []rir.Stmt {
	switch s := s.(type) {
	case *rir.ReturnStmt:
		if len(s.Values) == 1 {
			if call, ok := s.Values[0].(*rir.ApplyExpr); ok && isSelfCall(call, selfRef, selfName) {
				return selfCallToJump(call, formals, label)
			}
		}
		return []rir.Stmt{s}
	case *rir.CallStmt:
		if isSelfCall(s.Call, selfRef, selfName) {
			return selfCallToJump(s.Call, formals, label)
		}
		return []rir.Stmt{s}
	case *rir.IfStmt:
		s.Then = rewriteTailPositions(s.Then, selfRef, selfName, formals, label)
		if s.Else != nil {
			s.Else = rewriteTailPositions(s.Else, selfRef, selfName, formals, label)
		}
		return []rir.Stmt{s}
	case *rir.MatchStmt:
		for i := range s.ArmBodies {
			s.ArmBodies[i] = rewriteTailPositions(s.ArmBodies[i], selfRef, selfName, formals, label)
		}
		return []rir.Stmt{s}
	default:
		return []rir.Stmt{s}
	}
}

// selfCallToJump builds the (a) parameter-assignment, (b) jump-to-label
// sequence a tail self-call rewrites to. No argument may observe a
// partially-updated parameter set, so with more than one formal every
// argument is first evaluated into a fresh local (the formal's name plus
// "_next") and only then assigned to its formal; a single formal is
// assigned directly.
func selfCallToJump(call *rir.ApplyExpr, formals []rir.Formal, label string) []rir.Stmt {
	n := len(formals)
	if len(call.Args) < n {
		n = len(call.Args)
	}
	out := make([]rir.Stmt, 0, 2*n+1)
	values := call.Args[:n]
	if n > 1 {
		values = make([]rir.Expr, n)
		for i := 0; i < n; i++ {
			tmp := formals[i].Name + "_next"
			out = append(out, &rir.VarDeclStmt{Name: tmp, Type: formals[i].Type, Initial: call.Args[i]})
			values[i] = &rir.IdentExpr{ExprBase: rir.ExprBase{Type: formals[i].Type}, Name: tmp}
		}
	}
	for i := 0; i < n; i++ {
		target := &rir.IdentExpr{ExprBase: rir.ExprBase{Type: formals[i].Type}, Name: formals[i].Name}
		out = append(out, &rir.AssignStmt{Target: target, Value: values[i]})
	}
	out = append(out, &rir.ContinueStmt{Label: label})
	return out
}
