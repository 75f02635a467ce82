package lower

import "github.com/dafny-lang/dafny-codegen/rir"

// EraseFormals drops every ghost formal, implementing §4.4's first bullet
// for method/constructor signatures; call-site argument lists built against
// them go through EraseArgs.
func EraseFormals(formals []rir.Formal) []rir.Formal {
	out := make([]rir.Formal, 0, len(formals))
	for _, f := range formals {
		if !f.Ghost {
			out = append(out, f)
		}
	}
	return out
}

// RewriteGhostArgs implements §4.4's third bullet: a function with a
// non-ghost result keeps its signature even when some of its parameters
// are ghost, so the *driver* — never the backend — replaces the
// corresponding call-site arguments with that parameter type's canonical
// default before any backend ever sees the call. Only call sites targeting
// a Function use this; every other member kind erases the formal from its
// signature and must drop the argument instead (see EraseArgs).
func RewriteGhostArgs(prog *rir.Program, formals []rir.Formal, args []rir.Expr) []rir.Expr {
	out := make([]rir.Expr, len(args))
	copy(out, args)
	for i, f := range formals {
		if i >= len(out) {
			break
		}
		if f.Ghost {
			out[i] = DefaultValue(prog, f.Type)
		}
	}
	return out
}

// EraseArgs implements §4.4 bullet 1 at call sites: a method, constructor,
// predicate, or lemma drops the ghost formal from its signature entirely
// (EraseFormals), so a call to it must drop the corresponding argument too
// or the emitted call's arity no longer matches the emitted signature.
func EraseArgs(formals []rir.Formal, args []rir.Expr) []rir.Expr {
	out := make([]rir.Expr, 0, len(args))
	for i, a := range args {
		if i < len(formals) && formals[i].Ghost {
			continue
		}
		out = append(out, a)
	}
	return out
}

// ErasedConstantValue implements §4.4's last bullet: a constant whose RHS
// reads ghost state is emitted with its RHS replaced by its type's default.
func ErasedConstantValue(prog *rir.Program, c *rir.Constant) rir.Expr {
	if c.RHSMentionsGhost {
		return DefaultValue(prog, c.Type)
	}
	return c.Value
}

// ResolveMatchArm implements §4.4's match-erasure bullet: when the
// scrutinee is ghost, the resolver has already marked exactly one arm as
// the statically-taken one, and the driver lowers only that arm's body,
// dropping the match construct entirely. It returns the index of the arm
// to keep, or -1 if the scrutinee is not ghost (lower every arm normally).
func ResolveMatchArm(scrutineeIsGhost bool, arms []rir.MatchArm) int {
	if !scrutineeIsGhost {
		return -1
	}
	for i, a := range arms {
		if a.IsGhostArm {
			return i
		}
	}
	return -1
}

// IsNoOpStatement reports whether s erases to nothing under §4.4's last two
// bullets (assertions and lemma invocations).
func IsNoOpStatement(s rir.Stmt) bool {
	switch s.(type) {
	case *rir.AssertStmt, *rir.LemmaCallStmt:
		return true
	default:
		return false
	}
}
