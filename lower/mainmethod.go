package lower

import (
	"github.com/dafny-lang/dafny-codegen/diag"
	"github.com/dafny-lang/dafny-codegen/rir"
)

// MainCandidate pairs a qualifying method with the declaration that
// encloses it, since rir.Member carries no back-reference (§9).
type MainCandidate struct {
	Method    *rir.Method
	Enclosing rir.TopLevelDecl
}

func nonGhostInCount(m *rir.Method) int {
	n := 0
	for _, f := range m.Formals {
		if !f.Ghost {
			n++
		}
	}
	return n
}

func instantiableWithNoRequiredState(decl rir.TopLevelDecl) bool {
	switch d := decl.(type) {
	case *rir.Class:
		return d.IsDefaultClass
	default:
		return false
	}
}

func qualifies(m *rir.Method, enclosing rir.TopLevelDecl) bool {
	if m.Ghost || nonGhostInCount(m) != 0 {
		return false
	}
	return m.Static || instantiableWithNoRequiredState(enclosing)
}

func candidates(prog *rir.Program) []MainCandidate {
	var out []MainCandidate
	for _, decl := range prog.Decls {
		var members []rir.Member
		switch d := decl.(type) {
		case *rir.Class:
			members = d.Members
		case *rir.Trait:
			members = d.Members
		case *rir.Datatype:
			members = d.Members
		default:
			continue
		}
		for _, m := range members {
			method, ok := m.(*rir.Method)
			if !ok || !method.IsMainCandidate {
				continue
			}
			if qualifies(method, decl) {
				out = append(out, MainCandidate{Method: method, Enclosing: decl})
			}
		}
	}
	return out
}

// FindMain implements §4.1's main-method discovery. override, when
// non-empty, selects a specific fully-qualified name instead of relying on
// the resolver's @Main markers (§6 "optional main-method override").
func FindMain(prog *rir.Program, override string) (*MainCandidate, diag.Diagnostics, error) {
	cs := candidates(prog)
	if override != "" {
		for i := range cs {
			if cs[i].Method.Name == override || cs[i].Enclosing.DeclName()+"."+cs[i].Method.Name == override {
				return &cs[i], nil, nil
			}
		}
		var ds diag.Diagnostics
		ds = ds.Append(diag.Diagnostic{
			Severity: diag.Error,
			Summary:  "main-method override not found",
			Detail:   override,
		})
		return nil, ds, ds
	}
	switch len(cs) {
	case 0:
		return nil, nil, nil // no-main artifact
	case 1:
		return &cs[0], nil, nil
	default:
		var ds diag.Diagnostics
		for _, c := range cs {
			ds = ds.Append(diag.Diagnostic{
				Severity: diag.Error,
				Summary:  "multiple main-method candidates",
				Detail:   c.Enclosing.DeclName() + "." + c.Method.Name,
				Token:    c.Method.Token,
			})
		}
		return nil, ds, ds
	}
}
