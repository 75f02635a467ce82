package lower

import (
	"github.com/dafny-lang/dafny-codegen/backend"
	"github.com/dafny-lang/dafny-codegen/diag"
	"github.com/dafny-lang/dafny-codegen/numeric"
	"github.com/dafny-lang/dafny-codegen/rir"
)

// WitnessChecker answers "does this trait/abstract declaration have at
// least one non-ghost, instantiable implementor" — the question the
// compilability filter needs to decide whether a member's signature
// mentions an abstract type with no witness (§4.1). It is supplied by the
// driver, which alone has the whole decl graph in scope; the filter itself
// never walks the Program to answer this.
type WitnessChecker func(rir.DeclRef) bool

// keepMember applies the compilability filter's member-level rules (§4.1,
// §4.4, §4.5) and returns (keep, reason-if-dropped, diagnostics). The
// trait-collection-element rejection is the only rule among these that is
// non-fatal-but-reported (§7 kind 1): the member is still dropped, but the
// returned diagnostics carry a source-tokened, non-fatal record of why,
// rather than only the glog trace every other drop reason gets.
func keepMember(prog *rir.Program, enclosingGhost bool, m rir.Member, b backend.Backend, target string, hasWitness WitnessChecker) (bool, string, diag.Diagnostics) {
	if m.IsGhost() {
		return false, "ghost member", nil
	}
	if enclosingGhost {
		return false, "enclosing declaration is ghost", nil
	}
	for _, t := range signatureTypes(m) {
		if t != nil && !rir.IsGround(t) {
			internalf("compilability filter", m.MemberName(), "unresolved type proxy in member signature (§3)")
		}
	}
	if method, ok := m.(*rir.Method); ok && onlyGhostOutFormals(method) {
		return false, "method has only ghost out-parameters", nil
	}
	if mentionsWitnesslessAbstractType(m, b, hasWitness) {
		return false, "signature mentions an abstract type with no witness and the target lacks erased generics", nil
	}
	if construct, rejected := rejectedCollectionElement(prog, m, b); rejected {
		reason := "collection element type is a bare trait and the target lacks SupportsTraitCollections"
		return false, reason, CapabilityReject(nil, memberToken(m), target, construct)
	}
	return true, "", nil
}

func onlyGhostOutFormals(m *rir.Method) bool {
	if len(m.OutFormals) == 0 {
		return false
	}
	for _, f := range m.OutFormals {
		if !f.Ghost {
			return false
		}
	}
	return true
}

func signatureTypes(m rir.Member) []rir.Type {
	switch m := m.(type) {
	case *rir.Method:
		ts := make([]rir.Type, 0, len(m.Formals)+len(m.OutFormals))
		for _, f := range m.Formals {
			ts = append(ts, f.Type)
		}
		for _, f := range m.OutFormals {
			ts = append(ts, f.Type)
		}
		return ts
	case *rir.Function:
		ts := make([]rir.Type, 0, len(m.Formals)+1)
		for _, f := range m.Formals {
			ts = append(ts, f.Type)
		}
		return append(ts, m.Result)
	case *rir.Predicate:
		ts := make([]rir.Type, 0, len(m.Formals))
		for _, f := range m.Formals {
			ts = append(ts, f.Type)
		}
		return ts
	case *rir.ConstructorMethod:
		ts := make([]rir.Type, 0, len(m.Formals))
		for _, f := range m.Formals {
			ts = append(ts, f.Type)
		}
		return ts
	case *rir.Field:
		return []rir.Type{m.Type}
	case *rir.Constant:
		return []rir.Type{m.Type}
	default:
		return nil
	}
}

func mentionsWitnesslessAbstractType(m rir.Member, b backend.Backend, hasWitness WitnessChecker) bool {
	if b.Capabilities().ErasedGenerics || hasWitness == nil {
		return false
	}
	for _, t := range signatureTypes(m) {
		if udt, ok := t.(rir.UserDefinedType); ok && !hasWitness(udt.Decl) {
			return true
		}
	}
	return false
}

// CapabilityReject reports, as a diagnostic, a construct the active
// backend's capability bits declare unsupported (§4.1 bullet 4, §7 kind 1).
// It is non-fatal: the caller keeps lowering the next declaration.
func CapabilityReject(ds diag.Diagnostics, token diag.SourceToken, target, construct string) diag.Diagnostics {
	return ds.Unsupported(token, target, construct)
}

// rejectedCollectionElement reports the first collection in m's signature
// whose element (or map key) type is a bare trait the active backend's
// SupportsTraitCollections bit does not allow (§4.5 "collection element
// types forbid bare trait parameters unless the backend's capability bit
// allows it").
func rejectedCollectionElement(prog *rir.Program, m rir.Member, b backend.Backend) (string, bool) {
	supportsTraitElements := b.Capabilities().SupportsTraitCollections
	for _, t := range signatureTypes(m) {
		ct, ok := t.(rir.CollectionType)
		if !ok {
			continue
		}
		if !numeric.ElementAllowed(ct.Element, func(et rir.Type) bool { return isTraitType(prog, et) }, supportsTraitElements) {
			return ct.String(), true
		}
		if ct.Key != nil && !numeric.ElementAllowed(ct.Key, func(et rir.Type) bool { return isTraitType(prog, et) }, supportsTraitElements) {
			return ct.String(), true
		}
	}
	return "", false
}

// isTraitType reports whether t refers to a Trait declaration, resolved
// through prog's declaration arena.
func isTraitType(prog *rir.Program, t rir.Type) bool {
	udt, ok := t.(rir.UserDefinedType)
	if !ok {
		return false
	}
	if udt.Decl.Index < 0 || udt.Decl.Index >= len(prog.Decls) {
		return false
	}
	_, ok = prog.Decls[udt.Decl.Index].(*rir.Trait)
	return ok
}

// memberToken reads the source token every Member variant carries through
// its embedded MemberBase; like declIsGhost, kept off the shared interface
// deliberately (§9) so only the callers that need it type-switch for it.
func memberToken(m rir.Member) diag.SourceToken {
	switch m := m.(type) {
	case *rir.Field:
		return m.Token
	case *rir.Constant:
		return m.Token
	case *rir.Method:
		return m.Token
	case *rir.Function:
		return m.Token
	case *rir.Predicate:
		return m.Token
	case *rir.ConstructorMethod:
		return m.Token
	case *rir.Lemma:
		return m.Token
	default:
		return diag.SourceToken{}
	}
}
