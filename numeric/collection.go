package numeric

import "github.com/dafny-lang/dafny-codegen/rir"

// ElementAllowed reports whether a collection with the given element type
// may be lowered by a backend that advertises supportsTraitElements
// (§4.5 "Collection element types forbid bare trait (unsized) parameters
// unless the backend's capability bit allows it"). isTraitType is supplied
// by the caller because only the driver, which has the full RIR in scope,
// knows whether a UserDefinedType's declaration is a trait.
func ElementAllowed(elem rir.Type, isTraitType func(rir.Type) bool, supportsTraitElements bool) bool {
	if supportsTraitElements {
		return true
	}
	return !isTraitType(elem)
}

// SubsequenceLength is the reference semantics every backend's emitted
// `subsequence(lo, hi)` must satisfy (§8 round-trip law): length hi-lo,
// agreeing with the source element-wise. Exposed so property tests can
// check a backend's *emitted* behavior against it without duplicating the
// arithmetic in every backend test.
func SubsequenceLength(lo, hi int) int {
	return hi - lo
}
