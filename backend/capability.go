// Package backend defines the capability contract every concrete target
// implements (spec §4.2): a backend is a record of function pointers over a
// polymorphic capability object, never a class the driver downcasts (§9).
package backend

import "github.com/blang/semver"

// StringRepr distinguishes how a target represents source-language
// strings: as a sequence of individually addressable code units, or as an
// opaque host object.
type StringRepr int

const (
	CodeUnitString StringRepr = iota
	ObjectString
)

// DocCapability describes how (if at all) a target supports doc comments,
// consumed by the driver's doc-comment rendering pass (SPEC_FULL §4.6 NEW).
type DocCapability int

const (
	DocNone DocCapability = iota
	DocLine
	DocBlock
)

// IdentifierCase is the target's conventional casing for a name class,
// consumed by the shared renderer's Sanitize in backends/shared instead of
// being re-derived in every backend (SPEC_FULL §4.2 NEW).
type IdentifierCase int

const (
	CasePreserve IdentifierCase = iota
	CaseUpperCamel
	CaseLowerCamel
	CaseSnake
)

// Capabilities is the static, immutable description of what a backend
// requires and supports. The driver reads it; a backend never mutates it
// after construction.
type Capabilities struct {
	// ErasedGenerics is true when generic type parameters are erased at
	// compile time rather than reified as runtime descriptors (§4.5).
	ErasedGenerics bool

	// NativeIntWidths lists the native integer widths available, ascending
	// (e.g. []int{8, 16, 32, 64}), used by numeric.NativeBacking.
	NativeIntWidths []int

	// SupportsTraitCollections is true when a collection may hold elements
	// of an unsized trait type (§4.5).
	SupportsTraitCollections bool

	// SupportsCoDatatypesNatively is true when the target has native lazy
	// values; false means the driver must generate the thunk wrapper
	// itself (§4.1 "Datatype lowering").
	SupportsCoDatatypesNatively bool

	// SupportsLabeledLoops is true when the target can break to an
	// arbitrary enclosing loop by label; false means the tail-call and
	// break-to-label lowering must emulate labels with a sentinel loop
	// (§4.1, §9).
	SupportsLabeledLoops bool

	// MaxTupleArity is the largest tuple arity the target represents
	// natively; 0 means unbounded.
	MaxTupleArity int

	StringRepr StringRepr

	// ReservedWords is the target's reserved-word list; DisambiguateSuffix
	// is appended to any emitted identifier that collides with one of them
	// (§4.2, §8 scenario 3).
	ReservedWords        []string
	DisambiguateSuffix   string
	IdentifierCase       IdentifierCase
	DocCapability        DocCapability

	// MinRuntimeVersion gates which of the bits above actually apply: a
	// backend may report a capability bit as available only from a given
	// runtime revision onward (SPEC_FULL §4.2 NEW), letting the driver ask
	// "does this specific runtime target support X" rather than treating
	// capabilities as forever-static per backend.
	MinRuntimeVersion semver.Version
}

// SupportsAt reports whether targetVersion is new enough to honor the
// capabilities this record advertises.
func (c Capabilities) SupportsAt(targetVersion semver.Version) bool {
	return !targetVersion.LT(c.MinRuntimeVersion)
}
