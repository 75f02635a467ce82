// Package rir defines the Resolved Intermediate Representation consumed by
// the lowering core (spec §3). The resolver and type-checker that produce
// an rir.Program are external collaborators; this package only describes
// the shape they hand the core.
package rir

import "fmt"

// Type is the closed set of RIR type variants named in spec §3. Every
// resolved expression carries a non-nil Type. Unlike the class hierarchy a
// naive port would reach for, Type is a sealed interface over concrete
// structs (§9 "deep inheritance" redesign) so the driver and backends
// dispatch with a type switch instead of virtual calls.
type Type interface {
	isType()
	// String renders the type for diagnostics; it is never used as emitted
	// target syntax.
	String() string
}

type BoolType struct{}

func (BoolType) isType()        {}
func (BoolType) String() string { return "bool" }

type CharType struct{}

func (CharType) isType()        {}
func (CharType) String() string { return "char" }

// IntType is the arbitrary-precision integer type.
type IntType struct{}

func (IntType) isType()        {}
func (IntType) String() string { return "int" }

// RealType is the arbitrary-precision decimal type.
type RealType struct{}

func (RealType) isType()        {}
func (RealType) String() string { return "real" }

// BitvectorType is a bitvector of static Width bits. NativeBits is the
// width of the smallest native integer type that can back it losslessly, or
// 0 if no native type suffices and the backend must fall back to
// arbitrary-precision arithmetic plus masking (§4.5).
type BitvectorType struct {
	Width      int
	NativeBits int
}

func (BitvectorType) isType() {}
func (t BitvectorType) String() string {
	return fmt.Sprintf("bv%d", t.Width)
}

// HasNativeBacking reports whether NativeBits can losslessly hold Width
// bits, i.e. the backend may lower this bitvector to a native integer.
func (t BitvectorType) HasNativeBacking() bool {
	return t.NativeBits > 0 && t.Width <= t.NativeBits
}

// CollectionKind distinguishes the four collection shapes of §4.5.
type CollectionKind int

const (
	SetKind CollectionKind = iota
	SeqKind
	MultisetKind
	MapKind
)

func (k CollectionKind) String() string {
	switch k {
	case SetKind:
		return "set"
	case SeqKind:
		return "seq"
	case MultisetKind:
		return "multiset"
	case MapKind:
		return "map"
	default:
		return "collection"
	}
}

// CollectionType covers set, seq, multiset (all single-element-type) and
// map (key/value). Key is nil for non-map kinds.
type CollectionType struct {
	Kind    CollectionKind
	Key     Type // nil unless Kind == MapKind
	Element Type
}

func (CollectionType) isType() {}
func (t CollectionType) String() string {
	if t.Kind == MapKind {
		return fmt.Sprintf("map<%s, %s>", t.Key, t.Element)
	}
	return fmt.Sprintf("%s<%s>", t.Kind, t.Element)
}

// ArrayType is a Rank-dimensional mutable native array of Element.
type ArrayType struct {
	Rank    int
	Element Type
}

func (ArrayType) isType() {}
func (t ArrayType) String() string {
	return fmt.Sprintf("array%d<%s>", t.Rank, t.Element)
}

// UserDefinedType refers to a declared class, trait, datatype, newtype, or
// subset type by a stable arena index (§9 "back-references by id"), with
// any type arguments it was instantiated at.
type UserDefinedType struct {
	Decl     DeclRef
	TypeArgs []Type
}

func (UserDefinedType) isType() {}
func (t UserDefinedType) String() string {
	if len(t.TypeArgs) == 0 {
		return t.Decl.Name
	}
	return fmt.Sprintf("%s<%d type args>", t.Decl.Name, len(t.TypeArgs))
}

// ArrowType is a function type: Inputs -> Output.
type ArrowType struct {
	Inputs []Type
	Output Type
}

func (ArrowType) isType() {}
func (t ArrowType) String() string {
	return fmt.Sprintf("(%d args) -> %s", len(t.Inputs), t.Output)
}

// TypeParameter is a reference to an enclosing declaration's type formal.
type TypeParameterType struct {
	Name string
}

func (TypeParameterType) isType()        {}
func (t TypeParameterType) String() string { return t.Name }

// TypeProxy is an unresolved type placeholder. Its presence past the
// resolver is always a bug upstream of the core (§3); the compilability
// filter reports one in a member's signature as an internal invariant
// violation rather than trying to lower it. Types inside member bodies are
// not checked there.
type TypeProxy struct{}

func (TypeProxy) isType()        {}
func (TypeProxy) String() string { return "<unresolved>" }

// IsGround reports whether t contains no TypeProxy anywhere in its
// structure. The compilability filter asserts this for every type in a
// member's signature.
func IsGround(t Type) bool {
	switch t := t.(type) {
	case TypeProxy:
		return false
	case CollectionType:
		if t.Key != nil && !IsGround(t.Key) {
			return false
		}
		return IsGround(t.Element)
	case ArrayType:
		return IsGround(t.Element)
	case UserDefinedType:
		for _, a := range t.TypeArgs {
			if !IsGround(a) {
				return false
			}
		}
		return true
	case ArrowType:
		for _, in := range t.Inputs {
			if !IsGround(in) {
				return false
			}
		}
		return IsGround(t.Output)
	default:
		return true
	}
}
