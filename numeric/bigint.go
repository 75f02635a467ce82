package numeric

import "math/big"

// EuclideanDiv and EuclideanMod implement the source language's Euclidean
// integer division and modulus (§4.5): the result of Mod always has the
// sign of the divisor's magnitude convention used by Euclidean division,
// i.e. 0 <= EuclideanMod(a, b) < |b| for b != 0, unlike Go's native
// truncated "/" and "%" which take the sign of the dividend. Every backend
// whose host language also truncates emits an adjustment; backends whose
// host language is already Euclidean (few are) can lower directly to the
// native operator and skip the adjustment — that decision is made in each
// backend's emitter, not here: this package only defines the reference
// semantics backends must preserve.
func EuclideanDiv(a, b *big.Int) *big.Int {
	q := new(big.Int)
	m := new(big.Int)
	q.DivMod(a, b, m)
	// big.Int.DivMod already implements Euclidean division (0 <= m < |b|)
	// per its documented contract, so q is the answer directly.
	return q
}

func EuclideanMod(a, b *big.Int) *big.Int {
	m := new(big.Int)
	new(big.Int).DivMod(a, b, m)
	return m
}

// NeedsTruncatedAdjustment reports whether a host language's native
// truncated "/" and "%" disagree with EuclideanDiv/EuclideanMod for this
// operand pair. Backends targeting a truncating host language use this to
// decide whether the adjustment code in §4.5 is reachable for a given
// constant-folded pair, e.g. when deciding whether a literal division can
// skip the adjustment entirely.
func NeedsTruncatedAdjustment(a, b *big.Int) bool {
	if b.Sign() == 0 {
		return false
	}
	nativeRem := new(big.Int).Rem(a, b)
	return nativeRem.Cmp(EuclideanMod(a, b)) != 0
}
