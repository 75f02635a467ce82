package numeric

import "math/big"

// Mask returns 2^width - 1, the value every bitvector arithmetic result
// narrower than its native backing must be ANDed with after arithmetic
// (§4.5, §8 boundary "bitvector of width equal to its native backing emits
// no mask").
func Mask(width int) *big.Int {
	one := big.NewInt(1)
	m := new(big.Int).Lsh(one, uint(width))
	return m.Sub(m, one)
}

// MaskTo applies Mask(width) to v, simulating what a backend's emitted
// "& mask" must do. Used by tests to check a backend's emitted arithmetic
// against the reference semantics (§8 round-trip law).
func MaskTo(v *big.Int, width int) *big.Int {
	return new(big.Int).And(v, Mask(width))
}

// RotateLeft implements width-W rotation as the expansion §4.5 mandates:
// (x << k) | (x >> (W - k)), masked to W bits after each shift. k is
// reduced modulo width first so a rotation by a multiple of the width is a
// no-op, matching the boundary behavior in §8.
func RotateLeft(x *big.Int, k, width int) *big.Int {
	if width <= 0 {
		return new(big.Int)
	}
	k = ((k % width) + width) % width
	if k == 0 {
		return MaskTo(x, width)
	}
	mask := Mask(width)
	left := new(big.Int).Lsh(x, uint(k))
	left.And(left, mask)
	right := new(big.Int).Rsh(x, uint(width-k))
	right.And(right, mask)
	return new(big.Int).Or(left, right)
}

func RotateRight(x *big.Int, k, width int) *big.Int {
	if width <= 0 {
		return new(big.Int)
	}
	k = ((k % width) + width) % width
	return RotateLeft(x, width-k, width)
}

// NativeBacking chooses the narrowest native integer width from widths
// (assumed sorted ascending) that can losslessly hold a bitvector of the
// given width, or 0 if none can (the bitvector must then lower via
// arbitrary-precision arithmetic plus masking, §4.5).
func NativeBacking(width int, widths []int) int {
	for _, w := range widths {
		if width <= w {
			return w
		}
	}
	return 0
}
