// Package numeric implements the numeric, bitvector, and collection
// lowering policies shared by every backend (spec §4.5): Euclidean
// integer division and modulus, bitvector masking and rotation, and the
// collection-element capability check. It also hosts Value, a cty-backed
// constant-value representation.
package numeric

import (
	"fmt"
	"math/big"

	"github.com/zclconf/go-cty/cty"
)

// Value is a small closed literal-value representation (bool, string or
// char, arbitrary-precision number). rir.Literal payloads and
// lower.DefaultValue do not use it; they hold *big.Int, *big.Float, bool,
// rune and string directly. It wraps cty.Value, the same typed-literal representation
// the teacher's own expression lowerer uses for HCL2 literal constants.
type Value struct {
	cty cty.Value
}

func BoolValue(b bool) Value   { return Value{cty.BoolVal(b)} }
func StringValue(s string) Value { return Value{cty.StringVal(s)} }
func CharValue(r rune) Value   { return Value{cty.StringVal(string(r))} }

// IntValue wraps an arbitrary-precision integer.
func IntValue(i *big.Int) Value {
	f := new(big.Float).SetInt(i)
	return Value{cty.NumberVal(f)}
}

func IntValueFromInt64(i int64) Value {
	return IntValue(big.NewInt(i))
}

// RealValue wraps an arbitrary-precision decimal.
func RealValue(r *big.Float) Value {
	return Value{cty.NumberVal(r)}
}

func (v Value) IsBool() bool   { return v.cty.Type() == cty.Bool }
func (v Value) IsString() bool { return v.cty.Type() == cty.String }
func (v Value) IsNumber() bool { return v.cty.Type() == cty.Number }

func (v Value) Bool() bool { return v.cty.True() }

func (v Value) String() string {
	return v.cty.AsString()
}

func (v Value) BigFloat() *big.Float {
	return v.cty.AsBigFloat()
}

func (v Value) BigInt() *big.Int {
	f := v.BigFloat()
	i, _ := f.Int(nil)
	return i
}

// GoString renders v the way a diagnostic or debug dump should, never as
// emitted target syntax (each backend owns its own literal syntax).
func (v Value) GoString() string {
	switch {
	case v.IsBool():
		return fmt.Sprintf("%v", v.Bool())
	case v.IsString():
		return fmt.Sprintf("%q", v.String())
	case v.IsNumber():
		return v.BigFloat().Text('f', -1)
	default:
		return "<value>"
	}
}
