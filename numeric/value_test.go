package numeric

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueKindPredicates(t *testing.T) {
	assert.True(t, BoolValue(true).IsBool())
	assert.True(t, StringValue("x").IsString())
	assert.True(t, CharValue('c').IsString())
	assert.True(t, IntValueFromInt64(42).IsNumber())
}

func TestValueBigIntRoundTrip(t *testing.T) {
	want := big.NewInt(123456789)
	v := IntValue(want)
	assert.Equal(t, want.String(), v.BigInt().String())
}

func TestValueGoStringFormats(t *testing.T) {
	assert.Equal(t, "true", BoolValue(true).GoString())
	assert.Equal(t, `"hi"`, StringValue("hi").GoString())
	assert.Equal(t, "7", IntValueFromInt64(7).GoString())
}
