package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dafny-lang/dafny-codegen/rir"
)

func TestElementAllowedPermitsNonTraitRegardlessOfCapability(t *testing.T) {
	isTrait := func(rir.Type) bool { return false }
	assert.True(t, ElementAllowed(rir.IntType{}, isTrait, false))
	assert.True(t, ElementAllowed(rir.IntType{}, isTrait, true))
}

func TestElementAllowedRejectsTraitUnlessCapable(t *testing.T) {
	isTrait := func(rir.Type) bool { return true }
	assert.False(t, ElementAllowed(rir.UserDefinedType{}, isTrait, false))
	assert.True(t, ElementAllowed(rir.UserDefinedType{}, isTrait, true))
}

func TestSubsequenceLength(t *testing.T) {
	assert.Equal(t, 0, SubsequenceLength(3, 3))
	assert.Equal(t, 5, SubsequenceLength(2, 7))
}
