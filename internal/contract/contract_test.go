package contract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssertPanicsOnFalse(t *testing.T) {
	assert.Panics(t, func() { Assert(false) })
	assert.NotPanics(t, func() { Assert(true) })
}

func TestAssertfIncludesFormattedMessage(t *testing.T) {
	defer func() {
		r := recover()
		f, ok := r.(*Failure)
		if !ok {
			t.Fatalf("expected *Failure panic, got %T", r)
		}
		assert.Contains(t, f.Error(), "widget")
	}()
	Assertf(false, "bad value %s", "widget")
}

func TestRequireIncludesParamName(t *testing.T) {
	defer func() {
		r := recover()
		f, ok := r.(*Failure)
		if !ok {
			t.Fatalf("expected *Failure panic, got %T", r)
		}
		assert.Contains(t, f.Error(), "count")
	}()
	Require(false, "count")
}

func TestRequirefIncludesParamAndDetail(t *testing.T) {
	defer func() {
		r := recover()
		f, ok := r.(*Failure)
		if !ok {
			t.Fatalf("expected *Failure panic, got %T", r)
		}
		assert.Contains(t, f.Error(), "count")
		assert.Contains(t, f.Error(), "must be positive")
	}()
	Requiref(false, "count", "must be positive, got %d", -1)
}

func TestFailfAlwaysPanics(t *testing.T) {
	assert.Panics(t, func() { Failf("unreachable: %s", "oops") })
}

func TestIgnoreNeverPanicsRegardlessOfError(t *testing.T) {
	assert.NotPanics(t, func() { Ignore(nil) })
	assert.NotPanics(t, func() { Ignore(errors.New("boom")) })
}
