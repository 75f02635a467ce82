package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnsupportedAppendsErrorSeverity(t *testing.T) {
	var ds Diagnostics
	ds = ds.Unsupported(SourceToken{File: "a.dfy", Line: 3}, "gosys", "trait collection")
	a := assert.New(t)
	a.Len(ds, 1)
	a.Equal(Error, ds[0].Severity)
	a.Contains(ds[0].Summary, "gosys")
	a.True(ds.HasErrors())
}

func TestNativeToolFailureTrimsStderr(t *testing.T) {
	var ds Diagnostics
	ds = ds.NativeToolFailure("javac", "  boom\n")
	assert.Equal(t, "boom", ds[0].Detail)
}

func TestHasErrorsFalseWhenOnlyWarnings(t *testing.T) {
	ds := Diagnostics{{Severity: Warning, Summary: "heads up"}}
	assert.False(t, ds.HasErrors())
}

func TestErrorPluralizesProblemCount(t *testing.T) {
	one := Diagnostics{{Severity: Error, Summary: "bad", Detail: "x"}}
	assert.Contains(t, one.Error(), "1 problem found")

	many := Diagnostics{
		{Severity: Error, Summary: "bad1", Detail: "x"},
		{Severity: Error, Summary: "bad2", Detail: "y"},
	}
	assert.Contains(t, many.Error(), "2 problems found")
}

func TestErrorIncludesSourcePositionWhenTokenSet(t *testing.T) {
	ds := Diagnostics{{
		Severity: Error,
		Summary:  "bad",
		Detail:   "x",
		Token:    SourceToken{File: "a.dfy", Line: 5, Column: 2},
	}}
	assert.Contains(t, ds.Error(), "a.dfy:5,2")
}

func TestHCLConvertsEveryDiagnostic(t *testing.T) {
	ds := Diagnostics{
		{Severity: Error, Summary: "a"},
		{Severity: Warning, Summary: "b"},
	}
	out := ds.HCL()
	assert.Len(t, out, 2)
	assert.Equal(t, "a", out[0].Summary)
	assert.Equal(t, "b", out[1].Summary)
}
