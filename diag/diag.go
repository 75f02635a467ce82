// Package diag accumulates the compiler-facing problems the lowering core
// reports: unsupported constructs and native-tool failures (§7 kinds 1 and
// 4). Internal invariant violations and I/O failures (kinds 2 and 3) are
// plain Go errors, not diagnostics, because they abort the whole run rather
// than accumulate alongside other problems.
package diag

import (
	"fmt"
	"strings"

	"github.com/gedex/inflector"
	"github.com/hashicorp/hcl/v2"
)

// Severity mirrors hcl.DiagnosticSeverity so callers never need to import
// hcl directly just to construct a diagnostic.
type Severity = hcl.DiagnosticSeverity

const (
	Error   Severity = hcl.DiagError
	Warning Severity = hcl.DiagWarning
)

// SourceToken identifies the RIR node a diagnostic is about. The resolver
// hands the core a source position for every node it produces; the core
// never invents one.
type SourceToken struct {
	File      string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

func (t SourceToken) toRange() *hcl.Range {
	if t.File == "" && t.Line == 0 {
		return nil
	}
	end := hcl.Pos{Line: t.EndLine, Column: t.EndColumn}
	if t.EndLine == 0 {
		end = hcl.Pos{Line: t.Line, Column: t.Column}
	}
	return &hcl.Range{
		Filename: t.File,
		Start:    hcl.Pos{Line: t.Line, Column: t.Column},
		End:      end,
	}
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Severity Severity
	Summary  string
	Detail   string
	Token    SourceToken
}

func (d Diagnostic) toHCL() *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: d.Severity,
		Summary:  d.Summary,
		Detail:   d.Detail,
		Subject:  d.Token.toRange(),
	}
}

// Diagnostics is an accumulated, ordered set of problems for one
// compilation. It implements error so it can be returned directly once a
// run is known to have failed.
type Diagnostics []Diagnostic

// Append records d, returning the grown slice (mirrors append's shape so
// driver code reads as `diags = diags.Append(...)`).
func (ds Diagnostics) Append(d Diagnostic) Diagnostics {
	return append(ds, d)
}

// Unsupported records an unsupported-construct diagnostic (§7 kind 1): a
// backend's capability bits rejected a construct.
func (ds Diagnostics) Unsupported(token SourceToken, target, construct string) Diagnostics {
	return ds.Append(Diagnostic{
		Severity: Error,
		Summary:  fmt.Sprintf("unsupported construct for target %q", target),
		Detail:   fmt.Sprintf("%q is not representable on this target", construct),
		Token:    token,
	})
}

// NativeToolFailure records a post-emit native compiler/runner failure (§7
// kind 4), keeping the captured stderr for debugging.
func (ds Diagnostics) NativeToolFailure(tool string, stderr string) Diagnostics {
	return ds.Append(Diagnostic{
		Severity: Error,
		Summary:  fmt.Sprintf("%s failed", tool),
		Detail:   strings.TrimSpace(stderr),
	})
}

// HasErrors reports whether any diagnostic carries Error severity.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Error implements the error interface, summarizing the count of problems
// found. The word "problem" is pluralized with inflector so a one-diagnostic
// run and a many-diagnostic run read naturally.
func (ds Diagnostics) Error() string {
	n := len(ds)
	word := inflector.Pluralize("problem")
	if n == 1 {
		word = inflector.Singularize(word)
	}
	lines := make([]string, 0, n)
	for _, d := range ds {
		hd := d.toHCL()
		if hd.Subject != nil {
			lines = append(lines, fmt.Sprintf("%s: %s: %s", hd.Subject.String(), d.Summary, d.Detail))
		} else {
			lines = append(lines, fmt.Sprintf("%s: %s", d.Summary, d.Detail))
		}
	}
	return fmt.Sprintf("%d %s found:\n%s", n, word, strings.Join(lines, "\n"))
}

// HCL converts the accumulated diagnostics to hcl.Diagnostics for callers
// that want to render them with hcl's own formatter.
func (ds Diagnostics) HCL() hcl.Diagnostics {
	out := make(hcl.Diagnostics, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.toHCL())
	}
	return out
}
