package lower

import (
	"sort"
	"strings"

	"github.com/pgavlin/goldmark"
	"github.com/pgavlin/goldmark/ast"
	"github.com/pgavlin/goldmark/text"

	"github.com/dafny-lang/dafny-codegen/backend"
)

// docMarkdown is the single parser instance every doc comment is filtered
// with; goldmark parsers are safe to reuse across parses.
var docMarkdown = goldmark.New()

// RenderDoc implements SPEC_FULL §4.6's doc-comment rendering: strip fenced
// code examples tagged for a language other than langTag, then convert
// what remains to the backend's comment syntax. It returns "" for
// DocCapability == DocNone or an empty doc.
func RenderDoc(doc string, b backend.Backend, langTag string) string {
	caps := b.Capabilities()
	if caps.DocCapability == backend.DocNone || strings.TrimSpace(doc) == "" {
		return ""
	}
	filtered := filterExamplesByLanguage([]byte(doc), langTag)
	return formatComment(filtered, caps.DocCapability)
}

// filterExamplesByLanguage removes every fenced code block in source whose
// language tag is non-empty, not "sh", and not langTag (case-insensitive).
// It walks the real Markdown AST to find each block's byte range rather
// than regex-matching backtick fences, so nested or indented fences are
// handled the same way a Markdown renderer would see them.
func filterExamplesByLanguage(source []byte, langTag string) string {
	reader := text.NewReader(source)
	root := docMarkdown.Parser().Parse(reader)

	type cut struct{ start, stop int }
	var cuts []cut

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		lang := strings.ToLower(string(fcb.Language(source)))
		if lang == "" || lang == "sh" || lang == strings.ToLower(langTag) {
			return ast.WalkContinue, nil
		}
		lines := fcb.Lines()
		if lines.Len() == 0 {
			return ast.WalkContinue, nil
		}
		first := lines.At(0)
		last := lines.At(lines.Len() - 1)
		start, stop := expandToFences(source, first.Start, last.Stop)
		cuts = append(cuts, cut{start: start, stop: stop})
		return ast.WalkSkipChildren, nil
	})

	if len(cuts) == 0 {
		return string(source)
	}
	sort.Slice(cuts, func(i, j int) bool { return cuts[i].start < cuts[j].start })

	var out []byte
	pos := 0
	for _, c := range cuts {
		if c.start < pos {
			continue
		}
		out = append(out, source[pos:c.start]...)
		pos = c.stop
	}
	out = append(out, source[pos:]...)
	return string(out)
}

// expandToFences widens [start, stop) to also cover the opening and
// closing ``` fence lines immediately surrounding the block's content,
// since FencedCodeBlock.Lines() covers only the interior lines.
func expandToFences(source []byte, start, stop int) (int, int) {
	lineStart := func(pos int) int {
		for pos > 0 && source[pos-1] != '\n' {
			pos--
		}
		return pos
	}
	lineEnd := func(pos int) int {
		for pos < len(source) && source[pos] != '\n' {
			pos++
		}
		if pos < len(source) {
			pos++
		}
		return pos
	}
	openLineStart := lineStart(start)
	if prev := openLineStart - 1; prev >= 0 {
		openLineStart = lineStart(prev)
	}
	closeLineEnd := lineEnd(stop)
	return openLineStart, closeLineEnd
}

// formatComment converts Markdown body into the target's comment syntax.
func formatComment(body string, cap backend.DocCapability) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	lines := strings.Split(body, "\n")
	switch cap {
	case backend.DocLine:
		for i, l := range lines {
			lines[i] = "// " + l
		}
		return strings.Join(lines, "\n")
	case backend.DocBlock:
		for i, l := range lines {
			// Escape any accidental block-comment terminator inside the
			// doc body so it cannot prematurely close the comment.
			lines[i] = " * " + strings.ReplaceAll(l, "*/", "*​/")
		}
		return "/**\n" + strings.Join(lines, "\n") + "\n */"
	default:
		return ""
	}
}
