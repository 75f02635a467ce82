package emit

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/pkg/errors"

	"github.com/dafny-lang/dafny-codegen/internal/contract"
)

// indentLines prefixes every non-empty line of content with depth copies of
// unit. Indentation is computed this way — structurally, from the writer
// tree's depth — rather than by counting characters already in the buffer
// (§4.3 invariant).
func indentLines(content, unit string, depth int) string {
	if depth <= 0 || content == "" {
		return content
	}
	prefix := strings.Repeat(unit, depth)
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		if l == "" {
			continue
		}
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

func renderDelim(d Delim) string {
	if d.OwnLine {
		return "\n" + d.Text
	}
	return d.Text
}

func (a *Arena) flushNode(id int) string {
	n := a.nodes[id]
	contract.Assertf(n.state != Flushed, "node %d flushed twice", id)
	var sb strings.Builder
	for _, seg := range n.segments {
		if seg.child < 0 {
			sb.Write(seg.text)
			continue
		}
		child := a.nodes[seg.child]
		content := a.flushNode(seg.child)
		if child.block == nil {
			sb.WriteString(content)
			continue
		}
		sb.WriteString(child.block.header)
		sb.WriteString(renderDelim(child.block.openDelim))
		sb.WriteString("\n")
		sb.WriteString(indentLines(content, a.IndentUnit, 1))
		if !strings.HasSuffix(content, "\n") && content != "" {
			sb.WriteString("\n")
		}
		sb.WriteString(renderDelim(child.block.closeDelim))
		sb.WriteString(child.block.footer)
	}
	n.state = Flushed
	return sb.String()
}

// Files renders every pending file to bytes without touching disk. The
// whole compilation stages its output this way before Flush ever performs
// I/O, so a codegen bug discovered while rendering one file never leaves a
// partial file on disk for another (§3 Lifecycles, §7 kind 3).
func (a *Arena) Files() (map[string][]byte, error) {
	out := make(map[string][]byte, len(a.fileOrder))
	paths := append([]string(nil), a.fileOrder...)
	sort.Strings(paths) // deterministic output regardless of discovery order (§5)
	for _, p := range paths {
		id, ok := a.fileRoot[p]
		if !ok {
			continue
		}
		content := a.flushNode(id)
		out[p] = []byte(content)
	}
	return out, nil
}

// Flush renders every pending file and writes it atomically to outputDir.
// Every file's bytes are computed before any file is written, so an error
// rendering file N never leaves file N-1's write half-applied; a write
// failure partway through the set is reported (§7 kind 3) but files
// already written before the failing one are not rolled back — an atomic
// rename guarantees each individual file is either fully present or
// fully absent, not that the whole multi-file set is.
func (a *Arena) Flush(outputDir string) error {
	files, err := a.Files()
	if err != nil {
		return err
	}
	return WriteFiles(outputDir, files)
}

// WriteFiles atomically writes an already-rendered file set (as returned by
// Arena.Files, merged with any runtime resources a caller adds afterward)
// to outputDir, the same way Flush does for an Arena it owns directly.
// Kept as a free function so a caller that merges extra files into a
// backend's output (§6 "Embedded runtime") does not need its own Arena.
func WriteFiles(outputDir string, files map[string][]byte) error {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, rel := range paths {
		full := joinOutput(outputDir, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return errors.Wrapf(err, "creating directory for %s", full)
		}
		if err := atomic.WriteFile(full, strings.NewReader(string(files[rel]))); err != nil {
			return errors.Wrapf(err, "writing %s", full)
		}
	}
	return nil
}

func joinOutput(dir, rel string) string {
	if dir == "" {
		return rel
	}
	if strings.HasSuffix(dir, "/") {
		return dir + rel
	}
	return dir + "/" + rel
}
