package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterStateTransitions(t *testing.T) {
	a := NewArena("  ")
	w := a.NewFile("main.txt")
	assert.Equal(t, Open, w.node().state)

	w.Write("hello")
	w.Close()
	assert.Equal(t, Sealed, w.node().state)

	// Close is idempotent.
	w.Close()
	assert.Equal(t, Sealed, w.node().state)

	files, err := a.Files()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(files["main.txt"]))
	assert.Equal(t, Flushed, w.node().state)
}

func TestWriteAfterSealPanics(t *testing.T) {
	a := NewArena("  ")
	w := a.NewFile("main.txt")
	w.Close()
	assert.Panics(t, func() { w.Write("too late") })
}

func TestForkSplicePointIsFixed(t *testing.T) {
	a := NewArena("  ")
	w := a.NewFile("main.txt")
	w.Write("before-")
	fork := w.Fork()
	w.Write("-after")
	// Writes after the fork point land after it, regardless of what the
	// fork itself is later given.
	fork.Write("FORKED")

	files, err := a.Files()
	require.NoError(t, err)
	assert.Equal(t, "before-FORKED-after", string(files["main.txt"]))
}

func TestNewFileIsIdempotentPerPath(t *testing.T) {
	a := NewArena("  ")
	w1 := a.NewFile("same.txt")
	w2 := a.NewFile("same.txt")
	w1.Write("a")
	w2.Write("b")

	files, err := a.Files()
	require.NoError(t, err)
	assert.Equal(t, "ab", string(files["same.txt"]))
}

func TestBlockFramingAndIndentation(t *testing.T) {
	a := NewArena("\t")
	w := a.NewFile("main.txt")
	block := w.NewBlock("func main()", "", Delim{Text: " {", OwnLine: false}, Delim{Text: "}", OwnLine: false})
	block.Write("return")
	block.Close()
	w.Close()

	files, err := a.Files()
	require.NoError(t, err)
	out := string(files["main.txt"])
	assert.True(t, strings.HasPrefix(out, "func main() {\n\treturn\n}"), "got %q", out)
}

func TestFlushTwiceOnSameNodePanics(t *testing.T) {
	a := NewArena("  ")
	w := a.NewFile("main.txt")
	w.Write("x")
	_, err := a.Files()
	require.NoError(t, err)
	assert.Panics(t, func() { a.flushNode(w.id) })
}

func TestFilesAreSortedDeterministically(t *testing.T) {
	a := NewArena("  ")
	a.NewFile("b.txt").Write("B")
	a.NewFile("a.txt").Write("A")
	a.NewFile("c.txt").Write("C")

	files, err := a.Files()
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "A", string(files["a.txt"]))
	assert.Equal(t, "B", string(files["b.txt"]))
	assert.Equal(t, "C", string(files["c.txt"]))
}

func TestZeroValueWriterPanics(t *testing.T) {
	var w Writer
	assert.Panics(t, func() { w.Write("x") })
}
