package emit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlushWritesFilesAtomically(t *testing.T) {
	dir := t.TempDir()
	a := NewArena("  ")
	a.NewFile("pkg/main.go").Write("package main\n")
	a.NewFile("pkg/helper.go").Write("package main\n// helper\n")

	require.NoError(t, a.Flush(dir))

	content, err := os.ReadFile(filepath.Join(dir, "pkg/main.go"))
	require.NoError(t, err)
	assert.Equal(t, "package main\n", string(content))

	content, err = os.ReadFile(filepath.Join(dir, "pkg/helper.go"))
	require.NoError(t, err)
	assert.Equal(t, "package main\n// helper\n", string(content))
}

func TestWriteFilesMergesExternalFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string][]byte{
		"main.py":    []byte("print('hi')\n"),
		"runtime.py": []byte("def ediv(a, b): pass\n"),
	}
	require.NoError(t, WriteFiles(dir, files))

	for name, want := range files {
		got, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got))
	}
}

func TestJoinOutputHandlesTrailingSlash(t *testing.T) {
	assert.Equal(t, "out/a.txt", joinOutput("out", "a.txt"))
	assert.Equal(t, "out/a.txt", joinOutput("out/", "a.txt"))
	assert.Equal(t, "a.txt", joinOutput("", "a.txt"))
}
