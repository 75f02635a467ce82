package rir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureJSON = `{
  "modules": [
    { "name": "M", "isDefault": false, "decls": [0] }
  ],
  "decls": [
    {
      "kind": "class",
      "name": "C",
      "module": 0,
      "isDefaultClass": true,
      "members": [
        {
          "kind": "field",
          "name": "x",
          "type": { "kind": "int" }
        },
        {
          "kind": "method",
          "name": "Main",
          "static": true,
          "isMainCandidate": true,
          "body": [
            {
              "kind": "return",
              "values": [
                { "kind": "literal", "literalKind": "int", "value": "42", "type": { "kind": "int" } }
              ]
            }
          ]
        }
      ]
    }
  ]
}`

func writeFixture(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadFileDecodesModulesAndDecls(t *testing.T) {
	path := writeFixture(t, fixtureJSON)
	prog, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, prog.Modules, 1)
	require.Len(t, prog.Decls, 1)

	m := prog.Modules[0]
	assert.Equal(t, "M", m.Name)
	require.Len(t, m.Decls, 1)

	c, ok := prog.Decls[0].(*Class)
	require.True(t, ok)
	assert.Equal(t, "C", c.Name)
	assert.True(t, c.IsDefaultClass)
	assert.Same(t, m, c.Module)
	require.Len(t, c.Members, 2)

	field, ok := c.Members[0].(*Field)
	require.True(t, ok)
	assert.Equal(t, "x", field.Name)
	_, isInt := field.Type.(IntType)
	assert.True(t, isInt)

	method, ok := c.Members[1].(*Method)
	require.True(t, ok)
	assert.True(t, method.IsMainCandidate)
	require.Len(t, method.Body, 1)
	ret, ok := method.Body[0].(*ReturnStmt)
	require.True(t, ok)
	require.Len(t, ret.Values, 1)
	lit, ok := ret.Values[0].(*Literal)
	require.True(t, ok)
	assert.Equal(t, IntLiteral, lit.Kind)
	assert.Equal(t, "42", lit.Value.(interface{ String() string }).String())
}

func TestLoadFileOnEmptyFileReturnsEmptyProgram(t *testing.T) {
	path := writeFixture(t, "")
	prog, err := LoadFile(path)
	require.NoError(t, err)
	assert.Empty(t, prog.Modules)
	assert.Empty(t, prog.Decls)
}

func TestLoadFileRejectsMissingRequiredFields(t *testing.T) {
	path := writeFixture(t, `{"modules": []}`)
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileRejectsUnknownDeclKind(t *testing.T) {
	path := writeFixture(t, `{"modules": [], "decls": [{"kind": "bogus", "name": "X"}]}`)
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileResolvesModuleEnclosingAndImports(t *testing.T) {
	fixture := `{
		"modules": [
			{ "name": "Outer", "decls": [] },
			{ "name": "Inner", "enclosing": 0, "imports": [0], "decls": [] }
		],
		"decls": []
	}`
	path := writeFixture(t, fixture)
	prog, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, prog.Modules, 2)
	inner := prog.Modules[1]
	assert.Same(t, prog.Modules[0], inner.Enclosing)
	require.Len(t, inner.Imports, 1)
	assert.Same(t, prog.Modules[0], inner.Imports[0])
}

func TestLoadFileMissingPathErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.Error(t, err)
}
