package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"shoumei/internal/brackets"
	"shoumei/internal/diag"
	"shoumei/internal/index"
	"shoumei/internal/indent"
	"shoumei/internal/lexer"
	"shoumei/internal/parser"
	"shoumei/internal/source"
	"shoumei/internal/types"
)

const testExt = ".shoumei"

func mp(t *testing.T, s string) source.ModulePath {
	t.Helper()
	p, err := source.ParseModulePath(s)
	require.NoError(t, err)
	return p
}

// writeModule creates root/<path>.shoumei with the given lines.
func writeModule(t *testing.T, root, path string, lines ...string) {
	t.Helper()
	file := filepath.Join(root, filepath.FromSlash(path)) + testExt
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o755))
	require.NoError(t, os.WriteFile(file, []byte(strings.Join(lines, "\n")+"\n"), 0o600))
}

func writeRaw(t *testing.T, root, path string, content []byte) {
	t.Helper()
	file := filepath.Join(root, filepath.FromSlash(path)) + testExt
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o755))
	require.NoError(t, os.WriteFile(file, content, 0o600))
}

// counter wraps the default passes and counts calls per pass and module.
type counter struct {
	calls map[string]int
}

func newCounter() *counter {
	return &counter{calls: make(map[string]int)}
}

func (c *counter) hit(pass string, path source.ModulePath) {
	c.calls[pass]++
	c.calls[pass+":"+path.String()]++
}

func (c *counter) passes() Passes {
	def := DefaultPasses()
	return Passes{
		Lex: func(p source.ModulePath, lines []string) diag.Result[lexer.Tokens] {
			c.hit("lex", p)
			return def.Lex(p, lines)
		},
		Indent: func(p source.ModulePath, t lexer.Tokens) diag.Result[indent.Block] {
			c.hit("indent", p)
			return def.Indent(p, t)
		},
		Brackets: func(p source.ModulePath, b indent.Block) diag.Result[brackets.Block] {
			c.hit("brackets", p)
			return def.Brackets(p, b)
		},
		Parse: func(p source.ModulePath, b brackets.Block) diag.Result[*parser.Module] {
			c.hit("parse", p)
			return def.Parse(p, b)
		},
		Types: func(p source.ModulePath, m *parser.Module) diag.Result[*types.Table] {
			c.hit("types", p)
			return def.Types(p, m)
		},
		Index: func(p source.ModulePath, m *parser.Module, proj *types.Project) diag.Result[*index.Index] {
			c.hit("index", p)
			return def.Index(p, m, proj)
		},
	}
}

func codes(msgs []diag.Message) []diag.Code {
	out := make([]diag.Code, len(msgs))
	for i, m := range msgs {
		out[i] = m.Code
	}
	return out
}

func countCode(msgs []diag.Message, code diag.Code) int {
	n := 0
	for _, m := range msgs {
		if m.Code == code {
			n++
		}
	}
	return n
}
