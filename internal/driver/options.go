package driver

import (
	"path/filepath"

	"shoumei/internal/brackets"
	"shoumei/internal/diag"
	"shoumei/internal/index"
	"shoumei/internal/indent"
	"shoumei/internal/lexer"
	"shoumei/internal/parser"
	"shoumei/internal/source"
	"shoumei/internal/types"
)

// Passes holds the six pipeline passes. Each receives the module path and
// the artifact of the previous pass.
type Passes struct {
	Lex      func(source.ModulePath, []string) diag.Result[lexer.Tokens]
	Indent   func(source.ModulePath, lexer.Tokens) diag.Result[indent.Block]
	Brackets func(source.ModulePath, indent.Block) diag.Result[brackets.Block]
	Parse    func(source.ModulePath, brackets.Block) diag.Result[*parser.Module]
	Types    func(source.ModulePath, *parser.Module) diag.Result[*types.Table]
	Index    func(source.ModulePath, *parser.Module, *types.Project) diag.Result[*index.Index]
}

// DefaultPasses returns the built-in implementation of every pass.
func DefaultPasses() Passes {
	return Passes{
		Lex:      lexer.Lex,
		Indent:   indent.Structure,
		Brackets: brackets.Match,
		Parse:    parser.Parse,
		Types:    types.Check,
		Index:    index.Build,
	}
}

func (p Passes) withDefaults() Passes {
	def := DefaultPasses()
	if p.Lex == nil {
		p.Lex = def.Lex
	}
	if p.Indent == nil {
		p.Indent = def.Indent
	}
	if p.Brackets == nil {
		p.Brackets = def.Brackets
	}
	if p.Parse == nil {
		p.Parse = def.Parse
	}
	if p.Types == nil {
		p.Types = def.Types
	}
	if p.Index == nil {
		p.Index = def.Index
	}
	return p
}

// Options configures the pipeline and the loader.
type Options struct {
	// Root is the directory module paths are resolved against.
	Root string
	// Ext is appended to the module file path, e.g. ".shoumei".
	Ext string
	// Timings appends a per-pass timing report as an Info message.
	Timings bool
	// AlwaysReload makes the loader re-read modules it has already cached.
	AlwaysReload bool
	// Passes overrides individual passes; nil fields use the defaults.
	Passes Passes
}

// FileFor maps a module path to its file.
func (o Options) FileFor(path source.ModulePath) string {
	return filepath.Join(o.Root, path.FilePath()) + o.Ext
}
