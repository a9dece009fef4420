// Package driver runs modules through the pass pipeline and loads module
// graphs with cycle detection and caching.
package driver

import (
	"context"
	"strconv"

	"shoumei/internal/brackets"
	"shoumei/internal/diag"
	"shoumei/internal/index"
	"shoumei/internal/indent"
	"shoumei/internal/lexer"
	"shoumei/internal/observ"
	"shoumei/internal/parser"
	"shoumei/internal/source"
	"shoumei/internal/trace"
	"shoumei/internal/types"
)

// Compiled is everything the pipeline produces for one module.
type Compiled struct {
	Path   source.ModulePath
	Module *parser.Module
	Types  *types.Table
	Index  *index.Index
}

// Driver runs the pass pipeline. It holds no per-module state; every call
// starts from the file.
type Driver struct {
	opts   Options
	passes Passes
}

func New(opts Options) *Driver {
	return &Driver{opts: opts, passes: opts.Passes.withDefaults()}
}

func (d *Driver) Options() Options { return d.opts }

// run carries tracing and timing state through one entry point call.
type run struct {
	path   source.ModulePath
	tracer trace.Tracer
	parent uint64
	timer  *observ.Timer
}

func (d *Driver) newRun(ctx context.Context, path source.ModulePath, parent uint64) *run {
	st := &run{
		path:   path,
		tracer: trace.FromContext(ctx),
		parent: parent,
	}
	if d.opts.Timings {
		st.timer = observ.NewTimer()
	}
	return st
}

// finish appends the timing report, if any.
func finish[T any](st *run, r diag.Result[T]) diag.Result[T] {
	if st.timer.Len() == 0 {
		return r
	}
	return r.With(timingMessage(st.path, st.timer.Report()))
}

// stage wraps a pass with a trace span and a timer phase.
func stage[T, U any](st *run, name string, f func(T) diag.Result[U]) func(T) diag.Result[U] {
	return func(v T) diag.Result[U] {
		span := trace.Begin(st.tracer, trace.ScopePass, name, st.parent)
		done := st.timer.Track(name)
		out := f(v)
		status := "ok"
		if out.HasErrors() || !out.IsOk() {
			status = "error"
		}
		done(status)
		for _, m := range out.Diagnostics() {
			trace.Point(st.tracer, trace.ScopeDiag, m.Code.ID(), m.Text, span.ID())
		}
		span.WithExtra("module", st.path.String()).
			WithExtra("diagnostics", strconv.Itoa(out.Len())).
			End(status)
		return out
	}
}

// Compile runs all six passes on one module and returns its syntax tree.
// The type table and index are computed and must succeed, but are dropped;
// use CompileFull to keep them.
func (d *Driver) Compile(ctx context.Context, path source.ModulePath) diag.Result[*parser.Module] {
	return diag.Map(d.CompileFull(ctx, path), func(c *Compiled) *parser.Module {
		return c.Module
	})
}

// CompileFull runs all six passes; the index sees a project holding only
// this module's table.
func (d *Driver) CompileFull(ctx context.Context, path source.ModulePath) diag.Result[*Compiled] {
	st := d.newRun(ctx, path, 0)
	parsed := diag.Bind(d.Read(path), func(text *source.Text) diag.Result[*parser.Module] {
		return d.parseText(st, text)
	})
	out := diag.Bind(parsed, func(mod *parser.Module) diag.Result[*Compiled] {
		return d.analyze(st, mod, types.NewProject())
	})
	return finish(st, out)
}

// Parse reads a module and runs the lexer, indentation, bracket and parser
// passes.
func (d *Driver) Parse(ctx context.Context, path source.ModulePath) diag.Result[*parser.Module] {
	st := d.newRun(ctx, path, 0)
	out := diag.Bind(d.Read(path), func(text *source.Text) diag.Result[*parser.Module] {
		return d.parseText(st, text)
	})
	return finish(st, out)
}

// Analyze runs the types and index passes on a parsed module. The module's
// table is added to project, which should already hold its dependencies.
func (d *Driver) Analyze(ctx context.Context, path source.ModulePath, mod *parser.Module, project *types.Project) diag.Result[*Compiled] {
	if project == nil {
		project = types.NewProject()
	}
	st := d.newRun(ctx, path, 0)
	return finish(st, d.analyze(st, mod, project))
}

// Tokens reads a module and runs only the lexer.
func (d *Driver) Tokens(ctx context.Context, path source.ModulePath) diag.Result[lexer.Tokens] {
	st := d.newRun(ctx, path, 0)
	out := diag.Bind(d.Read(path), func(text *source.Text) diag.Result[lexer.Tokens] {
		return d.lex(st, text)
	})
	return finish(st, out)
}

func (d *Driver) lex(st *run, text *source.Text) diag.Result[lexer.Tokens] {
	path, p := st.path, d.passes
	return diag.Bind(diag.Ok(text.Lines), stage(st, "lex", func(lines []string) diag.Result[lexer.Tokens] {
		return p.Lex(path, lines)
	})).Deny()
}

func (d *Driver) parseText(st *run, text *source.Text) diag.Result[*parser.Module] {
	path, p := st.path, d.passes
	toks := d.lex(st, text)
	blk := diag.Bind(toks, stage(st, "indent", func(t lexer.Tokens) diag.Result[indent.Block] {
		return p.Indent(path, t)
	})).Deny()
	nested := diag.Bind(blk, stage(st, "brackets", func(b indent.Block) diag.Result[brackets.Block] {
		return p.Brackets(path, b)
	})).Deny()
	return diag.Bind(nested, stage(st, "parse", func(b brackets.Block) diag.Result[*parser.Module] {
		return p.Parse(path, b)
	})).Deny()
}

func (d *Driver) analyze(st *run, mod *parser.Module, project *types.Project) diag.Result[*Compiled] {
	path, p := st.path, d.passes
	table := diag.Bind(diag.Ok(mod), stage(st, "types", func(m *parser.Module) diag.Result[*types.Table] {
		return p.Types(path, m)
	})).Deny()
	return diag.Bind(table, func(tbl *types.Table) diag.Result[*Compiled] {
		project.Insert(path, tbl)
		ix := diag.Bind(diag.Ok(mod), stage(st, "index", func(m *parser.Module) diag.Result[*index.Index] {
			return p.Index(path, m, project)
		})).Deny()
		return diag.Map(ix, func(x *index.Index) *Compiled {
			return &Compiled{Path: path, Module: mod, Types: tbl, Index: x}
		})
	})
}
