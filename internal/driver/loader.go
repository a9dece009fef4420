package driver

import (
	"context"
	"fmt"

	"shoumei/internal/diag"
	"shoumei/internal/parser"
	"shoumei/internal/project"
	"shoumei/internal/source"
	"shoumei/internal/trace"
	"shoumei/internal/types"
)

// Loader loads modules and everything they import. It detects inclusion
// cycles, remembers every outcome and collects all messages in one emitter.
// Every module on a cycle fails. A Loader is not safe for concurrent use.
type Loader struct {
	driver  *Driver
	cache   *ModuleCache
	loading map[string]struct{}
	stack   []source.ModulePath // loading, outermost first
	cyclic  map[string]bool     // members of a detected cycle
	emitter *diag.Emitter
}

// NewLoader creates a loader whose emitter forwards to sink (may be nil).
func NewLoader(opts Options, sink diag.Reporter) *Loader {
	return &Loader{
		driver:  New(opts),
		cache:   NewModuleCache(16),
		loading: make(map[string]struct{}),
		cyclic:  make(map[string]bool),
		emitter: diag.NewEmitter(sink),
	}
}

// Load returns the compiled module, or false when it failed or is already
// being loaded further up the import chain. In the latter case nothing is
// reported here: the importer that closed the cycle reports it. All
// messages go to the emitter.
func (l *Loader) Load(ctx context.Context, path source.ModulePath) (*Compiled, bool) {
	tracer := trace.FromContext(ctx)
	parent := trace.ParentFrom(ctx)
	key := path.Key()
	if _, busy := l.loading[key]; busy {
		trace.Error(tracer, trace.ScopeModule, "cycle", path.String(), parent)
		l.markCycle(path)
		return nil, false
	}
	if !l.driver.opts.AlwaysReload {
		if entry, ok := l.cache.Get(path); ok {
			trace.Point(tracer, trace.ScopeModule, "cache-hit", path.String(), parent)
			return entry.Compiled, entry.Present()
		}
	}

	l.loading[key] = struct{}{}
	l.stack = append(l.stack, path)
	span := trace.Begin(tracer, trace.ScopeModule, "load", parent).WithExtra("module", path.String())
	st := l.driver.newRun(ctx, path, span.ID())

	entry := CacheEntry{Path: path}
	res := diag.Bind(l.driver.Read(path), func(text *source.Text) diag.Result[*Compiled] {
		entry.Content = text.Hash
		return diag.Bind(l.driver.parseText(st, text), func(mod *parser.Module) diag.Result[*Compiled] {
			entry.Imports = importMetas(mod)
			deps := l.loadImports(trace.WithParent(ctx, span), path, entry.Imports)
			return diag.Bind(deps, func(proj *types.Project) diag.Result[*Compiled] {
				return l.driver.analyze(st, mod, proj)
			})
		})
	})
	res = finish(st, res)
	entry.FirstErr = firstError(res.Diagnostics())

	compiled, ok := diag.Consume(l.emitter, res)
	if ok {
		entry.Compiled = compiled
	}
	delete(l.loading, key)
	l.stack = l.stack[:len(l.stack)-1]
	l.cache.Put(entry)

	status := "ok"
	if !ok {
		status = "failed"
	}
	span.End(status)
	return entry.Compiled, ok
}

// markCycle flags path and every module loaded above it as cycle members.
func (l *Loader) markCycle(path source.ModulePath) {
	for i := len(l.stack) - 1; i >= 0; i-- {
		l.cyclic[l.stack[i].Key()] = true
		if l.stack[i].Equal(path) {
			return
		}
	}
}

// loadImports loads every import depth-first in source order and collects
// the type tables of those that succeeded. A failed import is a warning on
// the import line. An import that closes a cycle, or a failed import when
// both modules sit on one cycle, fails the importer.
func (l *Loader) loadImports(ctx context.Context, importer source.ModulePath, imports []project.ImportMeta) diag.Result[*types.Project] {
	proj := types.NewProject()
	var notes []diag.Message
	fatal := false
	for _, imp := range imports {
		dep, ok := l.Load(ctx, imp.Path)
		if ok {
			proj.Insert(imp.Path, dep.Types)
			continue
		}
		switch {
		case l.onStack(imp.Path):
			notes = append(notes, diag.NewError(diag.ProjImportCycle, diag.InFile(imp.Path), "cyclic module inclusion detected").
				WithNote(diag.InRange(importer, imp.Range), fmt.Sprintf("imported again by %q", importer.String())))
			fatal = true
		case l.cyclic[importer.Key()] && l.cyclic[imp.Path.Key()]:
			notes = append(notes, l.dependencyFailed(diag.SevError, importer, imp))
			fatal = true
		default:
			notes = append(notes, l.dependencyFailed(diag.SevWarning, importer, imp))
		}
	}
	if fatal {
		return diag.FailAll[*types.Project](notes)
	}
	return diag.OkWith(proj, notes...)
}

func (l *Loader) onStack(path source.ModulePath) bool {
	_, busy := l.loading[path.Key()]
	return busy
}

func (l *Loader) dependencyFailed(sev diag.Severity, importer source.ModulePath, imp project.ImportMeta) diag.Message {
	msg := diag.New(sev, diag.ProjDependencyFailed, diag.InRange(importer, imp.Range),
		fmt.Sprintf("dependency module %q failed to load", imp.Path.String()))
	if entry, ok := l.cache.Get(imp.Path); ok && entry.FirstErr != nil {
		msg = msg.WithNote(entry.FirstErr.Context, "first error in dependency: "+entry.FirstErr.Text)
	}
	return msg
}

// TakeErrorEmitter hands over every message collected so far. The loader
// continues with an empty emitter forwarding to the same sink.
func (l *Loader) TakeErrorEmitter() *diag.Emitter {
	e := l.emitter
	l.emitter = e.Fresh()
	return e
}

// Module returns the cached outcome for path. known is false when path was
// never loaded.
func (l *Loader) Module(path source.ModulePath) (compiled *Compiled, known bool) {
	entry, ok := l.cache.Get(path)
	if !ok {
		return nil, false
	}
	return entry.Compiled, true
}

// Modules returns every cached entry sorted by module path.
func (l *Loader) Modules() []CacheEntry {
	return l.cache.Entries()
}

func importMetas(mod *parser.Module) []project.ImportMeta {
	seen := make(map[string]struct{}, len(mod.Imports))
	out := make([]project.ImportMeta, 0, len(mod.Imports))
	for _, imp := range mod.Imports {
		if _, dup := seen[imp.Path.Key()]; dup {
			continue
		}
		seen[imp.Path.Key()] = struct{}{}
		out = append(out, project.ImportMeta{Path: imp.Path, Range: imp.Range})
	}
	return out
}

func firstError(msgs []diag.Message) *diag.Message {
	for i := range msgs {
		if msgs[i].Severity.IsFatal() {
			m := msgs[i]
			return &m
		}
	}
	return nil
}
