// Package trace records what the compiler front end is doing: module loads,
// pass boundaries and emitted diagnostics.
//
// # Usage
//
//	shoumei check --trace=- --trace-level=detail logic/core
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only events explicitly marked as errors
//   - LevelPhase: driver and module loads
//   - LevelDetail: plus individual passes
//   - LevelDebug: everything, including every diagnostic
//
// # Scopes
//
//   - ScopeDriver: top-level CLI operations
//   - ScopeModule: one module load (cycle detection, cache hits)
//   - ScopePass: one pipeline pass (lex, indent, brackets, parse, types, index)
//   - ScopeDiag: one diagnostic
//
// Tracers travel through context or options:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeModule, "load", trace.ParentFrom(ctx))
//	ctx = trace.WithParent(ctx, span)
//	defer span.End("")
package trace
