package trace

import (
	"sync/atomic"
	"time"
)

var seqCounter, spanCounter atomic.Uint64

// NextSeq returns the next event sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a fresh span id; ids start at 1.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// Span is an open begin/end pair. A span whose tracer is off is inert.
type Span struct {
	t      Tracer
	id     uint64
	parent uint64
	scope  Scope
	name   string
	start  time.Time
	extra  map[string]string
}

func live(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}

func emit(t Tracer, kind Kind, scope Scope, span, parent uint64, name, detail string, extra map[string]string) {
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     kind,
		Scope:    scope,
		SpanID:   span,
		ParentID: parent,
		Name:     name,
		Detail:   detail,
		Extra:    extra,
	})
}

// Begin opens a span under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !live(t, scope) {
		return &Span{t: Nop}
	}
	s := &Span{t: t, id: NextSpanID(), parent: parent, scope: scope, name: name, start: time.Now()}
	emit(t, KindSpanBegin, scope, s.id, parent, name, "", nil)
	return s
}

// End closes the span and returns how long it was open.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.id == 0 {
		return 0
	}
	dur := time.Since(s.start)
	s.t.Emit(&Event{
		Time:     s.start.Add(dur),
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Detail:   detail,
		Extra:    s.extra,
		Dur:      dur,
	})
	return dur
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.id == 0 {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// ID is 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event such as a cache hit.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if live(t, scope) {
		emit(t, KindPoint, scope, 0, parent, name, detail, nil)
	}
}

// Error emits an instant event that every level except off keeps.
func Error(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t != nil && t.Enabled() {
		emit(t, KindError, scope, 0, parent, name, detail, nil)
	}
}
