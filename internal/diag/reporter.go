package diag

// Reporter — минимальный контракт получения диагностик от фаз.
// Реализации: BagReporter (кладёт в Bag), Emitter, ReporterFunc, MultiReporter (fan-out).
type Reporter interface {
	Report(m Message)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	msg      Message
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, ctx Context, text string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		msg:      New(sev, code, ctx, text),
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, ctx Context, text string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, ctx, text)
}

// WithNote appends a note to diagnostic.
func (b *ReportBuilder) WithNote(ctx Context, text string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.msg = b.msg.WithNote(ctx, text)
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.msg)
	}
	b.emitted = true
}

// Message returns accumulated diagnostic without emitting.
func (b *ReportBuilder) Message() Message {
	if b == nil {
		return Message{}
	}
	return b.msg
}

// BagReporter — адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(m Message) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(m)
}

// MultiReporter forwards every message to each reporter in order.
type MultiReporter []Reporter

func (mr MultiReporter) Report(m Message) {
	for _, r := range mr {
		if r != nil {
			r.Report(m)
		}
	}
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Message)

func (f ReporterFunc) Report(m Message) {
	if f != nil {
		f(m)
	}
}
