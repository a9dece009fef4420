package diag

import (
	"slices"
)

// Emitter is the run-wide message sink owned by the module loader. It keeps
// every processed message in order and forwards each one to its Reporter.
type Emitter struct {
	messages []Message
	sink     Reporter
}

// NewEmitter creates an empty emitter forwarding to sink (which may be nil).
func NewEmitter(sink Reporter) *Emitter {
	return &Emitter{sink: sink}
}

// Fresh returns an empty emitter that forwards to the same sink.
func (e *Emitter) Fresh() *Emitter {
	if e == nil {
		return NewEmitter(nil)
	}
	return NewEmitter(e.sink)
}

// Process records messages in order and forwards them to the sink.
func (e *Emitter) Process(msgs []Message) {
	for _, m := range msgs {
		e.Report(m)
	}
}

func (e *Emitter) Report(m Message) {
	e.messages = append(e.messages, m)
	if e.sink != nil {
		e.sink.Report(m)
	}
}

// Consume drains the messages of r into e and returns the optional value.
func Consume[T any](e *Emitter, r Result[T]) (T, bool) {
	e.Process(r.diags)
	return r.Value()
}

// Take hands over all messages and leaves the emitter empty.
func (e *Emitter) Take() []Message {
	out := e.messages
	e.messages = nil
	return out
}

// Messages returns a copy without draining.
func (e *Emitter) Messages() []Message {
	return slices.Clone(e.messages)
}

func (e *Emitter) Len() int {
	return len(e.messages)
}

func (e *Emitter) HasErrors() bool {
	for i := range e.messages {
		if e.messages[i].Severity.IsFatal() {
			return true
		}
	}
	return false
}
