package diag

import (
	"slices"
)

// Result is either Ok(value, messages) or Fail(messages). Messages keep
// insertion order. A failed result never regains a value.
type Result[T any] struct {
	value T
	ok    bool
	diags []Message
}

// Ok wraps a value with no messages.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// OkWith wraps a value produced alongside the given messages. Lenient passes
// use it to hand back a best-effort value together with their errors.
func OkWith[T any](v T, msgs ...Message) Result[T] {
	return Result[T]{value: v, ok: true, diags: slices.Clone(msgs)}
}

// Fail is a result carrying a single message and no value.
func Fail[T any](msg Message) Result[T] {
	return Result[T]{diags: []Message{msg}}
}

// FailAll is a result carrying every given message and no value.
func FailAll[T any](msgs []Message) Result[T] {
	return Result[T]{diags: slices.Clone(msgs)}
}

func (r Result[T]) IsOk() bool {
	return r.ok
}

// Value returns the value and whether it exists.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.ok
}

// Diagnostics returns a copy of the accumulated messages.
func (r Result[T]) Diagnostics() []Message {
	return slices.Clone(r.diags)
}

func (r Result[T]) Len() int {
	return len(r.diags)
}

// HasErrors reports whether any message reaches Error severity.
func (r Result[T]) HasErrors() bool {
	for i := range r.diags {
		if r.diags[i].Severity.IsFatal() {
			return true
		}
	}
	return false
}

// With appends messages without touching the value or the fail state.
func (r Result[T]) With(msgs ...Message) Result[T] {
	if len(msgs) == 0 {
		return r
	}
	r.diags = slices.Concat(r.diags, msgs)
	return r
}

// Deny turns a result holding any Error severity message into Fail, keeping
// all messages. Results with only warnings or infos pass through unchanged.
func (r Result[T]) Deny() Result[T] {
	if !r.ok || !r.HasErrors() {
		return r
	}
	return Result[T]{diags: r.diags}
}

// Bind runs f on the value of r. A failed r is returned as is and f is not
// called. Otherwise the messages of r come first, followed by those of f's
// result, whose value or failure is kept.
func Bind[T, U any](r Result[T], f func(T) Result[U]) Result[U] {
	if !r.ok {
		return Result[U]{diags: r.diags}
	}
	next := f(r.value)
	next.diags = slices.Concat(r.diags, next.diags)
	return next
}

// Map applies a total, message free transform to the value.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	return Bind(r, func(v T) Result[U] {
		return Ok(f(v))
	})
}
