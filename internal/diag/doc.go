// Package diag defines the diagnostic model shared by all pipeline passes.
//
// # Data model
//
// Message is the central record: text, Severity (Info < Warning < Error), a
// stable numeric Code and a Context that points either at a whole module file
// or at a Range inside it.
//
// # Results
//
// Result[T] is a value that may not exist, together with the ordered log of
// messages produced while trying to compute it. Passes are lenient: they keep
// going after local errors and return Ok with errors attached, so one run
// surfaces as many problems as possible. The driver is strict: after every
// pass it calls Deny, which turns any Error severity message into a terminal
// Fail before the next pass can observe a malformed artifact.
//
//	tokens := diag.Bind(lines, lex).Deny()
//	block := diag.Bind(tokens, indent).Deny()
//
// Bind never calls its function on a failed result and never drops messages.
//
// # Emitting
//
// Passes collect messages through a Reporter (usually a Bag via BagReporter,
// with ReportError builders). The module loader owns an Emitter:
// Consume drains a Result into it, and Take hands the whole log to the caller.
//
// Package diag does no IO. FormatShort renders one line per message and
// WriteJSON the machine-readable form; anything richer belongs to the CLI.
package diag
