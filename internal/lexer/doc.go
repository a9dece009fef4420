// Package lexer turns the lines of a module into a flat token stream.
//
// Every non-blank line produces an Indent token carrying its leading
// whitespace, the line's tokens and a closing Newline; the stream ends with
// EOF. Blank and comment-only lines produce nothing.
package lexer
