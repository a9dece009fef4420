package testkit

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"shoumei/internal/diag"
	"shoumei/internal/lexer"
	"shoumei/internal/source"
	"shoumei/internal/token"
)

// bounds answers whether a location exists in a module of the given lines.
// The location just past the last line stands for end of file. Locations
// may sit one column past a line, as RangeAt does for end-of-line points.
type bounds struct {
	widths []uint32
}

func newBounds(lines []string) (bounds, error) {
	b := bounds{widths: make([]uint32, len(lines))}
	for i, line := range lines {
		w, err := safecast.Conv[uint32](utf8.RuneCountInString(line))
		if err != nil {
			return bounds{}, fmt.Errorf("line %d width overflow: %w", i+1, err)
		}
		b.widths[i] = w
	}
	return b, nil
}

func (b bounds) contains(loc source.Location) bool {
	const slack = 1
	n := len(b.widths)
	switch {
	case int(loc.Line) < n:
		return loc.Col <= b.widths[loc.Line]+slack
	case int(loc.Line) == n:
		return loc.Col <= slack
	default:
		return false
	}
}

func (b bounds) checkRange(rng source.Range) error {
	if rng.End.Less(rng.Start) {
		return fmt.Errorf("inverted range %v", rng)
	}
	if !b.contains(rng.Start) || !b.contains(rng.End) {
		return fmt.Errorf("range %v is outside the module", rng)
	}
	return nil
}

// CheckTokenInvariants runs a minimal set of invariants on a lexed module:
// 1) every token range is ordered and lies inside the module text
// 2) tokens appear in source order and do not overlap
// 3) the stream ends with exactly one EOF token
func CheckTokenInvariants(toks lexer.Tokens, lines []string) error {
	b, err := newBounds(lines)
	if err != nil {
		return err
	}
	if toks.Len() == 0 {
		return fmt.Errorf("empty token stream")
	}
	var prev source.Location
	for i, tok := range toks.Items {
		if err := b.checkRange(tok.Range); err != nil {
			return fmt.Errorf("token %d (%s): %w", i, tok, err)
		}
		if tok.Range.Start.Less(prev) {
			return fmt.Errorf("token %d (%s) starts before the previous token ends", i, tok)
		}
		prev = tok.Range.End
		if tok.Kind == token.EOF && i != toks.Len()-1 {
			return fmt.Errorf("EOF token at %d of %d", i, toks.Len())
		}
	}
	if last := toks.Items[toks.Len()-1]; last.Kind != token.EOF {
		return fmt.Errorf("stream ends with %s instead of EOF", last)
	}
	return nil
}

// CheckMessageInvariants verifies that every message and note of module
// points inside its text and carries a known code.
func CheckMessageInvariants(module source.ModulePath, msgs []diag.Message, lines []string) error {
	b, err := newBounds(lines)
	if err != nil {
		return err
	}
	check := func(ctx diag.Context) error {
		if !ctx.Module.Equal(module) {
			return fmt.Errorf("message for %s while checking %s", ctx.Module, module)
		}
		if ctx.HasRange {
			return b.checkRange(ctx.Range)
		}
		return nil
	}
	for i, m := range msgs {
		if m.Code == diag.UnknownCode {
			return fmt.Errorf("message %d (%s) has no code", i, m.Text)
		}
		if err := check(m.Context); err != nil {
			return fmt.Errorf("message %d (%s): %w", i, m.Text, err)
		}
		for _, n := range m.Notes {
			if err := check(n.Context); err != nil {
				return fmt.Errorf("note of message %d (%s): %w", i, m.Text, err)
			}
		}
	}
	return nil
}
