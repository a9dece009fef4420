package token

import (
	"fmt"

	"shoumei/internal/source"
)

// Token is one lexeme with its range in the module.
type Token struct {
	Kind  Kind
	Text  string
	Range source.Range
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwImport, KwDef, KwTheorem:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsLayout reports whether the token only carries line structure.
func (t Token) IsLayout() bool {
	return t.Kind == Indent || t.Kind == Newline || t.Kind == EOF
}

func (t Token) String() string {
	if t.Text == "" {
		return fmt.Sprintf("%s@%s", t.Kind, t.Range.Start)
	}
	return fmt.Sprintf("%s %q@%s", t.Kind, t.Text, t.Range.Start)
}
