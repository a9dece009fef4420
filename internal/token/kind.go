package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the module.
	EOF
	// Indent carries the leading whitespace of a line; it is always the first
	// token of a line.
	Indent
	// Newline ends every non-blank line.
	Newline

	Ident
	Number

	KwImport  // import
	KwDef     // def
	KwTheorem // theorem

	LParen   // (
	RParen   // )
	LBracket // [
	RBracket // ]
	LBrace   // {
	RBrace   // }
	Colon    // :
	Comma    // ,
	Dot      // .
	Assign   // =
	Arrow    // ->
	Slash    // /
)

var kindNames = [...]string{
	Invalid:   "invalid",
	EOF:       "EOF",
	Indent:    "indent",
	Newline:   "newline",
	Ident:     "identifier",
	Number:    "number",
	KwImport:  "'import'",
	KwDef:     "'def'",
	KwTheorem: "'theorem'",
	LParen:    "'('",
	RParen:    "')'",
	LBracket:  "'['",
	RBracket:  "']'",
	LBrace:    "'{'",
	RBrace:    "'}'",
	Colon:     "':'",
	Comma:     "','",
	Dot:       "'.'",
	Assign:    "'='",
	Arrow:     "'->'",
	Slash:     "'/'",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

var keywords = map[string]Kind{
	"import":  KwImport,
	"def":     KwDef,
	"theorem": KwTheorem,
}

// LookupKeyword returns the keyword kind for ident, if any.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// IsOpen reports whether k opens a bracket group.
func (k Kind) IsOpen() bool {
	return k == LParen || k == LBracket || k == LBrace
}

// IsClose reports whether k closes a bracket group.
func (k Kind) IsClose() bool {
	return k == RParen || k == RBracket || k == RBrace
}

// Closer returns the closing kind matching an opening bracket.
func (k Kind) Closer() Kind {
	switch k {
	case LParen:
		return RParen
	case LBracket:
		return RBracket
	case LBrace:
		return RBrace
	}
	return Invalid
}
