package domain

import (
	"path/filepath"
	"strings"
)

// TokenKind discriminates how a Token is rendered.
type TokenKind int

const (
	// TokenLiteral is rendered as-is and forms a single argument.
	TokenLiteral TokenKind = iota
	// TokenDir references a directory and is rendered as its absolute path.
	TokenDir
	// TokenFile references a file and is rendered as its absolute path.
	TokenFile
	// TokenLine is a raw, user-supplied fragment rendered verbatim.
	// It may expand to several arguments when split at the spawn boundary.
	TokenLine
)

// String returns the name of the kind.
func (k TokenKind) String() string {
	switch k {
	case TokenLiteral:
		return "literal"
	case TokenDir:
		return "dir"
	case TokenFile:
		return "file"
	case TokenLine:
		return "line"
	default:
		return "unknown"
	}
}

// Token is one element of an argument list.
type Token struct {
	Kind  TokenKind
	Value string
}

// Literal returns a literal token.
func Literal(value string) Token {
	return Token{Kind: TokenLiteral, Value: value}
}

// Dir returns a directory reference token.
func Dir(path string) Token {
	return Token{Kind: TokenDir, Value: path}
}

// File returns a file reference token.
func File(path string) Token {
	return Token{Kind: TokenFile, Value: path}
}

// Line returns a raw line token. The value is never escaped.
func Line(raw string) Token {
	return Token{Kind: TokenLine, Value: raw}
}

// Render returns the textual form of the token.
func (t Token) Render() string {
	switch t.Kind {
	case TokenDir, TokenFile:
		return absPath(t.Value)
	default:
		return t.Value
	}
}

// Arguments is an ordered list of tokens.
type Arguments struct {
	tokens []Token
}

// NewArguments returns an argument list holding the given tokens in order.
func NewArguments(tokens ...Token) Arguments {
	a := Arguments{}
	a.Append(tokens...)
	return a
}

// Append adds tokens to the end of the list.
func (a *Arguments) Append(tokens ...Token) {
	a.tokens = append(a.tokens, tokens...)
}

// Len returns the number of tokens.
func (a Arguments) Len() int {
	return len(a.tokens)
}

// Tokens returns a copy of the token sequence.
func (a Arguments) Tokens() []Token {
	out := make([]Token, len(a.tokens))
	copy(out, a.tokens)
	return out
}

// String renders every token and joins them with a single space.
func (a Arguments) String() string {
	parts := make([]string, len(a.tokens))
	for i, t := range a.tokens {
		parts[i] = t.Render()
	}
	return strings.Join(parts, " ")
}

func absPath(p string) string {
	if p == "" {
		return p
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}
