package gram

import (
	"strings"
	"unicode/utf8"
)

// TokenKind classifies one raw argument.
type TokenKind uint8

const (
	TokenBare      TokenKind = iota // plain value
	TokenLong                       // --name or --name=value
	TokenShort                      // -x
	TokenSeparator                  // the literal --
)

// Token is one classified argument. Raw always carries the original
// argument text so values can be recovered losslessly.
type Token struct {
	Kind     TokenKind
	Name     string // switch name without dashes (long or short form)
	Short    rune   // decoded letter for well-formed short switches
	Value    string // inline value from --name=value
	HasValue bool
	Raw      string
}

// Tokenizer lazily classifies an argument list, one token per argument.
// After the -- separator every remaining argument is forced to Bare,
// which is the escape mechanism for dash-prefixed positional values.
type Tokenizer struct {
	args     []string
	pos      int
	bareOnly bool
}

// NewTokenizer wraps an argument list. The slice is not copied; callers
// must not mutate it during tokenization.
func NewTokenizer(args []string) *Tokenizer {
	return &Tokenizer{args: args}
}

// Next returns the next token, advancing the cursor. The separator token
// itself is returned once; everything after it classifies as Bare.
func (t *Tokenizer) Next() (Token, bool) {
	if t.pos >= len(t.args) {
		return Token{}, false
	}
	tok := classify(t.args[t.pos], t.bareOnly)
	t.pos++
	if tok.Kind == TokenSeparator {
		t.bareOnly = true
	}
	return tok, true
}

// Peek classifies the next token without consuming it.
func (t *Tokenizer) Peek() (Token, bool) {
	if t.pos >= len(t.args) {
		return Token{}, false
	}
	return classify(t.args[t.pos], t.bareOnly), true
}

func classify(arg string, bareOnly bool) Token {
	if bareOnly {
		return Token{Kind: TokenBare, Raw: arg}
	}
	switch {
	case arg == "--":
		return Token{Kind: TokenSeparator, Raw: arg}
	case strings.HasPrefix(arg, "--"):
		name := arg[2:]
		tok := Token{Kind: TokenLong, Name: name, Raw: arg}
		if eq := strings.IndexByte(name, '='); eq != -1 {
			tok.Name = name[:eq]
			tok.Value = name[eq+1:]
			tok.HasValue = true
		}
		return tok
	case len(arg) > 1 && arg[0] == '-':
		tok := Token{Kind: TokenShort, Name: arg[1:], Raw: arg}
		if r, size := utf8.DecodeRuneInString(arg[1:]); size == len(arg)-1 && r != utf8.RuneError {
			tok.Short = r
		}
		return tok
	default:
		// A lone "-" is conventionally a positional (stdin placeholder).
		return Token{Kind: TokenBare, Raw: arg}
	}
}
