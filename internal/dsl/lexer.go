package dsl

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokLong  // --name
	tokShort // -x
	tokDoc   // /// text
	tokLBrace
	tokRBrace
	tokColon
	tokComma
	tokPipe
)

type token struct {
	kind  tokKind
	text  string
	short rune
	line  int
}

func (t token) display() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokLong:
		return "--" + t.text
	case tokShort:
		return "-" + string(t.short)
	case tokDoc:
		return "///"
	default:
		return t.text
	}
}

func lex(src string) ([]token, error) {
	var toks []token
	line := 1
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '\n':
			line++
			i++
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case c == '{':
			toks = append(toks, token{kind: tokLBrace, text: "{", line: line})
			i++
		case c == '}':
			toks = append(toks, token{kind: tokRBrace, text: "}", line: line})
			i++
		case c == ':':
			toks = append(toks, token{kind: tokColon, text: ":", line: line})
			i++
		case c == ',':
			toks = append(toks, token{kind: tokComma, text: ",", line: line})
			i++
		case c == '|':
			toks = append(toks, token{kind: tokPipe, text: "|", line: line})
			i++
		case strings.HasPrefix(src[i:], "///"):
			end := lineEnd(src, i)
			text := strings.TrimSpace(src[i+3 : end])
			toks = append(toks, token{kind: tokDoc, text: text, line: line})
			i = end
		case strings.HasPrefix(src[i:], "//"):
			i = lineEnd(src, i) // plain comment, discarded
		case strings.HasPrefix(src[i:], "--"):
			start := i + 2
			end := identEnd(src, start)
			if end == start {
				return nil, fmt.Errorf("line %d: '--' must be followed by a switch name", line)
			}
			toks = append(toks, token{kind: tokLong, text: src[start:end], line: line})
			i = end
		case c == '-':
			r, size := utf8.DecodeRuneInString(src[i+1:])
			if size == 0 || r == utf8.RuneError {
				return nil, fmt.Errorf("line %d: dangling '-'", line)
			}
			end := identEnd(src, i+1)
			if end != i+1+size {
				return nil, fmt.Errorf("line %d: short switch %q must be a single letter", line, src[i:end])
			}
			toks = append(toks, token{kind: tokShort, short: r, line: line})
			i = end
		case isIdentByte(c):
			end := identEnd(src, i)
			toks = append(toks, token{kind: tokIdent, text: src[i:end], line: line})
			i = end
		default:
			return nil, fmt.Errorf("line %d: unexpected character %q", line, rune(c))
		}
	}
	return toks, nil
}

func lineEnd(src string, i int) int {
	for i < len(src) && src[i] != '\n' {
		i++
	}
	return i
}

func identEnd(src string, i int) int {
	for i < len(src) && isIdentByte(src[i]) {
		i++
	}
	return i
}

// Identifiers allow dashes, matching switch and command naming on the
// command line itself.
func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '-' || c == '_' || c == '.'
}
