// Package lexer turns raw tree config text into a lazy token stream.
//
// Comments run from '#' to end of line and are discarded along with all
// whitespace. '::' inside an identifier is not a separate token: a
// namespaced identifier like Op::Plus is one token. The literal texts
// 'abstract' and 'scalar' are keywords, never identifiers.
package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// keywords take priority over identifier classification
var keywords = map[string]Kind{
	"abstract": KindAbstract,
	"scalar":   KindScalar,
}

// LexError reports a character that matches no token rule. Tokenization
// aborts at the first such character; there is no recovery.
type LexError struct {
	Char rune
	Line int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line %d: unexpected character %q", e.Line, e.Char)
}

// Lexer is a lazy, non-restartable tokenizer over one config source.
// It owns no state beyond its input cursor.
type Lexer struct {
	src  string
	pos  int
	line int
}

// New returns a Lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Next returns the next token, or a *LexError on an unrecognized character.
// After the input is exhausted every call returns a KindEOF token.
func (l *Lexer) Next() (Token, error) {
	l.skipInsignificant()

	if l.pos >= len(l.src) {
		return Token{Kind: KindEOF, Line: l.line}, nil
	}

	ch, size := utf8.DecodeRuneInString(l.src[l.pos:])
	line := l.line

	switch ch {
	case '(':
		l.pos += size
		return Token{Kind: KindLParen, Text: "(", Line: line}, nil
	case ')':
		l.pos += size
		return Token{Kind: KindRParen, Text: ")", Line: line}, nil
	case ',':
		l.pos += size
		return Token{Kind: KindComma, Text: ",", Line: line}, nil
	}

	if isIdentStart(ch) {
		return l.lexIdent(line), nil
	}

	return Token{}, &LexError{Char: ch, Line: line}
}

// skipInsignificant consumes whitespace, newlines, and '#' comments.
func (l *Lexer) skipInsignificant() {
	for l.pos < len(l.src) {
		ch, size := utf8.DecodeRuneInString(l.src[l.pos:])
		switch {
		case ch == '\n':
			l.line++
			l.pos += size
		case unicode.IsSpace(ch):
			l.pos += size
		case ch == '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

// lexIdent consumes an identifier, including any internal '::' namespace
// separators, and classifies keywords.
func (l *Lexer) lexIdent(line int) Token {
	start := l.pos
	namespaced := false

	l.consumeIdentPart()
	for l.pos+1 < len(l.src) && l.src[l.pos] == ':' && l.src[l.pos+1] == ':' {
		next, _ := utf8.DecodeRuneInString(l.src[l.pos+2:])
		if !isIdentStart(next) {
			break
		}
		l.pos += 2
		l.consumeIdentPart()
		namespaced = true
	}

	text := l.src[start:l.pos]
	if kind, ok := keywords[text]; ok {
		return Token{Kind: kind, Text: text, Line: line}
	}
	kind := KindIdent
	if namespaced {
		kind = KindNamespacedIdent
	}
	return Token{Kind: kind, Text: text, Line: line}
}

func (l *Lexer) consumeIdentPart() {
	for l.pos < len(l.src) {
		ch, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isIdentPart(ch) {
			return
		}
		l.pos += size
	}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
