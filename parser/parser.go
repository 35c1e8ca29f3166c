// Package parser consumes the token stream and produces an ordered list of
// class declarations.
//
// Grammar (informal):
//
//	declaration := 'abstract'? ident ident? '(' paramList? ')'
//	paramList   := param (',' param)*
//	param       := ('scalar' | ident) ident?
//
// The one-vs-two-identifier rule before '(' is purely positional: one
// identifier is the class's own name, two are supertype then name. No
// semantic lookup happens here.
package parser

import (
	"fmt"

	"github.com/teranos/treegen/lexer"
)

// ParseError reports an unexpected token. It carries the offending token so
// diagnostics can show its text and line without re-scanning the input.
type ParseError struct {
	Token   lexer.Token
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s, got %s", e.Token.Line, e.Message, e.Token)
}

type parser struct {
	lx     *lexer.Lexer
	peeked *lexer.Token
}

// Parse consumes the lexer's token stream and returns the declarations in
// source order. An empty token stream yields an empty list, not an error.
func Parse(lx *lexer.Lexer) ([]Declaration, error) {
	p := &parser{lx: lx}
	var decls []Declaration

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == lexer.KindEOF {
			return decls, nil
		}
		decl, err := p.declaration()
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
}

func (p *parser) next() (lexer.Token, error) {
	if p.peeked != nil {
		tok := *p.peeked
		p.peeked = nil
		return tok, nil
	}
	return p.lx.Next()
}

func (p *parser) peek() (lexer.Token, error) {
	if p.peeked == nil {
		tok, err := p.lx.Next()
		if err != nil {
			return lexer.Token{}, err
		}
		p.peeked = &tok
	}
	return *p.peeked, nil
}

func (p *parser) declaration() (Declaration, error) {
	tok, err := p.next()
	if err != nil {
		return Declaration{}, err
	}

	decl := Declaration{Line: tok.Line}
	if tok.Kind == lexer.KindAbstract {
		decl.Abstract = true
		tok, err = p.next()
		if err != nil {
			return Declaration{}, err
		}
	}

	if !tok.IsIdent() {
		return Declaration{}, &ParseError{Token: tok, Message: "expected class name"}
	}
	first := tok

	tok, err = p.next()
	if err != nil {
		return Declaration{}, err
	}
	switch {
	case tok.IsIdent():
		// Two identifiers before '(': supertype then class name
		decl.Supertype = first.Text
		decl.Name = tok.Text
		tok, err = p.next()
		if err != nil {
			return Declaration{}, err
		}
	default:
		decl.Name = first.Text
	}

	if tok.Kind != lexer.KindLParen {
		return Declaration{}, &ParseError{Token: tok, Message: "expected '('"}
	}

	params, err := p.paramList()
	if err != nil {
		return Declaration{}, err
	}
	decl.Params = params
	return decl, nil
}

// paramList parses zero or more comma-separated params up to the closing ')'.
func (p *parser) paramList() ([]Param, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == lexer.KindRParen {
		p.peeked = nil
		return nil, nil
	}

	var params []Param
	for {
		param, err := p.param()
		if err != nil {
			return nil, err
		}
		params = append(params, param)

		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case lexer.KindRParen:
			return params, nil
		case lexer.KindComma:
			continue
		default:
			return nil, &ParseError{Token: tok, Message: "expected ',' or closing ')'"}
		}
	}
}

func (p *parser) param() (Param, error) {
	tok, err := p.next()
	if err != nil {
		return Param{}, err
	}

	param := Param{Line: tok.Line}
	switch {
	case tok.Kind == lexer.KindScalar:
		param.Scalar = true
	case tok.IsIdent():
		param.TypeName = tok.Text
	default:
		return Param{}, &ParseError{Token: tok, Message: "expected field type"}
	}

	tok, err = p.peek()
	if err != nil {
		return Param{}, err
	}
	if tok.IsIdent() {
		param.Name = tok.Text
		p.peeked = nil
	}
	return param, nil
}
