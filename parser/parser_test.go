package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/treegen/lexer"
)

func parse(t *testing.T, src string) []Declaration {
	t.Helper()
	decls, err := Parse(lexer.New(src))
	require.NoError(t, err)
	return decls
}

func TestEmptyInput(t *testing.T) {
	decls := parse(t, "")
	assert.Empty(t, decls)

	decls = parse(t, "# only a comment\n")
	assert.Empty(t, decls)
}

func TestOneIdentifierIsClassName(t *testing.T) {
	decls := parse(t, "ExprList(Expr, ExprList)")

	require.Len(t, decls, 1)
	d := decls[0]
	assert.Equal(t, "ExprList", d.Name)
	assert.Empty(t, d.Supertype)
	assert.False(t, d.Abstract)
	require.Len(t, d.Params, 2)
	assert.Equal(t, "Expr", d.Params[0].TypeName)
	assert.Equal(t, "ExprList", d.Params[1].TypeName)
	assert.Empty(t, d.Params[0].Name)
}

func TestTwoIdentifiersAreSupertypeThenName(t *testing.T) {
	decls := parse(t, "Expr Op::Plus(Expr left, Expr right)")

	require.Len(t, decls, 1)
	d := decls[0]
	assert.Equal(t, "Op::Plus", d.Name)
	assert.Equal(t, "Expr", d.Supertype)
	require.Len(t, d.Params, 2)
	assert.Equal(t, "left", d.Params[0].Name)
	assert.Equal(t, "right", d.Params[1].Name)
}

func TestAbstractDeclaration(t *testing.T) {
	decls := parse(t, "abstract Expr()")

	require.Len(t, decls, 1)
	assert.True(t, decls[0].Abstract)
	assert.Equal(t, "Expr", decls[0].Name)
	assert.Empty(t, decls[0].Params)
}

func TestAbstractWithSupertype(t *testing.T) {
	decls := parse(t, "abstract Node Expr()")

	require.Len(t, decls, 1)
	d := decls[0]
	assert.True(t, d.Abstract)
	assert.Equal(t, "Node", d.Supertype)
	assert.Equal(t, "Expr", d.Name)
}

func TestScalarParam(t *testing.T) {
	decls := parse(t, "Expr Number(scalar value)")

	require.Len(t, decls, 1)
	p := decls[0].Params[0]
	assert.True(t, p.Scalar)
	assert.Empty(t, p.TypeName)
	assert.Equal(t, "value", p.Name)
}

func TestAnonymousScalarParam(t *testing.T) {
	decls := parse(t, "Expr Number(scalar)")

	require.Len(t, decls[0].Params, 1)
	assert.True(t, decls[0].Params[0].Scalar)
	assert.Empty(t, decls[0].Params[0].Name)
}

func TestMultipleDeclarations(t *testing.T) {
	src := `abstract Expr()
Expr Number(scalar value)
ExprList(Expr, ExprList)
ExprList EmptyExprList()
`
	decls := parse(t, src)

	require.Len(t, decls, 4)
	assert.Equal(t, []string{"Expr", "Number", "ExprList", "EmptyExprList"},
		[]string{decls[0].Name, decls[1].Name, decls[2].Name, decls[3].Name})
	assert.Equal(t, 2, decls[1].Line)
}

func TestMissingOpenParen(t *testing.T) {
	_, err := Parse(lexer.New("Expr Number"))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Error(), "expected '('")
}

func TestMissingClosingParen(t *testing.T) {
	_, err := Parse(lexer.New("Expr Number(scalar value"))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, lexer.KindEOF, parseErr.Token.Kind)
	assert.Contains(t, parseErr.Error(), "closing ')'")
}

func TestUnexpectedTokenInParams(t *testing.T) {
	_, err := Parse(lexer.New("Expr Number(,)"))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Error(), "expected field type")
}

func TestKeywordAsClassNameRejected(t *testing.T) {
	_, err := Parse(lexer.New("abstract abstract()"))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Error(), "expected class name")
}

func TestLexErrorPropagates(t *testing.T) {
	_, err := Parse(lexer.New("Expr Number(%)"))
	var lexErr *lexer.LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, '%', lexErr.Char)
}

func TestParseErrorCarriesLine(t *testing.T) {
	_, err := Parse(lexer.New("abstract Expr()\nExpr Number scalar"))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Token.Line)
}
