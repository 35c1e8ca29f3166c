package cmd

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/teranos/treegen/errors"
	"github.com/teranos/treegen/lexer"
	"github.com/teranos/treegen/parser"
)

// FormatDiagnostic renders err for terminal display, coloring by kind.
// Syntax errors carry a source line, semantic errors name the offending
// declaration.
func FormatDiagnostic(err error) string {
	var lexErr *lexer.LexError
	var parseErr *parser.ParseError

	switch {
	case errors.As(err, &lexErr):
		return fmt.Sprintf("%s %v", pterm.Red("syntax error:"), err)
	case errors.As(err, &parseErr):
		return fmt.Sprintf("%s %v", pterm.Red("syntax error:"), err)
	case errors.IsSemantic(err):
		return fmt.Sprintf("%s %v", pterm.Red("semantic error:"), err)
	default:
		return fmt.Sprintf("%s %v", pterm.Red("error:"), err)
	}
}
