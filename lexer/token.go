package lexer

import "fmt"

// Kind classifies a token produced by the tokenizer
type Kind int

const (
	// KindIdent is a plain identifier such as Expr
	KindIdent Kind = iota
	// KindNamespacedIdent is an identifier with one or more :: separators,
	// lexed as a single token (e.g. Op::Plus)
	KindNamespacedIdent
	// KindAbstract is the keyword 'abstract'
	KindAbstract
	// KindScalar is the keyword 'scalar'
	KindScalar
	// KindLParen is '('
	KindLParen
	// KindRParen is ')'
	KindRParen
	// KindComma is ','
	KindComma
	// KindEOF marks the end of input
	KindEOF
)

// String returns a human-readable name for the kind, used in diagnostics
func (k Kind) String() string {
	switch k {
	case KindIdent:
		return "identifier"
	case KindNamespacedIdent:
		return "namespaced identifier"
	case KindAbstract:
		return "'abstract'"
	case KindScalar:
		return "'scalar'"
	case KindLParen:
		return "'('"
	case KindRParen:
		return "')'"
	case KindComma:
		return "','"
	case KindEOF:
		return "end of input"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is one lexical unit of the tree config DSL. Tokens are immutable
// and produced once; Line is 1-based.
type Token struct {
	Kind Kind
	Text string
	Line int
}

// IsIdent reports whether the token can serve as a class or field name
// (plain or namespaced identifier).
func (t Token) IsIdent() bool {
	return t.Kind == KindIdent || t.Kind == KindNamespacedIdent
}

func (t Token) String() string {
	switch t.Kind {
	case KindIdent, KindNamespacedIdent:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	default:
		return t.Kind.String()
	}
}
