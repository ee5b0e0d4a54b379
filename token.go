package formulas

import (
	"math"
	"strconv"
)

// Kind is the classification of a token. Kinds are bit flags so that the
// tokenizer can track sets of them.
type Kind uint8

const (
	// Operator is one of + - * /.
	Operator Kind = 1 << iota
	// Operand is a number.
	Operand
	// OpeningBracket is (.
	OpeningBracket
	// ClosingBracket is ).
	ClosingBracket

	// sign is a + or - which the tokenizer has not yet decided to be either
	// a binary operator or the sign of an operand. No emitted token has it.
	sign
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=Kind
//go:generate go mod tidy

// Token is a classified unit of an expression. Tokens are values and never
// change after construction.
type Token struct {
	kind     Kind
	priority byte
	sym      byte
	num      float64
	// start and end are byte offsets of the token in the source text.
	start, end int
}

// NewOperand creates an operand token holding v.
func NewOperand(v float64) Token {
	return Token{kind: Operand, num: v}
}

// NewSymbol creates an operator or bracket token. Panics if sym is not a
// valid symbol for kind.
func NewSymbol(sym byte, kind Kind) Token {
	switch {
	case kind == Operator && isOperator(sym),
		kind == OpeningBracket && sym == '(',
		kind == ClosingBracket && sym == ')':
	default:
		panic("formulas: invalid " + kind.String() + " symbol " + strconv.QuoteRune(rune(sym)))
	}
	return Token{kind: kind, sym: sym, priority: priority(kind, sym)}
}

// priority gives the shunting-yard priority of a token.
func priority(kind Kind, sym byte) byte {
	switch kind {
	case Operator:
		if sym == '+' || sym == '-' {
			return 1
		}
		return 2
	case OpeningBracket, ClosingBracket:
		return 3
	default:
		return 0
	}
}

func isOperator(c byte) bool {
	return c == '+' || c == '-' || c == '*' || c == '/'
}

// at returns a copy of t with its source span set.
func (t Token) at(start, end int) Token {
	t.start, t.end = start, end
	return t
}

// Kind returns the token's kind.
func (t Token) Kind() Kind {
	return t.kind
}

// Priority returns the token's priority: 0 for operands, 1 for + and -, 2 for
// * and /, and 3 for brackets.
func (t Token) Priority() byte {
	return t.priority
}

// Value returns the number held by an operand token. It is 0 for other kinds.
func (t Token) Value() float64 {
	return t.num
}

// Symbol returns the character of an operator or bracket token. It is 0 for
// operands.
func (t Token) Symbol() byte {
	return t.sym
}

// Start returns the byte offset at which the token begins in the text it was
// scanned from.
func (t Token) Start() int {
	return t.start
}

// End returns the byte offset just past the token in the text it was scanned
// from.
func (t Token) End() int {
	return t.end
}

func (t Token) String() string {
	if t.kind == Operand {
		return formatFloat(t.num)
	}
	return string(t.sym)
}

// formatFloat formats v with the fewest digits that read back as exactly v.
// Magnitudes from 1e-4 up to 1e21 are written without an exponent, so the
// text can be scanned as an operand again.
func formatFloat(v float64) string {
	if a := math.Abs(v); a == 0 || 1e-4 <= a && a < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
