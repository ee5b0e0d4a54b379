package formulas

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// lexer scans an expression into infix tokens. The grammar is enforced by
// allowed, the set of token kinds that may appear next.
type lexer struct {
	src     string
	loc     Locale
	pos     int
	toks    []Token
	allowed Kind
	open    int
}

// Tokenize scans an expression into tokens in infix order. The first grammar
// violation ends scanning with an *Error locating the offending text.
func Tokenize(text string, opts ...Option) ([]Token, error) {
	ctx := newctx(opts)
	if strings.TrimSpace(text) == "" {
		return nil, plainError(EmptyInput, "", text)
	}
	l := lexer{
		src:     text,
		loc:     ctx.loc,
		allowed: sign | Operand | OpeningBracket,
	}
	return l.run()
}

func (l *lexer) run() ([]Token, error) {
	for l.pos < len(l.src) {
		r, sz := utf8.DecodeRuneInString(l.src[l.pos:])
		if unicode.IsSpace(r) {
			l.pos += sz
			continue
		}
		start := l.pos
		switch r {
		case '(':
			if !l.allows(OpeningBracket) {
				return nil, l.error(Syntax, "opening bracket is not allowed here", start, 1)
			}
			l.emit(NewSymbol('(', OpeningBracket), start, start+1)
			l.allowed = sign | OpeningBracket | Operand
			l.open++
		case ')':
			if !l.allows(ClosingBracket) || l.open == 0 {
				return nil, l.error(Syntax, "closing bracket is not allowed here", start, 1)
			}
			l.emit(NewSymbol(')', ClosingBracket), start, start+1)
			l.allowed = sign | Operator | ClosingBracket
			l.open--
		case '+', '-':
			if l.signed() {
				// The sign belongs to the operand that follows.
				if err := l.operand(); err != nil {
					return nil, err
				}
				continue
			}
			if !l.allows(sign) {
				return nil, l.error(Syntax, "operator is not allowed here", start, 1)
			}
			l.emit(NewSymbol(byte(r), Operator), start, start+1)
			l.allowed = OpeningBracket | Operand | sign
		case '*', '/':
			if !l.allows(Operator) {
				return nil, l.error(Syntax, "operator is not allowed here", start, 1)
			}
			l.emit(NewSymbol(byte(r), Operator), start, start+1)
			l.allowed = OpeningBracket | Operand
		default:
			if err := l.operand(); err != nil {
				return nil, err
			}
			continue
		}
		l.pos++
	}
	if l.open != 0 {
		return nil, plainError(UnbalancedBrackets, "brackets are not closed", l.src)
	}
	last := l.toks[len(l.toks)-1]
	if last.kind != ClosingBracket && last.kind != Operand {
		end := len(strings.TrimRightFunc(l.src, unicode.IsSpace))
		return nil, l.error(Syntax, "expression ends with "+last.String(), last.start, end-last.start)
	}
	return l.toks, nil
}

// signed reports whether a + or - at the current position is the sign of an
// operand rather than a binary operator. That is the case at the start of the
// expression, just inside an opening bracket, and just after a + or -
// operator.
func (l *lexer) signed() bool {
	if len(l.toks) == 0 {
		return true
	}
	last := l.toks[len(l.toks)-1]
	switch last.kind {
	case OpeningBracket:
		return true
	case Operator:
		return last.sym == '+' || last.sym == '-'
	}
	return false
}

// operand scans a number at the current position. The run of characters
// making up the number may begin with signs and may contain whitespace, which
// is ignored.
func (l *lexer) operand() error {
	start := l.pos
	r, sz := utf8.DecodeRuneInString(l.src[start:])
	if !l.numeric(r) {
		return l.error(Syntax, "invalid character", start, sz)
	}
	if !l.allows(Operand) {
		return l.error(Syntax, "operand is not allowed here", start, sz)
	}
	// end is the end of the last non-space rune in the run.
	end := start
	body := false
scan:
	for l.pos < len(l.src) {
		r, sz := utf8.DecodeRuneInString(l.src[l.pos:])
		switch {
		case '0' <= r && r <= '9', l.loc.isDecimal(r), l.loc.isGroup(r):
			body = true
		case r == '+', r == '-':
			// Signs only lead a number. Anywhere else they are operators.
			if body {
				break scan
			}
		case unicode.IsSpace(r):
			l.pos += sz
			continue
		default:
			break scan
		}
		l.pos += sz
		end = l.pos
	}
	// Leave trailing whitespace to the main loop.
	l.pos = end
	v, err := l.loc.ParseFloat(l.src[start:end])
	if err != nil {
		return l.error(InvalidOperand, "invalid operand", start, end-start)
	}
	l.emit(NewOperand(v), start, end)
	l.allowed = Operator | sign | ClosingBracket
	return nil
}

func (l *lexer) numeric(r rune) bool {
	return '0' <= r && r <= '9' || r == '+' || r == '-' || l.loc.isDecimal(r) || l.loc.isGroup(r)
}

func (l *lexer) allows(k Kind) bool {
	return l.allowed&k != 0
}

func (l *lexer) emit(tok Token, start, end int) {
	l.toks = append(l.toks, tok.at(start, end))
}

func (l *lexer) error(kind ErrorKind, msg string, start, n int) error {
	return spanError(kind, msg, l.src, start, n)
}
