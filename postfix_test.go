package formulas

import (
	"strings"
	"testing"
)

func joinTokens(toks []Token) string {
	s := make([]string, len(toks))
	for i, tok := range toks {
		s[i] = tok.String()
	}
	return strings.Join(s, " ")
}

func TestToPostfix(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1", "1"},
		{"((1))", "1"},
		{"-5+3", "-5 3 +"},
		{"2+3*4", "2 3 4 * +"},
		{"(2+3)*4", "2 3 + 4 *"},
		{"8-3-2", "8 3 - 2 -"},
		{"8/4/2", "8 4 / 2 /"},
		{"1*2+3", "1 2 * 3 +"},
		{"1+2*3-4", "1 2 3 * + 4 -"},
		{"1*2/3*4", "1 2 * 3 / 4 *"},
		{"1-(2-3)", "1 2 3 - -"},
		{"2*(3+4)*5", "2 3 4 + * 5 *"},
		{"(1+2)*(3-4)/5", "1 2 + 3 4 - * 5 /"},
		{"1+2*(3-4/(5+6))", "1 2 3 4 5 6 + / - * +"},
	}
	for _, c := range cases {
		infix, err := Tokenize(c.src)
		if err != nil {
			t.Errorf("%q failed to scan: %v", c.src, err)
			continue
		}
		got := joinTokens(ToPostfix(infix))
		if got != c.want {
			t.Errorf("%q: want postfix %q, got %q", c.src, c.want, got)
		}
	}
}

func TestToPostfixConstructed(t *testing.T) {
	// Tokens built directly rather than scanned behave the same.
	infix := []Token{
		NewOperand(6),
		NewSymbol('/', Operator),
		NewSymbol('(', OpeningBracket),
		NewOperand(1),
		NewSymbol('+', Operator),
		NewOperand(2),
		NewSymbol(')', ClosingBracket),
	}
	if got := joinTokens(ToPostfix(infix)); got != "6 1 2 + /" {
		t.Errorf("want 6 1 2 + /, got %s", got)
	}
}
