package formulas

import (
	"errors"
	"strings"
)

// Formula is an evaluated expression together with every intermediate form of
// it. A Formula never changes after Evaluate returns it, and all of its node
// results are already computed, so it is safe for concurrent use.
type Formula struct {
	expr    string
	loc     Locale
	infix   []Token
	postfix []Token
	root    Node
	result  float64
}

// Evaluate tokenizes, converts, and evaluates an expression. If any stage
// fails, the result is nil and the error is an *Error describing the failure.
func Evaluate(text string, opts ...Option) (*Formula, error) {
	ctx := newctx(opts)
	if strings.TrimSpace(text) == "" {
		return nil, plainError(EmptyInput, "", text)
	}
	infix, err := Tokenize(text, UseLocale(ctx.loc))
	if err != nil {
		return nil, err
	}
	postfix := ToPostfix(infix)
	f := Formula{
		expr:    text,
		loc:     ctx.loc,
		infix:   infix,
		postfix: postfix,
		root:    BuildTree(postfix),
	}
	if f.root != nil {
		// Forcing the root computes and caches every node.
		r, err := f.root.Result()
		if err != nil {
			return nil, attach(err, text)
		}
		f.result = r
	}
	return &f, nil
}

// attach sets the expression text on an error from evaluating a tree, which
// has no access to it.
func attach(err error, text string) error {
	var e *Error
	if !errors.As(err, &e) || e.Text != "" {
		return err
	}
	c := *e
	c.Text = text
	return &c
}

// Expression returns the text the formula was evaluated from.
func (f *Formula) Expression() string {
	return f.expr
}

// Locale returns the locale used to read the formula's numbers.
func (f *Formula) Locale() Locale {
	return f.loc
}

// Infix returns a copy of the formula's tokens in the order they were
// scanned.
func (f *Formula) Infix() []Token {
	return append([]Token(nil), f.infix...)
}

// Postfix returns a copy of the formula's tokens in postfix order.
func (f *Formula) Postfix() []Token {
	return append([]Token(nil), f.postfix...)
}

// Root returns the root of the formula's evaluation tree.
func (f *Formula) Root() Node {
	return f.root
}

// Result returns the value of the formula, or 0 if it has no evaluation tree.
func (f *Formula) Result() float64 {
	return f.result
}

// Annotate renders the computation an operator node performs, as in
// "2+(-3)". Numbers use the formula's locale, and a negative right operand is
// parenthesized. n must belong to f.
func (f *Formula) Annotate(n *OperatorNode) string {
	return annotate(n, f.loc)
}

func annotate(n *OperatorNode, loc Locale) string {
	l, _ := n.left.Result()
	r, _ := n.right.Result()
	rs := loc.FormatFloat(r)
	if r < 0 {
		rs = "(" + rs + ")"
	}
	return loc.FormatFloat(l) + n.String() + rs
}

func (f *Formula) String() string {
	return f.expr + " = " + f.loc.FormatFloat(f.result)
}
