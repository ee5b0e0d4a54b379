package formulas

import (
	"strconv"
)

// Node is a node in an evaluation tree. It is either an *OperandNode, which is
// a leaf, or an *OperatorNode with exactly two children.
type Node interface {
	// Result returns the value of the subtree rooted at the node. The value
	// is computed on the first call and cached.
	Result() (float64, error)
	// String returns the node's own text: its number or its operator.
	String() string

	node()
}

// OperandNode is a leaf holding a number.
type OperandNode struct {
	v float64
}

// Value returns the number held by the node.
func (n *OperandNode) Value() float64 {
	return n.v
}

// Result returns the node's number. It never fails.
func (n *OperandNode) Result() (float64, error) {
	return n.v, nil
}

func (n *OperandNode) String() string {
	return formatFloat(n.v)
}

func (*OperandNode) node() {}

// OperatorNode applies an operator to the results of its two children.
type OperatorNode struct {
	// tok is the operator token the node was built from. Its span locates
	// evaluation errors.
	tok         Token
	left, right Node

	done bool
	res  float64
	err  error
}

// Op returns the node's operator, one of + - * /.
func (n *OperatorNode) Op() byte {
	return n.tok.sym
}

// Left returns the left operand of the operator.
func (n *OperatorNode) Left() Node {
	return n.left
}

// Right returns the right operand of the operator.
func (n *OperatorNode) Right() Node {
	return n.right
}

// Result evaluates the operator on its children's results. Both the result and
// any error are cached, so later calls do no work. Result is not safe to call
// concurrently until the first call has returned.
func (n *OperatorNode) Result() (float64, error) {
	if !n.done {
		n.res, n.err = n.eval()
		n.done = true
	}
	return n.res, n.err
}

func (n *OperatorNode) eval() (float64, error) {
	l, err := n.left.Result()
	if err != nil {
		return 0, err
	}
	r, err := n.right.Result()
	if err != nil {
		return 0, err
	}
	switch n.tok.sym {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	case '/':
		// Float division by zero gives an infinity or NaN, which we report
		// instead.
		if r == 0 {
			return 0, n.error(DivideByZero, "division by zero")
		}
		return l / r, nil
	default:
		return 0, n.error(Internal, "unknown operator "+strconv.QuoteRune(rune(n.tok.sym)))
	}
}

// error creates an error located at the node's operator. The error has no
// Text until Evaluate attaches the expression.
func (n *OperatorNode) error(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Start: n.tok.start, Len: n.tok.end - n.tok.start}
}

func (n *OperatorNode) String() string {
	return string(n.tok.sym)
}

func (*OperatorNode) node() {}
