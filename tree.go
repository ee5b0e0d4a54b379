package formulas

import (
	"strconv"
)

// BuildTree builds an evaluation tree from tokens in postfix order. Each
// operator takes the two subtrees before it as its left and right operands.
// The result is nil if postfix is empty.
//
// BuildTree panics if postfix is not a well-formed postfix sequence. Sequences
// from ToPostfix of tokens from Tokenize are always well-formed.
func BuildTree(postfix []Token) Node {
	var stack []Node
	for _, tok := range postfix {
		switch tok.kind {
		case Operand:
			stack = append(stack, &OperandNode{v: tok.num})
		case Operator:
			if len(stack) < 2 {
				panic("formulas: operator " + tok.String() + " without two operands in postfix sequence")
			}
			// The right operand is on top.
			n := &OperatorNode{tok: tok, left: stack[len(stack)-2], right: stack[len(stack)-1]}
			stack = stack[:len(stack)-2]
			stack = append(stack, n)
		default:
			panic("formulas: invalid token kind " + tok.kind.String() + " in postfix sequence")
		}
	}
	switch len(stack) {
	case 0:
		return nil
	case 1:
		return stack[0]
	default:
		panic("formulas: inconsistent stack: " + strconv.Itoa(len(stack)) + " nodes (bad postfix?)")
	}
}

// Walk calls fn for each node of the tree rooted at n in preorder: a node,
// then its left subtree, then its right subtree. Walk does nothing if n is
// nil.
func Walk(n Node, fn func(Node)) {
	if n == nil {
		return
	}
	fn(n)
	if op, ok := n.(*OperatorNode); ok {
		Walk(op.left, fn)
		Walk(op.right, fn)
	}
}
