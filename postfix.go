package formulas

// ToPostfix reorders infix tokens into postfix order using the shunting-yard
// algorithm. Operators of equal priority associate to the left, so 8-3-2 is
// 8 3 - 2 -. Brackets do not appear in the result.
//
// The infix sequence is expected to be well-formed, as Tokenize guarantees.
// Unmatched opening brackets are discarded.
func ToPostfix(infix []Token) []Token {
	out := make([]Token, 0, len(infix))
	var stack []Token
	for _, tok := range infix {
		switch tok.kind {
		case Operand:
			out = append(out, tok)
		case OpeningBracket:
			stack = append(stack, tok)
		case ClosingBracket:
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.kind == OpeningBracket {
					break
				}
				out = append(out, top)
			}
		case Operator:
			// Pop everything that binds at least as tightly.
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.kind == OpeningBracket || tok.priority > top.priority {
					break
				}
				out = append(out, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)
		default:
			panic("formulas: invalid token kind " + tok.kind.String() + " in infix sequence")
		}
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].kind != OpeningBracket {
			out = append(out, stack[i])
		}
	}
	return out
}
