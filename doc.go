// Package formulas evaluates arithmetic expressions over float64.
//
// An expression is made of decimal numbers, the operators + - * /, unary
// signs, and parentheses. Evaluation happens in stages which are each
// available on their own: Tokenize scans the text into infix tokens,
// ToPostfix reorders them with the shunting-yard algorithm, and BuildTree
// turns the postfix sequence into an evaluation tree whose nodes compute and
// cache their own results. Evaluate runs every stage and returns a Formula
// holding all of the intermediate forms.
//
// Numbers are read with the decimal and group separators of a locale, so
// "1.234,5" is a single operand under WithLocale(language.German). Errors
// caused by the input are always *Error values which locate the offending
// part of the text.
package formulas
