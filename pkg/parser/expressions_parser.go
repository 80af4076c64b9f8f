package parser

import (
	"asa/interpreter-go/pkg/ast"
)

// infixLevel describes one left-associative binary precedence level.
type infixLevel struct {
	rule      string
	operators []string
	operand   Parser
}

var (
	levelAdditive       infixLevel
	levelMultiplicative infixLevel
	levelExponent       infixLevel
)

func init() {
	levelExponent = infixLevel{rule: "l3", operators: []string{"^"}, operand: l4}
	levelMultiplicative = infixLevel{rule: "l2", operators: []string{"*", "/"}, operand: l3}
	levelAdditive = infixLevel{rule: "l1", operators: []string{"+", "-"}, operand: l2}
}

// parse reads operand (op operand)* and folds the tail to the left, so
// "a - b - c" becomes ((a - b) - c).
func (lvl infixLevel) parse(input string) (string, ast.Node, *Error) {
	rest, head, err := lvl.operand(input)
	if err != nil {
		return input, nil, err
	}
	for {
		next, op, rhs, err := lvl.infix(rest)
		if err != nil {
			if err.fatal {
				return input, nil, err
			}
			return rest, head, nil
		}
		head = ast.NewMathExpression(op, []ast.Node{head, rhs})
		rest = next
	}
}

func (lvl infixLevel) infix(input string) (string, string, ast.Node, *Error) {
	rest := spaces(input)
	var op string
	for _, candidate := range lvl.operators {
		if next, err := tag(lvl.rule, candidate, rest); err == nil {
			op = candidate
			rest = next
			break
		}
	}
	if op == "" {
		return input, "", nil, failure(lvl.rule, "operator", rest)
	}
	rest = spaces(rest)
	rest, rhs, err := lvl.operand(rest)
	if err != nil {
		return input, "", nil, err
	}
	return rest, op, rhs, nil
}

// l1 = l2 ((" "*) ("+"|"-") (" "*) l2)*
func l1(input string) (string, ast.Node, *Error) { return levelAdditive.parse(input) }

// l2 = l3 ((" "*) ("*"|"/") (" "*) l3)*
func l2(input string) (string, ast.Node, *Error) { return levelMultiplicative.parse(input) }

// l3 = l4 ((" "*) "^" (" "*) l4)*
func l3(input string) (string, ast.Node, *Error) { return levelExponent.parse(input) }

// l4 = function_call | number | identifier | parenthetical
func l4(input string) (string, ast.Node, *Error) {
	return alt(functionCall, number, identifier, parenthetical)(input)
}

// parenthetical = " "* "(" " "* l1 " "* ")" " "*
func parenthetical(input string) (string, ast.Node, *Error) {
	rest, err := tag("parenthetical", "(", spaces(input))
	if err != nil {
		return input, nil, err
	}
	rest, inner, err := l1(spaces(rest))
	if err != nil {
		return input, nil, err
	}
	rest, err = tag("parenthetical", ")", spaces(rest))
	if err != nil {
		return input, nil, err
	}
	return spaces(rest), inner, nil
}

func mathExpression(input string) (string, ast.Node, *Error) {
	return l1(input)
}

// expression = boolean | math_expression | function_call | string
func expression(input string) (string, ast.Node, *Error) {
	rest, inner, err := alt(boolean, mathExpression, functionCall, str)(input)
	if err != nil {
		return input, nil, err
	}
	return rest, ast.NewExpression([]ast.Node{inner}), nil
}

// function_call = identifier "(" arguments? ")"
func functionCall(input string) (string, ast.Node, *Error) {
	rest, name, err := alphanumeric1("function_call", input)
	if err != nil {
		return input, nil, err
	}
	rest, err = tag("function_call", "(", rest)
	if err != nil {
		return input, nil, err
	}
	rest, args, err := opt(arguments, rest)
	if err != nil {
		return input, nil, err
	}
	rest, err = tag("function_call", ")", rest)
	if err != nil {
		return input, nil, err
	}
	var children []ast.Node
	if args != nil {
		children = []ast.Node{args}
	}
	return rest, ast.NewFunctionCall(name, children), nil
}

// arguments = expression ("," expression)*
func arguments(input string) (string, ast.Node, *Error) {
	rest, first, err := expression(input)
	if err != nil {
		return input, nil, err
	}
	rest, others, err := many0(otherArgument, rest)
	if err != nil {
		return input, nil, err
	}
	return rest, ast.NewFunctionArguments(append([]ast.Node{first}, others...)), nil
}

func otherArgument(input string) (string, ast.Node, *Error) {
	rest, err := tag("arguments", ",", spaces(input))
	if err != nil {
		return input, nil, err
	}
	return expression(spaces(rest))
}
