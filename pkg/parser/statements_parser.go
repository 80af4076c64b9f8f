package parser

import (
	"asa/interpreter-go/pkg/ast"
)

// statement = (" "|"\t")* variable_define ";" " "* "\n"*
func statement(input string) (string, ast.Node, *Error) {
	rest, def, err := variableDefine(blanks(input))
	if err != nil {
		return input, nil, err
	}
	rest, err = tag("statement", ";", rest)
	if err != nil {
		return input, nil, err
	}
	rest = skip("\n", spaces(rest))
	return rest, ast.NewStatement([]ast.Node{def}), nil
}

// bodyStatement is a statement inside a function body, where returns are
// allowed next to bindings:
//
//	whitespace (variable_define | function_return) " "* ";" whitespace
func bodyStatement(input string) (string, ast.Node, *Error) {
	rest, inner, err := alt(variableDefine, functionReturn)(whitespace(input))
	if err != nil {
		return input, nil, err
	}
	rest, err = tag("statement", ";", spaces(rest))
	if err != nil {
		return input, nil, err
	}
	return whitespace(rest), ast.NewStatement([]ast.Node{inner}), nil
}

// variable_define = "let " identifier " "* "=" " "* expression
func variableDefine(input string) (string, ast.Node, *Error) {
	rest, err := tag("variable_define", "let ", input)
	if err != nil {
		return input, nil, err
	}
	rest, name, err := identifier(rest)
	if err != nil {
		return input, nil, err
	}
	rest, err = tag("variable_define", "=", spaces(rest))
	if err != nil {
		return input, nil, err
	}
	rest, value, err := expression(spaces(rest))
	if err != nil {
		return input, nil, err
	}
	return rest, ast.NewVariableDefine([]ast.Node{name, value}), nil
}

// function_return = "return " expression
//
// expression already covers the function_call and identifier arms, and
// reading it first lets "return foo() + 1" keep the whole sum.
func functionReturn(input string) (string, ast.Node, *Error) {
	rest, err := tag("function_return", "return ", input)
	if err != nil {
		return input, nil, err
	}
	rest, value, err := expression(rest)
	if err != nil {
		return input, nil, err
	}
	return rest, ast.NewFunctionReturn([]ast.Node{value}), nil
}

// conditional_operator tries the two-character comparators first so that
// "<=" is not read as "<" followed by "=".
var conditionalOperators = []string{"<=", ">=", "==", "!=", "<", ">"}

func conditionalOperator(input string) (string, ast.Node, *Error) {
	for _, op := range conditionalOperators {
		if rest, err := tag("conditional_operator", op, input); err == nil {
			return rest, ast.NewConditionalOperator(op), nil
		}
	}
	return input, nil, failure("conditional_operator", "comparison operator", input)
}

// conditional_val = boolean | math_expression | number | identifier
func conditionalValue(input string) (string, ast.Node, *Error) {
	rest, inner, err := alt(boolean, mathExpression, number, identifier)(input)
	if err != nil {
		return input, nil, err
	}
	return rest, ast.NewConditionalValue([]ast.Node{inner}), nil
}

// conditional_exp = conditional_val " "* conditional_operator " "* conditional_val
//
//	(" "* conditional_operator " "* conditional_val)*
func conditionalExpression(input string) (string, ast.Node, *Error) {
	rest, lhs, err := conditionalValue(input)
	if err != nil {
		return input, nil, err
	}
	rest, op, rhs, err := comparisonTail(rest)
	if err != nil {
		return input, nil, err
	}
	children := []ast.Node{lhs, op, rhs}
	for {
		next, op, val, err := comparisonTail(rest)
		if err != nil {
			if err.fatal {
				return input, nil, err
			}
			break
		}
		children = append(children, op, val)
		rest = next
	}
	return rest, ast.NewConditionalExpression(children), nil
}

func comparisonTail(input string) (string, ast.Node, ast.Node, *Error) {
	rest, op, err := conditionalOperator(spaces(input))
	if err != nil {
		return input, nil, nil, err
	}
	rest, val, err := conditionalValue(spaces(rest))
	if err != nil {
		return input, nil, nil, err
	}
	return rest, op, val, nil
}

// block parses the braces shared by if, else if and else:
//
//	"{" whitespace statement* whitespace (function_return " "* ";" whitespace)+ "}" whitespace
func block(rule, input string) (string, []ast.Node, *Error) {
	rest, err := tag(rule, "{", input)
	if err != nil {
		return input, nil, err
	}
	rest, statements, err := many0(statement, whitespace(rest))
	if err != nil {
		return input, nil, err
	}
	rest, returns, err := many1(terminatedReturn, whitespace(rest))
	if err != nil {
		return input, nil, err
	}
	rest, err = tag(rule, "}", rest)
	if err != nil {
		return input, nil, err
	}
	return whitespace(rest), append(statements, returns...), nil
}

func terminatedReturn(input string) (string, ast.Node, *Error) {
	rest, ret, err := functionReturn(input)
	if err != nil {
		return input, nil, err
	}
	rest, err = tag("function_return", ";", spaces(rest))
	if err != nil {
		return input, nil, err
	}
	return whitespace(rest), ret, nil
}

// guardedBranch parses `keyword conditional_exp block`.
func guardedBranch(rule, keyword, input string) (string, ast.Node, []ast.Node, *Error) {
	rest, err := tag(rule, keyword, input)
	if err != nil {
		return input, nil, nil, err
	}
	rest, cond, err := conditionalExpression(spaces(rest))
	if err != nil {
		return input, nil, nil, err
	}
	rest, body, err := block(rule, spaces(rest))
	if err != nil {
		return input, nil, nil, err
	}
	return rest, cond, body, nil
}

// if = "if " " "* conditional_exp " "* block
func ifStatement(input string) (string, ast.Node, *Error) {
	rest, cond, body, err := guardedBranch("if", "if ", input)
	if err != nil {
		return input, nil, err
	}
	return rest, ast.NewIfStatement(append([]ast.Node{cond}, body...)), nil
}

// else_if = "else if " " "* conditional_exp " "* block
func elseIfStatement(input string) (string, ast.Node, *Error) {
	rest, cond, body, err := guardedBranch("else_if", "else if ", input)
	if err != nil {
		return input, nil, err
	}
	return rest, ast.NewElseIfStatement(append([]ast.Node{cond}, body...)), nil
}

// else = "else " " "* block
func elseStatement(input string) (string, ast.Node, *Error) {
	rest, err := tag("else", "else ", input)
	if err != nil {
		return input, nil, err
	}
	rest, body, err := block("else", spaces(rest))
	if err != nil {
		return input, nil, err
	}
	return rest, ast.NewElseStatement(body), nil
}

// if_else_statements = if else_if* else+
func ifElseStatements(input string) (string, ast.Node, *Error) {
	rest, first, err := ifStatement(input)
	if err != nil {
		return input, nil, err
	}
	rest, elseIfs, err := many0(elseIfStatement, rest)
	if err != nil {
		return input, nil, err
	}
	rest, elses, err := many1(elseStatement, rest)
	if err != nil {
		return input, nil, err
	}
	children := append([]ast.Node{first}, elseIfs...)
	children = append(children, elses...)
	return rest, ast.NewIfElseStatements(children), nil
}
