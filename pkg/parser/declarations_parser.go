package parser

import (
	"asa/interpreter-go/pkg/ast"
)

// function_definition = "fn " identifier "(" arguments? ")" " "* "{" whitespace
//
//	body_statement+ "}" whitespace
//
// The resulting children are [Identifier, FunctionArguments?, Statement...].
// The parameter list keeps its FunctionArguments wrapper: the evaluator
// recognises parameters by finding that wrapper at the head of the body.
func functionDefinition(input string) (string, ast.Node, *Error) {
	rest, err := tag("function_definition", "fn ", input)
	if err != nil {
		return input, nil, err
	}
	rest, name, err := identifier(rest)
	if err != nil {
		return input, nil, err
	}
	rest, err = tag("function_definition", "(", rest)
	if err != nil {
		return input, nil, err
	}
	rest, params, err := opt(arguments, rest)
	if err != nil {
		return input, nil, err
	}
	rest, err = tag("function_definition", ")", rest)
	if err != nil {
		return input, nil, err
	}
	rest, err = tag("function_definition", "{", spaces(rest))
	if err != nil {
		return input, nil, err
	}
	rest, body, err := many1(bodyStatement, whitespace(rest))
	if err != nil {
		return input, nil, err
	}
	rest, err = tag("function_definition", "}", rest)
	if err != nil {
		return input, nil, err
	}

	children := []ast.Node{name}
	if params != nil {
		children = append(children, params)
	}
	children = append(children, body...)
	return whitespace(rest), ast.NewFunctionDefine(children), nil
}
