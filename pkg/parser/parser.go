// Package parser turns Asa source text into the tree defined in package ast.
//
// The grammar is written as small recursive-descent rules. Each rule takes
// the remaining input and returns what is left after it together with the
// node it built, so rules compose the way parser combinators do. Only alt
// backtracks; everything else commits as it consumes.
package parser

import (
	"asa/interpreter-go/pkg/ast"
)

// topLevelBranches are the alternatives accepted at the top of a program, in
// the order they are tried.
var topLevelBranches = []Parser{
	functionDefinition,
	ifElseStatements,
	functionCall,
	statement,
	variableDefine,
	conditionalExpression,
	expression,
}

func topLevelItem(input string) (string, ast.Node, *Error) {
	return alt(topLevelBranches...)(input)
}

// program = whitespace (top_level_item whitespace)+
func program(input string) (string, ast.Node, *Error) {
	rest, items, err := many1(func(in string) (string, ast.Node, *Error) {
		rest, node, err := topLevelItem(in)
		if err != nil {
			return in, nil, err
		}
		return whitespace(rest), node, nil
	}, whitespace(input))
	if err != nil {
		return input, nil, err
	}
	return rest, ast.NewProgram(items), nil
}

// Program parses source and returns whatever input the program rule did not
// consume. A non-empty remainder is not an error here.
func Program(source string) (string, *ast.Program, error) {
	rest, node, err := program(source)
	if err != nil {
		return source, nil, err.locate(source)
	}
	return rest, node.(*ast.Program), nil
}

// Parse parses a whole source text. Input left over after the last item is
// reported as an error wrapping ErrUnparsed. The error points at the
// furthest any top-level alternative got, which is usually inside the item
// that was meant to be there rather than at the leftover itself.
func Parse(source string) (*ast.Program, error) {
	rest, prog, err := Program(source)
	if err != nil {
		return nil, err
	}
	if rest != "" {
		perr := &Error{Rule: "program", Expected: "end of input", Remaining: rest}
		if deep := furthestFailure(source, rest); deep != nil {
			perr.Rule = deep.Rule
			perr.Expected = deep.Expected
			perr.Remaining = deep.Remaining
		}
		perr.err = ErrUnparsed
		return nil, perr.locate(source)
	}
	return prog, nil
}

// furthestFailure replays the program rule over source up to rest, trying
// every top-level alternative at each item, and returns the failure that
// got further than rest. A branch like `expression` may accept a prefix of
// a broken function definition, so the item that succeeded is not always
// the one that was meant.
func furthestFailure(source, rest string) *Error {
	var best *Error
	in := whitespace(source)
	for {
		for _, branch := range topLevelBranches {
			if _, _, err := branch(in); err != nil && err.Expected != "" && further(err, best) {
				best = err
			}
		}
		if len(in) <= len(rest) {
			break
		}
		next, _, err := topLevelItem(in)
		if err != nil || len(next) >= len(in) {
			break
		}
		in = whitespace(next)
	}
	if best == nil || len(best.Remaining) >= len(rest) {
		return nil
	}
	return best
}
