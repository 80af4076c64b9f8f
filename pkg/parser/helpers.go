package parser

import (
	"strings"

	"asa/interpreter-go/pkg/ast"
)

// Parser is a grammar rule: it consumes a prefix of input and returns the
// rest together with the node it recognised.
type Parser func(input string) (string, ast.Node, *Error)

const (
	spaceChars      = " "
	blankChars      = " \t"
	whitespaceChars = " \t\r\n"
)

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// tag consumes lit or fails without consuming anything.
func tag(rule, lit, input string) (string, *Error) {
	if strings.HasPrefix(input, lit) {
		return input[len(lit):], nil
	}
	return input, failure(rule, quote(lit), input)
}

// skip consumes any run of the bytes in set. It never fails.
func skip(set, input string) string {
	i := 0
	for i < len(input) && strings.IndexByte(set, input[i]) >= 0 {
		i++
	}
	return input[i:]
}

func spaces(input string) string     { return skip(spaceChars, input) }
func blanks(input string) string     { return skip(blankChars, input) }
func whitespace(input string) string { return skip(whitespaceChars, input) }

// takeWhile1 consumes one or more bytes accepted by pred.
func takeWhile1(rule, expected, input string, pred func(byte) bool) (string, string, *Error) {
	i := 0
	for i < len(input) && pred(input[i]) {
		i++
	}
	if i == 0 {
		return input, "", failure(rule, expected, input)
	}
	return input[i:], input[:i], nil
}

func alphanumeric1(rule, input string) (string, string, *Error) {
	return takeWhile1(rule, "alphanumeric characters", input, isAlnum)
}

func digit1(rule, input string) (string, string, *Error) {
	return takeWhile1(rule, "digits", input, isDigit)
}

// alt tries each branch on the same input and returns the first success.
// When every branch fails the error that got furthest wins; a fatal error
// stops the search immediately.
func alt(branches ...Parser) Parser {
	return func(input string) (string, ast.Node, *Error) {
		var best *Error
		for _, branch := range branches {
			rest, node, err := branch(input)
			if err == nil {
				return rest, node, nil
			}
			if err.fatal {
				return input, nil, err
			}
			if further(err, best) {
				best = err
			}
		}
		return input, nil, best
	}
}

// many0 applies p until it fails or stops making progress.
func many0(p Parser, input string) (string, []ast.Node, *Error) {
	var nodes []ast.Node
	for {
		rest, node, err := p(input)
		if err != nil {
			if err.fatal {
				return input, nil, err
			}
			return input, nodes, nil
		}
		if len(rest) == len(input) {
			return input, nodes, nil
		}
		nodes = append(nodes, node)
		input = rest
	}
}

// many1 is many0 that requires at least one match.
func many1(p Parser, input string) (string, []ast.Node, *Error) {
	rest, first, err := p(input)
	if err != nil {
		return input, nil, err
	}
	rest, others, err := many0(p, rest)
	if err != nil {
		return input, nil, err
	}
	return rest, append([]ast.Node{first}, others...), nil
}

// opt runs p and treats a non-fatal failure as absence.
func opt(p Parser, input string) (string, ast.Node, *Error) {
	rest, node, err := p(input)
	if err != nil {
		if err.fatal {
			return input, nil, err
		}
		return input, nil, nil
	}
	return rest, node, nil
}

func quote(lit string) string {
	return "\"" + strings.ReplaceAll(lit, "\n", `\n`) + "\""
}
