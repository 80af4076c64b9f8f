package parser

import (
	"strconv"

	"asa/interpreter-go/pkg/ast"
)

// identifier = alnum+ ; digits are allowed anywhere, callers that want a
// number must try number first.
func identifier(input string) (string, ast.Node, *Error) {
	rest, word, err := alphanumeric1("identifier", input)
	if err != nil {
		return input, nil, err
	}
	return rest, ast.NewIdentifier(word), nil
}

// number = digit+ ; parsed as a signed 32-bit integer.
func number(input string) (string, ast.Node, *Error) {
	rest, digits, err := digit1("number", input)
	if err != nil {
		return input, nil, err
	}
	value, convErr := strconv.ParseInt(digits, 10, 32)
	if convErr != nil {
		return input, nil, &Error{
			Rule:      "number",
			Expected:  "an integer literal that fits in 32 bits",
			Remaining: input,
			fatal:     true,
			err:       convErr,
		}
	}
	return rest, ast.NewNumber(int32(value)), nil
}

// boolean = "true" | "false" ; the keyword must not run into further
// alphanumerics, so "trueish" stays an identifier.
func boolean(input string) (string, ast.Node, *Error) {
	for _, kw := range []string{"true", "false"} {
		rest, err := tag("boolean", kw, input)
		if err != nil {
			continue
		}
		if len(rest) > 0 && isAlnum(rest[0]) {
			continue
		}
		return rest, ast.NewBool(kw == "true"), nil
	}
	return input, nil, failure("boolean", "true or false", input)
}

// str = "\"" (alnum | " ")+ "\"" ; empty strings are rejected.
func str(input string) (string, ast.Node, *Error) {
	rest, err := tag("string", "\"", input)
	if err != nil {
		return input, nil, err
	}
	rest, body, err := takeWhile1("string", "alphanumeric characters or spaces", rest, func(c byte) bool {
		return isAlnum(c) || c == ' '
	})
	if err != nil {
		return input, nil, err
	}
	rest, err = tag("string", "\"", rest)
	if err != nil {
		return input, nil, err
	}
	return rest, ast.NewString(body), nil
}
