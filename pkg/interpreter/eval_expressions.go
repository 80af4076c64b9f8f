package interpreter

import (
	"asa/interpreter-go/pkg/ast"
	"asa/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(expr *ast.Expression) (runtime.Value, error) {
	inner, err := child(expr.Children, 0)
	if err != nil {
		return nil, err
	}
	switch inner.(type) {
	case *ast.MathExpression, *ast.Number, *ast.FunctionCall, *ast.String, *ast.Bool, *ast.Identifier:
		return i.Eval(inner)
	default:
		return nil, ErrUnknownExpression
	}
}

// evaluateIdentifier reads a name from the top frame only.
func (i *Interpreter) evaluateIdentifier(id *ast.Identifier) (runtime.Value, error) {
	frame, err := i.frames.Top()
	if err != nil {
		return nil, ErrUndefinedVariable
	}
	val, ok := frame.Get(id.Value)
	if !ok {
		return nil, ErrUndefinedVariable
	}
	return val, nil
}

func (i *Interpreter) evaluateMathExpression(expr *ast.MathExpression) (runtime.Value, error) {
	leftNode, err := child(expr.Children, 0)
	if err != nil {
		return nil, err
	}
	rightNode, err := child(expr.Children, 1)
	if err != nil {
		return nil, err
	}
	leftVal, err := i.Eval(leftNode)
	if err != nil {
		return nil, err
	}
	rightVal, err := i.Eval(rightNode)
	if err != nil {
		return nil, err
	}
	lhs, lok := leftVal.(runtime.IntValue)
	rhs, rok := rightVal.(runtime.IntValue)
	if !lok || !rok {
		return nil, ErrMathOnNonNumber
	}
	result, err := applyArithmetic(expr.Name, lhs.Val, rhs.Val)
	if err != nil {
		return nil, err
	}
	return runtime.Int(result), nil
}

// applyArithmetic uses int32 semantics: results wrap on overflow and
// division truncates toward zero.
func applyArithmetic(op string, lhs, rhs int32) (int32, error) {
	switch op {
	case "+":
		return lhs + rhs, nil
	case "-":
		return lhs - rhs, nil
	case "*":
		return lhs * rhs, nil
	case "/":
		if rhs == 0 {
			return 0, ErrDivisionByZero
		}
		return lhs / rhs, nil
	case "^":
		return power(lhs, rhs), nil
	default:
		return 0, ErrUndefinedOperator
	}
}

// power multiplies base by itself exp times; exp <= 0 gives 1. Squaring
// produces the same wrapped result as repeated multiplication.
func power(base, exp int32) int32 {
	result := int32(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func (i *Interpreter) evaluateConditionalValue(val *ast.ConditionalValue) (runtime.Value, error) {
	inner, err := child(val.Children, 0)
	if err != nil {
		return nil, err
	}
	switch inner.(type) {
	case *ast.Number, *ast.Identifier, *ast.Bool, *ast.MathExpression:
		return i.Eval(inner)
	default:
		return nil, ErrUnknownStatement
	}
}

// evaluateConditionalExpression compares the first triple of the chain.
// Trailing operator/value pairs are ignored.
func (i *Interpreter) evaluateConditionalExpression(expr *ast.ConditionalExpression) (runtime.Value, error) {
	if len(expr.Children) < 3 {
		return nil, ErrUnhandledNode
	}
	lhs, err := i.Eval(expr.Children[0])
	if err != nil {
		return nil, err
	}
	opNode, ok := expr.Children[1].(*ast.ConditionalOperator)
	if !ok {
		return nil, ErrUnknownOperator
	}
	opVal, err := i.Eval(opNode)
	if err != nil {
		return nil, err
	}
	rhs, err := i.Eval(expr.Children[2])
	if err != nil {
		return nil, err
	}
	op, ok := opVal.(runtime.StrValue)
	if !ok {
		return nil, ErrOperator
	}

	cmp, comparable := runtime.Compare(lhs, rhs)
	if !comparable {
		return nil, ErrCannotCompare
	}
	result, known := comparisonOp(op.Val, cmp)
	if !known {
		return nil, ErrUnknownOperator
	}
	return runtime.Bool(result), nil
}

func comparisonOp(op string, cmp int) (bool, bool) {
	switch op {
	case "<":
		return cmp < 0, true
	case "<=":
		return cmp <= 0, true
	case ">":
		return cmp > 0, true
	case ">=":
		return cmp >= 0, true
	case "==":
		return cmp == 0, true
	case "!=":
		return cmp != 0, true
	default:
		return false, false
	}
}
