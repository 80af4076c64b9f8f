package ast

// Short constructors used by tests and by the evaluator when it synthesizes
// nodes (for example the implicit main function).

func Prog(children ...Node) *Program {
	return NewProgram(children)
}

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Num(value int32) *Number {
	return NewNumber(value)
}

func Bln(value bool) *Bool {
	return NewBool(value)
}

func Str(value string) *String {
	return NewString(value)
}

func Expr(inner Node) *Expression {
	return NewExpression([]Node{inner})
}

func Math(op string, left, right Node) *MathExpression {
	return NewMathExpression(op, []Node{left, right})
}

func Args(exprs ...Node) *FunctionArguments {
	return NewFunctionArguments(exprs)
}

// Call builds a call node; with no arguments the child list stays empty.
func Call(name string, args ...Node) *FunctionCall {
	if len(args) == 0 {
		return NewFunctionCall(name, nil)
	}
	return NewFunctionCall(name, []Node{Args(args...)})
}

func Ret(value Node) *FunctionReturn {
	return NewFunctionReturn([]Node{value})
}

func Let(name string, value Node) *VariableDefine {
	return NewVariableDefine([]Node{ID(name), value})
}

func Stmt(inner Node) *Statement {
	return NewStatement([]Node{inner})
}

// Fn builds a function definition. Parameter names are wrapped the same way
// the parser wraps them: Expression{Identifier}.
func Fn(name string, params []string, body ...Node) *FunctionDefine {
	children := []Node{ID(name)}
	if len(params) > 0 {
		exprs := make([]Node, 0, len(params))
		for _, p := range params {
			exprs = append(exprs, Expr(ID(p)))
		}
		children = append(children, Args(exprs...))
	}
	children = append(children, body...)
	return NewFunctionDefine(children)
}

func CondVal(inner Node) *ConditionalValue {
	return NewConditionalValue([]Node{inner})
}

func CondOp(op string) *ConditionalOperator {
	return NewConditionalOperator(op)
}

func Cond(left Node, op string, right Node) *ConditionalExpression {
	return NewConditionalExpression([]Node{CondVal(left), CondOp(op), CondVal(right)})
}

func If(cond *ConditionalExpression, body ...Node) *IfStatement {
	return NewIfStatement(append([]Node{cond}, body...))
}

func ElseIf(cond *ConditionalExpression, body ...Node) *ElseIfStatement {
	return NewElseIfStatement(append([]Node{cond}, body...))
}

func Else(body ...Node) *ElseStatement {
	return NewElseStatement(body)
}

func IfChain(branches ...Node) *IfElseStatements {
	return NewIfElseStatements(branches)
}
