package interpreter

import (
	"asa/interpreter-go/pkg/ast"
	"asa/interpreter-go/pkg/runtime"
)

// evaluateProgram registers definitions and turns the last top-level
// statement, expression, comparison or if chain into the body of main.
func (i *Interpreter) evaluateProgram(prog *ast.Program) (runtime.Value, error) {
	for _, item := range prog.Children {
		switch n := item.(type) {
		case *ast.FunctionDefine:
			if _, err := i.evaluateFunctionDefine(n); err != nil {
				return nil, err
			}
		case *ast.IfElseStatements, *ast.ConditionalExpression, *ast.Expression:
			i.functions.Define(EntryPoint, []ast.Node{ast.Ret(n)})
		case *ast.Statement:
			i.functions.Define(EntryPoint, []ast.Node{n})
		}
	}
	return runtime.True(), nil
}

func (i *Interpreter) evaluateFunctionDefine(def *ast.FunctionDefine) (runtime.Value, error) {
	if len(def.Children) == 0 {
		return runtime.True(), nil
	}
	if name, ok := def.Children[0].(*ast.Identifier); ok {
		i.functions.Define(name.Value, def.Children[1:])
	}
	return runtime.True(), nil
}

// evaluateFunctionCall binds the caller's arguments in the caller's frame,
// then runs the body in a fresh frame. Every body node is evaluated and the
// last value is the result; a return does not end the body early.
func (i *Interpreter) evaluateFunctionCall(call *ast.FunctionCall) (runtime.Value, error) {
	args := call.Children
	if len(args) > 0 {
		if wrapped, ok := args[0].(*ast.FunctionArguments); ok {
			args = wrapped.Children
		}
	}

	body, ok := i.functions.Lookup(call.Name)
	if !ok {
		return nil, ErrUndefinedFunction
	}
	if i.frames.Depth() >= i.maxCallDepth {
		return nil, ErrCallDepthExceeded
	}

	frame := runtime.NewFrame()
	statements := body
	if len(body) > 0 {
		if params, ok := body[0].(*ast.FunctionArguments); ok {
			for idx, param := range params.Children {
				if idx >= len(args) {
					return nil, ErrArgumentCount
				}
				val, err := i.Eval(args[idx])
				if err != nil {
					return nil, err
				}
				if name, ok := parameterName(param); ok {
					frame.Define(name, val)
				}
			}
			statements = body[1:]
		}
	}

	i.frames.Push(frame)
	defer i.frames.Pop()

	var result runtime.Value = runtime.True()
	for _, node := range statements {
		val, err := i.Eval(node)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return result, nil
}

// parameterName extracts the name from a parameter written as
// Expression{Identifier}. Other shapes bind nothing.
func parameterName(param ast.Node) (string, bool) {
	expr, ok := param.(*ast.Expression)
	if !ok || len(expr.Children) == 0 {
		return "", false
	}
	id, ok := expr.Children[0].(*ast.Identifier)
	if !ok {
		return "", false
	}
	return id.Value, true
}

func (i *Interpreter) evaluateFunctionReturn(ret *ast.FunctionReturn) (runtime.Value, error) {
	inner, err := child(ret.Children, 0)
	if err != nil {
		return nil, err
	}
	return i.Eval(inner)
}

func (i *Interpreter) evaluateStatement(stmt *ast.Statement) (runtime.Value, error) {
	inner, err := child(stmt.Children, 0)
	if err != nil {
		return nil, err
	}
	switch inner.(type) {
	case *ast.VariableDefine, *ast.FunctionReturn:
		return i.Eval(inner)
	default:
		return nil, ErrUnknownStatement
	}
}

// evaluateVariableDefine binds a name in the top frame, replacing any
// earlier binding of the same name.
func (i *Interpreter) evaluateVariableDefine(def *ast.VariableDefine) (runtime.Value, error) {
	var name string
	if id, ok := firstChild(def.Children).(*ast.Identifier); ok {
		name = id.Value
	}
	valueNode, err := child(def.Children, 1)
	if err != nil {
		return nil, err
	}
	value, err := i.Eval(valueNode)
	if err != nil {
		return nil, err
	}
	frame, err := i.frames.Top()
	if err != nil {
		return nil, ErrFrameStackUnderflow
	}
	frame.Define(name, value)
	return value, nil
}

func firstChild(children []ast.Node) ast.Node {
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// evaluateIfElseStatements checks the shape of the chain and evaluates its
// first entry only; the result is that entry's value.
func (i *Interpreter) evaluateIfElseStatements(chain *ast.IfElseStatements) (runtime.Value, error) {
	for _, branch := range chain.Children {
		switch branch.(type) {
		case *ast.IfStatement, *ast.ElseIfStatement, *ast.ElseStatement:
		default:
			return nil, ErrUnknownStatement
		}
	}
	first, err := child(chain.Children, 0)
	if err != nil {
		return nil, err
	}
	return i.Eval(first)
}

// evaluateGuardedBranch runs an if or else-if branch. The branch's value is
// its condition; when the condition holds, the Statement children run for
// their bindings. Returns inside the branch are not evaluated.
func (i *Interpreter) evaluateGuardedBranch(children []ast.Node, shapeErr Error) (runtime.Value, error) {
	condNode, ok := firstChild(children).(*ast.ConditionalExpression)
	if !ok {
		return nil, shapeErr
	}
	cond, err := i.Eval(condNode)
	if err != nil {
		return nil, err
	}
	if b, ok := cond.(runtime.BoolValue); ok && b.Val {
		if err := i.runStatements(children[1:]); err != nil {
			return nil, err
		}
	}
	return cond, nil
}

func (i *Interpreter) evaluateElseStatement(branch *ast.ElseStatement) (runtime.Value, error) {
	if err := i.runStatements(branch.Children); err != nil {
		return nil, err
	}
	return runtime.True(), nil
}

func (i *Interpreter) runStatements(nodes []ast.Node) error {
	for _, node := range nodes {
		stmt, ok := node.(*ast.Statement)
		if !ok {
			continue
		}
		if _, err := i.Eval(stmt); err != nil {
			return err
		}
	}
	return nil
}
