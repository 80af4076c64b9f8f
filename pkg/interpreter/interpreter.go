package interpreter

import (
	"asa/interpreter-go/pkg/ast"
	"asa/interpreter-go/pkg/parser"
	"asa/interpreter-go/pkg/runtime"
)

// DefaultMaxCallDepth bounds nested function calls when Options leaves
// MaxCallDepth at zero.
const DefaultMaxCallDepth = 10000

// EntryPoint is the function the driver invokes after a program has been
// registered.
const EntryPoint = "main"

// Options tunes an interpreter.
type Options struct {
	// MaxCallDepth caps the number of live frames. Zero selects
	// DefaultMaxCallDepth.
	MaxCallDepth int
}

// Interpreter walks Asa trees. It keeps the function table and the frame
// stack of a single run and is not safe for concurrent use.
type Interpreter struct {
	functions    *runtime.FunctionTable
	frames       runtime.FrameStack
	maxCallDepth int
}

// New returns an interpreter with an empty function table and frame stack.
func New() *Interpreter {
	return NewWithOptions(Options{})
}

// NewWithOptions is New with explicit options.
func NewWithOptions(opts Options) *Interpreter {
	depth := opts.MaxCallDepth
	if depth <= 0 {
		depth = DefaultMaxCallDepth
	}
	return &Interpreter{
		functions:    runtime.NewFunctionTable(),
		maxCallDepth: depth,
	}
}

// Functions exposes the function table.
func (i *Interpreter) Functions() *runtime.FunctionTable {
	return i.functions
}

// Evaluate registers the items of a program. It does not call main.
func (i *Interpreter) Evaluate(program *ast.Program) (runtime.Value, error) {
	return i.Eval(program)
}

// Start registers program and then calls main, returning its value.
func (i *Interpreter) Start(program *ast.Program) (runtime.Value, error) {
	if _, err := i.Evaluate(program); err != nil {
		return nil, err
	}
	return i.Eval(ast.Call(EntryPoint))
}

// Run parses source and runs it with a fresh interpreter. Parse failures
// come back as *parser.Error, evaluation failures as Error.
func Run(source string) (runtime.Value, error) {
	return RunWithOptions(source, Options{})
}

// RunWithOptions is Run with explicit interpreter options.
func RunWithOptions(source string, opts Options) (runtime.Value, error) {
	program, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return NewWithOptions(opts).Start(program)
}

// Eval evaluates a single node.
func (i *Interpreter) Eval(node ast.Node) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Program:
		return i.evaluateProgram(n)
	case *ast.FunctionDefine:
		return i.evaluateFunctionDefine(n)
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(n)
	case *ast.FunctionReturn:
		return i.evaluateFunctionReturn(n)
	case *ast.Statement:
		return i.evaluateStatement(n)
	case *ast.VariableDefine:
		return i.evaluateVariableDefine(n)
	case *ast.IfElseStatements:
		return i.evaluateIfElseStatements(n)
	case *ast.IfStatement:
		return i.evaluateGuardedBranch(n.Children, ErrUnknownExpression)
	case *ast.ElseIfStatement:
		return i.evaluateGuardedBranch(n.Children, ErrUnknownStatement)
	case *ast.ElseStatement:
		return i.evaluateElseStatement(n)
	case *ast.Expression:
		return i.evaluateExpression(n)
	case *ast.MathExpression:
		return i.evaluateMathExpression(n)
	case *ast.ConditionalExpression:
		return i.evaluateConditionalExpression(n)
	case *ast.ConditionalValue:
		return i.evaluateConditionalValue(n)
	case *ast.ConditionalOperator:
		return runtime.Str(n.Value), nil
	case *ast.Number:
		return runtime.Int(n.Value), nil
	case *ast.Bool:
		return runtime.Bool(n.Value), nil
	case *ast.String:
		return runtime.Str(n.Value), nil
	case *ast.Identifier:
		return i.evaluateIdentifier(n)
	default:
		return nil, ErrUnhandledNode
	}
}

// child returns children[idx] or ErrUnhandledNode when the slot is empty.
// Trees from the parser always fill the slots the evaluator reads; decoded
// trees may not.
func child(children []ast.Node, idx int) (ast.Node, error) {
	if idx < 0 || idx >= len(children) || children[idx] == nil {
		return nil, ErrUnhandledNode
	}
	return children[idx], nil
}
