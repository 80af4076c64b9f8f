package interpreter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asa/interpreter-go/pkg/ast"
	"asa/interpreter-go/pkg/parser"
	"asa/interpreter-go/pkg/runtime"
)

type runCase struct {
	name    string
	source  string
	want    runtime.Value
	wantErr Error
}

func checkRun(t *testing.T, tc runCase) {
	t.Helper()
	got, err := Run(tc.source)
	if tc.wantErr != "" {
		require.Error(t, err)
		assert.Equal(t, tc.wantErr, err, "source %q", tc.source)
		return
	}
	require.NoError(t, err, "source %q", tc.source)
	assert.Equal(t, tc.want, got, "source %q", tc.source)
}

func TestRunScenarios(t *testing.T) {
	cases := []runCase{
		{name: "number", source: `123`, want: runtime.Int(123)},
		{name: "unbound identifier", source: `x`, wantErr: ErrUndefinedVariable},
		{name: "string", source: `"hello world"`, want: runtime.Str("hello world")},
		{name: "addition", source: `1 + 1`, want: runtime.Int(2)},
		{name: "nested parens", source: `((10+2)*6)/4`, want: runtime.Int(18)},
		{name: "exponent", source: `2 ^ 4`, want: runtime.Int(16)},
		{name: "let", source: `let x = 123;`, want: runtime.Int(123)},
		{name: "undefined function", source: `foo()`, wantErr: ErrUndefinedFunction},
		{name: "call without args", source: `fn main(){return foo();} fn foo(){return 5;}`, want: runtime.Int(5)},
		{name: "call with args", source: `fn main(){return foo(1,2,3);} fn foo(a,b,c){return a+b+c;}`, want: runtime.Int(6)},
		{name: "less than", source: `5 < 7`, want: runtime.Bool(true)},
		{name: "int against bool", source: `7 > true`, wantErr: ErrCannotCompare},
		{
			name:   "if chain",
			source: `if 1 < 2 { let x = 9; return true; } else if 3 == 2 { return false; } else { return true; }`,
			want:   runtime.Bool(true),
		},
		{name: "comparison precedence", source: `11 + 6 * 2 < 5 * 2 - 3`, want: runtime.Bool(false)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) { checkRun(t, tc) })
	}
}

func TestRunLiteralsAndBindings(t *testing.T) {
	cases := []runCase{
		{name: "true", source: `true`, want: runtime.Bool(true)},
		{name: "false", source: `false`, want: runtime.Bool(false)},
		{name: "single word string", source: `"hi"`, want: runtime.Str("hi")},
		{name: "call one arg", source: `foo(a)`, wantErr: ErrUndefinedFunction},
		{name: "call many args", source: `foo(a,b,c)`, wantErr: ErrUndefinedFunction},
		{name: "let one", source: `let x = 1;`, want: runtime.Int(1)},
		{name: "let bool", source: `let bool = true;`, want: runtime.Bool(true)},
		{name: "let string", source: `let string = "Hello World";`, want: runtime.Str("Hello World")},
		{name: "let without spaces", source: `let x=1;`, want: runtime.Int(1)},
		{name: "let math", source: `let x = 1 + 1;`, want: runtime.Int(2)},
		{name: "let undefined call", source: `let x = foo();`, wantErr: ErrUndefinedFunction},
		{name: "let undefined call with args", source: `let x = foo(a,b,c);`, wantErr: ErrUndefinedFunction},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) { checkRun(t, tc) })
	}
}

func TestRunArithmetic(t *testing.T) {
	cases := []runCase{
		{name: "no spaces", source: `1+1`, want: runtime.Int(2)},
		{name: "subtraction", source: `1 - 1`, want: runtime.Int(0)},
		{name: "multiply", source: `2 * 4`, want: runtime.Int(8)},
		{name: "divide", source: `6 / 2`, want: runtime.Int(3)},
		{name: "precedence", source: `10 + 2*6`, want: runtime.Int(22)},
		{name: "sum", source: `7 + 7`, want: runtime.Int(14)},
		{name: "square", source: `3 ^ 2`, want: runtime.Int(9)},
		{name: "left assoc subtraction", source: `10 - 3 - 2`, want: runtime.Int(5)},
		{name: "left assoc division", source: `100 / 10 / 5`, want: runtime.Int(2)},
		{name: "left assoc exponent", source: `2 ^ 3 ^ 2`, want: runtime.Int(64)},
		{name: "truncating division", source: `7 / 2`, want: runtime.Int(3)},
		{name: "negative result", source: `1 - 5`, want: runtime.Int(-4)},
		{name: "zero exponent", source: `5 ^ 0`, want: runtime.Int(1)},
		{name: "exponent of negative exponent", source: `2 ^ (1 - 3)`, want: runtime.Int(1)},
		{name: "division by zero", source: `1 / 0`, wantErr: ErrDivisionByZero},
		{name: "overflow wraps", source: `2147483647 + 1`, want: runtime.Int(-2147483648)},
		{name: "exponent wraps", source: `2 ^ 32`, want: runtime.Int(0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) { checkRun(t, tc) })
	}
}

func TestRunFunctions(t *testing.T) {
	cases := []runCase{
		{
			name: "body with binding",
			source: `fn main() {
  return foo();
}
fn foo(){
  let x = 5;
  return x;
}`,
			want: runtime.Int(5),
		},
		{
			name: "full program",
			source: `fn foo(a,b,c) {
  let x = a + 1;
  let y = bar(c - b);
  return x * y;
}

fn bar(a) {
  return a * 3;
}

fn main() {
  return foo(1,2,3);
}`,
			want: runtime.Int(6),
		},
		{
			name:   "no early return",
			source: `fn main(){return 1; return 2;}`,
			want:   runtime.Int(2),
		},
		{
			name:   "binding after return wins",
			source: `fn main(){return 1; let y = 7;}`,
			want:   runtime.Int(7),
		},
		{
			name:   "last definition wins",
			source: `fn main(){return 1;} fn main(){return 2;}`,
			want:   runtime.Int(2),
		},
		{
			name:   "excess arguments ignored",
			source: `fn main(){return one(1, 2);} fn one(a){return a;}`,
			want:   runtime.Int(1),
		},
		{
			name:    "missing argument",
			source:  `fn main(){return two(1);} fn two(a,b){return a;}`,
			wantErr: ErrArgumentCount,
		},
		{
			name:    "caller bindings are invisible",
			source:  `fn main(){let x = 3; return peek();} fn peek(){return x;}`,
			wantErr: ErrUndefinedVariable,
		},
		{
			name:   "arguments evaluate in caller frame",
			source: `fn main(){let x = 3; return twice(x + 1);} fn twice(n){return n * 2;}`,
			want:   runtime.Int(8),
		},
		{
			name:   "rebinding replaces",
			source: `fn main(){let x = 1; let x = x + 1; return x;}`,
			want:   runtime.Int(2),
		},
		{
			name:    "math on string",
			source:  `fn main(){let s = "a"; return s + 1;}`,
			wantErr: ErrMathOnNonNumber,
		},
		{
			name:   "top level item replaces main",
			source: `fn main(){return 1;} 40 + 2`,
			want:   runtime.Int(42),
		},
		{
			name:    "top level call is not an entry point",
			source:  `fn five(){return 5;} five()`,
			wantErr: ErrUndefinedFunction,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) { checkRun(t, tc) })
	}
}

func TestRunConditionals(t *testing.T) {
	cases := []runCase{
		{name: "less or equal", source: `3 <= 3`, want: runtime.Bool(true)},
		{name: "greater or equal", source: `2 >= 3`, want: runtime.Bool(false)},
		{name: "equal", source: `4 == 4`, want: runtime.Bool(true)},
		{name: "not equal", source: `4 != 4`, want: runtime.Bool(false)},
		{name: "bool equality", source: `true == true`, want: runtime.Bool(true)},
		{name: "bool ordering", source: `false < true`, want: runtime.Bool(true)},
		{name: "trailing pairs ignored", source: `1 < 2 > 100`, want: runtime.Bool(true)},
		{name: "bool against int", source: `true == 1`, wantErr: ErrCannotCompare},
		{
			name:   "if branch returns condition",
			source: `if 4 > 3 {return false;} else if 7 == 9 {return false;} else {return true;}`,
			want:   runtime.Bool(true),
		},
		{
			name:   "chain value is first condition",
			source: `if 1+7 > 9 { return true; } else if 9 != 2 { return true; } else { return false; }`,
			want:   runtime.Bool(false),
		},
		{
			name:   "single line chain",
			source: `if 4 > 3 {return true;} else if 7 == 9 {return false;} else {return true;}`,
			want:   runtime.Bool(true),
		},
		{
			name:    "error inside taken branch propagates",
			source:  `if 1 < 2 { let x = y; return true; } else { return false; }`,
			wantErr: ErrUndefinedVariable,
		},
		{
			name:   "error inside skipped branch is not reached",
			source: `if 2 < 1 { let x = y; return true; } else { return false; }`,
			want:   runtime.Bool(false),
		},
		{
			name:    "unbound name in condition",
			source:  `if a < 2 { return true; } else { return false; }`,
			wantErr: ErrUndefinedVariable,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) { checkRun(t, tc) })
	}
}

func TestRunParseErrorsStayParseErrors(t *testing.T) {
	for _, src := range []string{
		``,
		`1 +`,
		`if 1 < 2 { return true; }`,
		`let x = ;`,
		`99999999999`,
	} {
		_, err := Run(src)
		require.Error(t, err, "source %q", src)
		var perr *parser.Error
		assert.True(t, errors.As(err, &perr), "source %q: %T is not a parse error", src, err)
		var evalErr Error
		assert.False(t, errors.As(err, &evalErr), "source %q", src)
	}
}

func TestErrorsCompareByTag(t *testing.T) {
	_, err := Run(`foo()`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUndefinedFunction))
	assert.Equal(t, "Undefined function", err.Error())
}

func TestEvaluateReturnsTrueAndRegisters(t *testing.T) {
	interp := New()
	program := ast.Prog(
		ast.Fn("double", []string{"n"}, ast.Stmt(ast.Ret(ast.Expr(ast.Math("*", ast.ID("n"), ast.Num(2)))))),
		ast.Expr(ast.Num(1)),
	)
	val, err := interp.Evaluate(program)
	require.NoError(t, err)
	assert.Equal(t, runtime.True(), val)
	assert.Equal(t, []string{"double", "main"}, interp.Functions().Names())

	got, err := interp.Eval(ast.Call("double", ast.Expr(ast.Num(21))))
	require.NoError(t, err)
	assert.Equal(t, runtime.Int(42), got)
}

func TestFramesPoppedOnError(t *testing.T) {
	interp := New()
	program := ast.Prog(
		ast.Fn("main", nil, ast.Stmt(ast.Ret(ast.Expr(ast.Call("boom"))))),
		ast.Fn("boom", nil, ast.Stmt(ast.Ret(ast.Expr(ast.ID("missing"))))),
	)
	_, err := interp.Start(program)
	assert.Equal(t, ErrUndefinedVariable, err)
	assert.Equal(t, 0, interp.frames.Depth())

	_, err = interp.Start(program)
	assert.Equal(t, ErrUndefinedVariable, err)
	assert.Equal(t, 0, interp.frames.Depth())
}

func TestCallDepthExceeded(t *testing.T) {
	source := `fn main(){return loop(1);} fn loop(n){return loop(n + 1);}`
	_, err := RunWithOptions(source, Options{MaxCallDepth: 50})
	assert.Equal(t, ErrCallDepthExceeded, err)
}

func TestVariableDefineWithoutFrame(t *testing.T) {
	interp := New()
	_, err := interp.Eval(ast.Let("x", ast.Expr(ast.Num(1))))
	assert.Equal(t, ErrFrameStackUnderflow, err)
}

func TestEvalRejectsMisshapenTrees(t *testing.T) {
	cases := []struct {
		name string
		node ast.Node
		want Error
	}{
		{name: "expression of statement", node: ast.Expr(ast.Stmt(ast.Let("x", ast.Num(1)))), want: ErrUnknownExpression},
		{name: "statement of number", node: ast.Stmt(ast.Num(1)), want: ErrUnknownStatement},
		{name: "conditional value of string", node: ast.CondVal(ast.Str("a")), want: ErrUnknownStatement},
		{name: "unknown math operator", node: ast.Math("%", ast.Num(1), ast.Num(2)), want: ErrUndefinedOperator},
		{name: "unknown comparison", node: ast.Cond(ast.Num(1), "<>", ast.Num(2)), want: ErrUnknownOperator},
		{
			name: "operator slot holds a value",
			node: ast.NewConditionalExpression([]ast.Node{ast.CondVal(ast.Num(1)), ast.CondVal(ast.Num(2)), ast.CondVal(ast.Num(3))}),
			want: ErrUnknownOperator,
		},
		{name: "empty expression", node: ast.NewExpression(nil), want: ErrUnhandledNode},
		{name: "chain with stray node", node: ast.IfChain(ast.Num(1)), want: ErrUnknownStatement},
		{name: "if without condition", node: ast.NewIfStatement([]ast.Node{ast.Num(1)}), want: ErrUnknownExpression},
		{name: "else if without condition", node: ast.NewElseIfStatement(nil), want: ErrUnknownStatement},
		{name: "bare arguments", node: ast.Args(), want: ErrUnhandledNode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New().Eval(tc.node)
			assert.Equal(t, tc.want, err)
		})
	}
}

func TestMathPropagatesInnerErrors(t *testing.T) {
	interp := New()
	interp.frames.Push(runtime.NewFrame())
	_, err := interp.Eval(ast.Math("+", ast.ID("nope"), ast.Num(1)))
	assert.Equal(t, ErrUndefinedVariable, err)
}

func TestPower(t *testing.T) {
	cases := []struct {
		base, exp, want int32
	}{
		{2, 10, 1024},
		{3, 3, 27},
		{-2, 3, -8},
		{7, 1, 7},
		{0, 0, 1},
		{9, -1, 1},
		{10, 10, 1410065408},
	}
	for _, tc := range cases {
		want := int32(1)
		for i := int32(0); i < tc.exp; i++ {
			want *= tc.base
		}
		assert.Equal(t, want, power(tc.base, tc.exp), "%d ^ %d", tc.base, tc.exp)
		assert.Equal(t, tc.want, power(tc.base, tc.exp), "%d ^ %d", tc.base, tc.exp)
	}
}

func TestWhitespaceAroundOperatorsDoesNotChangeResult(t *testing.T) {
	pairs := [][2]string{
		{`1+2*3`, `1 + 2 * 3`},
		{`(4+4)/2`, `( 4 + 4 ) / 2`},
		{`2^3-1`, `2 ^ 3 - 1`},
		{`8-2-1`, `8  -  2  -  1`},
	}
	for _, pair := range pairs {
		tight, err := Run(pair[0])
		require.NoError(t, err)
		loose, err := Run(pair[1])
		require.NoError(t, err)
		assert.Equal(t, tight, loose, "%q vs %q", pair[0], pair[1])
	}
}

func TestRunsShareNothing(t *testing.T) {
	first, err := Run(`fn main(){return 1;}`)
	require.NoError(t, err)
	assert.Equal(t, runtime.Int(1), first)

	_, err = Run(`fn other(){return 2;}`)
	assert.Equal(t, ErrUndefinedFunction, err)
}
