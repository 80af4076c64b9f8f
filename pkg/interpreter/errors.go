package interpreter

// Error is an evaluation failure. Its text is the whole message; callers
// compare against the constants below with == or errors.Is.
type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrUndefinedFunction Error = "Undefined function"
	ErrUndefinedVariable Error = "Undefined variable"
	ErrUndefinedOperator Error = "Undefined operator"
	ErrUnknownOperator   Error = "Unknown operator"
	ErrUnknownStatement  Error = "Unknown Statement"
	ErrUnknownExpression Error = "Unknown Expression"
	ErrMathOnNonNumber   Error = "Cannot do math on String or Bool"
	ErrCannotCompare     Error = "Cannot compare these two values"
	ErrUnhandledNode     Error = "Unhandled Node"
	ErrOperator          Error = "Operator error"

	// Failures the host would otherwise report as a panic.
	ErrDivisionByZero      Error = "Division by zero"
	ErrArgumentCount       Error = "Argument count mismatch"
	ErrCallDepthExceeded   Error = "Call depth exceeded"
	ErrFrameStackUnderflow Error = "Frame stack underflow"
)
