package ast

type NodeType string

const (
	NodeProgram               NodeType = "Program"
	NodeFunctionDefine        NodeType = "FunctionDefine"
	NodeFunctionArguments     NodeType = "FunctionArguments"
	NodeFunctionCall          NodeType = "FunctionCall"
	NodeFunctionReturn        NodeType = "FunctionReturn"
	NodeStatement             NodeType = "Statement"
	NodeVariableDefine        NodeType = "VariableDefine"
	NodeExpression            NodeType = "Expression"
	NodeMathExpression        NodeType = "MathExpression"
	NodeNumber                NodeType = "Number"
	NodeBool                  NodeType = "Bool"
	NodeString                NodeType = "String"
	NodeIdentifier            NodeType = "Identifier"
	NodeConditionalValue      NodeType = "ConditionalValue"
	NodeConditionalOperator   NodeType = "ConditionalOperator"
	NodeConditionalExpression NodeType = "ConditionalExpression"
	NodeIfStatement           NodeType = "IfStatement"
	NodeElseIfStatement       NodeType = "ElseIfStatement"
	NodeElseStatement         NodeType = "ElseStatement"
	NodeIfElseStatements      NodeType = "IfElseStatements"
)

// Node is implemented only by the node types in this package.
type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Parent is implemented by every node that carries an ordered child list.
type Parent interface {
	Node
	Nodes() []Node
}

type childList struct {
	Children []Node `json:"children"`
}

func (c childList) Nodes() []Node { return c.Children }

// Program

type Program struct {
	nodeImpl
	childList
}

func NewProgram(children []Node) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), childList: childList{Children: children}}
}

// Functions

// FunctionDefine children are [Identifier, FunctionArguments?, Statement...].
type FunctionDefine struct {
	nodeImpl
	childList
}

func NewFunctionDefine(children []Node) *FunctionDefine {
	return &FunctionDefine{nodeImpl: newNodeImpl(NodeFunctionDefine), childList: childList{Children: children}}
}

type FunctionArguments struct {
	nodeImpl
	childList
}

func NewFunctionArguments(children []Node) *FunctionArguments {
	return &FunctionArguments{nodeImpl: newNodeImpl(NodeFunctionArguments), childList: childList{Children: children}}
}

type FunctionCall struct {
	nodeImpl
	Name string `json:"name"`
	childList
}

func NewFunctionCall(name string, children []Node) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Name: name, childList: childList{Children: children}}
}

type FunctionReturn struct {
	nodeImpl
	childList
}

func NewFunctionReturn(children []Node) *FunctionReturn {
	return &FunctionReturn{nodeImpl: newNodeImpl(NodeFunctionReturn), childList: childList{Children: children}}
}

// Statements

type Statement struct {
	nodeImpl
	childList
}

func NewStatement(children []Node) *Statement {
	return &Statement{nodeImpl: newNodeImpl(NodeStatement), childList: childList{Children: children}}
}

type VariableDefine struct {
	nodeImpl
	childList
}

func NewVariableDefine(children []Node) *VariableDefine {
	return &VariableDefine{nodeImpl: newNodeImpl(NodeVariableDefine), childList: childList{Children: children}}
}

// Expressions

type Expression struct {
	nodeImpl
	childList
}

func NewExpression(children []Node) *Expression {
	return &Expression{nodeImpl: newNodeImpl(NodeExpression), childList: childList{Children: children}}
}

// MathExpression Name is one of "+", "-", "*", "/", "^".
type MathExpression struct {
	nodeImpl
	Name string `json:"name"`
	childList
}

func NewMathExpression(name string, children []Node) *MathExpression {
	return &MathExpression{nodeImpl: newNodeImpl(NodeMathExpression), Name: name, childList: childList{Children: children}}
}

// Literals

type Number struct {
	nodeImpl
	Value int32 `json:"value"`
}

func NewNumber(value int32) *Number {
	return &Number{nodeImpl: newNodeImpl(NodeNumber), Value: value}
}

type Bool struct {
	nodeImpl
	Value bool `json:"value"`
}

func NewBool(value bool) *Bool {
	return &Bool{nodeImpl: newNodeImpl(NodeBool), Value: value}
}

type String struct {
	nodeImpl
	Value string `json:"value"`
}

func NewString(value string) *String {
	return &String{nodeImpl: newNodeImpl(NodeString), Value: value}
}

type Identifier struct {
	nodeImpl
	Value string `json:"value"`
}

func NewIdentifier(value string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Value: value}
}

// Conditionals

type ConditionalValue struct {
	nodeImpl
	childList
}

func NewConditionalValue(children []Node) *ConditionalValue {
	return &ConditionalValue{nodeImpl: newNodeImpl(NodeConditionalValue), childList: childList{Children: children}}
}

type ConditionalOperator struct {
	nodeImpl
	Value string `json:"value"`
}

func NewConditionalOperator(value string) *ConditionalOperator {
	return &ConditionalOperator{nodeImpl: newNodeImpl(NodeConditionalOperator), Value: value}
}

// ConditionalExpression children are [value, operator, value, (operator, value)*].
// Only the first triple takes part in evaluation.
type ConditionalExpression struct {
	nodeImpl
	childList
}

func NewConditionalExpression(children []Node) *ConditionalExpression {
	return &ConditionalExpression{nodeImpl: newNodeImpl(NodeConditionalExpression), childList: childList{Children: children}}
}

type IfStatement struct {
	nodeImpl
	childList
}

func NewIfStatement(children []Node) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), childList: childList{Children: children}}
}

type ElseIfStatement struct {
	nodeImpl
	childList
}

func NewElseIfStatement(children []Node) *ElseIfStatement {
	return &ElseIfStatement{nodeImpl: newNodeImpl(NodeElseIfStatement), childList: childList{Children: children}}
}

type ElseStatement struct {
	nodeImpl
	childList
}

func NewElseStatement(children []Node) *ElseStatement {
	return &ElseStatement{nodeImpl: newNodeImpl(NodeElseStatement), childList: childList{Children: children}}
}

type IfElseStatements struct {
	nodeImpl
	childList
}

func NewIfElseStatements(children []Node) *IfElseStatements {
	return &IfElseStatements{nodeImpl: newNodeImpl(NodeIfElseStatements), childList: childList{Children: children}}
}
