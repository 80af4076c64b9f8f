package ast

import (
	"encoding/json"
	"fmt"
	"math"
)

// Marshal renders a tree as indented JSON. Every object carries its node
// type under "type".
func Marshal(node Node) ([]byte, error) {
	if node == nil {
		return nil, fmt.Errorf("ast: nil node")
	}
	return json.MarshalIndent(node, "", "  ")
}

// Decode rebuilds a tree from the JSON produced by Marshal.
func Decode(data []byte) (Node, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ast: %w", err)
	}
	return decodeNode(raw)
}

func decodeNode(node map[string]any) (Node, error) {
	typ, _ := node["type"].(string)
	switch NodeType(typ) {
	case NodeNumber:
		value, err := decodeInt32(node["value"])
		if err != nil {
			return nil, err
		}
		return NewNumber(value), nil
	case NodeBool:
		value, ok := node["value"].(bool)
		if !ok {
			return nil, fmt.Errorf("ast: Bool value must be a boolean, got %T", node["value"])
		}
		return NewBool(value), nil
	case NodeString:
		value, _ := node["value"].(string)
		return NewString(value), nil
	case NodeIdentifier:
		value, _ := node["value"].(string)
		if value == "" {
			return nil, fmt.Errorf("ast: Identifier requires a value")
		}
		return NewIdentifier(value), nil
	case NodeConditionalOperator:
		value, _ := node["value"].(string)
		return NewConditionalOperator(value), nil
	}

	children, err := decodeChildren(node["children"])
	if err != nil {
		return nil, fmt.Errorf("ast: %s: %w", typ, err)
	}
	switch NodeType(typ) {
	case NodeProgram:
		return NewProgram(children), nil
	case NodeFunctionDefine:
		return NewFunctionDefine(children), nil
	case NodeFunctionArguments:
		return NewFunctionArguments(children), nil
	case NodeFunctionCall:
		name, _ := node["name"].(string)
		return NewFunctionCall(name, children), nil
	case NodeFunctionReturn:
		return NewFunctionReturn(children), nil
	case NodeStatement:
		return NewStatement(children), nil
	case NodeVariableDefine:
		return NewVariableDefine(children), nil
	case NodeExpression:
		return NewExpression(children), nil
	case NodeMathExpression:
		name, _ := node["name"].(string)
		return NewMathExpression(name, children), nil
	case NodeConditionalValue:
		return NewConditionalValue(children), nil
	case NodeConditionalExpression:
		return NewConditionalExpression(children), nil
	case NodeIfStatement:
		return NewIfStatement(children), nil
	case NodeElseIfStatement:
		return NewElseIfStatement(children), nil
	case NodeElseStatement:
		return NewElseStatement(children), nil
	case NodeIfElseStatements:
		return NewIfElseStatements(children), nil
	default:
		return nil, fmt.Errorf("ast: unknown node type %q", typ)
	}
}

func decodeChildren(raw any) ([]Node, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("children must be an array, got %T", raw)
	}
	out := make([]Node, 0, len(list))
	for i, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("children[%d] must be an object, got %T", i, entry)
		}
		child, err := decodeNode(obj)
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	return out, nil
}

func decodeInt32(raw any) (int32, error) {
	f, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("ast: Number value must be numeric, got %T", raw)
	}
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("ast: Number value %v is not a 32-bit integer", f)
	}
	return int32(f), nil
}
