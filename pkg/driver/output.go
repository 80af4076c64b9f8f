package driver

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"

	"asa/interpreter-go/pkg/ast"
	"asa/interpreter-go/pkg/runtime"
)

var treeDumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// DumpTree pretty-prints a parse tree.
func DumpTree(node ast.Node) string {
	return treeDumper.Sdump(node)
}

type jsonResult struct {
	Name  string `json:"name,omitempty"`
	Kind  string `json:"kind,omitempty"`
	Value any    `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

// FormatValue renders a value in the given format. An empty format means
// debug.
func FormatValue(v runtime.Value, format Format) (string, error) {
	switch format {
	case FormatDebug, "":
		return runtime.Format(v), nil
	case FormatPlain:
		return runtime.Plain(v), nil
	case FormatJSON:
		data, err := json.Marshal(jsonResult{Kind: v.Kind().String(), Value: runtime.Native(v)})
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

// WriteResult prints one result. With printTree the leftover input and the
// tree come first.
func WriteResult(w io.Writer, res Result, format Format, printTree bool) error {
	if printTree && res.Program != nil {
		fmt.Fprintf(w, "Unparsed Text: %q\n", res.Remaining)
		fmt.Fprintf(w, "Parse Tree:\n%s", DumpTree(res.Program))
	}
	if format == FormatJSON {
		out := jsonResult{Name: res.Name}
		if res.Err != nil {
			out.Error = res.Err.Error()
		} else {
			out.Kind = res.Value.Kind().String()
			out.Value = runtime.Native(res.Value)
		}
		data, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	if res.Err != nil {
		_, err := fmt.Fprintf(w, "error: %v\n", res.Err)
		return err
	}
	text, err := FormatValue(res.Value, format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, text)
	return err
}
