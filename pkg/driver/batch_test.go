package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asa/interpreter-go/pkg/interpreter"
	"asa/interpreter-go/pkg/parser"
	"asa/interpreter-go/pkg/runtime"
)

func TestExecute(t *testing.T) {
	res := Execute("sum", "1 + 1", RunOptions{})
	require.NoError(t, res.Err)
	assert.False(t, res.Failed())
	assert.Equal(t, runtime.Int(2), res.Value)
	assert.Equal(t, "", res.Remaining)
	require.NotNil(t, res.Program)

	res = Execute("undefined", "x", RunOptions{})
	assert.Equal(t, interpreter.ErrUndefinedVariable, res.Err)

	res = Execute("partial", "1 + 1 }", RunOptions{})
	require.True(t, res.Failed())
	assert.True(t, errors.Is(res.Err, parser.ErrUnparsed))
	assert.Equal(t, "}", res.Remaining)
	assert.NotNil(t, res.Program)

	res = Execute("deep", `fn main(){return f(1);} fn f(n){return f(n);}`, RunOptions{MaxCallDepth: 8})
	assert.Equal(t, interpreter.ErrCallDepthExceeded, res.Err)
}

func TestRunBatchKeepsInputOrder(t *testing.T) {
	var sources []Source
	for i := 0; i < 20; i++ {
		sources = append(sources, InlineSource(fmt.Sprintf("p%d", i), fmt.Sprintf("%d * 2", i)))
	}
	sources = append(sources, InlineSource("bad", "7 > true"))

	logs := &fauxSyncWriter{}
	loader := NewLoader(WithLogger(testLogger(logs)))
	results, err := loader.RunBatch(context.Background(), sources, RunOptions{Concurrency: 4})
	require.NoError(t, err)
	require.Len(t, results, len(sources))
	for i := 0; i < 20; i++ {
		assert.Equal(t, fmt.Sprintf("p%d", i), results[i].Name)
		assert.Equal(t, runtime.Int(int32(i*2)), results[i].Value)
	}
	last := results[len(results)-1]
	assert.Equal(t, "bad", last.Name)
	assert.Equal(t, interpreter.ErrCannotCompare, last.Err)
	assert.Contains(t, logs.String(), "ran 21 programs")
}

func TestRunBatchAbortsOnLoadError(t *testing.T) {
	sources := []Source{
		InlineSource("ok", "1"),
		FileSource(filepath.Join(t.TempDir(), "missing.asa")),
	}
	_, err := NewLoader().RunBatch(context.Background(), sources, RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.asa")
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		format Format
		value  runtime.Value
		want   string
	}{
		{FormatDebug, runtime.Int(18), "Int(18)"},
		{"", runtime.Bool(false), "Bool(false)"},
		{FormatPlain, runtime.Str("hello world"), "hello world"},
		{FormatJSON, runtime.Int(0), `{"kind":"int","value":0}`},
		{FormatJSON, runtime.Bool(false), `{"kind":"bool","value":false}`},
	}
	for _, tc := range cases {
		got, err := FormatValue(tc.value, tc.format)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
	_, err := FormatValue(runtime.Int(1), "xml")
	assert.Error(t, err)
}

func TestWriteResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResult(&buf, Execute("a", "5 < 7", RunOptions{}), FormatDebug, false))
	assert.Equal(t, "Bool(true)\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteResult(&buf, Execute("b", "foo()", RunOptions{}), FormatPlain, false))
	assert.Equal(t, "error: Undefined function\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteResult(&buf, Execute("c", `"hi"`, RunOptions{}), FormatJSON, false))
	assert.Equal(t, `{"name":"c","kind":"string","value":"hi"}`+"\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteResult(&buf, Execute("d", "x", RunOptions{}), FormatJSON, false))
	assert.Equal(t, `{"name":"d","error":"Undefined variable"}`+"\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteResult(&buf, Execute("e", "8<9", RunOptions{}), FormatDebug, true))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Unparsed Text: \"\"\nParse Tree:\n"), out)
	assert.Contains(t, out, "ConditionalExpression")
	assert.True(t, strings.HasSuffix(out, "Bool(true)\n"), out)
}

func TestDumpTreeOmitsAddresses(t *testing.T) {
	res := Execute("t", "1 + 2", RunOptions{})
	require.NoError(t, res.Err)
	dump := DumpTree(res.Program)
	assert.Contains(t, dump, "MathExpression")
	assert.NotContains(t, dump, "0xc0")
}
