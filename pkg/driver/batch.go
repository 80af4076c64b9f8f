package driver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"asa/interpreter-go/pkg/ast"
	"asa/interpreter-go/pkg/interpreter"
	"asa/interpreter-go/pkg/parser"
	"asa/interpreter-go/pkg/runtime"
)

// RunOptions control how programs are evaluated.
type RunOptions struct {
	MaxCallDepth int
	// Concurrency caps the programs in flight. Zero or less means no cap.
	Concurrency int
}

// Result is the outcome of running one program. Err is either a
// *parser.Error or an interpreter.Error.
type Result struct {
	Name      string
	Remaining string
	Program   *ast.Program
	Value     runtime.Value
	Err       error
}

// Failed reports whether the program failed to parse or evaluate.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Execute parses and runs source with a fresh interpreter.
func Execute(name, source string, opts RunOptions) Result {
	res := Result{Name: name}
	rest, prog, err := parser.Program(source)
	res.Remaining = rest
	res.Program = prog
	if err == nil && rest != "" {
		_, err = parser.Parse(source)
	}
	if err != nil {
		res.Err = err
		return res
	}
	return ExecuteTree(name, prog, opts)
}

// ExecuteTree runs an already parsed program with a fresh interpreter.
func ExecuteTree(name string, prog *ast.Program, opts RunOptions) Result {
	res := Result{Name: name, Program: prog}
	interp := interpreter.NewWithOptions(interpreter.Options{MaxCallDepth: opts.MaxCallDepth})
	res.Value, res.Err = interp.Start(prog)
	return res
}

// RunBatch loads and runs every source concurrently, one interpreter each.
// Results come back in the order of sources. A source that cannot be
// loaded aborts the batch; parse and evaluation failures are reported in
// the matching Result.
func (l *Loader) RunBatch(ctx context.Context, sources []Source, opts RunOptions) ([]Result, error) {
	results := make([]Result, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			text, err := l.Load(gctx, src)
			if err != nil {
				return fmt.Errorf("%s: %w", src.label(), err)
			}
			results[i] = Execute(src.label(), text, opts)
			if results[i].Failed() {
				l.log.Debugf("%s failed: %v", src.label(), results[i].Err)
			} else {
				l.log.Debugf("%s finished", src.label())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	l.log.Infof("ran %d programs", len(sources))
	return results, nil
}
