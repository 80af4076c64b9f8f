// Command asa parses and runs Asa programs.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jcgregorio/logger"
	"github.com/urfave/cli/v2"

	"asa/interpreter-go/pkg/ast"
	"asa/interpreter-go/pkg/driver"
	"asa/interpreter-go/pkg/interpreter"
	"asa/interpreter-go/pkg/parser"
)

const cliToolVersion = "asa-cli 0.0.0-dev"

// errFailed reports that a program failed after its error was printed.
var errFailed = errors.New("one or more programs failed")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	c := &command{stdout: stdout, stderr: stderr}
	app := c.app()
	if err := app.Run(append([]string{"asa"}, args...)); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

type command struct {
	stdout io.Writer
	stderr io.Writer
	log    *logger.Logger
}

func (c *command) app() *cli.App {
	return &cli.App{
		Name:           "asa",
		Usage:          "parse and run Asa programs",
		Version:        cliToolVersion,
		Writer:         c.stdout,
		ErrWriter:      c.stderr,
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "log debug output to stderr"},
		},
		Before: func(ctx *cli.Context) error {
			c.log = logger.NewFromOptions(&logger.Options{
				SyncWriter:   syncWriter{c.stderr},
				IncludeDebug: ctx.Bool("verbose"),
			})
			return nil
		},
		Commands: []*cli.Command{
			c.runCommand(),
			c.parseCommand(),
			c.checkCommand(),
			{
				Name:  "version",
				Usage: "print the version",
				Action: func(*cli.Context) error {
					fmt.Fprintln(c.stdout, cliToolVersion)
					return nil
				},
			},
		},
	}
}

func (c *command) runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "run programs from files, a manifest, inline source or a JSON tree",
		ArgsUsage: "[FILE...]",
		Flags: []cli.Flag{
			&cli.PathFlag{Name: "config", Usage: "manifest to use instead of the nearest " + driver.ManifestName},
			&cli.StringFlag{Name: "entry", Usage: "manifest entry to run"},
			&cli.StringFlag{Name: "eval", Aliases: []string{"e"}, Usage: "program text to run"},
			&cli.PathFlag{Name: "ast", Usage: "run a JSON tree written by asa parse --json"},
			&cli.BoolFlag{Name: "tree", Usage: "print the leftover input and the parse tree"},
			&cli.StringFlag{Name: "format", Usage: "result format: debug, plain or json"},
			&cli.IntFlag{Name: "max-call-depth", Usage: "nested call limit (0 uses the default)"},
		},
		Action: c.runAction,
	}
}

func (c *command) runAction(ctx *cli.Context) error {
	needManifest := ctx.IsSet("config") || (ctx.NArg() == 0 && !ctx.IsSet("eval") && !ctx.IsSet("ast"))
	manifest, err := c.manifestFor(ctx.String("config"), ctx.Args().First(), needManifest)
	if err != nil {
		return err
	}

	var opts driver.Options
	if manifest != nil {
		opts = manifest.Options
	}
	if ctx.IsSet("format") {
		opts.Format = driver.Format(ctx.String("format"))
	}
	if opts.Format == "" {
		opts.Format = driver.FormatDebug
	}
	if !opts.Format.IsValid() {
		return fmt.Errorf("unknown format %q (want debug, plain or json)", opts.Format)
	}
	opts.PrintTree = opts.PrintTree || ctx.Bool("tree")
	if ctx.IsSet("max-call-depth") {
		opts.MaxCallDepth = ctx.Int("max-call-depth")
	}
	runOpts := driver.RunOptions{MaxCallDepth: opts.MaxCallDepth}

	if path := ctx.String("ast"); path != "" {
		return c.runTree(path, opts, runOpts)
	}

	sources, err := c.sourcesFor(ctx, manifest)
	if err != nil {
		return err
	}
	loader := driver.NewLoader(driver.WithLogger(c.log))
	results, err := loader.RunBatch(ctx.Context, sources, runOpts)
	if err != nil {
		return err
	}

	failed := false
	for _, res := range results {
		if len(results) > 1 && opts.Format != driver.FormatJSON {
			fmt.Fprintf(c.stdout, "== %s ==\n", res.Name)
		}
		if err := driver.WriteResult(c.stdout, res, opts.Format, opts.PrintTree); err != nil {
			return err
		}
		failed = failed || res.Failed()
	}
	if failed {
		return errFailed
	}
	return nil
}

// manifestFor loads the manifest named by config, or the one nearest to
// near. With required unset a missing or broken manifest is skipped.
func (c *command) manifestFor(config, near string, required bool) (*driver.Manifest, error) {
	path := config
	if path == "" {
		start := "."
		if near != "" {
			start = filepath.Dir(near)
		}
		found, err := driver.FindManifest(start)
		if err != nil {
			if driver.IsManifestNotFound(err) && !required {
				return nil, nil
			}
			return nil, err
		}
		path = found
	}
	manifest, err := driver.LoadManifest(path)
	if err != nil {
		if !required {
			c.log.Debugf("ignoring manifest %s: %v", path, err)
			return nil, nil
		}
		return nil, err
	}
	c.log.Debugf("using manifest %s", manifest.Path)
	return manifest, nil
}

func (c *command) sourcesFor(ctx *cli.Context, manifest *driver.Manifest) ([]driver.Source, error) {
	if ctx.IsSet("eval") {
		return []driver.Source{driver.InlineSource("-e", ctx.String("eval"))}, nil
	}
	if ctx.NArg() > 0 {
		sources := make([]driver.Source, 0, ctx.NArg())
		for _, path := range ctx.Args().Slice() {
			sources = append(sources, driver.FileSource(path))
		}
		return sources, nil
	}
	if manifest == nil {
		return nil, fmt.Errorf("asa run requires a file, -e, or a %s", driver.ManifestName)
	}

	if name := ctx.String("entry"); name != "" {
		entry, ok := manifest.FindEntry(name)
		if !ok {
			return nil, fmt.Errorf("manifest %s has no entry %q", manifest.Path, name)
		}
		return []driver.Source{manifest.SourceFor(entry)}, nil
	}
	if manifest.Default != "" {
		entry, err := manifest.DefaultEntry()
		if err != nil {
			return nil, err
		}
		return []driver.Source{manifest.SourceFor(entry)}, nil
	}
	if len(manifest.EntryOrder) == 0 {
		return nil, fmt.Errorf("manifest %s defines no entries", manifest.Path)
	}
	sources := make([]driver.Source, 0, len(manifest.EntryOrder))
	for _, name := range manifest.EntryOrder {
		sources = append(sources, manifest.SourceFor(manifest.Entries[name]))
	}
	return sources, nil
}

func (c *command) runTree(path string, opts driver.Options, runOpts driver.RunOptions) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	node, err := ast.Decode(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	prog, ok := node.(*ast.Program)
	if !ok {
		return fmt.Errorf("decode %s: expected a Program, got %s", path, node.NodeType())
	}
	res := driver.ExecuteTree(path, prog, runOpts)
	if err := driver.WriteResult(c.stdout, res, opts.Format, opts.PrintTree); err != nil {
		return err
	}
	if res.Failed() {
		return errFailed
	}
	return nil
}

func (c *command) parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "print the parse tree of a program",
		ArgsUsage: "[FILE]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "eval", Aliases: []string{"e"}, Usage: "program text to parse"},
			&cli.BoolFlag{Name: "json", Usage: "print the tree as JSON"},
			&cli.BoolFlag{Name: "count", Usage: "print how many nodes of each type the tree has"},
		},
		Action: func(ctx *cli.Context) error {
			var src driver.Source
			switch {
			case ctx.IsSet("eval"):
				src = driver.InlineSource("-e", ctx.String("eval"))
			case ctx.NArg() == 1:
				src = driver.FileSource(ctx.Args().First())
			default:
				return fmt.Errorf("asa parse takes one FILE or -e")
			}
			text, err := driver.NewLoader(driver.WithLogger(c.log)).Load(ctx.Context, src)
			if err != nil {
				return err
			}

			rest, prog, err := parser.Program(text)
			if err != nil {
				return err
			}
			if ctx.Bool("json") {
				data, err := ast.Marshal(prog)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.stdout, string(data))
			} else {
				fmt.Fprintf(c.stdout, "Unparsed Text: %q\n", rest)
				fmt.Fprintf(c.stdout, "Parse Tree:\n%s", driver.DumpTree(prog))
			}
			if ctx.Bool("count") {
				writeNodeCounts(c.stdout, ast.CountByType(prog))
			}
			if rest != "" {
				_, err := parser.Parse(text)
				return err
			}
			return nil
		},
	}
}

func (c *command) checkCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "validate a manifest and parse every entry",
		Flags: []cli.Flag{
			&cli.PathFlag{Name: "config", Usage: "manifest to check instead of the nearest " + driver.ManifestName},
		},
		Action: func(ctx *cli.Context) error {
			manifest, err := c.manifestFor(ctx.String("config"), "", true)
			if err != nil {
				return err
			}
			loader := driver.NewLoader(driver.WithLogger(c.log))
			failed := false
			for _, name := range manifest.EntryOrder {
				src := manifest.SourceFor(manifest.Entries[name])
				text, err := loader.Load(ctx.Context, src)
				var prog *ast.Program
				if err == nil {
					prog, err = parser.Parse(text)
				}
				if err != nil {
					fmt.Fprintf(c.stdout, "%s: %v\n", name, err)
					failed = true
					continue
				}
				interp := interpreter.New()
				if _, err := interp.Evaluate(prog); err != nil {
					return err
				}
				fmt.Fprintf(c.stdout, "%s: ok (functions: %s)\n", name, strings.Join(interp.Functions().Names(), ", "))
			}
			if failed {
				return errFailed
			}
			fmt.Fprintf(c.stdout, "manifest %s ok (%d entries)\n", manifest.Name, len(manifest.EntryOrder))
			return nil
		},
	}
}

// writeNodeCounts prints one line per node type, most frequent first.
func writeNodeCounts(w io.Writer, counts map[ast.NodeType]int) {
	types := make([]ast.NodeType, 0, len(counts))
	for typ := range counts {
		types = append(types, typ)
	}
	sort.Slice(types, func(i, j int) bool {
		if counts[types[i]] != counts[types[j]] {
			return counts[types[i]] > counts[types[j]]
		}
		return types[i] < types[j]
	})
	fmt.Fprintln(w, "Node Counts:")
	for _, typ := range types {
		fmt.Fprintf(w, "  %s: %d\n", typ, counts[typ])
	}
}

// syncWriter adapts an io.Writer to logger.SyncWriter.
type syncWriter struct {
	io.Writer
}

func (w syncWriter) Sync() error {
	if s, ok := w.Writer.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}
