// Package compiler drives semantic analysis over syntax tree files: it loads
// each tree, runs the checker with its own global scope and reports the
// outcome.
package compiler

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"csema/colors"
	"csema/internal/diagnostics"
	"csema/internal/frontend/ast"
	"csema/internal/semantics/symbols"
	"csema/internal/semantics/table"
	"csema/internal/semantics/typechecker"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Exit codes
const (
	ExitOK          = 0
	ExitSemantic    = 1 // a program violated a static rule
	ExitUnsupported = 2 // unsupported construct, unreadable input or internal fault
)

// StdinPath names standard input in the file list.
const StdinPath = "-"

// Options for a checking run
type Options struct {
	Config Config
	Files  []string
	Stdin  io.Reader // read for StdinPath
	Logger logrus.FieldLogger
}

// FileResult is the outcome for one input file. Tree and Globals are set
// only when the tree could be loaded and the check succeeded respectively.
type FileResult struct {
	Path    string
	Err     error
	Globals *table.SymbolTable
	Tree    *ast.Node
}

// Result of a checking run, one entry per input file in input order.
type Result struct {
	Files []FileResult
}

// ExitCode classifies err into one of the exit codes.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var diag *diagnostics.Diagnostic
	if errors.As(err, &diag) {
		return ExitSemantic
	}
	return ExitUnsupported
}

// ExitCode is the most severe code among all files.
func (r Result) ExitCode() int {
	code := ExitOK
	for _, f := range r.Files {
		if c := ExitCode(f.Err); c > code {
			code = c
		}
	}
	return code
}

// Failed counts the files that did not pass.
func (r Result) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Check analyzes every file, up to Config.Jobs at a time. Each file gets a
// fresh checker, so results do not depend on scheduling.
func Check(opts Options) Result {
	log := opts.Logger
	if log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		log = quiet
	}
	jobs := opts.Config.Jobs
	if jobs < 1 {
		jobs = 1
	}

	results := make([]FileResult, len(opts.Files))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range opts.Files {
		if path == StdinPath {
			// stdin cannot be shared between workers
			results[i] = checkFile(path, opts.Stdin, log)
			continue
		}
		i, path := i, path
		g.Go(func() error {
			results[i] = checkFile(path, nil, log)
			return nil
		})
	}
	_ = g.Wait()

	return Result{Files: results}
}

// checkFile never panics: a tree too malformed for the checker to walk
// becomes an internal error on that file alone.
func checkFile(path string, stdin io.Reader, log logrus.FieldLogger) (res FileResult) {
	res = FileResult{Path: path}
	flog := log.WithField("file", path)
	defer func() {
		if r := recover(); r != nil {
			res.Globals = nil
			res.Err = errors.Errorf("internal error checking %s: %v", path, r)
			flog.WithError(res.Err).Error("check aborted")
		}
	}()

	tree, err := loadTree(path, stdin)
	if err != nil {
		res.Err = err
		flog.WithError(err).Debug("load failed")
		return res
	}
	res.Tree = tree

	globals, err := typechecker.Check(tree, typechecker.WithLogger(flog))
	if err != nil {
		res.Err = err
		flog.WithField("exit", ExitCode(err)).Info("check failed")
		return res
	}
	res.Globals = globals
	flog.WithField("globals", len(globals.Symbols())).Info("check passed")
	return res
}

func loadTree(path string, stdin io.Reader) (*ast.Node, error) {
	if path == StdinPath {
		if stdin == nil {
			return nil, errors.New("no standard input to read")
		}
		tree, err := ast.Decode(stdin)
		return tree, errors.Wrap(err, "<stdin>")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open syntax tree")
	}
	defer f.Close()
	tree, err := ast.Decode(f)
	return tree, errors.Wrap(err, path)
}

// Report writes results in input order: diagnostics to errw, requested dumps
// of passing files to w.
func Report(w, errw io.Writer, cfg Config, res Result) error {
	color := colors.Enabled(cfg.Color, errw)
	emitter := diagnostics.NewEmitter(errw, color)

	for _, f := range res.Files {
		if f.Err != nil {
			emitter.EmitError(f.Err)
			continue
		}
		if cfg.DumpTree {
			if err := ast.Encode(w, f.Tree, true); err != nil {
				return err
			}
		}
		if cfg.DumpGlobals {
			if err := DumpGlobals(w, f.Path, f.Globals); err != nil {
				return err
			}
		}
	}

	if n := res.Failed(); n > 0 && len(res.Files) > 1 {
		colors.BOLD_RED.Or(color).Fprintf(errw, "%d of %d files failed\n", n, len(res.Files))
	}
	return nil
}

// DumpGlobals lists a file's top-level symbols as name, kind and type.
// Functions also show whether a body has been seen.
func DumpGlobals(w io.Writer, path string, globals *table.SymbolTable) error {
	fmt.Fprintf(w, "%s:\n", path)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, sym := range globals.Symbols() {
		state := ""
		if sym.Kind == symbols.SymbolFunction {
			state = "declared"
			if sym.Defined {
				state = "defined"
			}
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", sym.Name, sym.Kind, sym.Type, state)
	}
	return errors.Wrap(tw.Flush(), "dump globals")
}
