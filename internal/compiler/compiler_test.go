package compiler

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"csema/internal/diagnostics"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assignTree is the tree of
//
//	int x;
//	void f() { NAME = 1; }
//
// with the source file at src.
func assignTree(src, name string) string {
	return fmt.Sprintf(`{
  "tag": "translation_unit",
  "loc": {"file": %s, "line": 1, "col": 1},
  "kids": [
    {"tag": "variable_declaration", "loc": {"line": 1, "col": 1}, "kids": [
      {"tag": "empty"},
      {"tag": "basic_type", "kids": [{"tag": "int", "text": "int"}]},
      {"tag": "declarator_list", "kids": [
        {"tag": "named_declarator", "loc": {"line": 1, "col": 5}, "kids": [{"tag": "identifier", "text": "x"}]}
      ]}
    ]},
    {"tag": "function_definition", "loc": {"line": 2, "col": 1}, "kids": [
      {"tag": "basic_type", "kids": [{"tag": "void", "text": "void"}]},
      {"tag": "identifier", "text": "f"},
      {"tag": "function_parameter_list"},
      {"tag": "statement_list", "kids": [
        {"tag": "expression_statement", "kids": [
          {"tag": "binary_expression", "loc": {"line": 2, "col": 12}, "kids": [
            {"tag": "=", "text": "="},
            {"tag": "variable_ref", "loc": {"line": 2, "col": 12}, "kids": [{"tag": "identifier", "text": %q}]},
            {"tag": "literal_value", "loc": {"line": 2, "col": 16}, "kids": [{"tag": "int_lit", "text": "1"}]}
          ]}
        ]}
      ]}
    ]}
  ]
}`, strconv.Quote(src), name)
}

const unionTree = `{
  "tag": "translation_unit",
  "loc": {"file": "u.c", "line": 1, "col": 1},
  "kids": [
    {"tag": "variable_declaration", "loc": {"line": 1, "col": 1}, "kids": [
      {"tag": "empty"},
      {"tag": "union_type", "loc": {"line": 1, "col": 1}, "kids": [{"tag": "identifier", "text": "U"}]},
      {"tag": "declarator_list", "kids": [
        {"tag": "named_declarator", "kids": [{"tag": "identifier", "text": "u"}]}
      ]}
    ]}
  ]
}`

// fixture writes the C source and a tree assigning to name, returning the
// tree's path.
func fixture(t *testing.T, dir, base, name string) string {
	t.Helper()
	src := filepath.Join(dir, base+".c")
	require.NoError(t, os.WriteFile(src, []byte("int x;\nvoid f() { "+name+" = 1; }\n"), 0o644))
	tree := filepath.Join(dir, base+".json")
	require.NoError(t, os.WriteFile(tree, []byte(assignTree(src, name)), 0o644))
	return tree
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheckPassingFile(t *testing.T) {
	path := fixture(t, t.TempDir(), "ok", "x")

	res := Check(Options{Config: DefaultConfig(), Files: []string{path}})
	require.Len(t, res.Files, 1)
	f := res.Files[0]
	require.NoError(t, f.Err)
	assert.Equal(t, path, f.Path)
	require.NotNil(t, f.Tree)
	require.NotNil(t, f.Globals)

	x, ok := f.Globals.LookupLocal("x")
	require.True(t, ok)
	assert.Equal(t, "int", x.Type.String())
	assert.Equal(t, ExitOK, res.ExitCode())
	assert.Zero(t, res.Failed())
}

func TestCheckSemanticError(t *testing.T) {
	path := fixture(t, t.TempDir(), "bad", "y")

	res := Check(Options{Config: DefaultConfig(), Files: []string{path}})
	f := res.Files[0]
	var diag *diagnostics.Diagnostic
	require.ErrorAs(t, f.Err, &diag)
	assert.Equal(t, "'y' is not declared", diag.Message)
	assert.NotNil(t, f.Tree, "the tree is kept even when the check fails")
	assert.Nil(t, f.Globals)
	assert.Equal(t, ExitSemantic, res.ExitCode())
}

func TestCheckInputErrors(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"missing file":   filepath.Join(dir, "missing.json"),
		"malformed json": write(t, dir, "broken.json", `{"tag": `),
		"unknown tag":    write(t, dir, "tag.json", `{"tag": "lambda_expression"}`),
		"union":          write(t, dir, "union.json", unionTree),
	}
	for name, path := range tests {
		t.Run(name, func(t *testing.T) {
			res := Check(Options{Config: DefaultConfig(), Files: []string{path}})
			require.Error(t, res.Files[0].Err)
			assert.Equal(t, ExitUnsupported, res.ExitCode())
		})
	}
}

func TestCheckUnionIsUnsupported(t *testing.T) {
	path := write(t, t.TempDir(), "union.json", unionTree)
	res := Check(Options{Config: DefaultConfig(), Files: []string{path}})
	assert.True(t, diagnostics.IsUnsupported(res.Files[0].Err))
}

func TestCheckMalformedTreeIsInternalError(t *testing.T) {
	dir := t.TempDir()
	bad := write(t, dir, "bad.json", `{"tag": "translation_unit", "kids": [{"tag": "variable_ref"}]}`)
	good := fixture(t, dir, "good", "x")

	res := Check(Options{Config: DefaultConfig(), Files: []string{bad, good}})
	require.Len(t, res.Files, 2)
	require.Error(t, res.Files[0].Err)
	assert.Contains(t, res.Files[0].Err.Error(), "internal error checking")
	assert.Equal(t, ExitUnsupported, ExitCode(res.Files[0].Err))
	assert.Nil(t, res.Files[0].Globals)
	assert.NoError(t, res.Files[1].Err, "other files are still checked")
	assert.Equal(t, ExitUnsupported, res.ExitCode())
}

func TestCheckKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for i := 0; i < 8; i++ {
		name := "x"
		if i%3 == 0 {
			name = "y"
		}
		files = append(files, fixture(t, dir, fmt.Sprintf("f%d", i), name))
	}

	cfg := DefaultConfig()
	cfg.Jobs = 4
	res := Check(Options{Config: cfg, Files: files})
	require.Len(t, res.Files, len(files))
	for i, f := range res.Files {
		assert.Equal(t, files[i], f.Path)
		assert.Equal(t, i%3 == 0, f.Err != nil, f.Path)
	}
	assert.Equal(t, 3, res.Failed())
	assert.Equal(t, ExitSemantic, res.ExitCode())
}

func TestCheckStdin(t *testing.T) {
	res := Check(Options{
		Config: DefaultConfig(),
		Files:  []string{StdinPath},
		Stdin:  strings.NewReader(assignTree("a.c", "x")),
	})
	assert.NoError(t, res.Files[0].Err)

	res = Check(Options{Config: DefaultConfig(), Files: []string{StdinPath}})
	assert.Error(t, res.Files[0].Err)
}

func TestExitCodeIsMostSevere(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		fixture(t, dir, "bad", "y"),
		write(t, dir, "union.json", unionTree),
		fixture(t, dir, "ok", "x"),
	}
	res := Check(Options{Config: DefaultConfig(), Files: files})
	assert.Equal(t, ExitUnsupported, res.ExitCode())
}

func TestCheckLogsPerFile(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)
	path := fixture(t, t.TempDir(), "ok", "x")

	Check(Options{Config: DefaultConfig(), Files: []string{path}, Logger: logger})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "check passed", entry.Message)
	assert.Equal(t, path, entry.Data["file"])
	assert.Equal(t, 2, entry.Data["globals"])
}

func TestReportDiagnosticWithSnippet(t *testing.T) {
	path := fixture(t, t.TempDir(), "bad", "y")
	cfg := DefaultConfig()
	cfg.Color = "never"
	res := Check(Options{Config: cfg, Files: []string{path}})

	var out, errOut bytes.Buffer
	require.NoError(t, Report(&out, &errOut, cfg, res))
	assert.Empty(t, out.String())

	got := errOut.String()
	assert.Contains(t, got, "error[T0002]: 'y' is not declared")
	assert.Contains(t, got, "bad.c:2:12")
	assert.Contains(t, got, "2 | void f() { y = 1; }")
	assert.NotContains(t, got, "\033[", "no colour when writing to a buffer")
	assert.NotContains(t, got, "files failed", "no summary for a single file")
}

func TestReportDumps(t *testing.T) {
	path := fixture(t, t.TempDir(), "ok", "x")
	cfg := DefaultConfig()
	cfg.DumpTree = true
	cfg.DumpGlobals = true
	res := Check(Options{Config: cfg, Files: []string{path}})

	var out, errOut bytes.Buffer
	require.NoError(t, Report(&out, &errOut, cfg, res))
	assert.Empty(t, errOut.String())

	got := out.String()
	assert.Contains(t, got, `"type": "int"`)
	assert.Contains(t, got, `"str": "x"`)
	assert.Contains(t, got, `"value": "computed"`)
	assert.Contains(t, got, path+":\n")
	assert.Regexp(t, `f\s+function\s+function \(\) returning void\s+defined`, got)
	assert.Regexp(t, `x\s+variable\s+int`, got)
}

func TestReportSummary(t *testing.T) {
	dir := t.TempDir()
	files := []string{fixture(t, dir, "a", "x"), fixture(t, dir, "b", "y")}
	cfg := DefaultConfig()
	res := Check(Options{Config: cfg, Files: files})

	var out, errOut bytes.Buffer
	require.NoError(t, Report(&out, &errOut, cfg, res))
	assert.Contains(t, errOut.String(), "1 of 2 files failed")
}

func TestReportUnsupported(t *testing.T) {
	path := write(t, t.TempDir(), "union.json", unionTree)
	cfg := DefaultConfig()
	res := Check(Options{Config: cfg, Files: []string{path}})

	var out, errOut bytes.Buffer
	require.NoError(t, Report(&out, &errOut, cfg, res))
	assert.Contains(t, errOut.String(), "error[I0001]: union types not supported")
	assert.Contains(t, errOut.String(), "u.c:1:1")
}
