package diagnostics

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"csema/colors"

	"github.com/pkg/errors"
)

const (
	STR_MULTIPLIER = "%*d | "
	LINE_POS       = "%s--> %s\n"
)

// SourceCache caches source file contents for error reporting
type SourceCache struct {
	files map[string][]string
}

func NewSourceCache() *SourceCache {
	return &SourceCache{
		files: make(map[string][]string),
	}
}

// Add registers in-memory contents for filepath, shadowing the file system.
func (sc *SourceCache) Add(filepath, text string) {
	sc.files[filepath] = strings.Split(text, "\n")
}

// GetLine retrieves a specific line from a source file
func (sc *SourceCache) GetLine(filepath string, line int) (string, error) {
	lines, ok := sc.files[filepath]
	if !ok {
		file, err := os.Open(filepath)
		if err != nil {
			return "", err
		}
		defer file.Close()

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return "", err
		}
		sc.files[filepath] = lines
	}

	if line > 0 && line <= len(lines) {
		return lines[line-1], nil
	}
	return "", fmt.Errorf("line %d out of range", line)
}

// Emitter handles the rendering and output of diagnostics
type Emitter struct {
	cache  *SourceCache
	writer io.Writer // Where to write output (os.Stderr, string builder, etc.)
	color  bool
	width  int // line number width for the current diagnostic
}

func NewEmitter(w io.Writer, color bool) *Emitter {
	return &Emitter{
		cache:  NewSourceCache(),
		writer: w,
		color:  color,
	}
}

// Sources exposes the emitter's source cache.
func (e *Emitter) Sources() *SourceCache { return e.cache }

func (e *Emitter) paint(c colors.COLOR) colors.COLOR { return c.Or(e.color) }

// EmitError renders err: diagnostics in full, anything else as a bare
// header, using the internal-fault code for Unsupported.
func (e *Emitter) EmitError(err error) {
	var diag *Diagnostic
	if errors.As(err, &diag) {
		e.Emit(diag)
		return
	}
	d := NewError(err.Error())
	var u *Unsupported
	if errors.As(err, &u) {
		d = NewError(u.Feature+" not supported").WithCode(ErrUnsupported).WithPrimaryLabel(u.Location, "")
	}
	e.Emit(d)
}

func (e *Emitter) Emit(diag *Diagnostic) {
	e.width = 1
	for _, label := range diag.Labels {
		if w := len(fmt.Sprint(label.Location.Start.Line)); w > e.width {
			e.width = w
		}
	}

	e.printHeader(diag)

	// primary first, then context
	for _, label := range diag.Labels {
		e.printLabel(label, diag.Severity)
	}

	for _, note := range diag.Notes {
		e.printNote(note)
	}
	if diag.Help != "" {
		e.printHelp(diag.Help)
	}

	fmt.Fprintln(e.writer)
}

func (e *Emitter) printHeader(diag *Diagnostic) {
	color := e.paint(e.getSeverityColor(diag.Severity))
	color.Fprint(e.writer, diag.Severity.String())
	if diag.Code != "" {
		fmt.Fprintf(e.writer, "[%s]", diag.Code)
	}
	fmt.Fprint(e.writer, ": ")
	color.Fprintln(e.writer, diag.Message)
}

func (e *Emitter) printLabel(label Label, severity Severity) {
	loc := label.Location
	if !loc.IsKnown() {
		return
	}
	e.paint(colors.BLUE).Fprintf(e.writer, LINE_POS, strings.Repeat(" ", e.width), loc.String())

	sourceLine, err := e.cache.GetLine(loc.Filename, loc.Start.Line)
	if err != nil {
		// no snippet available, the location line is enough
		return
	}

	fmt.Fprint(e.writer, strings.Repeat(" ", e.width))
	e.paint(colors.GREY).Fprintln(e.writer, " |")

	e.paint(colors.GREY).Fprintf(e.writer, STR_MULTIPLIER, e.width, loc.Start.Line)
	fmt.Fprintln(e.writer, sourceLine)

	fmt.Fprint(e.writer, strings.Repeat(" ", e.width))
	e.paint(colors.GREY).Fprint(e.writer, " | ")

	padding := loc.Start.Column - 1
	length := loc.End.Column - loc.Start.Column
	if loc.End.Line != loc.Start.Line {
		// spans lines: underline to the end of the first one
		length = len(sourceLine) - padding
	}
	if length <= 0 {
		length = 1
	}

	underlineColor := colors.BLUE
	underlineChar := "-"
	if label.Style == Primary {
		underlineColor = e.getSeverityColor(severity)
		underlineChar = "~"
		if length == 1 {
			underlineChar = "^"
		}
	}
	underlineColor = e.paint(underlineColor)

	fmt.Fprint(e.writer, strings.Repeat(" ", padding))
	underlineColor.Fprint(e.writer, strings.Repeat(underlineChar, length))
	if label.Message != "" {
		underlineColor.Fprintf(e.writer, " %s", label.Message)
	}
	fmt.Fprintln(e.writer)
}

func (e *Emitter) printNote(note Note) {
	fmt.Fprint(e.writer, strings.Repeat(" ", e.width+1))
	e.paint(colors.CYAN).Fprint(e.writer, "= note: ")
	fmt.Fprintln(e.writer, note.Message)
}

func (e *Emitter) printHelp(help string) {
	fmt.Fprint(e.writer, strings.Repeat(" ", e.width+1))
	e.paint(colors.GREEN).Fprint(e.writer, "= help: ")
	fmt.Fprintln(e.writer, help)
}

func (e *Emitter) getSeverityColor(severity Severity) colors.COLOR {
	switch severity {
	case Warning:
		return colors.BOLD_YELLOW
	case Info:
		return colors.BOLD_CYAN
	case Hint:
		return colors.BOLD_PURPLE
	default:
		return colors.BOLD_RED
	}
}
