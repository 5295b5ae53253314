package source

import (
	"bufio"
	"fmt"
	"os"
)

// Location represents a span of source code with start and end positions
type Location struct {
	Filename string
	Start    Position
	End      Position
}

// NewLocation creates a new Location with the given start and end positions
func NewLocation(filename string, start, end Position) Location {
	return Location{
		Filename: filename,
		Start:    start,
		End:      end,
	}
}

// At creates a zero-width Location at line:column.
func At(filename string, line, column int) Location {
	pos := Position{Line: line, Column: column}
	return Location{Filename: filename, Start: pos, End: pos}
}

// IsKnown reports whether the location points into a real source line.
func (l Location) IsKnown() bool {
	return l.Start.Line > 0
}

// Contains checks if the given position is within this location
func (l Location) Contains(pos Position) bool {
	if l.Start.Line > pos.Line || (l.Start.Line == pos.Line && l.Start.Column > pos.Column) {
		return false
	}
	if l.End.Line < pos.Line || (l.End.Line == pos.Line && l.End.Column < pos.Column) {
		return false
	}
	return true
}

// String renders the location as file:line:col, the form used in diagnostics.
func (l Location) String() string {
	if !l.IsKnown() {
		if l.Filename != "" {
			return l.Filename
		}
		return "<unknown>"
	}
	name := l.Filename
	if name == "" {
		name = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", name, l.Start.Line, l.Start.Column)
}

// GetSourceLinesRange reads only the specified range of lines from a file.
// Lines are 1-indexed. Returns the lines from startLine to endLine (inclusive).
func GetSourceLinesRange(filepath string, startLine, endLine int) ([]string, error) {
	if startLine < 1 || endLine < startLine {
		return nil, fmt.Errorf("invalid line range: %d-%d", startLine, endLine)
	}

	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lines := make([]string, 0, endLine-startLine+1)
	currentLine := 0

	for scanner.Scan() {
		currentLine++
		if currentLine < startLine {
			continue
		}
		if currentLine > endLine {
			break
		}
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(lines) == 0 && currentLine < startLine {
		return nil, fmt.Errorf("line %d out of range (file has %d lines)", startLine, currentLine)
	}

	return lines, nil
}
