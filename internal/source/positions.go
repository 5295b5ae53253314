package source

// Position represents a specific location in the source code with line and column information.
type Position struct {
	Line   int // Line number in the source code (1-based, 0 when unknown).
	Column int // Column number in the source code (1-based).
}

// Before reports whether p comes strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}
