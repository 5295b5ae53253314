package diagnostics

import (
	"csema/internal/source"
)

// Severity represents the severity level of a diagnostic
type Severity int

const (
	Error Severity = iota
	Warning
	Info
	Hint
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Hint:
		return "hint"
	default:
		return "unknown"
	}
}

// Label represents a labeled section of code in a diagnostic
type Label struct {
	Location source.Location
	Message  string
	Style    LabelStyle
}

type LabelStyle int

const (
	Primary   LabelStyle = iota // The main error location (uses ^^^)
	Secondary                   // Additional context (uses ---)
)

// Note represents additional information attached to a diagnostic
type Note struct {
	Message string
}

// Diagnostic represents a semantic diagnostic. Analysis stops at the first
// one, so it doubles as the error value returned by the checker.
type Diagnostic struct {
	Severity Severity
	Message  string
	Code     string // Error code like "T0001"
	FilePath string // Source file for this diagnostic
	Labels   []Label
	Notes    []Note
	Help     string // Suggestion for fixing the error
}

// NewError creates a new error diagnostic
func NewError(message string) *Diagnostic {
	return &Diagnostic{
		Severity: Error,
		Message:  message,
		Labels:   make([]Label, 0),
		Notes:    make([]Note, 0),
	}
}

// NewWarning creates a new warning diagnostic
func NewWarning(message string) *Diagnostic {
	return &Diagnostic{
		Severity: Warning,
		Message:  message,
		Labels:   make([]Label, 0),
		Notes:    make([]Note, 0),
	}
}

// WithCode sets the error code
func (d *Diagnostic) WithCode(code string) *Diagnostic {
	d.Code = code
	return d
}

// WithLabel adds a labeled location to the diagnostic
func (d *Diagnostic) WithLabel(loc source.Location, message string, style LabelStyle) *Diagnostic {
	if d.FilePath == "" {
		d.FilePath = loc.Filename
	}
	d.Labels = append(d.Labels, Label{
		Location: loc,
		Message:  message,
		Style:    style,
	})
	return d
}

// WithPrimaryLabel adds the primary labeled location. A diagnostic has at
// most one; it is always kept first.
func (d *Diagnostic) WithPrimaryLabel(loc source.Location, message string) *Diagnostic {
	if _, ok := d.primary(); ok {
		return d
	}
	d.FilePath = loc.Filename
	d.Labels = append([]Label{{Location: loc, Message: message, Style: Primary}}, d.Labels...)
	return d
}

// WithSecondaryLabel adds a context label. Unknown locations are dropped.
// Primary label must exist before adding secondary labels
func (d *Diagnostic) WithSecondaryLabel(loc source.Location, message string) *Diagnostic {
	if _, ok := d.primary(); !ok {
		panic("Cannot add secondary label without primary label. Call WithPrimaryLabel first.")
	}
	if !loc.IsKnown() {
		return d
	}
	return d.WithLabel(loc, message, Secondary)
}

// WithNote adds a note to the diagnostic
func (d *Diagnostic) WithNote(message string) *Diagnostic {
	d.Notes = append(d.Notes, Note{Message: message})
	return d
}

// WithHelp sets helpful suggestion for fixing the error
func (d *Diagnostic) WithHelp(help string) *Diagnostic {
	d.Help = help
	return d
}

func (d *Diagnostic) primary() (Label, bool) {
	for _, label := range d.Labels {
		if label.Style == Primary {
			return label, true
		}
	}
	return Label{}, false
}

// Location returns where the diagnostic points, the zero Location if it has
// no primary label.
func (d *Diagnostic) Location() source.Location {
	label, _ := d.primary()
	return label.Location
}

// Error renders the diagnostic on one line as file:line:col: message.
func (d *Diagnostic) Error() string {
	loc, ok := d.primary()
	if !ok {
		return d.Message
	}
	return loc.Location.String() + ": " + d.Message
}
