package diagnostics

import (
	"fmt"

	"csema/internal/source"

	"github.com/pkg/errors"
)

// Unsupported is raised for constructs that parse but are deliberately not
// implemented. It marks a gap in language support, not a defect in the
// program being checked.
type Unsupported struct {
	Feature  string
	Location source.Location
}

func (u *Unsupported) Error() string {
	return fmt.Sprintf("%s: %s not supported", u.Location, u.Feature)
}

// NewUnsupported returns an Unsupported fault carrying a stack trace.
func NewUnsupported(feature string, loc source.Location) error {
	return errors.WithStack(&Unsupported{Feature: feature, Location: loc})
}

// IsUnsupported reports whether err is or wraps an Unsupported fault.
func IsUnsupported(err error) bool {
	var u *Unsupported
	return errors.As(err, &u)
}
