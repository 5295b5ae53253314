package diagnostics

// Error codes reported by the type checker
const (
	ErrTypeMismatch         = "T0001"
	ErrUndefinedSymbol      = "T0002"
	ErrRedeclaredSymbol     = "T0003"
	ErrInvalidOperation     = "T0004"
	ErrNotCallable          = "T0005"
	ErrWrongArgumentCount   = "T0006"
	ErrInvalidAssignment    = "T0007"
	ErrNotIndexable         = "T0008"
	ErrFieldNotFound        = "T0010"
	ErrInvalidCast          = "T0014"
	ErrInvalidReturn        = "T0016"
	ErrConstantReassignment = "T0018"
	ErrInvalidType          = "T0021"
	ErrRedefinedSymbol      = "T0028"
	ErrNotAddressable       = "T0029"
	ErrIncompleteType       = "T0030"
	ErrInvalidCondition     = "T0031"

	// Internal faults (I prefix)
	ErrUnsupported = "I0001"
)
