package undname

import "github.com/skdltmxn/undname-go/internal/parse"

// Sentinel errors reported by Parse. Failures from the mandatory-token
// check ("<lit> expected, but got <rest>") are formatted errors and
// have no sentinel.
var (
	// ErrBadNumber indicates a number token with neither a lead digit
	// nor a valid hex run terminator.
	ErrBadNumber = parse.ErrBadNumber

	// ErrMissingAt indicates an identifier that ran past the end of
	// input without its '@' terminator.
	ErrMissingAt = parse.ErrMissingAt

	// ErrNameRef indicates a name back-reference index at or past the
	// name table size.
	ErrNameRef = parse.ErrNameRef

	// ErrBackref indicates a parameter back-reference index at or past
	// the parameter table size.
	ErrBackref = parse.ErrBackref

	// ErrFuncClass indicates an unrecognized function-class byte.
	ErrFuncClass = parse.ErrFuncClass

	// ErrCallConv indicates an unrecognized calling-convention byte.
	ErrCallConv = parse.ErrCallConv

	// ErrPrimType indicates an unrecognized primitive selector.
	ErrPrimType = parse.ErrPrimType

	// ErrArrayDim indicates a non-positive array dimension.
	ErrArrayDim = parse.ErrArrayDim

	// ErrStorage indicates an unrecognized storage-class byte.
	ErrStorage = parse.ErrStorage
)
