package component

import "errors"

// Domain errors for the component package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, component.ErrInvalidIndex) {
//	    // handle out-of-range slot
//	}
var (
	// ErrInvalidIndex is returned when a slot index is outside [0, MaxComponents).
	ErrInvalidIndex = errors.New("component: invalid slot index")
)
