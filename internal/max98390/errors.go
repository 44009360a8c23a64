package max98390

import "errors"

// Domain errors for the max98390 package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, max98390.ErrUnmappedAddress) {
//	    // device name and address both failed to resolve a slot
//	}
var (
	// ErrUnmappedAddress is returned when neither the device name suffix
	// nor the I2C address resolves to a component slot. Probe fails
	// before any driver state is created.
	ErrUnmappedAddress = errors.New("max98390: unmapped device address")

	// ErrIdentityCheck is returned when the revision ID register cannot
	// be read at probe time. This is the only fatal register I/O error.
	ErrIdentityCheck = errors.New("max98390: identity check failed")

	// ErrBindFailed is returned when the component registry rejects the
	// bind; the partially probed device is rolled back.
	ErrBindFailed = errors.New("max98390: component bind failed")

	// ErrNoRegmap is returned when probe options are missing register
	// access.
	ErrNoRegmap = errors.New("max98390: register access is required")
)
