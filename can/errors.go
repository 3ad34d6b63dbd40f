package can

import "errors"

// Sentinel errors used for wrapping so callers can classify via errors.Is.
var (
	// ErrOutOfRange is returned when a raw value does not fit the bit width
	// of the requested identifier variant, including narrowing an extended
	// identifier whose value exceeds the standard range.
	ErrOutOfRange = errors.New("identifier out of range")

	// ErrPayloadTooLong is returned when a frame payload exceeds MaxPayload.
	ErrPayloadTooLong = errors.New("payload too long")
)
