// Package can provides the shared value types drivers exchange on a CAN-style
// bus: identifiers (standard 11-bit and extended 29-bit), classic frames with
// up to 8 payload bytes, and acceptance filters. Everything here is an
// immutable value with no allocation beyond its own struct, so instances can
// be copied freely between tasks and interrupt handlers.
package can

import "fmt"

// Identifier bit widths and the masks they imply (same values as <linux/can.h>).
const (
	StandardIDBits = 11
	ExtendedIDBits = 29

	MaxStandardID = 0x7FF      // CAN_SFF_MASK
	MaxExtendedID = 0x1FFFFFFF // CAN_EFF_MASK
)

// Identifier is the address portion of a bus message, either in the 11-bit
// standard space or the 29-bit extended space. The stored value never exceeds
// the width implied by its variant: the only way to obtain an Identifier is
// through a constructor that already checked the range.
//
// The zero value is the standard identifier 0.
type Identifier struct {
	value    uint32
	extended bool
}

// fitsInBits reports whether v is representable in width bits. Single source
// of truth for range checks across constructors and narrowing.
func fitsInBits(v uint32, width uint) bool {
	return v>>width == 0
}

// NewStandardID returns a standard (11-bit) identifier holding v.
// Fails with ErrOutOfRange if v > MaxStandardID.
func NewStandardID(v uint32) (Identifier, error) {
	if !fitsInBits(v, StandardIDBits) {
		return Identifier{}, fmt.Errorf("standard id 0x%X: %w", v, ErrOutOfRange)
	}
	return Identifier{value: v}, nil
}

// NewExtendedID returns an extended (29-bit) identifier holding v.
// Fails with ErrOutOfRange if v > MaxExtendedID.
func NewExtendedID(v uint32) (Identifier, error) {
	if !fitsInBits(v, ExtendedIDBits) {
		return Identifier{}, fmt.Errorf("extended id 0x%X: %w", v, ErrOutOfRange)
	}
	return Identifier{value: v, extended: true}, nil
}

// AsStandard narrows the identifier to the standard space. Narrowing is never
// silent: it fails with ErrOutOfRange when the stored value does not fit in
// 11 bits, so set bits are never discarded.
func (id Identifier) AsStandard() (Identifier, error) {
	if !fitsInBits(id.value, StandardIDBits) {
		return Identifier{}, fmt.Errorf("narrow 0x%X to standard: %w", id.value, ErrOutOfRange)
	}
	return Identifier{value: id.value}, nil
}

// AsExtended widens the identifier to the extended space. Every standard
// value fits in 29 bits, so widening cannot fail.
func (id Identifier) AsExtended() Identifier {
	return Identifier{value: id.value, extended: true}
}

// Raw returns the stored numeric value regardless of variant.
func (id Identifier) Raw() uint32 { return id.value }

// IsStandard reports whether the identifier is in the 11-bit space.
func (id Identifier) IsStandard() bool { return !id.extended }

// IsExtended reports whether the identifier is in the 29-bit space.
func (id Identifier) IsExtended() bool { return id.extended }

// String renders the identifier in candump style: three hex digits for a
// standard id, eight for an extended one.
func (id Identifier) String() string {
	if id.extended {
		return fmt.Sprintf("%08X", id.value)
	}
	return fmt.Sprintf("%03X", id.value)
}
