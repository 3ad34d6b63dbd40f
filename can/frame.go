package can

import (
	"fmt"
	"strings"
)

// MaxPayload is the classic-CAN payload limit in bytes.
const MaxPayload = 8

// Frame is one message unit exchanged on the bus: an identifier, up to
// MaxPayload data bytes, and a remote-request flag. The payload lives in a
// fixed array so a Frame is a self-contained value with no heap references;
// copying the struct copies the whole frame.
//
// A remote frame may still carry stored payload bytes: the type keeps
// whatever was supplied and leaves it to the driver layer to omit data on
// the wire. "Changing" a frame means constructing a new one.
type Frame struct {
	id     Identifier
	remote bool
	length uint8
	data   [MaxPayload]byte
}

// NewFrame builds a frame from a validated identifier and a payload.
// Fails with ErrPayloadTooLong if the payload exceeds MaxPayload bytes.
func NewFrame(id Identifier, payload []byte, remote bool) (Frame, error) {
	if len(payload) > MaxPayload {
		return Frame{}, fmt.Errorf("payload %d bytes: %w", len(payload), ErrPayloadTooLong)
	}
	f := Frame{id: id, remote: remote, length: uint8(len(payload))}
	copy(f.data[:], payload)
	return f, nil
}

// ID returns a copy of the stored identifier.
func (f Frame) ID() Identifier { return f.id }

// Payload returns the stored payload bytes. The slice aliases the receiver
// copy, not the original frame, so callers cannot mutate a frame they were
// handed.
func (f Frame) Payload() []byte { return f.data[:f.length] }

// DLC returns the data-length code; always equal to len(Payload()) because
// there is no separate length field to drift out of sync.
func (f Frame) DLC() uint8 { return f.length }

// IsRemote reports whether the frame is a remote-transmission request.
func (f Frame) IsRemote() bool { return f.remote }

// String renders the frame in candump style, e.g. "123#01 02 03" or
// "0000ABCD#R" for a remote frame.
func (f Frame) String() string {
	var b strings.Builder
	b.WriteString(f.id.String())
	b.WriteByte('#')
	if f.remote {
		b.WriteByte('R')
		return b.String()
	}
	for i := uint8(0); i < f.length; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02X", f.data[i])
	}
	return b.String()
}
