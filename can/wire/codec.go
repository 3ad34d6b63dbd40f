// Package wire encodes can.Frame values to and from the classic 16-byte
// SocketCAN can_frame layout, for capture files, loopback transports, and
// register shadow buffers. Decoding routes every value through the validated
// constructors in package can, so a frame that decodes is a frame that holds
// its invariants.
//
// Layout (little-endian):
//
//	0..3  id word (EFF/RTR flags in the upper bits)
//	4     dlc
//	5..7  padding (zero)
//	8..15 data bytes
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/kjetilkjeka/embedded-types/can"
	"github.com/kjetilkjeka/embedded-types/internal/metrics"
)

// FrameSize is the fixed on-wire size of one encoded frame.
const FrameSize = 16

// Flag bits of the id word (same values as <linux/can.h>).
const (
	effFlag = 0x80000000
	rtrFlag = 0x40000000
)

// ErrFrameLength is returned when a frame length (DLC) is outside 0..8.
var ErrFrameLength = errors.New("wire: invalid length")

// ErrTruncatedFrame is returned when the input ends mid-frame.
var ErrTruncatedFrame = errors.New("wire: truncated frame")

// Marshal encodes one frame. It cannot fail: a can.Frame is valid by
// construction.
func Marshal(f can.Frame) [FrameSize]byte {
	var b [FrameSize]byte
	id := f.ID().Raw()
	if f.ID().IsExtended() {
		id |= effFlag
	}
	if f.IsRemote() {
		id |= rtrFlag
	}
	binary.LittleEndian.PutUint32(b[0:4], id)
	b[4] = f.DLC()
	copy(b[8:], f.Payload())
	return b
}

// Unmarshal decodes one frame from the first FrameSize bytes of b.
func Unmarshal(b []byte) (can.Frame, error) {
	if len(b) < FrameSize {
		metrics.IncMalformed()
		return can.Frame{}, fmt.Errorf("wire decode: need %d bytes, got %d: %w", FrameSize, len(b), ErrTruncatedFrame)
	}
	word := binary.LittleEndian.Uint32(b[0:4])
	idBits := word & can.MaxExtendedID

	var id can.Identifier
	var err error
	if word&effFlag != 0 {
		id, err = can.NewExtendedID(idBits)
	} else {
		// A standard frame whose id word carries bits above 11 is malformed;
		// the constructor rejects it rather than silently masking.
		id, err = can.NewStandardID(idBits)
	}
	if err != nil {
		metrics.IncMalformed()
		return can.Frame{}, fmt.Errorf("wire decode id: %w", err)
	}

	dlc := int(b[4])
	if dlc > can.MaxPayload {
		metrics.IncMalformed()
		return can.Frame{}, fmt.Errorf("wire decode: %w (%d)", ErrFrameLength, dlc)
	}
	f, err := can.NewFrame(id, b[8:8+dlc], word&rtrFlag != 0)
	if err != nil {
		metrics.IncMalformed()
		return can.Frame{}, fmt.Errorf("wire decode: %w", err)
	}
	return f, nil
}

// Codec streams frames over an io.Reader/io.Writer. Stateless and safe for
// concurrent use.
type Codec struct{}

// Encode packs frames into a single buffer.
func (c Codec) Encode(frames []can.Frame) []byte {
	if len(frames) == 0 {
		return nil
	}
	var buf bytes.Buffer
	buf.Grow(len(frames) * FrameSize)
	_, _ = c.EncodeTo(&buf, frames)
	return buf.Bytes()
}

// EncodeTo writes the wire representation of frames to w and returns bytes
// written.
func (c Codec) EncodeTo(w io.Writer, frames []can.Frame) (int, error) {
	var total int
	for _, f := range frames {
		b := Marshal(f)
		n, err := w.Write(b[:])
		total += n
		if err != nil {
			return total, fmt.Errorf("wire encode: %w", err)
		}
		metrics.IncWireTx()
	}
	return total, nil
}

// Decode reads exactly one frame from r.
// It returns io.EOF if called at a clean frame boundary and no more data is
// available.
func (c Codec) Decode(r io.Reader) (can.Frame, error) {
	var b [FrameSize]byte
	if _, err := io.ReadFull(r, b[:4]); err != nil {
		return can.Frame{}, err
	}
	if _, err := io.ReadFull(r, b[4:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			metrics.IncMalformed()
			return can.Frame{}, fmt.Errorf("wire decode: %w", ErrTruncatedFrame)
		}
		return can.Frame{}, fmt.Errorf("wire decode: %w", err)
	}
	f, err := Unmarshal(b[:])
	if err != nil {
		return can.Frame{}, err
	}
	metrics.IncWireRx()
	return f, nil
}

// DecodeN decodes up to max frames (if max>0) or until EOF (if max<=0)
// invoking onFrame for each. It returns the number of frames decoded and the
// terminal error (which can be io.EOF).
func (c Codec) DecodeN(r io.Reader, max int, onFrame func(can.Frame)) (int, error) {
	var n int
	for max <= 0 || n < max {
		f, err := c.Decode(r)
		if err != nil {
			return n, err
		}
		onFrame(f)
		n++
	}
	return n, nil
}
