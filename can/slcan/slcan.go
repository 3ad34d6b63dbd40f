// Package slcan implements the serial-line CAN (SLCAN) textual frame format
// used by serial adapters and GVRET-compatible tools. A frame is a single
// ASCII record: a leader byte selecting data/remote and standard/extended,
// the identifier in hex (3 digits standard, 8 extended), one DLC digit, the
// payload in hex pairs, and a CR terminator.
package slcan

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kjetilkjeka/embedded-types/can"
)

// Frame leaders.
const (
	leaderStdData   = 't'
	leaderExtData   = 'T'
	leaderStdRemote = 'r'
	leaderExtRemote = 'R'
)

// ErrSyntax is returned when a record does not parse as an SLCAN frame.
var ErrSyntax = errors.New("slcan: syntax error")

// Encode renders a frame as an SLCAN record. Remote frames carry a DLC digit
// but no data bytes on the wire, regardless of any payload stored in the
// frame value.
func Encode(f can.Frame) string {
	var b strings.Builder
	ext := f.ID().IsExtended()
	switch {
	case f.IsRemote() && ext:
		b.WriteByte(leaderExtRemote)
	case f.IsRemote():
		b.WriteByte(leaderStdRemote)
	case ext:
		b.WriteByte(leaderExtData)
	default:
		b.WriteByte(leaderStdData)
	}

	if ext {
		fmt.Fprintf(&b, "%08X", f.ID().Raw())
	} else {
		fmt.Fprintf(&b, "%03X", f.ID().Raw())
	}

	b.WriteByte('0' + f.DLC())

	if !f.IsRemote() {
		for _, d := range f.Payload() {
			fmt.Fprintf(&b, "%02X", d)
		}
	}

	b.WriteByte('\r')
	return b.String()
}

// Decode parses one SLCAN record. The trailing CR is optional. Identifier and
// payload go through the validated constructors, so out-of-range values are
// rejected, never masked. For a remote record the DLC digit states the
// requested length on the wire; the decoded frame stores no payload.
func Decode(s string) (can.Frame, error) {
	s = strings.TrimSuffix(s, "\r")
	if len(s) < 1 {
		return can.Frame{}, fmt.Errorf("empty record: %w", ErrSyntax)
	}
	leader := s[0]

	var ext, remote bool
	switch leader {
	case leaderStdData:
	case leaderExtData:
		ext = true
	case leaderStdRemote:
		remote = true
	case leaderExtRemote:
		ext, remote = true, true
	default:
		return can.Frame{}, fmt.Errorf("leader %q: %w", leader, ErrSyntax)
	}

	idDigits := 3
	if ext {
		idDigits = 8
	}
	if len(s) < 1+idDigits+1 {
		return can.Frame{}, fmt.Errorf("record too short: %w", ErrSyntax)
	}
	rawID, err := strconv.ParseUint(s[1:1+idDigits], 16, 32)
	if err != nil {
		return can.Frame{}, fmt.Errorf("identifier %q: %w", s[1:1+idDigits], ErrSyntax)
	}

	var id can.Identifier
	if ext {
		id, err = can.NewExtendedID(uint32(rawID))
	} else {
		id, err = can.NewStandardID(uint32(rawID))
	}
	if err != nil {
		return can.Frame{}, fmt.Errorf("slcan decode: %w", err)
	}

	dlcChar := s[1+idDigits]
	if dlcChar < '0' || dlcChar > '8' {
		return can.Frame{}, fmt.Errorf("dlc %q: %w", dlcChar, ErrSyntax)
	}
	dlc := int(dlcChar - '0')

	rest := s[1+idDigits+1:]
	if remote {
		if len(rest) != 0 {
			return can.Frame{}, fmt.Errorf("remote record with data: %w", ErrSyntax)
		}
		f, err := can.NewFrame(id, nil, true)
		if err != nil {
			return can.Frame{}, fmt.Errorf("slcan decode: %w", err)
		}
		return f, nil
	}

	if len(rest) != 2*dlc {
		return can.Frame{}, fmt.Errorf("dlc %d with %d data chars: %w", dlc, len(rest), ErrSyntax)
	}
	data := make([]byte, dlc)
	for i := 0; i < dlc; i++ {
		v, err := strconv.ParseUint(rest[2*i:2*i+2], 16, 8)
		if err != nil {
			return can.Frame{}, fmt.Errorf("data byte %d: %w", i, ErrSyntax)
		}
		data[i] = byte(v)
	}
	f, err := can.NewFrame(id, data, false)
	if err != nil {
		return can.Frame{}, fmt.Errorf("slcan decode: %w", err)
	}
	return f, nil
}
