package slcan

import (
	"errors"
	"testing"

	"github.com/kjetilkjeka/embedded-types/can"
)

func mustFrame(t *testing.T, id uint32, ext bool, data []byte, remote bool) can.Frame {
	t.Helper()
	var cid can.Identifier
	var err error
	if ext {
		cid, err = can.NewExtendedID(id)
	} else {
		cid, err = can.NewStandardID(id)
	}
	if err != nil {
		t.Fatalf("identifier: %v", err)
	}
	f, err := can.NewFrame(cid, data, remote)
	if err != nil {
		t.Fatalf("frame: %v", err)
	}
	return f
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		frame can.Frame
		want  string
	}{
		{"std data", mustFrame(t, 0x123, false, []byte{0x01, 0xAB}, false), "t123201AB\r"},
		{"std empty", mustFrame(t, 0x7FF, false, nil, false), "t7FF0\r"},
		{"ext data", mustFrame(t, 0x1FFFFFFF, true, []byte{0xFF}, false), "T1FFFFFFF1FF\r"},
		{"std remote", mustFrame(t, 0x123, false, nil, true), "r1230\r"},
		{"ext remote", mustFrame(t, 0xABCD, true, nil, true), "R0000ABCD0\r"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encode(tt.frame); got != tt.want {
				t.Fatalf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	frames := []can.Frame{
		mustFrame(t, 0x123, false, []byte{0x01, 0x02, 0x03}, false),
		mustFrame(t, 0x7FF, false, nil, false),
		mustFrame(t, 0x1ABCDEF, true, []byte{1, 2, 3, 4, 5, 6, 7, 8}, false),
		mustFrame(t, 0x001, false, nil, true),
	}
	for _, in := range frames {
		out, err := Decode(Encode(in))
		if err != nil {
			t.Fatalf("Decode(%q): %v", Encode(in), err)
		}
		if out != in {
			t.Fatalf("round trip mismatch: got %v want %v", out, in)
		}
	}
}

func TestDecodeRemoteDropsStoredPayload(t *testing.T) {
	// The type stores a remote frame's payload, but the wire form never
	// carries it, so it does not survive an encode/decode cycle.
	in := mustFrame(t, 0x123, false, []byte{0xDE, 0xAD}, true)
	if got, want := Encode(in), "r1232\r"; got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
	out, err := Decode(Encode(in))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !out.IsRemote() || out.DLC() != 0 {
		t.Fatalf("decoded remote frame should carry no payload, got %v", out)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ErrSyntax},
		{"bad leader", "x1230\r", ErrSyntax},
		{"short record", "t12", ErrSyntax},
		{"bad id hex", "tXYZ0\r", ErrSyntax},
		{"dlc past 8", "t1239FF\r", ErrSyntax},
		{"data shorter than dlc", "t12321A\r", ErrSyntax},
		{"remote with data", "r1232AB\r", ErrSyntax},
		{"std id out of range", "t8000\r", can.ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Decode(%q) err = %v, want %v", tt.in, err, tt.want)
			}
		})
	}
}

func TestDecodeWithoutCR(t *testing.T) {
	out, err := Decode("t123201AB")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := mustFrame(t, 0x123, false, []byte{0x01, 0xAB}, false)
	if out != want {
		t.Fatalf("got %v want %v", out, want)
	}
}
