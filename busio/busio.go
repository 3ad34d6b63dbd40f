// Package busio defines the transmit/receive contract between the shared
// frame types and driver code. Drivers satisfy Transmitter and Receiver;
// Buffer is a bounded in-memory implementation usable as a software mailbox
// or as a loopback in driver tests.
package busio

import (
	"errors"
	"sync"

	"github.com/kjetilkjeka/embedded-types/can"
	"github.com/kjetilkjeka/embedded-types/internal/logging"
	"github.com/kjetilkjeka/embedded-types/internal/metrics"
)

// Sentinel errors used for wrapping so callers can classify via errors.Is.
// The list is expected to grow over time; do not treat it as exhaustive.
var (
	// ErrBufferFull is returned by a transmit path that has no room for
	// another frame. Recoverable: the caller retries after draining.
	ErrBufferFull = errors.New("busio: buffer full")

	// ErrBufferEmpty is returned by a receive path with no pending frame.
	ErrBufferEmpty = errors.New("busio: buffer empty")
)

// Transmitter queues one frame for transmission.
type Transmitter interface {
	Transmit(can.Frame) error
}

// Receiver takes the next pending frame.
type Receiver interface {
	Receive() (can.Frame, error)
}

// Buffer is a bounded FIFO of frames, safe for concurrent use. Capacity is
// fixed at construction; a full buffer rejects frames rather than growing,
// matching consumers that have no dynamic memory manager.
type Buffer struct {
	mu      sync.Mutex
	frames  []can.Frame
	cap     int
	dropped bool
}

// NewBuffer creates a Buffer holding at most capacity frames. Capacity below
// 1 is raised to 1.
func NewBuffer(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{frames: make([]can.Frame, 0, capacity), cap: capacity}
}

// Transmit appends a frame, or fails with ErrBufferFull at capacity. The
// frame is copied in; the caller's value stays untouched.
func (b *Buffer) Transmit(f can.Frame) error {
	b.mu.Lock()
	if len(b.frames) >= b.cap {
		first := !b.dropped
		b.dropped = true
		b.mu.Unlock()
		metrics.IncBufferDrop()
		if first {
			logging.L().Warn("buffer_full", "capacity", b.cap, "frame", f.String())
		}
		return ErrBufferFull
	}
	b.frames = append(b.frames, f)
	b.mu.Unlock()
	return nil
}

// Receive pops the oldest frame, or fails with ErrBufferEmpty.
func (b *Buffer) Receive() (can.Frame, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.frames) == 0 {
		return can.Frame{}, ErrBufferEmpty
	}
	f := b.frames[0]
	copy(b.frames, b.frames[1:])
	b.frames = b.frames[:len(b.frames)-1]
	return f, nil
}

// Len returns the number of pending frames.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.frames)
}

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int { return b.cap }
