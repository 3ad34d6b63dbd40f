package busio

import (
	"errors"
	"sync"
	"testing"

	"github.com/kjetilkjeka/embedded-types/can"
)

func mkFrame(t *testing.T, id uint32) can.Frame {
	t.Helper()
	cid, err := can.NewStandardID(id)
	if err != nil {
		t.Fatalf("NewStandardID: %v", err)
	}
	f, err := can.NewFrame(cid, []byte{byte(id)}, false)
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	return f
}

func TestBufferFIFO(t *testing.T) {
	b := NewBuffer(4)
	in := []can.Frame{mkFrame(t, 0x10), mkFrame(t, 0x11), mkFrame(t, 0x12)}
	for _, f := range in {
		if err := b.Transmit(f); err != nil {
			t.Fatalf("Transmit: %v", err)
		}
	}
	if b.Len() != len(in) {
		t.Fatalf("Len() = %d, want %d", b.Len(), len(in))
	}
	for i, want := range in {
		got, err := b.Receive()
		if err != nil {
			t.Fatalf("Receive %d: %v", i, err)
		}
		if got != want {
			t.Fatalf("frame %d out of order: got %v want %v", i, got, want)
		}
	}
	if _, err := b.Receive(); !errors.Is(err, ErrBufferEmpty) {
		t.Fatalf("expected ErrBufferEmpty, got %v", err)
	}
}

func TestBufferFullRejects(t *testing.T) {
	b := NewBuffer(2)
	if err := b.Transmit(mkFrame(t, 1)); err != nil {
		t.Fatalf("Transmit: %v", err)
	}
	if err := b.Transmit(mkFrame(t, 2)); err != nil {
		t.Fatalf("Transmit: %v", err)
	}
	if err := b.Transmit(mkFrame(t, 3)); !errors.Is(err, ErrBufferFull) {
		t.Fatalf("expected ErrBufferFull, got %v", err)
	}
	// The rejected frame is not substituted for a queued one.
	got, err := b.Receive()
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if got != mkFrame(t, 1) {
		t.Fatalf("head frame clobbered: %v", got)
	}
	// Draining frees capacity again.
	if err := b.Transmit(mkFrame(t, 4)); err != nil {
		t.Fatalf("Transmit after drain: %v", err)
	}
}

func TestBufferMinimumCapacity(t *testing.T) {
	b := NewBuffer(0)
	if b.Cap() != 1 {
		t.Fatalf("Cap() = %d, want 1", b.Cap())
	}
}

func TestBufferConcurrent(t *testing.T) {
	const workers = 8
	const perWorker = 64
	b := NewBuffer(workers * perWorker)

	f := mkFrame(t, 0x42)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if err := b.Transmit(f); err != nil {
					t.Errorf("Transmit: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	var n int
	for {
		if _, err := b.Receive(); err != nil {
			if !errors.Is(err, ErrBufferEmpty) {
				t.Fatalf("Receive: %v", err)
			}
			break
		}
		n++
	}
	if n != workers*perWorker {
		t.Fatalf("received %d frames, want %d", n, workers*perWorker)
	}
}

// Compile-time interface checks.
var (
	_ Transmitter = (*Buffer)(nil)
	_ Receiver    = (*Buffer)(nil)
)
