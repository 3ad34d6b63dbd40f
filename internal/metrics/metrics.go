package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus counters
var (
	WireRxFrames = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wire_rx_frames_total",
		Help: "Total CAN frames decoded from the binary wire layout.",
	})
	WireTxFrames = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wire_tx_frames_total",
		Help: "Total CAN frames encoded to the binary wire layout.",
	})
	MalformedFrames = promauto.NewCounter(prometheus.CounterOpts{
		Name: "malformed_frames_total",
		Help: "Total rejected malformed frames (invalid id or length, truncated input).",
	})
	BufferDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "buffer_dropped_frames_total",
		Help: "Total frames rejected by a full frame buffer.",
	})
)

// Local mirrored counters for easy logging (avoid Prometheus scraping in-process)
var (
	localWireRx    uint64
	localWireTx    uint64
	localMalformed uint64
	localDrops     uint64
)

// Snapshot is a cheap copy of local counters.
type Snapshot struct {
	WireRx    uint64
	WireTx    uint64
	Malformed uint64
	Drops     uint64
}

func Snap() Snapshot {
	return Snapshot{
		WireRx:    atomic.LoadUint64(&localWireRx),
		WireTx:    atomic.LoadUint64(&localWireTx),
		Malformed: atomic.LoadUint64(&localMalformed),
		Drops:     atomic.LoadUint64(&localDrops),
	}
}

// Wrapper helpers to keep call sites simple.
func IncWireRx() {
	WireRxFrames.Inc()
	atomic.AddUint64(&localWireRx, 1)
}

func IncWireTx() {
	WireTxFrames.Inc()
	atomic.AddUint64(&localWireTx, 1)
}

func IncMalformed() {
	MalformedFrames.Inc()
	atomic.AddUint64(&localMalformed, 1)
}

func IncBufferDrop() {
	BufferDrops.Inc()
	atomic.AddUint64(&localDrops, 1)
}
