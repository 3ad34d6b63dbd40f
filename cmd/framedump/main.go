// framedump decodes a stream of CAN frames from a file or stdin and prints
// them, one per line, in candump-style text or re-encoded as SLCAN records.
// Useful for inspecting capture files and driver loopback output.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kjetilkjeka/embedded-types/can"
	"github.com/kjetilkjeka/embedded-types/can/slcan"
	"github.com/kjetilkjeka/embedded-types/can/wire"
	"github.com/kjetilkjeka/embedded-types/internal/metrics"
)

func main() {
	cfg := parseFlags()
	l := setupLogger(cfg.logFormat, cfg.logLevel)

	var in io.Reader = os.Stdin
	if cfg.input != "-" {
		f, err := os.Open(cfg.input)
		if err != nil {
			l.Error("open_input", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}
	in = bufio.NewReader(in)

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	emit := func(f can.Frame) {
		if cfg.outFormat == "slcan" {
			fmt.Fprint(out, slcan.Encode(f))
			return
		}
		fmt.Fprintln(out, f.String())
	}

	var n int
	var err error
	switch cfg.inFormat {
	case "slcan":
		n, err = dumpSLCAN(in, cfg.maxFrames, emit, l)
	default:
		n, err = wire.Codec{}.DecodeN(in, cfg.maxFrames, emit)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		l.Error("decode_error", "error", err, "frames", n)
		os.Exit(1)
	}
	l.Debug("done", "frames", n)

	if cfg.stats {
		snap := metrics.Snap()
		l.Info("metrics_snapshot",
			"wire_rx", snap.WireRx,
			"wire_tx", snap.WireTx,
			"malformed", snap.Malformed,
			"buffer_drops", snap.Drops,
		)
	}
}

// dumpSLCAN reads CR- or newline-separated SLCAN records. Records that do not
// parse are logged and skipped so one corrupt line does not end the dump.
func dumpSLCAN(r io.Reader, max int, emit func(can.Frame), l *slog.Logger) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Split(scanRecords)
	var n int
	for (max <= 0 || n < max) && sc.Scan() {
		rec := sc.Text()
		if rec == "" {
			continue
		}
		f, err := slcan.Decode(rec)
		if err != nil {
			l.Warn("skip_record", "record", rec, "error", err)
			continue
		}
		emit(f)
		n++
	}
	if err := sc.Err(); err != nil {
		return n, err
	}
	return n, io.EOF
}

// scanRecords splits on CR or LF, the two terminators seen in SLCAN streams.
func scanRecords(data []byte, atEOF bool) (advance int, token []byte, err error) {
	for i, b := range data {
		if b == '\r' || b == '\n' {
			return i + 1, data[:i], nil
		}
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	if atEOF {
		return 0, nil, nil
	}
	return 0, nil, nil
}
