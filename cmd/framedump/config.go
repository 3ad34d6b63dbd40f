package main

import (
	"flag"
	"fmt"
	"os"
)

type appConfig struct {
	input     string
	inFormat  string
	outFormat string
	maxFrames int
	logFormat string
	logLevel  string
	stats     bool
}

func parseFlags() *appConfig {
	cfg := &appConfig{}
	input := flag.String("in", "-", "Input file with encoded frames (- for stdin)")
	inFormat := flag.String("format", "wire", "Input format: wire|slcan")
	outFormat := flag.String("out", "text", "Output format: text|slcan")
	maxFrames := flag.Int("max", 0, "Stop after N frames (0 = until EOF)")
	logFormat := flag.String("log-format", "text", "Log format: text|json")
	logLevel := flag.String("log-level", "info", "Log level: debug|info|warn|error")
	stats := flag.Bool("stats", false, "Log a metrics snapshot when done")
	flag.Parse()

	cfg.input = *input
	cfg.inFormat = *inFormat
	cfg.outFormat = *outFormat
	cfg.maxFrames = *maxFrames
	cfg.logFormat = *logFormat
	cfg.logLevel = *logLevel
	cfg.stats = *stats

	// Environment overrides for the logging knobs, flags take precedence.
	setFlags := map[string]struct{}{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = struct{}{} })
	if _, ok := setFlags["log-format"]; !ok {
		if v := os.Getenv("FRAMEDUMP_LOG_FORMAT"); v != "" {
			cfg.logFormat = v
		}
	}
	if _, ok := setFlags["log-level"]; !ok {
		if v := os.Getenv("FRAMEDUMP_LOG_LEVEL"); v != "" {
			cfg.logLevel = v
		}
	}

	if cfg.inFormat != "wire" && cfg.inFormat != "slcan" {
		fmt.Fprintf(os.Stderr, "unknown input format %q\n", cfg.inFormat)
		os.Exit(2)
	}
	if cfg.outFormat != "text" && cfg.outFormat != "slcan" {
		fmt.Fprintf(os.Stderr, "unknown output format %q\n", cfg.outFormat)
		os.Exit(2)
	}
	return cfg
}
