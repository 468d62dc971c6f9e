package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Bano733-code/gc-content-analyzer/internal/config"
	"github.com/Bano733-code/gc-content-analyzer/internal/fasta"
	"github.com/Bano733-code/gc-content-analyzer/internal/gc"
	"github.com/Bano733-code/gc-content-analyzer/internal/report"

	"github.com/charmbracelet/log"
)

// version is the program version. It can be overridden at build time with -ldflags "-X main.version=..."
var version = "0.1.0"

// RecordResult bundles everything computed for one FASTA record. The
// web and TUI front ends read the serialized form of this struct.
type RecordResult struct {
	Identifier string           `json:"identifier"`
	Sequence   string           `json:"sequence"`
	Stats      gc.SummaryStats  `json:"stats"`
	Profile    []gc.WindowPoint `json:"profile"`
	WindowSize int              `json:"window_size"`
	StepSize   int              `json:"step_size"`
}

// timestampWriter prefixes each flushed line with an RFC3339 timestamp.
type timestampWriter struct {
	w   io.Writer
	buf bytes.Buffer
	mu  sync.Mutex
}

// Write buffers bytes until a newline is found; for each full line, write a timestamped
// line to the underlying writer. Partial lines are kept in the buffer.
func (t *timestampWriter) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, _ := t.buf.Write(p)
	total := n
	for {
		line, err := t.buf.ReadString('\n')
		if err != nil {
			break
		}
		ts := time.Now().Format(time.RFC3339)
		if _, err := t.w.Write([]byte(ts + " " + line)); err != nil {
			return total, err
		}
	}
	return total, nil
}

// terminalWriter wraps an io.Writer and exposes an Fd method so libraries that
// inspect the file descriptor (for TTY detection) can work with wrapped writers.
type terminalWriter struct {
	w  io.Writer
	fd uintptr
}

func (tw *terminalWriter) Write(p []byte) (int, error) { return tw.w.Write(p) }

// Fd exposes the underlying file descriptor (e.g., os.Stderr.Fd()).
func (tw *terminalWriter) Fd() uintptr { return tw.fd }

// analyzeRecords runs the composition engine over every record. A
// record that rejects the window parameters is skipped with a warning;
// it never aborts the rest of the batch.
func analyzeRecords(records []fasta.Record, window, step int, logger *log.Logger) []RecordResult {
	results := make([]RecordResult, 0, len(records))
	for _, rec := range records {
		stats := gc.Summarize(rec)
		profile, err := gc.WindowedGC(rec, window, step)
		if err != nil {
			if logger != nil {
				logger.Warn("skipping profile for record", "identifier", rec.Identifier, "err", err)
			}
			profile = nil
		}
		results = append(results, RecordResult{
			Identifier: rec.Identifier,
			Sequence:   rec.Sequence,
			Stats:      stats,
			Profile:    profile,
			WindowSize: window,
			StepSize:   step,
		})
	}
	return results
}

func main() {
	// CLI flags
	inputFlag := flag.String("in", "sequences.fasta", "input FASTA file path")
	outputFlag := flag.String("out", "results.json", "output JSON file path")
	csvFlag := flag.String("csv", "", "optional summary CSV output path")
	configFlag := flag.String("config", "", "path to config.json (optional)")
	windowFlag := flag.Int("window", 0, "sliding window size in bp (overrides config)")
	stepFlag := flag.Int("step", 0, "sliding window step in bp (overrides config)")
	parserFlag := flag.String("parser", "", "fasta parser: auto, biogo or builtin (overrides config)")
	dryRun := flag.Bool("dry-run", false, "perform a dry run without writing outputs")
	verbose := flag.Bool("verbose", false, "enable verbose (debug) logging")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println("gc-content-analyzer", version)
		return
	}

	// load config (optional file)
	cfg, err := config.LoadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	// merge CLI flags into config (flags override config when provided)
	if *inputFlag != "" {
		cfg.InputFasta = *inputFlag
	}
	if *outputFlag != "" {
		cfg.OutputJSON = *outputFlag
	}
	if *csvFlag != "" {
		cfg.OutputCSV = *csvFlag
	}
	if *windowFlag > 0 {
		cfg.WindowSize = *windowFlag
	}
	if *stepFlag > 0 {
		cfg.StepSize = *stepFlag
	}
	if *parserFlag != "" {
		cfg.Parser = *parserFlag
	}

	// configure logger output
	var loggerOut io.Writer = os.Stderr
	var logFileHandle *os.File
	if cfg.LogFile != "" {
		if f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			// write to both stderr and file so running interactively still shows logs
			loggerOut = io.MultiWriter(os.Stderr, f)
			logFileHandle = f
			defer func() { _ = logFileHandle.Close() }()
		}
	}
	// If stderr is a terminal-like device, force colors for libraries that honor FORCE_COLOR.
	if fi, err := os.Stderr.Stat(); err == nil {
		if fi.Mode()&os.ModeCharDevice != 0 {
			_ = os.Setenv("FORCE_COLOR", "1")
		}
	}
	tw := &timestampWriter{w: loggerOut}
	termW := &terminalWriter{w: tw, fd: os.Stderr.Fd()}
	logger := log.New(termW)

	// apply log level from flags/config (flags override config)
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		switch strings.ToLower(cfg.LogLevel) {
		case "debug":
			logger.SetLevel(log.DebugLevel)
		case "info", "":
			logger.SetLevel(log.InfoLevel)
		case "warn", "warning":
			logger.SetLevel(log.WarnLevel)
		case "error":
			logger.SetLevel(log.ErrorLevel)
		default:
			logger.SetLevel(log.InfoLevel)
			logger.Warn("unknown log_level in config.json, defaulting to info", "provided", cfg.LogLevel)
		}
	}

	logger.Info("starting gc-content-analyzer",
		"input_fasta", cfg.InputFasta,
		"output_json", cfg.OutputJSON,
		"output_csv", cfg.OutputCSV,
		"window", cfg.WindowSize,
		"step", cfg.StepSize,
		"parser", cfg.Parser)

	data, err := os.ReadFile(cfg.InputFasta)
	if err != nil {
		logger.Fatal("failed to read input fasta", "path", cfg.InputFasta, "err", err)
	}

	parser, err := fasta.New(cfg.Parser)
	if err != nil {
		logger.Fatal("invalid parser kind", "parser", cfg.Parser, "err", err)
	}
	records := parser.Parse(string(data))
	logger.Info("parsed fasta", "path", cfg.InputFasta, "records", len(records))
	if len(records) == 0 {
		logger.Warn("no sequences found in input; writing empty results")
	}

	start := time.Now()
	results := analyzeRecords(records, cfg.WindowSize, cfg.StepSize, logger)
	logger.Debug("analysis finished", "records", len(results), "duration_ms", time.Since(start).Milliseconds())

	for _, r := range results {
		logger.Debug("record summary",
			"identifier", r.Identifier,
			"length", r.Stats.Length,
			"gc_percent", fmt.Sprintf("%.3f", r.Stats.GCPercent),
			"windows", len(r.Profile))
	}

	jsonData, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		logger.Fatal("json marshal failed", "err", err)
	}

	if *dryRun {
		logger.Info("dry-run: would write output JSON", "path", cfg.OutputJSON, "records", len(results))
	} else {
		if err := os.WriteFile(cfg.OutputJSON, jsonData, 0o644); err != nil {
			logger.Fatal("failed to write output JSON", "path", cfg.OutputJSON, "err", err)
		}
		logger.Info("wrote output JSON", "path", cfg.OutputJSON, "records", len(results))
	}

	if cfg.OutputCSV != "" {
		if *dryRun {
			logger.Info("dry-run: would write summary CSV", "path", cfg.OutputCSV)
		} else {
			f, err := os.Create(cfg.OutputCSV)
			if err != nil {
				logger.Fatal("failed to create summary CSV", "path", cfg.OutputCSV, "err", err)
			}
			rows := make([]gc.SummaryStats, 0, len(results))
			for _, r := range results {
				rows = append(rows, r.Stats)
			}
			err = report.WriteSummaryCSV(f, rows)
			cerr := f.Close()
			if err != nil {
				logger.Fatal("failed to write summary CSV", "path", cfg.OutputCSV, "err", err)
			}
			if cerr != nil {
				logger.Error("failed to close summary CSV", "path", cfg.OutputCSV, "err", cerr)
			}
			logger.Info("wrote summary CSV", "path", cfg.OutputCSV, "rows", len(rows))
		}
	}
}
