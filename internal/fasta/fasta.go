package fasta

// Package fasta parses FASTA formatted text into records for the
// composition engine. Two interchangeable parsers are provided: a
// biogo-backed one and a minimal built-in scanner. Both normalize
// sequences to uppercase and never fail on arbitrary text.

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PlaceholderID names the single record produced for headerless input.
const PlaceholderID = "seq1"

// Record is a single FASTA record (identifier and uppercase sequence).
type Record struct {
	Identifier string `json:"identifier"`
	Sequence   string `json:"sequence"`
}

// Parser converts raw FASTA text into an ordered list of records.
// Implementations must not fail on malformed input; the worst case is
// zero records or records with empty sequences.
type Parser interface {
	Parse(raw string) []Record
}

// New selects a parser implementation once at startup. Recognized kinds
// are "biogo", "builtin" and "auto" (or empty), which prefers biogo.
// An unrecognized kind is an error so a misconfigured choice surfaces
// instead of silently selecting a default.
func New(kind string) (Parser, error) {
	switch strings.ToLower(kind) {
	case "builtin":
		return SimpleParser{}, nil
	case "biogo", "auto", "":
		return BiogoParser{}, nil
	default:
		return nil, fmt.Errorf("fasta: unknown parser kind %q (want auto, biogo or builtin)", kind)
	}
}

// SimpleParser is the built-in fallback scanner. Lines beginning with
// '>' start a new record; sequence lines are trimmed and concatenated.
type SimpleParser struct{}

// Parse reads records from raw. Headerless non-empty input yields one
// record named PlaceholderID. Blank and whitespace-only lines are
// skipped. Sequences are uppercased; no alphabet validation is done.
func (SimpleParser) Parse(raw string) []Record {
	return scanRecords(strings.NewReader(raw))
}

func scanRecords(r io.Reader) []Record {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var records []Record
	var current *Record
	var seq strings.Builder

	flush := func() {
		if current == nil {
			return
		}
		current.Sequence = seq.String()
		records = append(records, *current)
		current = nil
		seq.Reset()
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			flush()
			current = &Record{Identifier: strings.TrimSpace(line[1:])}
			continue
		}
		if current == nil {
			// sequence data before any header
			current = &Record{Identifier: PlaceholderID}
		}
		seq.WriteString(strings.ToUpper(line))
	}
	flush()
	return records
}
