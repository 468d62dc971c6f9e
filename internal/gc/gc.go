// Package gc computes whole-sequence composition summaries and
// sliding-window GC profiles for parsed FASTA records. Both operations
// are pure functions; counting is case-insensitive over a fixed
// five-bucket scheme (A, T, G, C, other).
package gc

import (
	"errors"

	"github.com/Bano733-code/gc-content-analyzer/internal/fasta"
)

// ErrInvalidParameter reports a non-positive window or step size.
var ErrInvalidParameter = errors.New("gc: window size and step size must be >= 1")

// SummaryStats is the per-record composition summary. Length counts
// every character, including the "other" bucket (N, gaps, anything
// outside ACGT).
type SummaryStats struct {
	Identifier string  `json:"identifier"`
	Length     int     `json:"length"`
	CountA     int     `json:"count_a"`
	CountT     int     `json:"count_t"`
	CountG     int     `json:"count_g"`
	CountC     int     `json:"count_c"`
	CountOther int     `json:"count_other"`
	GCPercent  float64 `json:"gc_percent"`
}

// WindowPoint is one entry of a sliding-window profile: the 0-based
// window start position and the GC percentage over that window.
type WindowPoint struct {
	Position  int     `json:"position"`
	GCPercent float64 `json:"gc_percent"`
}

type counts struct {
	a, t, g, c, other int
}

func tally(s string) counts {
	var n counts
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'A', 'a':
			n.a++
		case 'T', 't':
			n.t++
		case 'G', 'g':
			n.g++
		case 'C', 'c':
			n.c++
		default:
			n.other++
		}
	}
	return n
}

func gcPercent(n counts, length int) float64 {
	if length == 0 {
		// convention for empty sequences, not an error
		return 0.0
	}
	return 100.0 * float64(n.g+n.c) / float64(length)
}

// Summarize tallies base counts and GC percentage for one record in a
// single pass. A zero-length sequence reports GCPercent 0.0.
func Summarize(rec fasta.Record) SummaryStats {
	n := tally(rec.Sequence)
	return SummaryStats{
		Identifier: rec.Identifier,
		Length:     len(rec.Sequence),
		CountA:     n.a,
		CountT:     n.t,
		CountG:     n.g,
		CountC:     n.c,
		CountOther: n.other,
		GCPercent:  gcPercent(n, len(rec.Sequence)),
	}
}

// WindowedGC computes the GC profile over windows starting at
// 0, step, 2*step, ... Only windows that fit entirely within the
// sequence are emitted; a sequence shorter than the window yields an
// empty profile. Non-positive window or step returns
// ErrInvalidParameter.
func WindowedGC(rec fasta.Record, window, step int) ([]WindowPoint, error) {
	if window < 1 || step < 1 {
		return nil, ErrInvalidParameter
	}
	seq := rec.Sequence
	if len(seq) < window {
		return nil, nil
	}
	profile := make([]WindowPoint, 0, (len(seq)-window)/step+1)
	for pos := 0; pos+window <= len(seq); pos += step {
		n := tally(seq[pos : pos+window])
		profile = append(profile, WindowPoint{Position: pos, GCPercent: gcPercent(n, window)})
	}
	return profile, nil
}
