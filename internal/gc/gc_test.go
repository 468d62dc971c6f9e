package gc

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/Bano733-code/gc-content-analyzer/internal/fasta"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSummarizeKnownSequence(t *testing.T) {
	rec := fasta.Record{Identifier: "seq1", Sequence: "ATGCGCGATATTTGGCGCGCGAATTT"}
	s := Summarize(rec)
	if s.Length != 26 {
		t.Fatalf("expected length 26, got %d", s.Length)
	}
	if s.CountA != 5 || s.CountT != 8 || s.CountG != 8 || s.CountC != 5 || s.CountOther != 0 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	want := 100.0 * 13.0 / 26.0
	if !almostEqual(s.GCPercent, want) {
		t.Fatalf("expected gc %% %.4f, got %.4f", want, s.GCPercent)
	}
}

func TestSummarizeATOnly(t *testing.T) {
	rec := fasta.Record{Identifier: "at", Sequence: strings.Repeat("AT", 22)}
	s := Summarize(rec)
	if s.Length != 44 || s.CountA != 22 || s.CountT != 22 || s.CountG != 0 || s.CountC != 0 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	if s.GCPercent != 0.0 {
		t.Fatalf("expected gc %% 0.0, got %v", s.GCPercent)
	}
}

func TestSummarizeEmptySequence(t *testing.T) {
	s := Summarize(fasta.Record{Identifier: "empty"})
	if s.Length != 0 || s.GCPercent != 0.0 {
		t.Fatalf("expected zero length and gc %% 0.0, got %+v", s)
	}
}

func TestSummarizeCaseInsensitiveAndOther(t *testing.T) {
	s := Summarize(fasta.Record{Sequence: "acgtACGTnN-x"})
	if s.CountA != 2 || s.CountC != 2 || s.CountG != 2 || s.CountT != 2 || s.CountOther != 4 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	if s.CountA+s.CountT+s.CountG+s.CountC+s.CountOther != s.Length {
		t.Fatalf("buckets do not sum to length: %+v", s)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	rec := fasta.Record{Identifier: "x", Sequence: "GGGGCCCCAAAATTTTNNNNNNNNNN"}
	if Summarize(rec) != Summarize(rec) {
		t.Fatalf("summarize is not deterministic")
	}
}

func TestWindowedGCScenario(t *testing.T) {
	rec := fasta.Record{Identifier: "s3", Sequence: "GGGGCCCCAAAATTTTNNNNNNNNNN"}
	profile, err := WindowedGC(rec, 4, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantPos := []int{0, 4, 8, 12, 16, 20}
	if len(profile) != len(wantPos) {
		t.Fatalf("expected %d windows, got %d", len(wantPos), len(profile))
	}
	for i, p := range profile {
		if p.Position != wantPos[i] {
			t.Fatalf("window %d: expected position %d, got %d", i, wantPos[i], p.Position)
		}
	}
	if !almostEqual(profile[0].GCPercent, 100.0) {
		t.Fatalf("first window: expected 100.0, got %v", profile[0].GCPercent)
	}
	// windows inside the N run: N is "other", never GC
	if !almostEqual(profile[5].GCPercent, 0.0) {
		t.Fatalf("N-run window: expected 0.0, got %v", profile[5].GCPercent)
	}
}

func TestWindowedGCCountFormula(t *testing.T) {
	cases := []struct {
		length, window, step int
	}{
		{26, 4, 4},
		{26, 100, 10},
		{100, 10, 3},
		{10, 10, 1},
		{10, 1, 1},
		{0, 5, 5},
	}
	for _, c := range cases {
		rec := fasta.Record{Sequence: strings.Repeat("A", c.length)}
		profile, err := WindowedGC(rec, c.window, c.step)
		if err != nil {
			t.Fatalf("L=%d W=%d S=%d: unexpected error: %v", c.length, c.window, c.step, err)
		}
		want := 0
		if c.length >= c.window {
			want = (c.length-c.window)/c.step + 1
		}
		if len(profile) != want {
			t.Fatalf("L=%d W=%d S=%d: expected %d windows, got %d", c.length, c.window, c.step, want, len(profile))
		}
	}
}

func TestWindowedGCShortSequence(t *testing.T) {
	profile, err := WindowedGC(fasta.Record{Sequence: "ACG"}, 100, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profile) != 0 {
		t.Fatalf("expected empty profile, got %d windows", len(profile))
	}
}

func TestWindowedGCInvalidParameters(t *testing.T) {
	rec := fasta.Record{Sequence: "ACGTACGT"}
	for _, c := range [][2]int{{0, 1}, {1, 0}, {-3, 5}, {5, -3}, {0, 0}} {
		if _, err := WindowedGC(rec, c[0], c[1]); !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("W=%d S=%d: expected ErrInvalidParameter, got %v", c[0], c[1], err)
		}
	}
}

func TestWindowedGCBounds(t *testing.T) {
	rec := fasta.Record{Sequence: "ACGTNACGTNACGTNACGTN"}
	profile, err := WindowedGC(rec, 5, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range profile {
		if p.GCPercent < 0.0 || p.GCPercent > 100.0 {
			t.Fatalf("gc %% out of range at position %d: %v", p.Position, p.GCPercent)
		}
	}
}
