package main

import (
	"strings"
	"testing"

	"github.com/Bano733-code/gc-content-analyzer/internal/config"
	"github.com/Bano733-code/gc-content-analyzer/internal/fasta"
)

func TestResolveRunsStore(t *testing.T) {
	cases := []struct {
		name      string
		cfg       config.Config
		storeFlag string
		runsFlag  string
		wantStore string
		wantPath  string
	}{
		{name: "defaults", wantStore: "json", wantPath: "runs.json"},
		{
			name:      "config only",
			cfg:       config.Config{RunsStore: "sqlite", RunsPath: "history.db"},
			wantStore: "sqlite", wantPath: "history.db",
		},
		{
			name:      "flags override config",
			cfg:       config.Config{RunsStore: "sqlite", RunsPath: "history.db"},
			storeFlag: "json", runsFlag: "other.json",
			wantStore: "json", wantPath: "other.json",
		},
		{
			name:     "flag path with config store",
			cfg:      config.Config{RunsStore: "sqlite"},
			runsFlag: "runs.db",
			wantStore: "sqlite", wantPath: "runs.db",
		},
	}
	for _, c := range cases {
		store, path := resolveRunsStore(&c.cfg, c.storeFlag, c.runsFlag)
		if store != c.wantStore || path != c.wantPath {
			t.Fatalf("%s: resolveRunsStore = (%q, %q), want (%q, %q)", c.name, store, path, c.wantStore, c.wantPath)
		}
	}
}

func TestClampParam(t *testing.T) {
	cases := []struct {
		raw  string
		def  int
		want int
	}{
		{"100", 10, 100},
		{" 7 ", 10, 7},
		{"0", 10, 10},
		{"-5", 10, 10},
		{"abc", 10, 10},
		{"", 10, 10},
	}
	for _, c := range cases {
		if got := clampParam(c.raw, c.def); got != c.want {
			t.Fatalf("clampParam(%q, %d) = %d, want %d", c.raw, c.def, got, c.want)
		}
	}
}

func TestAnalyzeProducesResults(t *testing.T) {
	raw := ">seq1\nATGCGCGATATTTGGCGCGCGAATTT\n>short\nAC\n"
	results := analyze(fasta.SimpleParser{}, raw, 4, 4)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Stats.Length != 26 || len(results[0].Profile) == 0 {
		t.Fatalf("unexpected first result: %+v", results[0])
	}
	// shorter than window: empty profile, still summarized
	if results[1].Stats.Length != 2 || len(results[1].Profile) != 0 {
		t.Fatalf("unexpected short-record result: %+v", results[1])
	}
}

func TestProfileSVG(t *testing.T) {
	results := analyze(fasta.SimpleParser{}, ">s\nGGGGCCCCAAAATTTTNNNNNNNNNN\n", 4, 4)
	svg := string(profileSVG(results[0].Profile, 640, 200))
	if !strings.HasPrefix(svg, "<svg") || !strings.Contains(svg, "<polyline") {
		t.Fatalf("unexpected svg output: %q", svg)
	}
	if profileSVG(nil, 640, 200) != "" {
		t.Fatalf("expected empty svg for empty profile")
	}
}
