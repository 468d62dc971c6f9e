package fasta

import "testing"

// The two parsers must agree on well-formed FASTA.
func TestParsersConverge(t *testing.T) {
	input := ">seq1 Homo sapiens test\nATGCgcga\nTATTTGGC\n\n>seq2\nacgtn\n"
	simple := SimpleParser{}.Parse(input)
	bio := BiogoParser{}.Parse(input)
	if len(simple) != len(bio) {
		t.Fatalf("record count mismatch: builtin=%d biogo=%d", len(simple), len(bio))
	}
	for i := range simple {
		if simple[i].Identifier != bio[i].Identifier {
			t.Fatalf("identifier mismatch at %d: builtin=%q biogo=%q", i, simple[i].Identifier, bio[i].Identifier)
		}
		if simple[i].Sequence != bio[i].Sequence {
			t.Fatalf("sequence mismatch at %d: builtin=%q biogo=%q", i, simple[i].Sequence, bio[i].Sequence)
		}
	}
}

func TestBiogoParseEmpty(t *testing.T) {
	if recs := (BiogoParser{}).Parse(""); len(recs) != 0 {
		t.Fatalf("expected 0 records for empty input, got %d", len(recs))
	}
}

// A header with no sequence lines still yields a record, with an
// empty sequence, on both parser paths.
func TestBiogoParseBareHeader(t *testing.T) {
	input := ">lonely header\n>next\nACGT\n"
	recs := BiogoParser{}.Parse(input)
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Identifier != "lonely header" || recs[0].Sequence != "" {
		t.Fatalf("expected empty sequence for bare header, got %+v", recs[0])
	}
	simple := SimpleParser{}.Parse(input)
	for i := range recs {
		if recs[i] != simple[i] {
			t.Fatalf("parsers diverge at %d: biogo=%+v builtin=%+v", i, recs[i], simple[i])
		}
	}
}

// Characters outside the DNA alphabet must not make Parse fail; both
// paths keep them for the analyzer's "other" bucket.
func TestBiogoParseUnusualCharacters(t *testing.T) {
	input := ">odd\nACGT*x9-\n"
	recs := BiogoParser{}.Parse(input)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].Sequence != "ACGT*X9-" {
		t.Fatalf("expected characters preserved, got %q", recs[0].Sequence)
	}
	simple := SimpleParser{}.Parse(input)
	if recs[0] != simple[0] {
		t.Fatalf("parsers diverge: biogo=%+v builtin=%+v", recs[0], simple[0])
	}
}

// Headerless raw sequence is not valid FASTA for the library path; the
// parser must still produce one placeholder record via the fallback.
func TestBiogoParseHeaderlessFallsBack(t *testing.T) {
	recs := BiogoParser{}.Parse("ATATATAT\n")
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].Identifier != PlaceholderID || recs[0].Sequence != "ATATATAT" {
		t.Fatalf("unexpected record: %+v", recs[0])
	}
}
