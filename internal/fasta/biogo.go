package fasta

import (
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	biofasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// BiogoParser reads FASTA through the biogo seqio reader. It uses the
// redundant DNA alphabet so IUPAC ambiguity codes and gaps survive
// parsing. Input the library rejects (headerless text, characters
// outside the alphabet) is re-parsed with the built-in scanner, so
// Parse keeps the never-fails contract.
type BiogoParser struct{}

func (BiogoParser) Parse(raw string) []Record {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	template := linear.NewSeq("", nil, alphabet.DNAredundant)
	sc := seqio.NewScanner(biofasta.NewReader(strings.NewReader(raw), template))

	var records []Record
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			continue
		}
		id := s.ID
		if s.Desc != "" {
			// biogo splits the header at the first space; the engine
			// treats the whole header line as the identifier.
			id = s.ID + " " + s.Desc
		}
		records = append(records, Record{
			Identifier: strings.TrimSpace(id),
			Sequence:   strings.ToUpper(s.Seq.String()),
		})
	}
	if err := sc.Error(); err != nil {
		return SimpleParser{}.Parse(raw)
	}
	return records
}
