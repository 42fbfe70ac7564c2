package seqio

import (
	"errors"
	"io"
	"path"
	"testing"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
)

func fixture(name string) string {
	return path.Join("..", "..", "test", name)
}

// collect drains a stream, failing the test on any error.
func collect(t *testing.T, s *Stream) []*ReadUnit {
	t.Helper()
	var units []*ReadUnit
	for {
		u, err := s.Next()
		if err == io.EOF {
			return units
		}
		if err != nil {
			t.Fatalf("unexpected stream error: %v", err)
		}
		units = append(units, u)
	}
}

func Test_Stream_fasta(t *testing.T) {
	s, err := Open(fixture("reads.fasta"), "", false)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	units := collect(t, s)
	if len(units) != 4 {
		t.Fatalf("read %d units, want 4", len(units))
	}
	if s.Format() != FASTA {
		t.Errorf("format = %s, want FASTA", s.Format())
	}

	if units[0].ID() != "read_a" {
		t.Errorf("first unit ID = %q, want read_a", units[0].ID())
	}
	if string(units[0].Mate1.Seq.Seq) != "AACGTACGTA" {
		t.Errorf("first unit seq = %q", units[0].Mate1.Seq.Seq)
	}
	if len(units[0].Mate1.Seq.Qual) != 0 {
		t.Errorf("FASTA records must not carry quality")
	}
	for i, u := range units {
		if u.Index != i+1 {
			t.Errorf("unit %d has index %d", i, u.Index)
		}
		if u.Mate2 != nil {
			t.Errorf("single-end unit %d has a mate 2", i)
		}
	}
}

func Test_Stream_fastq(t *testing.T) {
	s, err := Open(fixture("reads.fastq"), "", false)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	units := collect(t, s)
	if len(units) != 4 {
		t.Fatalf("read %d units, want 4", len(units))
	}
	if s.Format() != FASTQ {
		t.Errorf("format = %s, want FASTQ", s.Format())
	}
	for _, u := range units {
		if len(u.Mate1.Seq.Qual) != len(u.Mate1.Seq.Seq) {
			t.Errorf("unit %s: quality and sequence lengths differ", u.ID())
		}
	}
}

func Test_Stream_paired(t *testing.T) {
	s, err := Open(fixture("reads_1.fastq"), fixture("reads_2.fastq"), true)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	units := collect(t, s)
	if len(units) != 5 {
		t.Fatalf("read %d pairs, want 5", len(units))
	}

	for i, u := range units {
		if u.Mate2 == nil {
			t.Fatalf("pair %d has no mate 2", i+1)
		}
		if got, want := u.ID(), baseID(u.Mate2); got != want {
			t.Errorf("pair %d: mate IDs %q vs %q", i+1, got, want)
		}
	}
	if units[0].ID() != "pair1" {
		t.Errorf("mate suffix not stripped: %q", units[0].ID())
	}
}

func Test_Stream_interleaved(t *testing.T) {
	s, err := Open(fixture("interleaved.fastq"), "", true)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	units := collect(t, s)
	if len(units) != 2 {
		t.Fatalf("read %d pairs, want 2", len(units))
	}
	for _, u := range units {
		if u.Mate2 == nil {
			t.Fatalf("pair %s has no mate 2", u.ID())
		}
	}
}

func Test_Stream_pairingError(t *testing.T) {
	s, err := Open(fixture("reads_1.fastq"), fixture("mates_mismatch.fastq"), true)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// pair 1 agrees, pair 2 diverges
	if _, err := s.Next(); err != nil {
		t.Fatalf("pair 1 should parse: %v", err)
	}

	_, err = s.Next()
	var perr *PairingError
	if !errors.As(err, &perr) {
		t.Fatalf("got %T (%v), want *PairingError", err, err)
	}
	if perr.Index != 2 {
		t.Errorf("error names pair %d, want 2", perr.Index)
	}
}

func Test_Stream_danglingMate(t *testing.T) {
	// mate 2 file ends two pairs early
	s, err := Open(fixture("reads_1.fastq"), fixture("mates_short.fastq"), true)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	for {
		_, err := s.Next()
		if err == io.EOF {
			t.Fatal("stream ended without a pairing error")
		}
		if err != nil {
			var perr *PairingError
			if !errors.As(err, &perr) {
				t.Fatalf("got %T (%v), want *PairingError", err, err)
			}
			if perr.Index != 3 {
				t.Errorf("error names pair %d, want 3", perr.Index)
			}
			return
		}
	}
}

func Test_Stream_truncatedRecord(t *testing.T) {
	s, err := Open(fixture("truncated.fastq"), "", false)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	sawError := false
	for {
		_, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("got %T (%v), want *ParseError", err, err)
			}
			sawError = true
			break
		}
	}
	if !sawError {
		t.Error("truncated record parsed without error")
	}
}

// Close releases both handles without a value to check; it must be callable
// directly as well as deferred, in single and paired mode
func Test_Stream_close(t *testing.T) {
	s, err := Open(fixture("reads.fasta"), "", false)
	if err != nil {
		t.Fatal(err)
	}
	collect(t, s)
	s.Close()

	p, err := Open(fixture("reads_1.fastq"), fixture("reads_2.fastq"), true)
	if err != nil {
		t.Fatal(err)
	}
	collect(t, p)
	p.Close()
}

func Test_checkRecord(t *testing.T) {
	rec := &fastx.Record{
		ID:   []byte("r1"),
		Name: []byte("r1"),
		Seq:  &seq.Seq{Seq: []byte("ACGTAC"), Qual: []byte("III")},
	}

	err := checkRecord(rec, "reads.fastq", 3)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("got %T (%v), want *ParseError", err, err)
	}
	if perr.Index != 3 {
		t.Errorf("error names record %d, want 3", perr.Index)
	}

	rec.Seq.Qual = []byte("IIIIII")
	if err := checkRecord(rec, "reads.fastq", 3); err != nil {
		t.Errorf("matching lengths rejected: %v", err)
	}
}

func Test_baseID(t *testing.T) {
	tests := []struct {
		id, want string
	}{
		{"frag/1", "frag"},
		{"frag/2", "frag"},
		{"frag", "frag"},
	}
	for _, tt := range tests {
		rec := &fastx.Record{ID: []byte(tt.id)}
		if got := baseID(rec); got != tt.want {
			t.Errorf("baseID(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
