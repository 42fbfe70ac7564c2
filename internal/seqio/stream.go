// Package seqio streams FASTA/FASTQ read units and writes selected units
// back out in the format detected on input. Format detection, record parsing
// and compressed file handling are delegated to shenwei356/bio and xopen.
package seqio

import (
	"fmt"
	"io"
	"strings"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
)

// Format is the record format detected from the first record's structure
// (presence of a quality block), not from the file extension.
type Format int

const (
	FASTA Format = iota
	FASTQ
)

// Ext is the file extension used for output files of this format.
func (f Format) Ext() string {
	if f == FASTQ {
		return "fastq"
	}
	return "fasta"
}

func (f Format) String() string {
	return strings.ToUpper(f.Ext())
}

// ParseError describes a malformed or truncated record. Index is the
// 1-based read-unit index at which parsing failed.
type ParseError struct {
	Path   string
	Index  int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: record %d: %s: %v", e.Path, e.Index, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: record %d: %s", e.Path, e.Index, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// PairingError describes mates whose identifiers diverge, or a mate
// missing its partner, at the 1-based unit Index.
type PairingError struct {
	Index  int
	ID1    string
	ID2    string
	Reason string
}

func (e *PairingError) Error() string {
	if e.ID2 == "" {
		return fmt.Sprintf("pair %d (%s): %s", e.Index, e.ID1, e.Reason)
	}
	return fmt.Sprintf("pair %d: %s: %q vs %q", e.Index, e.Reason, e.ID1, e.ID2)
}

// ReadUnit is the atomic item of scoring, sampling and output: a single
// read, or a mate pair that is never separated. Records are owned by the
// unit (cloned off the reader's buffers).
type ReadUnit struct {
	// 1-based position of this unit in the input stream
	Index int

	Mate1 *fastx.Record
	Mate2 *fastx.Record // nil in single-end mode
}

// ID is the unit's base identifier with any /1 or /2 mate suffix stripped.
func (u *ReadUnit) ID() string {
	return baseID(u.Mate1)
}

// baseID strips the conventional mate suffix from a record's parsed ID.
func baseID(r *fastx.Record) string {
	id := string(r.ID)
	if strings.HasSuffix(id, "/1") || strings.HasSuffix(id, "/2") {
		return id[:len(id)-2]
	}
	return id
}

// Stream yields ReadUnits lazily from one or two reads files. It is
// forward-only and not restartable.
type Stream struct {
	path1, path2 string
	r1, r2       *fastx.Reader

	// paired with path2 == "" means pairs are interleaved in one file
	paired      bool
	interleaved bool

	index    int
	started  bool
	format   Format
	finished bool
}

// Open prepares a stream over reads (and mates, when paired mode uses two
// files). With paired true and no mates path, reads is treated as an
// interleaved file of consecutive mate pairs.
func Open(reads, mates string, paired bool) (*Stream, error) {
	if mates != "" && !paired {
		return nil, fmt.Errorf("a mates file requires paired-end mode")
	}

	r1, err := fastx.NewReader(seq.DNAredundant, reads, fastx.DefaultIDRegexp)
	if err != nil {
		return nil, fmt.Errorf("open reads %s: %w", reads, err)
	}

	s := &Stream{
		path1:       reads,
		path2:       mates,
		r1:          r1,
		paired:      paired,
		interleaved: paired && mates == "",
	}

	if mates != "" {
		r2, err := fastx.NewReader(seq.DNAredundant, mates, fastx.DefaultIDRegexp)
		if err != nil {
			r1.Close()
			return nil, fmt.Errorf("open mates %s: %w", mates, err)
		}
		s.r2 = r2
	}

	return s, nil
}

// Paired reports whether units carry two mates.
func (s *Stream) Paired() bool { return s.paired }

// Format is the record format detected from the stream's first record.
// Valid only after the first successful Next call.
func (s *Stream) Format() Format { return s.format }

// read pulls one record off a reader, clones it, and validates its
// structure. path identifies the file for diagnostics.
func (s *Stream) read(r *fastx.Reader, path string) (*fastx.Record, error) {
	rec, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, &ParseError{Path: path, Index: s.index + 1, Reason: "malformed record", Err: err}
	}

	rec = rec.Clone() // the reader reuses its record buffers

	if err := checkRecord(rec, path, s.index+1); err != nil {
		return nil, err
	}
	return rec, nil
}

// checkRecord validates a record's structure beyond what the parser
// enforces. index is the 1-based unit index used in diagnostics.
func checkRecord(rec *fastx.Record, path string, index int) error {
	if len(rec.Seq.Qual) > 0 && len(rec.Seq.Qual) != len(rec.Seq.Seq) {
		return &ParseError{
			Path:   path,
			Index:  index,
			Reason: fmt.Sprintf("quality length %d does not match sequence length %d", len(rec.Seq.Qual), len(rec.Seq.Seq)),
		}
	}
	return nil
}

// Next returns the next ReadUnit, or io.EOF at end of stream. Any parse or
// pairing failure is fatal to the stream.
func (s *Stream) Next() (*ReadUnit, error) {
	if s.finished {
		return nil, io.EOF
	}

	m1, err := s.read(s.r1, s.path1)
	if err != nil {
		if err == io.EOF {
			s.finished = true
		}
		return nil, err
	}

	if !s.started {
		s.started = true
		if s.r1.IsFastq {
			s.format = FASTQ
		} else {
			s.format = FASTA
		}
	}

	var m2 *fastx.Record
	if s.paired {
		if s.interleaved {
			m2, err = s.read(s.r1, s.path1)
		} else {
			m2, err = s.read(s.r2, s.path2)
		}
		if err == io.EOF {
			return nil, &PairingError{
				Index:  s.index + 1,
				ID1:    baseID(m1),
				Reason: "mate 2 is missing (input ended early)",
			}
		}
		if err != nil {
			return nil, err
		}

		if s.r2 != nil && s.r2.IsFastq != s.r1.IsFastq {
			return nil, &ParseError{
				Path:   s.path2,
				Index:  s.index + 1,
				Reason: fmt.Sprintf("format %s does not match mate file's %s", formatOf(s.r2), formatOf(s.r1)),
			}
		}

		if baseID(m1) != baseID(m2) {
			return nil, &PairingError{
				Index:  s.index + 1,
				ID1:    baseID(m1),
				ID2:    baseID(m2),
				Reason: "mate identifiers diverge",
			}
		}
	}

	s.index++
	return &ReadUnit{Index: s.index, Mate1: m1, Mate2: m2}, nil
}

// Close releases the underlying file handles.
func (s *Stream) Close() {
	s.r1.Close()
	if s.r2 != nil {
		s.r2.Close()
	}
}

func formatOf(r *fastx.Reader) Format {
	if r.IsFastq {
		return FASTQ
	}
	return FASTA
}
