// Package pwm loads and validates position weight matrices: one row per
// sequence position, four weights per row (A, C, G, T), each row summing to 1.
package pwm

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shenwei356/xopen"
)

// sumTolerance is how far a row's weights may stray from summing to 1
// before the row is rejected.
const sumTolerance = 1e-3

// FormatError describes a malformed PWM file. Row is 1-based and 0 when
// the problem isn't tied to a single row (e.g. an empty file).
type FormatError struct {
	Path   string
	Row    int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("pwm %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("pwm %s: row %d: %s", e.Path, e.Row, e.Reason)
}

// Matrix is a position weight matrix. Immutable once loaded.
type Matrix struct {
	rows [][4]float64
}

// baseIndex maps a base symbol to its column in a row. -1 for anything
// that isn't A/C/G/T; those bases get weight 0 at every position.
func baseIndex(base byte) int {
	switch base {
	case 'A', 'a':
		return 0
	case 'C', 'c':
		return 1
	case 'G', 'g':
		return 2
	case 'T', 't':
		return 3
	}
	return -1
}

// Load reads a PWM from path. Rows may be separated by whitespace or commas.
// Blank lines are skipped. Returns a *FormatError if any row is malformed.
func Load(path string) (*Matrix, error) {
	fh, err := xopen.Ropen(path)
	if err != nil {
		if errors.Is(err, xopen.ErrNoContent) {
			// an empty file has no rows; a matrix needs at least one
			return nil, &FormatError{path, 0, "no weight rows"}
		}
		return nil, fmt.Errorf("open pwm %s: %w", path, err)
	}
	defer fh.Close()

	var rows [][4]float64
	scanner := bufio.NewScanner(fh)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(fields) != 4 {
			return nil, &FormatError{path, lineNo, fmt.Sprintf("expected 4 weights, found %d", len(fields))}
		}

		var row [4]float64
		sum := 0.0
		for i, f := range fields {
			w, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &FormatError{path, lineNo, fmt.Sprintf("non-numeric weight %q", f)}
			}
			if w < 0 {
				return nil, &FormatError{path, lineNo, fmt.Sprintf("negative weight %s", f)}
			}
			row[i] = w
			sum += w
		}
		if sum < 1-sumTolerance || sum > 1+sumTolerance {
			return nil, &FormatError{path, lineNo, fmt.Sprintf("weights sum to %g, expected 1", sum)}
		}

		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read pwm %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, &FormatError{path, 0, "no weight rows"}
	}

	return &Matrix{rows: rows}, nil
}

// Width is the number of sequence positions the matrix covers.
func (m *Matrix) Width() int {
	return len(m.rows)
}

// Weight returns the weight of base at pos. Bases outside {A,C,G,T}
// (case-insensitive) have weight 0 at every position.
func (m *Matrix) Weight(pos int, base byte) float64 {
	i := baseIndex(base)
	if i < 0 {
		return 0
	}
	return m.rows[pos][i]
}

// Row returns a copy of the weights at pos, in A, C, G, T order.
func (m *Matrix) Row(pos int) [4]float64 {
	return m.rows[pos]
}
