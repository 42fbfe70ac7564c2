package pwm

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"testing"
)

// Test loading a valid whitespace-separated PWM
func Test_Load(t *testing.T) {
	m, err := Load(path.Join("..", "..", "test", "pwm_uniform.txt"))
	if err != nil {
		t.Fatalf("failed to load pwm: %v", err)
	}

	if m.Width() != 3 {
		t.Errorf("width = %d, want 3", m.Width())
	}

	for pos := 0; pos < m.Width(); pos++ {
		for _, base := range []byte{'A', 'C', 'G', 'T'} {
			if w := m.Weight(pos, base); w != 0.25 {
				t.Errorf("weight(%d, %c) = %g, want 0.25", pos, base, w)
			}
		}
	}
}

func Test_Load_delimiters(t *testing.T) {
	dir := t.TempDir()

	// comma-separated with mixed case handling downstream
	p := filepath.Join(dir, "commas.pwm")
	if err := os.WriteFile(p, []byte("0.97,0.01,0.01,0.01\n"), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(p)
	if err != nil {
		t.Fatalf("failed to load comma-separated pwm: %v", err)
	}
	if m.Width() != 1 {
		t.Fatalf("width = %d, want 1", m.Width())
	}
	if w := m.Weight(0, 'a'); w != 0.97 {
		t.Errorf("weight(0, a) = %g, want 0.97 (lowercase bases share weights)", w)
	}
}

func Test_Load_malformed(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	tests := []struct {
		name string
		path string
		row  int
	}{
		{"three fields", path.Join("..", "..", "test", "pwm_bad_row.txt"), 2},
		{"non-numeric", write("nan.pwm", "0.25 x 0.25 0.25\n"), 1},
		{"negative", write("neg.pwm", "0.5 0.75 -0.25 0.0\n"), 1},
		{"bad sum", write("sum.pwm", "0.5 0.5 0.5 0.5\n"), 1},
		{"empty", write("empty.pwm", ""), 0},
		{"blank lines only", write("blank.pwm", "\n\n"), 0},
	}

	for _, tt := range tests {
		_, err := Load(tt.path)
		if err == nil {
			t.Errorf("%s: expected a format error", tt.name)
			continue
		}

		var ferr *FormatError
		if !errors.As(err, &ferr) {
			t.Errorf("%s: got %T (%v), want *FormatError", tt.name, err, err)
			continue
		}
		if ferr.Row != tt.row {
			t.Errorf("%s: error names row %d, want %d", tt.name, ferr.Row, tt.row)
		}
	}
}

func Test_Weight_unknownBase(t *testing.T) {
	m, err := Load(path.Join("..", "..", "test", "pwm_uniform.txt"))
	if err != nil {
		t.Fatal(err)
	}

	for _, base := range []byte{'N', 'n', '-', 'U'} {
		if w := m.Weight(0, base); w != 0 {
			t.Errorf("weight(0, %c) = %g, want 0", base, w)
		}
	}
}

func Test_Load_sumTolerance(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "near.pwm")

	// 0.9995 is inside the 1e-3 tolerance
	if err := os.WriteFile(p, []byte("0.2495 0.25 0.25 0.25\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(p); err != nil {
		t.Errorf("sum within tolerance rejected: %v", err)
	}
}
