package seqio

import (
	"fmt"

	"github.com/shenwei356/xopen"
)

// Writer emits selected ReadUnits, mirroring the format detected on input.
// Single-end units go to <prefix>.<ext>; mate pairs go to <prefix>.1.<ext>
// and <prefix>.2.<ext>. Destination files are created or truncated; a write
// interrupted mid-run may leave them truncated.
type Writer struct {
	w1, w2 *xopen.Writer
	paths  []string
	paired bool
}

// NewWriter opens the destination file(s) for a run. With gz true the
// files get a .gz suffix and are compressed by xopen.
func NewWriter(prefix string, format Format, paired, gz bool) (*Writer, error) {
	ext := format.Ext()
	if gz {
		ext += ".gz"
	}

	if !paired {
		path := fmt.Sprintf("%s.%s", prefix, ext)
		fh, err := xopen.Wopen(path)
		if err != nil {
			return nil, fmt.Errorf("create output %s: %w", path, err)
		}
		return &Writer{w1: fh, paths: []string{path}}, nil
	}

	path1 := fmt.Sprintf("%s.1.%s", prefix, ext)
	path2 := fmt.Sprintf("%s.2.%s", prefix, ext)
	fh1, err := xopen.Wopen(path1)
	if err != nil {
		return nil, fmt.Errorf("create output %s: %w", path1, err)
	}
	fh2, err := xopen.Wopen(path2)
	if err != nil {
		fh1.Close()
		return nil, fmt.Errorf("create output %s: %w", path2, err)
	}
	return &Writer{w1: fh1, w2: fh2, paths: []string{path1, path2}, paired: true}, nil
}

// Paths are the destination file(s), mate 1 first.
func (w *Writer) Paths() []string { return w.paths }

// Write emits one unit, each mate to its own file in paired mode.
func (w *Writer) Write(u *ReadUnit) error {
	u.Mate1.FormatToWriter(w.w1, 0)
	if w.paired {
		if u.Mate2 == nil {
			return fmt.Errorf("unit %d (%s) has no mate 2", u.Index, u.ID())
		}
		u.Mate2.FormatToWriter(w.w2, 0)
	}
	return nil
}

// Close flushes and closes the destination file(s).
func (w *Writer) Close() error {
	err := w.w1.Close()
	if w.w2 != nil {
		if err2 := w.w2.Close(); err == nil {
			err = err2
		}
	}
	return err
}
