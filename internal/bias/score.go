package bias

import (
	"math"

	"github.com/COMBINE-lab/piquant/internal/pwm"
)

// logZero stands in for log(0) so a zero-weight base penalizes a read
// heavily without propagating -Inf or NaN into the sampler.
const logZero = -100.0

// Scorer computes a read's composition score against a target profile.
// Implementations must be pure: identical sequences score identically.
type Scorer interface {
	Score(seq []byte) float64
}

// LogLikelihood scores the leading bases of a sequence by their summed
// log weights under a position weight matrix.
type LogLikelihood struct {
	m *pwm.Matrix
}

// NewLogLikelihood returns a scorer over m. The scorer is the sole owner
// of the matrix after this call.
func NewLogLikelihood(m *pwm.Matrix) LogLikelihood {
	return LogLikelihood{m: m}
}

// Score sums log(weight(i, seq[i])) for i up to the shorter of the matrix
// width and the sequence length. Reads shorter than the matrix are scored
// over their available length only.
func (s LogLikelihood) Score(seq []byte) float64 {
	n := s.m.Width()
	if len(seq) < n {
		n = len(seq)
	}

	total := 0.0
	for i := 0; i < n; i++ {
		w := s.m.Weight(i, seq[i])
		if w <= 0 {
			total += logZero
			continue
		}
		total += math.Log(w)
	}
	return total
}
