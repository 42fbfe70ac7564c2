// Package sample selects a weighted random subset of read units from a
// stream of unknown length in one pass, with memory bounded by the sample
// size (Efraimidis–Spirakis reservoir sampling, A-Res variant).
package sample

import (
	"container/heap"
	"fmt"
	"math"
	"math/rand"

	"github.com/COMBINE-lab/piquant/internal/seqio"
)

// UnderProvisionedError reports that fewer units were available than were
// requested. The reduced sample is still produced; callers decide whether
// that fails the run.
type UnderProvisionedError struct {
	Requested int
	Available int
}

func (e *UnderProvisionedError) Error() string {
	return fmt.Sprintf("input did not contain enough reads (%d found, %d required)",
		e.Available, e.Requested)
}

// candidate is a retained unit with its sampling key.
type candidate struct {
	unit *seqio.ReadUnit
	key  float64
}

// candidateHeap is a min-heap ordered by sampling key, so the candidate
// most likely to be evicted is always on top.
type candidateHeap []candidate

func (h candidateHeap) Len() int            { return len(h) }
func (h candidateHeap) Less(i, j int) bool  { return h[i].key < h[j].key }
func (h candidateHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x interface{}) { *h = append(*h, x.(candidate)) }
func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}

// Reservoir holds at most capacity candidates. It owns its heap exclusively
// and is not safe for concurrent use; the pipeline feeding it is sequential.
type Reservoir struct {
	capacity int
	rng      *rand.Rand
	heap     candidateHeap
	seen     int
}

// New returns an empty reservoir of the given capacity drawing its sampling
// keys from rng. A fixed-seed rng makes the whole selection reproducible.
func New(capacity int, rng *rand.Rand) *Reservoir {
	return &Reservoir{
		capacity: capacity,
		rng:      rng,
		heap:     make(candidateHeap, 0, capacity),
	}
}

// Add offers a unit with its log-likelihood score. Inclusion probability
// grows monotonically with the score: the unit's weight is exp(score), and
// its key u^(1/weight) for uniform u in (0,1) competes against the
// reservoir's minimum key.
func (r *Reservoir) Add(unit *seqio.ReadUnit, score float64) {
	r.seen++
	if r.capacity == 0 {
		return
	}

	weight := math.Exp(score)
	if weight < math.SmallestNonzeroFloat64 {
		// scores are floored per position, but a long all-zero-weight
		// prefix can still underflow the exponentiation
		weight = math.SmallestNonzeroFloat64
	}

	u := r.rng.Float64()
	for u == 0 {
		u = r.rng.Float64()
	}
	key := math.Pow(u, 1/weight)

	if len(r.heap) < r.capacity {
		heap.Push(&r.heap, candidate{unit: unit, key: key})
		return
	}
	if key > r.heap[0].key {
		r.heap[0] = candidate{unit: unit, key: key}
		heap.Fix(&r.heap, 0)
	}
}

// Len is the number of candidates currently retained.
func (r *Reservoir) Len() int { return len(r.heap) }

// Seen is the number of units offered so far.
func (r *Reservoir) Seen() int { return r.seen }

// Drain removes and returns the retained units in ascending key order.
// Original stream order is not preserved. The reservoir is empty afterwards.
func (r *Reservoir) Drain() []*seqio.ReadUnit {
	units := make([]*seqio.ReadUnit, 0, len(r.heap))
	for len(r.heap) > 0 {
		c := heap.Pop(&r.heap).(candidate)
		units = append(units, c.unit)
	}
	return units
}
