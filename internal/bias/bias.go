// Package bias scores sequenced reads against a position weight matrix and
// selects a weighted random subset, skewing the output's 5' nucleotide
// composition toward the matrix the way sequencing-protocol bias would.
package bias

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/COMBINE-lab/piquant/config"
	"github.com/COMBINE-lab/piquant/internal/pwm"
	"github.com/COMBINE-lab/piquant/internal/sample"
	"github.com/COMBINE-lab/piquant/internal/seqio"
)

// Run executes the full pipeline: load the PWM, stream read units, score
// each unit's first mate, keep a weighted reservoir of num-reads candidates,
// and write the retained units in the input's format.
//
// If the stream holds fewer units than requested the reduced output is still
// written and a *sample.UnderProvisionedError is returned so the caller can
// exit non-zero.
func Run(c config.Config, log *logrus.Logger) error {
	if c.NumReads < 0 {
		return fmt.Errorf("number of reads must be non-negative, got %d", c.NumReads)
	}

	log.Infof("reading PWM file %s", c.PWM)
	matrix, err := pwm.Load(c.PWM)
	if err != nil {
		return err
	}
	log.Debugf("PWM covers %d positions", matrix.Width())
	scorer := NewLogLikelihood(matrix)

	paired := c.PairedEnd || c.Mates != ""
	stream, err := seqio.Open(c.Reads, c.Mates, paired)
	if err != nil {
		return err
	}
	defer stream.Close()

	seed := c.Seed
	if seed < 0 {
		seed = time.Now().UnixNano()
		log.Debugf("using time-derived seed %d", seed)
	}
	rng := rand.New(rand.NewSource(seed))
	reservoir := sample.New(c.NumReads, rng)

	log.Info("scoring reads according to PWM")
	bar := newProgress(log.IsLevelEnabled(logrus.InfoLevel))
	for {
		unit, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		// mate 1 carries the biased 5' signal in paired mode
		reservoir.Add(unit, scorer.Score(unit.Mate1.Seq.Seq))
		bar.increment()
	}
	bar.finish()
	log.Infof("scored %d read units, detected format %s", reservoir.Seen(), stream.Format())

	log.Info("writing selected reads to output files")
	writer, err := seqio.NewWriter(c.OutPrefix, stream.Format(), paired, c.GZip)
	if err != nil {
		return err
	}

	selected := reservoir.Drain()
	for _, unit := range selected {
		if err := writer.Write(unit); err != nil {
			writer.Close()
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}
	log.Infof("wrote %d read units to %v", len(selected), writer.Paths())

	if reservoir.Seen() < c.NumReads {
		return &sample.UnderProvisionedError{
			Requested: c.NumReads,
			Available: reservoir.Seen(),
		}
	}
	return nil
}
