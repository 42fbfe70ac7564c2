// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"
)

// DefaultOutPrefix is prepended to output file names when the user
// doesn't pass one.
const DefaultOutPrefix = "bias"

// Config is the root-level settings struct, populated from command
// line flags bound to Viper.
type Config struct {
	// the number of read units to output
	NumReads int `mapstructure:"num-reads"`

	// path to the PWM file with positional base weights
	PWM string `mapstructure:"pwm"`

	// path to the FASTA/FASTQ reads file (mate 1 in two-file paired mode,
	// or the interleaved pairs file)
	Reads string `mapstructure:"reads"`

	// optional path to the mate 2 file; implies paired-end mode
	Mates string `mapstructure:"mates"`

	// prefix for the output file name(s)
	OutPrefix string `mapstructure:"out-prefix"`

	// whether the input contains paired-end reads
	PairedEnd bool `mapstructure:"paired-end"`

	// seed for the sampling RNG; negative means time-derived
	Seed int64 `mapstructure:"seed"`

	// whether to gzip the output file(s)
	GZip bool `mapstructure:"gzip"`
}

// New returns a Config populated by Viper from command line arguments.
func New() Config {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings into struct, %v", err)
	}
	return c
}
