// Package config holds the settings of the ecghr command and their
// validation.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-ecg/internal/logging"
	"github.com/cwbudde/algo-ecg/internal/recording"
	"github.com/cwbudde/algo-ecg/internal/report"
	"github.com/cwbudde/algo-ecg/measure/heartrate"
)

// ErrInvalidParameter is returned for a setting outside its allowed range.
var ErrInvalidParameter = errors.New("config: invalid parameter")

// Environment variables consulted by ApplyEnv.
const (
	EnvDir      = "ECGHR_DIR"
	EnvOutput   = "ECGHR_OUTPUT"
	EnvLogLevel = "ECGHR_LOG_LEVEL"
)

// Config is the full set of run settings.
type Config struct {
	Dir               string // directory scanned for recordings
	Pattern           string // glob matched inside Dir
	Output            string // report path
	Format            string // report format; empty selects by Output extension
	WindowSeconds     int    // 0 means ask on stdin
	DefaultSampleRate int    // used for files without a sampleRate field
	LowHz             float64
	HighHz            float64
	FilterOrder       int
	LogLevel          string
	Development       bool
}

// Default returns the settings used when nothing is overridden.
func Default() Config {
	return Config{
		Dir:               ".",
		Pattern:           recording.DefaultPattern,
		Output:            report.DefaultOutput,
		DefaultSampleRate: recording.DefaultSampleRate,
		LowHz:             heartrate.DefaultLowHz,
		HighHz:            heartrate.DefaultHighHz,
		FilterOrder:       heartrate.DefaultOrder,
		LogLevel:          "info",
	}
}

// ApplyEnv overrides fields from the environment through lookup, which has
// the signature of os.LookupEnv. Empty values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvDir); ok && v != "" {
		c.Dir = v
	}
	if v, ok := lookup(EnvOutput); ok && v != "" {
		c.Output = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
}

// Validate checks every field. WindowSeconds must already be set.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...)))
	}

	if c.WindowSeconds <= 0 {
		bad("window must be a positive number of seconds, got %d", c.WindowSeconds)
	}
	if c.DefaultSampleRate <= 0 {
		bad("default sample rate must be positive, got %d", c.DefaultSampleRate)
	}
	if !(c.LowHz > 0 && c.LowHz < c.HighHz) {
		bad("band %g-%g Hz is not an increasing positive range", c.LowHz, c.HighHz)
	}
	if c.FilterOrder <= 0 {
		bad("filter order must be positive, got %d", c.FilterOrder)
	}
	if c.Dir == "" {
		bad("input directory is empty")
	}
	if c.Output == "" {
		bad("output path is empty")
	} else if _, err := report.FormatFor(c.Output, c.Format); err != nil {
		bad("%v", err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		bad("%v", err)
	}

	return errors.Join(errs...)
}

// ParseWindowSeconds parses the window duration typed by a user: a positive
// whole number of seconds.
func ParseWindowSeconds(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: window %q is not a whole number of seconds", ErrInvalidParameter, s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: window must be positive, got %d", ErrInvalidParameter, n)
	}
	return n, nil
}
