package heartrate

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// DefaultMinSeconds is the shortest stretch of signal an Estimator accepts.
const DefaultMinSeconds = 2.0

// Config holds the tunable parameters of an Estimator.
type Config struct {
	LowHz            float64 // band-pass lower -3 dB edge
	HighHz           float64 // band-pass upper -3 dB edge
	Order            int     // Butterworth prototype order
	SmoothingSeconds float64 // moving-average span
	MinRRSeconds     float64 // minimum spacing between peaks
	PeakHeightRatio  float64 // minimum peak height relative to the envelope maximum
	MinSeconds       float64 // minimum signal duration before filtering is attempted
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the parameters of the reference QRS detector.
func DefaultConfig() Config {
	return Config{
		LowHz:            DefaultLowHz,
		HighHz:           DefaultHighHz,
		Order:            DefaultOrder,
		SmoothingSeconds: DefaultSmoothingSeconds,
		MinRRSeconds:     DefaultMinRRSeconds,
		PeakHeightRatio:  DefaultPeakHeightRatio,
		MinSeconds:       DefaultMinSeconds,
	}
}

// WithBand sets the band-pass edges in Hz.
func WithBand(lowHz, highHz float64) Option {
	return func(cfg *Config) {
		cfg.LowHz = lowHz
		cfg.HighHz = highHz
	}
}

// WithOrder sets the Butterworth prototype order.
func WithOrder(order int) Option {
	return func(cfg *Config) {
		if order > 0 {
			cfg.Order = order
		}
	}
}

// WithMinSeconds sets the minimum signal duration.
func WithMinSeconds(seconds float64) Option {
	return func(cfg *Config) {
		if seconds >= 0 {
			cfg.MinSeconds = seconds
		}
	}
}

// Estimate is the outcome of one successful heart-rate estimate.
type Estimate struct {
	BPM    int
	Peaks  []int   // envelope indices of the detected QRS complexes
	MeanRR float64 // seconds
	StdRR  float64 // seconds, sample standard deviation (0 for a single interval)
}

// Estimator runs the QRS detection chain over a stretch of ECG.
type Estimator struct {
	cfg Config
}

// NewEstimator returns an Estimator using DefaultConfig modified by opts.
func NewEstimator(opts ...Option) *Estimator {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Estimator{cfg: cfg}
}

// Config returns the effective parameters.
func (e *Estimator) Config() Config { return e.cfg }

// Estimate returns the average heart rate over samples.
//
// Signals shorter than MinSeconds are rejected with ErrWindowTooShort before
// the filter runs. Filter failures wrap ErrFilter; fewer than two detected
// peaks yield ErrTooFewPeaks.
func (e *Estimator) Estimate(samples []float64, sampleRate int) (Estimate, error) {
	if sampleRate <= 0 {
		return Estimate{}, fmt.Errorf("%w: sample rate %d", ErrInvalidParameter, sampleRate)
	}

	need := e.cfg.MinSeconds * float64(sampleRate)
	if float64(len(samples)) < need {
		return Estimate{}, fmt.Errorf("%w: %d samples, need %.0f", ErrWindowTooShort, len(samples), need)
	}

	filtered, err := Bandpass(samples, sampleRate, e.cfg.LowHz, e.cfg.HighHz, e.cfg.Order)
	if err != nil {
		return Estimate{}, err
	}

	envelope := enhance(filtered, SmoothingWidth(e.cfg.SmoothingSeconds, sampleRate))

	found := detectPeaks(envelope,
		MinPeakDistance(e.cfg.MinRRSeconds, sampleRate),
		e.cfg.PeakHeightRatio,
	)

	bpm, err := EstimateRate(found, sampleRate)
	if err != nil {
		return Estimate{}, err
	}

	rr := RRIntervals(found, sampleRate)
	est := Estimate{
		BPM:    bpm,
		Peaks:  found,
		MeanRR: stat.Mean(rr, nil),
	}
	if len(rr) > 1 {
		est.StdRR = stat.StdDev(rr, nil)
	}

	return est, nil
}
