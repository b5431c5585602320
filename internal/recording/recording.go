// Package recording reads the JSON files written by chest-strap ECG monitor
// apps: one file per capture, each carrying a start timestamp, the sample
// rate and the raw samples as base64-encoded little-endian int32.
package recording

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cwbudde/algo-ecg/ecg"
)

// Defaults applied to fields missing from a file.
const (
	DefaultSampleRate       = 130
	DefaultMicrovoltsPerDiv = 1000
	DefaultFilterMode       = "none"
	DefaultPattern          = "ECG_*.json"
)

// TimestampLayout is the wall-clock layout used by the monitor and by the
// heart-rate report.
const TimestampLayout = "2006-01-02T15:04:05"

var (
	// ErrNoInput is returned when a directory holds no matching recordings.
	ErrNoInput = errors.New("recording: no input files")

	// ErrMalformed marks a file that cannot be decoded.
	ErrMalformed = errors.New("recording: malformed file")
)

// Metadata carries the display parameters stored next to the samples.
type Metadata struct {
	MicrovoltsPerDiv float64
	FilterMode       string
}

// Recording is one decoded file.
type Recording struct {
	Path     string
	Waveform ecg.Waveform
	Metadata Metadata
}

// Options controls decoding.
type Options struct {
	// DefaultSampleRate is used when a file has no sampleRate field.
	DefaultSampleRate int
}

// DefaultOptions returns the options matching the monitor's defaults.
func DefaultOptions() Options {
	return Options{DefaultSampleRate: DefaultSampleRate}
}

type fileFormat struct {
	Timestamp        string   `json:"timestamp"`
	SampleRate       *int     `json:"sampleRate,omitempty"`
	MicrovoltsPerDiv *float64 `json:"uV_per_div,omitempty"`
	FilterMode       *string  `json:"filterMode,omitempty"`
	SamplesBase64    string   `json:"samples_base64"`
}

// Decode reads one recording from r.
func Decode(r io.Reader, opts Options) (Recording, error) {
	var f fileFormat
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return Recording{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if f.Timestamp == "" {
		return Recording{}, fmt.Errorf("%w: missing timestamp", ErrMalformed)
	}

	start, err := ParseTimestamp(f.Timestamp)
	if err != nil {
		return Recording{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	samples, err := DecodeSamples(f.SamplesBase64)
	if err != nil {
		return Recording{}, err
	}

	rate := opts.DefaultSampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	if f.SampleRate != nil {
		rate = *f.SampleRate
	}

	rec := Recording{
		Waveform: ecg.Waveform{Start: start, SampleRate: rate, Samples: samples},
		Metadata: Metadata{MicrovoltsPerDiv: DefaultMicrovoltsPerDiv, FilterMode: DefaultFilterMode},
	}
	if f.MicrovoltsPerDiv != nil {
		rec.Metadata.MicrovoltsPerDiv = *f.MicrovoltsPerDiv
	}
	if f.FilterMode != nil {
		rec.Metadata.FilterMode = *f.FilterMode
	}

	if err := rec.Waveform.Validate(); err != nil {
		return Recording{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return rec, nil
}

// Encode writes rec in the monitor's file format.
func Encode(w io.Writer, rec Recording) error {
	rate := rec.Waveform.SampleRate
	mode := rec.Metadata.FilterMode
	uv := rec.Metadata.MicrovoltsPerDiv

	f := fileFormat{
		Timestamp:        rec.Waveform.Start.Format(TimestampLayout),
		SampleRate:       &rate,
		MicrovoltsPerDiv: &uv,
		FilterMode:       &mode,
		SamplesBase64:    EncodeSamples(rec.Waveform.Samples),
	}

	return json.NewEncoder(w).Encode(f)
}

// Load decodes the recording stored at path.
func Load(path string, opts Options) (Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return Recording{}, err
	}
	defer f.Close()

	rec, err := Decode(f, opts)
	if err != nil {
		return Recording{}, fmt.Errorf("%s: %w", path, err)
	}
	rec.Path = path

	return rec, nil
}

// Discover returns the files in dir matching pattern, sorted by name. The
// monitor names files by capture time, so name order is time order.
func Discover(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}

	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrNoInput, pattern, dir)
	}

	sort.Strings(paths)
	return paths, nil
}

// LoadAll loads every path in order. The first failure aborts the load.
func LoadAll(paths []string, opts Options) ([]Recording, error) {
	if len(paths) == 0 {
		return nil, ErrNoInput
	}

	recs := make([]Recording, 0, len(paths))
	for _, p := range paths {
		rec, err := Load(p, opts)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, nil
}

// Merge concatenates the waveforms of recs into one timeline starting at
// the first recording's timestamp.
func Merge(recs []Recording) (ecg.Waveform, error) {
	if len(recs) == 0 {
		return ecg.Waveform{}, ErrNoInput
	}

	parts := make([]ecg.Waveform, len(recs))
	for i, r := range recs {
		parts[i] = r.Waveform
	}

	wf, err := ecg.Concat(parts...)
	if err != nil {
		return ecg.Waveform{}, err
	}

	return wf, nil
}

// DecodeSamples decodes base64 into packed little-endian int32 samples.
func DecodeSamples(s string) ([]int32, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: samples: %w", ErrMalformed, err)
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("%w: samples: %d bytes is not a whole number of int32", ErrMalformed, len(raw))
	}

	out := make([]int32, len(raw)/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(raw[4*i:]))
	}

	return out, nil
}

// EncodeSamples is the inverse of DecodeSamples.
func EncodeSamples(samples []int32) string {
	raw := make([]byte, 4*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint32(raw[4*i:], uint32(v))
	}
	return base64.StdEncoding.EncodeToString(raw)
}

var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp accepts ISO 8601 date-times with a 'T' or space separator,
// optional fractional seconds and an optional zone offset. Timestamps
// without a zone are returned as wall-clock time in UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
