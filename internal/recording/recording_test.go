package recording

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-ecg/ecg"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDecodeSamples(t *testing.T) {
	// 01 00 00 00 | ff ff ff ff | 04 03 02 01
	got, err := DecodeSamples("AQAAAP////8EAwIB")
	require.NoError(t, err)
	assert.Equal(t, []int32{1, -1, 0x01020304}, got)
	assert.Equal(t, "AQAAAP////8EAwIB", EncodeSamples(got))
}

func TestDecodeSamples_Malformed(t *testing.T) {
	for _, s := range []string{"not base64!", "AQAA"} {
		_, err := DecodeSamples(s)
		assert.ErrorIs(t, err, ErrMalformed, s)
	}
	got, err := DecodeSamples("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-14T09:26:53", time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)},
		{"2025-03-14 09:26:53", time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)},
		{"2025-03-14T09:26:53.250", time.Date(2025, 3, 14, 9, 26, 53, 250e6, time.UTC)},
		{"2025-03-14T09:26:53Z", time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)},
		{"2025-03-14T09:26:53-03:00", time.Date(2025, 3, 14, 12, 26, 53, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseTimestamp(tc.in)
		require.NoError(t, err, tc.in)
		assert.True(t, got.Equal(tc.want), "%s: got %v", tc.in, got)
	}

	_, err := ParseTimestamp("14/03/2025 09:26")
	assert.Error(t, err)
}

func TestDecode_Defaults(t *testing.T) {
	body := `{"timestamp":"2025-03-14T09:26:53","samples_base64":"` + EncodeSamples([]int32{5, 6, 7}) + `"}`
	rec, err := Decode(strings.NewReader(body), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 130, rec.Waveform.SampleRate)
	assert.Equal(t, []int32{5, 6, 7}, rec.Waveform.Samples)
	assert.Equal(t, "2025-03-14T09:26:53", rec.Waveform.Start.Format(TimestampLayout))
	assert.Equal(t, Metadata{MicrovoltsPerDiv: 1000, FilterMode: "none"}, rec.Metadata)
}

func TestDecode_ExplicitFields(t *testing.T) {
	body := `{"timestamp":"2025-03-14T09:26:53","sampleRate":250,"uV_per_div":500,` +
		`"filterMode":"hp0.5","samples_base64":"` + EncodeSamples([]int32{1}) + `"}`
	rec, err := Decode(strings.NewReader(body), Options{DefaultSampleRate: 130})
	require.NoError(t, err)

	assert.Equal(t, 250, rec.Waveform.SampleRate)
	assert.Equal(t, 500.0, rec.Metadata.MicrovoltsPerDiv)
	assert.Equal(t, "hp0.5", rec.Metadata.FilterMode)
}

func TestDecode_OptionDefaultRate(t *testing.T) {
	body := `{"timestamp":"2025-03-14T09:26:53","samples_base64":""}`
	rec, err := Decode(strings.NewReader(body), Options{DefaultSampleRate: 500})
	require.NoError(t, err)
	assert.Equal(t, 500, rec.Waveform.SampleRate)

	rec, err = Decode(strings.NewReader(body), Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultSampleRate, rec.Waveform.SampleRate)
}

func TestDecode_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":        `{`,
		"no timestamp":    `{"samples_base64":""}`,
		"bad timestamp":   `{"timestamp":"yesterday","samples_base64":""}`,
		"bad samples":     `{"timestamp":"2025-03-14T09:26:53","samples_base64":"AQ=="}`,
		"zero rate":       `{"timestamp":"2025-03-14T09:26:53","sampleRate":0,"samples_base64":""}`,
		"negative rate":   `{"timestamp":"2025-03-14T09:26:53","sampleRate":-5,"samples_base64":""}`,
		"wrong rate type": `{"timestamp":"2025-03-14T09:26:53","sampleRate":"fast","samples_base64":""}`,
	}
	for name, body := range cases {
		_, err := Decode(strings.NewReader(body), DefaultOptions())
		assert.ErrorIs(t, err, ErrMalformed, name)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	in := Recording{
		Waveform: ecg.Waveform{
			Start:      time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
			SampleRate: 130,
			Samples:    []int32{-3, 0, 1 << 20},
		},
		Metadata: Metadata{MicrovoltsPerDiv: 1000, FilterMode: "none"},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, in))
	assert.Contains(t, buf.String(), `"timestamp":"2025-03-14T09:26:53"`)

	out, err := Decode(&buf, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, out.Waveform.Start.Equal(in.Waveform.Start))
	assert.Equal(t, in.Waveform.SampleRate, out.Waveform.SampleRate)
	assert.Equal(t, in.Waveform.Samples, out.Waveform.Samples)
	assert.Equal(t, in.Metadata, out.Metadata)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ECG_20250314_0930.json", "{}")
	writeFile(t, dir, "ECG_20250314_0920.json", "{}")
	writeFile(t, dir, "notes.txt", "")
	writeFile(t, dir, "HR_20250314.json", "{}")

	paths, err := Discover(dir, "")
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, "ECG_20250314_0920.json", filepath.Base(paths[0]))
	assert.Equal(t, "ECG_20250314_0930.json", filepath.Base(paths[1]))
}

func TestDiscover_NoInput(t *testing.T) {
	_, err := Discover(t.TempDir(), DefaultPattern)
	assert.ErrorIs(t, err, ErrNoInput)

	_, err = Discover(t.TempDir(), "[")
	assert.Error(t, err)
}

func TestLoadAllAndMerge(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "ECG_1.json",
		`{"timestamp":"2025-03-14T09:26:53","samples_base64":"`+EncodeSamples([]int32{1, 2})+`"}`)
	b := writeFile(t, dir, "ECG_2.json",
		`{"timestamp":"2025-03-14T10:00:00","samples_base64":"`+EncodeSamples([]int32{3})+`"}`)

	recs, err := LoadAll([]string{a, b}, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, a, recs[0].Path)

	wf, err := Merge(recs)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3}, wf.Samples)
	assert.True(t, wf.Start.Equal(recs[0].Waveform.Start))
	assert.Equal(t, 130, wf.SampleRate)
}

func TestMerge_RateMismatch(t *testing.T) {
	recs := []Recording{
		{Waveform: ecg.Waveform{SampleRate: 130, Samples: []int32{1}}},
		{Waveform: ecg.Waveform{SampleRate: 250, Samples: []int32{1}}},
	}
	_, err := Merge(recs)
	assert.ErrorIs(t, err, ecg.ErrSampleRateMismatch)

	_, err = Merge(nil)
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestLoad_ReportsPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ECG_bad.json", `{"timestamp":""}`)

	_, err := LoadAll([]string{path}, DefaultOptions())
	require.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "ECG_bad.json")

	_, err = Load(filepath.Join(dir, "missing.json"), DefaultOptions())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
