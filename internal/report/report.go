// Package report writes heart-rate series to disk as CSV, Parquet or XLSX.
// Every format carries the same two columns, the window timestamp in
// YYYY-MM-DDTHH:MM:SS form and the rate in whole beats per minute.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	parquet "github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"

	"github.com/cwbudde/algo-ecg/ecg"
	"github.com/cwbudde/algo-ecg/internal/recording"
)

// Format selects the output encoding.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
	FormatXLSX    Format = "xlsx"
)

// DefaultOutput is the file written when no output path is given.
const DefaultOutput = "heart_rate.csv"

// SheetName is the worksheet that holds the series in XLSX output.
const SheetName = "HeartRate"

// ErrUnknownFormat is returned for a format name or extension that has no writer.
var ErrUnknownFormat = errors.New("report: unknown output format")

// ParseFormat maps a name such as "csv" or "XLSX" to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatParquet, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFor picks the format for path. A non-empty explicit name wins;
// otherwise the file extension decides, and paths without one get CSV.
func FormatFor(path, explicit string) (Format, error) {
	if explicit != "" {
		return ParseFormat(explicit)
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return FormatCSV, nil
	}
	return ParseFormat(ext)
}

// Row is one record of the series in its on-disk form.
type Row struct {
	Timestamp string `parquet:"timestamp"`
	BPM       int32  `parquet:"bpm"`
}

// Rows converts a series to Rows, formatting times as wall-clock seconds.
func Rows(series []ecg.RateSample) []Row {
	rows := make([]Row, len(series))
	for i, s := range series {
		rows[i] = Row{
			Timestamp: s.Time.Format(recording.TimestampLayout),
			BPM:       int32(s.BPM),
		}
	}
	return rows
}

// Write encodes series to w in format f.
func Write(w io.Writer, f Format, series []ecg.RateSample) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, series)
	case FormatParquet:
		return WriteParquet(w, series)
	case FormatXLSX:
		return WriteXLSX(w, series)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

// WriteFile creates path (truncating any existing file) and writes series
// to it in format f.
func WriteFile(path string, f Format, series []ecg.RateSample) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("report: %w", cerr)
		}
	}()

	return Write(out, f, series)
}

// WriteCSV writes "timestamp,bpm" lines without a header.
func WriteCSV(w io.Writer, series []ecg.RateSample) error {
	cw := csv.NewWriter(w)
	for _, r := range Rows(series) {
		if err := cw.Write([]string{r.Timestamp, strconv.Itoa(int(r.BPM))}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteParquet writes the series as a Snappy-compressed Parquet file with
// columns timestamp and bpm.
func WriteParquet(w io.Writer, series []ecg.RateSample) error {
	pw := parquet.NewGenericWriter[Row](w, parquet.Compression(&parquet.Snappy))
	if _, err := pw.Write(Rows(series)); err != nil {
		return err
	}
	return pw.Close()
}

// WriteXLSX writes the series to the HeartRate sheet of a new workbook, one
// row per sample starting at A1.
func WriteXLSX(w io.Writer, series []ecg.RateSample) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "A", "A", 20); err != nil {
		return err
	}

	for i, r := range Rows(series) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &[]any{r.Timestamp, int(r.BPM)}); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}
