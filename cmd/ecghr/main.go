// Command ecghr extracts a heart-rate series from ECG recordings.
//
// It reads every ECG_*.json file in a directory, joins them into one
// continuous trace, estimates the average heart rate over consecutive
// fixed-length windows and writes one "timestamp,bpm" record per window.
//
// Usage:
//
//	ecghr [flags]
//
// Without -window the duration is asked for on stdin.
//
// Examples:
//
//	ecghr -window 10
//	ecghr -dir ./captures -window 30 -out rates.xlsx
//	ecghr -window 60 -format parquet -out rates.parquet -log-level debug
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-ecg/internal/config"
	"github.com/cwbudde/algo-ecg/internal/logging"
	"github.com/cwbudde/algo-ecg/internal/recording"
	"github.com/cwbudde/algo-ecg/internal/report"
	"github.com/cwbudde/algo-ecg/measure/heartrate"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.LookupEnv)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, lookupEnv func(string) (string, bool)) int {
	cfg, prompt, err := parseConfig(args, stderr, lookupEnv)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if prompt {
		cfg.WindowSeconds, err = promptWindow(stdin, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	runID := uuid.NewString()
	logger, err := logging.New(
		logging.WithLevel(cfg.LogLevel),
		logging.WithDevelopment(cfg.Development),
		logging.WithFields(map[string]any{"run_id": runID}),
	)
	if err != nil {
		fmt.Fprintf(stderr, "error: logger: %v\n", err)
		return 1
	}
	defer logging.Sync(logger)

	if err := process(ctx, cfg, logger); err != nil {
		logger.Error("run failed", zap.Error(err))
		return 1
	}

	return 0
}

// parseConfig reports prompt=true when -window was not given.
func parseConfig(args []string, stderr io.Writer, lookupEnv func(string) (string, bool)) (cfg config.Config, prompt bool, err error) {
	cfg = config.Default()
	cfg.ApplyEnv(lookupEnv)

	fs := flag.NewFlagSet("ecghr", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "directory holding the recordings (env "+config.EnvDir+")")
	fs.StringVar(&cfg.Pattern, "pattern", cfg.Pattern, "glob of recording file names inside -dir")
	fs.IntVar(&cfg.WindowSeconds, "window", 0, "window length in seconds between records (prompted when unset)")
	fs.StringVar(&cfg.Output, "out", cfg.Output, "report file (env "+config.EnvOutput+")")
	fs.StringVar(&cfg.Format, "format", "", "report format: csv, parquet or xlsx (default: from -out extension)")
	fs.IntVar(&cfg.DefaultSampleRate, "rate", cfg.DefaultSampleRate, "sample rate in Hz for files that do not state one")
	fs.Float64Var(&cfg.LowHz, "low", cfg.LowHz, "band-pass lower edge in Hz")
	fs.Float64Var(&cfg.HighHz, "high", cfg.HighHz, "band-pass upper edge in Hz")
	fs.IntVar(&cfg.FilterOrder, "order", cfg.FilterOrder, "Butterworth prototype order")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error (env "+config.EnvLogLevel+")")
	fs.BoolVar(&cfg.Development, "dev", false, "human-readable log output")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ecghr [flags]\n\n")
		fmt.Fprintf(stderr, "Estimates the heart rate over fixed windows of ECG recordings.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  ecghr -window 10\n")
		fmt.Fprintf(stderr, "  ecghr -dir ./captures -window 30 -out rates.xlsx\n")
	}

	if err := fs.Parse(args); err != nil {
		return cfg, false, err
	}
	if fs.NArg() > 0 {
		return cfg, false, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	prompt = true
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "window" {
			prompt = false
		}
	})

	return cfg, prompt, nil
}

func promptWindow(stdin io.Reader, stdout io.Writer) (int, error) {
	fmt.Fprint(stdout, "Window length between records, in seconds: ")

	sc := bufio.NewScanner(stdin)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w: no window length given", config.ErrInvalidParameter)
	}

	return config.ParseWindowSeconds(sc.Text())
}

func process(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	format, err := report.FormatFor(cfg.Output, cfg.Format)
	if err != nil {
		return err
	}

	paths, err := recording.Discover(cfg.Dir, cfg.Pattern)
	if errors.Is(err, recording.ErrNoInput) {
		logger.Warn("no recordings found", zap.String("dir", cfg.Dir), zap.String("pattern", cfg.Pattern))
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("loading recordings", zap.Int("files", len(paths)), zap.String("dir", cfg.Dir))

	recs, err := recording.LoadAll(paths, recording.Options{DefaultSampleRate: cfg.DefaultSampleRate})
	if err != nil {
		return err
	}
	for _, r := range recs {
		logger.Debug("recording loaded",
			zap.String("path", r.Path),
			zap.Time("start", r.Waveform.Start),
			zap.Int("sample_rate", r.Waveform.SampleRate),
			zap.Int("samples", r.Waveform.Len()),
			zap.Float64("uv_per_div", r.Metadata.MicrovoltsPerDiv),
			zap.String("filter_mode", r.Metadata.FilterMode),
		)
	}

	wf, err := recording.Merge(recs)
	if err != nil {
		return err
	}
	logger.Info("recordings joined",
		zap.Int("samples", wf.Len()),
		zap.Float64("seconds", wf.Duration().Seconds()),
		zap.Int("sample_rate", wf.SampleRate),
		zap.Int("window_seconds", cfg.WindowSeconds),
	)

	driver := heartrate.NewDriver(
		heartrate.WithEstimator(heartrate.NewEstimator(
			heartrate.WithBand(cfg.LowHz, cfg.HighHz),
			heartrate.WithOrder(cfg.FilterOrder),
		)),
		heartrate.WithObserver(windowLogger(logger)),
	)

	series, err := driver.ProcessWindowsContext(ctx, wf, float64(cfg.WindowSeconds), wf.Start)
	if err != nil {
		return err
	}

	if len(series) == 0 {
		logger.Warn("no heart rate extracted")
		return nil
	}

	if err := report.WriteFile(cfg.Output, format, series); err != nil {
		return err
	}
	logger.Info("report written",
		zap.String("path", cfg.Output),
		zap.String("format", string(format)),
		zap.Int("records", len(series)),
	)

	return nil
}

func windowLogger(logger *zap.Logger) heartrate.Observer {
	return func(r heartrate.WindowReport) {
		fields := []zap.Field{
			zap.Int("window", r.Index),
			zap.String("start", r.Start.Format(recording.TimestampLayout)),
			zap.Int("samples", r.Length),
		}
		if r.Err != nil {
			logger.Warn("heart rate undetermined", append(fields,
				zap.Stringer("status", r.Status),
				zap.Error(r.Err),
				zap.Float64("range", r.Signal.Range),
				zap.Float64("rms", r.Signal.RMS),
				zap.Bool("flat", r.Signal.Flat(0)),
				zap.Bool("ecg_like", r.Signal.ECGLike()),
			)...)
			return
		}
		logger.Info("heart rate", append(fields,
			zap.Int("bpm", r.Estimate.BPM),
			zap.Int("peaks", len(r.Estimate.Peaks)),
			zap.Float64("mean_rr", r.Estimate.MeanRR),
			zap.Float64("std_rr", r.Estimate.StdRR),
		)...)
	}
}
