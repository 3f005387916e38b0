// Package session holds the state shared by every tschart command: the
// filesystem, the logger and error reporting, and renderer metrics.
package session

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/wandb/tschart/cmd/tschart/root/version"
	"github.com/wandb/tschart/internal/chart"
	"github.com/wandb/tschart/internal/dataset"
	"github.com/wandb/tschart/internal/observability"
	"github.com/wandb/tschart/internal/sentry_ext"
)

const (
	KeyDebug     = "debug"
	KeyLogFile   = "log-file"
	KeySentryDSN = "sentry-dsn"

	DefaultLogFile = "tschart.debug.log"

	// stderrLogFile sends the debug log to stderr.
	stderrLogFile = "-"

	sentryFlushTimeout = 2 * time.Second
)

type Params struct {
	// Fs defaults to the OS filesystem.
	Fs afero.Fs

	// Stderr is where a "-" debug log goes. Nil means the terminal is
	// owned by the caller and the log falls back to DefaultLogFile.
	Stderr io.Writer
}

type Session struct {
	Fs       afero.Fs
	Logger   *observability.CoreLogger
	Registry *prometheus.Registry
	Metrics  *chart.Metrics

	sentry  *sentry_ext.Client
	logFile io.Closer
}

// Start sets up logging, error reporting and metrics from the viper
// settings. Close must be called when the command finishes.
func Start(params Params) (*Session, error) {
	fs := params.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	s := &Session{
		Fs: fs,
		sentry: sentry_ext.New(sentry_ext.Params{
			DSN:         viper.GetString(KeySentryDSN),
			Release:     version.Version,
			Environment: "production",
		}),
	}

	handler, err := s.logHandler(params.Stderr)
	if err != nil {
		return nil, err
	}

	s.Logger = observability.NewCoreLogger(
		slog.New(handler),
		&observability.CoreLoggerParams{
			Tags: observability.Tags{
				"version": version.Version,
				"session": uuid.NewString(),
			},
			Sentry: s.sentry,
		},
	)

	s.Registry = prometheus.NewRegistry()
	s.Metrics, err = chart.NewMetrics(s.Registry)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("session: metrics: %v", err)
	}

	return s, nil
}

func (s *Session) logHandler(stderr io.Writer) (slog.Handler, error) {
	if !viper.GetBool(KeyDebug) {
		return slog.NewJSONHandler(io.Discard, nil), nil
	}

	path := viper.GetString(KeyLogFile)
	if path == stderrLogFile && stderr != nil {
		return charmlog.NewWithOptions(stderr, charmlog.Options{
			Level:           charmlog.DebugLevel,
			ReportTimestamp: true,
			Prefix:          "tschart",
		}), nil
	}
	if path == "" || path == stderrLogFile {
		path = DefaultLogFile
	}

	f, err := s.Fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("session: open log: %w", err)
	}
	s.logFile = f

	return slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}), nil
}

// Close logs the final metrics, flushes Sentry and closes the log file.
func (s *Session) Close() {
	if s.Registry != nil {
		s.logMetrics()
	}
	s.sentry.Flush(sentryFlushTimeout)
	if s.logFile != nil {
		_ = s.logFile.Close()
		s.logFile = nil
	}
}

// LoadDataset reads the dataset named by args, or the built-in sample.
// It also returns a title for display. Later records from s.Logger carry
// the dataset's name and shape.
func (s *Session) LoadDataset(args []string) (*dataset.Dataset, string, error) {
	if len(args) == 0 {
		ds := dataset.Sample()
		s.Logger = s.Logger.ForDataset("sample", len(ds.Lines()), ds.SampleCount())
		return ds, "sample", nil
	}
	ds, err := dataset.Load(s.Fs, args[0])
	if err != nil {
		return nil, "", err
	}
	s.Logger = s.Logger.ForDataset(args[0], len(ds.Lines()), ds.SampleCount())
	return ds, args[0], nil
}

func (s *Session) logMetrics() {
	families, err := s.Registry.Gather()
	if err != nil {
		s.Logger.Warn("session: gather metrics", "err", err)
		return
	}

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				s.Logger.Debug("metric", "name", mf.GetName(), "value", m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				s.Logger.Debug("metric",
					"name", mf.GetName(),
					"count", m.GetHistogram().GetSampleCount(),
					"sum", m.GetHistogram().GetSampleSum())
			}
		}
	}
}
