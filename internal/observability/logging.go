// Package observability provides the structured logger used across tschart.
package observability

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"strconv"

	"github.com/wandb/tschart/internal/sentry_ext"
)

// Tags are key-value pairs attached to Sentry events.
type Tags map[string]string

// NewTags builds Tags from slog-style arguments: slog.Attr values and
// string-key/value pairs. Anything else, and a trailing key without a
// value, is ignored.
func NewTags(args ...any) Tags {
	tags := Tags{}
	for len(args) > 0 {
		switch x := args[0].(type) {
		case slog.Attr:
			tags[x.Key] = x.Value.String()
			args = args[1:]
		case string:
			if len(args) < 2 {
				return tags
			}
			attr := slog.Any(x, args[1])
			tags[attr.Key] = attr.Value.String()
			args = args[2:]
		default:
			args = args[1:]
		}
	}
	return tags
}

const LevelFatal = slog.Level(12)

type CoreLoggerParams struct {
	Sentry *sentry_ext.Client
	Tags   Tags
}

// CoreLogger is a slog.Logger that can also report to Sentry.
type CoreLogger struct {
	*slog.Logger
	baseTags Tags
	sentry   *sentry_ext.Client
}

func NewCoreLogger(logger *slog.Logger, params *CoreLoggerParams) *CoreLogger {
	if params == nil {
		params = &CoreLoggerParams{}
	}

	tags := Tags{}
	var args []any
	for key, value := range params.Tags {
		args = append(args, slog.String(key, value))
		tags[key] = value
	}

	return &CoreLogger{
		Logger:   logger.With(args...),
		baseTags: tags,
		sentry:   params.Sentry,
	}
}

// With returns a derived logger that includes the given attributes.
func (cl *CoreLogger) With(args ...any) *CoreLogger {
	return &CoreLogger{
		Logger:   cl.Logger.With(args...),
		baseTags: cl.baseTags,
		sentry:   cl.sentry,
	}
}

// ForDataset returns a logger whose records and Sentry events name the
// dataset being charted.
func (cl *CoreLogger) ForDataset(name string, series, samples int) *CoreLogger {
	tags := maps.Clone(cl.baseTags)
	if tags == nil {
		tags = Tags{}
	}
	tags["dataset"] = name
	tags["series"] = strconv.Itoa(series)
	tags["samples"] = strconv.Itoa(samples)

	return &CoreLogger{
		Logger: cl.Logger.With(
			slog.String("dataset", name),
			slog.Int("series", series),
			slog.Int("samples", samples),
		),
		baseTags: tags,
		sentry:   cl.sentry,
	}
}

// tagsFor merges args with the base tags; base tags win.
func (cl *CoreLogger) tagsFor(args ...any) Tags {
	tags := NewTags(args...)
	for key, value := range cl.baseTags {
		tags[key] = value
	}
	return tags
}

// CaptureError logs an error and sends it to Sentry.
func (cl *CoreLogger) CaptureError(err error, args ...any) {
	cl.Error(err.Error(), args...)
	cl.sentry.CaptureException(err, cl.tagsFor(args...))
}

// CaptureFatal logs an error at fatal level and sends it to Sentry.
func (cl *CoreLogger) CaptureFatal(err error, args ...any) {
	cl.Log(context.Background(), LevelFatal, err.Error(), args...)
	cl.sentry.CaptureException(err, cl.tagsFor(args...))
}

// CaptureWarn logs a warning and sends it to Sentry.
func (cl *CoreLogger) CaptureWarn(msg string, args ...any) {
	cl.Warn(msg, args...)
	cl.sentry.CaptureMessage(msg, cl.tagsFor(args...))
}

// Reraise reports a panic in progress to Sentry and re-panics.
//
// Must be called directly by defer.
func (cl *CoreLogger) Reraise(args ...any) {
	if v := recover(); v != nil {
		cl.Error("panic", "value", v)
		cl.sentry.Reraise(v, cl.tagsFor(args...))
	}
}

// NewNoOpLogger returns a logger that discards all messages.
func NewNoOpLogger() *CoreLogger {
	return NewCoreLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)), nil)
}
