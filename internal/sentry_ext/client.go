// Package sentry_ext reports errors from tschart binaries to Sentry.
package sentry_ext

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
)

type Params struct {
	// DSN of the Sentry project. Empty disables sending.
	DSN string
	// Release is the application version.
	Release string
	// Environment is e.g. "development" or "production".
	Environment string
	// CacheSize bounds the number of distinct messages tracked for
	// deduplication.
	CacheSize int
	// RecentWindow is how long an identical message is suppressed.
	RecentWindow time.Duration
	// Hub overrides the hub events are sent through. Used in tests.
	Hub *sentry.Hub
}

// Client sends deduplicated events to Sentry.
//
// A nil *Client is valid and drops everything.
type Client struct {
	hub    *sentry.Hub
	recent *recentMessages
}

// New initializes Sentry and returns a client.
//
// Initialization failures are logged, not returned: error reporting must
// never stop the program from starting.
func New(params Params) *Client {
	hub := params.Hub
	if hub == nil {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              params.DSN,
			AttachStacktrace: true,
			Release:          params.Release,
			Environment:      params.Environment,
		}); err != nil {
			slog.Error("sentry_ext: New: failed to initialize sentry", "err", err)
		}
		hub = sentry.CurrentHub()
	}

	recent, err := newRecentMessages(params.CacheSize, params.RecentWindow)
	if err != nil {
		slog.Error("sentry_ext: New: failed to create cache", "err", err)
		return nil
	}

	return &Client{hub: hub, recent: recent}
}

// CaptureException sends err with the given tags unless an identical error
// was sent recently.
func (c *Client) CaptureException(err error, tags map[string]string) {
	if c == nil || err == nil || !c.recent.allow(err.Error()) {
		return
	}

	hub := c.hub.Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
	})
	hub.CaptureException(err)
}

// CaptureMessage sends an informational message with the given tags.
func (c *Client) CaptureMessage(msg string, tags map[string]string) {
	if c == nil || !c.recent.allow(msg) {
		return
	}

	hub := c.hub.Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
	})
	hub.CaptureMessage(msg)
}

// Reraise reports a recovered panic value and panics again with it.
func (c *Client) Reraise(v any, tags map[string]string) {
	if v == nil {
		return
	}

	var err error
	if e, ok := v.(error); ok {
		err = e
	} else {
		err = fmt.Errorf("%v", v)
	}
	c.CaptureException(errors.Join(errors.New("panic"), err), tags)
	c.Flush(2 * time.Second)
	panic(v)
}

// Flush waits for queued events to be sent.
func (c *Client) Flush(timeout time.Duration) bool {
	if c == nil {
		return true
	}
	return c.hub.Flush(timeout)
}
