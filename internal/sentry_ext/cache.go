package sentry_ext

import (
	"crypto/md5"
	"encoding/hex"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

const (
	defaultRecentWindow = 5 * time.Minute
	defaultCacheSize    = 64
)

// recentMessages remembers when each distinct message was last reported.
type recentMessages struct {
	cache  *lru.Cache
	window time.Duration
	now    func() time.Time
}

func newRecentMessages(size int, window time.Duration) (*recentMessages, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	if window <= 0 {
		window = defaultRecentWindow
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &recentMessages{cache: c, window: window, now: time.Now}, nil
}

// allow reports whether msg may be sent and, if so, records the send time.
//
// A nil receiver allows everything.
func (r *recentMessages) allow(msg string) bool {
	if r == nil {
		return true
	}

	sum := md5.Sum([]byte(msg))
	key := hex.EncodeToString(sum[:])

	now := r.now()
	if last, ok := r.cache.Get(key); ok && now.Sub(last.(time.Time)) < r.window {
		return false
	}
	r.cache.Add(key, now)
	return true
}
