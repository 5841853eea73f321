package cache

import (
	"context"
	"time"
)

// AnalyticsCache holds read-only report results. It is never used for item
// quantities, which must always be read from storage.
type AnalyticsCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

const AnalyticsPrefix = "analytics:"

type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (Noop) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (Noop) InvalidatePrefix(context.Context, string) error { return nil }
