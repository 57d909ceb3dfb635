package cache

import (
	"context"
	"time"
)

// Noop is used when Redis is disabled or unreachable. Every read is a miss
// and counters never grow, so throttling is effectively off.
type Noop struct{}

func NewNoop() Cache { return Noop{} }

func (Noop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (Noop) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (Noop) Delete(context.Context, ...string) error { return nil }

func (Noop) Ping(context.Context) error { return nil }

func (Noop) Increment(context.Context, string, time.Duration) (int64, error) { return 0, nil }
