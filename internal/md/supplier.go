package md

import (
	"context"
	"time"
)

// Supplier hands back recent bars for one symbol at one granularity.
// Implementations may return an empty series when nothing is available;
// callers must tolerate empty and undersized results.
type Supplier interface {
	Bars(ctx context.Context, symbol string, tf Timeframe, lookback time.Duration) (Series, error)
}
