// Package regime classifies whether an instrument is currently in a
// volatility/trend state worth evaluating signals against.
package regime

import (
	"math"

	"scout/internal/indicator"
	"scout/internal/md"
)

const (
	minHistory = 200
	trendSpan  = 200
	atrWindow  = 14

	// ATR as a fraction of price must sit in [volFloor, volCeil):
	// below is a dead instrument, at or above is too violent to size.
	volFloor = 0.005
	volCeil  = 0.08
)

// Tradeable reports whether the series is in a tradeable regime: latest
// close above its 200-period EMA and ATR(14) between 0.5% and 8% of
// price. Fewer than 200 bars is a normal "not tradeable", never an
// error. Pure function of the input.
func Tradeable(bars md.Series) bool {
	if bars.Len() < minHistory {
		return false
	}

	closes := bars.Closes()
	last := closes[len(closes)-1]
	ema := indicator.EMA(closes, trendSpan)
	if last <= ema[len(ema)-1] {
		return false
	}

	atr := indicator.Last(indicator.ATR(bars, atrWindow))
	if !atr.OK {
		return false
	}
	volPct := atr.F / math.Max(1e-9, last)
	return volPct >= volFloor && volPct < volCeil
}
