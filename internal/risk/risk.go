// Package risk gates detector consensus and converts volatility into a
// fixed-fraction position size.
package risk

import (
	"fmt"
	"math"

	"scout/internal/indicator"
	"scout/internal/md"
	"scout/internal/signal"
)

const atrWindow = 14

// minStopIncrement floors the sizing divisor so a near-zero stop
// cannot blow the position up toward infinity.
const minStopIncrement = 0.01

// Gate applies the minimum-consensus threshold to a detector report.
type Gate struct {
	MinConsensus int
}

// Evaluate returns nil when enough detectors agree, otherwise an error
// carrying the rejection reason.
func (g Gate) Evaluate(report signal.Report) error {
	if count := report.Count(); count < g.MinConsensus {
		return fmt.Errorf("consensus %d below minimum %d", count, g.MinConsensus)
	}
	return nil
}

// Sizer computes stop distances and share counts under a fixed
// fractional risk budget.
type Sizer struct {
	Equity       float64
	RiskFraction float64
	ATRMult      float64
}

// Budget returns the dollar risk allocated to one trade.
func (s Sizer) Budget() float64 {
	return s.Equity * s.RiskFraction
}

// StopDistance derives the stop from the latest ATR(14) of the series.
// ok is false when the ATR is unavailable.
func (s Sizer) StopDistance(bars md.Series) (float64, bool) {
	atr := indicator.Last(indicator.ATR(bars, atrWindow))
	if !atr.OK {
		return 0, false
	}
	return atr.F * s.ATRMult, true
}

// Shares returns the position size for a stop distance:
// floor(budget / max(stopDist, $0.01)). ok is false when the candidate
// must be suppressed: an invalid stop or a size that floors to zero.
// A suppressed candidate yields no decision at all, never a zero-size
// record.
func (s Sizer) Shares(stopDist float64) (int, bool) {
	if math.IsNaN(stopDist) || stopDist <= 0 {
		return 0, false
	}
	shares := int(math.Floor(s.Budget() / math.Max(minStopIncrement, stopDist)))
	if shares <= 0 {
		return 0, false
	}
	return shares, true
}
