// Package indicator implements the pure series math the scanner
// evaluates: EMA, ATR, VWAP and a simple rolling mean. All functions
// are stateless and aligned to their input; positions where an
// indicator is undefined carry an explicit unavailable Value rather
// than a NaN sentinel.
package indicator

import (
	"math"

	"scout/internal/md"
)

// Value is a single indicator observation. OK is false where the
// indicator is undefined (rolling window not yet full, zero cumulative
// volume); consumers must branch on it instead of comparing against a
// sentinel.
type Value struct {
	F  float64
	OK bool
}

// Last returns the most recent observation, unavailable for an empty
// series.
func Last(values []Value) Value {
	if len(values) == 0 {
		return Value{}
	}
	return values[len(values)-1]
}

// EMA returns the exponential moving average of series with smoothing
// alpha = 2/(span+1), seeded from the first observation. The output is
// aligned to the input and defined at every position.
func EMA(series []float64, span int) []float64 {
	out := make([]float64, len(series))
	if len(series) == 0 || span <= 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = series[0]
	for i := 1; i < len(series); i++ {
		out[i] = alpha*series[i] + (1.0-alpha)*out[i-1]
	}
	return out
}

// ATR returns the simple rolling mean of true range over window bars.
// True range for the first bar has no prior close and degrades to
// high-low. The first window-1 positions are unavailable.
func ATR(bars md.Series, window int) []Value {
	if bars.Len() == 0 {
		return nil
	}
	tr := make([]float64, bars.Len())
	for i, bar := range bars {
		tr[i] = bar.High - bar.Low
		if i > 0 {
			prevClose := bars[i-1].Close
			tr[i] = math.Max(tr[i], math.Max(
				math.Abs(bar.High-prevClose),
				math.Abs(bar.Low-prevClose),
			))
		}
	}
	return RollingMean(tr, window)
}

// VWAP returns the running volume-weighted average price: cumulative
// close*volume over cumulative volume, reset only at the start of the
// series. Positions with zero cumulative volume are unavailable.
func VWAP(bars md.Series) []Value {
	out := make([]Value, bars.Len())
	var priceVolume, volume float64
	for i, bar := range bars {
		priceVolume += bar.Close * bar.Volume
		volume += bar.Volume
		if volume != 0 {
			out[i] = Value{F: priceVolume / volume, OK: true}
		}
	}
	return out
}

// RollingMean returns the simple rolling mean over window positions.
// The first window-1 positions are unavailable.
func RollingMean(series []float64, window int) []Value {
	out := make([]Value, len(series))
	if window <= 0 {
		return out
	}
	var sum float64
	for i, v := range series {
		sum += v
		if i >= window {
			sum -= series[i-window]
		}
		if i >= window-1 {
			out[i] = Value{F: sum / float64(window), OK: true}
		}
	}
	return out
}
