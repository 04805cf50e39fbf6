package md

import (
	"math"
	"time"
)

// Bar is one OHLCV observation for a symbol at a sampling granularity.
type Bar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// Series is a time-ascending run of bars for a single symbol.
type Series []Bar

// Timeframe selects the sampling granularity of a fetched series.
type Timeframe int

const (
	// Intraday is the fine granularity the detectors evaluate (5-minute bars).
	Intraday Timeframe = iota
	// Daily is the coarse granularity used by the breakout detector.
	Daily
)

func (s Series) Len() int { return len(s) }

// Last returns the most recent bar; ok is false for an empty series.
func (s Series) Last() (Bar, bool) {
	if len(s) == 0 {
		return Bar{}, false
	}
	return s[len(s)-1], true
}

// Closes returns the close column aligned to the series.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, bar := range s {
		out[i] = bar.Close
	}
	return out
}

// Volumes returns the volume column aligned to the series.
func (s Series) Volumes() []float64 {
	out := make([]float64, len(s))
	for i, bar := range s {
		out[i] = bar.Volume
	}
	return out
}

// Clean drops bars carrying NaN or infinite fields. Feeds backfill
// partial rows around halts; a single bad row would otherwise poison
// every rolling window downstream.
func (s Series) Clean() Series {
	out := make(Series, 0, len(s))
	for _, bar := range s {
		if badField(bar.Open) || badField(bar.High) || badField(bar.Low) ||
			badField(bar.Close) || badField(bar.Volume) {
			continue
		}
		out = append(out, bar)
	}
	return out
}

func badField(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
