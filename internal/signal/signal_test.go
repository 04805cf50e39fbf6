package signal

import (
	"testing"

	"scout/internal/md"
)

func flowBars(n int, close, volume float64) md.Series {
	series := make(md.Series, n)
	for i := range series {
		series[i] = md.Bar{Open: close, High: close, Low: close, Close: close, Volume: volume}
	}
	return series
}

func TestFlowRequiresMinimumBars(t *testing.T) {
	bars := flowBars(20, 100, 1000)
	if (Flow{VolMult: 3}).Detect(bars) {
		t.Fatalf("expected false below 21 bars")
	}
}

func TestFlowFiresOnSurgeAboveVWAP(t *testing.T) {
	bars := flowBars(25, 100, 1000)
	bars[len(bars)-1] = md.Bar{Open: 100, High: 101, Low: 100, Close: 101, Volume: 5000}

	// Window mean = (19*1000 + 5000)/20 = 1200; 5000 >= 3*1200 and the
	// running VWAP stays below the 101 close.
	if !(Flow{VolMult: 3}).Detect(bars) {
		t.Fatalf("expected flow detector to fire")
	}
}

func TestFlowVolumeBoundaryIsInclusive(t *testing.T) {
	bars := flowBars(25, 100, 1700)
	// Window mean = (19*1700 + 5700)/20 = 1900, so the surge threshold
	// lands exactly on 3*1900 = 5700.
	bars[len(bars)-1] = md.Bar{Open: 100, High: 101, Low: 100, Close: 101, Volume: 5700}
	if !(Flow{VolMult: 3}).Detect(bars) {
		t.Fatalf("expected true at exactly multiplier*mean")
	}

	bars[len(bars)-1].Volume = 5699
	if (Flow{VolMult: 3}).Detect(bars) {
		t.Fatalf("expected false one unit below multiplier*mean")
	}
}

func TestFlowNeedsCloseAboveVWAP(t *testing.T) {
	bars := flowBars(25, 100, 1000)
	// Heavy volume but price below the running VWAP.
	bars[len(bars)-1] = md.Bar{Open: 100, High: 100, Low: 99, Close: 99, Volume: 5000}
	if (Flow{VolMult: 3}).Detect(bars) {
		t.Fatalf("expected false with close below VWAP")
	}
}

func TestFlowUnavailableVWAPReadsFalse(t *testing.T) {
	bars := flowBars(25, 100, 0)
	bars[len(bars)-1].Volume = 0
	if (Flow{VolMult: 3}).Detect(bars) {
		t.Fatalf("expected false when VWAP is unavailable")
	}
}

func TestBreakoutNeedsDailyHistory(t *testing.T) {
	fine := flowBars(5, 102, 1000)

	if (Breakout{}).Detect(fine, nil) {
		t.Fatalf("expected false with missing daily series")
	}
	if (Breakout{}).Detect(fine, flowBars(1, 100, 1000)) {
		t.Fatalf("expected false with one daily bar")
	}
}

func TestBreakoutComparesPriorCompletedDailyHigh(t *testing.T) {
	fine := flowBars(5, 102, 1000)
	daily := md.Series{
		{High: 98},
		{High: 101}, // yesterday
		{High: 200}, // today, still forming; must be ignored
	}

	if !(Breakout{}).Detect(fine, daily) {
		t.Fatalf("expected breakout above yesterday's high")
	}

	daily[1].High = 102 // close == high is not a breakout
	if (Breakout{}).Detect(fine, daily) {
		t.Fatalf("expected false when close does not exceed the high")
	}
}

func TestReportRendering(t *testing.T) {
	report := Report{{Name: FlowName, On: true}, {Name: BreakoutName, On: false}}

	if got := report.String(); got != "flow=1,boyh=0" {
		t.Fatalf("unexpected rendering: %q", got)
	}
	if report.Count() != 1 {
		t.Fatalf("expected count 1, got %d", report.Count())
	}

	report[1].On = true
	if got := report.String(); got != "flow=1,boyh=1" {
		t.Fatalf("unexpected rendering: %q", got)
	}
	if report.Count() != 2 {
		t.Fatalf("expected count 2, got %d", report.Count())
	}
}
