package regime

import (
	"testing"

	"scout/internal/md"
)

// trendingBars builds n bars drifting by step per bar with a fixed
// high-low range around each close.
func trendingBars(n int, start, step, halfRange float64) md.Series {
	series := make(md.Series, n)
	price := start
	for i := range series {
		series[i] = md.Bar{
			Open:   price,
			High:   price + halfRange,
			Low:    price - halfRange,
			Close:  price,
			Volume: 1000,
		}
		price += step
	}
	return series
}

func TestTradeableRejectsShortHistory(t *testing.T) {
	bars := trendingBars(199, 100, 0.02, 0.4)
	if Tradeable(bars) {
		t.Fatalf("expected false below 200 bars")
	}
}

func TestTradeableAcceptsUptrendInBand(t *testing.T) {
	// Rising close keeps price above the lagging EMA; ~0.8 true range
	// on a ~105 price sits inside the volatility band.
	bars := trendingBars(250, 100, 0.02, 0.4)
	if !Tradeable(bars) {
		t.Fatalf("expected tradeable regime")
	}
}

func TestTradeableRejectsConstantPrice(t *testing.T) {
	// ATR is exactly 0, below the 0.5% floor.
	bars := trendingBars(250, 100, 0, 0)
	if Tradeable(bars) {
		t.Fatalf("expected dead instrument to be rejected")
	}
}

func TestTradeableRejectsDowntrend(t *testing.T) {
	bars := trendingBars(250, 150, -0.02, 0.4)
	if Tradeable(bars) {
		t.Fatalf("expected downtrend to be rejected")
	}
}

func TestTradeableRejectsExcessVolatility(t *testing.T) {
	// ~20 true range on a ~105 price is far past the 8% ceiling.
	bars := trendingBars(250, 100, 0.02, 10)
	if Tradeable(bars) {
		t.Fatalf("expected excessive volatility to be rejected")
	}
}
