package md

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

// AlpacaSupplier fetches historical bars from the Alpaca market data API.
type AlpacaSupplier struct {
	client *marketdata.Client
	feed   marketdata.Feed
}

func NewAlpacaSupplier(apiKey, apiSecret, feed string) *AlpacaSupplier {
	return &AlpacaSupplier{
		client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
		}),
		feed: parseFeed(feed),
	}
}

func (a *AlpacaSupplier) Bars(ctx context.Context, symbol string, tf Timeframe, lookback time.Duration) (Series, error) {
	// The marketdata client issues requests without a context, so the
	// deadline is enforced before each fetch rather than mid-request.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	frame := marketdata.NewTimeFrame(5, marketdata.Min)
	if tf == Daily {
		frame = marketdata.OneDay
	}

	bars, err := a.client.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame: frame,
		Start:     time.Now().UTC().Add(-lookback),
		Feed:      a.feed,
	})
	if err != nil {
		return nil, fmt.Errorf("get bars for %s: %w", symbol, err)
	}

	series := make(Series, 0, len(bars))
	for _, bar := range bars {
		series = append(series, Bar{
			Timestamp: bar.Timestamp,
			Open:      bar.Open,
			High:      bar.High,
			Low:       bar.Low,
			Close:     bar.Close,
			Volume:    float64(bar.Volume),
		})
	}
	return series, nil
}

func parseFeed(feed string) marketdata.Feed {
	switch feed {
	case "iex":
		return marketdata.IEX
	case "sip":
		return marketdata.SIP
	default:
		return marketdata.IEX
	}
}
