package md

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

func TestBarsHonorsCanceledContext(t *testing.T) {
	supplier := NewAlpacaSupplier("key", "secret", "iex")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := supplier.Bars(ctx, "SPY", Intraday, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestParseFeed(t *testing.T) {
	cases := []struct {
		in   string
		want marketdata.Feed
	}{
		{"iex", marketdata.IEX},
		{"sip", marketdata.SIP},
		{"tape", marketdata.IEX},
	}
	for _, tc := range cases {
		if got := parseFeed(tc.in); got != tc.want {
			t.Fatalf("parseFeed(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
