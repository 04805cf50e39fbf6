// Package broker wraps the Alpaca trading API. The scanner places no
// orders; the client exists to rebase sizing equity from the live
// account.
package broker

import (
	"context"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/rs/zerolog/log"
)

// Account is the slice of the trading account the scanner cares about.
type Account struct {
	Equity float64
}

type Client struct {
	client *alpaca.Client
}

func New(apiKey, apiSecret, baseURL string) *Client {
	opts := alpaca.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
		BaseURL:   baseURL,
	}
	return &Client{client: alpaca.NewClient(opts)}
}

// Account fetches live equity for the sizing override.
func (c *Client) Account(ctx context.Context) (Account, error) {
	acct, err := c.client.GetAccount()
	if err != nil {
		log.Error().Err(err).Msg("fetch account failed")
		return Account{}, err
	}
	equity, _ := acct.Equity.Float64()

	log.Info().Float64("equity", equity).Msg("account fetched")
	return Account{Equity: equity}, nil
}
