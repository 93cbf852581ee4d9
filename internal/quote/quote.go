// Package quote looks up current share prices for ticker symbols via the
// Finnhub API.
package quote

import (
	"context"
	"fmt"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

type Client struct {
	api *finnhub.DefaultApiService
}

// New builds a client authenticated with the given API key.
func New(apiKey string) *Client {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	return &Client{api: finnhub.NewAPIClient(cfg).DefaultApi}
}

// Prices fetches the current price for each symbol. A symbol that cannot
// be quoted is skipped and reported as a warning error; the remaining
// symbols still resolve.
func (c *Client) Prices(ctx context.Context, symbols []string) (map[string]float64, []error) {
	prices := make(map[string]float64, len(symbols))
	var errs []error

	for _, sym := range symbols {
		res, _, err := c.api.Quote(ctx).Symbol(sym).Execute()
		if err != nil {
			errs = append(errs, fmt.Errorf("quote %s: %w", sym, err))
			continue
		}

		price := float64(res.GetC())
		if price == 0 {
			// Market closed or symbol without a live quote: fall back to
			// the previous close.
			price = float64(res.GetPc())
		}
		if price == 0 {
			errs = append(errs, fmt.Errorf("quote %s: no price available", sym))
			continue
		}
		prices[sym] = price
	}
	return prices, errs
}
