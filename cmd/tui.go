package cmd

import (
	"time"

	"github.com/QuantumLynx/stocks-news-app/internal/pipeline"
	"github.com/QuantumLynx/stocks-news-app/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse matching articles in an interactive terminal UI",
	Long:  "Fetch and filter articles like the default command, then open a two-pane browser instead of printing.",
	RunE: func(cmd *cobra.Command, args []string) error {
		crit, err := buildCriteria(cmd)
		if err != nil {
			return err
		}

		var prices map[string]float64
		if flagQuotes {
			if prices, err = fetchPrices(crit.Tickers); err != nil {
				return err
			}
		}

		articles, err := gather(crit)
		if err != nil {
			return err
		}

		out, err := pipeline.Apply(articles, crit, time.Now())
		if err != nil {
			return err
		}

		matcher, err := pipeline.NewMatcher(crit.Tickers)
		if err != nil {
			return err
		}

		return tui.Run(out, matcher, prices)
	},
}
