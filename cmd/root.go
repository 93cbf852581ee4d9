package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/QuantumLynx/stocks-news-app/internal/config"
	"github.com/QuantumLynx/stocks-news-app/internal/feed"
	"github.com/QuantumLynx/stocks-news-app/internal/pipeline"
	"github.com/QuantumLynx/stocks-news-app/internal/present"
	"github.com/QuantumLynx/stocks-news-app/internal/quote"
	"github.com/QuantumLynx/stocks-news-app/internal/ticker"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagStocks       string
	flagCompany      string
	flagLimit        int
	flagSourceLimit  int
	flagTimeInterval string
	flagQuotes       bool
	flagConfig       string
	flagTimeout      time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "stocks-news",
	Short: "Financial news collector for your terminal",
	Long: `stocks-news pulls financial headlines from configured RSS feeds,
filters them by stock ticker mentions and publication time, and prints
the freshest matches.`,
	RunE: runList,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagStocks, "stocks", "", "comma-separated ticker symbols to filter by (e.g. AAPL,MSFT)")
	pf.StringVar(&flagCompany, "company", "", "company name to filter by, resolved to ticker symbols (e.g. 'Apple')")
	pf.IntVar(&flagLimit, "limit", 10, "maximum number of articles to show")
	pf.IntVar(&flagSourceLimit, "source-limit", 0, "maximum number of feed sources to consult")
	pf.StringVar(&flagTimeInterval, "time-interval", "", "only show articles published within a window ("+strings.Join(pipeline.WindowNames(), ", ")+")")
	pf.BoolVar(&flagQuotes, "quotes", false, "show current prices for the requested tickers (requires FINNHUB_API_KEY)")
	pf.StringVar(&flagConfig, "config", "", "path to sources file")
	pf.DurationVar(&flagTimeout, "timeout", 15*time.Second, "feed fetch deadline")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tuiCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stocks-news %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

func runList(cmd *cobra.Command, args []string) error {
	crit, err := buildCriteria(cmd)
	if err != nil {
		return err
	}

	// Resolve quotes first so a missing API key fails before any fetch.
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

	fmt.Print(present.Render(out, present.Options{Matcher: matcher, Prices: prices}))
	return nil
}

// buildCriteria turns the CLI flags into pipeline criteria. Any invalid
// value is a configuration error and aborts before fetching.
func buildCriteria(cmd *cobra.Command) (pipeline.Criteria, error) {
	crit := pipeline.Criteria{Limit: flagLimit}

	crit.Tickers = splitTickers(flagStocks)
	if len(crit.Tickers) == 0 && flagCompany != "" {
		symbols, err := ticker.ResolveCompany(flagCompany)
		if err != nil {
			return crit, err
		}
		crit.Tickers = symbols
	}

	if flagTimeInterval != "" {
		w, err := pipeline.ParseWindow(flagTimeInterval)
		if err != nil {
			return crit, err
		}
		crit.Window = w
	}

	if cmd.Flags().Changed("source-limit") {
		if flagSourceLimit < 1 {
			return crit, fmt.Errorf("%w: source limit must be at least 1, got %d", pipeline.ErrInvalidCriteria, flagSourceLimit)
		}
		crit.SourceLimit = flagSourceLimit
	}

	if err := crit.Validate(); err != nil {
		return crit, err
	}
	return crit, nil
}

func splitTickers(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if s := strings.ToUpper(strings.TrimSpace(part)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// gather fetches all enabled sources and returns the combined article
// list, newest first. Per-source failures are warnings, never fatal.
func gather(crit pipeline.Criteria) ([]feed.Article, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading sources: %w", err)
	}

	sources := cfg.EnabledSources()
	if crit.SourceLimit > 0 && len(sources) > crit.SourceLimit {
		sources = sources[:crit.SourceLimit]
	}

	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()
	result := feed.FetchAll(ctx, sources)

	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "  [warn] %v\n", e)
	}

	feed.SortNewestFirst(result.Articles)
	return result.Articles, nil
}

func fetchPrices(tickers []string) (map[string]float64, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("--quotes requires --stocks or --company")
	}
	key := os.Getenv("FINNHUB_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("--quotes requires FINNHUB_API_KEY (environment or .env)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()
	prices, warns := quote.New(key).Prices(ctx, tickers)
	for _, w := range warns {
		fmt.Fprintf(os.Stderr, "  [warn] %v\n", w)
	}
	return prices, nil
}
