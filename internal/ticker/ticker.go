package ticker

import (
	"fmt"
	"sort"
	"strings"
)

// companyAliases maps a ticker symbol to company names the financial press
// uses when it doesn't print the symbol itself. Headlines say "Apple beats
// estimates" far more often than "AAPL beats estimates".
var companyAliases = map[string][]string{
	"AAPL":  {"apple"},
	"MSFT":  {"microsoft"},
	"GOOG":  {"google", "alphabet"},
	"GOOGL": {"google", "alphabet"},
	"AMZN":  {"amazon"},
	"META":  {"meta", "facebook"},
	"TSLA":  {"tesla", "musk"},
	"NVDA":  {"nvidia"},
	"NFLX":  {"netflix"},
	"AMD":   {"advanced micro devices"},
	"INTC":  {"intel"},
	"JPM":   {"jpmorgan", "jp morgan"},
	"DIS":   {"disney"},
	"BRK.B": {"berkshire", "buffett"},
}

// Aliases returns the known company names for a symbol, or nil.
func Aliases(symbol string) []string {
	return companyAliases[strings.ToUpper(symbol)]
}

// Known returns all symbols with alias coverage, sorted.
func Known() []string {
	symbols := make([]string, 0, len(companyAliases))
	for s := range companyAliases {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// ResolveCompany maps a company name fragment to the ticker symbols it
// matches, case-insensitively. "google" resolves to both GOOG and GOOGL.
func ResolveCompany(name string) ([]string, error) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return nil, fmt.Errorf("company name is empty")
	}

	var symbols []string
	for sym, aliases := range companyAliases {
		for _, alias := range aliases {
			if strings.Contains(alias, query) {
				symbols = append(symbols, sym)
				break
			}
		}
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no ticker found for company %q (known: %s)", name, strings.Join(Known(), ", "))
	}
	sort.Strings(symbols)
	return symbols, nil
}
