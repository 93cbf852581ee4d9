package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/QuantumLynx/stocks-news-app/internal/feed"
	"github.com/QuantumLynx/stocks-news-app/internal/ticker"
)

// Matcher matches ticker symbols against article text on word boundaries:
// "AAPL" matches "AAPL", "$AAPL" and "(AAPL)" but never "AAPLES". Known
// company names for a symbol (ticker.Aliases) match as whole words too, so
// a headline about Apple still counts as an AAPL mention.
type Matcher struct {
	symbols  []string
	patterns map[string]*regexp.Regexp
}

// NewMatcher compiles one pattern per distinct symbol. Symbols are
// canonicalized to uppercase; empty entries are dropped.
func NewMatcher(symbols []string) (*Matcher, error) {
	m := &Matcher{patterns: make(map[string]*regexp.Regexp, len(symbols))}
	for _, s := range symbols {
		sym := strings.ToUpper(strings.TrimSpace(s))
		if sym == "" {
			continue
		}
		if _, ok := m.patterns[sym]; ok {
			continue
		}

		alts := []string{regexp.QuoteMeta(sym)}
		for _, alias := range ticker.Aliases(sym) {
			alts = append(alts, regexp.QuoteMeta(alias))
		}
		re, err := regexp.Compile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot match ticker %q: %v", ErrInvalidCriteria, s, err)
		}

		m.symbols = append(m.symbols, sym)
		m.patterns[sym] = re
	}
	return m, nil
}

// Empty reports whether the matcher has no symbols, i.e. the ticker
// filter stage is a no-op.
func (m *Matcher) Empty() bool {
	return m == nil || len(m.symbols) == 0
}

// Tickers returns the canonicalized symbols in the order given.
func (m *Matcher) Tickers() []string {
	if m == nil {
		return nil
	}
	return m.symbols
}

// MatchArticle reports whether any symbol appears in the article's title
// or description.
func (m *Matcher) MatchArticle(a feed.Article) bool {
	if m.Empty() {
		return false
	}
	text := a.Title + " " + a.Description
	for _, sym := range m.symbols {
		if m.patterns[sym].MatchString(text) {
			return true
		}
	}
	return false
}

// Symbols returns every symbol that appears in the article, in the
// matcher's canonical order.
func (m *Matcher) Symbols(a feed.Article) []string {
	if m.Empty() {
		return nil
	}
	text := a.Title + " " + a.Description
	var out []string
	for _, sym := range m.symbols {
		if m.patterns[sym].MatchString(text) {
			out = append(out, sym)
		}
	}
	return out
}
