// Package pipeline turns the combined multi-source article list into the
// final bounded list to display. It is a pure function over its inputs:
// articles are selected, never mutated, and input order is preserved.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/QuantumLynx/stocks-news-app/internal/feed"
)

// ErrInvalidCriteria marks criteria the pipeline refuses to run with.
// Callers use errors.Is to tell user error apart from an empty result.
var ErrInvalidCriteria = errors.New("invalid criteria")

// Criteria is the optional filter bundle supplied by the user. The zero
// value of each field means "filter inactive"; Limit must always be set.
type Criteria struct {
	Tickers     []string // uppercase symbols; empty = no ticker filter
	Window      *Window  // nil = no time filter
	Limit       int      // max articles in the output, >= 1
	SourceLimit int      // max sources consulted upstream; 0 = all
}

func (c Criteria) Validate() error {
	if c.Limit < 1 {
		return fmt.Errorf("%w: limit must be at least 1, got %d", ErrInvalidCriteria, c.Limit)
	}
	if c.SourceLimit < 0 {
		return fmt.Errorf("%w: source limit must be at least 1, got %d", ErrInvalidCriteria, c.SourceLimit)
	}
	return nil
}

// Apply filters articles by the active criteria and truncates to
// c.Limit. Order is preserved: the output is the first c.Limit survivors
// in input order. Articles without a publication time fail any active
// time window, since their recency cannot be verified.
func Apply(articles []feed.Article, c Criteria, now time.Time) ([]feed.Article, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	matcher, err := NewMatcher(c.Tickers)
	if err != nil {
		return nil, err
	}

	var cutoff time.Time
	if c.Window != nil {
		cutoff = c.Window.Cutoff(now)
	}

	capacity := c.Limit
	if capacity > len(articles) {
		capacity = len(articles)
	}
	out := make([]feed.Article, 0, capacity)
	for _, a := range articles {
		if !matcher.Empty() && !matcher.MatchArticle(a) {
			continue
		}
		if c.Window != nil && (!a.HasPublished() || a.Published.Before(cutoff)) {
			continue
		}
		out = append(out, a)
		if len(out) == c.Limit {
			break
		}
	}
	return out, nil
}
