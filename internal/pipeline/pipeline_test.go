package pipeline

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/QuantumLynx/stocks-news-app/internal/feed"
)

func article(title, desc string, published time.Time) feed.Article {
	return feed.Article{Title: title, Description: desc, Published: published}
}

func mustWindow(t *testing.T, name string) *Window {
	t.Helper()
	w, err := ParseWindow(name)
	if err != nil {
		t.Fatalf("ParseWindow(%q): %v", name, err)
	}
	return w
}

func TestTickerFilterKeepsOnlyMentions(t *testing.T) {
	now := time.Now()
	articles := []feed.Article{
		article("Apple hits record as AAPL soars", "", now.Add(-5*time.Minute)),
		article("Weather today", "", now.Add(-5*time.Minute)),
	}

	out, err := Apply(articles, Criteria{Tickers: []string{"AAPL"}, Limit: 10}, now)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 article, got %d", len(out))
	}
	if out[0].Title != articles[0].Title {
		t.Errorf("expected the AAPL article, got %q", out[0].Title)
	}
}

func TestTimeWindowExcludesOldArticles(t *testing.T) {
	now := time.Now()
	articles := []feed.Article{
		article("old", "", now.Add(-2*time.Hour)),
		article("fresh", "", now.Add(-10*time.Minute)),
	}

	out, err := Apply(articles, Criteria{Window: mustWindow(t, "last-hour"), Limit: 10}, now)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out) != 1 || out[0].Title != "fresh" {
		t.Fatalf("expected only the fresh article, got %v", out)
	}
}

func TestLimitTakesFirstInInputOrder(t *testing.T) {
	now := time.Now()
	articles := []feed.Article{
		article("first", "", now.Add(-1*time.Minute)),
		article("second", "", now.Add(-30*time.Second)),
	}

	out, err := Apply(articles, Criteria{Limit: 1}, now)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected exactly 1 article, got %d", len(out))
	}
	// Input order wins even though "second" is newer: the pipeline never
	// re-sorts, callers sort before applying if they want recency order.
	if out[0].Title != "first" {
		t.Errorf("expected first article in input order, got %q", out[0].Title)
	}
}

func TestMissingPublishedFailsTimeWindow(t *testing.T) {
	now := time.Now()
	articles := []feed.Article{
		article("undated", "", time.Time{}),
	}

	out, err := Apply(articles, Criteria{Window: mustWindow(t, "today"), Limit: 10}, now)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("article without a timestamp must fail the time filter, got %v", out)
	}
}

func TestZeroLimitIsInvalidCriteria(t *testing.T) {
	now := time.Now()
	articles := []feed.Article{article("x", "", now)}

	_, err := Apply(articles, Criteria{Limit: 0}, now)
	if !errors.Is(err, ErrInvalidCriteria) {
		t.Fatalf("expected ErrInvalidCriteria for limit 0, got %v", err)
	}

	_, err = Apply(articles, Criteria{Limit: -3}, now)
	if !errors.Is(err, ErrInvalidCriteria) {
		t.Fatalf("expected ErrInvalidCriteria for negative limit, got %v", err)
	}
}

func TestNegativeSourceLimitIsInvalidCriteria(t *testing.T) {
	_, err := Apply(nil, Criteria{Limit: 10, SourceLimit: -1}, time.Now())
	if !errors.Is(err, ErrInvalidCriteria) {
		t.Fatalf("expected ErrInvalidCriteria, got %v", err)
	}
}

func TestOutputNeverExceedsLimit(t *testing.T) {
	now := time.Now()
	var articles []feed.Article
	for i := 0; i < 50; i++ {
		articles = append(articles, article("t", "", now))
	}

	for _, limit := range []int{1, 5, 10, 49, 50, 100} {
		out, err := Apply(articles, Criteria{Limit: limit}, now)
		if err != nil {
			t.Fatalf("Apply(limit=%d): %v", limit, err)
		}
		if len(out) > limit {
			t.Errorf("limit %d: got %d articles", limit, len(out))
		}
	}
}

func TestEveryOutputSatisfiesActiveFilters(t *testing.T) {
	now := time.Now()
	w := mustWindow(t, "last-4-hours")
	cutoff := w.Cutoff(now)
	articles := []feed.Article{
		article("AAPL beats estimates", "", now.Add(-time.Hour)),
		article("AAPL from last week", "", now.Add(-7*24*time.Hour)),
		article("Fresh but irrelevant", "", now.Add(-time.Minute)),
		article("MSFT earnings preview", "quarterly numbers", now.Add(-2*time.Hour)),
		article("undated AAPL note", "", time.Time{}),
	}

	crit := Criteria{Tickers: []string{"AAPL", "MSFT"}, Window: w, Limit: 10}
	out, err := Apply(articles, crit, now)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 survivors, got %d: %v", len(out), out)
	}

	m, _ := NewMatcher(crit.Tickers)
	for _, a := range out {
		if !m.MatchArticle(a) {
			t.Errorf("output article %q does not match any ticker", a.Title)
		}
		if !a.HasPublished() || a.Published.Before(cutoff) {
			t.Errorf("output article %q violates the time window", a.Title)
		}
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	now := time.Now()
	articles := []feed.Article{
		article("AAPL up", "", now.Add(-time.Minute)),
		article("TSLA down", "", now.Add(-2*time.Minute)),
		article("no tickers here", "", now.Add(-3*time.Minute)),
	}
	crit := Criteria{Tickers: []string{"AAPL", "TSLA"}, Limit: 10}

	first, err := Apply(articles, crit, now)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	second, err := Apply(articles, crit, now)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs over the same input differ: %v vs %v", first, second)
	}
}

func TestInactiveStagesAreNoOps(t *testing.T) {
	now := time.Now()
	articles := []feed.Article{
		article("one", "", now.Add(-time.Minute)),
		article("two", "", time.Time{}), // undated passes when no window is set
		article("three", "", now.Add(-48*time.Hour)),
	}

	out, err := Apply(articles, Criteria{Limit: 10}, now)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out) != len(articles) {
		t.Fatalf("no active filters should pass everything, got %d of %d", len(out), len(articles))
	}
	for i := range out {
		if out[i].Title != articles[i].Title {
			t.Errorf("order changed at %d: got %q, want %q", i, out[i].Title, articles[i].Title)
		}
	}

	// Explicitly empty ticker set behaves the same as absent
	out2, err := Apply(articles, Criteria{Tickers: []string{}, Limit: 10}, now)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !reflect.DeepEqual(out, out2) {
		t.Error("empty ticker slice should be equivalent to no ticker filter")
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	articles := []feed.Article{
		article("AAPL news", "desc", now.Add(-time.Minute)),
		article("other", "desc", now.Add(-2*time.Minute)),
	}
	snapshot := make([]feed.Article, len(articles))
	copy(snapshot, articles)

	if _, err := Apply(articles, Criteria{Tickers: []string{"AAPL"}, Limit: 10}, now); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !reflect.DeepEqual(articles, snapshot) {
		t.Error("Apply mutated its input")
	}
}

func TestEmptyResultIsNotAnError(t *testing.T) {
	now := time.Now()
	articles := []feed.Article{article("nothing relevant", "", now)}

	out, err := Apply(articles, Criteria{Tickers: []string{"AAPL"}, Limit: 10}, now)
	if err != nil {
		t.Fatalf("zero matches must not be an error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty result, got %v", out)
	}
}
