package tui

import (
	"testing"
	"time"

	"github.com/QuantumLynx/stocks-news-app/internal/feed"
)

func sampleArticles() []feed.Article {
	now := time.Now()
	return []feed.Article{
		{Title: "AAPL beats estimates", Source: "A", Link: "https://example.com/1", Published: now.Add(-time.Minute)},
		{Title: "TSLA deliveries slip", Source: "B", Link: "https://example.com/2", Published: now.Add(-time.Hour)},
		{Title: "Broad market rally", Source: "C", Link: "https://example.com/3", Published: now.Add(-2 * time.Hour)},
	}
}

func TestApplyFilterNarrowsView(t *testing.T) {
	app := NewApp(sampleArticles(), nil, nil)

	app.applyFilter("aapl")
	if len(app.articles) != 1 {
		t.Fatalf("expected 1 article after filter, got %d", len(app.articles))
	}
	if app.activeTicker != "AAPL" {
		t.Errorf("expected canonical AAPL, got %q", app.activeTicker)
	}
	if len(app.all) != 3 {
		t.Errorf("original list must stay intact, got %d", len(app.all))
	}
}

func TestApplyFilterNoMatchKeepsView(t *testing.T) {
	app := NewApp(sampleArticles(), nil, nil)

	app.applyFilter("ZZZZ")
	if len(app.articles) != 3 {
		t.Errorf("unmatched ticker should keep current view, got %d articles", len(app.articles))
	}
	if app.activeTicker != "" {
		t.Errorf("no filter should be active, got %q", app.activeTicker)
	}
	if app.status == "" {
		t.Error("expected a status message about the unmatched ticker")
	}
}

func TestApplyFilterEmptyInputIsNoOp(t *testing.T) {
	app := NewApp(sampleArticles(), nil, nil)
	app.applyFilter("   ")
	if len(app.articles) != 3 || app.activeTicker != "" {
		t.Error("blank input should change nothing")
	}
}

func TestSelectedOutOfRange(t *testing.T) {
	app := NewApp(nil, nil, nil)
	if app.selected() != nil {
		t.Error("expected nil selection for empty list")
	}
}
