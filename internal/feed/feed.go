package feed

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/QuantumLynx/stocks-news-app/internal/config"
	"github.com/mmcdole/gofeed"
)

// Article is the normalized representation of one news item, whatever the
// source feed dialect.
type Article struct {
	ID          string
	Source      string
	Title       string
	Link        string
	Description string
	Published   time.Time // zero when the feed gave no usable date
	FetchedAt   time.Time
}

// HasPublished reports whether the feed supplied a publication time.
func (a Article) HasPublished() bool {
	return !a.Published.IsZero()
}

type Fetcher interface {
	Fetch(ctx context.Context, source config.Source) ([]Article, error)
}

type RSSFetcher struct {
	parser *gofeed.Parser
}

func NewRSSFetcher() *RSSFetcher {
	return &RSSFetcher{parser: gofeed.NewParser()}
}

func (f *RSSFetcher) Fetch(ctx context.Context, source config.Source) ([]Article, error) {
	feed, err := f.parser.ParseURLWithContext(source.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", source.Name, err)
	}

	now := time.Now()
	articles := make([]Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		articles = append(articles, normalize(item, source.Name, now))
	}
	return articles, nil
}

// normalize converts a feed item into an Article. A missing publication
// date stays missing (zero time) so downstream time filters can treat the
// article as "recency unknown" instead of passing it off as fresh.
func normalize(item *gofeed.Item, sourceName string, now time.Time) Article {
	var pub time.Time
	if item.PublishedParsed != nil {
		pub = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		pub = *item.UpdatedParsed
	}

	desc := item.Description
	if desc == "" {
		desc = item.Content
	}
	desc = truncate(stripHTML(desc), 300)

	return Article{
		ID:          articleID(item.Link),
		Source:      sourceName,
		Title:       item.Title,
		Link:        item.Link,
		Description: desc,
		Published:   pub,
		FetchedAt:   now,
	}
}

func articleID(link string) string {
	h := sha256.Sum256([]byte(link))
	return fmt.Sprintf("%x", h[:16])
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

type FetchResult struct {
	Articles []Article
	Errors   []error
}

// FetchAll fetches every source concurrently and returns once all of them
// finished. A failed source contributes an error, never an abort.
func FetchAll(ctx context.Context, sources []config.Source) FetchResult {
	var (
		mu     sync.Mutex
		result FetchResult
		wg     sync.WaitGroup
	)

	fetcher := NewRSSFetcher()

	for _, src := range sources {
		wg.Add(1)
		go func(s config.Source) {
			defer wg.Done()
			articles, err := fetcher.Fetch(ctx, s)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, err)
				return
			}
			result.Articles = append(result.Articles, articles...)
		}(src)
	}

	wg.Wait()
	return result
}

// SortNewestFirst orders articles by publication time, newest first.
// Articles without a publication time sort last. The sort is stable so
// feed-internal order survives among equal timestamps.
func SortNewestFirst(articles []Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i], articles[j]
		if a.HasPublished() != b.HasPublished() {
			return a.HasPublished()
		}
		return a.Published.After(b.Published)
	})
}
