// Package present renders the final article list to the console.
package present

import (
	"fmt"
	"strings"
	"time"

	"github.com/QuantumLynx/stocks-news-app/internal/feed"
	"github.com/QuantumLynx/stocks-news-app/internal/pipeline"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorGreen   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}

	indexStyle  = lipgloss.NewStyle().Foreground(colorDim)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	sourceStyle = lipgloss.NewStyle().Foreground(colorGreen)
	timeStyle   = lipgloss.NewStyle().Foreground(colorDim)
	linkStyle   = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
	tickerStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	emptyStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// Options controls rendering. Matcher, when set, annotates each article
// with the requested tickers it mentions; Prices adds current prices next
// to those tickers.
type Options struct {
	Matcher *pipeline.Matcher
	Prices  map[string]float64
	Width   int // max display width, 0 = 100
}

// Render produces the human-readable listing for the final article
// sequence. An empty sequence gets an explicit message so "no matches" is
// never mistaken for a failure.
func Render(articles []feed.Article, opts Options) string {
	if len(articles) == 0 {
		return emptyStyle.Render("No articles matched your criteria.") + "\n"
	}

	width := opts.Width
	if width <= 0 {
		width = 100
	}

	var b strings.Builder
	for i, a := range articles {
		title := runewidth.Truncate(a.Title, width-5, "...")
		b.WriteString(fmt.Sprintf("%s %s\n",
			indexStyle.Render(fmt.Sprintf("%2d.", i+1)),
			titleStyle.Render(title)))

		meta := sourceStyle.Render(a.Source) + timeStyle.Render(" · "+relativeTime(a.Published))
		if line := tickerLine(a, opts); line != "" {
			meta += timeStyle.Render(" · ") + line
		}
		b.WriteString("    " + meta + "\n")
		b.WriteString("    " + linkStyle.Render(a.Link) + "\n")

		if i < len(articles)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func tickerLine(a feed.Article, opts Options) string {
	if opts.Matcher.Empty() {
		return ""
	}
	symbols := opts.Matcher.Symbols(a)
	if len(symbols) == 0 {
		return ""
	}

	parts := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		if price, ok := opts.Prices[sym]; ok {
			parts = append(parts, fmt.Sprintf("%s $%.2f", sym, price))
		} else {
			parts = append(parts, sym)
		}
	}
	return tickerStyle.Render(strings.Join(parts, " "))
}

func relativeTime(t time.Time) string {
	if t.IsZero() {
		return "undated"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}
