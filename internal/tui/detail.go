package tui

import (
	"fmt"
	"strings"

	"github.com/QuantumLynx/stocks-news-app/internal/feed"
	"github.com/QuantumLynx/stocks-news-app/internal/pipeline"
	"github.com/charmbracelet/lipgloss"
)

func renderDetail(article *feed.Article, matcher *pipeline.Matcher, prices map[string]float64, width, height int) string {
	if article == nil {
		return center("Select an article", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := detailTitleStyle.Width(contentWidth).Render(article.Title)

	published := "undated"
	if article.HasPublished() {
		published = article.Published.Format("Jan 2, 2006 15:04")
	}
	source := detailSourceStyle.Render(fmt.Sprintf("%s · %s", article.Source, published))

	desc := article.Description
	if desc == "" {
		desc = "(No description available)"
	}
	body := detailBodyStyle.Width(contentWidth).Render(wrapText(desc, contentWidth))

	sections := []string{title, source, "", body}

	if line := tickerSummary(*article, matcher, prices); line != "" {
		sections = append(sections, "", detailTickerStyle.Render(line))
	}

	sections = append(sections, "", detailLinkStyle.Width(contentWidth).Render("Read more: "+article.Link))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Pad or clip to the pane height
	lines := strings.Split(content, "\n")
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func tickerSummary(a feed.Article, matcher *pipeline.Matcher, prices map[string]float64) string {
	if matcher.Empty() {
		return ""
	}
	symbols := matcher.Symbols(a)
	if len(symbols) == 0 {
		return ""
	}
	parts := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		if price, ok := prices[sym]; ok {
			parts = append(parts, fmt.Sprintf("%s $%.2f", sym, price))
		} else {
			parts = append(parts, sym)
		}
	}
	return "Mentions: " + strings.Join(parts, ", ")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
