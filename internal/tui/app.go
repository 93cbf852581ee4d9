// Package tui is the interactive article browser: a two-pane list/detail
// view over the already-filtered article sequence, with on-the-fly
// filtering by a single ticker.
package tui

import (
	"fmt"
	"strings"

	"github.com/QuantumLynx/stocks-news-app/internal/browser"
	"github.com/QuantumLynx/stocks-news-app/internal/feed"
	"github.com/QuantumLynx/stocks-news-app/internal/pipeline"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type mode int

const (
	modeList mode = iota
	modeFilter
)

type App struct {
	all      []feed.Article // the pipeline's output, never mutated here
	articles []feed.Article // current view, possibly narrowed by a ticker
	matcher  *pipeline.Matcher
	prices   map[string]float64

	cursor int
	width  int
	height int
	mode   mode

	filterInput  textinput.Model
	activeTicker string
	status       string
}

func NewApp(articles []feed.Article, matcher *pipeline.Matcher, prices map[string]float64) *App {
	ti := textinput.New()
	ti.Placeholder = "Ticker symbol..."
	ti.Prompt = filterPromptStyle.Render("filter: ")
	ti.CharLimit = 10

	return &App{
		all:         articles,
		articles:    articles,
		matcher:     matcher,
		prices:      prices,
		filterInput: ti,
	}
}

// Run blocks until the user quits.
func Run(articles []feed.Article, matcher *pipeline.Matcher, prices map[string]float64) error {
	p := tea.NewProgram(NewApp(articles, matcher, prices), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		if a.mode == modeFilter {
			return a.updateFilter(msg)
		}
		return a.updateList(msg)
	}
	return a, nil
}

func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}

	case "down", "j":
		if a.cursor < len(a.articles)-1 {
			a.cursor++
		}

	case "f":
		a.mode = modeFilter
		a.filterInput.SetValue("")
		a.filterInput.Focus()
		a.status = ""
		return a, textinput.Blink

	case "r":
		if a.activeTicker != "" {
			a.articles = a.all
			a.activeTicker = ""
			a.cursor = 0
			a.status = "Filter reset"
		} else {
			a.status = "No active filter"
		}

	case "o":
		if sel := a.selected(); sel != nil {
			if err := browser.Open(sel.Link); err != nil {
				a.status = fmt.Sprintf("open failed: %v", err)
			}
		}
	}
	return a, nil
}

func (a *App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeList
		a.filterInput.Blur()
		return a, nil

	case "enter":
		a.mode = modeList
		a.filterInput.Blur()
		a.applyFilter(a.filterInput.Value())
		return a, nil
	}

	var cmd tea.Cmd
	a.filterInput, cmd = a.filterInput.Update(msg)
	return a, cmd
}

// applyFilter narrows the view to articles mentioning the given ticker.
// An unmatched ticker keeps the current view so the user doesn't land on
// an empty screen.
func (a *App) applyFilter(symbol string) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return
	}

	m, err := pipeline.NewMatcher([]string{symbol})
	if err != nil {
		a.status = fmt.Sprintf("bad ticker: %v", err)
		return
	}

	var filtered []feed.Article
	for _, art := range a.all {
		if m.MatchArticle(art) {
			filtered = append(filtered, art)
		}
	}
	if len(filtered) == 0 {
		a.status = fmt.Sprintf("No articles mention %s", symbol)
		return
	}

	a.articles = filtered
	a.activeTicker = symbol
	a.cursor = 0
	a.status = fmt.Sprintf("Showing %d article(s) for %s", len(filtered), symbol)
}

func (a *App) selected() *feed.Article {
	if a.cursor < 0 || a.cursor >= len(a.articles) {
		return nil
	}
	return &a.articles[a.cursor]
}

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := headerStyle.Render("stocks-news")
	if a.activeTicker != "" {
		header += " " + headerFilterStyle.Render("["+a.activeTicker+"]")
	}
	header += itemTimeStyle.Render(fmt.Sprintf("  %d article(s)", len(a.articles)))

	paneHeight := a.height - 4 // header + status bar + borders
	if paneHeight < 3 {
		paneHeight = 3
	}
	listWidth := a.width * 2 / 5
	detailWidth := a.width - listWidth - 4

	list := listPaneStyle.Width(listWidth).Height(paneHeight).
		Render(renderList(a.articles, a.cursor, paneHeight, listWidth))
	detail := detailPaneStyle.Width(detailWidth).Height(paneHeight).
		Render(renderDetail(a.selected(), a.matcher, a.prices, detailWidth, paneHeight))

	body := lipgloss.JoinHorizontal(lipgloss.Top, list, detail)

	var bottom string
	if a.mode == modeFilter {
		bottom = a.filterInput.View()
	} else {
		help := "↑/↓ navigate · f filter · r reset · o open · q quit"
		if a.status != "" {
			help = a.status + "  —  " + help
		}
		bottom = statusBarStyle.Width(a.width).Render(help)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, bottom)
}
