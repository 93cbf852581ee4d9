package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Adaptive colors for dark/light terminals
	colorPrimary   = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorSecondary = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
	colorDim       = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent    = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorBorder    = lipgloss.AdaptiveColor{Light: "#DBDBDB", Dark: "#383838"}
	colorGreen     = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}
	colorStatusBg  = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#16213E"}
	colorStatusFg  = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingLeft(1)

	headerFilterStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	listPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	detailPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	itemTitleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	itemSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	itemSourceStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	itemTimeStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary).
				MarginBottom(1)

	detailSourceStyle = lipgloss.NewStyle().
				Foreground(colorGreen).
				MarginBottom(1)

	detailBodyStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	detailTickerStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	detailLinkStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true).
			MarginTop(1)

	statusBarStyle = lipgloss.NewStyle().
			Background(colorStatusBg).
			Foreground(colorStatusFg).
			PaddingLeft(1).
			PaddingRight(1)

	filterPromptStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)
)
