package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	ColorRed     = lipgloss.Color("#FF4B2B")
	ColorPink    = lipgloss.Color("#FF416C")
	ColorGreen   = lipgloss.Color("#4ADE80")
	ColorYellow  = lipgloss.Color("#FACC15")
	ColorBlue    = lipgloss.Color("#60A5FA")
	ColorGray    = lipgloss.Color("#9CA3AF")
	ColorDimGray = lipgloss.Color("#30363D")
	ColorWhite   = lipgloss.Color("#FFFFFF")
)

// ChartPalette colors the probability bars, indexed by ChartDatum.ColorIndex.
var ChartPalette = []lipgloss.Color{
	lipgloss.Color("#FF4B2B"),
	lipgloss.Color("#FF6B4A"),
	lipgloss.Color("#FF8B6A"),
	lipgloss.Color("#FFAB8A"),
	lipgloss.Color("#FFCBAA"),
}

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorRed)

	TitleAccentStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorWhite)

	HealthyStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	UnhealthyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	GenreStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPink)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	TranslatedStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)

	CanonicalStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	ButtonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorRed).
			Padding(0, 1)

	ButtonDisabledStyle = lipgloss.NewStyle().
				Foreground(ColorGray).
				Background(ColorDimGray).
				Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	ConfidenceHighStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorGreen)

	ConfidenceMidStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorYellow)

	ConfidenceLowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorRed)
)

// ConfidenceStyle picks the badge color for a 0-100 confidence.
func ConfidenceStyle(confidence float64) lipgloss.Style {
	switch {
	case confidence > 70:
		return ConfidenceHighStyle
	case confidence > 40:
		return ConfidenceMidStyle
	default:
		return ConfidenceLowStyle
	}
}

// BarStyle returns the bar style for a palette index.
func BarStyle(colorIndex int) lipgloss.Style {
	c := ChartPalette[((colorIndex%len(ChartPalette))+len(ChartPalette))%len(ChartPalette)]
	return lipgloss.NewStyle().Foreground(c)
}
