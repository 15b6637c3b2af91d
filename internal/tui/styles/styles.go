package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on both black and dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	SurfaceColor   = lipgloss.Color("#1F2937") // Dark surface
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray
	RatingColor    = lipgloss.Color("#FBBF24") // Yellow
	GenreColor     = lipgloss.Color("#60A5FA") // Blue

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)
	Text      = lipgloss.NewStyle().Foreground(TextColor)

	// Header
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor)

	Subtitle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(BorderColor).
		MarginBottom(1)

	// Search bar
	SearchBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 1)

	SearchBoxDisabled = SearchBox.
				BorderForeground(BorderColor)

	SubmitButton = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(PrimaryColor).
			Padding(0, 2)

	SubmitButtonDisabled = lipgloss.NewStyle().
				Foreground(MutedColor).
				Background(SurfaceColor).
				Padding(0, 2)

	// Error box
	ErrorBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor).
			Foreground(ErrorColor).
			Padding(0, 1)

	// Analysis box
	AnalysisBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Padding(0, 1)

	AnalysisTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SecondaryColor)

	// Movie cards
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1).
		MarginBottom(1)

	CardTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor)

	RatingBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(RatingColor)

	GenreTag = lipgloss.NewStyle().
			Foreground(GenreColor).
			Background(SurfaceColor).
			Padding(0, 1).
			MarginRight(1)

	Meta = lipgloss.NewStyle().
		Foreground(MutedColor)

	DirectorLabel = lipgloss.NewStyle().
			Bold(true).
			Foreground(MutedColor)

	// No results placeholder
	NoResults = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true).
			Padding(1, 2)

	// Help bar
	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)

	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(SecondaryColor)
)

// BackendStatusColor returns the color for a backend health state.
func BackendStatusColor(state string) lipgloss.Color {
	switch state {
	case "healthy":
		return SecondaryColor
	case "unhealthy", "unreachable":
		return WarningColor
	default:
		return MutedColor
	}
}

// BackendStatusIcon returns the indicator glyph for a backend health state.
func BackendStatusIcon(state string) string {
	switch state {
	case "healthy":
		return "●"
	case "unhealthy", "unreachable":
		return "✗"
	default:
		return "○"
	}
}
