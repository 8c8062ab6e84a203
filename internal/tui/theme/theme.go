package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Title       lipgloss.Style
	Section     lipgloss.Style
	ActiveLine  lipgloss.Style
	MetaLabel   lipgloss.Style
	MetaValue   lipgloss.Style
	StateIdle   lipgloss.Style
	StateWarn   lipgloss.Style
	StateLoad   lipgloss.Style
	YearPill    lipgloss.Style
	YearActive  lipgloss.Style
	CardDate    lipgloss.Style
	CardTitle   lipgloss.Style
	HeroTitle   lipgloss.Style
	EmptyState  lipgloss.Style
	ErrorState  lipgloss.Style
	PaperOn     lipgloss.Style
	PaperOff    lipgloss.Style
	ViewerChrom lipgloss.Style
}

func Default() Theme {
	inkBlack := lipgloss.Color("#1e1e2e")
	parchment := lipgloss.Color("#f5e0dc")
	sepia := lipgloss.Color("#fab387")
	headline := lipgloss.Color("#cba6f7")
	masthead := lipgloss.Color("#94e2d5")
	newsprint := lipgloss.Color("#cdd6f4")
	faded := lipgloss.Color("#a6adc8")
	overlay := lipgloss.Color("#7f849c")
	surface := lipgloss.Color("#313244")
	alert := lipgloss.Color("#f38ba8")
	fresh := lipgloss.Color("#a6e3a1")
	gilt := lipgloss.Color("#f9e2af")

	return Theme{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(headline),
		Section:     lipgloss.NewStyle().Bold(true).Foreground(masthead),
		ActiveLine:  lipgloss.NewStyle().Background(surface).Foreground(newsprint),
		MetaLabel:   lipgloss.NewStyle().Foreground(overlay),
		MetaValue:   lipgloss.NewStyle().Foreground(faded),
		StateIdle:   lipgloss.NewStyle().Foreground(fresh),
		StateWarn:   lipgloss.NewStyle().Foreground(alert),
		StateLoad:   lipgloss.NewStyle().Foreground(sepia),
		YearPill:    lipgloss.NewStyle().Foreground(faded),
		YearActive:  lipgloss.NewStyle().Bold(true).Foreground(gilt),
		CardDate:    lipgloss.NewStyle().Foreground(sepia),
		CardTitle:   lipgloss.NewStyle().Foreground(newsprint),
		HeroTitle:   lipgloss.NewStyle().Bold(true).Foreground(parchment),
		EmptyState:  lipgloss.NewStyle().Italic(true).Foreground(overlay),
		ErrorState:  lipgloss.NewStyle().Bold(true).Foreground(alert),
		PaperOn:     lipgloss.NewStyle().Foreground(fresh),
		PaperOff:    lipgloss.NewStyle().Foreground(overlay),
		ViewerChrom: lipgloss.NewStyle().Foreground(inkBlack).Background(parchment).Padding(0, 1),
	}
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
