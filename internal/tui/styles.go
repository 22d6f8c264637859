package tui

import (
	"github.com/MKhiriev/go-offline-sync/models"
	"github.com/charmbracelet/lipgloss"
)

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)

	badgeStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	toneStyles = map[models.IndicatorTone]lipgloss.Style{
		models.ToneDefault:     badgeStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")),
		models.ToneSecondary:   badgeStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")),
		models.ToneDestructive: badgeStyle.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("9")),
	}
)

func toneStyle(t models.IndicatorTone) lipgloss.Style {
	if s, ok := toneStyles[t]; ok {
		return s
	}
	return badgeStyle
}
