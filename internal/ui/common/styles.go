// Package common provides shared styles for terminal rendering.
package common

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/hanabi-deduction/internal/game/variant"
)

// Lipgloss styles
var (
	DocStyle    = lipgloss.NewStyle().Margin(1, 2)
	TitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	MutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	KnownStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	viewerStyle = lipgloss.NewStyle().BorderForeground(lipgloss.Color("228"))
)

// suitColors 花色名到终端颜色
var suitColors = map[string]lipgloss.Color{
	"Red":          lipgloss.Color("#CD0000"),
	"Yellow":       lipgloss.Color("#E5C100"),
	"Green":        lipgloss.Color("#00A000"),
	"Blue":         lipgloss.Color("#1E66F5"),
	"Purple":       lipgloss.Color("#8839EF"),
	"Teal":         lipgloss.Color("#179299"),
	"Black":        lipgloss.Color("#777777"),
	"Rainbow":      lipgloss.Color("#FF00FF"),
	"Dark Rainbow": lipgloss.Color("#AA00AA"),
	"White":        lipgloss.Color("#FFFFFF"),
	"Brown":        lipgloss.Color("#8B4513"),
	"Pink":         lipgloss.Color("#FF69B4"),
}

// SuitStyle returns the style used for cards of suit s.
func SuitStyle(s variant.Suit) lipgloss.Style {
	if c, ok := suitColors[strings.TrimSuffix(s.Name, " Reversed")]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return lipgloss.NewStyle()
}

// BoxFor returns the hand box style, highlighted for the viewer.
func BoxFor(isViewer bool) lipgloss.Style {
	if isViewer {
		return BoxStyle.Inherit(viewerStyle)
	}
	return BoxStyle
}
