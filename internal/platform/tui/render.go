package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skyrunner/internal/analyzer"
	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/difficulty"
)

// PanelWidth is the fixed width of the adaptation panel, including its
// border.
const PanelWidth = 30

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(PanelWidth - 2)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	symptomStyles = map[analyzer.Symptom]lipgloss.Style{
		analyzer.VeryLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		analyzer.Low:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		analyzer.SlightlyLow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		analyzer.Normal:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		analyzer.SlightlyHigh: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		analyzer.High:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		analyzer.SharplyHigh:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)

// RenderScreen converts a Screen buffer to a plain string for display.
func RenderScreen(s *core.Screen) string {
	return s.String()
}

// PanelState is everything the adaptation panel displays.
type PanelState struct {
	Symptom     analyzer.Symptom
	HasSymptom  bool
	Profile     *difficulty.Profile
	Deaths      int
	Adjustments int
	InFlight    bool
	Spinner     string
	Enabled     bool
}

// RenderPanel draws the adaptation side panel.
func RenderPanel(st PanelState, height int) string {
	var b strings.Builder

	b.WriteString(panelTitleStyle.Render("adaptive difficulty"))
	b.WriteString("\n\n")

	if !st.Enabled {
		b.WriteString(labelStyle.Render("disabled"))
		b.WriteString("\n\n")
	}

	b.WriteString(labelStyle.Render("performance "))
	if st.HasSymptom {
		style, ok := symptomStyles[st.Symptom]
		if !ok {
			style = lipgloss.NewStyle()
		}
		b.WriteString(style.Render(st.Symptom.String()))
	} else {
		b.WriteString("—")
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("deaths      "))
	fmt.Fprintf(&b, "%d", st.Deaths)
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("adjustments "))
	fmt.Fprintf(&b, "%d", st.Adjustments)
	b.WriteString("\n")

	if st.InFlight {
		b.WriteString("\n")
		b.WriteString(st.Spinner)
		b.WriteString(" consulting director...")
		b.WriteString("\n")
	}

	if st.Profile != nil {
		b.WriteString("\n")
		b.WriteString(panelTitleStyle.Render("profile"))
		b.WriteString("\n")
		for _, v := range st.Profile.Variables() {
			fmt.Fprintf(&b, "%s %.2f\n", labelStyle.Render(padName(v.Name)), v.Value)
		}
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("space jump · r respawn\np pause · n new session\nq quit"))

	panel := panelStyle.Render(b.String())
	return lipgloss.PlaceVertical(height, lipgloss.Top, panel)
}

// padName shortens and pads a variable name to the panel column width.
func padName(name string) string {
	const w = 17
	if len(name) > w {
		name = name[:w]
	}
	return name + strings.Repeat(" ", w-len(name))
}
