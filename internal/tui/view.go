package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/GoldenEggsUNION/mcsAna/internal/report"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	headerRowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

const chartHeight = 8

func (m Model) bodyWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) bodyHeight() int {
	// Title, date strip, chart section, and help line take the rest.
	h := m.height - chartHeight - 8
	if h < 3 {
		h = 3
	}
	return h
}

// View renders the full browser layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	}

	title := titleStyle.Render("mcsAna — player activity reports")
	dateStrip := m.renderDateStrip()
	body := sectionStyle.Width(m.bodyWidth()).Render(m.body.View())
	chart := sectionStyle.Width(m.bodyWidth()).Render(m.renderTopChart())
	help := helpStyle.Render("←/→ day · ↑/↓ scroll · g/G first/last · r reload · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, dateStrip, body, chart, help)
}

func (m Model) renderDateStrip() string {
	if len(m.dates) == 0 {
		return helpStyle.Render("No stored reports. Run mcsana first.")
	}
	return fmt.Sprintf("Day %d/%d: %s", m.cursor+1, len(m.dates), m.SelectedDate())
}

// bodyContent formats the selected day's rows as a fixed-width table.
func (m Model) bodyContent() string {
	if len(m.rows) == 0 {
		return "No player activity for this day."
	}

	var b strings.Builder
	b.WriteString(headerRowStyle.Render(fmt.Sprintf(
		"%-20s %12s %12s %10s %10s",
		"Player", "Online (s)", "Online (m)", "Online (h)", "Commands")))
	b.WriteString("\n")
	for _, row := range m.rows {
		b.WriteString(fmt.Sprintf(
			"%-20s %12d %12s %10s %10d\n",
			truncateName(row.Player, 20),
			row.OnlineSeconds,
			report.FormatDecimal(row.OnlineMinutes()),
			report.FormatDecimal(row.OnlineHours()),
			row.Commands))
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncateName(name string, max int) string {
	if len(name) <= max {
		return name
	}
	if max <= 1 {
		return name[:max]
	}
	return name[:max-1] + "…"
}
