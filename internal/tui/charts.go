package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
)

var barStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("39")).
	Background(lipgloss.Color("39"))

// renderTopChart draws cumulative online hours for the top players
// across all stored days.
func (m Model) renderTopChart() string {
	header := headerRowStyle.Render("Top players by cumulative online time (hours)")
	if len(m.top) == 0 {
		return header + "\n" + helpStyle.Render("No data available")
	}

	chartWidth := m.bodyWidth() - 4
	if chartWidth < 20 {
		chartWidth = 20
	}

	bc := barchart.New(chartWidth, chartHeight-2,
		barchart.WithBarGap(1),
		barchart.WithNoAxis(),
	)
	for _, pt := range m.top {
		hours := float64(pt.OnlineSeconds) / 3600
		if hours < 0 {
			hours = 0 // the chart cannot draw negative bars; totals stay visible in the table
		}
		bc.Push(barchart.BarData{
			Label: truncateName(pt.Player, 8),
			Values: []barchart.BarValue{
				{Name: pt.Player, Value: hours, Style: barStyle},
			},
		})
	}
	bc.Draw()

	var legend strings.Builder
	for i, pt := range m.top {
		if i > 0 {
			legend.WriteString("  ")
		}
		fmt.Fprintf(&legend, "%s %.2fh", truncateName(pt.Player, 12), float64(pt.OnlineSeconds)/3600)
	}

	return header + "\n" + bc.View() + "\n" + helpStyle.Render(legend.String())
}
