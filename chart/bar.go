package chart

import (
	"math"
	"strings"

	"github.com/DachengChen/askdb/chat"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// BarTitle is the caption above every bar chart.
const BarTitle = "DISTRIBUTION VIEW"

// BarPoints returns one point per label of the chart.
func BarPoints(b *chat.BarChart) []Point {
	if b == nil {
		return nil
	}
	return zip(b.Labels, b.Values)
}

// RenderBar draws a horizontal bar chart fitting in width columns.
// Bars are scaled against the largest positive value; non-positive and
// undefined values get an empty bar.
func RenderBar(b *chat.BarChart, width int) string {
	points := BarPoints(b)
	if len(points) == 0 {
		return ""
	}
	if width < 20 {
		width = 20
	}

	labels := make([]string, len(points))
	values := make([]string, len(points))
	valueW := 1
	peak := 0.0
	for i, p := range points {
		labels[i] = p.Label
		values[i] = FormatValue(p.Value)
		if w := runewidth.StringWidth(values[i]); w > valueW {
			valueW = w
		}
		if p.Value != nil && *p.Value > peak {
			peak = *p.Value
		}
	}
	labelW := labelColumn(labels, width)

	// label + " │" + bar + " " + value
	barW := width - labelW - valueW - 3
	if barW < 1 {
		barW = 1
	}

	fill := lipgloss.NewStyle().Foreground(BarColor)

	var sb strings.Builder
	sb.WriteString(styleCaption.Render(BarTitle))
	sb.WriteString("\n")
	if b.YLabel != "" {
		sb.WriteString(styleAxis.Render(b.YLabel))
		sb.WriteString("\n")
	}
	for i, p := range points {
		n := barLength(p.Value, peak, barW)
		sb.WriteString(fitLabel(p.Label, labelW))
		sb.WriteString(styleAxis.Render(" │"))
		if n > 0 {
			sb.WriteString(fill.Render(strings.Repeat("█", n)))
		}
		sb.WriteString(" ")
		sb.WriteString(styleValue.Render(values[i]))
		if i < len(points)-1 {
			sb.WriteString("\n")
		}
	}
	if b.XLabel != "" {
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", labelW+2))
		sb.WriteString(styleAxis.Render(b.XLabel))
	}
	return sb.String()
}

func barLength(v *float64, peak float64, barW int) int {
	if v == nil || *v <= 0 || peak <= 0 {
		return 0
	}
	n := int(math.Round(*v / peak * float64(barW)))
	if n == 0 {
		n = 1
	}
	return n
}
