package chart

import (
	"fmt"
	"sort"
	"strings"

	"github.com/DachengChen/askdb/chat"
	"github.com/charmbracelet/lipgloss"
)

// PieTitle is the caption above every pie chart.
const PieTitle = "PROPORTIONAL BREAKDOWN"

// Slice is one pie segment. Share is the fraction of the positive
// total and is zero for undefined or non-positive values.
type Slice struct {
	Label string
	Value *float64
	Share float64
	Color lipgloss.Color
}

// SliceColor returns the palette colour for slice i.
func SliceColor(i int) lipgloss.Color {
	return Palette[i%len(Palette)]
}

// PieSlices zips labels with values and assigns palette colours.
func PieSlices(p *chat.PieChart) []Slice {
	if p == nil {
		return nil
	}
	points := zip(p.Labels, p.Values)

	total := 0.0
	for _, pt := range points {
		if pt.Value != nil && *pt.Value > 0 {
			total += *pt.Value
		}
	}

	slices := make([]Slice, len(points))
	for i, pt := range points {
		slices[i] = Slice{Label: pt.Label, Value: pt.Value, Color: SliceColor(i)}
		if total > 0 && pt.Value != nil && *pt.Value > 0 {
			slices[i].Share = *pt.Value / total
		}
	}
	return slices
}

// RenderPie draws a proportional strip followed by a colour legend.
func RenderPie(p *chat.PieChart, width int) string {
	slices := PieSlices(p)
	if len(slices) == 0 {
		return ""
	}
	if width < 20 {
		width = 20
	}

	var sb strings.Builder
	sb.WriteString(styleCaption.Render(PieTitle))
	sb.WriteString("\n")

	cells := stripCells(slices, width)
	for i, n := range cells {
		if n == 0 {
			continue
		}
		sb.WriteString(lipgloss.NewStyle().Foreground(slices[i].Color).Render(strings.Repeat("█", n)))
	}

	labels := make([]string, len(slices))
	for i, s := range slices {
		labels[i] = s.Label
	}
	labelW := labelColumn(labels, width)

	for _, s := range slices {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Foreground(s.Color).Render("■"))
		sb.WriteString(" ")
		sb.WriteString(fitLabel(s.Label, labelW))
		sb.WriteString("  ")
		sb.WriteString(styleValue.Render(FormatValue(s.Value)))
		sb.WriteString(styleAxis.Render(fmt.Sprintf("  %.1f%%", s.Share*100)))
	}
	return sb.String()
}

// stripCells splits width cells between slices by share using the
// largest remainder method so the strip always fills exactly.
func stripCells(slices []Slice, width int) []int {
	cells := make([]int, len(slices))
	type rem struct {
		idx  int
		frac float64
	}
	var rems []rem
	used := 0
	for i, s := range slices {
		exact := s.Share * float64(width)
		cells[i] = int(exact)
		used += cells[i]
		if s.Share > 0 {
			rems = append(rems, rem{idx: i, frac: exact - float64(cells[i])})
		}
	}
	if len(rems) == 0 {
		return cells
	}
	sort.SliceStable(rems, func(a, b int) bool { return rems[a].frac > rems[b].frac })
	for i := 0; used < width; i = (i + 1) % len(rems) {
		cells[rems[i].idx]++
		used++
	}
	return cells
}
