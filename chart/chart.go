// Package chart renders agent chart payloads as terminal blocks.
//
// Both renderers zip labels with values by index. Values are not
// validated against labels: a label without a matching value is kept
// and plotted as undefined.
package chart

import (
	"math"
	"strconv"
	"strings"

	"github.com/DachengChen/askdb/chat"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Palette is the slice colour cycle used by pie charts.
var Palette = []lipgloss.Color{"#6366f1", "#8b5cf6", "#06b6d4", "#10b981", "#f59e0b"}

// BarColor is the fill used for every bar.
var BarColor = Palette[0]

const undefinedValue = "–"

var (
	styleCaption = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	styleAxis    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleValue   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// Point is one label/value pair. Value is nil when the payload had no
// value at the label's index.
type Point struct {
	Label string
	Value *float64
}

// zip pairs labels[i] with values[i]. Missing and undefined values give
// a nil point value.
func zip(labels []string, values []float64) []Point {
	points := make([]Point, len(labels))
	for i, l := range labels {
		points[i].Label = l
		if i < len(values) && !chat.Undefined(values[i]) {
			v := values[i]
			points[i].Value = &v
		}
	}
	return points
}

// FormatValue prints integers without decimals and everything else with
// at most two.
func FormatValue(v *float64) string {
	if v == nil {
		return undefinedValue
	}
	f := *v
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	s := strconv.FormatFloat(f, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// labelColumn returns the padded width for the label column, capped to
// a third of the available width.
func labelColumn(labels []string, width int) int {
	w := 1
	for _, l := range labels {
		if lw := runewidth.StringWidth(l); lw > w {
			w = lw
		}
	}
	if limit := width / 3; limit > 0 && w > limit {
		w = limit
	}
	return w
}

func fitLabel(label string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(label, w, "…"), w)
}
