package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/simonSlamka/wolter/internal/tui/theme"
)

var barBlocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a one-line unicode sparkline.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(barBlocks)-1))
		if idx >= len(barBlocks) {
			idx = len(barBlocks) - 1
		}
		if idx < 1 && v > 0 {
			idx = 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(barBlocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Render(b.String())
}

// BarChart renders a column chart with a y-axis label column. Values wider
// than the chart area are downsampled by striding.
func BarChart(values []float64, color lipgloss.Color, width, height int) string {
	if len(values) == 0 || height < 2 {
		return Sparkline(values, color)
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	yLabel := fmt.Sprintf("%.0f", peak)
	chartW := width - len(yLabel) - 2
	if chartW < 5 {
		chartW = 5
	}
	if len(values) > chartW {
		stride := (len(values) + chartW - 1) / chartW
		sampled := make([]float64, 0, chartW)
		for i := 0; i < len(values); i += stride {
			end := i + stride
			if end > len(values) {
				end = len(values)
			}
			var sum float64
			for _, v := range values[i:end] {
				sum += v
			}
			sampled = append(sampled, sum/float64(end-i))
		}
		values = sampled
	}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	barStyle := lipgloss.NewStyle().Foreground(color)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		top := peak * float64(row) / float64(height)
		bottom := peak * float64(row-1) / float64(height)

		label := strings.Repeat(" ", len(yLabel))
		if row == height {
			label = yLabel
		}
		b.WriteString(axisStyle.Render(label + "│"))

		for _, v := range values {
			switch {
			case v >= top:
				b.WriteString(barStyle.Render("█"))
			case v > bottom:
				frac := (v - bottom) / (top - bottom)
				idx := int(frac * 8)
				if idx < 1 {
					idx = 1
				}
				if idx > 8 {
					idx = 8
				}
				b.WriteString(barStyle.Render(string(barBlocks[idx])))
			default:
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└%s", len(yLabel), "0", strings.Repeat("─", len(values)))))
	return b.String()
}
