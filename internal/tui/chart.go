package tui

import (
	"fmt"
	"strings"

	"github.com/galuhadi/ternakscale/internal/service"
)

const chartBarWidth = 28

// renderChart draws the weight-vs-chest-girth slice of the sensitivity table
// as a horizontal bar chart: one bar per girth offset, body length held at
// the measured value. Stands in for the curve plot of the original app.
func renderChart(res *service.Result) string {
	var base *service.Row
	for i := range res.Sensitivity {
		if res.Sensitivity[i].Base {
			base = &res.Sensitivity[i]
			break
		}
	}
	if base == nil {
		return ""
	}

	var rows []service.Row
	maxWeight := 0.0
	for _, row := range res.Sensitivity {
		if row.BodyLength != base.BodyLength {
			continue
		}
		rows = append(rows, row)
		if row.Weight > maxWeight {
			maxWeight = row.Weight
		}
	}

	var b strings.Builder
	for _, row := range rows {
		width := 0
		if maxWeight > 0 {
			width = int(row.Weight / maxWeight * chartBarWidth)
		}
		bar := strings.Repeat("█", width)
		style := barStyle
		marker := " "
		if row.Base {
			style = barBaseStyle
			marker = "▸"
		}
		fmt.Fprintf(&b, "%s LD %5.1f %s %s\n",
			marker, row.ChestGirth, style.Render(bar), formatWeight(row.Weight))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatWeight(w float64) string {
	return fmt.Sprintf("%.2f kg", w)
}
