package viz

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/statmech/internal/storage"
)

// RenderTable renders t with a header row. Values use %.6g.
func RenderTable(t *storage.Table) string {
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = strconv.FormatFloat(v, 'g', 6, 64)
		}
		rows[i] = cells
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(BorderStyle).
		Headers(t.Columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}
			return CellStyle
		}).
		String()
}

// Plot draws column y of t as a line; x only labels the caption range.
func Plot(t *storage.Table, x, y string, height, width int) (string, error) {
	xs, err := t.Column(x)
	if err != nil {
		return "", err
	}
	ys, err := t.Column(y)
	if err != nil {
		return "", err
	}
	if len(ys) == 0 {
		return "", fmt.Errorf("no data to plot")
	}

	caption := fmt.Sprintf("%s vs %s (%s = %.4g .. %.4g)", y, x, x, xs[0], xs[len(xs)-1])
	return asciigraph.Plot(ys,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	), nil
}

// PlotSeries draws several equally long series on one chart.
func PlotSeries(series [][]float64, height, width int, caption string) string {
	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Magenta, asciigraph.Goldenrod),
	)
}
