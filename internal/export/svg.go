package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/statmech/internal/storage"
)

// Stroke colours for successive series.
var Palette = []string{"#ff00ff", "#ffaa00", "#00ccff", "#00ff88", "#ff4444"}

type point struct{ X, Y float64 }

// TableToSVG plots the y columns of t against column x as polylines on a
// shared scale. Non-finite values are skipped.
func TableToSVG(t *storage.Table, x string, ys []string, width, height int) (string, error) {
	if len(ys) == 0 {
		return "", fmt.Errorf("svg: no series")
	}
	xs, err := t.Column(x)
	if err != nil {
		return "", err
	}

	series := make([][]point, len(ys))
	for i, name := range ys {
		col, err := t.Column(name)
		if err != nil {
			return "", err
		}
		for j := range col {
			if isFinite(xs[j]) && isFinite(col[j]) {
				series[i] = append(series[i], point{xs[j], col[j]})
			}
		}
		if len(series[i]) < 2 {
			return "", fmt.Errorf("svg: series %s has fewer than 2 points", name)
		}
	}

	minX, maxX := series[0][0].X, series[0][0].X
	minY, maxY := series[0][0].Y, series[0][0].Y
	for _, s := range series {
		for _, p := range s {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, s := range series {
		color := Palette[i%len(Palette)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" data-series="%s" d="M`, color, ys[i]))
		for j, p := range s {
			px := (p.X - minX) / rangeX * float64(width)
			py := float64(height) - (p.Y-minY)/rangeY*float64(height)
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", px, py))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px, py))
			}
		}
		sb.WriteString("\"/>\n")
		sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 16+14*i, color, ys[i]))
	}

	sb.WriteString("</svg>\n")
	return sb.String(), nil
}

// WriteSVG writes TableToSVG's output to w.
func WriteSVG(w io.Writer, t *storage.Table, x string, ys []string, width, height int) error {
	svg, err := TableToSVG(t, x, ys, width, height)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, svg)
	return err
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
