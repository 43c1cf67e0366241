package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/sireesha-siri/geotag-plants/internal/client/models"
)

const (
	plotWidth  = 60
	plotHeight = 20
)

// Map renders the collection as an ASCII scatter plot of coordinates, a
// terminal stand-in for the browser map view.
func (a *App) Map(ctx context.Context) error {
	records := a.sync.Records()
	if len(records) == 0 {
		printlnFn("No plants to plot")
		return nil
	}
	printlnFn(renderPlot(records))
	return nil
}

// renderPlot lays the records onto a fixed-size grid, stretched to the
// bounding box of the coordinates. Overlapping records render as '*'.
func renderPlot(records []models.PlantRecord) string {
	minLat, maxLat := records[0].Latitude, records[0].Latitude
	minLon, maxLon := records[0].Longitude, records[0].Longitude
	for _, r := range records[1:] {
		minLat = min(minLat, r.Latitude)
		maxLat = max(maxLat, r.Latitude)
		minLon = min(minLon, r.Longitude)
		maxLon = max(maxLon, r.Longitude)
	}

	grid := make([][]rune, plotHeight)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(".", plotWidth))
	}

	for _, r := range records {
		x := scale(r.Longitude, minLon, maxLon, plotWidth-1)
		// Latitude grows upward, terminal rows grow downward.
		y := plotHeight - 1 - scale(r.Latitude, minLat, maxLat, plotHeight-1)
		if grid[y][x] == '.' {
			grid[y][x] = 'o'
		} else {
			grid[y][x] = '*'
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "lat %.4f..%.4f, lon %.4f..%.4f, %d plant(s)\n",
		minLat, maxLat, minLon, maxLon, len(records))
	for _, row := range grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func scale(v, lo, hi float64, steps int) int {
	if hi == lo {
		return steps / 2
	}
	return int((v - lo) / (hi - lo) * float64(steps))
}
