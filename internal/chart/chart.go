// Package chart renders analysis results as PNG charts. Every constructor
// returns nil when its input is empty or lacks the needed columns; callers
// treat a nil chart as "nothing to draw".
package chart

import (
	"fmt"
	"io"
	"math"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ademuri/spotify-eda/internal/analysis"
	"github.com/ademuri/spotify-eda/internal/table"
)

// Chart is a plot together with the size it is rendered at.
type Chart struct {
	Plot   *plot.Plot
	Width  vg.Length
	Height vg.Length
}

const DefaultTitle = "Feature Correlation Heatmap"

func newChart(title string, width, height vg.Length) *Chart {
	p := plot.New()
	p.Title.Text = title
	return &Chart{Plot: p, Width: width, Height: height}
}

// CorrelationHeatmap draws m with each cell annotated by its coefficient.
func CorrelationHeatmap(m analysis.Matrix, title string) (*Chart, error) {
	if len(m.Columns) < 2 {
		return nil, nil
	}
	c := newChart(title, 12*vg.Inch, 8*vg.Inch)

	heat := plotter.NewHeatMap(matrixGrid(m), palette.Heat(12, 1))
	heat.Min, heat.Max = -1, 1
	c.Plot.Add(heat)

	var labels plotter.XYLabels
	for r := range m.Columns {
		for col := range m.Columns {
			labels.XYs = append(labels.XYs, plotter.XY{X: float64(col), Y: float64(r)})
			labels.Labels = append(labels.Labels, formatCoefficient(m.Values[r][col]))
		}
	}
	l, err := plotter.NewLabels(labels)
	if err != nil {
		return nil, fmt.Errorf("labelling heatmap: %w", err)
	}
	c.Plot.Add(l)

	c.Plot.NominalX(m.Columns...)
	c.Plot.NominalY(m.Columns...)
	return c, nil
}

func formatCoefficient(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.2f", v)
}

type matrixGrid analysis.Matrix

func (g matrixGrid) Dims() (c, r int)   { return len(g.Columns), len(g.Columns) }
func (g matrixGrid) Z(c, r int) float64 { return g.Values[r][c] }
func (g matrixGrid) X(c int) float64    { return float64(c) }
func (g matrixGrid) Y(r int) float64    { return float64(r) }

// GenreBar draws the first topN genre counts.
func GenreBar(counts []analysis.GenreCount, topN int) (*Chart, error) {
	counts = analysis.HeadGenres(counts, topN)
	if len(counts) == 0 {
		return nil, nil
	}
	c := newChart(fmt.Sprintf("Top %d Genres", topN), 12*vg.Inch, 6*vg.Inch)
	c.Plot.X.Label.Text = "Genre"
	c.Plot.Y.Label.Text = "Count"

	values := make(plotter.Values, len(counts))
	names := make([]string, len(counts))
	for i, gc := range counts {
		values[i] = float64(gc.Count)
		names[i] = gc.Genre
	}
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, fmt.Errorf("genre bars: %w", err)
	}
	c.Plot.Add(bars)
	c.Plot.NominalX(names...)
	c.Plot.X.Tick.Label.Rotation = math.Pi / 4
	c.Plot.X.Tick.Label.XAlign = -1
	return c, nil
}

// PopularityTrend draws mean popularity against the end date of each period.
func PopularityTrend(points []analysis.TrendPoint, freqLabel string) (*Chart, error) {
	if len(points) == 0 {
		return nil, nil
	}
	c := newChart(fmt.Sprintf("Average Track Popularity Over Time (%s)", freqLabel), 12*vg.Inch, 6*vg.Inch)
	c.Plot.X.Label.Text = "Time"
	c.Plot.Y.Label.Text = "Average Popularity"
	c.Plot.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	c.Plot.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: float64(pt.Period.Unix()), Y: pt.Popularity}
	}
	line, scatter, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, fmt.Errorf("trend line: %w", err)
	}
	c.Plot.Add(line, scatter)
	return c, nil
}

// TopEntities draws a horizontal bar per row of t, ranked by valueCol. The
// largest value is drawn at the top.
func TopEntities(t *table.Table, nameCol, valueCol string, topN int, title string) (*Chart, error) {
	if t == nil || t.Len() == 0 || !t.Has(nameCol) || !t.Has(valueCol) {
		return nil, nil
	}
	top := t.SortDesc(valueCol).Head(topN)

	n := top.Len()
	values := make(plotter.Values, n)
	names := make([]string, n)
	for i := 0; i < n; i++ {
		// Reversed so the first row sits at the top of the y axis.
		j := n - 1 - i
		v, _ := table.ToFloat(top.Value(i, valueCol))
		values[j] = v
		names[j] = table.FormatCell(top.Value(i, nameCol))
	}

	c := newChart(title, 12*vg.Inch, 6*vg.Inch)
	c.Plot.X.Label.Text = capitalize(valueCol)
	c.Plot.Y.Label.Text = capitalize(nameCol)
	bars, err := plotter.NewBarChart(values, vg.Points(15))
	if err != nil {
		return nil, fmt.Errorf("%s bars: %w", valueCol, err)
	}
	bars.Horizontal = true
	c.Plot.Add(bars)
	c.Plot.NominalY(names...)
	return c, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Save writes c to path as an image whose format follows the file extension.
// A nil chart writes nothing and reports false.
func Save(c *Chart, path string) (bool, error) {
	if c == nil {
		return false, nil
	}
	if err := c.Plot.Save(c.Width, c.Height, path); err != nil {
		return false, fmt.Errorf("saving %s: %w", path, err)
	}
	return true, nil
}

func WritePNG(w io.Writer, c *Chart) error {
	wt, err := c.Plot.WriterTo(c.Width, c.Height, "png")
	if err != nil {
		return fmt.Errorf("rendering png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("writing png: %w", err)
	}
	return nil
}
