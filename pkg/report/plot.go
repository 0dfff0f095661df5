package report

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"shopcat/pkg/model"
)

// PlotImportances saves a bar chart of the ranking to path. The image format
// follows the file extension (png, svg, pdf, ...).
func PlotImportances(ranking []model.FeatureImportance, path string) error {
	if len(ranking) == 0 {
		return errors.New("report: nothing to plot")
	}

	p := plot.New()
	p.Title.Text = "Feature Importance"
	p.Y.Label.Text = "Mean impurity decrease"

	vals := make(plotter.Values, len(ranking))
	names := make([]string, len(ranking))
	for i, fi := range ranking {
		vals[i] = fi.Importance
		names[i] = fi.Feature
	}

	bars, err := plotter.NewBarChart(vals, vg.Points(20))
	if err != nil {
		return fmt.Errorf("report: bar chart: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = color.RGBA{R: 46, G: 110, B: 170, A: 255}
	p.Add(bars)

	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	width := max(6*vg.Inch, vg.Length(len(ranking))*0.6*vg.Inch)
	if err := p.Save(width, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}
