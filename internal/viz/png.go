package viz

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/physlab/internal/constants"
	"github.com/san-kum/physlab/internal/scatter"
)

var ErrNoData = errors.New("viz: nothing to plot")

const (
	pngWidth  = 8.0 // inches
	pngHeight = 6.0
	pngDPI    = 150
)

var (
	pathColor   = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	targetColor = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	guideColor  = color.RGBA{R: 0x88, G: 0x88, B: 0x99, A: 0xff}
)

func limitedTicker(maxLabels int, labelFmt string) plot.Ticker {
	return plot.TickerFunc(func(min, max float64) []plot.Tick {
		if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
			return nil
		}
		if min == max {
			return []plot.Tick{{Value: min, Label: fmt.Sprintf(labelFmt, min)}}
		}
		step := (max - min) / float64(maxLabels-1)
		ticks := make([]plot.Tick, 0, maxLabels)
		for i := 0; i < maxLabels; i++ {
			v := min + float64(i)*step
			ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf(labelFmt, v)})
		}
		return ticks
	})
}

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.Padding = vg.Points(8)
	p.X.Label.TextStyle.Font.Size = vg.Points(13)
	p.Y.Label.TextStyle.Font.Size = vg.Points(13)
	p.X.Tick.Label.Font.Size = vg.Points(11)
	p.Y.Tick.Label.Font.Size = vg.Points(11)
	p.X.Tick.Marker = limitedTicker(9, "%.0f")
	p.Y.Tick.Marker = limitedTicker(7, "%.0f")
	p.Add(plotter.NewGrid())
}

// TrajectoryPlot draws the integrated path in femtometres together with
// the target and the incoming impact line. The title carries the
// closed-form angle.
func TrajectoryPlot(out *scatter.Outcome) (*plot.Plot, error) {
	if out == nil || out.Trajectory == nil || out.Trajectory.Len() == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%v   theta = %.2f deg", out.Params, out.Deflection.Degrees)
	p.X.Label.Text = "x (fm)"
	p.Y.Label.Text = "y (fm)"
	stylePlot(p)

	xs, ys := out.Trajectory.Points()
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	path, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	path.LineStyle.Width = vg.Points(2)
	path.LineStyle.Color = pathColor

	guide, err := plotter.NewLine(impactLine(out.Params))
	if err != nil {
		return nil, err
	}
	guide.LineStyle.Color = guideColor
	guide.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}

	target, err := plotter.NewScatter(plotter.XYs{{X: 0, Y: 0}})
	if err != nil {
		return nil, err
	}
	target.GlyphStyle.Shape = draw.CircleGlyph{}
	target.GlyphStyle.Radius = vg.Points(5)
	target.GlyphStyle.Color = targetColor

	p.Add(guide, path, target)
	p.Legend.Add("trajectory", path)
	p.Legend.Add("impact line", guide)
	p.Legend.Add("target", target)
	p.Legend.Top = true
	return p, nil
}

// impactLine is the undeflected path y = b across the whole integration
// window, from -StartDistance to +StartDistance, in femtometres.
func impactLine(p scatter.Parameters) plotter.XYs {
	x := p.StartDistance() / constants.Femtometre
	b := p.ImpactParameter / constants.Femtometre
	return plotter.XYs{{X: -x, Y: b}, {X: x, Y: b}}
}

// SweepPlot draws the closed-form deflection against impact parameter.
func SweepPlot(points []scatter.SweepPoint) (*plot.Plot, error) {
	if len(points) == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Rutherford deflection"
	p.X.Label.Text = "impact parameter (fm)"
	p.Y.Label.Text = "deflection (deg)"
	stylePlot(p)
	p.Y.Min, p.Y.Max = 0, 180

	pts := make(plotter.XYs, len(points))
	for i, sp := range points {
		pts[i].X = sp.Impact / constants.Femtometre
		pts[i].Y = sp.Degrees
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = pathColor
	p.Add(line)
	return p, nil
}

// WritePNG renders p at a fixed size and resolution.
func WritePNG(w io.Writer, p *plot.Plot) error {
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(pngWidth)*vg.Inch, vg.Length(pngHeight)*vg.Inch),
		vgimg.UseDPI(pngDPI),
	)
	p.Draw(draw.New(c))

	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(w); err != nil {
		return fmt.Errorf("viz: write png: %w", err)
	}
	return nil
}

func SavePNG(path string, p *plot.Plot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("viz: create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("viz: create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := WritePNG(bw, p); err != nil {
		return err
	}
	return bw.Flush()
}
