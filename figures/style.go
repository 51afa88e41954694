package figures

import (
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	colorsv1 "gopkg.in/go-playground/colors.v1"
)

// Paper palette. Series colors are fixed so figures regenerate
// identically across runs.
var (
	PETColor       = mustHex("#69DFE8")
	KreslingColor  = mustHex("#EBAD4B")
	HERDSColor     = mustHex("#963800")
	SolidBeamColor = mustHex("#6A4E72")
)

func mustHex(s string) color.Color {
	h, err := colorsv1.ParseHEX(s)
	if err != nil {
		panic(err)
	}
	rgb := h.ToRGB()
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// Point is one sample of a plotted series.
type Point struct {
	X, Y float64
}

func sortByX(pts []Point) {
	sort.Slice(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
}

func toXYs(pts []Point) plotter.XYs {
	xys := make(plotter.XYs, len(pts))
	for i, p := range pts {
		xys[i].X, xys[i].Y = p.X, p.Y
	}
	return xys
}

func newFigure(xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Legend.Top = true
	return p
}

func addLine(p *plot.Plot, name string, pts []Point, c color.Color, width vg.Length) error {
	ln, err := plotter.NewLine(toXYs(pts))
	if err != nil {
		return errors.Wrapf(err, "line %s", name)
	}
	ln.LineStyle.Color = c
	ln.LineStyle.Width = width
	p.Add(ln)
	p.Legend.Add(name, ln)
	return nil
}

func addDashedLine(p *plot.Plot, name string, pts []Point, c color.Color) error {
	ln, err := plotter.NewLine(toXYs(pts))
	if err != nil {
		return errors.Wrapf(err, "line %s", name)
	}
	ln.LineStyle.Color = c
	ln.LineStyle.Width = vg.Points(2)
	ln.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	p.Add(ln)
	p.Legend.Add(name, ln)
	return nil
}

// addScatter draws open-circle markers in the series color, matching the
// paper's marker style.
func addScatter(p *plot.Plot, name string, pts []Point, c color.Color) error {
	sc, err := plotter.NewScatter(toXYs(pts))
	if err != nil {
		return errors.Wrapf(err, "scatter %s", name)
	}
	sc.GlyphStyle = draw.GlyphStyle{Color: c, Radius: vg.Points(3.5), Shape: draw.RingGlyph{}}
	p.Add(sc)
	p.Legend.Add(name, sc)
	return nil
}

// savePlot writes the figure as SVG at the paper's 10x6 inch size,
// creating the plot directory as needed.
func savePlot(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create plot directory")
	}
	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	return nil
}
