package geometry

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// MechType identifies the deployable mechanism family of a model. The
// family controls end-block construction, gauge length and which flavor of
// boundary conditions applies.
type MechType string

const (
	PET      MechType = "PET"
	Scissor  MechType = "SCISSOR"
	Kresling MechType = "KRESLING"
	HERDS    MechType = "HERDS"
)

func NewMechType(label string) (MechType, error) {
	switch MechType(strings.ToUpper(label)) {
	case PET:
		return PET, nil
	case Scissor:
		return Scissor, nil
	case Kresling:
		return Kresling, nil
	case HERDS:
		return HERDS, nil
	}
	return "", errors.Errorf("unknown mechanism type %q", label)
}

// Link is one row of a model configuration CSV: a pair of keypoints joined
// by a line, with a rectangular beam cross section.
type Link struct {
	X1, Y1, Z1 float64
	X2, Y2, Z2 float64
	Width      float64
	Height     float64
}

// Section is a distinct rectangular cross section used by one or more links.
type Section struct {
	Width  float64
	Height float64
}

// Model is an immutable geometric description of a deployable truss, read
// from a per-model CSV file.
type Model struct {
	Links []Link
}

var modelColumns = []string{"x1", "y1", "z1", "x2", "y2", "z2", "width", "height"}

// ReadModelCSV loads a model configuration file. The header must contain
// the columns x1,y1,z1,x2,y2,z2,width,height; column order is free and
// extra columns are ignored.
func ReadModelCSV(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open model config")
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read model config %s", path)
	}
	if len(rows) < 2 {
		return nil, errors.Errorf("model config %s has no data rows", path)
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range modelColumns {
		if _, ok := col[name]; !ok {
			return nil, errors.Errorf("model config %s missing column %q", path, name)
		}
	}

	m := &Model{Links: make([]Link, 0, len(rows)-1)}
	for n, row := range rows[1:] {
		vals := make([]float64, len(modelColumns))
		for i, name := range modelColumns {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[col[name]]), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d column %q", n+2, name)
			}
			vals[i] = v
		}
		m.Links = append(m.Links, Link{
			X1: vals[0], Y1: vals[1], Z1: vals[2],
			X2: vals[3], Y2: vals[4], Z2: vals[5],
			Width: vals[6], Height: vals[7],
		})
	}
	return m, nil
}

// Scale returns a copy of the model with coordinates multiplied by geom and
// cross-section dimensions multiplied by cross.
func (m *Model) Scale(geom, cross float64) *Model {
	out := &Model{Links: make([]Link, len(m.Links))}
	for i, l := range m.Links {
		l.X1, l.Y1, l.Z1 = l.X1*geom, l.Y1*geom, l.Z1*geom
		l.X2, l.Y2, l.Z2 = l.X2*geom, l.Y2*geom, l.Z2*geom
		l.Width *= cross
		l.Height *= cross
		out.Links[i] = l
	}
	return out
}

// Sections returns the distinct cross sections in first-appearance order.
// Section numbering in the generated deck follows this order, starting at 1.
func (m *Model) Sections() []Section {
	var (
		out  []Section
		seen = make(map[Section]bool)
	)
	for _, l := range m.Links {
		s := Section{Width: l.Width, Height: l.Height}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// Keypoints returns the endpoint coordinates of every link, two per link,
// in link order. Coincident endpoints of adjacent links are kept; the deck
// merges them with NUMMRG.
func (m *Model) Keypoints() [][3]float64 {
	pts := make([][3]float64, 0, 2*len(m.Links))
	for _, l := range m.Links {
		pts = append(pts, [3]float64{l.X1, l.Y1, l.Z1}, [3]float64{l.X2, l.Y2, l.Z2})
	}
	return pts
}
