package geometry

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Bounds holds the axis-aligned extents of a model's keypoints. YMin2 and
// YMax2 are the second-smallest and second-largest distinct Y values; the
// area-based boundary conditions clamp onto the slab between YMin..YMin2
// (resp. YMax2..YMax) so that only the end blocks are constrained.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
	YMin2      float64
	YMax2      float64
}

// FindBounds computes the keypoint bounds of a model.
func FindBounds(m *Model) Bounds {
	pts := m.Keypoints()
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	zs := make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i], zs[i] = p[0], p[1], p[2]
	}
	b := Bounds{
		XMin: floats.Min(xs), XMax: floats.Max(xs),
		YMin: floats.Min(ys), YMax: floats.Max(ys),
		ZMin: floats.Min(zs), ZMax: floats.Max(zs),
	}
	b.YMin2, b.YMax2 = secondBounds(ys, b.YMin, b.YMax)
	return b
}

func secondBounds(ys []float64, ymin, ymax float64) (ymin2, ymax2 float64) {
	ymin2, ymax2 = ymin, ymax
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, y := range ys {
		if y != ymin && y < lo {
			lo = y
		}
		if y != ymax && y > hi {
			hi = y
		}
	}
	if !math.IsInf(lo, 1) {
		ymin2 = lo
	}
	if !math.IsInf(hi, -1) {
		ymax2 = hi
	}
	return ymin2, ymax2
}

// GaugeLength is the reference length of the mechanism used to convert a
// percent displacement into an absolute one. Kresling and HERDS models are
// measured over the full Y extent; PET and scissor models exclude the end
// blocks.
func GaugeLength(mech MechType, b Bounds) float64 {
	if mech == Kresling || mech == HERDS {
		return b.YMax - b.YMin
	}
	return b.YMax2 - b.YMin2
}

// Displacement converts a percent-of-gauge-length displacement into an
// absolute value.
func Displacement(mech MechType, b Bounds, percent float64) float64 {
	return GaugeLength(mech, b) * percent / 100.0
}

const endpointTol = 1e-6

// Endpoints returns the distinct keypoints closest to the low-Y and high-Y
// ends of the model, sorted by Y. PET models contribute five low-end and
// three high-end points, scissors two and two. Points within endpointTol
// of an already selected point are duplicates from coincident link ends.
func Endpoints(m *Model, mech MechType) (minY, maxY [][3]float64) {
	pts := m.Keypoints()
	sort.Slice(pts, func(i, j int) bool { return pts[i][1] < pts[j][1] })

	nMin, nMax := 5, 3
	if mech == Scissor {
		nMin, nMax = 2, 2
	}

	for _, p := range pts {
		if len(minY) == nMin {
			break
		}
		if distinct(p, minY) {
			minY = append(minY, p)
		}
	}
	for i := len(pts) - 1; i >= 0; i-- {
		if len(maxY) == nMax {
			break
		}
		if distinct(pts[i], maxY) {
			maxY = append(maxY, pts[i])
		}
	}
	return minY, maxY
}

func distinct(p [3]float64, set [][3]float64) bool {
	for _, q := range set {
		dx, dy, dz := p[0]-q[0], p[1]-q[1], p[2]-q[2]
		if math.Sqrt(dx*dx+dy*dy+dz*dz) <= endpointTol {
			return false
		}
	}
	return true
}
