package physics

import (
	"math"
	"math/bits"
	"sort"
)

// Mask is a 1-bit opacity map. Bit (x,y) is set when the sprite covers that pixel.
// Rows are packed into 64-bit words.
type Mask struct {
	w, h   int
	stride int // words per row
	bits   []uint64
}

// NewMask creates an empty mask of the given size.
func NewMask(w, h int) *Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	stride := (w + 63) / 64
	return &Mask{
		w:      w,
		h:      h,
		stride: stride,
		bits:   make([]uint64, stride*h),
	}
}

// NewFilledMask creates a mask with every pixel set.
func NewFilledMask(w, h int) *Mask {
	m := NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y)
		}
	}
	return m
}

// NewPolygonMask rasterizes a polygon given in unit coordinates (0..1 on each
// axis) into a w×h mask.
func NewPolygonMask(w, h int, unit []Point) *Mask {
	m := NewMask(w, h)
	scaled := make([]Point, len(unit))
	for i, p := range unit {
		scaled[i] = Point{X: p.X * float64(w), Y: p.Y * float64(h)}
	}
	m.FillPolygon(scaled)
	return m
}

// Size returns the mask dimensions.
func (m *Mask) Size() (w, h int) {
	return m.w, m.h
}

// Set marks pixel (x,y) as opaque. Out-of-range coordinates are ignored.
func (m *Mask) Set(x, y int) {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return
	}
	m.bits[y*m.stride+x/64] |= 1 << uint(x%64)
}

// Get reports whether pixel (x,y) is opaque.
func (m *Mask) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	return m.bits[y*m.stride+x/64]&(1<<uint(x%64)) != 0
}

// Count returns the number of opaque pixels.
func (m *Mask) Count() int {
	n := 0
	for _, word := range m.bits {
		n += bits.OnesCount64(word)
	}
	return n
}

// FillPolygon sets every pixel whose centre lies inside the polygon
// (pixel-space coordinates), using a scanline fill.
func (m *Mask) FillPolygon(points []Point) {
	if len(points) < 3 {
		return
	}

	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	var intersections []float64
	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		intersections = intersections[:0]

		n := len(points)
		for i := 0; i < n; i++ {
			p1 := points[i]
			p2 := points[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i] - 0.5))
			xEnd := int(math.Floor(intersections[i+1] - 0.5))
			for x := xStart; x <= xEnd; x++ {
				m.Set(x, y)
			}
		}
	}
}

// Overlap reports whether m and other share an opaque pixel when other's
// origin sits at (dx,dy) relative to m's origin.
func (m *Mask) Overlap(other *Mask, dx, dy int) bool {
	if m == nil || other == nil {
		return false
	}
	x0 := max(0, dx)
	y0 := max(0, dy)
	x1 := min(m.w, dx+other.w)
	y1 := min(m.h, dy+other.h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if m.Get(x, y) && other.Get(x-dx, y-dy) {
				return true
			}
		}
	}
	return false
}

// Collide reports whether two masks placed at the given boxes overlap.
// The boxes' W/H are not consulted; the masks define the extents.
func Collide(a *Mask, ar Rect, b *Mask, br Rect) bool {
	return a.Overlap(b, br.X-ar.X, br.Y-ar.Y)
}
