// Package draw renders the play field onto a terminal using coloured
// half-block characters.
package draw

import (
	"math"

	"github.com/muesli/termenv"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is an index into a Palette. ColorNone is an unlit pixel.
type Color uint8

const (
	ColorNone    Color = 0
	colorInvalid Color = math.MaxUint8
)

const resetSeq = termenv.CSI + termenv.ResetSeq + "m"

// Palette maps colour indexes to the escape sequences of one terminal
// profile. Colour i (from 1) is the i-th hex colour given to NewPalette.
type Palette struct {
	fgSeq []string
	bgSeq []string
}

// NewPalette prepares escape sequences for hexes under profile. On an Ascii
// profile every colour renders as the terminal's default.
func NewPalette(profile termenv.Profile, hexes ...string) *Palette {
	p := &Palette{
		fgSeq: make([]string, len(hexes)+1),
		bgSeq: make([]string, len(hexes)+1),
	}
	for i, hex := range hexes {
		c := profile.Color(hex)
		if c == nil {
			continue
		}
		if seq := c.Sequence(false); seq != "" {
			p.fgSeq[i+1] = termenv.CSI + seq + "m"
		}
		if seq := c.Sequence(true); seq != "" {
			p.bgSeq[i+1] = termenv.CSI + seq + "m"
		}
	}
	return p
}

// Len returns the number of colours, not counting ColorNone.
func (p *Palette) Len() int { return len(p.fgSeq) - 1 }

func (p *Palette) fg(c Color) string {
	if int(c) >= len(p.fgSeq) {
		return ""
	}
	return p.fgSeq[c]
}

func (p *Palette) bg(c Color) string {
	if int(c) >= len(p.bgSeq) {
		return ""
	}
	return p.bgSeq[c]
}

// Place maps a unit-space outline (0..1 on both axes) into the rectangle
// (x, y, w, h), rotated by angle degrees counter-clockwise about the
// rectangle's centre. The result is appended to dst.
func Place(dst []Point, unit []Point, x, y, w, h, angle float64) []Point {
	cx, cy := x+w/2, y+h/2
	sin, cos := math.Sincos(angle * math.Pi / 180)
	for _, u := range unit {
		dx := (u.X - 0.5) * w
		dy := (u.Y - 0.5) * h
		dst = append(dst, Point{
			X: cx + dx*cos + dy*sin,
			Y: cy - dx*sin + dy*cos,
		})
	}
	return dst
}
