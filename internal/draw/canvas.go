package draw

import (
	"io"
	"math"
	"slices"
	"strings"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters. Every sub-pixel holds a palette colour. Drawing happens in
// logical coordinates that are scaled to the terminal.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]
	shown          []cell  // What the terminal currently displays, per cell
	palette        *Palette

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when the terminal is larger than
	// the render area. 0-based terminal columns/rows to skip.
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder
	scaledBuf       []Point
	intersectionBuf []float64
	seqBuf          []byte
}

// cell is the pair of sub-pixels drawn by one terminal character.
type cell struct {
	top, bottom Color
}

// invalidCell never matches a drawn cell, forcing a repaint.
var invalidCell = cell{top: colorInvalid, bottom: colorInvalid}

// NewScaledCanvas creates a canvas that scales from logical coordinates to
// terminal pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64, palette *Palette) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		palette:       palette,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
// A size change forces a full repaint.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]Color, c.subPixelHeight*termWidth)
		c.shown = make([]cell, termHeight*termWidth)
		c.ForceRedraw()
	}
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// ForceRedraw makes the next Render repaint every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	for i := range c.shown {
		c.shown[i] = invalidCell
	}
}

// MarkTextDirty makes the next Render repaint the cells under text written
// over the canvas. col and row are 1-based render area coordinates.
func (c *Canvas) MarkTextDirty(col, row, width int) {
	row--
	if row < 0 || row >= c.termHeight {
		return
	}
	start := max(col-1, 0)
	end := min(col-1+width, c.termWidth)
	for x := start; x < end; x++ {
		c.shown[row*c.termWidth+x] = invalidCell
	}
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at actual terminal sub-pixel coordinates.
func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// Pixel returns the colour at terminal sub-pixel coordinates.
func (c *Canvas) Pixel(x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return ColorNone
	}
	return c.pixels[y*c.termWidth+x]
}

// Set sets the pixel under logical point (x,y).
func (c *Canvas) Set(x, y float64, col Color) {
	c.setPixel(int(math.Floor(x*c.scaleX)), int(math.Floor(y*c.scaleY)), col)
}

// FillRect fills a logical rectangle. Tiny rectangles still cover the pixel
// under their top-left corner.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	x0 := int(math.Floor(x * c.scaleX))
	y0 := int(math.Floor(y * c.scaleY))
	x1 := max(int(math.Ceil((x+w)*c.scaleX)), x0+1)
	y1 := max(int(math.Ceil((y+h)*c.scaleY)), y0+1)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.setPixel(px, py, col)
		}
	}
}

// FillPolygon fills a polygon given in logical coordinates. Pixels whose
// centre lies inside are set; a polygon smaller than a pixel still marks the
// pixel under its first vertex.
func (c *Canvas) FillPolygon(points []Point, col Color) {
	if len(points) < 3 {
		return
	}

	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	drawn := false
	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)
	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5
		intersections := c.intersectionBuf[:0]
		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections
		slices.Sort(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i] - 0.5))
			xEnd := int(math.Floor(intersections[i+1] - 0.5))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, col)
				drawn = true
			}
		}
	}

	if !drawn {
		c.setPixel(int(math.Floor(scaled[0].X)), int(math.Floor(scaled[0].Y)), col)
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// Stays under a typical 1500 byte MTU for smooth SSH transmission.
const maxChunkSize = 1400

// Render writes the cells that changed since the last Render.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()

	lastRow, lastCol := -1, -1
	for row := 0; row < c.termHeight; row++ {
		top := c.pixels[row*2*c.termWidth:]
		bottom := c.pixels[(row*2+1)*c.termWidth:]
		shown := c.shown[row*c.termWidth:]

		for col := 0; col < c.termWidth; col++ {
			cur := cell{top: top[col], bottom: bottom[col]}
			if cur == shown[col] {
				continue
			}
			shown[col] = cur

			if row != lastRow || col != lastCol+1 {
				c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			c.writeCell(cur)
			lastRow, lastCol = row, col
		}
	}
	if c.renderBuf.Len() == 0 {
		return nil
	}
	c.renderBuf.WriteString(resetSeq)
	return writeChunked(w, c.renderBuf.String())
}

func (c *Canvas) moveCursor(col, row int) {
	c.seqBuf = appendCursor(c.seqBuf[:0], col, row)
	c.renderBuf.Write(c.seqBuf)
}

func (c *Canvas) writeCell(cl cell) {
	c.renderBuf.WriteString(resetSeq)
	switch {
	case cl.top == ColorNone && cl.bottom == ColorNone:
		c.renderBuf.WriteByte(' ')
	case cl.top == cl.bottom:
		c.renderBuf.WriteString(c.palette.fg(cl.top))
		c.renderBuf.WriteRune(BlockFull)
	case cl.bottom == ColorNone:
		c.renderBuf.WriteString(c.palette.fg(cl.top))
		c.renderBuf.WriteRune(BlockUpperHalf)
	case cl.top == ColorNone:
		c.renderBuf.WriteString(c.palette.fg(cl.bottom))
		c.renderBuf.WriteRune(BlockLowerHalf)
	default:
		c.renderBuf.WriteString(c.palette.fg(cl.top))
		c.renderBuf.WriteString(c.palette.bg(cl.bottom))
		c.renderBuf.WriteRune(BlockUpperHalf)
	}
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the render area on either axis.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars
	if !hasH && !hasV {
		return nil
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	line := strings.Repeat("─", c.termWidth)

	var buf strings.Builder
	if hasV {
		if hasH {
			writeAt(&buf, left, top, "┌"+line+"┐")
			writeAt(&buf, left, bottom, "└"+line+"┘")
		} else {
			writeAt(&buf, c.offsetCol+1, top, line)
			writeAt(&buf, c.offsetCol+1, bottom, line)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			writeAt(&buf, left, row, "│")
			writeAt(&buf, right, row, "│")
		}
	}
	return writeChunked(w, buf.String())
}

// TerminalWidth returns the render area column count.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the render area row count.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// LogicalToTerminal converts logical coordinates to a 1-based position
// (col, row) inside the render area.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

func writeAt(buf *strings.Builder, col, row int, s string) {
	buf.Write(appendCursor(nil, col, row))
	buf.WriteString(s)
}

// writeChunked writes data in chunks for smooth network transmission.
func writeChunked(w io.Writer, data string) error {
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}
