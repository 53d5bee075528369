package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	clearSeq      = termenv.CSI + "H" + termenv.CSI + "2J"
	hideCursorSeq = termenv.CSI + termenv.HideCursorSeq
	showCursorSeq = termenv.CSI + termenv.ShowCursorSeq
)

// appendCursor appends a cursor position sequence for 1-based col and row.
func appendCursor(dst []byte, col, row int) []byte {
	dst = append(dst, termenv.CSI...)
	dst = strconv.AppendInt(dst, int64(row), 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(col), 10)
	return append(dst, 'H')
}

// ChunkWriter collects one frame of output: the canvas diff, its border and
// the text drawn over it. Flush sends the frame in MTU sized pieces.
// Positions passed to WriteAt are relative to the render area.
type ChunkWriter struct {
	frame  strings.Builder
	out    *bufio.Writer
	seq    []byte
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter over w with the render area placed at
// the given offset.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset moves the render area, e.g. after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol, cw.offRow = offsetCol, offsetRow
}

// Write implements io.Writer so the canvas can render into the frame.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.frame.Write(p)
}

// WriteString appends raw output to the frame.
func (cw *ChunkWriter) WriteString(s string) {
	cw.frame.WriteString(s)
}

// WriteAt writes s starting at render area position (col, row), both 1-based.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.seq = appendCursor(cw.seq[:0], col+cw.offCol, row+cw.offRow)
	cw.frame.Write(cw.seq)
	cw.frame.WriteString(s)
}

// Clear queues a full screen clear at the current point of the frame.
func (cw *ChunkWriter) Clear() {
	cw.frame.WriteString(clearSeq)
}

// Flush sends the frame and starts a new one.
func (cw *ChunkWriter) Flush() error {
	data := cw.frame.String()
	cw.frame.Reset()
	if err := writeChunked(cw.out, data); err != nil {
		return err
	}
	return cw.out.Flush()
}

var _ io.Writer = (*ChunkWriter)(nil)

// TermSizeFunc reports the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and homes the cursor.
func ClearScreen(w io.Writer) {
	io.WriteString(w, clearSeq)
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	io.WriteString(w, hideCursorSeq)
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	io.WriteString(w, showCursorSeq)
}
